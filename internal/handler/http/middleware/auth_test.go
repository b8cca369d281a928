package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(svc jwt.Service, permission user.Permission, seen *user.Actor) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(svc.JWTAuth()))
	r.Use(AuthRequired)
	r.With(RequirePermission(permission)).Get("/", func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func bearer(t *testing.T, svc jwt.Service, employeeID string, role user.Role) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken("user-1", employeeID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthRequired(t *testing.T) {
	svc := jwt.NewJWTService("middleware-secret", "5m")
	other := jwt.NewJWTService("another-secret", "5m")

	tests := []struct {
		name       string
		permission user.Permission
		header     func(t *testing.T) string
		wantStatus int
	}{
		{
			name:       "missing token",
			permission: user.PermissionLeaveViewOwn,
			header:     func(t *testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "foreign signature",
			permission: user.PermissionLeaveViewOwn,
			header:     func(t *testing.T) string { return bearer(t, other, "emp-1", user.RoleAdmin) },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "role lacks permission",
			permission: user.PermissionLeaveApprove,
			header:     func(t *testing.T) string { return bearer(t, svc, "emp-1", user.RoleEmployee) },
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "allowed",
			permission: user.PermissionLeaveApprove,
			header:     func(t *testing.T) string { return bearer(t, svc, "emp-1", user.RoleManager) },
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen user.Actor
			handler := newProtectedRouter(svc, tt.permission, &seen)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, user.Actor{UserID: "user-1", EmployeeID: "emp-1", Role: user.RoleManager}, seen)
			}
		})
	}
}

func TestActorFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ActorFromContext(req.Context())
	assert.False(t, ok)
}
