package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// AuthRequired rejects requests without a verified access token and puts the
// caller on the request context. It must run after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		tokenType, ok := claims[jwt.ClaimType].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		userID, _ := claims[jwt.ClaimUserID].(string)
		role, _ := claims[jwt.ClaimRole].(string)
		if userID == "" || !user.Role(role).IsValid() {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}
		employeeID, _ := claims[jwt.ClaimEmployeeID].(string)

		actor := user.Actor{UserID: userID, EmployeeID: employeeID, Role: user.Role(role)}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	}
	return http.HandlerFunc(hfn)
}

func WithActor(ctx context.Context, actor user.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the caller set by AuthRequired.
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	return actor, ok
}
