package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Leave applied", map[string]string{"status": "PENDING"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Leave applied", body["message"])
	assert.NotContains(t, body, "error")
	assert.NotContains(t, body, "meta")
}

func TestEnvelope_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "Invalid status filter", map[string]string{"status": "unknown status"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
	assert.Equal(t, "Invalid status filter", body.Error.Message)
	assert.Equal(t, "unknown status", body.Error.Details["status"])
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	content := []byte("PK\x03\x04")

	err := Attachment(rec, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "attendance_2024-03.xlsx", content)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance_2024-03.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, content, rec.Body.Bytes())
}
