package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/socialnet-server/internal/api/http/context"
	"github.com/dtroode/socialnet-server/internal/mocks"
	"github.com/dtroode/socialnet-server/internal/model"
	"github.com/dtroode/socialnet-server/internal/testutil"
)

func serveAuthenticated(t *testing.T, m *Authenticate, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpctx.NewManager().GetUsernameFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)

	return rec, seen
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestAuthenticate_ValidToken(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"tok", "Bearer tok"} {
		t.Run(header, func(t *testing.T) {
			auth := mocks.NewAuthenticator(t)
			auth.On("Authenticate", mock.Anything, "tok").Return("alice", nil)
			m := NewAuthenticate(auth, httpctx.NewManager(), testutil.MakeNoopLogger(), false)

			rec, username := serveAuthenticated(t, m, header)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, "alice", username)
		})
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	t.Parallel()

	m := NewAuthenticate(mocks.NewAuthenticator(t), httpctx.NewManager(), testutil.MakeNoopLogger(), false)

	rec, username := serveAuthenticated(t, m, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "No token provided", message(t, rec))
	assert.Empty(t, username)
}

func TestAuthenticate_RejectedToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		legacy bool
		code   int
	}{
		{"expired", model.ErrTokenExpired, false, http.StatusUnauthorized},
		{"invalid", model.ErrTokenInvalid, false, http.StatusUnauthorized},
		{"wrapped invalid", fmt.Errorf("%w: unknown user", model.ErrTokenInvalid), false, http.StatusUnauthorized},
		{"expired legacy", model.ErrTokenExpired, true, http.StatusInternalServerError},
		{"invalid legacy", model.ErrTokenInvalid, true, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := mocks.NewAuthenticator(t)
			auth.On("Authenticate", mock.Anything, "tok").Return("", tt.err)
			m := NewAuthenticate(auth, httpctx.NewManager(), testutil.MakeNoopLogger(), tt.legacy)

			rec, username := serveAuthenticated(t, m, "tok")

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "Failed to authenticate token", message(t, rec))
			assert.Empty(t, username)
		})
	}
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	t.Parallel()

	auth := mocks.NewAuthenticator(t)
	auth.On("Authenticate", mock.Anything, "tok").Return("", errors.New("store unavailable"))
	m := NewAuthenticate(auth, httpctx.NewManager(), testutil.MakeNoopLogger(), false)

	rec, _ := serveAuthenticated(t, m, "tok")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", message(t, rec))
}
