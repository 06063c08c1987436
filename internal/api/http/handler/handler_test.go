package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/socialnet-server/internal/api/http/context"
)

func newRequest(t *testing.T, body string, username string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req = req.WithContext(httpctx.NewManager().SetUsernameToContext(context.Background(), username))
	}
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func assertMessage(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()

	assert.Equal(t, code, rec.Code)
	assert.Equal(t, message, decodeResponse(t, rec)["message"])
}
