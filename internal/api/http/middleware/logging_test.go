package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/socialnet-server/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"implicit ok", 0, "HTTP request completed"},
		{"created", http.StatusCreated, "HTTP request completed"},
		{"server error", http.StatusInternalServerError, "HTTP request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogging(logger.NewWithFormat(&buf, 0, "json"))

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte("ok"))
			})

			rec := httptest.NewRecorder()
			l.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/posts", nil))

			out := buf.String()
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, `"path":"/posts"`)
			assert.Contains(t, out, `"bytes":2`)
		})
	}
}
