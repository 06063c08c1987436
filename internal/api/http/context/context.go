package context

import (
	"context"
)

type contextKey string

const usernameKey contextKey = "username"

// Manager stores the authenticated username on request contexts.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUsernameToContext returns a child context carrying username.
func (m *Manager) SetUsernameToContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsernameFromContext reports the username set by the authentication middleware.
// Empty usernames are treated as absent.
func (m *Manager) GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
