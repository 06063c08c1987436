package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager_SetGet(t *testing.T) {
	m := NewManager()

	ctx := m.SetUsernameToContext(context.Background(), "alice")
	username, ok := m.GetUsernameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)
}

func TestManager_Missing(t *testing.T) {
	m := NewManager()

	_, ok := m.GetUsernameFromContext(context.Background())
	assert.False(t, ok)

	_, ok = m.GetUsernameFromContext(m.SetUsernameToContext(context.Background(), ""))
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), "username", "alice")
	_, ok = m.GetUsernameFromContext(ctx)
	assert.False(t, ok)
}
