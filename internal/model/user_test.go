package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_JSON(t *testing.T) {
	t.Run("current field", func(t *testing.T) {
		var u User
		require.NoError(t, json.Unmarshal([]byte(`{"username":"alice","passwordHash":"$2a$10$x"}`), &u))
		assert.Equal(t, User{Username: "alice", PasswordHash: "$2a$10$x"}, u)
	})

	t.Run("legacy field", func(t *testing.T) {
		var u User
		require.NoError(t, json.Unmarshal([]byte(`{"username":"alice","password":"$2b$10$y"}`), &u))
		assert.Equal(t, "$2b$10$y", u.PasswordHash)
	})

	t.Run("written under the current field", func(t *testing.T) {
		data, err := json.Marshal(User{Username: "alice", PasswordHash: "h"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"username":"alice","passwordHash":"h"}`, string(data))
	})

	t.Run("malformed", func(t *testing.T) {
		var u User
		assert.Error(t, json.Unmarshal([]byte(`{"username":5}`), &u))
	})
}
