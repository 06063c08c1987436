package model

import (
	"context"
	"encoding/json"
)

// User represents a registered account with its password hash.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// UnmarshalJSON accepts documents written with the hash under "password".
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		Username     string `json:"username"`
		PasswordHash string `json:"passwordHash"`
		Password     string `json:"password"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.Username = raw.Username
	u.PasswordHash = raw.PasswordHash
	if u.PasswordHash == "" {
		u.PasswordHash = raw.Password
	}
	return nil
}

// Account is the public projection of a User.
type Account struct {
	Username string `json:"username"`
}

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) bool
}
