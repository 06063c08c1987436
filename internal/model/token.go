package model

import "time"

// Claims is the decoded content of a session token.
type Claims struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and verifies stateless session tokens.
type TokenManager interface {
	Issue(username string) (string, error)
	Parse(token string) (Claims, error)
}
