package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/socialnet-server/internal/model"
)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	tok, err := j.Issue("alice")
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestJWT_DefaultTTL(t *testing.T) {
	j := NewJWT("secret", 0)
	assert.Equal(t, DefaultTTL, j.ttl)
}

func TestJWT_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now := issued

	j := NewJWT("secret", time.Hour)
	j.now = fixedClock(&now)

	tok, err := j.Issue("alice")
	require.NoError(t, err)

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{name: "at issue time", at: issued},
		{name: "half way", at: issued.Add(30 * time.Minute)},
		{name: "last second", at: issued.Add(time.Hour - time.Second)},
		{name: "exactly at expiry", at: issued.Add(time.Hour), wantErr: model.ErrTokenExpired},
		{name: "after expiry", at: issued.Add(2 * time.Hour), wantErr: model.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = tt.at
			claims, err := j.Parse(tok)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", claims.Username)
		})
	}
}

func TestJWT_FractionalIssueTime(t *testing.T) {
	issued := time.Date(2024, 5, 1, 12, 0, 0, 900*int(time.Millisecond), time.UTC)
	now := issued

	j := NewJWT("secret", time.Hour)
	j.now = fixedClock(&now)

	tok, err := j.Issue("alice")
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	start := issued.Truncate(time.Second)
	assert.True(t, claims.IssuedAt.Equal(start))
	assert.True(t, claims.ExpiresAt.Equal(start.Add(time.Hour)))

	now = start.Add(time.Hour - time.Millisecond)
	_, err = j.Parse(tok)
	require.NoError(t, err)

	now = start.Add(time.Hour)
	_, err = j.Parse(tok)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_Invalid(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	t.Run("malformed", func(t *testing.T) {
		_, err := j.Parse("not-a-token")
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := NewJWT("other-secret", time.Hour)
		tok, err := other.Issue("alice")
		require.NoError(t, err)

		_, err = j.Parse(tok)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("tampered payload", func(t *testing.T) {
		tok, err := j.Issue("alice")
		require.NoError(t, err)

		forged, err := NewJWT("secret", time.Hour).Issue("mallory")
		require.NoError(t, err)

		// header.payload.signature: graft mallory's payload onto alice's signature
		parts := strings.Split(tok, ".")
		forgedParts := strings.Split(forged, ".")
		_, err = j.Parse(parts[0] + "." + forgedParts[1] + "." + parts[2])
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			Username:         "alice",
		})
		tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = j.Parse(tok)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("missing expiry", func(t *testing.T) {
		noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Username: "alice"})
		tok, err := noExp.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = j.Parse(tok)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("missing username", func(t *testing.T) {
		anon := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		})
		tok, err := anon.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = j.Parse(tok)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}
