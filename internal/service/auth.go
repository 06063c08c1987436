package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/socialnet-server/internal/apierror"
	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

// Auth registers users, logs them in and resolves session tokens.
type Auth struct {
	store           model.DocumentStore
	hasher          model.PasswordHasher
	tokenManager    model.TokenManager
	logger          *logger.Logger
	checkUserExists bool
}

func NewAuth(
	store model.DocumentStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
	checkUserExists bool,
) *Auth {
	return &Auth{
		store:           store,
		hasher:          hasher,
		tokenManager:    tokenManager,
		logger:          logger,
		checkUserExists: checkUserExists,
	}
}

// Register stores a new user with a hashed password.
// The hash is computed outside the store lock; the duplicate check is repeated under it.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	exists, err := a.userExists(ctx, username)
	if err != nil {
		a.logger.Error("Auth service: failed to look up user",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if exists {
		a.logger.Info("Auth service: user already exists",
			"username", username)
		return apierror.NewErrUserAlreadyExists(username)
	}

	hash, err := a.hasher.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, model.ErrPasswordTooLong) {
			return apierror.NewErrInvalidRequest("Password is too long")
		}
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = a.store.Update(ctx, func(doc *model.Document) error {
		if doc.FindUser(username) >= 0 {
			return apierror.NewErrUserAlreadyExists(username)
		}
		doc.Users = append(doc.Users, model.User{Username: username, PasswordHash: hash})
		return nil
	})
	if err != nil {
		if _, ok := apierror.As(err); ok {
			a.logger.Info("Auth service: user registered concurrently",
				"username", username)
			return err
		}
		a.logger.Error("Auth service: failed to store user",
			"username", username,
			"error", err.Error())
		return fmt.Errorf("failed to store user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username)

	return nil
}

// Login verifies credentials and returns a fresh session token.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: starting login",
		"username", username)

	var hash string
	err := a.store.View(ctx, func(doc model.Document) error {
		if i := doc.FindUser(username); i >= 0 {
			hash = doc.Users[i].PasswordHash
		}
		return nil
	})
	if err != nil {
		a.logger.Error("Auth service: failed to look up user",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if hash == "" || !a.hasher.Verify(ctx, password, hash) {
		a.logger.Info("Auth service: invalid credentials",
			"username", username)
		return "", apierror.NewErrInvalidCredentials()
	}

	token, err := a.tokenManager.Issue(username)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"username", username)

	return token, nil
}

// ListAccounts returns the public projection of every registered user.
func (a *Auth) ListAccounts(ctx context.Context) ([]model.Account, error) {
	accounts := []model.Account{}
	err := a.store.View(ctx, func(doc model.Document) error {
		for _, u := range doc.Users {
			accounts = append(accounts, model.Account{Username: u.Username})
		}
		return nil
	})
	if err != nil {
		a.logger.Error("Auth service: failed to list accounts",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return accounts, nil
}

// Authenticate resolves a session token to the username it was issued for.
// Token failures wrap model.ErrTokenExpired or model.ErrTokenInvalid.
func (a *Auth) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := a.tokenManager.Parse(token)
	if err != nil {
		a.logger.Debug("Auth service: token rejected",
			"expired", errors.Is(err, model.ErrTokenExpired),
			"error", err.Error())
		return "", err
	}

	if !a.checkUserExists {
		return claims.Username, nil
	}

	exists, err := a.userExists(ctx, claims.Username)
	if err != nil {
		a.logger.Error("Auth service: failed to look up token owner",
			"username", claims.Username,
			"error", err.Error())
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		a.logger.Info("Auth service: token owner no longer exists",
			"username", claims.Username)
		return "", fmt.Errorf("%w: unknown user %q", model.ErrTokenInvalid, claims.Username)
	}

	return claims.Username, nil
}

func (a *Auth) userExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := a.store.View(ctx, func(doc model.Document) error {
		exists = doc.FindUser(username) >= 0
		return nil
	})
	return exists, err
}
