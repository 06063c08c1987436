package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/socialnet-server/internal/api/http/handler"
	"github.com/dtroode/socialnet-server/internal/apierror"
	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

// Authenticator resolves a session token to a username.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Authenticate validates the Authorization header and injects the username into the context.
type Authenticate struct {
	authenticator      Authenticator
	contextManager     model.ContextManager
	logger             *logger.Logger
	invalidTokenStatus int
}

// NewAuthenticate creates the middleware. With legacyStatus set, rejected
// tokens answer 500 instead of 401.
func NewAuthenticate(authenticator Authenticator, contextManager model.ContextManager, logger *logger.Logger, legacyStatus bool) *Authenticate {
	status := http.StatusUnauthorized
	if legacyStatus {
		status = http.StatusInternalServerError
	}

	return &Authenticate{
		authenticator:      authenticator,
		contextManager:     contextManager,
		logger:             logger,
		invalidTokenStatus: status,
	}
}

func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" {
			handler.WriteError(w, m.logger, apierror.NewErrMissingAuthorizationToken())
			return
		}

		username, err := m.authenticator.Authenticate(r.Context(), tokenString)
		if err != nil {
			handler.WriteError(w, m.logger, m.classify(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUsernameToContext(r.Context(), username)))
	})
}

func (m *Authenticate) classify(err error) error {
	if errors.Is(err, model.ErrTokenExpired) || errors.Is(err, model.ErrTokenInvalid) {
		m.logger.Info("Authenticate middleware: token rejected",
			"expired", errors.Is(err, model.ErrTokenExpired))
		return apierror.NewErrInvalidAuthorizationToken(m.invalidTokenStatus, err)
	}
	return apierror.NewErrInternalServerError(err)
}
