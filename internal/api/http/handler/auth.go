package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/socialnet-server/internal/apierror"
	"github.com/dtroode/socialnet-server/internal/logger"
	"github.com/dtroode/socialnet-server/internal/model"
)

// AuthService defines user registration, login and account listing.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	ListAccounts(ctx context.Context) ([]model.Account, error)
}

type credentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (r credentialsRequest) validate() error {
	if r.Username == nil || r.Password == nil {
		return apierror.NewErrInvalidRequest("Username and password are required")
	}
	return nil
}

type loginResponse struct {
	Token string `json:"token"`
}

// Auth handles registration, login and the accounts listing.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := h.authService.Register(r.Context(), *req.Username, *req.Password); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	token, err := h.authService.Login(r.Context(), *req.Username, *req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (h *Auth) Accounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.authService.ListAccounts(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}
