package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/socialnet-server/internal/apierror"
	"github.com/dtroode/socialnet-server/internal/mocks"
	"github.com/dtroode/socialnet-server/internal/model"
	"github.com/dtroode/socialnet-server/internal/testutil"
)

func TestAuth_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		setup   func(svc *mocks.AuthService)
		code    int
		message string
	}{
		{
			name: "created",
			body: `{"username":"alice","password":"secret1"}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Register", mock.Anything, "alice", "secret1").Return(nil)
			},
			code:    http.StatusCreated,
			message: "User registered successfully",
		},
		{
			name: "duplicate",
			body: `{"username":"alice","password":"other"}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Register", mock.Anything, "alice", "other").Return(apierror.NewErrUserAlreadyExists("alice"))
			},
			code:    http.StatusBadRequest,
			message: "User already exists",
		},
		{
			name:    "empty strings are accepted",
			body:    `{"username":"","password":""}`,
			setup:   func(svc *mocks.AuthService) { svc.On("Register", mock.Anything, "", "").Return(nil) },
			code:    http.StatusCreated,
			message: "User registered successfully",
		},
		{
			name:    "missing password",
			body:    `{"username":"alice"}`,
			setup:   func(*mocks.AuthService) {},
			code:    http.StatusBadRequest,
			message: "Username and password are required",
		},
		{
			name:    "malformed json",
			body:    `{"username":`,
			setup:   func(*mocks.AuthService) {},
			code:    http.StatusBadRequest,
			message: "Invalid request body",
		},
		{
			name: "store failure",
			body: `{"username":"alice","password":"pw"}`,
			setup: func(svc *mocks.AuthService) {
				svc.On("Register", mock.Anything, "alice", "pw").Return(errors.New("disk full"))
			},
			code:    http.StatusInternalServerError,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewAuthService(t)
			tt.setup(svc)
			h := NewAuth(svc, testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Register(rec, newRequest(t, tt.body, ""))

			assertMessage(t, rec, tt.code, tt.message)
		})
	}
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "alice", "secret1").Return("tok", nil)
		h := NewAuth(svc, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(t, `{"username":"alice","password":"secret1"}`, ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"token": "tok"}, decodeResponse(t, rec))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "alice", "wrong").Return("", apierror.NewErrInvalidCredentials())
		h := NewAuth(svc, testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(t, `{"username":"alice","password":"wrong"}`, ""))

		assertMessage(t, rec, http.StatusUnauthorized, "Invalid credentials")
	})

	t.Run("missing fields", func(t *testing.T) {
		h := NewAuth(mocks.NewAuthService(t), testutil.MakeNoopLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, newRequest(t, ``, ""))

		assertMessage(t, rec, http.StatusBadRequest, "Username and password are required")
	})
}

func TestAuth_Accounts(t *testing.T) {
	t.Parallel()

	svc := mocks.NewAuthService(t)
	svc.On("ListAccounts", mock.Anything).Return([]model.Account{{Username: "alice"}, {Username: "bob"}}, nil)
	h := NewAuth(svc, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Accounts(rec, newRequest(t, ``, "alice"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"username":"alice"},{"username":"bob"}]`, rec.Body.String())
}
