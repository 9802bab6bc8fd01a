package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username, password, role string) (string, *user.User, error) {
	args := m.Called(ctx, username, password, role)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, username, password string) (string, *user.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*user.User), args.Error(2)
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		u := &user.User{ID: uuid.New(), Username: "alice", Role: user.RoleCustomer}
		svc.On("Register", mock.Anything, "alice", "password123", "CUSTOMER").
			Return("a.b.c", u, nil)

		body := `{"username":"alice","password":"password123","role":"CUSTOMER"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Register(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp authResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "a.b.c", resp.Token)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, "CUSTOMER", resp.Role)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		svc.On("Register", mock.Anything, "alice", "password123", "CUSTOMER").
			Return("", nil, apperr.Duplicatef("user alice"))

		body := `{"username":"alice","password":"password123","role":"CUSTOMER"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Register(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		u := &user.User{ID: uuid.New(), Username: "alice", Role: user.RoleAdmin}
		svc.On("Login", mock.Anything, "alice", "password123").Return("a.b.c", u, nil)

		body := `{"username":"alice","password":"password123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("BadCredentialsMapTo401", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		svc.On("Login", mock.Anything, "alice", "wrong").
			Return("", nil, apperr.Unauthorizedf("invalid username or password"))

		body := `{"username":"alice","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		svc := new(MockUserService)
		h := NewAuthHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{oops"))
		rec := httptest.NewRecorder()

		h.Login(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}
