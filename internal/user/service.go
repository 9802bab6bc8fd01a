package user

import (
	"context"
	"strings"
	"time"

	"orderdesk-be/internal/apperr"
	"orderdesk-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, username, password, role string) (string, *User, error)
	Login(ctx context.Context, username, password string) (string, *User, error)
}

type service struct {
	repo   Repository
	tokens *TokenManager
}

func NewService(repo Repository, tokens *TokenManager) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, username, password, role string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
		zap.String("username", username),
	)

	username = strings.TrimSpace(username)
	if username == "" {
		return "", nil, apperr.Validationf("username is required")
	}
	if len(password) < 8 {
		return "", nil, apperr.Validationf("password must be at least 8 characters")
	}

	parsedRole, ok := ParseRole(strings.ToUpper(strings.TrimSpace(role)))
	if !ok {
		return "", nil, apperr.Validationf("role must be ADMIN or CUSTOMER")
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hashed,
		Role:         parsedRole,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		log.Warn("failed to create user", zap.Error(err))
		return "", nil, err
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		log.Error("failed to generate token", zap.Error(err))
		return "", nil, err
	}

	log.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return token, u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	// Same failure for unknown user and wrong password, so the endpoint does
	// not leak which usernames exist.
	if u == nil || !CheckPasswordHash(password, u.PasswordHash) {
		log.Warn("invalid credentials")
		return "", nil, apperr.Unauthorizedf("invalid username or password")
	}

	token, err := s.tokens.Generate(u)
	if err != nil {
		log.Error("failed to generate token", zap.Error(err))
		return "", nil, err
	}

	log.Info("user logged in", zap.String("user_id", u.ID.String()))
	return token, u, nil
}
