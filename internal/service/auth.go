package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkumaran/trip-tracker/backend/internal/domain"
	"github.com/mkumaran/trip-tracker/backend/internal/repo"
)

// TokenIssuer abstracts the JWT manager so the auth service can be tested
// without real signing keys.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// AuthService authenticates users and issues bearer tokens.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login verifies the credentials and returns a signed access token.
// Returns domain.ErrInvalidCredentials for an unknown username or a wrong
// password — the two cases are indistinguishable to the caller on purpose.
// The last-login timestamp is updated best-effort; its failure does not fail
// the login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	_ = s.users.TouchLastLogin(ctx, user.ID)

	return token, nil
}

// Register creates a user with a bcrypt-hashed password. An empty role gets
// the store's default ("staff"). Only the seed command calls this; there is
// no self-service signup endpoint.
func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (domain.User, error) {
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	u := domain.User{Username: username, PasswordHash: string(hash), Role: role}
	if email != "" {
		u.Email = &email
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return created, nil
}
