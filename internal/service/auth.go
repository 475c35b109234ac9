package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/avasiliev/cadastral-service/internal/domain"
	"github.com/avasiliev/cadastral-service/internal/password"
	"github.com/avasiliev/cadastral-service/internal/repo"
	"github.com/avasiliev/cadastral-service/internal/token"
)

// minPasswordLength matches the registration contract: shorter passwords are
// rejected at the boundary.
const minPasswordLength = 8

// TokenInfo is the login response payload.
type TokenInfo struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthService implements registration, credential login, and bearer-token
// resolution.
type AuthService struct {
	users  repo.UserRepo
	tokens *token.Service
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repo.UserRepo, tokens *token.Service) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register validates the email and password, hashes the password, and creates
// the account. A duplicate email yields domain.ErrEmailTaken — enforced by
// the store's unique index, so a concurrent duplicate cannot slip through.
func (s *AuthService) Register(ctx context.Context, email, plaintext string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(plaintext) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hashed, err := password.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("service.AuthService.Register: %w", err)
	}

	if _, err := s.users.Create(ctx, email, hashed); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return nil
}

// Login authenticates by email and password and issues an access token.
// A missing user and a wrong password produce the same
// domain.ErrInvalidCredentials, so login responses do not reveal which
// emails are registered. An inactive account with a correct password yields
// domain.ErrInactiveUser.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (TokenInfo, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return TokenInfo{}, fmt.Errorf("%w: invalid username or password", domain.ErrInvalidCredentials)
		}
		return TokenInfo{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if !password.Verify(plaintext, user.HashedPassword) {
		return TokenInfo{}, fmt.Errorf("%w: invalid username or password", domain.ErrInvalidCredentials)
	}
	if !user.Active {
		return TokenInfo{}, domain.ErrInactiveUser
	}

	accessToken, err := s.tokens.Issue(user)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return TokenInfo{AccessToken: accessToken, TokenType: "Bearer"}, nil
}

// AuthenticateToken resolves a bearer token to its user. The token is checked
// first, then the user is re-read from the store — a token issued before an
// account was deactivated is rejected here with domain.ErrInactiveUser.
func (s *AuthService) AuthenticateToken(ctx context.Context, tokenString string) (domain.User, error) {
	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("%w: token user not found", domain.ErrInvalidCredentials)
		}
		return domain.User{}, fmt.Errorf("service.AuthService.AuthenticateToken: %w", err)
	}

	if !user.Active {
		return domain.User{}, domain.ErrInactiveUser
	}
	return user, nil
}
