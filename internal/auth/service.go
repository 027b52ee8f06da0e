package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/lotus-studio/lotus/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *TokenService
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenService) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Authenticate validates email/password credentials and issues a bearer
// token for the matched user. A missing account and a wrong password are
// deliberately indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*shared.Principal, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("auth: issue token: %w", err)
	}
	return user.Principal(), token, nil
}

// RegisterParams carries the signup payload into the service layer.
type RegisterParams struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Register creates a new non-admin user unless the email is already taken.
func (s *Service) Register(ctx context.Context, params RegisterParams) error {
	taken, err := s.repo.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return fmt.Errorf("auth: check email: %w", err)
	}
	if taken {
		return shared.ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	user := &User{
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("auth: create user: %w", err)
	}
	return nil
}
