package users

import (
	"context"
	"fmt"

	"github.com/lotus-studio/lotus/internal/shared"
)

// Service handles user business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

// Delete removes the target account. Only the owner may delete it: the
// principal's email must match the target user's email. The admin flag is
// not consulted here.
func (s *Service) Delete(ctx context.Context, principal shared.Principal, id int64) error {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Email != principal.Email {
		return shared.ErrForbidden
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("users: delete %d: %w", id, err)
	}
	return nil
}
