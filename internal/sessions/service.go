package sessions

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/lotus-studio/lotus/internal/shared"
)

var (
	// ErrAlreadyParticipating occurs when enrolling a user who is already in
	// the session's enrollment list.
	ErrAlreadyParticipating = errors.New("already participating")
	// ErrNotParticipating occurs when withdrawing a user who is not enrolled.
	ErrNotParticipating = errors.New("not participating")
)

// UserDirectory is the narrow view of the user store the participation
// operations need.
type UserDirectory interface {
	UserExists(ctx context.Context, id int64) (bool, error)
}

// Service handles session business logic, including enrollment.
type Service struct {
	repo  Repository
	users UserDirectory
}

// NewService builds a Service instance.
func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// List returns all sessions.
func (s *Service) List(ctx context.Context) ([]Session, error) {
	return s.repo.ListSessions(ctx)
}

// Get returns the session with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*Session, error) {
	return s.repo.GetSession(ctx, id)
}

// Create persists a new session.
func (s *Service) Create(ctx context.Context, session *Session) error {
	return s.repo.CreateSession(ctx, session)
}

// Update rewrites an existing session's fields.
func (s *Service) Update(ctx context.Context, session *Session) error {
	return s.repo.UpdateSession(ctx, session)
}

// Delete removes a session together with its enrollment.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteSession(ctx, id)
}

// Participate enrolls the user in the session. Repeating the call for the
// same pair is a well-defined failure, not a silent no-op.
func (s *Service) Participate(ctx context.Context, sessionID, userID int64) error {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("sessions: session %d: %w", sessionID, err)
	}
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return fmt.Errorf("sessions: check user %d: %w", userID, err)
	}
	if !exists {
		return fmt.Errorf("sessions: user %d: %w", userID, shared.ErrNotFound)
	}
	if slices.Contains(session.Users, userID) {
		return ErrAlreadyParticipating
	}
	return s.repo.AddParticipant(ctx, sessionID, userID)
}

// Unparticipate withdraws the user from the session. Withdrawing a user who
// was never enrolled fails with ErrNotParticipating.
func (s *Service) Unparticipate(ctx context.Context, sessionID, userID int64) error {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("sessions: session %d: %w", sessionID, err)
	}
	if !slices.Contains(session.Users, userID) {
		return ErrNotParticipating
	}
	return s.repo.RemoveParticipant(ctx, sessionID, userID)
}
