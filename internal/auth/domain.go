package auth

import (
	"time"

	"github.com/lotus-studio/lotus/internal/shared"
)

// User is the credential record backing authentication.
type User struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal derives the request-scoped identity from this record.
func (u *User) Principal() *shared.Principal {
	return &shared.Principal{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Admin:     u.Admin,
	}
}
