package users

import "time"

// User represents a user account for management. The password hash never
// leaves the auth module.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Admin     bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
