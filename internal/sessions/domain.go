package sessions

import "time"

// Session is a bookable class on the studio calendar. Users holds the ids of
// enrolled participants; a user appears at most once.
type Session struct {
	ID          int64
	Name        string
	Date        time.Time
	Description string
	TeacherID   *int64
	Users       []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
