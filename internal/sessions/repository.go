package sessions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotus-studio/lotus/internal/platform/db"
	"github.com/lotus-studio/lotus/internal/shared"
)

// Repository defines persistence operations for the sessions module.
type Repository interface {
	ListSessions(ctx context.Context) ([]Session, error)
	GetSession(ctx context.Context, id int64) (*Session, error)
	CreateSession(ctx context.Context, session *Session) error
	UpdateSession(ctx context.Context, session *Session) error
	DeleteSession(ctx context.Context, id int64) error
	AddParticipant(ctx context.Context, sessionID, userID int64) error
	RemoveParticipant(ctx context.Context, sessionID, userID int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ListSessions returns all sessions with their enrollment lists. Both reads
// run in one repeatable-read transaction so the lists match the session rows.
func (r *PGRepository) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT id, name, description, date, teacher_id, created_at, updated_at FROM sessions ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()

		index := make(map[int64]int)
		for rows.Next() {
			var session Session
			if err := rows.Scan(&session.ID, &session.Name, &session.Description, &session.Date,
				&session.TeacherID, &session.CreatedAt, &session.UpdatedAt); err != nil {
				return err
			}
			index[session.ID] = len(sessions)
			sessions = append(sessions, session)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(sessions) == 0 {
			return nil
		}

		participants, err := tx.Query(ctx, `SELECT session_id, user_id FROM session_participants ORDER BY session_id, joined_at`)
		if err != nil {
			return err
		}
		defer participants.Close()
		for participants.Next() {
			var sessionID, userID int64
			if err := participants.Scan(&sessionID, &userID); err != nil {
				return err
			}
			if i, ok := index[sessionID]; ok {
				sessions[i].Users = append(sessions[i].Users, userID)
			}
		}
		return participants.Err()
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches a session by id, including its enrollment list.
func (r *PGRepository) GetSession(ctx context.Context, id int64) (*Session, error) {
	var session Session
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `SELECT id, name, description, date, teacher_id, created_at, updated_at FROM sessions WHERE id = $1`
		err := tx.QueryRow(ctx, query, id).Scan(
			&session.ID, &session.Name, &session.Description, &session.Date,
			&session.TeacherID, &session.CreatedAt, &session.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return err
		}

		rows, err := tx.Query(ctx, `SELECT user_id FROM session_participants WHERE session_id = $1 ORDER BY joined_at`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var userID int64
			if err := rows.Scan(&userID); err != nil {
				return err
			}
			session.Users = append(session.Users, userID)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateSession persists a new session and fills in its generated fields.
func (r *PGRepository) CreateSession(ctx context.Context, session *Session) error {
	const query = `INSERT INTO sessions (name, description, date, teacher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		session.Name, session.Description, session.Date, session.TeacherID,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
}

// UpdateSession rewrites the scalar fields of an existing session. The
// enrollment list is owned by the participation operations and left alone.
func (r *PGRepository) UpdateSession(ctx context.Context, session *Session) error {
	const query = `UPDATE sessions
		SET name = $2, description = $3, date = $4, teacher_id = $5, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		session.ID, session.Name, session.Description, session.Date, session.TeacherID,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteSession removes a session; its enrollment rows cascade.
func (r *PGRepository) DeleteSession(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddParticipant appends a user to a session's enrollment. The primary key
// on (session_id, user_id) turns a concurrent duplicate enroll into
// ErrAlreadyParticipating instead of a second row.
func (r *PGRepository) AddParticipant(ctx context.Context, sessionID, userID int64) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO session_participants (session_id, user_id) VALUES ($1, $2)`, sessionID, userID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyParticipating
	}
	return err
}

// RemoveParticipant withdraws a user from a session's enrollment.
func (r *PGRepository) RemoveParticipant(ctx context.Context, sessionID, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM session_participants WHERE session_id = $1 AND user_id = $2`, sessionID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotParticipating
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
