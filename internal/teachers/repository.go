package teachers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotus-studio/lotus/internal/shared"
)

// Repository defines persistence operations for the teachers module.
type Repository interface {
	ListTeachers(ctx context.Context) ([]Teacher, error)
	GetTeacher(ctx context.Context, id int64) (*Teacher, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ListTeachers returns all teachers ordered by id.
func (r *PGRepository) ListTeachers(ctx context.Context) ([]Teacher, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, first_name, last_name, created_at, updated_at FROM teachers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var teachers []Teacher
	for rows.Next() {
		var teacher Teacher
		if err := rows.Scan(&teacher.ID, &teacher.FirstName, &teacher.LastName, &teacher.CreatedAt, &teacher.UpdatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return teachers, nil
}

// GetTeacher fetches a teacher by id.
func (r *PGRepository) GetTeacher(ctx context.Context, id int64) (*Teacher, error) {
	const query = `SELECT id, first_name, last_name, created_at, updated_at FROM teachers WHERE id = $1`
	var teacher Teacher
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&teacher.ID, &teacher.FirstName, &teacher.LastName, &teacher.CreatedAt, &teacher.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &teacher, nil
}

var _ Repository = (*PGRepository)(nil)
