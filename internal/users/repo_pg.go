package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, username, name, phone, role, password_hash, assigned_mentor, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Name,
		nullableString(user.Phone),
		user.Role,
		user.PasswordHash,
		nullableString(user.AssignedMentor),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrUsernameTaken
	}
	return err
}

func (r *PGRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
SELECT id, username, name, phone, role, password_hash, assigned_mentor, created_at
FROM users
WHERE username = $1
LIMIT 1`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (r *PGRepo) ListByMentor(ctx context.Context, mentor string) ([]User, error) {
	const query = `
SELECT id, username, name, phone, role, password_hash, assigned_mentor, created_at
FROM users
WHERE role = 'student' AND assigned_mentor = $1
ORDER BY username`
	rows, err := r.DB.QueryContext(ctx, query, mentor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var user User
	var phone sql.NullString
	var mentor sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&phone,
		&user.Role,
		&user.PasswordHash,
		&mentor,
		&user.CreatedAt,
	)
	if err != nil {
		return User{}, err
	}
	if phone.Valid {
		user.Phone = phone.String
	}
	if mentor.Valid {
		user.AssignedMentor = mentor.String
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
