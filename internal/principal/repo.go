package principal

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Repository persists users and admins in Postgres. User and admin emails
// are separate uniqueness namespaces (separate tables).
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// -------- Users --------

// CreateUser inserts a user. ErrEmailTaken is returned when the email is
// already registered; the unique index makes the check atomic.
func (r *Repository) CreateUser(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = "User"
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, role, name, email, password_hash, profile_picture)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING
		RETURNING created_at, updated_at
	`, u.ID, u.Role, u.Name, u.Email, u.PasswordHash, u.ProfilePicture)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return u, nil
}

// UserByEmail returns a user including the password hash, for credential
// checks only.
func (r *Repository) UserByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, role, name, email, password_hash, profile_picture, created_at, updated_at
		FROM users WHERE email = $1
	`, email)
	var u User
	err := row.Scan(&u.ID, &u.Role, &u.Name, &u.Email, &u.PasswordHash, &u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// UserByID returns a user with the password hash excluded from the query.
func (r *Repository) UserByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, role, name, email, profile_picture, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
	var u User
	err := row.Scan(&u.ID, &u.Role, &u.Name, &u.Email, &u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// SetProfilePicture records the stored picture path for a user.
func (r *Repository) SetProfilePicture(ctx context.Context, id, path string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET profile_picture = $2, updated_at = NOW() WHERE id = $1
	`, id, path)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns all users, password hashes excluded.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, role, name, email, profile_picture, created_at, updated_at
		FROM users ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Role, &u.Name, &u.Email, &u.ProfilePicture, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// -------- Admins --------

// CreateAdmin inserts an admin, atomically enforcing email uniqueness.
func (r *Repository) CreateAdmin(ctx context.Context, a Admin) (Admin, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = "admin"
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO admins (id, role, name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING created_at, updated_at
	`, a.ID, a.Role, a.Name, a.Email, a.PasswordHash)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrEmailTaken
		}
		return Admin{}, err
	}
	return a, nil
}

// AdminByEmail returns an admin including the password hash, for credential
// checks only.
func (r *Repository) AdminByEmail(ctx context.Context, email string) (Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, role, name, email, password_hash, created_at, updated_at
		FROM admins WHERE email = $1
	`, email)
	var a Admin
	err := row.Scan(&a.ID, &a.Role, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	return a, err
}

// AdminByID returns an admin with the password hash excluded.
func (r *Repository) AdminByID(ctx context.Context, id string) (Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, role, name, email, created_at, updated_at
		FROM admins WHERE id = $1
	`, id)
	var a Admin
	err := row.Scan(&a.ID, &a.Role, &a.Name, &a.Email, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	return a, err
}
