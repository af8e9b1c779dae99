package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Request is a leave request foreign-keyed to a user. Name and Email are
// populated on joined reads. StartDate and EndDate are nil when the
// requester did not give a range.
type Request struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Reason    string     `json:"reason"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"requestDate"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Repository persists leave requests in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new request.
func (r *Repository) Insert(ctx context.Context, req Request) (Request, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = StatusPending
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO leave_requests (id, user_id, reason, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, req.ID, req.UserID, req.Reason, req.StartDate, req.EndDate, req.Status)
	if err := row.Scan(&req.CreatedAt, &req.UpdatedAt); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ListAll returns every request with requester name and email joined.
func (r *Repository) ListAll(ctx context.Context) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.user_id, u.name, u.email, l.reason, l.start_date, l.end_date,
		       l.status, l.created_at, l.updated_at
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.UserID, &req.Name, &req.Email, &req.Reason,
			&req.StartDate, &req.EndDate, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, req)
	}
	return res, rows.Err()
}

// Decide moves a pending request to a terminal status. The WHERE clause
// makes the Pending check atomic; a second decision on the same request
// affects zero rows and is reported as ErrDecided.
func (r *Repository) Decide(ctx context.Context, id, status string) (Request, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE leave_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING user_id, reason, start_date, end_date, created_at, updated_at
	`, id, status, StatusPending)

	req := Request{ID: id, Status: status}
	err := row.Scan(&req.UserID, &req.Reason, &req.StartDate, &req.EndDate, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		var current string
		probe := r.db.QueryRowContext(ctx, `SELECT status FROM leave_requests WHERE id = $1`, id)
		if perr := probe.Scan(&current); perr != nil {
			return Request{}, ErrNotFound
		}
		return Request{}, ErrDecided
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}
