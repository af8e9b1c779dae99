package attendance

import (
	"context"
	"errors"
	"time"
)

// Attendance statuses.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Sentinel errors surfaced to handlers.
var (
	ErrAlreadyMarked = errors.New("attendance already marked today")
	ErrDuplicate     = errors.New("attendance already marked for this date")
	ErrNotFound      = errors.New("attendance not found")
	ErrBadStatus     = errors.New("status must be Present or Absent")
	ErrBadDate       = errors.New("invalid date format")
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Range(ctx context.Context, userID string, from, to time.Time) ([]Record, error)
}

// Service coordinates attendance writes and the per-day rules.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// MarkToday records the user as Present for the current calendar day
// (server clock). The self-service path cannot mark Absent.
func (s *Service) MarkToday(ctx context.Context, userID string) (Record, error) {
	if userID == "" {
		return Record{}, errors.New("user id required")
	}
	rec, err := s.store.Insert(ctx, Record{
		UserID: userID,
		Day:    truncateToDay(s.now()),
		Status: StatusPresent,
	})
	if errors.Is(err, ErrDuplicate) {
		return Record{}, ErrAlreadyMarked
	}
	return rec, err
}

// History returns the user's records in insertion order.
func (s *Service) History(ctx context.Context, userID string) ([]Record, error) {
	return s.store.ListByUser(ctx, userID)
}

// Create records attendance for any user and day on behalf of an admin.
func (s *Service) Create(ctx context.Context, userID string, day time.Time, status string) (Record, error) {
	if userID == "" || day.IsZero() {
		return Record{}, errors.New("user id and date required")
	}
	if status != StatusPresent && status != StatusAbsent {
		return Record{}, ErrBadStatus
	}
	return s.store.Insert(ctx, Record{
		UserID: userID,
		Day:    truncateToDay(day),
		Status: status,
	})
}

// SetStatus replaces the status of an existing record.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	if status != StatusPresent && status != StatusAbsent {
		return ErrBadStatus
	}
	return s.store.UpdateStatus(ctx, id, status)
}

// Remove hard-deletes a record.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Between returns records in the inclusive day range, optionally limited to
// one user.
func (s *Service) Between(ctx context.Context, userID string, from, to time.Time) ([]Record, error) {
	return s.store.Range(ctx, userID, truncateToDay(from), truncateToDay(to))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay accepts a 2006-01-02 date or a full RFC3339 timestamp, keeping
// only the calendar day.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return truncateToDay(t.UTC()), nil
}
