package report

import (
	"context"
	"errors"
	"time"

	"attendly/internal/attendance"
	"attendly/internal/principal"
)

// Sentinel errors surfaced to handlers.
var (
	ErrNoRecords   = errors.New("no attendance records found")
	ErrUnknownUser = errors.New("no user with that email")
)

// UserLookup resolves report subjects by email.
type UserLookup interface {
	UserByEmail(ctx context.Context, email string) (principal.User, error)
}

// Ledger is the date-range query surface over the attendance store.
type Ledger interface {
	Between(ctx context.Context, userID string, from, to time.Time) ([]attendance.Record, error)
}

// Service produces date-ranged attendance reports. It is read-only over
// the ledger.
type Service struct {
	users  UserLookup
	ledger Ledger
}

// NewService creates a report service.
func NewService(users UserLookup, ledger Ledger) *Service {
	return &Service{users: users, ledger: ledger}
}

// ForUser reports one user's attendance between two dates, both bounds
// widened to whole calendar days.
func (s *Service) ForUser(ctx context.Context, email, fromStr, toStr string) ([]attendance.Record, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	u, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, principal.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	records, err := s.ledger.Between(ctx, u.ID, from, to)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// SystemWide reports all users' attendance between two dates with the same
// whole-day range semantics as ForUser.
func (s *Service) SystemWide(ctx context.Context, fromStr, toStr string) ([]attendance.Record, error) {
	from, to, err := parseRange(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	records, err := s.ledger.Between(ctx, "", from, to)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := attendance.ParseDay(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := attendance.ParseDay(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, attendance.ErrBadDate
	}
	return from, to, nil
}
