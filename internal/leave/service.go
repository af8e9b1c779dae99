package leave

import (
	"context"
	"errors"
	"time"
)

// Leave request lifecycle: Pending, then Approved or Rejected. Both are
// terminal.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Sentinel errors surfaced to handlers.
var (
	ErrNotFound = errors.New("leave request not found")
	ErrDecided  = errors.New("leave request already decided")
	ErrBadRange = errors.New("end date before start date")
)

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, req Request) (Request, error)
	ListAll(ctx context.Context) ([]Request, error)
	Decide(ctx context.Context, id, status string) (Request, error)
}

// Service coordinates the leave request lifecycle.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Submit files a new request for a user. The date range is optional on the
// self-service path.
func (s *Service) Submit(ctx context.Context, userID, reason string, start, end *time.Time) (Request, error) {
	if userID == "" {
		return Request{}, errors.New("user id required")
	}
	if reason == "" {
		return Request{}, errors.New("reason required")
	}
	if start != nil && end != nil && end.Before(*start) {
		return Request{}, ErrBadRange
	}
	return s.store.Insert(ctx, Request{
		UserID:    userID,
		Reason:    reason,
		StartDate: start,
		EndDate:   end,
		Status:    StatusPending,
	})
}

// List returns every request with requester details resolved.
func (s *Service) List(ctx context.Context) ([]Request, error) {
	return s.store.ListAll(ctx)
}

// Approve moves a pending request to Approved.
func (s *Service) Approve(ctx context.Context, id string) (Request, error) {
	return s.store.Decide(ctx, id, StatusApproved)
}

// Reject moves a pending request to Rejected.
func (s *Service) Reject(ctx context.Context, id string) (Request, error) {
	return s.store.Decide(ctx, id, StatusRejected)
}
