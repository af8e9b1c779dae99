package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendly/internal/attendance"
	"attendly/internal/principal"
)

type fakeUsers struct {
	byEmail map[string]principal.User
}

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (principal.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return principal.User{}, principal.ErrNotFound
	}
	return u, nil
}

type fakeLedger struct {
	records  []attendance.Record
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeLedger) Between(_ context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	f.lastFrom, f.lastTo = from, to
	var res []attendance.Record
	for _, rec := range f.records {
		if userID != "" && rec.UserID != userID {
			continue
		}
		if rec.Day.Before(from) || rec.Day.After(to) {
			continue
		}
		res = append(res, rec)
	}
	return res, nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func testService() (*Service, *fakeLedger) {
	ledger := &fakeLedger{records: []attendance.Record{
		{ID: "a", UserID: "u1", Email: "a@x.com", Day: day("2024-01-01"), Status: "Present"},
		{ID: "b", UserID: "u1", Email: "a@x.com", Day: day("2024-01-03"), Status: "Absent"},
		{ID: "c", UserID: "u2", Email: "b@x.com", Day: day("2024-01-05"), Status: "Present"},
	}}
	users := &fakeUsers{byEmail: map[string]principal.User{
		"a@x.com": {ID: "u1", Email: "a@x.com"},
		"b@x.com": {ID: "u2", Email: "b@x.com"},
	}}
	return NewService(users, ledger), ledger
}

func TestForUserInclusiveRange(t *testing.T) {
	svc, _ := testService()
	records, err := svc.ForUser(context.Background(), "a@x.com", "2024-01-01", "2024-01-03")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	for _, rec := range records {
		if rec.UserID != "u1" {
			t.Errorf("record %s belongs to %s, want u1", rec.ID, rec.UserID)
		}
	}
}

func TestForUserEmptyRangeIsNotFound(t *testing.T) {
	svc, _ := testService()
	if _, err := svc.ForUser(context.Background(), "a@x.com", "2024-02-01", "2024-02-28"); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("err = %v, want ErrNoRecords", err)
	}
}

func TestForUserUnknownEmail(t *testing.T) {
	svc, _ := testService()
	if _, err := svc.ForUser(context.Background(), "nobody@x.com", "2024-01-01", "2024-01-03"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("err = %v, want ErrUnknownUser", err)
	}
}

func TestForUserBadDates(t *testing.T) {
	svc, _ := testService()
	if _, err := svc.ForUser(context.Background(), "a@x.com", "01/01/2024", "2024-01-03"); !errors.Is(err, attendance.ErrBadDate) {
		t.Fatalf("err = %v, want ErrBadDate", err)
	}
	// Inverted range is rejected the same way.
	if _, err := svc.ForUser(context.Background(), "a@x.com", "2024-01-03", "2024-01-01"); !errors.Is(err, attendance.ErrBadDate) {
		t.Fatalf("err = %v, want ErrBadDate for an inverted range", err)
	}
}

func TestSystemWideCoversAllUsers(t *testing.T) {
	svc, ledger := testService()
	records, err := svc.SystemWide(context.Background(), "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	// Both bounds reach the ledger truncated to whole days.
	if ledger.lastFrom.Format("2006-01-02") != "2024-01-01" || ledger.lastTo.Format("2006-01-02") != "2024-01-31" {
		t.Errorf("range = [%v, %v], want whole days", ledger.lastFrom, ledger.lastTo)
	}
}

func TestSystemWideNormalizesTimestampInputs(t *testing.T) {
	svc, ledger := testService()
	if _, err := svc.SystemWide(context.Background(), "2024-01-01T10:00:00Z", "2024-01-05T23:00:00Z"); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if ledger.lastFrom.Hour() != 0 || ledger.lastTo.Hour() != 0 {
		t.Errorf("bounds not normalized: [%v, %v]", ledger.lastFrom, ledger.lastTo)
	}
}
