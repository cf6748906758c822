package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/valpere/waitlist/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func attempt(id, email, outcome string, at time.Time) internal.Attempt {
	return internal.Attempt{
		ID:        id,
		Email:     email,
		Source:    "landing_page",
		BaseURL:   "http://localhost:8000",
		Outcome:   outcome,
		Latency:   120 * time.Millisecond,
		Timestamp: at,
	}
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)

	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveAttempt(t *testing.T) {
	s := newTestStore(t)

	a := attempt("att-1", "user@example.com", "joined", time.Now())
	a.StatusCode = 201
	a.Detail = "Başarıyla eklendi!"

	if err := s.SaveAttempt(context.Background(), a); err != nil {
		t.Fatalf("SaveAttempt failed: %v", err)
	}

	list, err := s.ListAttempts(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(list))
	}

	got := list[0]
	if got.ID != "att-1" || got.Email != "user@example.com" || got.Outcome != "joined" {
		t.Errorf("unexpected attempt %+v", got)
	}
	if got.StatusCode != 201 {
		t.Errorf("expected status 201, got %d", got.StatusCode)
	}
	if got.Detail != "Başarıyla eklendi!" {
		t.Errorf("unexpected detail %q", got.Detail)
	}
	if got.Latency != 120*time.Millisecond {
		t.Errorf("expected latency 120ms, got %s", got.Latency)
	}
}

func TestStore_SaveAttempt_DuplicateID(t *testing.T) {
	s := newTestStore(t)

	a := attempt("att-1", "user@example.com", "joined", time.Now())
	if err := s.SaveAttempt(context.Background(), a); err != nil {
		t.Fatalf("SaveAttempt failed: %v", err)
	}
	if err := s.SaveAttempt(context.Background(), a); err == nil {
		t.Error("expected error for duplicate attempt ID")
	}
}

func TestStore_ListAttempts_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	base := time.Now().Add(-time.Hour)

	s.SaveAttempt(context.Background(), attempt("a", "a@example.com", "joined", base))
	s.SaveAttempt(context.Background(), attempt("b", "b@example.com", "rejected", base.Add(time.Minute)))
	s.SaveAttempt(context.Background(), attempt("c", "c@example.com", "unreachable", base.Add(2*time.Minute)))

	list, err := s.ListAttempts(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(list))
	}
	if list[0].ID != "c" || list[1].ID != "b" || list[2].ID != "a" {
		t.Errorf("expected newest first, got %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}

	limited, err := s.ListAttempts(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 attempts with limit, got %d", len(limited))
	}
}

func TestStore_AttemptsForEmail_Normalized(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	s.SaveAttempt(context.Background(), attempt("a", "User@Example.com", "joined", now))
	s.SaveAttempt(context.Background(), attempt("b", " user@example.com ", "rejected", now.Add(time.Second)))
	s.SaveAttempt(context.Background(), attempt("c", "other@example.com", "joined", now))

	list, err := s.AttemptsForEmail(context.Background(), "USER@example.com")
	if err != nil {
		t.Fatalf("AttemptsForEmail failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(list))
	}
	if list[0].ID != "b" {
		t.Errorf("expected newest attempt first, got %s", list[0].ID)
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	s.SaveAttempt(context.Background(), attempt("1", "a@example.com", "joined", now))
	s.SaveAttempt(context.Background(), attempt("2", "A@example.com", "rejected", now))
	s.SaveAttempt(context.Background(), attempt("3", "b@example.com", "unreachable", now))
	s.SaveAttempt(context.Background(), attempt("4", "nope", "invalid", now))
	s.SaveAttempt(context.Background(), attempt("5", "c@example.com", "joined", now))

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", stats.TotalAttempts)
	}
	if stats.Joined != 2 || stats.Rejected != 1 || stats.Unreachable != 1 || stats.Invalid != 1 {
		t.Errorf("unexpected per-outcome stats %+v", stats)
	}
	if stats.DistinctEmails != 4 {
		t.Errorf("expected 4 distinct emails, got %d", stats.DistinctEmails)
	}
}

func TestStore_Stats_Empty(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalAttempts != 0 || stats.DistinctEmails != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}

func TestStore_DeleteAttempt(t *testing.T) {
	s := newTestStore(t)

	s.SaveAttempt(context.Background(), attempt("a", "a@example.com", "joined", time.Now()))

	if err := s.DeleteAttempt(context.Background(), "a"); err != nil {
		t.Fatalf("DeleteAttempt failed: %v", err)
	}

	list, _ := s.ListAttempts(context.Background(), 0)
	if len(list) != 0 {
		t.Errorf("expected no attempts after delete, got %d", len(list))
	}

	if err := s.DeleteAttempt(context.Background(), "a"); err == nil {
		t.Error("expected error deleting a missing attempt")
	}
}

func TestStore_ClearAttempts(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	s.SaveAttempt(context.Background(), attempt("a", "a@example.com", "joined", now))
	s.SaveAttempt(context.Background(), attempt("b", "b@example.com", "joined", now))

	n, err := s.ClearAttempts(context.Background())
	if err != nil {
		t.Fatalf("ClearAttempts failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  user@example.com\n", "user@example.com"},
		// Decomposed "s" + combining cedilla composes to "ş".
		{"s\u0327ule@example.com", "\u015fule@example.com"},
	}

	for _, tt := range tests {
		if got := normalizeEmail(tt.in); got != tt.want {
			t.Errorf("normalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
