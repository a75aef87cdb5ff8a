package history_test

import (
	"path/filepath"
	"testing"
	"time"

	"scribe/internal/history"
)

func openStore(t *testing.T, keep int) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"), keep)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t, 0)

	rec, err := store.Record(t.Context(), history.Record{
		MediaID:       "d1",
		MediaLocation: "/media/interview.wav",
		Model:         "small.en",
		Task:          "transcribe",
		Language:      "en",
		TimeUnit:      "milliseconds",
		Tokens:        42,
		Frames:        42,
		Sentences:     7,
		Duration:      3 * time.Second,
		Status:        history.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated request id")
	}

	records, err := store.Recent(t.Context(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ID != rec.ID || got.Model != "small.en" || got.Tokens != 42 {
		t.Fatalf("record round trip mismatch: %+v", got)
	}
	if got.Duration != 3*time.Second {
		t.Fatalf("duration round trip mismatch: %v", got.Duration)
	}
	if got.Status != history.StatusCompleted || got.Error != "" {
		t.Fatalf("status round trip mismatch: %+v", got)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openStore(t, 0)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		_, err := store.Record(t.Context(), history.Record{
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			MediaID:       "d1",
			MediaLocation: "/media/a.wav",
			Model:         "tiny",
			Task:          "transcribe",
			TimeUnit:      "milliseconds",
			Status:        history.StatusCompleted,
		})
		if err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	records, err := store.Recent(t.Context(), 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(records))
	}
	if !records[0].CreatedAt.After(records[1].CreatedAt) {
		t.Fatalf("records not newest first: %v then %v", records[0].CreatedAt, records[1].CreatedAt)
	}
}

func TestRecordPrunesBeyondRetention(t *testing.T) {
	store := openStore(t, 2)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		_, err := store.Record(t.Context(), history.Record{
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			MediaID:       "d1",
			MediaLocation: "/media/a.wav",
			Model:         "tiny",
			Task:          "transcribe",
			TimeUnit:      "milliseconds",
			Status:        history.StatusCompleted,
		})
		if err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	records, err := store.Recent(t.Context(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected retention of 2, got %d", len(records))
	}
	if records[0].CreatedAt != base.Add(4*time.Minute) {
		t.Fatalf("newest record pruned: %v", records[0].CreatedAt)
	}
}

func TestRecordFailureKeepsError(t *testing.T) {
	store := openStore(t, 0)

	_, err := store.Record(t.Context(), history.Record{
		MediaID:       "d1",
		MediaLocation: "/media/missing.wav",
		Model:         "tiny",
		Task:          "transcribe",
		TimeUnit:      "milliseconds",
		Status:        history.StatusFailed,
		Error:         "media for document d1: no such file",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	records, err := store.Recent(t.Context(), 1)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if records[0].Status != history.StatusFailed || records[0].Error == "" {
		t.Fatalf("failure not recorded: %+v", records[0])
	}
}
