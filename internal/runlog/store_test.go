package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "run.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	ts := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Timestamp: ts, FileName: "a.pdf", Status: "OK", Filled: 38, Total: 40, Percent: 95.0},
		{Timestamp: ts, FileName: "b.pdf", Status: "LOW_QUALITY", Filled: 5, Total: 40, Percent: 12.5, Missing: "الجنسية, الديانة", Note: "fallback failed: api down"},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append(%s): %v", e.FileName, err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(got))
	}
	if got[0].FileName != "a.pdf" || got[1].FileName != "b.pdf" {
		t.Errorf("insertion order lost: %q then %q", got[0].FileName, got[1].FileName)
	}
	if got[1].Missing != "الجنسية, الديانة" {
		t.Errorf("missing = %q", got[1].Missing)
	}
	if got[1].Percent != 12.5 {
		t.Errorf("percent = %v", got[1].Percent)
	}
	if !got[0].Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, ts)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "run.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := store.Init(ctx); err != nil {
		t.Fatalf("second Init: %v", err)
	}
}
