package journal_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mediamanager/internal/journal"
)

func openJournal(t *testing.T) *journal.Journal {
	t.Helper()
	j, err := journal.Open(context.Background(), filepath.Join(t.TempDir(), "state", "journal.db"))
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"photos/2011/a.jpg", "photos/2011/b.jpg", "videos/1999/c.mov"} {
		if _, err := j.Record(ctx, journal.Entry{
			SessionID:    "s1",
			Identifier:   id,
			Kind:         "photo",
			OriginalPath: "/in/" + id,
			PlacedAt:     base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("Record %s: %v", id, err)
		}
	}

	entries, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Identifier != "videos/1999/c.mov" || entries[1].Identifier != "photos/2011/b.jpg" {
		t.Fatalf("unexpected order: %+v", entries)
	}
	if !entries[0].PlacedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("unexpected timestamp %v", entries[0].PlacedAt)
	}
}

func TestMarkCatalogedAndLatest(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	id, err := j.Record(ctx, journal.Entry{SessionID: "s1", Identifier: "photos/2011/a.jpg", Kind: "photo", OriginalPath: "/in/a.jpg"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	entry, ok, err := j.Latest(ctx, "photos/2011/a.jpg")
	if err != nil || !ok {
		t.Fatalf("Latest: ok=%v err=%v", ok, err)
	}
	if entry.Cataloged {
		t.Fatal("new entry should not be cataloged")
	}
	if err := j.MarkCataloged(ctx, id); err != nil {
		t.Fatalf("MarkCataloged: %v", err)
	}
	entry, _, _ = j.Latest(ctx, "photos/2011/a.jpg")
	if !entry.Cataloged || entry.OriginalPath != "/in/a.jpg" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	if _, ok, err := j.Latest(ctx, "photos/2011/missing.jpg"); err != nil || ok {
		t.Fatalf("expected no entry, ok=%v err=%v", ok, err)
	}
}

func TestRecordRequiresIdentifier(t *testing.T) {
	j := openJournal(t)
	if _, err := j.Record(context.Background(), journal.Entry{SessionID: "s1"}); err == nil {
		t.Fatal("expected error for empty identifier")
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := j.Record(ctx, journal.Entry{SessionID: "s1", Identifier: "photos/2011/a.jpg", Kind: "photo", OriginalPath: "/a"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := journal.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.Recent(ctx, 10)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one entry after reopen, got %d (%v)", len(entries), err)
	}
}

func TestRecentOrdersSubSecondPlacements(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	base := time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC)
	// Record the later placement first so insertion order cannot mask the sort.
	for _, tc := range []struct {
		id     string
		offset time.Duration
	}{
		{"photos/2011/newer.jpg", 120 * time.Millisecond},
		{"photos/2011/older.jpg", 100 * time.Millisecond},
		{"photos/2011/oldest.jpg", 0},
	} {
		if _, err := j.Record(ctx, journal.Entry{SessionID: "s1", Identifier: tc.id, Kind: "photo", OriginalPath: "/in", PlacedAt: base.Add(tc.offset)}); err != nil {
			t.Fatalf("Record %s: %v", tc.id, err)
		}
	}

	entries, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	var got []string
	for _, entry := range entries {
		got = append(got, entry.Identifier)
	}
	want := []string{"photos/2011/newer.jpg", "photos/2011/older.jpg", "photos/2011/oldest.jpg"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("newest first = %v, want %v", got, want)
	}
	if !entries[1].PlacedAt.Equal(base.Add(100 * time.Millisecond)) {
		t.Fatalf("timestamp lost precision: %v", entries[1].PlacedAt)
	}
}

func TestLatestPicksNewestSubSecondPlacement(t *testing.T) {
	ctx := context.Background()
	j := openJournal(t)

	base := time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC)
	id := "photos/2011/a.jpg"
	if _, err := j.Record(ctx, journal.Entry{SessionID: "new", Identifier: id, Kind: "photo", OriginalPath: "/new", PlacedAt: base.Add(120 * time.Millisecond)}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := j.Record(ctx, journal.Entry{SessionID: "old", Identifier: id, Kind: "photo", OriginalPath: "/old", PlacedAt: base.Add(100 * time.Millisecond)}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entry, ok, err := j.Latest(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Latest: ok=%v err=%v", ok, err)
	}
	if entry.SessionID != "new" || entry.OriginalPath != "/new" {
		t.Fatalf("expected newest placement, got %+v", entry)
	}
}
