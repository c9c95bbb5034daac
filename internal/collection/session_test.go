package collection_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mediamanager/internal/collection"
	"mediamanager/internal/config"
	"mediamanager/internal/logging"
	"mediamanager/internal/media"
	"mediamanager/internal/testsupport"
)

func openSession(t *testing.T, cfg *config.Config) *collection.Session {
	t.Helper()
	session, err := collection.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("collection.Open: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func newItem(t *testing.T, kind media.Kind, source, year, title string, albums ...string) *media.Item {
	t.Helper()
	item, err := media.NewItem(kind, media.Fields{
		OriginalFilepath: source,
		Year:             year,
		Title:            title,
		Albums:           albums,
	})
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	return item
}

func TestAddPlacesAndCatalogs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	session := openSession(t, cfg)

	source := testsupport.InboxFile(t, "IMG_1285.JPG", 16)
	result, err := session.Add(context.Background(), newItem(t, media.KindPhoto, source, "2011", "", "Holidays"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if result.Identifier != "photos/2011/img_1285.jpg" {
		t.Fatalf("unexpected identifier %q", result.Identifier)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.CollectionRoot, "photos", "2011", "img_1285.jpg")); err != nil {
		t.Fatalf("placed file missing: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err=%v", err)
	}

	data, err := os.ReadFile(cfg.CatalogPath())
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	var doc map[string]map[string]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	entry, ok := doc["photos"]["photos/2011/img_1285.jpg"]
	if !ok {
		t.Fatalf("catalog entry missing: %s", data)
	}
	if entry["original_filepath"] != source || entry["year"] != "2011" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["title"]; ok {
		t.Fatalf("empty title should be omitted: %v", entry)
	}
	if _, ok := doc["videos"]; !ok {
		t.Fatalf("videos container missing: %s", data)
	}
	if got := session.KnownAlbumNames(); !reflect.DeepEqual(got, []string{"Holidays"}) {
		t.Fatalf("unexpected albums %v", got)
	}
}

func TestAddSameTitleTwiceGetsMarker(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	session := openSession(t, cfg)
	ctx := context.Background()

	first, err := session.Add(ctx, newItem(t, media.KindPhoto, testsupport.InboxFile(t, "a.jpg", 4), "2011", "Some nice title"))
	if err != nil {
		t.Fatalf("first Add: %v", err)
	}
	second, err := session.Add(ctx, newItem(t, media.KindPhoto, testsupport.InboxFile(t, "b.jpg", 8), "2011", "Some nice title"))
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if first.Identifier != "photos/2011/some-nice-title.jpg" || second.Identifier != "photos/2011/some-nice-title_.jpg" {
		t.Fatalf("unexpected identifiers %q %q", first.Identifier, second.Identifier)
	}
	if session.Catalog().Count() != 2 {
		t.Fatalf("expected 2 cataloged items, got %d", session.Catalog().Count())
	}
}

func TestAddSkipsIdentifierOfMissingFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	session, err := collection.Open(ctx, cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := session.Add(ctx, newItem(t, media.KindVideo, testsupport.InboxFile(t, "clip.mp4", 4), "1999", "")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := os.Remove(filepath.Join(cfg.Paths.CollectionRoot, "videos", "1999", "clip.mp4")); err != nil {
		t.Fatalf("remove placed file: %v", err)
	}

	reopened := openSession(t, cfg)
	result, err := reopened.Add(ctx, newItem(t, media.KindVideo, testsupport.InboxFile(t, "clip.mp4", 4), "1999", ""))
	if err != nil {
		t.Fatalf("Add after removal: %v", err)
	}
	if result.Identifier != "videos/1999/clip_.mp4" {
		t.Fatalf("expected cataloged name to stay reserved, got %q", result.Identifier)
	}
}

func TestAddFailureLeavesSourceAndCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	session := openSession(t, cfg)

	missing := filepath.Join(testsupport.BaseDir(cfg), "inbox", "nope.jpg")
	_, err := session.Add(context.Background(), newItem(t, media.KindPhoto, missing, "2011", ""))
	if !errors.Is(err, media.ErrSourceNotFound) {
		t.Fatalf("expected source not found, got %v", err)
	}
	if session.Catalog().Count() != 0 || session.Catalog().Dirty() {
		t.Fatal("catalog changed after failed add")
	}
	if len(session.Suggestions("/work")) != 0 {
		t.Fatal("no suggestions expected without placements")
	}
}

func TestSuggestions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Commands.FollowUp = []string{"git annex sync"}
	session := openSession(t, cfg)

	if _, err := session.Add(context.Background(), newItem(t, media.KindPhoto, testsupport.InboxFile(t, "IMG_1285.JPG", 4), "2011", "")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := []string{
		"cd " + cfg.Paths.CollectionRoot,
		"git annex add photos/2011/img_1285.jpg",
		"git annex sync",
		"cd /work",
	}
	if got := session.Suggestions("/work"); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected suggestions\n got: %v\nwant: %v", got, want)
	}
}

func TestAddRecordsJournal(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournal(true))
	session := openSession(t, cfg)
	ctx := context.Background()

	source := testsupport.InboxFile(t, "dog.png", 4)
	if _, err := session.Add(ctx, newItem(t, media.KindPhoto, source, "2020", "Dog")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	entries, err := session.Journal().Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 journal entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Identifier != "photos/2020/dog.png" || entry.OriginalPath != source || entry.SessionID != session.ID() || !entry.Cataloged {
		t.Fatalf("unexpected journal entry %+v", entry)
	}
}

func TestJournalDisabled(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithJournal(false))
	session := openSession(t, cfg)
	if session.Journal() != nil {
		t.Fatal("journal should be nil when disabled")
	}
	if _, err := os.Stat(cfg.JournalPath()); !os.IsNotExist(err) {
		t.Fatalf("journal file should not exist, stat err=%v", err)
	}
}

func TestOpenRefusesConcurrentSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	openSession(t, cfg)

	_, err := collection.Open(context.Background(), cfg, logging.NewNop())
	if !errors.Is(err, collection.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestOpenAfterCloseSucceeds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := collection.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	openSession(t, cfg)
}

func TestOpenRejectsCorruptCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.WriteFile(cfg.CatalogPath(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := collection.Open(context.Background(), cfg, logging.NewNop()); !errors.Is(err, media.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
	// The lock must be released after a failed open.
	if err := os.WriteFile(cfg.CatalogPath(), []byte("{}"), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}
	openSession(t, cfg)
}

func TestPlanLeavesCollectionUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	session := openSession(t, cfg)

	source := testsupport.InboxFile(t, "IMG_1285.JPG", 4)
	plan, err := session.Plan(newItem(t, media.KindPhoto, source, "2011", ""))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Identifier != "photos/2011/img_1285.jpg" {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source moved by plan: %v", err)
	}
	if session.Catalog().Count() != 0 || len(session.Commands()) != 0 {
		t.Fatal("plan must not catalog or record commands")
	}
}
