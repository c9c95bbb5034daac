package placer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"mediamanager/internal/media"
	"mediamanager/internal/placer"
	"mediamanager/internal/testsupport"
)

func TestPlaceMoveFailureLeavesSourceAndNoIdentifier(t *testing.T) {
	restore := placer.SetRenameForTests(func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EACCES}
	})
	defer restore()

	root := t.TempDir()
	source := filepath.Join(t.TempDir(), "IMG_9.JPG")
	testsupport.WriteFile(t, source, 7)

	p := placer.New(root)
	item := newPhoto(t, source, "2011", "")
	err := p.Place(context.Background(), item)
	if !errors.Is(err, media.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
	if item.HasIdentifier() {
		t.Fatalf("identifier %q assigned despite failed move", item.Identifier())
	}
	if info, statErr := os.Stat(source); statErr != nil || info.Size() != 7 {
		t.Fatalf("source should be intact: %v", statErr)
	}
	if _, statErr := os.Stat(filepath.Join(root, "photos", "2011", "img_9.jpg")); !os.IsNotExist(statErr) {
		t.Fatalf("destination should not exist, stat err=%v", statErr)
	}
	if len(p.Commands()) != 0 {
		t.Fatalf("no command expected, got %v", p.Commands())
	}
}

func TestPlaceCrossDeviceCopiesAndRemovesSource(t *testing.T) {
	restore := placer.SetRenameForTests(func(src, dst string) error {
		return &os.LinkError{Op: "renameat2", Old: src, New: dst, Err: syscall.EXDEV}
	})
	defer restore()

	root := t.TempDir()
	source := filepath.Join(t.TempDir(), "IMG_9.JPG")
	if err := os.WriteFile(source, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	p := placer.New(root)
	item := newPhoto(t, source, "2011", "")
	if err := p.Place(context.Background(), item); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if item.Identifier() != "photos/2011/img_9.jpg" {
		t.Fatalf("unexpected identifier %q", item.Identifier())
	}
	got, err := os.ReadFile(filepath.Join(root, "photos", "2011", "img_9.jpg"))
	if err != nil || string(got) != "payload" {
		t.Fatalf("copied content = %q, err=%v", got, err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("source should be removed after copy, stat err=%v", err)
	}
}

func TestPlaceCrossDeviceCopyFailureLeavesSource(t *testing.T) {
	restore := placer.SetRenameForTests(func(src, dst string) error {
		// Occupy the destination so the exclusive copy cannot create it.
		if err := os.WriteFile(dst, []byte("other"), 0o644); err != nil {
			return err
		}
		return &os.LinkError{Op: "renameat2", Old: src, New: dst, Err: syscall.EXDEV}
	})
	defer restore()

	root := t.TempDir()
	source := filepath.Join(t.TempDir(), "IMG_9.JPG")
	testsupport.WriteFile(t, source, 3)

	p := placer.New(root)
	item := newPhoto(t, source, "2011", "")
	if err := p.Place(context.Background(), item); !errors.Is(err, media.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
	if item.HasIdentifier() {
		t.Fatal("identifier assigned despite failed copy")
	}
	if _, err := os.Stat(source); err != nil {
		t.Fatalf("source should be intact: %v", err)
	}
	got, _ := os.ReadFile(filepath.Join(root, "photos", "2011", "img_9.jpg"))
	if string(got) != "other" {
		t.Fatalf("existing destination overwritten: %q", got)
	}
}
