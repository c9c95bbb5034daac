package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"mediamanager/internal/catalog"
	"mediamanager/internal/config"
	"mediamanager/internal/journal"
	"mediamanager/internal/logging"
	"mediamanager/internal/media"
	"mediamanager/internal/placer"
)

// ErrLocked reports that another process holds the collection lock.
var ErrLocked = errors.New("collection is locked by another mediamanager process")

// Session owns the collection for one invocation.
type Session struct {
	cfg     *config.Config
	id      string
	logger  *slog.Logger
	lock    *flock.Flock
	catalog *catalog.Store
	placer  *placer.Placer
	journal *journal.Journal
}

// Result describes one completed addition.
type Result struct {
	Identifier string
	Item       *media.Item
}

// Open acquires the run lock, loads the catalog, and opens the journal when
// enabled. The caller must Close the session.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("collection: config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	s := &Session{
		cfg:    cfg,
		id:     id,
		logger: logging.NewComponentLogger(logger, "collection"),
		lock:   flock.New(cfg.LockPath()),
	}

	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, cfg.LockPath())
	}

	catalog.CleanTempFiles(cfg.CatalogPath(), s.logger)
	s.catalog = catalog.New(cfg.CatalogPath(), logger)
	if err := s.catalog.Load(); err != nil {
		s.release()
		return nil, err
	}

	s.placer = placer.New(cfg.Paths.CollectionRoot,
		placer.WithLogger(logger),
		placer.WithMaxCollisionAttempts(cfg.Placement.MaxCollisionAttempts),
		placer.WithTrackCommand(cfg.Placement.TrackCommand),
		placer.WithReserved(func(identifier string) bool {
			_, ok := s.catalog.Lookup(identifier)
			return ok
		}),
	)

	if cfg.Journal.Enabled {
		j, err := journal.Open(ctx, cfg.JournalPath())
		if err != nil {
			s.release()
			return nil, fmt.Errorf("open journal: %w", err)
		}
		s.journal = j
	}

	s.logger.Debug("collection session opened",
		logging.String(logging.FieldSessionID, id),
		logging.String("root", cfg.Paths.CollectionRoot),
		logging.String("catalog", s.catalog.Path()),
		logging.Int("items", s.catalog.Count()),
		logging.Bool("journal", s.journal != nil))
	return s, nil
}

// ID returns the session identifier attached to logs and journal rows.
func (s *Session) ID() string {
	return s.id
}

// Root returns the collection root.
func (s *Session) Root() string {
	return s.cfg.Paths.CollectionRoot
}

// Catalog exposes the loaded catalog.
func (s *Session) Catalog() *catalog.Store {
	return s.catalog
}

// Journal returns the placement journal, or nil when it is disabled.
func (s *Session) Journal() *journal.Journal {
	return s.journal
}

// KnownAlbumNames returns the album labels already used in the catalog.
func (s *Session) KnownAlbumNames() []string {
	return s.catalog.KnownAlbumNames()
}

// Add places item in the collection, records it in the catalog, and saves the
// catalog. A journal failure is logged and does not fail the addition.
func (s *Session) Add(ctx context.Context, item *media.Item) (Result, error) {
	ctx = logging.WithSession(ctx, s.id)
	logger := logging.WithContext(ctx, s.logger)

	if err := s.placer.Place(ctx, item); err != nil {
		return Result{}, err
	}
	identifier := item.Identifier()
	entryID := s.recordPlacement(ctx, logger, item)

	if err := s.catalog.Add(item); err != nil {
		return Result{}, fmt.Errorf("file placed at %s but not cataloged: %w", identifier, err)
	}
	if err := s.catalog.Save(); err != nil {
		return Result{}, fmt.Errorf("file placed at %s but catalog not saved: %w", identifier, err)
	}

	if s.journal != nil && entryID > 0 {
		if err := s.journal.MarkCataloged(ctx, entryID); err != nil {
			logging.WarnWithContext(logger, "journal update failed", "journal_update_failed",
				logging.String(logging.FieldIdentifier, identifier),
				logging.String(logging.FieldErrorHint, "history may show the item as uncataloged"),
				logging.Error(err))
		}
	}

	logger.Info("item added",
		logging.String(logging.FieldEventType, "item_added"),
		logging.String(logging.FieldIdentifier, identifier),
		logging.Strings("albums", item.Albums))
	return Result{Identifier: identifier, Item: item}, nil
}

// Plan resolves where item would be placed without moving anything.
func (s *Session) Plan(item *media.Item) (placer.Plan, error) {
	return s.placer.Plan(item)
}

func (s *Session) recordPlacement(ctx context.Context, logger *slog.Logger, item *media.Item) int64 {
	if s.journal == nil {
		return 0
	}
	id, err := s.journal.Record(ctx, journal.Entry{
		SessionID:    s.id,
		Identifier:   item.Identifier(),
		Kind:         item.Kind.String(),
		OriginalPath: item.OriginalFilepath,
	})
	if err != nil {
		logging.WarnWithContext(logger, "journal record failed", "journal_record_failed",
			logging.String(logging.FieldIdentifier, item.Identifier()),
			logging.String(logging.FieldImpact, "placement is not listed in history"),
			logging.Error(err))
		return 0
	}
	return id
}

// Commands returns the tracking commands of this session's placements.
func (s *Session) Commands() []string {
	return s.placer.Commands()
}

// Suggestions returns the shell commands a user should run after this
// session: change into the collection root, track every placed file, run the
// configured follow-up commands, and return to workdir. It is empty when
// nothing was placed.
func (s *Session) Suggestions(workdir string) []string {
	tracked := s.placer.Commands()
	if len(tracked) == 0 {
		return nil
	}
	suggestions := make([]string, 0, len(tracked)+len(s.cfg.Commands.FollowUp)+2)
	suggestions = append(suggestions, "cd "+s.placer.Root())
	suggestions = append(suggestions, tracked...)
	suggestions = append(suggestions, s.cfg.Commands.FollowUp...)
	if workdir == "" {
		if wd, err := os.Getwd(); err == nil {
			workdir = wd
		}
	}
	if workdir != "" {
		suggestions = append(suggestions, "cd "+workdir)
	}
	return suggestions
}

// Close releases the journal and the run lock.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.catalog != nil && s.catalog.Dirty() {
		errs = append(errs, fmt.Errorf("catalog has unsaved additions"))
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close journal: %w", err))
		}
		s.journal = nil
	}
	if err := s.release(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Session) release() error {
	if s.lock == nil {
		return nil
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release collection lock", logging.Error(err))
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
