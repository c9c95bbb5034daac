package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"mediamanager/internal/logging"
	"mediamanager/internal/media"
)

// Store is the in-memory catalog. It is not safe for concurrent use; one
// process invocation owns it for a load, add, save cycle.
type Store struct {
	path     string
	logger   *slog.Logger
	loaded   bool
	dirty    bool
	contents map[media.Kind]map[string]media.Fields
}

// New creates a store backed by path. Nothing is read until Load.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// Path returns the catalog document location.
func (s *Store) Path() string {
	return s.path
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	return s.loaded
}

// Dirty reports whether items were added since the last Load or Save.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Load reads the catalog document. A missing document yields an empty
// container for every kind.
func (s *Store) Load() error {
	contents := emptyContents()

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug("catalog absent; starting empty", logging.String("path", s.path))
	case err != nil:
		return media.Wrap(media.ErrIO, "catalog", "load", "read catalog file", err)
	case len(bytes.TrimSpace(data)) > 0:
		if err := s.decodeContents(data, contents); err != nil {
			return err
		}
	}

	s.contents = contents
	s.loaded = true
	s.dirty = false
	s.logger.Debug("loaded catalog",
		logging.String("path", s.path),
		logging.Int("item_count", s.Count()))
	return nil
}

func emptyContents() map[media.Kind]map[string]media.Fields {
	contents := make(map[media.Kind]map[string]media.Fields, len(media.Kinds()))
	for _, kind := range media.Kinds() {
		contents[kind] = make(map[string]media.Fields)
	}
	return contents
}

func (s *Store) decodeContents(data []byte, contents map[media.Kind]map[string]media.Fields) error {
	var raw map[string]map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return media.Wrap(media.ErrParse, "catalog", "load", "catalog is not valid structured data", err)
	}
	for container, entries := range raw {
		kind, ok := media.KindForContainer(container)
		if !ok {
			return media.Wrap(media.ErrParse, "catalog", "load", fmt.Sprintf("unknown container %q", container), nil)
		}
		for id, values := range entries {
			values, legacyYear := splitLegacyYear(values)
			fields, err := media.FieldsFromMap(values)
			if err != nil {
				return media.Wrap(media.ErrParse, "catalog", "load", fmt.Sprintf("entry %q", id), err)
			}
			if legacyYear != "" {
				fields.Year = legacyYear
				logging.WarnWithContext(s.logger, "catalog entry has a malformed year", "catalog_legacy_year",
					logging.String(logging.FieldIdentifier, id),
					logging.String("year", legacyYear),
					logging.String(logging.FieldErrorHint, "edit the entry's year to four digits"),
					logging.String(logging.FieldImpact, "entry is kept but listed without a year"),
				)
			}
			if fields.ID == "" {
				fields.ID = id
			}
			if fields.ID != id {
				return media.Wrap(media.ErrParse, "catalog", "load", fmt.Sprintf("entry %q carries id %q", id, fields.ID), nil)
			}
			contents[kind][id] = fields
		}
	}
	return nil
}

// splitLegacyYear detaches a scalar year that is not four digits so an old
// entry still loads. The text is kept verbatim and written back on Save.
func splitLegacyYear(values map[string]any) (map[string]any, string) {
	raw, ok := values[media.FieldYear]
	if !ok || raw == nil {
		return values, ""
	}
	if _, err := media.ParseYear(raw); err == nil {
		return values, ""
	}
	var text string
	switch v := raw.(type) {
	case string:
		text = strings.TrimSpace(v)
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return values, ""
	}
	if text == "" {
		return values, ""
	}
	rest := make(map[string]any, len(values)-1)
	for name, value := range values {
		if name != media.FieldYear {
			rest[name] = value
		}
	}
	return rest, text
}

// itemFromFields builds an item from a stored record. A legacy year that
// does not validate is dropped from the item rather than hiding the entry.
func itemFromFields(kind media.Kind, fields media.Fields) (*media.Item, error) {
	item, err := media.NewItem(kind, fields)
	if err == nil || fields.Year == "" {
		return item, err
	}
	if _, yearErr := media.ParseYear(fields.Year); yearErr == nil {
		return nil, err
	}
	fields.Year = ""
	return media.NewItem(kind, fields)
}

// Add inserts a placed item. The item must have an identifier that no other
// item of the same kind uses.
func (s *Store) Add(item *media.Item) error {
	if !s.loaded {
		return media.Wrap(media.ErrOrdering, "catalog", "add", "catalog must be loaded before items are added", nil)
	}
	if item == nil || !item.Addable() {
		return media.Wrap(media.ErrNotAddable, "catalog", "add", "item has no identifier; place it first", nil)
	}
	container, ok := s.contents[item.Kind]
	if !ok {
		return media.Wrap(media.ErrUnknownCategory, "catalog", "add", fmt.Sprintf("%q is not a registered kind", item.Kind), nil)
	}
	id := item.Identifier()
	if _, exists := container[id]; exists {
		return media.Wrap(media.ErrDuplicateIdentifier, "catalog", "add", fmt.Sprintf("identifier %s already cataloged", id), nil)
	}
	container[id] = item.Fields()
	s.dirty = true
	s.logger.Debug("cataloged item",
		logging.String(logging.FieldIdentifier, id),
		logging.String("kind", item.Kind.String()))
	return nil
}

// Save writes the catalog document atomically via a temp file and rename.
func (s *Store) Save() error {
	if !s.loaded {
		return media.Wrap(media.ErrOrdering, "catalog", "save", "catalog must be loaded before it is saved", nil)
	}

	doc := make(map[string]map[string]media.Fields, len(s.contents))
	for kind, entries := range s.contents {
		doc[kind.Plural()] = entries
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return media.Wrap(media.ErrIO, "catalog", "save", "marshal catalog", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return media.Wrap(media.ErrIO, "catalog", "save", "create catalog directory", err)
	}
	if err := writeAtomic(dir, s.path, data); err != nil {
		return media.Wrap(media.ErrIO, "catalog", "save", "write catalog file", err)
	}

	s.dirty = false
	s.logger.Debug("saved catalog", logging.String("path", s.path), logging.Int("item_count", s.Count()))
	return nil
}

const tempSuffix = ".tmp"

// tempPrefix names the hidden temp files Save writes beside path.
func tempPrefix(path string) string {
	return "." + filepath.Base(path) + "."
}

func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, tempPrefix(path)+"*"+tempSuffix)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Lookup finds an item by identifier across every kind.
func (s *Store) Lookup(id string) (*media.Item, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	for _, kind := range media.Kinds() {
		if fields, ok := s.contents[kind][id]; ok {
			item, err := itemFromFields(kind, fields)
			if err != nil {
				return nil, false
			}
			return item, true
		}
	}
	return nil, false
}

// Items returns the items of kind sorted by identifier.
func (s *Store) Items(kind media.Kind) []*media.Item {
	entries := s.contents[kind]
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]*media.Item, 0, len(ids))
	for _, id := range ids {
		item, err := itemFromFields(kind, entries[id])
		if err != nil {
			s.logger.Warn("skipping malformed catalog entry",
				logging.String(logging.FieldIdentifier, id),
				logging.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items
}

// Identifiers returns every cataloged identifier across kinds, sorted.
func (s *Store) Identifiers() []string {
	var ids []string
	for _, entries := range s.contents {
		for id := range entries {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of cataloged items.
func (s *Store) Count() int {
	total := 0
	for _, entries := range s.contents {
		total += len(entries)
	}
	return total
}

// KnownAlbumNames returns every album label used by any item, sorted and
// without duplicates.
func (s *Store) KnownAlbumNames() []string {
	seen := make(map[string]struct{})
	for _, entries := range s.contents {
		for _, fields := range entries {
			for _, album := range fields.Albums {
				if album = strings.TrimSpace(album); album != "" {
					seen[album] = struct{}{}
				}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
