package placer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"mediamanager/internal/logging"
	"mediamanager/internal/media"
)

const (
	defaultMaxCollisionAttempts = 1000
	defaultTrackCommand         = "git annex add"
)

// Placer owns the directory layout below a collection root.
type Placer struct {
	root         string
	logger       *slog.Logger
	maxAttempts  int
	trackCommand string
	reserved     func(identifier string) bool
	commands     []string
}

// Option customizes a Placer.
type Option func(*Placer)

// WithLogger sets the logger used for placement events.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Placer) {
		p.logger = logging.NewComponentLogger(logger, "placer")
	}
}

// WithMaxCollisionAttempts bounds how many candidate names are tried.
func WithMaxCollisionAttempts(n int) Option {
	return func(p *Placer) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithTrackCommand sets the prefix of the per-file tracking command.
func WithTrackCommand(command string) Option {
	return func(p *Placer) {
		if command = strings.TrimSpace(command); command != "" {
			p.trackCommand = command
		}
	}
}

// WithReserved marks identifiers as taken even when no file exists for them,
// such as catalog entries whose file went missing.
func WithReserved(reserved func(identifier string) bool) Option {
	return func(p *Placer) {
		p.reserved = reserved
	}
}

// New constructs a placer rooted at root.
func New(root string, opts ...Option) *Placer {
	p := &Placer{
		root:         filepath.Clean(root),
		logger:       logging.NewComponentLogger(nil, "placer"),
		maxAttempts:  defaultMaxCollisionAttempts,
		trackCommand: defaultTrackCommand,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Root returns the collection root.
func (p *Placer) Root() string {
	return p.root
}

// Commands returns the tracking commands recorded so far, in placement order.
func (p *Placer) Commands() []string {
	return append([]string(nil), p.commands...)
}

// EnsureDirectory creates <root>/<kind plural>[/<year>] and returns its path.
// Calling it again for the same arguments is a no-op.
func (p *Placer) EnsureDirectory(kind media.Kind, year string) (string, error) {
	if !kind.Valid() {
		return "", media.Wrap(media.ErrUnknownCategory, "placer", "ensure directory", fmt.Sprintf("%q is not a registered category", kind), nil)
	}
	dir := filepath.Join(p.root, kind.Plural())
	if strings.TrimSpace(year) != "" {
		segment, err := media.ParseYear(year)
		if err != nil {
			return "", err
		}
		dir = filepath.Join(dir, segment)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", media.Wrap(media.ErrIO, "placer", "ensure directory", fmt.Sprintf("create %s", dir), err)
	}
	return dir, nil
}

// Plan is the destination computed for an item before anything is moved.
type Plan struct {
	Source      string
	Destination string
	Identifier  string
}

// Plan validates item and resolves its destination without touching the
// filesystem beyond existence checks.
func (p *Placer) Plan(item *media.Item) (Plan, error) {
	if item == nil {
		return Plan{}, media.Wrap(media.ErrValidation, "placer", "plan", "item is required", nil)
	}
	if item.HasIdentifier() {
		return Plan{}, media.Wrap(media.ErrValidation, "placer", "plan", fmt.Sprintf("item already placed as %s", item.Identifier()), nil)
	}
	if !item.Kind.Valid() {
		return Plan{}, media.Wrap(media.ErrUnknownCategory, "placer", "plan", fmt.Sprintf("%q is not a registered category", item.Kind), nil)
	}
	if strings.TrimSpace(item.Year) == "" {
		return Plan{}, media.Wrap(media.ErrValidation, "placer", "plan", "year is required for placement", nil)
	}
	year, err := media.ParseYear(item.Year)
	if err != nil {
		return Plan{}, err
	}

	source := strings.TrimSpace(item.OriginalFilepath)
	if source == "" {
		return Plan{}, media.Wrap(media.ErrValidation, "placer", "plan", "original_filepath is required", nil)
	}
	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Plan{}, media.Wrap(media.ErrSourceNotFound, "placer", "plan", fmt.Sprintf("%s does not exist", source), nil)
		}
		return Plan{}, media.Wrap(media.ErrIO, "placer", "plan", "inspect source", err)
	}
	if !info.Mode().IsRegular() {
		return Plan{}, media.Wrap(media.ErrValidation, "placer", "plan", fmt.Sprintf("%s is not a regular file", source), nil)
	}

	dir := filepath.Join(p.root, item.Kind.Plural(), year)
	prefix := path.Join(item.Kind.Plural(), year)
	var reserved func(string) bool
	if p.reserved != nil {
		reserved = func(name string) bool { return p.reserved(path.Join(prefix, name)) }
	}
	name, err := resolveFilename(dir, media.BaseName(item.Title, source), media.Extension(source), p.maxAttempts, reserved)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Source:      source,
		Destination: filepath.Join(dir, name),
		Identifier:  path.Join(prefix, name),
	}, nil
}

// Place moves the item's source file into the collection and assigns its
// identifier. On failure the source is left where it was and the item keeps
// no identifier.
func (p *Placer) Place(ctx context.Context, item *media.Item) error {
	logger := logging.WithContext(ctx, p.logger)

	plan, err := p.Plan(item)
	if err != nil {
		return err
	}
	if _, err := p.EnsureDirectory(item.Kind, item.Year); err != nil {
		return err
	}
	if err := p.move(logger, plan.Source, plan.Destination); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return media.Wrap(media.ErrIO, "placer", "move", fmt.Sprintf("%s appeared while placing; retry the placement", plan.Identifier), err)
		}
		return media.Wrap(media.ErrIO, "placer", "move", fmt.Sprintf("move %s into the collection", plan.Source), err)
	}

	if err := item.AssignIdentifier(plan.Identifier); err != nil {
		return err
	}
	p.commands = append(p.commands, p.trackCommand+" "+plan.Identifier)

	logger.Info("file placed",
		logging.String(logging.FieldIdentifier, plan.Identifier),
		logging.String("source", plan.Source),
		logging.String("kind", item.Kind.String()))
	return nil
}
