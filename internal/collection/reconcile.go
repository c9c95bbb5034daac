package collection

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"mediamanager/internal/fileutil"
	"mediamanager/internal/logging"
	"mediamanager/internal/media"
)

// IssueKind classifies a reconciliation finding.
type IssueKind string

const (
	// IssueOrphan is a file in the tree with no catalog entry.
	IssueOrphan IssueKind = "orphan"
	// IssueMissing is a catalog entry whose file is gone.
	IssueMissing IssueKind = "missing"
)

// Issue is one disagreement between the tree and the catalog.
type Issue struct {
	Kind       IssueKind
	Identifier string
	// OriginalPath and SessionID come from the journal when it knows the
	// identifier.
	OriginalPath string
	SessionID    string
}

// Report lists every reconciliation finding, sorted by identifier.
type Report struct {
	Scanned int
	Orphans []Issue
	Missing []Issue
}

// Clean reports whether the tree and the catalog agree.
func (r Report) Clean() bool {
	return len(r.Orphans) == 0 && len(r.Missing) == 0
}

// Issues returns orphans followed by missing entries.
func (r Report) Issues() []Issue {
	out := make([]Issue, 0, len(r.Orphans)+len(r.Missing))
	out = append(out, r.Orphans...)
	return append(out, r.Missing...)
}

// Reconcile compares the files below each kind directory with the catalog.
// Symlinks count as present files so annexed content that is not local is
// not reported missing.
func (s *Session) Reconcile(ctx context.Context) (Report, error) {
	ctx = logging.WithSession(ctx, s.id)
	logger := logging.WithContext(ctx, s.logger)

	var report Report
	onDisk := make(map[string]struct{})
	root := s.cfg.Paths.CollectionRoot
	for _, kind := range media.Kinds() {
		dir := filepath.Join(root, kind.Plural())
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) && path == dir {
					return filepath.SkipDir
				}
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			onDisk[filepath.ToSlash(rel)] = struct{}{}
			return nil
		})
		if err != nil {
			return Report{}, media.Wrap(media.ErrIO, "collection", "reconcile", fmt.Sprintf("scan %s", dir), err)
		}
	}
	report.Scanned = len(onDisk)

	for identifier := range onDisk {
		if _, ok := s.catalog.Lookup(identifier); ok {
			continue
		}
		report.Orphans = append(report.Orphans, s.annotate(ctx, Issue{Kind: IssueOrphan, Identifier: identifier}))
	}
	for _, identifier := range s.catalog.Identifiers() {
		if _, ok := onDisk[identifier]; ok {
			continue
		}
		present, err := fileutil.Exists(filepath.Join(root, filepath.FromSlash(identifier)))
		if err != nil {
			return Report{}, media.Wrap(media.ErrIO, "collection", "reconcile", fmt.Sprintf("inspect %s", identifier), err)
		}
		if present {
			continue
		}
		issue := Issue{Kind: IssueMissing, Identifier: identifier}
		if item, ok := s.catalog.Lookup(identifier); ok {
			issue.OriginalPath = item.OriginalFilepath
		}
		report.Missing = append(report.Missing, issue)
	}

	sortIssues(report.Orphans)
	sortIssues(report.Missing)

	logger.Info("reconcile complete",
		logging.Int("scanned", report.Scanned),
		logging.Int("orphans", len(report.Orphans)),
		logging.Int("missing", len(report.Missing)))
	return report, nil
}

func (s *Session) annotate(ctx context.Context, issue Issue) Issue {
	if s.journal == nil {
		return issue
	}
	entry, ok, err := s.journal.Latest(ctx, issue.Identifier)
	if err != nil {
		s.logger.Debug("journal lookup failed", logging.String(logging.FieldIdentifier, issue.Identifier), logging.Error(err))
		return issue
	}
	if ok {
		issue.OriginalPath = entry.OriginalPath
		issue.SessionID = entry.SessionID
	}
	return issue
}

func sortIssues(issues []Issue) {
	sort.Slice(issues, func(i, j int) bool { return issues[i].Identifier < issues[j].Identifier })
}
