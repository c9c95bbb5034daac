package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Entry is one recorded placement.
type Entry struct {
	ID           int64
	SessionID    string
	Identifier   string
	Kind         string
	OriginalPath string
	Cataloged    bool
	PlacedAt     time.Time
}

// timestampLayout is fixed width so placed_at sorts chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = "id, session_id, identifier, kind, original_path, cataloged, placed_at"

// Record inserts a placement and returns its row ID.
func (j *Journal) Record(ctx context.Context, entry Entry) (int64, error) {
	if strings.TrimSpace(entry.Identifier) == "" {
		return 0, errors.New("journal entry requires an identifier")
	}
	if entry.PlacedAt.IsZero() {
		entry.PlacedAt = time.Now()
	}
	var id int64
	err := retryOnBusy(ctx, func() error {
		res, err := j.db.ExecContext(ctx,
			"INSERT INTO placements (session_id, identifier, kind, original_path, cataloged, placed_at) VALUES (?, ?, ?, ?, ?, ?)",
			entry.SessionID, entry.Identifier, entry.Kind, entry.OriginalPath, boolToInt(entry.Cataloged),
			entry.PlacedAt.UTC().Format(timestampLayout),
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("record placement %s: %w", entry.Identifier, err)
	}
	return id, nil
}

// MarkCataloged flags a recorded placement as saved in the catalog.
func (j *Journal) MarkCataloged(ctx context.Context, id int64) error {
	err := retryOnBusy(ctx, func() error {
		_, err := j.db.ExecContext(ctx, "UPDATE placements SET cataloged = 1 WHERE id = ?", id)
		return err
	})
	if err != nil {
		return fmt.Errorf("mark placement %d cataloged: %w", id, err)
	}
	return nil
}

// Recent returns up to limit placements, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM placements ORDER BY placed_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Latest returns the most recent placement recorded for identifier.
func (j *Journal) Latest(ctx context.Context, identifier string) (Entry, bool, error) {
	rows, err := j.db.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM placements WHERE identifier = ? ORDER BY placed_at DESC, id DESC LIMIT 1", identifier)
	if err != nil {
		return Entry{}, false, fmt.Errorf("query placement %s: %w", identifier, err)
	}
	defer rows.Close()
	entries, err := scanEntries(rows)
	if err != nil {
		return Entry{}, false, err
	}
	if len(entries) == 0 {
		return Entry{}, false, nil
	}
	return entries[0], true, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			cataloged int
			placedAt  string
		)
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Identifier, &entry.Kind, &entry.OriginalPath, &cataloged, &placedAt); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		entry.Cataloged = cataloged != 0
		entry.PlacedAt = parseTimestamp(placedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate placements: %w", err)
	}
	return entries, nil
}

func parseTimestamp(value string) time.Time {
	if ts, err := time.Parse(timestampLayout, value); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts
	}
	return time.Time{}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
