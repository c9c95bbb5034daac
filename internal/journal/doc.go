// Package journal records every placement in a local SQLite database.
//
// The catalog is the source of truth for item metadata; the journal only
// remembers where each placed file came from and which invocation placed it.
// Reconciliation uses it to explain orphaned files (placed but never
// cataloged because the process stopped between the move and the catalog
// save), and the history command lists recent placements.
package journal
