// Package collection runs one add-or-inspect cycle against a media collection.
//
// A Session holds the run lock for the collection's state directory, loads
// the catalog, places files through the placer, and records each placement in
// the journal. Callers open a session, add items, read the suggested follow-up
// commands, and close it. Reconcile compares the tree on disk with the
// catalog.
package collection
