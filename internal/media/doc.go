// Package media defines the item model shared by the catalog and the placer.
//
// An Item is a photo or video descriptor: its kind, year, optional title,
// source path, and album labels. Items carry an identifier only after they
// have been placed in the collection tree; the identifier is the item's path
// relative to the collection root and never changes once assigned.
//
// The package also owns the slug rules used to derive filenames and the
// sentinel error markers every other package classifies failures with.
package media
