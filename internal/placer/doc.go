// Package placer moves source media into the collection tree and assigns each
// item its identifier.
//
// Files land at <root>/<kind plural>/<year>/<slug>.<ext>. When that name is
// taken, an underscore is inserted before the extension, repeatedly, until a
// free name is found; existing files are never overwritten. The identifier is
// the destination relative to the root with forward slashes, and every
// placement records a tracking command the caller may suggest to the user.
package placer
