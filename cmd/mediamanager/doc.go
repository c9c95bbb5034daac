// Package main hosts the mediamanager CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into collection sessions:
// adding photos and videos, listing the catalog and its albums, reviewing the
// placement journal, and reconciling the tree with the catalog. Configuration
// resolution and logger setup live here so the internal packages stay free
// of any particular front end.
package main
