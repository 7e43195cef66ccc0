// Package store provides the SQLite-backed persistence layer for the
// settings document. It implements the resolver's Backend contract:
// the full document is loaded and replaced as a unit, never row by row
// from the caller's point of view.
package store
