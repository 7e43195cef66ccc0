package config

import "errors"

// Sentinel errors returned by the resolver to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrConfigLoad wraps any unexpected failure while reading or resolving
	// a configuration section. A missing settings file is not a load
	// failure; it degrades to an empty baseline and is only logged.
	ErrConfigLoad = errors.New("configuration load failed")

	// ErrConfigPersist wraps file or backend I/O failures during Save.
	// The stored document is never partially written: either the full
	// merged document is committed or nothing is.
	ErrConfigPersist = errors.New("configuration persist failed")

	// ErrUnknownSection is returned when Load is asked for a section
	// outside the known set.
	ErrUnknownSection = errors.New("unknown configuration section")
)
