// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 dsdgdxxx

package config

// Snapshot is the resolved key/value view of one configuration section.
// A Snapshot is built fresh by [Resolver.Load] and swapped in whole on
// reload; callers must treat it as read-only.
type Snapshot map[string]any

// String returns the string value stored under key, or "" when the key is
// absent or holds a non-string value.
func (s Snapshot) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Int returns the integer value stored under key, or 0 when the key is
// absent or holds a non-numeric value. TOML and env-sourced integers are
// int64; whole float64 values (e.g. from a JSON-encoded backend) are
// accepted too.
func (s Snapshot) Int(key string) int64 {
	switch v := s[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Bool returns the boolean value stored under key, or false when the key is
// absent or holds a non-boolean value.
func (s Snapshot) Bool(key string) bool {
	v, _ := s[key].(bool)
	return v
}
