// Package config implements the layered configuration resolver for the
// application.
//
// The resolved view of a section is assembled from the following sources in
// priority order (later sources override earlier values):
//  1. TOML settings document (file, or pluggable persistence backend)
//  2. Environment variables, typed per the fixed override table
//
// followed by grok-section canonicalization of the proxy scheme and the
// clearance token. The main entry point is [New], which eagerly resolves
// both sections and keeps them refreshed through [Resolver.Reload] and
// [Resolver.Save].
package config
