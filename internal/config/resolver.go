// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 dsdgdxxx

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"dario.cat/mergo"

	"github.com/dsdgdxxx/grok2api/internal/logger"
)

// Backend is the optional pluggable persistence layer for the settings
// document. When a Resolver has no backend it reads and writes the TOML
// settings file directly.
type Backend interface {
	LoadConfig(ctx context.Context) (Document, error)
	SaveConfig(ctx context.Context, doc Document) error
}

// Resolver is the single authority for producing and refreshing the typed
// configuration snapshots and for deriving proxy endpoints.
//
// Load, Reload and Save are the only mutators. Snapshot reads are safe at
// any time, including while a save is in flight, because both snapshots are
// replaced together under one write lock and never mutated in place.
type Resolver struct {
	path    string
	backend Backend
	log     *logger.Logger

	mu      sync.RWMutex // guards the snapshot pair
	global  Snapshot
	service Snapshot

	saveMu sync.Mutex // serializes the read-merge-write-reload sequence
}

// New constructs a Resolver bound to the settings document at path and
// eagerly resolves both sections. backend may be nil, which selects the
// direct-file path.
func New(ctx context.Context, path string, backend Backend, log *logger.Logger) (*Resolver, error) {
	r := &Resolver{
		path:    path,
		backend: backend,
		log:     log,
	}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Load resolves one section: persisted baseline, then environment
// overrides, then grok-section canonicalization. The returned Snapshot is
// fresh and does not touch the resolver's live state.
func (r *Resolver) Load(ctx context.Context, section Section) (Snapshot, error) {
	rules, ok := overrideRules[section]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	doc, err := r.loadDocument(ctx)
	if err != nil {
		return nil, errors.Join(ErrConfigLoad, err)
	}

	values := doc.section(section)
	applyOverrides(values, rules, r.log)

	if section == SectionGrok {
		normalizeGrok(values)
	}

	return Snapshot(values), nil
}

// Reload re-resolves both sections and swaps them in together. Concurrent
// readers observe either the old pair or the new pair, never a mix.
func (r *Resolver) Reload(ctx context.Context) error {
	global, err := r.Load(ctx, SectionGlobal)
	if err != nil {
		return err
	}
	service, err := r.Load(ctx, SectionGrok)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.global = global
	r.service = service
	r.mu.Unlock()

	return nil
}

// Save upserts the provided partial mappings into the persisted settings
// document, writes the whole document back, then reloads both in-memory
// snapshots. Either partial may be nil.
//
// The clearance token is stored prefix-free; the resolved view regains the
// cf_clearance= prefix on reload. A file or backend failure is reported as
// [ErrConfigPersist] and commits nothing.
func (r *Resolver) Save(ctx context.Context, global, grok map[string]any) error {
	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	doc, err := r.loadDocument(ctx)
	if err != nil {
		return errors.Join(ErrConfigPersist, err)
	}

	if len(global) > 0 {
		if err := upsert(doc, SectionGlobal, global); err != nil {
			return errors.Join(ErrConfigPersist, err)
		}
	}
	if len(grok) > 0 {
		if err := upsert(doc, SectionGrok, stripClearance(grok)); err != nil {
			return errors.Join(ErrConfigPersist, err)
		}
	}

	if r.backend != nil {
		err = r.backend.SaveConfig(ctx, doc)
	} else {
		err = writeDocument(r.path, doc)
	}
	if err != nil {
		return errors.Join(ErrConfigPersist, err)
	}

	return r.Reload(ctx)
}

// Global returns the current resolved global snapshot.
func (r *Resolver) Global() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.global
}

// Service returns the current resolved grok snapshot.
func (r *Resolver) Service() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.service
}

// ServiceProxy returns the grok proxy endpoint, or "" when unset. Used by
// the upstream client and upload paths.
func (r *Resolver) ServiceProxy() string {
	return r.Service().String(keyProxyURL)
}

// CacheProxy returns the proxy endpoint for cache downloads: the dedicated
// cache proxy when set, otherwise the service proxy. The cache inherits the
// service proxy unless explicitly overridden.
func (r *Resolver) CacheProxy() string {
	snap := r.Service()
	if v := snap.String(keyCacheProxyURL); v != "" {
		return v
	}
	return snap.String(keyProxyURL)
}

// loadDocument fetches the full persisted settings document from the
// backend when one is configured, otherwise from the settings file. A
// missing settings file degrades to an empty document.
func (r *Resolver) loadDocument(ctx context.Context) (Document, error) {
	if r.backend != nil {
		return r.backend.LoadConfig(ctx)
	}

	doc, err := readDocument(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.log.Warn().
			Str("path", r.path).
			Msg("settings file not found, using environment variables and defaults")
		return Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// upsert merges partial into the named document section, overwriting
// existing keys and keeping the rest.
func upsert(doc Document, section Section, partial map[string]any) error {
	dst := doc[string(section)]
	if dst == nil {
		dst = make(map[string]any, len(partial))
	}
	if err := mergo.Merge(&dst, partial, mergo.WithOverride); err != nil {
		return fmt.Errorf("error merging %s section: %w", section, err)
	}
	doc[string(section)] = dst
	return nil
}

// stripClearance returns a copy of partial with the clearance prefix
// removed so the persisted representation stays prefix-free.
func stripClearance(partial map[string]any) map[string]any {
	v, ok := partial[keyCFClearance].(string)
	if !ok || v == "" {
		return partial
	}

	out := make(map[string]any, len(partial))
	for k, val := range partial {
		out[k] = val
	}
	out[keyCFClearance] = rawClearance(v)
	return out
}
