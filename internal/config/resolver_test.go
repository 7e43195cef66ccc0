// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 dsdgdxxx

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsdgdxxx/grok2api/internal/logger"
)

func newTestResolver(t *testing.T, backend Backend) (*Resolver, string) {
	t.Helper()
	clearEnvVars(t)

	path := filepath.Join(t.TempDir(), "setting.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSettings), 0o644))

	r, err := New(context.Background(), path, backend, logger.Nop())
	require.NoError(t, err)
	return r, path
}

func TestResolver_LoadBaselinePassThrough(t *testing.T) {
	// Arrange
	r, _ := newTestResolver(t, nil)

	// Act
	global := r.Global()

	// Assert: keys outside the override table come back untouched
	assert.Equal(t, "keep-me", global.String("custom_flag"))
	assert.Equal(t, "https://example.com", global.String("base_url"))
	assert.Equal(t, int64(512), global.Int("image_cache_max_size_mb"))
}

func TestResolver_MissingFileIsEmptyBaseline(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"GROK_API_KEY": "sk-env",
	}
	setEnvVars(t, envVars)

	path := filepath.Join(t.TempDir(), "absent.toml")

	// Act
	r, err := New(context.Background(), path, nil, logger.Nop())

	// Assert: no failure, environment still applies
	require.NoError(t, err)
	assert.Equal(t, "sk-env", r.Service().String("api_key"))
	assert.Empty(t, r.Global().String("base_url"))
}

func TestResolver_EnvOverridesFileValues(t *testing.T) {
	// Arrange
	r, _ := newTestResolver(t, nil)
	setEnvVars(t, map[string]string{
		"GROK_API_KEY":         "sk-override",
		"STREAM_TOTAL_TIMEOUT": "900",
		"TEMPORARY":            "false",
	})

	// Act
	require.NoError(t, r.Reload(context.Background()))

	// Assert
	snap := r.Service()
	assert.Equal(t, "sk-override", snap.String("api_key"))
	assert.Equal(t, int64(900), snap.Int("stream_total_timeout"))
	assert.False(t, snap.Bool("temporary"))
}

func TestResolver_InvalidIntegerEnvKeepsFileValue(t *testing.T) {
	// Arrange
	r, _ := newTestResolver(t, nil)
	setEnvVars(t, map[string]string{
		"STREAM_TOTAL_TIMEOUT": "not-a-number",
	})

	// Act
	err := r.Reload(context.Background())

	// Assert: the load does not fail and the baseline value survives
	require.NoError(t, err)
	assert.Equal(t, int64(600), r.Service().Int("stream_total_timeout"))
}

func TestResolver_ProxySchemeCanonicalized(t *testing.T) {
	// Arrange
	r, _ := newTestResolver(t, nil)

	// Act
	snap := r.Service()

	// Assert: the file value socks5://host:1080 resolves rewritten
	assert.Equal(t, "socks5h://host:1080", snap.String("proxy_url"))
	assert.Equal(t, "socks5h://host:1080", r.ServiceProxy())
}

func TestResolver_ClearancePrefixed(t *testing.T) {
	// Arrange
	r, _ := newTestResolver(t, nil)
	setEnvVars(t, map[string]string{
		"CF_CLEARANCE": "abc123",
	})

	// Act
	require.NoError(t, r.Reload(context.Background()))

	// Assert
	assert.Equal(t, "cf_clearance=abc123", r.Service().String("cf_clearance"))
}

func TestResolver_CacheProxyFallsBackToServiceProxy(t *testing.T) {
	// Arrange
	r, _ := newTestResolver(t, nil)
	setEnvVars(t, map[string]string{
		"PROXY_URL": "http://p:8080",
	})

	// Act
	require.NoError(t, r.Reload(context.Background()))

	// Assert
	assert.Equal(t, "http://p:8080", r.CacheProxy())
}

func TestResolver_CacheProxyPreferred(t *testing.T) {
	// Arrange
	r, _ := newTestResolver(t, nil)
	setEnvVars(t, map[string]string{
		"PROXY_URL":       "http://p:8080",
		"CACHE_PROXY_URL": "http://c:9090",
	})

	// Act
	require.NoError(t, r.Reload(context.Background()))

	// Assert
	assert.Equal(t, "http://c:9090", r.CacheProxy())
	assert.Equal(t, "http://p:8080", r.ServiceProxy())
}

func TestResolver_CacheProxyEmptyWhenNothingSet(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), "absent.toml")
	r, err := New(context.Background(), path, nil, logger.Nop())
	require.NoError(t, err)

	// Assert
	assert.Empty(t, r.CacheProxy())
	assert.Empty(t, r.ServiceProxy())
}

func TestResolver_SaveStoresRawClearance(t *testing.T) {
	// Arrange
	r, path := newTestResolver(t, nil)

	// Act: save a prefixed token
	err := r.Save(context.Background(), nil, map[string]any{
		"cf_clearance": "cf_clearance=abc123",
	})

	// Assert: the stored document is prefix-free, the resolved view is not
	require.NoError(t, err)

	stored, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", stored["grok"]["cf_clearance"])

	assert.Equal(t, "cf_clearance=abc123", r.Service().String("cf_clearance"))
}

func TestResolver_SaveBareClearanceResolvesPrefixed(t *testing.T) {
	// Arrange
	r, path := newTestResolver(t, nil)

	// Act
	err := r.Save(context.Background(), nil, map[string]any{
		"cf_clearance": "abc123",
	})

	// Assert
	require.NoError(t, err)

	stored, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", stored["grok"]["cf_clearance"])

	snap, err := r.Load(context.Background(), SectionGrok)
	require.NoError(t, err)
	assert.Equal(t, "cf_clearance=abc123", snap.String("cf_clearance"))
}

func TestResolver_SaveUpsertsAndKeepsOtherKeys(t *testing.T) {
	// Arrange
	r, path := newTestResolver(t, nil)

	// Act
	err := r.Save(context.Background(),
		map[string]any{"log_level": "debug"},
		map[string]any{"api_key": "sk-rotated"},
	)

	// Assert
	require.NoError(t, err)

	stored, err := readDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", stored["global"]["log_level"])
	assert.Equal(t, "sk-rotated", stored["grok"]["api_key"])
	// untouched neighbours survive the merge
	assert.Equal(t, "keep-me", stored["global"]["custom_flag"])
	assert.Equal(t, int64(600), stored["grok"]["stream_total_timeout"])

	// in-memory state reflects the persisted values
	assert.Equal(t, "debug", r.Global().String("log_level"))
	assert.Equal(t, "sk-rotated", r.Service().String("api_key"))
}

func TestResolver_SaveIntoMissingFileCreatesIt(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), "absent.toml")
	r, err := New(context.Background(), path, nil, logger.Nop())
	require.NoError(t, err)

	// Act
	err = r.Save(context.Background(), map[string]any{"base_url": "https://fresh.example.com"}, nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://fresh.example.com", r.Global().String("base_url"))
}

func TestResolver_LoadUnknownSection(t *testing.T) {
	// Arrange
	r, _ := newTestResolver(t, nil)

	// Act
	_, err := r.Load(context.Background(), Section("nope"))

	// Assert
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestResolver_BrokenFileIsLoadFailure(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	path := filepath.Join(t.TempDir(), "setting.toml")
	require.NoError(t, os.WriteFile(path, []byte("[global\nbroken"), 0o644))

	// Act
	_, err := New(context.Background(), path, nil, logger.Nop())

	// Assert
	assert.ErrorIs(t, err, ErrConfigLoad)
}

// fakeBackend is an in-memory config.Backend used to exercise the pluggable
// persistence path.
type fakeBackend struct {
	doc     Document
	loadErr error
	saveErr error
}

func (f *fakeBackend) LoadConfig(_ context.Context) (Document, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.doc, nil
}

func (f *fakeBackend) SaveConfig(_ context.Context, doc Document) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.doc = doc
	return nil
}

func TestResolver_BackendSelectedOverFile(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	backend := &fakeBackend{doc: Document{
		"global": {"base_url": "https://backend.example.com"},
		"grok":   {"proxy_url": "socks5://b:1080"},
	}}

	// the file deliberately disagrees with the backend
	path := filepath.Join(t.TempDir(), "setting.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSettings), 0o644))

	// Act
	r, err := New(context.Background(), path, backend, logger.Nop())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example.com", r.Global().String("base_url"))
	assert.Equal(t, "socks5h://b:1080", r.ServiceProxy())
}

func TestResolver_SaveThroughBackend(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	backend := &fakeBackend{doc: Document{
		"global": {},
		"grok":   {"api_key": "sk-old"},
	}}
	r, err := New(context.Background(), "unused.toml", backend, logger.Nop())
	require.NoError(t, err)

	// Act
	err = r.Save(context.Background(), nil, map[string]any{
		"api_key":      "sk-new",
		"cf_clearance": "cf_clearance=tok",
	})

	// Assert: backend holds the raw token, snapshot the canonical one
	require.NoError(t, err)
	assert.Equal(t, "sk-new", backend.doc["grok"]["api_key"])
	assert.Equal(t, "tok", backend.doc["grok"]["cf_clearance"])
	assert.Equal(t, "cf_clearance=tok", r.Service().String("cf_clearance"))
}

func TestResolver_BackendLoadFailureIsLoadError(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	backend := &fakeBackend{loadErr: assert.AnError}

	// Act
	_, err := New(context.Background(), "unused.toml", backend, logger.Nop())

	// Assert
	assert.ErrorIs(t, err, ErrConfigLoad)
}

func TestResolver_SaveBackendFailureIsPersistError(t *testing.T) {
	// Arrange
	clearEnvVars(t)
	backend := &fakeBackend{doc: Document{"global": {}, "grok": {}}}
	r, err := New(context.Background(), "unused.toml", backend, logger.Nop())
	require.NoError(t, err)

	backend.saveErr = assert.AnError

	// Act
	err = r.Save(context.Background(), map[string]any{"log_level": "debug"}, nil)

	// Assert: the failure surfaces and the snapshots are unchanged
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigPersist)
	assert.Empty(t, r.Global().String("log_level"))
}
