// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 dsdgdxxx

package config

// Section names one of the two configuration namespaces of the settings
// document.
type Section string

const (
	// SectionGlobal holds application-wide settings: base URL, log level,
	// image mode, admin credentials and media cache limits.
	SectionGlobal Section = "global"

	// SectionGrok holds upstream service settings: API key, proxies,
	// clearance token, statsig id, tag filter and stream timeouts.
	SectionGrok Section = "grok"
)

// Kind is the declared value type of an overridable configuration key.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
)

// overrideRule binds a configuration key to the environment variable that
// may override it and the type the variable's value is coerced to.
type overrideRule struct {
	key  string
	env  string
	kind Kind
}

// overrideRules is the per-section override table, fixed at compile time.
// Keys absent from the table are passed through from the settings document
// untouched.
var overrideRules = map[Section][]overrideRule{
	SectionGlobal: {
		{key: "base_url", env: "BASE_URL", kind: KindString},
		{key: "log_level", env: "LOG_LEVEL", kind: KindString},
		{key: "image_mode", env: "IMAGE_MODE", kind: KindString},
		{key: "admin_username", env: "ADMIN_USERNAME", kind: KindString},
		{key: "admin_password", env: "ADMIN_PASSWORD", kind: KindString},
		{key: "image_cache_max_size_mb", env: "IMAGE_CACHE_MAX_SIZE_MB", kind: KindInt},
		{key: "video_cache_max_size_mb", env: "VIDEO_CACHE_MAX_SIZE_MB", kind: KindInt},
	},
	SectionGrok: {
		{key: "api_key", env: "GROK_API_KEY", kind: KindString},
		{key: "proxy_url", env: "PROXY_URL", kind: KindString},
		{key: "cache_proxy_url", env: "CACHE_PROXY_URL", kind: KindString},
		{key: "cf_clearance", env: "CF_CLEARANCE", kind: KindString},
		{key: "x_statsig_id", env: "X_STATSIG_ID", kind: KindString},
		{key: "filtered_tags", env: "FILTERED_TAGS", kind: KindString},
		{key: "stream_chunk_timeout", env: "STREAM_CHUNK_TIMEOUT", kind: KindInt},
		{key: "stream_total_timeout", env: "STREAM_TOTAL_TIMEOUT", kind: KindInt},
		{key: "stream_first_response_timeout", env: "STREAM_FIRST_RESPONSE_TIMEOUT", kind: KindInt},
		{key: "temporary", env: "TEMPORARY", kind: KindBool},
		{key: "show_thinking", env: "SHOW_THINKING", kind: KindBool},
	},
}
