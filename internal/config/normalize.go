package config

import "strings"

const (
	keyProxyURL      = "proxy_url"
	keyCacheProxyURL = "cache_proxy_url"
	keyCFClearance   = "cf_clearance"

	socks5Scheme  = "socks5://"
	socks5hScheme = "socks5h://"

	clearancePrefix = keyCFClearance + "="
)

// canonicalProxyURL rewrites the socks5 scheme to socks5h so hostname
// resolution happens on the proxy side. Idempotent.
func canonicalProxyURL(raw string) string {
	if strings.HasPrefix(raw, socks5Scheme) {
		return socks5hScheme + strings.TrimPrefix(raw, socks5Scheme)
	}
	return raw
}

// canonicalClearance ensures the clearance token carries its cookie name.
// Idempotent; empty values pass through.
func canonicalClearance(raw string) string {
	if raw != "" && !strings.HasPrefix(raw, clearancePrefix) {
		return clearancePrefix + raw
	}
	return raw
}

// rawClearance reverses canonicalClearance for persistence: the stored
// representation stays prefix-free.
func rawClearance(raw string) string {
	return strings.TrimPrefix(raw, clearancePrefix)
}

// normalizeGrok applies the grok-section canonicalization rules in place,
// only when the respective key is present and non-empty.
func normalizeGrok(values map[string]any) {
	if v, ok := values[keyProxyURL].(string); ok && v != "" {
		values[keyProxyURL] = canonicalProxyURL(v)
	}
	if v, ok := values[keyCFClearance].(string); ok && v != "" {
		values[keyCFClearance] = canonicalClearance(v)
	}
}
