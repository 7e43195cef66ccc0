// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 dsdgdxxx

package http

import (
	"crypto/subtle"
	"net/http"
)

// adminAuth is an HTTP middleware that enforces basic authentication
// against the admin_username and admin_password values of the current
// global snapshot.
//
// The middleware rejects requests in the following cases:
//   - No admin credentials are configured — HTTP 503
//     ([ErrAdminAuthNotConfigured]); the admin API stays closed rather
//     than open when unconfigured.
//   - The Authorization header is absent or the supplied credentials do
//     not match — HTTP 401 ([ErrInvalidAdminCredentials]).
//
// Credential comparison is constant-time.
func (h *Handler) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		global := h.resolver.Global()
		wantUser := global.String("admin_username")
		wantPass := global.String("admin_password")

		if wantUser == "" || wantPass == "" {
			h.logger.Err(ErrAdminAuthNotConfigured).Send()
			http.Error(w, ErrAdminAuthNotConfigured.Error(), http.StatusServiceUnavailable)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 0 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 0 {
			h.logger.Err(ErrInvalidAdminCredentials).Send()
			w.Header().Set("WWW-Authenticate", `Basic realm="grok2api admin"`)
			http.Error(w, ErrInvalidAdminCredentials.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
