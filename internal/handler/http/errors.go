package http

import "errors"

var (
	// ErrAdminAuthNotConfigured is returned when the global section has no
	// admin_username/admin_password pair, so the admin API cannot accept
	// any request.
	ErrAdminAuthNotConfigured = errors.New("admin credentials are not configured")

	// ErrInvalidAdminCredentials is returned when basic-auth credentials
	// are absent or do not match the configured admin account.
	ErrInvalidAdminCredentials = errors.New("invalid admin credentials")

	// ErrEmptyUpdate is returned when a config update request carries
	// neither a global nor a grok partial.
	ErrEmptyUpdate = errors.New("update request contains no fields")
)
