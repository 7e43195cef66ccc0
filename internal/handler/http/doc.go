// Package http implements the admin HTTP transport of the application.
// It exposes the resolved configuration for inspection and accepts partial
// updates that are persisted through the resolver. Authentication is
// handled at this layer before requests reach the resolver.
package http
