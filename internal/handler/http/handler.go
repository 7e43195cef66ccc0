package http

import (
	"github.com/dsdgdxxx/grok2api/internal/config"
	"github.com/dsdgdxxx/grok2api/internal/logger"
)

type Handler struct {
	resolver *config.Resolver

	logger *logger.Logger
}

func NewHandler(resolver *config.Resolver, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		resolver: resolver,
		logger:   logger,
	}
}
