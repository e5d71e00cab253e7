package http

import (
	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/metrics"
	"github.com/MKhiriev/go-erp-auth/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	server             config.Server
	protectAdminRoutes bool

	logger *logger.Logger
}

// NewHandler creates the HTTP handler. m may be nil, in which case nothing
// is recorded and /metrics answers 404.
func NewHandler(services *service.Services, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:           services,
		metrics:            m,
		server:             cfg.Server,
		protectAdminRoutes: cfg.App.ProtectAdminRoutes,
		logger:             logger,
	}
}
