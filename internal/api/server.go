package api

import (
	"net/http"

	"github.com/AdminBXVentures/embedbroker/internal/api/middleware"
	"github.com/AdminBXVentures/embedbroker/internal/config"
	"github.com/AdminBXVentures/embedbroker/internal/core"
	"github.com/AdminBXVentures/embedbroker/internal/metrics"
	"github.com/AdminBXVentures/embedbroker/internal/origin"
)

type Server struct {
	chatKit  config.ChatKitConfig
	sessions core.SessionCreator
	issuer   core.EmbedTokenIssuer
	metrics  *metrics.Metrics
	allowed  origin.AllowList
}

func NewServer(
	cfg config.Config,
	sessions core.SessionCreator,
	issuer core.EmbedTokenIssuer,
	allowed origin.AllowList,
	m *metrics.Metrics,
) *Server {
	if m == nil {
		m = metrics.New()
	}
	return &Server{
		chatKit:  cfg.ChatKit,
		sessions: sessions,
		issuer:   issuer,
		metrics:  m,
		allowed:  allowed,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// public routes
	mux.HandleFunc("GET "+HealthCheckRoute, s.handleHealth)
	mux.HandleFunc("GET "+AboutRoute, s.handleAbout)
	mux.Handle("GET "+MetricsRoute, s.metrics.Handler())

	// credential routes
	mux.HandleFunc("POST "+ChatKitSessionRoute, s.handleChatKitSession)
	mux.HandleFunc("POST "+TableauJWTRoute, s.handleTableauJWT)

	return middleware.RecoverMiddleware(
		middleware.CorrelationIDMiddleware(
			middleware.LoggingMiddleware(
				middleware.OriginGate(s.allowed)(
					mux))))
}
