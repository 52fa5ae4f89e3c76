package api

const (
	HealthCheckRoute = "/healthz"
	AboutRoute       = "/about"
	MetricsRoute     = "/metrics"

	ChatKitSessionRoute = "/api/chatkit/session"
	TableauJWTRoute     = "/api/tableau/jwt"
)
