package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/AdminBXVentures/embedbroker/internal/api/presenter"
	"github.com/AdminBXVentures/embedbroker/internal/audit"
	"github.com/AdminBXVentures/embedbroker/internal/chatkit"
	"github.com/AdminBXVentures/embedbroker/internal/core"
	"github.com/AdminBXVentures/embedbroker/internal/metrics"
)

// maxIgnoredBody bounds how much of an ignored request body we read before closing.
const maxIgnoredBody = 64 << 10

type SessionResponse struct {
	ClientSecret string `json:"client_secret"`
}

// discardBody drains the request body. Both credential routes accept and
// ignore a body: nothing the caller sends can influence what is issued.
func discardBody(r *http.Request) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxIgnoredBody))
}

// handleChatKitSession exchanges the server-held API key for a short-lived
// ChatKit client secret.
func (s *Server) handleChatKitSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)
	discardBody(r)

	if missing := s.chatKit.Missing(); len(missing) > 0 {
		err := core.NewUpstreamFailure(fmt.Errorf("Missing env vars: %s", strings.Join(missing, ", ")))
		logger.Error().Strs("missing", missing).Msg("chatkit session not configured")
		s.metrics.Failed(metrics.KindChatKitSession, err)
		presenter.Err(w, r, err)
		return
	}

	secret, err := s.sessions.CreateSession(ctx, s.chatKit.WorkflowID, chatkit.DefaultUserLabel)
	if err != nil {
		logger.Error().Err(err).Msg("chatkit session creation failed")
		s.metrics.Failed(metrics.KindChatKitSession, err)
		presenter.Err(w, r, err)
		return
	}

	s.metrics.Issued(metrics.KindChatKitSession)
	logger.Info().
		Str("fingerprint", audit.Fingerprint(string(secret))).
		Msg("chatkit session issued")

	presenter.JSON(w, r, SessionResponse{ClientSecret: string(secret)}, http.StatusOK)
}
