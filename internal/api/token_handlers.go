package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AdminBXVentures/embedbroker/internal/api/presenter"
	"github.com/AdminBXVentures/embedbroker/internal/audit"
	"github.com/AdminBXVentures/embedbroker/internal/metrics"
)

type TokenResponse struct {
	Token string `json:"token"`
}

// handleTableauJWT signs a Connected App token for embedding Tableau views.
func (s *Server) handleTableauJWT(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.Ctx(ctx)
	discardBody(r)

	token, err := s.issuer.Issue()
	if err != nil {
		logger.Error().Err(err).Msg("tableau token issuance failed")
		s.metrics.Failed(metrics.KindTableauJWT, err)
		presenter.Err(w, r, err)
		return
	}

	s.metrics.Issued(metrics.KindTableauJWT)
	logger.Info().
		Str("jti", token.ID).
		Time("exp", token.ExpiresAt).
		Str("fingerprint", audit.Fingerprint(token.Value)).
		Msg("tableau token issued")

	presenter.JSON(w, r, TokenResponse{Token: token.Value}, http.StatusOK)
}
