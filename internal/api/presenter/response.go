package presenter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/AdminBXVentures/embedbroker/internal/core"
	"github.com/AdminBXVentures/embedbroker/internal/correlation"
)

type ErrorResponse struct {
	Error         string `json:"error"`
	Details       string `json:"details,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write json response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, msg string, status int) {
	JSON(w, r, ErrorResponse{
		Error:         msg,
		CorrelationID: correlation.FromContext(r.Context()),
	}, status)
}

// Err is the single mapping from credential errors to responses.
// Every tagged kind is a server-side failure; the summary becomes "error" and
// the wrapped message becomes "details". Untagged errors never expose their message.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	var e *core.Error
	if !errors.As(err, &e) {
		Error(w, r, "internal server error", http.StatusInternalServerError)
		return
	}

	switch e.Kind {
	case core.UpstreamFailure, core.ConfigurationFault, core.SigningFailure:
		JSON(w, r, ErrorResponse{
			Error:         e.Summary,
			Details:       e.Details(),
			CorrelationID: correlation.FromContext(r.Context()),
		}, http.StatusInternalServerError)
	default:
		Error(w, r, "internal server error", http.StatusInternalServerError)
	}
}
