package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AdminBXVentures/embedbroker/internal/core"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: "ok"},
		{name: "timeout", err: core.NewUpstreamFailure(fmt.Errorf("x: %w", core.ErrUpstreamTimeout)), want: "timeout"},
		{name: "raw timeout", err: core.ErrUpstreamTimeout, want: "timeout"},
		{name: "upstream", err: core.NewUpstreamFailure(errors.New("502")), want: "upstream_failure"},
		{name: "config", err: core.NewConfigurationFault(errors.New("missing")), want: "configuration_fault"},
		{name: "signing", err: core.NewSigningFailure(errors.New("x")), want: "signing_failure"},
		{name: "other", err: errors.New("other"), want: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reason(tt.err); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Issued(KindTableauJWT)
	m.Issued(KindTableauJWT)
	m.Failed(KindChatKitSession, core.NewUpstreamFailure(errors.New("boom")))
	m.ObserveUpstream(120*time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	out := string(body)
	for _, want := range []string{
		`embedbroker_credentials_issued_total{kind="tableau_jwt"} 2`,
		`embedbroker_credential_failures_total{kind="chatkit_session",reason="upstream_failure"} 1`,
		`embedbroker_upstream_request_duration_seconds_count{outcome="ok"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
