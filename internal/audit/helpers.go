package audit

import (
	"fmt"

	"github.com/AdminBXVentures/embedbroker/internal/buildinfo"
)

// CreateUserAgent builds the User-Agent sent on upstream calls so that requests
// can be traced back to a correlation id in our logs.
func CreateUserAgent(correlationID, userLabel, upstream string) string {
	return fmt.Sprintf("embedbroker/%s (correlation_id=%s; user=%s; upstream=%s)",
		buildinfo.Version, correlationID, userLabel, upstream)
}
