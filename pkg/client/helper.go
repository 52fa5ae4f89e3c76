package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/AdminBXVentures/embedbroker/internal/api/presenter"
	"github.com/AdminBXVentures/embedbroker/internal/correlation"
)

// APIError is returned for every non-2xx response that carries a JSON error body.
type APIError struct {
	StatusCode    int
	CorrelationID string
	Message       string
	Details       string
}

func (e APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error: '%s: %s' (status %d, correlation: %s)",
			e.Message, e.Details, e.StatusCode, e.CorrelationID)
	}
	return fmt.Sprintf("api error: '%s' (status %d, correlation: %s)", e.Message, e.StatusCode, e.CorrelationID)
}

func (c *Client) get(ctx context.Context, url string, result any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

func (c *Client) post(ctx context.Context, url string, result any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

func correlationFromResponse(resp *http.Response) string {
	return resp.Header.Get(correlation.Header)
}

func parseErrorResponse(resp *http.Response) error {
	var errResp presenter.ErrorResponse
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("request failed with status %d and unreadable body: %w", resp.StatusCode, err)
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		cid := errResp.CorrelationID
		if cid == "" {
			cid = correlationFromResponse(resp)
		}
		return APIError{
			StatusCode:    resp.StatusCode,
			CorrelationID: cid,
			Message:       errResp.Error,
			Details:       errResp.Details,
		}
	}
	return fmt.Errorf("api error: *unparsed '%s' (status %d)", string(body), resp.StatusCode)
}

func (c *Client) do(req *http.Request, result any) (string, error) {
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode >= 400 {
		return correlationFromResponse(resp), parseErrorResponse(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return correlationFromResponse(resp), fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return correlationFromResponse(resp), nil
}
