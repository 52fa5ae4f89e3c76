package chatkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AdminBXVentures/embedbroker/internal/audit"
	"github.com/AdminBXVentures/embedbroker/internal/config"
	"github.com/AdminBXVentures/embedbroker/internal/core"
	"github.com/AdminBXVentures/embedbroker/internal/correlation"
)

const (
	createSessionEndpoint = "/v1/chatkit/sessions"

	betaHeader = "OpenAI-Beta"
	betaValue  = "chatkit_beta=v1"

	// DefaultUserLabel is the identity sent upstream for every session.
	// It is never taken from the caller.
	DefaultUserLabel = "website-user"

	maxResponseBytes = 1 << 20
)

var _ core.SessionCreator = (*Client)(nil)

// CreateSessionRequest is the body of the session-creation call.
type CreateSessionRequest struct {
	Workflow Workflow `json:"workflow"`
	User     string   `json:"user"`
}

type Workflow struct {
	ID string `json:"id"`
}

// CreateSessionResponse holds the only field we read from the upstream response.
type CreateSessionResponse struct {
	ClientSecret string `json:"client_secret"`
}

// DurationObserver receives the duration and outcome of each upstream call.
type DurationObserver func(d time.Duration, err error)

// Client talks to the ChatKit session API.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	observe    DurationObserver
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithObserver registers a callback invoked after every upstream call.
func WithObserver(fn DurationObserver) Option {
	return func(c *Client) {
		c.observe = fn
	}
}

func New(cfg config.ChatKitConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}
	if c.baseURL == "" {
		c.baseURL = config.DefaultChatKitBaseURL
	}
	if c.timeout <= 0 {
		c.timeout = config.DefaultChatKitTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateSession creates a new upstream session and returns its client secret.
// All errors are UpstreamFailures; a deadline hit wraps core.ErrUpstreamTimeout.
func (c *Client) CreateSession(ctx context.Context, workflowID, userLabel string) (core.SessionSecret, error) {
	start := time.Now()
	secret, err := c.createSession(ctx, workflowID, userLabel)
	if c.observe != nil {
		c.observe(time.Since(start), err)
	}
	if err != nil {
		return "", core.NewUpstreamFailure(err)
	}
	return secret, nil
}

func (c *Client) createSession(ctx context.Context, workflowID, userLabel string) (core.SessionSecret, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := json.Marshal(CreateSessionRequest{
		Workflow: Workflow{ID: workflowID},
		User:     userLabel,
	})
	if err != nil {
		return "", fmt.Errorf("marshalling payload: %w", err)
	}

	url := c.baseURL + createSessionEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set(betaHeader, betaValue)

	// inject audit user-agent
	correlationID := correlation.FromContext(ctx)
	req.Header.Set("User-Agent", audit.CreateUserAgent(correlationID, userLabel, "chatkit"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("performing request: %w after %s", core.ErrUpstreamTimeout, c.timeout)
		}
		return "", fmt.Errorf("performing request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var sessionResp CreateSessionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&sessionResp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("decoding response: %w after %s", core.ErrUpstreamTimeout, c.timeout)
		}
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if sessionResp.ClientSecret == "" {
		return "", core.ErrMissingClientSecret
	}

	log.Ctx(ctx).Debug().
		Str("fingerprint", audit.Fingerprint(sessionResp.ClientSecret)).
		Msg("upstream session created")

	return core.SessionSecret(sessionResp.ClientSecret), nil
}
