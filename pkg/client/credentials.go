package client

import (
	"context"

	"github.com/AdminBXVentures/embedbroker/internal/api"
)

// ChatKitSession requests a new ChatKit client secret.
// It returns the secret and the correlation id of the request.
func (c *Client) ChatKitSession(ctx context.Context) (string, string, error) {
	var resp api.SessionResponse
	correlation, err := c.post(ctx, c.url().
		setPath(api.ChatKitSessionRoute).
		build(), &resp)
	if err != nil {
		return "", correlation, err
	}
	return resp.ClientSecret, correlation, nil
}

// TableauJWT requests a new signed Tableau embed token.
func (c *Client) TableauJWT(ctx context.Context) (string, string, error) {
	var resp api.TokenResponse
	correlation, err := c.post(ctx, c.url().
		setPath(api.TableauJWTRoute).
		build(), &resp)
	if err != nil {
		return "", correlation, err
	}
	return resp.Token, correlation, nil
}
