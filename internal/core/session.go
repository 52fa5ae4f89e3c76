package core

import "context"

// SessionSecret is the opaque short-lived secret handed out by the upstream session API.
// It is forwarded to the browser as-is.
type SessionSecret string

// SessionCreator creates one upstream session per call.
// Implementations: chatkit.Client.
type SessionCreator interface {
	// CreateSession requests a session for the given workflow and user label.
	// Errors are returned as UpstreamFailure.
	CreateSession(ctx context.Context, workflowID, userLabel string) (SessionSecret, error)
}
