package core

import "time"

// EmbedToken is the result of a successful embed token issuance.
type EmbedToken struct {
	// Value is the compact signed token.
	Value string `json:"token"`

	// ID is the unique jti claim of the token.
	ID string `json:"-"`

	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// EmbedTokenIssuer mints embed tokens.
// Implementations: tableau.Issuer.
type EmbedTokenIssuer interface {
	// Issue returns a freshly signed token. Errors are ConfigurationFault or SigningFailure.
	Issue() (*EmbedToken, error)
}
