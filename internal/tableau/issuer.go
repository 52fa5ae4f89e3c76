// Package tableau issues Connected App tokens used to embed Tableau views.
//
// Tokens are HS256 JWTs signed with the Connected App client secret. The
// issuer (client id) and key id travel in the JOSE header, the payload
// carries subject, audience, scopes, expiry and a unique id.
package tableau

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AdminBXVentures/embedbroker/internal/config"
	"github.com/AdminBXVentures/embedbroker/internal/core"
)

const (
	Audience   = "tableau"
	ScopeEmbed = "tableau:views:embed"

	// TokenTTL is the fixed lifetime of an issued token.
	TokenTTL = 300 * time.Second
)

// Claims is the payload of an embed token.
type Claims struct {
	Scopes []string `json:"scp"`
	jwt.RegisteredClaims
}

// Issuer signs embed tokens. It is safe for concurrent use.
type Issuer struct {
	cfg config.TableauConfig
	now func() time.Time
	rnd func() (uuid.UUID, error)
}

type Option func(*Issuer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// WithIDSource overrides the jti generator.
func WithIDSource(fn func() (uuid.UUID, error)) Option {
	return func(i *Issuer) {
		i.rnd = fn
	}
}

func NewIssuer(cfg config.TableauConfig, opts ...Option) *Issuer {
	i := &Issuer{
		cfg: cfg,
		now: time.Now,
		rnd: uuid.NewRandom,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue mints a new embed token.
// A ConfigurationFault is returned if any signing value is missing;
// everything failing after that check is a SigningFailure.
func (i *Issuer) Issue() (*core.EmbedToken, error) {
	if missing := i.cfg.Missing(); len(missing) > 0 {
		return nil, core.NewConfigurationFault(
			fmt.Errorf("Missing env vars: %s", strings.Join(missing, ", ")))
	}

	// JWT timestamps have second precision
	now := i.now().Truncate(time.Second)
	exp := now.Add(TokenTTL)

	id, err := i.rnd()
	if err != nil {
		return nil, core.NewSigningFailure(fmt.Errorf("generating token id: %w", err))
	}

	claims := Claims{
		Scopes: []string{ScopeEmbed},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   i.cfg.User,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        id.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["iss"] = i.cfg.ClientID
	token.Header["kid"] = i.cfg.KeyID

	signed, err := token.SignedString([]byte(i.cfg.ClientSecret))
	if err != nil {
		return nil, core.NewSigningFailure(fmt.Errorf("signing token: %w", err))
	}

	return &core.EmbedToken{
		Value:     signed,
		ID:        claims.ID,
		IssuedAt:  now,
		ExpiresAt: exp,
	}, nil
}

// Parse verifies a token against the given key and returns its claims and header.
// Used by the mint command and by tests; the server never parses tokens.
func Parse(tokenStr string, key []byte) (*Claims, map[string]any, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, nil, err
	}
	if !token.Valid {
		return nil, nil, errors.New("invalid token")
	}
	return &claims, token.Header, nil
}
