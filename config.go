package bearer

import (
	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// MinSigningKeyLength is the smallest signing key EnvConfig accepts. HS256
// wants a key at least as long as its digest.
const MinSigningKeyLength = 32

// Defaults for the token transport surface.
const (
	DefaultContextKey  = "user"
	DefaultTokenLookup = "header:Authorization"
	DefaultAuthScheme  = "Bearer"
)

// EnvConfig is a Config implementation loaded from environment variables.
type EnvConfig struct {
	SigningKey      string   `env:"AUTH_SIGNING_KEY"`
	Issuer          string   `env:"AUTH_ISSUER" envDefault:"go-bearer"`
	Audience        []string `env:"AUTH_AUDIENCE" envSeparator:"," envDefault:"go-bearer"`
	TokenExpiration int      `env:"AUTH_TOKEN_EXPIRATION" envDefault:"4"`
	ContextKey      string   `env:"AUTH_CONTEXT_KEY" envDefault:"user"`
	TokenLookup     string   `env:"AUTH_TOKEN_LOOKUP" envDefault:"header:Authorization"`
	AuthScheme      string   `env:"AUTH_SCHEME" envDefault:"Bearer"`
}

var _ Config = (*EnvConfig)(nil)

// LoadEnvConfig parses the environment and validates the result. A missing or
// short signing key is unrecoverable misconfiguration; callers should treat
// the error as fatal at startup.
func LoadEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "failed to parse auth environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the startup invariants.
func (c *EnvConfig) Validate() error {
	if len(c.SigningKey) < MinSigningKeyLength {
		return goerrors.New(goerrors.CategoryValidation, "signing key must be at least 32 bytes").
			WithMetadata(map[string]any{"length": len(c.SigningKey)})
	}
	if c.TokenExpiration <= 0 {
		return goerrors.New(goerrors.CategoryValidation, "token expiration must be a positive number of hours")
	}
	return nil
}

func (c *EnvConfig) GetSigningKey() string { return c.SigningKey }

func (c *EnvConfig) GetIssuer() string { return c.Issuer }

func (c *EnvConfig) GetAudience() []string { return c.Audience }

func (c *EnvConfig) GetTokenExpiration() int { return c.TokenExpiration }

func (c *EnvConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return DefaultContextKey
	}
	return c.ContextKey
}

func (c *EnvConfig) GetTokenLookup() string {
	if c.TokenLookup == "" {
		return DefaultTokenLookup
	}
	return c.TokenLookup
}

func (c *EnvConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return DefaultAuthScheme
	}
	return c.AuthScheme
}
