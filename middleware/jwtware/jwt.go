// Package jwtware guards fiber routes behind a validated bearer token. The
// decoder is injected so the middleware stays decoupled from any specific
// codec implementation (and free of an import cycle with the root package).
package jwtware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrTokenMissingOrMalformed is returned when no token can be extracted from
// the configured lookup sources.
var ErrTokenMissingOrMalformed = errors.New("missing or malformed token")

// Defaults applied when Config leaves the transport fields empty.
const (
	DefaultContextKey  = "user"
	DefaultTokenLookup = "header:" + fiber.HeaderAuthorization
	DefaultAuthScheme  = "Bearer"
)

// TokenDecoder validates a raw token string into decoded claims. It mirrors
// the root package's TokenCodec.Decode shape without importing it.
type TokenDecoder interface {
	Decode(tokenString string) (any, error)
}

// TokenDecoderFunc adapts a function into a TokenDecoder.
type TokenDecoderFunc func(tokenString string) (any, error)

// Decode satisfies the TokenDecoder interface.
func (f TokenDecoderFunc) Decode(tokenString string) (any, error) {
	if f == nil {
		return nil, ErrTokenMissingOrMalformed
	}
	return f(tokenString)
}

// Token carries the validated raw token alongside its decoded claims. It is
// what the middleware stores under the configured context key.
type Token struct {
	Raw    string
	Claims any
}

// Config configures the guard.
type Config struct {
	// Filter skips the middleware when it returns true.
	Filter func(*fiber.Ctx) bool

	// SuccessHandler runs after a token validates; defaults to c.Next().
	SuccessHandler fiber.Handler

	// ErrorHandler maps validation failures onto a response. The default
	// answers a uniform 401 for every failure; the reason stays server side.
	ErrorHandler fiber.ErrorHandler

	// Decoder is required.
	Decoder TokenDecoder

	// ContextKey is the locals key the validated *Token is stored under.
	ContextKey string

	// TokenLookup is a comma separated list of "source:name" extractors.
	// Supported sources: header, query, cookie, param.
	TokenLookup string

	// AuthScheme is stripped from header values, e.g. "Bearer".
	AuthScheme string
}

// New returns a fiber handler enforcing a valid bearer token.
func New(config Config) fiber.Handler {
	cfg := setDefaults(config)
	extractors := buildExtractors(cfg.TokenLookup, cfg.AuthScheme)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw := extractToken(c, extractors)
		if raw == "" {
			return cfg.ErrorHandler(c, ErrTokenMissingOrMalformed)
		}

		claims, err := cfg.Decoder.Decode(raw)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, &Token{Raw: raw, Claims: claims})
		return cfg.SuccessHandler(c)
	}
}

// TokenFromContext fetches the validated token stored by the middleware.
func TokenFromContext(c *fiber.Ctx, key string) (*Token, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	token, ok := c.Locals(key).(*Token)
	if !ok || token == nil {
		return nil, false
	}
	return token, true
}

func setDefaults(cfg Config) Config {
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.TokenLookup == "" {
		cfg.TokenLookup = DefaultTokenLookup
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = DefaultAuthScheme
	}
	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "invalid or missing token",
			})
		}
	}
	if cfg.Decoder == nil {
		panic("jwtware: Config.Decoder is required")
	}
	return cfg
}

type extractor func(*fiber.Ctx) string

func buildExtractors(lookup, scheme string) []extractor {
	var extractors []extractor

	for _, part := range strings.Split(lookup, ",") {
		source, name, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found || name == "" {
			continue
		}

		switch source {
		case "header":
			extractors = append(extractors, fromHeader(name, scheme))
		case "query":
			extractors = append(extractors, func(c *fiber.Ctx) string { return c.Query(name) })
		case "cookie":
			extractors = append(extractors, func(c *fiber.Ctx) string { return c.Cookies(name) })
		case "param":
			extractors = append(extractors, func(c *fiber.Ctx) string { return c.Params(name) })
		}
	}

	return extractors
}

func fromHeader(header, scheme string) extractor {
	prefix := scheme + " "
	return func(c *fiber.Ctx) string {
		value := c.Get(header)
		if scheme == "" {
			return value
		}
		if len(value) > len(prefix) && strings.EqualFold(value[:len(prefix)], prefix) {
			return value[len(prefix):]
		}
		return ""
	}
}

func extractToken(c *fiber.Ctx, extractors []extractor) string {
	for _, extract := range extractors {
		if token := extract(c); token != "" {
			return token
		}
	}
	return ""
}
