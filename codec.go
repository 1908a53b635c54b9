package bearer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenCodec encodes a ClaimSet into a signed HS256 token and decodes a token
// back into its ClaimSet. Both directions are pure CPU work; a codec is safe
// for concurrent use once built.
type TokenCodec struct {
	signingKey []byte
	issuer     string
	audience   jwt.ClaimStrings
	logger     Logger
}

// NewTokenCodec creates a codec bound to a signing key, issuer, and audience.
func NewTokenCodec(signingKey []byte, issuer string, audience []string, logger Logger) *TokenCodec {
	if logger == nil {
		logger = defLogger{}
	}

	var aud jwt.ClaimStrings
	if len(audience) > 0 {
		aud = make(jwt.ClaimStrings, len(audience))
		copy(aud, audience)
	}

	return &TokenCodec{
		signingKey: signingKey,
		issuer:     issuer,
		audience:   aud,
		logger:     logger,
	}
}

// Encode signs the claim set into a compact serialized token valid over
// [issuedAt, expiresAt]. The subject claim, when present, also populates the
// registered sub field.
func (c *TokenCodec) Encode(claims ClaimSet, issuedAt, expiresAt time.Time) (string, error) {
	if len(c.signingKey) == 0 {
		return "", goerrors.New(goerrors.CategoryInternal, "signing key is not configured")
	}

	var subject string
	if sub, ok := claims.First(ClaimKindSubject); ok {
		subject = sub.Value
	}

	tc := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subject,
			Audience:  c.audience,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Claims: claims,
	}

	ensureTokenID(&tc.RegisteredClaims)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign token")
	}

	return signed, nil
}

// Decode verifies a token against the configured key, issuer, and audience at
// the current time. See DecodeAt for the validation layers.
func (c *TokenCodec) Decode(tokenString string) (ClaimSet, error) {
	return c.DecodeAt(tokenString, time.Now())
}

// DecodeAt verifies a token as of the supplied instant and reconstructs the
// embedded ClaimSet in its original order. Checks run in layers and the first
// failing layer wins: structure, signature, issuer, audience, lifetime. A
// token stays valid through its exact expiry second.
func (c *TokenCodec) DecodeAt(tokenString string, now time.Time) (ClaimSet, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
		// NumericDate carries whole seconds; one second of leeway makes the
		// expiry boundary inclusive.
		jwt.WithLeeway(time.Second),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	if len(c.audience) > 0 {
		opts = append(opts, jwt.WithAudience(c.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.signingKey, nil
	}, opts...)

	if err != nil {
		failure := classifyTokenError(err)
		c.logger.Debug("token rejected", "reason", FailureCode(failure), "error", err)
		return nil, failure
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		c.logger.Error("token codec could not recover claims")
		return nil, ErrTokenMalformed
	}

	return claims.Claims, nil
}

// classifyTokenError maps golang-jwt parse errors onto the validation
// taxonomy. The parser may join several claim errors; precedence here follows
// the layer order, so an issuer mismatch outranks an expired lifetime.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudienceMismatch
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrTokenNotYetValid
	}
	return ErrTokenMalformed
}

// ensureTokenID assigns a jti when the claims carry none.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}
