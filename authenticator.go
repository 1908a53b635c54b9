package bearer

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// defaultTokenTTL bounds issued tokens when configuration carries no TTL.
const defaultTokenTTL = 4 * time.Hour

// Authenticator orchestrates the issuance and validation pipeline: credential
// verification, role lookup, claim assembly, and the token codec. Issuance is
// a pure function of the verified user, the clock, and configuration; there
// is no shared mutable state between concurrent calls.
type Authenticator struct {
	verifier *CredentialVerifier
	store    CredentialStore
	codec    *TokenCodec
	ttl      time.Duration
	logger   Logger
}

// NewAuthenticator returns a new Authenticator backed by the given store.
func NewAuthenticator(store CredentialStore, cfg Config) *Authenticator {
	ttl := defaultTokenTTL
	if cfg.GetTokenExpiration() > 0 {
		ttl = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	return &Authenticator{
		verifier: NewCredentialVerifier(store),
		store:    store,
		codec:    NewTokenCodec([]byte(cfg.GetSigningKey()), cfg.GetIssuer(), cfg.GetAudience(), defLogger{}),
		ttl:      ttl,
		logger:   defLogger{},
	}
}

func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger != nil {
		a.logger = logger
		a.verifier.WithLogger(logger)
	}
	return a
}

// WithStoreTimeout bounds credential store lookups during issuance.
func (a *Authenticator) WithStoreTimeout(timeout time.Duration) *Authenticator {
	a.verifier.WithTimeout(timeout)
	return a
}

// Codec returns the TokenCodec this Authenticator signs and verifies with.
func (a *Authenticator) Codec() *TokenCodec {
	return a.codec
}

// Issue authenticates the username/password pair and returns a signed token
// carrying the subject, name, given-name, and role claims. Unknown users and
// wrong passwords both come back as ErrInvalidCredentials; which one happened
// is logged server side only. Store failures surface as ErrStoreUnavailable.
func (a *Authenticator) Issue(ctx context.Context, username, password string) (string, error) {
	user, err := a.verifier.Verify(ctx, username, password)
	if err != nil {
		if IsAuthRejection(err) {
			a.logger.Debug("issuance rejected", "reason", FailureCode(err), "username", username)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	roles, err := a.store.RolesOf(ctx, user)
	if err != nil {
		a.logger.Error("role lookup failed", "error", err, "user_id", user.ID)
		return "", goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}

	now := time.Now()
	return a.codec.Encode(a.newClaimSet(user, roles), now, now.Add(a.ttl))
}

// Identify validates a raw token and projects it into the request-scoped
// identity view. Any validation failure yields the anonymous view together
// with the typed failure; callers must not echo the detail.
func (a *Authenticator) Identify(token string) (*UserInfo, error) {
	claims, err := a.codec.Decode(token)
	if err != nil {
		a.logger.Debug("token validation failed", "reason", FailureCode(err))
		return Anonymous, err
	}

	return ProjectUserInfo(true, claims, token), nil
}

// newClaimSet assembles the canonical claim set for a verified user: subject
// id, username, display name, then one claim per distinct role in store
// order. An empty role set is valid.
func (a *Authenticator) newClaimSet(user *User, roles []string) ClaimSet {
	claims := ClaimSet{
		NewClaim(ClaimKindSubject, user.ID.String()),
		NewClaim(ClaimKindName, user.Username),
		NewClaim(ClaimKindGivenName, user.FullName()),
	}

	seen := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		claims = append(claims, NewClaim(ClaimKindRole, role))
	}

	return claims
}
