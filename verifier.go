package bearer

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultStoreTimeout bounds a single credential store lookup.
var DefaultStoreTimeout = 5 * time.Second

// CredentialVerifier checks a presented username/password pair against the
// credential store.
type CredentialVerifier struct {
	store   CredentialStore
	timeout time.Duration
	logger  Logger
}

// NewCredentialVerifier returns a verifier with the default store timeout.
func NewCredentialVerifier(store CredentialStore) *CredentialVerifier {
	return &CredentialVerifier{
		store:   store,
		timeout: DefaultStoreTimeout,
		logger:  defLogger{},
	}
}

func (v *CredentialVerifier) WithLogger(logger Logger) *CredentialVerifier {
	if logger != nil {
		v.logger = logger
	}
	return v
}

func (v *CredentialVerifier) WithTimeout(timeout time.Duration) *CredentialVerifier {
	if timeout > 0 {
		v.timeout = timeout
	}
	return v
}

// Verify resolves the user and checks the password. An unknown username
// returns ErrUserNotFound, a wrong password ErrInvalidCredentials, and store
// failures ErrStoreUnavailable; both rejection cases still cost one password
// comparison so the outcomes are not distinguishable by timing. An empty
// password runs the comparison and fails, it does not short-circuit.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (*User, error) {
	if username == "" {
		burnPasswordComparison(password)
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	user, err := v.store.FindUserByName(ctx, username)
	if err != nil {
		if goerrors.IsNotFound(err) || FailureCode(err) == TextCodeUserNotFound {
			burnPasswordComparison(password)
			return nil, ErrUserNotFound
		}
		v.logger.Error("credential store lookup failed", "error", err)
		return nil, goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}
	if user == nil {
		burnPasswordComparison(password)
		return nil, ErrUserNotFound
	}

	ok, err := v.store.VerifyPassword(ctx, user, password)
	if err != nil {
		v.logger.Error("credential store password verification failed", "error", err)
		return nil, goerrors.Wrap(err, ErrStoreUnavailable.Category, ErrStoreUnavailable.Message).
			WithTextCode(ErrStoreUnavailable.TextCode)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
