package bearer

import (
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to the error taxonomy. Callers that need to branch on a
// failure should use these (or the predicates below) rather than matching
// message strings.
const (
	TextCodeUserNotFound     = "USER_NOT_FOUND"
	TextCodeInvalidCreds     = "INVALID_CREDENTIALS"
	TextCodeStoreUnavailable = "STORE_UNAVAILABLE"
	TextCodeEmptyPassword    = "EMPTY_PASSWORD"

	TextCodeTokenMalformed   = "TOKEN_MALFORMED"
	TextCodeBadSignature     = "TOKEN_BAD_SIGNATURE"
	TextCodeIssuerMismatch   = "TOKEN_ISSUER_MISMATCH"
	TextCodeAudienceMismatch = "TOKEN_AUDIENCE_MISMATCH"
	TextCodeTokenExpired     = "TOKEN_EXPIRED"
	TextCodeTokenNotYetValid = "TOKEN_NOT_YET_VALID"
)

// Credential failures.
var (
	// ErrUserNotFound means the username resolved to no stored user. The
	// Authenticator collapses it into ErrInvalidCredentials before anything
	// leaves the service, so callers never learn whether the account exists.
	ErrUserNotFound = goerrors.New(goerrors.CategoryNotFound, "user not found").
			WithTextCode(TextCodeUserNotFound)

	// ErrInvalidCredentials is the uniform rejection for a bad password.
	ErrInvalidCredentials = goerrors.New(goerrors.CategoryAuth, "the credentials provided are invalid").
				WithTextCode(TextCodeInvalidCreds)

	// ErrStoreUnavailable marks a transient credential store failure. It is
	// never folded into the invalid-credentials outcome.
	ErrStoreUnavailable = goerrors.New(goerrors.CategoryInternal, "credential store unavailable").
				WithTextCode(TextCodeStoreUnavailable)

	// ErrNoEmptyString rejects empty passwords at hash time.
	ErrNoEmptyString = goerrors.New(goerrors.CategoryValidation, "password must not be empty").
				WithTextCode(TextCodeEmptyPassword)
)

// Token validation failures, ordered by the layer that produces them.
var (
	ErrTokenMalformed = goerrors.New(goerrors.CategoryAuth, "token is malformed").
				WithTextCode(TextCodeTokenMalformed)

	ErrTokenSignatureInvalid = goerrors.New(goerrors.CategoryAuth, "token signature is invalid").
					WithTextCode(TextCodeBadSignature)

	ErrIssuerMismatch = goerrors.New(goerrors.CategoryAuth, "token issuer does not match").
				WithTextCode(TextCodeIssuerMismatch)

	ErrAudienceMismatch = goerrors.New(goerrors.CategoryAuth, "token audience does not match").
				WithTextCode(TextCodeAudienceMismatch)

	ErrTokenExpired = goerrors.New(goerrors.CategoryAuth, "token is expired").
			WithTextCode(TextCodeTokenExpired)

	ErrTokenNotYetValid = goerrors.New(goerrors.CategoryAuth, "token used before its issue time").
				WithTextCode(TextCodeTokenNotYetValid)
)

// FailureCode extracts the text code from a rich error, or "" for plain errors.
func FailureCode(err error) string {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode
	}
	return ""
}

// IsAuthRejection reports whether err is one of the credential failures that
// must surface as a single uniform rejection.
func IsAuthRejection(err error) bool {
	switch FailureCode(err) {
	case TextCodeUserNotFound, TextCodeInvalidCreds:
		return true
	}
	return false
}

// IsStoreUnavailable reports whether err marks a transient store failure.
func IsStoreUnavailable(err error) bool {
	return FailureCode(err) == TextCodeStoreUnavailable
}

// IsTokenExpiredError will check for expired tokens.
func IsTokenExpiredError(err error) bool {
	return FailureCode(err) == TextCodeTokenExpired
}

// IsMalformedError will check for structurally broken tokens.
func IsMalformedError(err error) bool {
	return FailureCode(err) == TextCodeTokenMalformed
}

// IsValidationFailure reports whether err belongs to the token validation
// taxonomy (as opposed to a credential failure).
func IsValidationFailure(err error) bool {
	switch FailureCode(err) {
	case TextCodeTokenMalformed, TextCodeBadSignature, TextCodeIssuerMismatch,
		TextCodeAudienceMismatch, TextCodeTokenExpired, TextCodeTokenNotYetValid:
		return true
	}
	return false
}
