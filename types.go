package bearer

import (
	"context"
	"fmt"
)

// Logger is the minimal logging surface the package needs. Messages take a
// message followed by alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// CredentialStore is the external collaborator that owns users, roles, and
// password verification material. Implementations may block on I/O; callers
// pass a context with a deadline.
type CredentialStore interface {
	// FindUserByName resolves a username to a stored user. A miss is reported
	// as ErrUserNotFound (or any error matching goerrors.IsNotFound).
	FindUserByName(ctx context.Context, username string) (*User, error)

	// VerifyPassword checks a plaintext password against the user's stored
	// verification material. A mismatch is (false, nil); errors are reserved
	// for store failures.
	VerifyPassword(ctx context.Context, user *User, password string) (bool, error)

	// RolesOf returns the user's role names in a stable store-defined order.
	RolesOf(ctx context.Context, user *User) ([]string, error)
}

// Config holds auth options.
type Config interface {
	GetSigningKey() string
	GetIssuer() string
	GetAudience() []string
	GetTokenExpiration() int // hours
	GetContextKey() string
	GetTokenLookup() string
	GetAuthScheme() string
}

type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Println("[ERR] BEARER " + logLine(msg, args...))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Println("[WRN] BEARER " + logLine(msg, args...))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Println("[INF] BEARER " + logLine(msg, args...))
}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Println("[DBG] BEARER " + logLine(msg, args...))
}

// logLine renders a message plus alternating key/value pairs as
// "msg key=value ...". A trailing odd argument is printed bare.
func logLine(msg string, args ...any) string {
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			msg += fmt.Sprintf(" %v=%v", args[i], args[i+1])
		} else {
			msg += fmt.Sprintf(" %v", args[i])
		}
	}
	return msg
}
