package bearer

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

// HashPassword will generate a password hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. A mismatch returns ErrInvalidCredentials.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}

var burnHashOnce = sync.OnceValue(func() string {
	h, err := HashPassword(uuid.NewString())
	if err != nil {
		return ""
	}
	return h
})

// burnPasswordComparison spends one bcrypt comparison against a throwaway
// hash so the unknown-user path costs the same as a wrong password.
func burnPasswordComparison(password string) {
	if h := burnHashOnce(); h != "" {
		_ = bcrypt.CompareHashAndPassword([]byte(h), []byte(password))
	}
}
