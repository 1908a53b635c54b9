// Package store implements the credential store on bun. It owns the user and
// role tables the authentication core reads from; everything here is plain
// persistence, the core never imports bun.
package store

import (
	"context"
	"database/sql"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	bearer "github.com/corvid-labs/go-bearer"
)

// Store is a bun backed bearer.CredentialStore.
type Store struct {
	db     *bun.DB
	logger bearer.Logger
}

var _ bearer.CredentialStore = (*Store)(nil)

// New returns a Store using the given bun database handle.
func New(db *bun.DB) *Store {
	return &Store{db: db, logger: noopLogger{}}
}

func (s *Store) WithLogger(logger bearer.Logger) *Store {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// DB exposes the underlying handle for schema and seed helpers.
func (s *Store) DB() *bun.DB {
	return s.db
}

// FindUserByName resolves a username to its stored user. A miss returns
// bearer.ErrUserNotFound; driver failures are wrapped as internal errors so
// the verifier can surface them as store-unavailable.
func (s *Store) FindUserByName(ctx context.Context, username string) (*bearer.User, error) {
	user := new(bearer.User)

	err := s.db.NewSelect().
		Model(user).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bearer.ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by username")
	}

	return user, nil
}

// VerifyPassword checks the plaintext against the user's bcrypt hash. A
// mismatch is (false, nil); only store or hash corruption is an error.
func (s *Store) VerifyPassword(_ context.Context, user *bearer.User, password string) (bool, error) {
	if user == nil {
		return false, bearer.ErrUserNotFound
	}

	if err := bearer.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if bearer.FailureCode(err) == bearer.TextCodeInvalidCreds {
			return false, nil
		}
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "stored password hash is not comparable")
	}

	return true, nil
}

// RolesOf returns the user's role names ordered by assignment time, then name
// for assignments created in the same instant. The order is stable and
// defines role claim order in issued tokens.
func (s *Store) RolesOf(ctx context.Context, user *bearer.User) ([]string, error) {
	if user == nil {
		return nil, bearer.ErrUserNotFound
	}

	var names []string
	err := s.db.NewSelect().
		ColumnExpr("rol.name").
		TableExpr("roles AS rol").
		Join("JOIN user_roles AS ur ON ur.role_id = rol.id").
		Where("ur.user_id = ?", user.ID).
		OrderExpr("ur.created_at ASC, rol.name ASC").
		Scan(ctx, &names)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user roles")
	}

	return names, nil
}

// CreateSchema creates the users, roles, and user_roles tables when missing.
func (s *Store) CreateSchema(ctx context.Context) error {
	models := []any{
		(*bearer.User)(nil),
		(*bearer.Role)(nil),
		(*bearer.UserRoleAssignment)(nil),
	}

	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create credential store schema")
		}
	}

	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
