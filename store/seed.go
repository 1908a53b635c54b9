package store

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	bearer "github.com/corvid-labs/go-bearer"
)

// AdminRoleName is the role granted to the seeded administrator account.
const AdminRoleName = "Administrator"

// SeedUser describes one account to provision.
type SeedUser struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Roles     []string
}

// DefaultSeedUsers mirrors the sample accounts the service ships with: an
// administrator and a plain user.
func DefaultSeedUsers() []SeedUser {
	return []SeedUser{
		{
			Username:  "admin@test.com",
			Email:     "admin@test.com",
			FirstName: "Admin",
			LastName:  "User",
			Password:  "P@ss.W0rd",
			Roles:     []string{AdminRoleName},
		},
		{
			Username:  "user@test.com",
			Email:     "user@test.com",
			FirstName: "Test",
			LastName:  "User",
			Password:  "P@ss.W0rd",
		},
	}
}

// Seed provisions the given accounts, hashing passwords and creating any
// missing roles and assignments. It is idempotent: existing users and roles
// are reused, not duplicated.
func (s *Store) Seed(ctx context.Context, users ...SeedUser) error {
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, seed := range users {
			user, err := s.getOrCreateUserTx(ctx, tx, seed)
			if err != nil {
				return err
			}

			for _, roleName := range seed.Roles {
				role, err := s.getOrCreateRoleTx(ctx, tx, roleName)
				if err != nil {
					return err
				}

				assignment := &bearer.UserRoleAssignment{UserID: user.ID, RoleID: role.ID}
				if _, err := tx.NewInsert().
					Model(assignment).
					On("CONFLICT DO NOTHING").
					Exec(ctx); err != nil {
					return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to assign seeded role")
				}
			}
		}
		return nil
	})
}

func (s *Store) getOrCreateUserTx(ctx context.Context, tx bun.Tx, seed SeedUser) (*bearer.User, error) {
	user := new(bearer.User)
	err := tx.NewSelect().
		Model(user).
		Where("?TableAlias.username = ?", seed.Username).
		Limit(1).
		Scan(ctx)
	if err == nil {
		return user, nil
	}
	if !goerrors.Is(err, sql.ErrNoRows) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up seeded user")
	}

	hash, err := bearer.HashPassword(seed.Password)
	if err != nil {
		return nil, err
	}

	user = &bearer.User{
		ID:           uuid.New(),
		Username:     seed.Username,
		Email:        seed.Email,
		FirstName:    seed.FirstName,
		LastName:     seed.LastName,
		PasswordHash: hash,
	}

	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert seeded user")
	}

	return user, nil
}

func (s *Store) getOrCreateRoleTx(ctx context.Context, tx bun.Tx, name string) (*bearer.Role, error) {
	role := new(bearer.Role)
	err := tx.NewSelect().
		Model(role).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err == nil {
		return role, nil
	}
	if !goerrors.Is(err, sql.ErrNoRows) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up seeded role")
	}

	role = &bearer.Role{ID: uuid.New(), Name: name}
	if _, err := tx.NewInsert().Model(role).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert seeded role")
	}

	return role, nil
}
