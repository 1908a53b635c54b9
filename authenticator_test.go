package bearer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bearer "github.com/corvid-labs/go-bearer"
	"github.com/google/uuid"
)

func newAuthedStore(user *bearer.User, roles []string) *MockCredentialStore {
	store := &MockCredentialStore{}
	store.On("FindUserByName", mock.Anything, user.Username).Return(user, nil)
	store.On("VerifyPassword", mock.Anything, user, "secret").Return(true, nil)
	store.On("RolesOf", mock.Anything, user).Return(roles, nil)
	return store
}

func TestAuthenticatorIssue(t *testing.T) {
	alice := &bearer.User{
		ID:        uuid.New(),
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	t.Run("issues a decodable token carrying the canonical claims", func(t *testing.T) {
		store := newAuthedStore(alice, []string{"admin"})
		auth := bearer.NewAuthenticator(store, newTestConfig())

		token, err := auth.Issue(context.Background(), "alice", "secret")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auth.Codec().Decode(token)
		require.NoError(t, err)

		expected := bearer.ClaimSet{
			bearer.NewClaim(bearer.ClaimKindSubject, alice.ID.String()),
			bearer.NewClaim(bearer.ClaimKindName, "alice"),
			bearer.NewClaim(bearer.ClaimKindGivenName, "Alice Smith"),
			bearer.NewClaim(bearer.ClaimKindRole, "admin"),
		}
		assert.Equal(t, expected, claims)
	})

	t.Run("duplicate roles collapse to one claim each", func(t *testing.T) {
		store := newAuthedStore(alice, []string{"admin", "editor", "admin"})
		auth := bearer.NewAuthenticator(store, newTestConfig())

		token, err := auth.Issue(context.Background(), "alice", "secret")
		require.NoError(t, err)

		claims, err := auth.Codec().Decode(token)
		require.NoError(t, err)
		assert.Equal(t, []string{"admin", "editor"}, claims.Roles())
	})

	t.Run("empty role set is valid", func(t *testing.T) {
		store := newAuthedStore(alice, nil)
		auth := bearer.NewAuthenticator(store, newTestConfig())

		token, err := auth.Issue(context.Background(), "alice", "secret")
		require.NoError(t, err)

		claims, err := auth.Codec().Decode(token)
		require.NoError(t, err)
		assert.Empty(t, claims.Roles())
		_, hasName := claims.First(bearer.ClaimKindName)
		assert.True(t, hasName)
	})

	t.Run("wrong password is a uniform rejection", func(t *testing.T) {
		store := &MockCredentialStore{}
		store.On("FindUserByName", mock.Anything, "alice").Return(alice, nil)
		store.On("VerifyPassword", mock.Anything, alice, "wrong").Return(false, nil)

		auth := bearer.NewAuthenticator(store, newTestConfig())
		token, err := auth.Issue(context.Background(), "alice", "wrong")

		assert.Empty(t, token)
		assert.Equal(t, bearer.TextCodeInvalidCreds, bearer.FailureCode(err))
	})

	t.Run("unknown user collapses into the same rejection", func(t *testing.T) {
		store := &MockCredentialStore{}
		store.On("FindUserByName", mock.Anything, "nobody").Return(nil, bearer.ErrUserNotFound)

		auth := bearer.NewAuthenticator(store, newTestConfig())
		token, err := auth.Issue(context.Background(), "nobody", "secret")

		assert.Empty(t, token)
		assert.Equal(t, bearer.TextCodeInvalidCreds, bearer.FailureCode(err))
	})

	t.Run("role lookup failure is store unavailable", func(t *testing.T) {
		store := &MockCredentialStore{}
		store.On("FindUserByName", mock.Anything, "alice").Return(alice, nil)
		store.On("VerifyPassword", mock.Anything, alice, "secret").Return(true, nil)
		store.On("RolesOf", mock.Anything, alice).Return(nil, bearer.ErrStoreUnavailable)

		auth := bearer.NewAuthenticator(store, newTestConfig())
		_, err := auth.Issue(context.Background(), "alice", "secret")

		assert.True(t, bearer.IsStoreUnavailable(err))
	})
}

func TestAuthenticatorIdentify(t *testing.T) {
	alice := &bearer.User{
		ID:        uuid.New(),
		Username:  "alice",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	t.Run("projects alice with her name claim first", func(t *testing.T) {
		store := newAuthedStore(alice, []string{"admin"})
		auth := bearer.NewAuthenticator(store, newTestConfig())

		token, err := auth.Issue(context.Background(), "alice", "secret")
		require.NoError(t, err)

		info, err := auth.Identify(token)
		require.NoError(t, err)

		assert.True(t, info.IsAuthenticated)
		assert.Equal(t, token, info.Token)
		require.NotEmpty(t, info.Claims)
		assert.Equal(t, bearer.ClaimKindName, info.Claims[0].Kind)
		assert.Equal(t, "alice", info.Claims[0].Value)
		assert.Equal(t, []string{"admin"}, info.Claims.Roles())
	})

	t.Run("invalid token yields the anonymous view and a typed failure", func(t *testing.T) {
		store := &MockCredentialStore{}
		auth := bearer.NewAuthenticator(store, newTestConfig())

		info, err := auth.Identify("not-a-token")

		assert.Same(t, bearer.Anonymous, info)
		assert.True(t, bearer.IsMalformedError(err))
	})
}
