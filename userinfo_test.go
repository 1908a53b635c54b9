package bearer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bearer "github.com/corvid-labs/go-bearer"
)

func TestProjectUserInfoAnonymous(t *testing.T) {
	claims := bearer.ClaimSet{
		bearer.NewClaim(bearer.ClaimKindName, "alice"),
		bearer.NewClaim(bearer.ClaimKindRole, "admin"),
	}

	info := bearer.ProjectUserInfo(false, claims, "some-token")

	assert.Same(t, bearer.Anonymous, info, "unauthenticated projection is always the shared Anonymous value")
	assert.False(t, info.IsAuthenticated)
	assert.Empty(t, info.Token)
	assert.Empty(t, info.Claims)
}

func TestProjectUserInfoOrdering(t *testing.T) {
	claims := bearer.ClaimSet{
		bearer.NewClaim(bearer.ClaimKindSubject, "user-123"),
		bearer.NewClaim(bearer.ClaimKindRole, "admin"),
		bearer.NewClaim(bearer.ClaimKindName, "alice"),
		bearer.NewCustomClaim("name", "alice@corp"),
		bearer.NewClaim(bearer.ClaimKindGivenName, "Alice Smith"),
	}

	info := bearer.ProjectUserInfo(true, claims, "raw-token")

	require.True(t, info.IsAuthenticated)
	assert.Equal(t, "name", info.NameClaimType)
	assert.Equal(t, "role", info.RoleClaimType)
	assert.Equal(t, "raw-token", info.Token)

	require.Len(t, info.Claims, 5)
	// Both name claims surface first, keeping their relative order; nothing
	// is deduplicated.
	assert.Equal(t, "alice", info.Claims[0].Value)
	assert.Equal(t, "alice@corp", info.Claims[1].Value)
	assert.Equal(t, bearer.ClaimKindSubject, info.Claims[2].Kind)
	assert.Equal(t, bearer.ClaimKindRole, info.Claims[3].Kind)
	assert.Equal(t, bearer.ClaimKindGivenName, info.Claims[4].Kind)
}

func TestUserInfoHelpers(t *testing.T) {
	info := bearer.ProjectUserInfo(true, bearer.ClaimSet{
		bearer.NewClaim(bearer.ClaimKindName, "alice"),
		bearer.NewClaim(bearer.ClaimKindRole, "admin"),
	}, "tok")

	assert.Equal(t, "alice", info.Name())
	assert.True(t, info.HasRole("admin"))
	assert.False(t, info.HasRole("owner"))

	assert.Empty(t, bearer.Anonymous.Name())
	assert.False(t, bearer.Anonymous.HasRole("admin"))
}
