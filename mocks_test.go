package bearer_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	bearer "github.com/corvid-labs/go-bearer"
)

// MockCredentialStore implements bearer.CredentialStore
type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) FindUserByName(ctx context.Context, username string) (*bearer.User, error) {
	args := m.Called(ctx, username)
	if user := args.Get(0); user != nil {
		return user.(*bearer.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialStore) VerifyPassword(ctx context.Context, user *bearer.User, password string) (bool, error) {
	args := m.Called(ctx, user, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockCredentialStore) RolesOf(ctx context.Context, user *bearer.User) ([]string, error) {
	args := m.Called(ctx, user)
	if roles := args.Get(0); roles != nil {
		return roles.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// testConfig implements bearer.Config
type testConfig struct {
	signingKey      string
	issuer          string
	audience        []string
	tokenExpiration int
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey:      "test-signing-key-test-signing-key",
		issuer:          "test-issuer",
		audience:        []string{"test-audience"},
		tokenExpiration: 4,
	}
}

func (c *testConfig) GetSigningKey() string   { return c.signingKey }
func (c *testConfig) GetIssuer() string       { return c.issuer }
func (c *testConfig) GetAudience() []string   { return c.audience }
func (c *testConfig) GetTokenExpiration() int { return c.tokenExpiration }
func (c *testConfig) GetContextKey() string   { return "user" }
func (c *testConfig) GetTokenLookup() string  { return "header:Authorization" }
func (c *testConfig) GetAuthScheme() string   { return "Bearer" }
