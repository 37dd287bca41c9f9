package auth_test

import (
	"context"
	"sync"

	auth "github.com/goliatone/go-credential"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockIdentity implements auth.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Username() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Role() string {
	args := m.Called()
	return args.String(0)
}

// MockLogger implements auth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// testConfig implements auth.Config
type testConfig struct {
	signingKey      string
	tokenExpiration int
	issuer          string
	audience        []string
	passwordCost    int
}

func newTestConfig() testConfig {
	return testConfig{
		signingKey:      "test-signing-key",
		tokenExpiration: 1,
		issuer:          "test-issuer",
		audience:        []string{"test-audience"},
		passwordCost:    4,
	}
}

func (c testConfig) GetSigningKey() string    { return c.signingKey }
func (c testConfig) GetSigningMethod() string { return "HS256" }
func (c testConfig) GetContextKey() string    { return "user" }
func (c testConfig) GetTokenExpiration() int  { return c.tokenExpiration }
func (c testConfig) GetTokenLookup() string   { return "header:Authorization" }
func (c testConfig) GetAuthScheme() string    { return "Bearer" }
func (c testConfig) GetIssuer() string        { return c.issuer }
func (c testConfig) GetAudience() []string    { return c.audience }
func (c testConfig) GetPasswordHashCost() int { return c.passwordCost }

// memoryStore is an in-memory auth.UserStore with the same uniqueness
// contract as the bun repository: at most one record per email/username.
type memoryStore struct {
	mu      sync.Mutex
	byEmail map[string]*auth.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{byEmail: map[string]*auth.User{}}
}

func (s *memoryStore) GetByIdentifier(ctx context.Context, identifier string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.byEmail[identifier]; ok {
		cp := *user
		return &cp, nil
	}

	for _, user := range s.byEmail {
		if user.Username == identifier || user.ID.String() == identifier {
			cp := *user
			return &cp, nil
		}
	}

	return nil, auth.ErrIdentityNotFound
}

func (s *memoryStore) Register(ctx context.Context, user *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return nil, auth.ErrEmailConflict
	}
	for _, existing := range s.byEmail {
		if existing.Username == user.Username {
			return nil, auth.ErrEmailConflict
		}
	}

	cp := *user
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	s.byEmail[cp.Email] = &cp

	out := cp
	return &out, nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byEmail)
}
