package auth

import (
	"context"
	"strings"
	"sync"
)

// MockProvider is a mock implementation of Provider for testing.
// It is safe for concurrent use.
type MockProvider struct {
	mu sync.Mutex

	// Spies for method calls
	CreateAccountFunc     func(email, password string) (string, error)
	AuthenticateFunc      func(email, password string) (Account, error)
	SendPasswordResetFunc func(email string) error

	// Call records
	CreateAccountCalls     []string
	AuthenticateCalls      []string
	SendPasswordResetCalls []string
}

// NewMockProvider creates a new mock Provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateAccountCalls = append(m.CreateAccountCalls, email)
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(email, password)
	}
	return mockUID(email), nil
}

func (m *MockProvider) Authenticate(ctx context.Context, email, password string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AuthenticateCalls = append(m.AuthenticateCalls, email)
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(email, password)
	}
	return Account{UID: mockUID(email), Email: email, IDToken: "id-token"}, nil
}

func (m *MockProvider) SendPasswordReset(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPasswordResetCalls = append(m.SendPasswordResetCalls, email)
	if m.SendPasswordResetFunc != nil {
		return m.SendPasswordResetFunc(email)
	}
	return nil
}

// mockUID derives a stable uid from the local part of email.
func mockUID(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return "uid-" + local
}
