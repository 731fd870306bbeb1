package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"bistro-boss/internal/auth/config"
	"bistro-boss/internal/auth/domain/model"
	"bistro-boss/internal/auth/domain/repository"

	"golang.org/x/crypto/bcrypt"
)

// AccountFixture provides test data for Account model
type AccountFixture struct{}

// NewAccountFixture creates a new AccountFixture instance
func NewAccountFixture() *AccountFixture {
	return &AccountFixture{}
}

// ExternalAccount returns an account without a local password
func (f *AccountFixture) ExternalAccount(email string) *model.Account {
	return &model.Account{Email: email, Name: nameOf(email), Role: "user"}
}

// AdminAccount returns an admin account without a local password
func (f *AccountFixture) AdminAccount(email string) *model.Account {
	return &model.Account{Email: email, Name: nameOf(email), Role: model.RoleAdmin}
}

// PasswordAccount returns an account whose password hash matches password
func (f *AccountFixture) PasswordAccount(email, password string) *model.Account {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &model.Account{
		Email:        email,
		Name:         nameOf(email),
		Role:         "user",
		PasswordHash: string(hashedPassword),
	}
}

func nameOf(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// TestConfig returns a valid auth configuration for tests
func TestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:     "test-secret-key-that-is-at-least-32-characters-long",
		JWTIssuer:        "bistro-boss-test",
		AccessTokenTTL:   480 * time.Hour,
		CookieName:       "token",
		CookiePath:       "/",
		CookieHTTPOnly:   true,
		CookieSameSite:   "Strict",
		RevocationPrefix: "bistro:test:revoked:",
		SessionRateLimit: 1000,
	}
}

// AccountStore is an in-memory AccountRepository
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
}

// NewAccountStore creates a store seeded with accounts
func NewAccountStore(accounts ...*model.Account) *AccountStore {
	s := &AccountStore{accounts: make(map[string]*model.Account)}
	for _, a := range accounts {
		s.Put(a)
	}
	return s
}

// Put inserts or replaces an account
func (s *AccountStore) Put(a *model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.accounts[a.Email] = &cp
}

func (s *AccountStore) FindAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *AccountStore) CountAdmins(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.accounts {
		if a.IsAdmin() {
			n++
		}
	}
	return n, nil
}

// RevocationSet is an in-memory RevocationStore that ignores TTLs
type RevocationSet struct {
	mu  sync.Mutex
	ids map[string]time.Duration
}

// NewRevocationSet creates an empty set
func NewRevocationSet() *RevocationSet {
	return &RevocationSet{ids: make(map[string]time.Duration)}
}

func (r *RevocationSet) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[tokenID] = ttl
	return nil
}

func (r *RevocationSet) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[tokenID]
	return ok, nil
}

// Len returns the number of revoked ids
func (r *RevocationSet) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}
