package credential

import (
	"context"
	"sync"

	"harborbank/internal/auth/models"
	"harborbank/pkg/platform/sentinel"
)

// InMemoryCredentialStore holds registered accounts. Records are append-only.
type InMemoryCredentialStore struct {
	mu          sync.RWMutex
	credentials []*models.Credential
}

func NewInMemoryCredentialStore() *InMemoryCredentialStore {
	return &InMemoryCredentialStore{}
}

// Create appends c unless its email is already registered.
func (s *InMemoryCredentialStore) Create(_ context.Context, c *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.credentials {
		if existing.Email == c.Email {
			return sentinel.ErrConflict
		}
	}
	stored := *c
	s.credentials = append(s.credentials, &stored)
	return nil
}

// FindByEmail is an exact, case-sensitive lookup.
func (s *InMemoryCredentialStore) FindByEmail(_ context.Context, email string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.credentials {
		if c.Email == email {
			found := *c
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryCredentialStore) ListAll(_ context.Context) ([]*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Credential, 0, len(s.credentials))
	for _, c := range s.credentials {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}
