package store

import (
	"context"
	"sync"

	"harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	"harborbank/pkg/platform/sentinel"
)

// InMemoryStore holds profiles, transactions and activity in insertion
// order. Every read returns copies.
type InMemoryStore struct {
	mu           sync.RWMutex
	profiles     []*models.Profile
	transactions []*models.Transaction
	activity     []*models.ActivityLog
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) CreateProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.profiles {
		if existing.ID == p.ID {
			return sentinel.ErrConflict
		}
	}
	s.profiles = append(s.profiles, p.Clone())
	return nil
}

// FindProfile returns the first profile with userID.
func (s *InMemoryStore) FindProfile(_ context.Context, userID id.UserID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.ID == userID {
			return p.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListProfiles(_ context.Context) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p.Clone())
	}
	return out, nil
}

// UpdateProfile runs mutate on the stored profile under the write lock. If
// mutate fails nothing changes.
func (s *InMemoryStore) UpdateProfile(_ context.Context, userID id.UserID, mutate func(*models.Profile) error) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.profiles {
		if p.ID != userID {
			continue
		}
		next := p.Clone()
		if err := mutate(next); err != nil {
			return nil, err
		}
		s.profiles[i] = next
		return next.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) AppendTransaction(_ context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx.Clone())
	return nil
}

func (s *InMemoryStore) ListTransactions(_ context.Context) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		out = append(out, tx.Clone())
	}
	return out, nil
}

func (s *InMemoryStore) ListTransactionsByUser(_ context.Context, userID id.UserID) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Transaction, 0)
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			out = append(out, tx.Clone())
		}
	}
	return out, nil
}

func (s *InMemoryStore) UpdateTransaction(_ context.Context, txID id.TransactionID, mutate func(*models.Transaction) error) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.transactions {
		if tx.ID != txID {
			continue
		}
		next := tx.Clone()
		if err := mutate(next); err != nil {
			return nil, err
		}
		s.transactions[i] = next
		return next.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) AppendActivity(_ context.Context, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = append(s.activity, entry.Clone())
	return nil
}

func (s *InMemoryStore) ListActivityByUser(_ context.Context, userID id.UserID) ([]*models.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ActivityLog, 0)
	for _, a := range s.activity {
		if a.UserID == userID {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}
