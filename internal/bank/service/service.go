// Package service implements the banking data store operations: profiles,
// transactions and the activity log.
package service

import (
	"context"
	"errors"
	"log/slog"

	"harborbank/internal/bank/metrics"
	"harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/platform/sentinel"
)

type Store interface {
	FindProfile(ctx context.Context, userID id.UserID) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]*models.Profile, error)
	UpdateProfile(ctx context.Context, userID id.UserID, mutate func(*models.Profile) error) (*models.Profile, error)
	AppendTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID id.UserID) ([]*models.Transaction, error)
	UpdateTransaction(ctx context.Context, txID id.TransactionID, mutate func(*models.Transaction) error) (*models.Transaction, error)
	AppendActivity(ctx context.Context, entry *models.ActivityLog) error
	ListActivityByUser(ctx context.Context, userID id.UserID) ([]*models.ActivityLog, error)
}

// Service runs every operation as one critical section through tx.
type Service struct {
	tx        StoreTx
	logger    *slog.Logger
	metrics   *metrics.Metrics
	reference ReferenceGenerator
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithReferenceGenerator(gen ReferenceGenerator) Option {
	return func(s *Service) {
		if gen != nil {
			s.reference = gen
		}
	}
}

func New(tx StoreTx, opts ...Option) *Service {
	s := &Service{
		tx:        tx,
		logger:    slog.Default(),
		reference: RandomReference,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetProfile returns nil without error when the user has no profile.
func (s *Service) GetProfile(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	var profile *models.Profile
	err := s.tx.RunInTx(ctx, func(st Store) error {
		p, err := st.FindProfile(ctx, userID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
		}
		profile = p
		return nil
	})
	return profile, err
}

// UpdateProfile merges update into the user's profile and returns the result.
func (s *Service) UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.Profile, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	var updated *models.Profile
	err := s.tx.RunInTx(ctx, func(st Store) error {
		p, err := st.UpdateProfile(ctx, userID, func(p *models.Profile) error {
			update.Apply(p)
			return nil
		})
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "profile not found")
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementProfileUpdated()
	}
	return updated, nil
}

func (s *Service) GetAllProfiles(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := s.tx.RunInTx(ctx, func(st Store) error {
		var err error
		profiles, err = st.ListProfiles(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list profiles")
		}
		return nil
	})
	return profiles, err
}
