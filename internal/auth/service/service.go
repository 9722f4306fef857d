// Package service implements the session store: one current session per
// process, persisted to durable storage and broadcast to observers.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"harborbank/internal/auth/metrics"
	"harborbank/internal/auth/models"
	jwttoken "harborbank/internal/jwt_token"
	"harborbank/internal/kvstore"
	id "harborbank/pkg/domain"
)

const defaultSessionTTL = 24 * time.Hour

type CredentialStore interface {
	Create(ctx context.Context, c *models.Credential) error
	FindByEmail(ctx context.Context, email string) (*models.Credential, error)
}

type TokenService interface {
	GenerateAccessToken(userID id.UserID, email string, isAdmin bool, issuedAt time.Time, ttl time.Duration) (string, time.Time, error)
	ValidateToken(token string) (*jwttoken.Claims, error)
}

// Service owns the current session.
//
// Lock order: opMu, then mu. Listeners run with opMu held and mu released,
// so they may read the session but must not sign in or out synchronously.
type Service struct {
	credentials CredentialStore
	tokens      TokenService
	storage     kvstore.Store
	logger      *slog.Logger
	metrics     *metrics.Metrics
	sessionTTL  time.Duration

	opMu    sync.Mutex
	mu      sync.RWMutex
	current *models.Session

	listenersMu  sync.Mutex
	listeners    map[uint64]models.AuthStateListener
	nextListener uint64
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

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// New builds the service and restores any persisted session. A persisted
// value that cannot be decoded is deleted; restore never fails the caller.
func New(ctx context.Context, credentials CredentialStore, tokens TokenService, storage kvstore.Store, opts ...Option) *Service {
	s := &Service{
		credentials: credentials,
		tokens:      tokens,
		storage:     storage,
		logger:      slog.Default(),
		sessionTTL:  defaultSessionTTL,
		listeners:   make(map[uint64]models.AuthStateListener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore(ctx)
	return s
}
