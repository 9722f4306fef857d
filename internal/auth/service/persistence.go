package service

import (
	"context"
	"encoding/json"
	"errors"

	"harborbank/internal/auth/models"
	"harborbank/internal/kvstore"
	"harborbank/pkg/platform/sentinel"
	"harborbank/pkg/requestcontext"
)

func (s *Service) restore(ctx context.Context) {
	raw, err := s.storage.Get(ctx, kvstore.KeyAuthSession)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.incrementRestore("absent")
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read persisted session", "error", err)
		s.incrementRestore("absent")
		return
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.discardPersisted(ctx, "persisted session is not valid JSON", err)
		return
	}
	if err := session.Validate(); err != nil {
		s.discardPersisted(ctx, "persisted session is incomplete", err)
		return
	}
	if !session.ExpiresAt.IsZero() && !requestcontext.Now(ctx).Before(session.ExpiresAt) {
		s.discardPersisted(ctx, "persisted session has expired", nil)
		return
	}

	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()
	s.incrementRestore("restored")
	s.logger.InfoContext(ctx, "session restored", "user_id", session.User.ID.String())
}

func (s *Service) discardPersisted(ctx context.Context, reason string, cause error) {
	attrs := []any{"reason", reason}
	if cause != nil {
		attrs = append(attrs, "error", cause)
	}
	s.logger.WarnContext(ctx, "discarding persisted session", attrs...)
	if err := s.storage.Delete(ctx, kvstore.KeyAuthSession); err != nil {
		s.logger.WarnContext(ctx, "failed to delete persisted session", "error", err)
	}
	s.incrementRestore("discarded")
}

// persist is best effort: the in-memory session stays authoritative.
func (s *Service) persist(ctx context.Context, session *models.Session) {
	data, err := json.Marshal(session)
	if err != nil {
		s.persistFailed(ctx, "encode", err)
		return
	}
	if err := s.storage.Set(ctx, kvstore.KeyAuthSession, string(data)); err != nil {
		s.persistFailed(ctx, "write", err)
	}
}

func (s *Service) unpersist(ctx context.Context) {
	if err := s.storage.Delete(ctx, kvstore.KeyAuthSession); err != nil {
		s.persistFailed(ctx, "delete", err)
	}
}

func (s *Service) persistFailed(ctx context.Context, op string, err error) {
	s.logger.WarnContext(ctx, "failed to persist session",
		"op", op,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	if s.metrics != nil {
		s.metrics.IncrementPersistFailure()
	}
}

func (s *Service) incrementRestore(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementRestore(outcome)
	}
}
