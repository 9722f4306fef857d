package service

import (
	"context"
	"errors"

	"harborbank/internal/auth/models"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/platform/sentinel"
	"harborbank/pkg/requestcontext"
)

var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid login credentials")

// SignIn replaces the current session when email and password match a
// registered account exactly. On mismatch the current session is untouched
// and no observer is notified.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	cred, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.authFailure(ctx, "unknown_email", email)
			return nil, errInvalidCredentials
		}
		s.incrementSignIn("error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up credentials")
	}
	if cred.Password != password {
		s.authFailure(ctx, "password_mismatch", email)
		return nil, errInvalidCredentials
	}

	user := cred.User()
	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.IsAdmin, requestcontext.Now(ctx), s.sessionTTL)
	if err != nil {
		s.incrementSignIn("error")
		return nil, err
	}
	session := &models.Session{User: user, AccessToken: token, ExpiresAt: expiresAt}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	s.persist(ctx, session)
	s.notify(session)
	s.incrementSignIn("success")

	s.logger.InfoContext(ctx, "user signed in",
		"user_id", user.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return session.Clone(), nil
}

// SignOut clears the session. With no session it still notifies observers.
func (s *Service) SignOut(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	s.unpersist(ctx)
	s.notify(nil)
	if s.metrics != nil {
		s.metrics.IncrementSignOut()
	}

	if prev != nil {
		s.logger.InfoContext(ctx, "user signed out",
			"user_id", prev.User.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return nil
}

// GetSession returns a copy of the current session, or nil. An expired
// session is dropped the same way restore drops one.
func (s *Service) GetSession(ctx context.Context) (*models.Session, error) {
	return s.active(ctx).Clone(), nil
}

// GetUser returns the current session's user, or nil.
func (s *Service) GetUser(ctx context.Context) (*models.User, error) {
	session := s.active(ctx)
	if session == nil {
		return nil, nil
	}
	u := *session.User
	return &u, nil
}

// ValidateAccessToken accepts only the token of the current session, and
// only while it verifies.
func (s *Service) ValidateAccessToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	session := s.active(ctx)
	if session == nil || session.AccessToken != token {
		s.logger.DebugContext(ctx, "token does not belong to the current session",
			"user_id", claims.UserID,
		)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "session is no longer active")
	}
	u := *session.User
	return &u, nil
}

// active returns the current session unless it has expired. The returned
// value is shared and must not be modified.
func (s *Service) active(ctx context.Context) *models.Session {
	s.mu.RLock()
	session := s.current
	s.mu.RUnlock()

	if session == nil || session.ExpiresAt.IsZero() || requestcontext.Now(ctx).Before(session.ExpiresAt) {
		return session
	}
	s.expire(ctx, session)
	return nil
}

// expire clears stale if it is still the current session, then unpersists
// and notifies like a sign out. While a sign in or sign out is running it
// does nothing; that operation replaces the session anyway.
func (s *Service) expire(ctx context.Context, stale *models.Session) {
	if !s.opMu.TryLock() {
		return
	}
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.current != stale {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.mu.Unlock()

	s.unpersist(ctx)
	s.notify(nil)
	s.logger.InfoContext(ctx, "session expired",
		"user_id", stale.User.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
}

func (s *Service) authFailure(ctx context.Context, reason, email string) {
	s.logger.WarnContext(ctx, "sign-in rejected",
		"reason", reason,
		"email", email,
		"request_id", requestcontext.RequestID(ctx),
		"client_ip", requestcontext.ClientIP(ctx),
	)
	s.incrementSignIn("invalid_credentials")
}

func (s *Service) incrementSignIn(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementSignIn(outcome)
	}
}
