package service

import (
	"context"
	"errors"
	"strings"

	"harborbank/internal/auth/models"
	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/email"
	"harborbank/pkg/platform/sentinel"
	"harborbank/pkg/requestcontext"
)

// SignUp registers a non-admin account. It does not sign the user in.
func (s *Service) SignUp(ctx context.Context, emailAddr, password, displayName string) (*models.User, error) {
	if strings.TrimSpace(emailAddr) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "password is required")
	}
	if !email.IsPlausible(emailAddr) {
		return nil, dErrors.New(dErrors.CodeValidation, "email is not valid")
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = email.DeriveDisplayName(emailAddr)
	}

	cred := &models.Credential{
		ID:          id.NewUserID(),
		Email:       emailAddr,
		Password:    password,
		DisplayName: displayName,
		CreatedAt:   requestcontext.Now(ctx),
	}
	if err := s.credentials.Create(ctx, cred); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "user already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register user")
	}

	if s.metrics != nil {
		s.metrics.IncrementSignUp()
	}
	s.logger.InfoContext(ctx, "user registered",
		"user_id", cred.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return cred.User(), nil
}
