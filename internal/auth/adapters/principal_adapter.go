package adapters

import (
	"context"

	"harborbank/internal/auth/models"
	authmw "harborbank/pkg/platform/middleware/auth"
)

// sessionValidator is the part of the auth service the middleware needs.
type sessionValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*models.User, error)
}

// PrincipalValidator adapts the auth service to authmw.TokenValidator.
type PrincipalValidator struct {
	sessions sessionValidator
}

func NewPrincipalValidator(sessions sessionValidator) *PrincipalValidator {
	return &PrincipalValidator{sessions: sessions}
}

func (a *PrincipalValidator) ValidateAccessToken(ctx context.Context, token string) (*authmw.Principal, error) {
	user, err := a.sessions.ValidateAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return &authmw.Principal{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}
