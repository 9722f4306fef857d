package adapters

import (
	"context"

	"harborbank/internal/admin/types"
	authModels "harborbank/internal/auth/models"
)

// CredentialLister is the part of the auth credential store admin reads.
type CredentialLister interface {
	ListAll(ctx context.Context) ([]*authModels.Credential, error)
}

// UserStoreAdapter adapts the credential store to admin's UserStore,
// dropping passwords at the boundary.
type UserStoreAdapter struct {
	store CredentialLister
}

func NewUserStoreAdapter(store CredentialLister) *UserStoreAdapter {
	return &UserStoreAdapter{store: store}
}

// ListAll returns every registered account in registration order.
func (a *UserStoreAdapter) ListAll(ctx context.Context) ([]*types.AdminUser, error) {
	creds, err := a.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*types.AdminUser, 0, len(creds))
	for _, c := range creds {
		result = append(result, mapCredential(c))
	}
	return result, nil
}

func mapCredential(c *authModels.Credential) *types.AdminUser {
	return &types.AdminUser{
		ID:          c.ID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		IsAdmin:     c.IsAdmin,
		CreatedAt:   c.CreatedAt,
	}
}
