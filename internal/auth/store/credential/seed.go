package credential

import (
	"context"

	"harborbank/internal/auth/models"
	"harborbank/internal/demo"
)

// SeedCredentials registers the demo accounts.
func SeedCredentials(ctx context.Context, s *InMemoryCredentialStore) error {
	for _, u := range demo.Users() {
		err := s.Create(ctx, &models.Credential{
			ID:          u.ID,
			Email:       u.Email,
			Password:    u.Password,
			DisplayName: u.DisplayName,
			IsAdmin:     u.IsAdmin,
			CreatedAt:   u.CreatedAt,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
