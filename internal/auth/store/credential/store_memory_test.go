package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"harborbank/internal/auth/models"
	"harborbank/internal/demo"
	id "harborbank/pkg/domain"
	"harborbank/pkg/platform/sentinel"
)

type InMemoryCredentialStoreSuite struct {
	suite.Suite
	store *InMemoryCredentialStore
	ctx   context.Context
}

func TestInMemoryCredentialStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCredentialStoreSuite))
}

func (s *InMemoryCredentialStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryCredentialStore()
	s.Require().NoError(SeedCredentials(s.ctx, s.store))
}

func (s *InMemoryCredentialStoreSuite) TestSeed() {
	all, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, len(demo.Users()))

	admin, err := s.store.FindByEmail(s.ctx, "admin@harborbank.test")
	s.Require().NoError(err)
	s.True(admin.IsAdmin)
	s.Equal(demo.AdminID, admin.ID)
}

func (s *InMemoryCredentialStoreSuite) TestCreate() {
	s.Run("appends a new email", func() {
		err := s.store.Create(s.ctx, &models.Credential{ID: id.NewUserID(), Email: "new@example.com", Password: "pw"})
		s.Require().NoError(err)
		found, err := s.store.FindByEmail(s.ctx, "new@example.com")
		s.Require().NoError(err)
		s.Equal("pw", found.Password)
	})

	s.Run("rejects a duplicate email", func() {
		before, _ := s.store.ListAll(s.ctx)
		err := s.store.Create(s.ctx, &models.Credential{ID: id.NewUserID(), Email: "john@example.com", Password: "x"})
		s.ErrorIs(err, sentinel.ErrConflict)
		after, _ := s.store.ListAll(s.ctx)
		s.Len(after, len(before))
	})
}

func (s *InMemoryCredentialStoreSuite) TestFindByEmail() {
	s.Run("lookup is case sensitive", func() {
		_, err := s.store.FindByEmail(s.ctx, "JOHN@example.com")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returned record is a copy", func() {
		found, err := s.store.FindByEmail(s.ctx, "jane@example.com")
		s.Require().NoError(err)
		found.Password = "mutated"
		again, err := s.store.FindByEmail(s.ctx, "jane@example.com")
		s.Require().NoError(err)
		s.Equal("password123", again.Password)
	})
}
