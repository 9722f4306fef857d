package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"harborbank/internal/kvstore"
	dErrors "harborbank/pkg/domain-errors"
)

type PreferencesSuite struct {
	suite.Suite
	ctx     context.Context
	storage *kvstore.InMemory
	svc     *Service
}

func TestPreferencesSuite(t *testing.T) {
	suite.Run(t, new(PreferencesSuite))
}

func (s *PreferencesSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = kvstore.NewMemory()
	s.svc = New(s.storage)
}

func (s *PreferencesSuite) TestLanguage() {
	s.Run("defaults to english", func() {
		s.Equal(DefaultLanguage, s.svc.GetLanguage(s.ctx))
	})

	s.Run("stores supported language", func() {
		s.Require().NoError(s.svc.SetLanguage(s.ctx, "pt"))
		s.Equal("pt", s.svc.GetLanguage(s.ctx))

		raw, err := s.storage.Get(s.ctx, kvstore.KeyPreferredLanguage)
		s.Require().NoError(err)
		s.Equal("pt", raw)
	})

	s.Run("rejects unsupported language", func() {
		err := s.svc.SetLanguage(s.ctx, "xx")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("pt", s.svc.GetLanguage(s.ctx))
	})

	s.Run("ignores unknown stored value", func() {
		s.Require().NoError(s.storage.Set(s.ctx, kvstore.KeyPreferredLanguage, "klingon"))
		s.Equal(DefaultLanguage, s.svc.GetLanguage(s.ctx))
	})
}

func (s *PreferencesSuite) TestLanguageWelcome() {
	s.False(s.svc.HasSeenLanguageWelcome(s.ctx))
	s.Require().NoError(s.svc.MarkLanguageWelcomeSeen(s.ctx))
	s.True(s.svc.HasSeenLanguageWelcome(s.ctx))

	_, err := s.storage.Get(s.ctx, kvstore.KeyAuthSession)
	s.Error(err, "preferences must not touch the session key")
}

func (s *PreferencesSuite) TestStorageFailure() {
	svc := New(brokenStorage{})
	s.Equal(DefaultLanguage, svc.GetLanguage(s.ctx))
	s.False(svc.HasSeenLanguageWelcome(s.ctx))
	s.True(dErrors.HasCode(svc.SetLanguage(s.ctx, "fr"), dErrors.CodeInternal))
	s.True(dErrors.HasCode(svc.MarkLanguageWelcomeSeen(s.ctx), dErrors.CodeInternal))
}

func (s *PreferencesSuite) TestDetectLocationWithoutLocator() {
	loc := s.svc.DetectLocation(s.ctx, "8.8.8.8")
	s.Equal(locationUnavailable, loc.Message)
}

type brokenStorage struct{}

var errBroken = errors.New("disk on fire")

func (brokenStorage) Get(context.Context, string) (string, error) { return "", errBroken }
func (brokenStorage) Set(context.Context, string, string) error   { return errBroken }
func (brokenStorage) Delete(context.Context, string) error        { return errBroken }
