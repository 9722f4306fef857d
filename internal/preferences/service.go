// Package preferences stores presentation settings that outlive a session:
// the preferred language and whether the language welcome was shown.
package preferences

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"harborbank/internal/kvstore"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/platform/sentinel"
)

const DefaultLanguage = "en"

// SupportedLanguages lists the language codes the UI ships translations for.
var SupportedLanguages = []string{"en", "es", "fr", "de", "pt"}

func IsSupported(lang string) bool {
	return slices.Contains(SupportedLanguages, lang)
}

// Locator resolves a client IP to an approximate location.
type Locator interface {
	Locate(ctx context.Context, ip string) *Location
}

type Service struct {
	storage kvstore.Store
	locator Locator
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithLocator(locator Locator) Option {
	return func(s *Service) {
		s.locator = locator
	}
}

func New(storage kvstore.Store, opts ...Option) *Service {
	s := &Service{storage: storage, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetLanguage returns the stored language, or DefaultLanguage when nothing
// usable is stored.
func (s *Service) GetLanguage(ctx context.Context) string {
	lang, err := s.storage.Get(ctx, kvstore.KeyPreferredLanguage)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to read preferred language", "error", err)
		}
		return DefaultLanguage
	}
	if !IsSupported(lang) {
		return DefaultLanguage
	}
	return lang
}

func (s *Service) SetLanguage(ctx context.Context, lang string) error {
	if !IsSupported(lang) {
		return dErrors.New(dErrors.CodeValidation, "unsupported language")
	}
	if err := s.storage.Set(ctx, kvstore.KeyPreferredLanguage, lang); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save language")
	}
	return nil
}

func (s *Service) HasSeenLanguageWelcome(ctx context.Context) bool {
	v, err := s.storage.Get(ctx, kvstore.KeyLanguageWelcomeSeen)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to read welcome flag", "error", err)
		}
		return false
	}
	seen, _ := strconv.ParseBool(v)
	return seen
}

func (s *Service) MarkLanguageWelcomeSeen(ctx context.Context) error {
	if err := s.storage.Set(ctx, kvstore.KeyLanguageWelcomeSeen, strconv.FormatBool(true)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save welcome flag")
	}
	return nil
}

// DetectLocation never fails; without a locator it reports the same
// message as a failed lookup.
func (s *Service) DetectLocation(ctx context.Context, ip string) *Location {
	if s.locator == nil {
		return unknownLocation()
	}
	return s.locator.Locate(ctx, ip)
}
