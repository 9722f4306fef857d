package preferences

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"harborbank/internal/kvstore"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/requestcontext"
	"harborbank/pkg/testutil"
)

type stubLocator struct {
	gotIP string
}

func (l *stubLocator) Locate(_ context.Context, ip string) *Location {
	l.gotIP = ip
	return &Location{City: "Madrid", Country: "Spain", CountryCode: "ES", SuggestedLanguage: "es"}
}

type PreferencesHandlerSuite struct {
	suite.Suite
	locator *stubLocator
	router  chi.Router
}

func TestPreferencesHandlerSuite(t *testing.T) {
	suite.Run(t, new(PreferencesHandlerSuite))
}

func (s *PreferencesHandlerSuite) SetupTest() {
	s.locator = &stubLocator{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := New(kvstore.NewMemory(), WithLocator(s.locator), WithLogger(logger))
	s.router = chi.NewRouter()
	NewHandler(svc, logger).Register(s.router)
}

func (s *PreferencesHandlerSuite) TestGetDefaults() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/preferences"))
	testutil.AssertStatusOK(s.T(), rr)

	resp := testutil.UnmarshalResponse[PreferencesResponse](s.T(), rr)
	s.Equal("en", resp.Language)
	s.False(resp.LanguageWelcomeSeen)
	s.Equal(SupportedLanguages, resp.SupportedLanguages)
}

func (s *PreferencesHandlerSuite) TestSetLanguage() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPut, "/preferences/language", `{"language":"de"}`)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	s.Equal("de", testutil.UnmarshalResponse[PreferencesResponse](s.T(), rr).Language)

	req = testutil.NewRequestWithBody(s.T(), http.MethodPut, "/preferences/language", `{"language":"xx"}`)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, dErrors.CodeValidation)
}

func (s *PreferencesHandlerSuite) TestWelcomeSeen() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/preferences/welcome-seen"))
	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/preferences"))
	s.True(testutil.UnmarshalResponse[PreferencesResponse](s.T(), rr).LanguageWelcomeSeen)
}

func (s *PreferencesHandlerSuite) TestLocationUsesClientIP() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/preferences/location")
	req = req.WithContext(requestcontext.WithClientMetadata(req.Context(), "203.0.113.7", "curl/8"))

	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	s.Equal("203.0.113.7", s.locator.gotIP)
	testutil.AssertJSONContains(s.T(), rr, "suggested_language", "es")
}
