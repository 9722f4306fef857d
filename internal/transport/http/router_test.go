package httptransport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"harborbank/internal/admin"
	adminadapters "harborbank/internal/admin/adapters"
	authadapters "harborbank/internal/auth/adapters"
	authhandler "harborbank/internal/auth/handler"
	authmodels "harborbank/internal/auth/models"
	authservice "harborbank/internal/auth/service"
	"harborbank/internal/auth/store/credential"
	bankhandler "harborbank/internal/bank/handler"
	bankservice "harborbank/internal/bank/service"
	bankstore "harborbank/internal/bank/store"
	jwttoken "harborbank/internal/jwt_token"
	"harborbank/internal/kvstore"
	"harborbank/internal/platform/metrics"
	"harborbank/internal/preferences"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	creds := credential.NewInMemoryCredentialStore()
	s.Require().NoError(credential.SeedCredentials(ctx, creds))
	tokens := jwttoken.NewJWTService("router-test-key", "harborbank")
	auth := authservice.New(ctx, creds, tokens, kvstore.NewMemory(), authservice.WithLogger(logger))

	ledger := bankstore.NewInMemoryStore()
	s.Require().NoError(bankstore.SeedDemoData(ctx, ledger))
	bank := bankservice.New(bankservice.NewLockingTx(ledger), bankservice.WithLogger(logger))

	authRoutes := authhandler.New(auth, authadapters.NewActivityRecorder(bank), logger)
	s.router = NewRouter(Deps{
		Logger:    logger,
		Metrics:   metrics.NewWithRegisterer(reg),
		Gatherer:  reg,
		Validator: authadapters.NewPrincipalValidator(auth),
		Public: []RouteRegistrar{
			authRoutes,
			preferences.NewHandler(preferences.New(kvstore.NewMemory()), logger),
		},
		Customer: []RouteRegistrar{authRoutes.Authenticated(), bankhandler.New(bank, logger)},
		Admin: []RouteRegistrar{
			admin.NewHandler(admin.NewService(adminadapters.NewUserStoreAdapter(creds), bank), bank, logger),
		},
	})
}

func (s *RouterSuite) do(method, path, body, token string) *http.Response {
	req := testutil.NewRequestWithBody(s.T(), method, path, body)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15")
	if token != "" {
		testutil.WithBearer(req, token)
	}
	return testutil.DoRequest(s.router, req).Result()
}

func (s *RouterSuite) signIn(email, password string) string {
	body := `{"email":"` + email + `","password":"` + password + `"}`
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/auth/signin", body)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[authmodels.SessionResponse](s.T(), rr)
	s.Require().NotNil(resp.Session)
	return resp.Session.AccessToken
}

func (s *RouterSuite) TestHealthz() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))
	testutil.AssertStatusOK(s.T(), rr)
	s.NotEmpty(rr.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestCustomerRoutesRequireToken() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/me/profile"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, dErrors.CodeUnauthorized)
}

func (s *RouterSuite) TestTransferDebitsBalance() {
	token := s.signIn("john@example.com", "password123")

	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/me/transactions",
		`{"transaction_type":"wire","recipient_name":"Acme","amount":"100.00","fee":"2.50","status":"completed"}`)
	testutil.WithBearer(req, token)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	created := testutil.UnmarshalResponse[bankhandler.TransactionResponse](s.T(), rr)
	s.Regexp(`^WIRE-\d{8}-\d{5}$`, created.Transaction.ReferenceNumber)

	req = testutil.NewRequest(s.T(), http.MethodGet, "/me/profile")
	testutil.WithBearer(req, token)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	profile := testutil.UnmarshalResponse[bankhandler.ProfileResponse](s.T(), rr)
	s.True(decimal.RequireFromString("15648.00").Equal(profile.Profile.Balance), "got %s", profile.Profile.Balance)

	req = testutil.NewRequest(s.T(), http.MethodGet, "/me/activity")
	testutil.WithBearer(req, token)
	rr = testutil.DoRequest(s.router, req)
	activity := testutil.UnmarshalResponse[bankhandler.ActivityResponse](s.T(), rr)
	actions := make([]string, 0, len(activity.Activity))
	for _, a := range activity.Activity {
		actions = append(actions, a.Action)
	}
	s.Contains(actions, "sign_in")
	s.Contains(actions, "transaction_created")
}

func (s *RouterSuite) TestAdminRoutes() {
	s.Run("customers are forbidden", func() {
		token := s.signIn("jane@example.com", "password123")
		resp := s.do(http.MethodGet, "/admin/users", "", token)
		defer resp.Body.Close()
		s.Equal(http.StatusForbidden, resp.StatusCode)
	})

	s.Run("admins see every user", func() {
		token := s.signIn("admin@harborbank.test", "admin123")
		req := testutil.NewRequest(s.T(), http.MethodGet, "/admin/users")
		testutil.WithBearer(req, token)
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		s.Equal(3, testutil.UnmarshalResponse[admin.UsersListResponse](s.T(), rr).Total)
	})
}

func (s *RouterSuite) TestSignOutRevokesToken() {
	token := s.signIn("john@example.com", "password123")

	resp := s.do(http.MethodPost, "/auth/signout", "", token)
	resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodGet, "/me/profile", "", token)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *RouterSuite) TestSessionRoutesRequireToken() {
	adminToken := s.signIn("admin@harborbank.test", "admin123")

	for _, path := range []string{"/auth/session", "/auth/user"} {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, path))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, dErrors.CodeUnauthorized)
		s.NotContains(rr.Body.String(), adminToken)
	}

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/auth/signout"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, dErrors.CodeUnauthorized)

	resp := s.do(http.MethodGet, "/admin/profiles", "", adminToken)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode, "anonymous sign out must not end the admin session")

	req := testutil.NewRequest(s.T(), http.MethodGet, "/auth/session")
	testutil.WithBearer(req, adminToken)
	rr = testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	s.Equal(adminToken, testutil.UnmarshalResponse[authmodels.SessionResponse](s.T(), rr).Session.AccessToken)
}

func (s *RouterSuite) TestNewSignInReplacesSession() {
	first := s.signIn("john@example.com", "password123")
	s.signIn("jane@example.com", "password123")

	resp := s.do(http.MethodGet, "/me/profile", "", first)
	resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *RouterSuite) TestMetricsUseRoutePatterns() {
	s.signIn("john@example.com", "password123")

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(s.T(), rr)
	body := rr.Body.String()
	s.True(strings.Contains(body, `harborbank_http_requests_total{method="POST",route="/auth/signin",status="200"} 1`), body)
}
