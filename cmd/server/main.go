package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"harborbank/internal/admin"
	adminadapters "harborbank/internal/admin/adapters"
	authadapters "harborbank/internal/auth/adapters"
	authhandler "harborbank/internal/auth/handler"
	authmetrics "harborbank/internal/auth/metrics"
	authmodels "harborbank/internal/auth/models"
	authservice "harborbank/internal/auth/service"
	"harborbank/internal/auth/store/credential"
	bankhandler "harborbank/internal/bank/handler"
	bankmetrics "harborbank/internal/bank/metrics"
	bankservice "harborbank/internal/bank/service"
	bankstore "harborbank/internal/bank/store"
	jwttoken "harborbank/internal/jwt_token"
	"harborbank/internal/kvstore"
	"harborbank/internal/platform/config"
	"harborbank/internal/platform/httpserver"
	"harborbank/internal/platform/logger"
	"harborbank/internal/platform/metrics"
	"harborbank/internal/preferences"
	httptransport "harborbank/internal/transport/http"
)

const shutdownTimeout = 10 * time.Second

// main wires the stores, services and handlers, then runs the HTTP server
// until SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.IsDevelopment())

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appMetrics := metrics.New()

	storage, closeStorage, err := kvstore.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			log.Warn("failed to close storage", "error", err)
		}
	}()
	storage = kvstore.NewInstrumented(storage, appMetrics)
	log.Info("storage ready", "backend", cfg.Storage.Backend)

	creds := credential.NewInMemoryCredentialStore()
	if err := credential.SeedCredentials(ctx, creds); err != nil {
		return err
	}
	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer)
	auth := authservice.New(ctx, creds, tokens, storage,
		authservice.WithLogger(log),
		authservice.WithMetrics(authmetrics.New()),
		authservice.WithSessionTTL(cfg.Auth.SessionTTL),
	)
	unsubscribe := auth.OnAuthStateChange(sessionObserver(log, appMetrics))
	defer unsubscribe()
	if restored, _ := auth.GetSession(ctx); restored != nil {
		appMetrics.SetSessionActive(true)
	}

	ledger := bankstore.NewInMemoryStore()
	if err := bankstore.SeedDemoData(ctx, ledger); err != nil {
		return err
	}
	bank := bankservice.New(bankservice.NewLockingTx(ledger),
		bankservice.WithLogger(log),
		bankservice.WithMetrics(bankmetrics.New()),
	)

	prefs := preferences.New(storage,
		preferences.WithLogger(log),
		preferences.WithLocator(preferences.NewGeoClient(cfg.Geolocation, log)),
	)

	authRoutes := authhandler.New(auth, authadapters.NewActivityRecorder(bank), log)
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:    log,
		Metrics:   appMetrics,
		Gatherer:  prometheus.DefaultGatherer,
		Validator: authadapters.NewPrincipalValidator(auth),
		Public: []httptransport.RouteRegistrar{
			authRoutes,
			preferences.NewHandler(prefs, log),
		},
		Customer: []httptransport.RouteRegistrar{
			authRoutes.Authenticated(),
			bankhandler.New(bank, log),
		},
		Admin: []httptransport.RouteRegistrar{
			admin.NewHandler(admin.NewService(adminadapters.NewUserStoreAdapter(creds), bank), bank, log),
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting harborbank", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// sessionObserver keeps the active session gauge in step with the session
// store and logs each transition.
func sessionObserver(log *slog.Logger, m *metrics.Metrics) authmodels.AuthStateListener {
	return func(session *authmodels.Session) {
		m.SetSessionActive(session != nil)
		if session == nil {
			log.Info("auth state changed", "signed_in", false)
			return
		}
		log.Info("auth state changed",
			"signed_in", true,
			"user_id", session.User.ID.String(),
			"expires_at", session.ExpiresAt,
		)
	}
}
