package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the session store.
type Metrics struct {
	SignInAttempts   *prometheus.CounterVec
	SignUps          prometheus.Counter
	SignOuts         prometheus.Counter
	PersistFailures  prometheus.Counter
	RestoredSessions *prometheus.CounterVec
}

// New registers the auth metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SignInAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "harborbank_auth_sign_in_attempts_total",
			Help: "Sign-in attempts by outcome (success, invalid_credentials, error)",
		}, []string{"outcome"}),
		SignUps: f.NewCounter(prometheus.CounterOpts{
			Name: "harborbank_auth_sign_ups_total",
			Help: "Accounts registered",
		}),
		SignOuts: f.NewCounter(prometheus.CounterOpts{
			Name: "harborbank_auth_sign_outs_total",
			Help: "Sign-out calls, including those with no active session",
		}),
		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "harborbank_auth_session_persist_failures_total",
			Help: "Failed writes or deletes of the persisted session",
		}),
		RestoredSessions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "harborbank_auth_session_restores_total",
			Help: "Startup restore outcomes (restored, absent, discarded)",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementSignIn(outcome string) {
	m.SignInAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementSignUp() {
	m.SignUps.Inc()
}

func (m *Metrics) IncrementSignOut() {
	m.SignOuts.Inc()
}

func (m *Metrics) IncrementPersistFailure() {
	m.PersistFailures.Inc()
}

func (m *Metrics) IncrementRestore(outcome string) {
	m.RestoredSessions.WithLabelValues(outcome).Inc()
}
