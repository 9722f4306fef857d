package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

// Metrics provides observability for the banking data store.
type Metrics struct {
	TransactionsCreated *prometheus.CounterVec
	TransactionVolume   *prometheus.CounterVec
	ActivityLogged      *prometheus.CounterVec
	ProfilesUpdated     prometheus.Counter
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TransactionsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "harborbank_transactions_created_total",
			Help: "Transactions created by type",
		}, []string{"type"}),
		TransactionVolume: f.NewCounterVec(prometheus.CounterOpts{
			Name: "harborbank_transaction_volume_total",
			Help: "Sum of amount plus fee debited, by transaction type",
		}, []string{"type"}),
		ActivityLogged: f.NewCounterVec(prometheus.CounterOpts{
			Name: "harborbank_activity_logged_total",
			Help: "Activity log entries by action",
		}, []string{"action"}),
		ProfilesUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "harborbank_profiles_updated_total",
			Help: "Successful profile updates",
		}),
	}
}

func (m *Metrics) IncrementTransactionCreated(txType string, total decimal.Decimal) {
	m.TransactionsCreated.WithLabelValues(txType).Inc()
	m.TransactionVolume.WithLabelValues(txType).Add(total.InexactFloat64())
}

func (m *Metrics) IncrementActivity(action string) {
	m.ActivityLogged.WithLabelValues(action).Inc()
}

func (m *Metrics) IncrementProfileUpdated() {
	m.ProfilesUpdated.Inc()
}
