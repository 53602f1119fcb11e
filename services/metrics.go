package services

import (
	"sync"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics of report runs. The collectors are nil until Register is called.
type Metrics struct {
	runs          prometheus.Counter
	accounts      *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	head          prometheus.Gauge

	registerOnce sync.Once
}

// Register registers the collectors with registry. Calls after the first are no-ops.
func (m *Metrics) Register(registry prometheus.Registerer) {
	if m == nil || registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.runs = factory.NewCounter(prometheus.CounterOpts{
			Name: "locks_report_runs_total",
			Help: "Total number of report runs",
		})

		m.accounts = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "locks_report_accounts_total",
			Help: "Total number of accounts computed, by status",
		}, []string{"status"})

		m.fetchDuration = factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "locks_report_account_fetch_seconds",
			Help:    "Time spent reading the chain state of one account",
			Buckets: prometheus.DefBuckets,
		})

		m.head = factory.NewGauge(prometheus.GaugeOpts{
			Name: "locks_report_head_block",
			Help: "Chain head the latest report was computed against",
		})
	})
}

func (m *Metrics) observeRun(head types.BlockNumber) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.Inc()
	m.head.Set(float64(head))
}

func (m *Metrics) observeAccount(status types.AccountStatus, fetchSeconds float64) {
	if m == nil || m.accounts == nil {
		return
	}
	m.accounts.WithLabelValues(string(status)).Inc()
	m.fetchDuration.Observe(fetchSeconds)
}
