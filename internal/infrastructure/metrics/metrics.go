package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCommitted prometheus.Counter
	TransferRejections *prometheus.CounterVec
	TransferFailures   *prometheus.CounterVec
	TransferDuration   prometheus.Histogram

	// Entry metrics
	EntriesCreated  prometheus.Counter
	EntriesSettled  prometheus.Counter
	RecordsSkipped  prometheus.Counter
	AccountsCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		TransfersCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixa_transfers_committed_total",
			Help: "Total number of transfers committed (both legs persisted)",
		}),
		TransferRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixa_transfer_rejections_total",
				Help: "Total number of transfers rejected before any write, by reason",
			},
			[]string{"reason"},
		),
		TransferFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixa_transfer_failures_total",
				Help: "Total number of transfer store failures by stage",
			},
			[]string{"stage"},
		),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caixa_transfer_duration_seconds",
			Help:    "Duration of committed transfer operations",
			Buckets: prometheus.DefBuckets,
		}),

		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixa_entries_created_total",
			Help: "Total number of standalone entries created",
		}),
		EntriesSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixa_entries_settled_total",
			Help: "Total number of entries marked settled",
		}),
		RecordsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixa_source_records_skipped_total",
			Help: "Total number of source records dropped during normalization",
		}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixa_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixa_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caixa_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
