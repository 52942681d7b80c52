// Package prometheus exposes the service's metrics: a per-operation
// request histogram and counters for the economy events worth graphing.
package prometheus

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var requestMetrics = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "creature_api_request_duration_seconds",
		Help:    "Request duration by operation and status code",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"status", "op"},
)

var capturesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "creature_api_captures_total",
		Help: "Capture attempts by rarity tier and outcome",
	},
	[]string{"tier", "outcome"},
)

var tradesResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "creature_api_trades_resolved_total",
		Help: "Trade offers resolved by final status",
	},
	[]string{"status"},
)

var purchasesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "creature_api_purchases_total",
		Help: "Market purchases settled",
	},
)

// ObserveRequest records one handled request.
func ObserveRequest(d time.Duration, status int, op string) {
	requestMetrics.WithLabelValues(strconv.Itoa(status), op).Observe(d.Seconds())
}

// ObserveCapture records one capture attempt.
func ObserveCapture(tier string, captured bool) {
	outcome := "failed"
	if captured {
		outcome = "captured"
	}
	capturesTotal.WithLabelValues(tier, outcome).Inc()
}

// ObserveTradeResolved records one resolved trade offer.
func ObserveTradeResolved(status string) {
	tradesResolvedTotal.WithLabelValues(status).Inc()
}

// ObservePurchase records one settled purchase.
func ObservePurchase() {
	purchasesTotal.Inc()
}

// Metric serves the scrape endpoint on its own port.
type Metric struct {
	srv *http.Server
}

// New creates a metrics server listening on port.
func New(port int) *Metric {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Metric{
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%v", port),
			Handler: mux,
		},
	}
}

// Start serves until ctx is done, then shuts down.
func (m *Metric) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down metrics server", "error", err)
		}
	}()

	slog.Info("metrics server listening", "addr", m.srv.Addr)
	if err := m.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("metrics server error", "error", err)
	}
}
