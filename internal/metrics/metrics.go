// Package metrics exposes the ledger totals as Prometheus gauges.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Registry holds the tally metrics on a private Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	Budget        prometheus.Gauge
	TotalExpenses prometheus.Gauge
	Remaining     prometheus.Gauge
	OverBudget    prometheus.Gauge
	Notifications prometheus.Counter
}

// NewRegistry creates and registers all metrics.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		Budget: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tally_budget",
			Help: "Current budget ceiling",
		}),
		TotalExpenses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tally_total_expenses",
			Help: "Cumulative expenses logged this session",
		}),
		Remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tally_remaining",
			Help: "Budget minus expenses (negative when over budget)",
		}),
		OverBudget: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tally_over_budget",
			Help: "1 when expenses exceed the budget, else 0",
		}),
		Notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tally_notifications_total",
			Help: "Total ledger notifications",
		}),
	}

	r.reg.MustRegister(r.Budget, r.TotalExpenses, r.Remaining, r.OverBudget, r.Notifications)
	return r
}

// Gatherer returns the underlying registry for exposition or tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Update implements ledger.Observer.
func (r *Registry) Update(totalExpenses, budget decimal.Decimal) {
	remaining := budget.Sub(totalExpenses)

	r.Budget.Set(budget.InexactFloat64())
	r.TotalExpenses.Set(totalExpenses.InexactFloat64())
	r.Remaining.Set(remaining.InexactFloat64())
	if remaining.IsNegative() {
		r.OverBudget.Set(1)
	} else {
		r.OverBudget.Set(0)
	}
	r.Notifications.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is canceled.
func (r *Registry) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info().Str("addr", addr).Msg("Serving metrics")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("metrics http server: %w", err)
	}
}
