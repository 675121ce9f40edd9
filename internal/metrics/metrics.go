// Package metrics exposes Prometheus counters for orders and payments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	OrdersPlaced      *prometheus.CounterVec
	PaymentOutcomes   *prometheus.CounterVec
	StatusTransitions *prometheus.CounterVec
	VersionConflicts  prometheus.Counter
	WebhookDeliveries *prometheus.CounterVec
	CartsCleared      prometheus.Counter
}

// New registers every collector on a fresh registry, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		OrdersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostelbite",
			Name:      "orders_placed_total",
			Help:      "Orders stored, by payment method and order mode.",
		}, []string{"method", "mode"}),
		PaymentOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostelbite",
			Name:      "payment_outcomes_total",
			Help:      "Payment confirmation outcomes, by payment method.",
		}, []string{"method", "outcome"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostelbite",
			Name:      "order_status_transitions_total",
			Help:      "Seller status changes, by target status.",
		}, []string{"status"}),
		VersionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hostelbite",
			Name:      "order_version_conflicts_total",
			Help:      "Concurrent order writes that had to be retried.",
		}),
		WebhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hostelbite",
			Name:      "webhook_deliveries_total",
			Help:      "Hosted checkout webhook deliveries, by event type.",
		}, []string{"event"}),
		CartsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hostelbite",
			Name:      "carts_cleared_total",
			Help:      "Carts emptied after a confirmed payment.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.OrdersPlaced,
		m.PaymentOutcomes,
		m.StatusTransitions,
		m.VersionConflicts,
		m.WebhookDeliveries,
		m.CartsCleared,
	)
	return m
}
