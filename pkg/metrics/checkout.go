package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics counts the checkout funnel: persisted orders, persistence
// failures and built hand-off links.
type CheckoutMetrics struct {
	ordersPersisted    prometheus.Counter
	persistenceFailure prometheus.Counter
	handoffsBuilt      prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	ordersPersisted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_persisted_total",
		Help: "Orders successfully written before hand-off.",
	})
	persistenceFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_persistence_failures_total",
		Help: "Order persistence attempts that failed.",
	})
	handoffsBuilt := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_handoffs_built_total",
		Help: "WhatsApp hand-off links built after successful persistence.",
	})
	reg.MustRegister(ordersPersisted, persistenceFailure, handoffsBuilt)
	return &CheckoutMetrics{
		ordersPersisted:    ordersPersisted,
		persistenceFailure: persistenceFailure,
		handoffsBuilt:      handoffsBuilt,
	}
}

// IncOrdersPersisted increments the persisted-order counter.
func (c *CheckoutMetrics) IncOrdersPersisted() {
	if c == nil || c.ordersPersisted == nil {
		return
	}
	c.ordersPersisted.Inc()
}

// IncPersistenceFailure increments the persistence-failure counter.
func (c *CheckoutMetrics) IncPersistenceFailure() {
	if c == nil || c.persistenceFailure == nil {
		return
	}
	c.persistenceFailure.Inc()
}

// IncHandoffsBuilt increments the hand-off counter.
func (c *CheckoutMetrics) IncHandoffsBuilt() {
	if c == nil || c.handoffsBuilt == nil {
		return
	}
	c.handoffsBuilt.Inc()
}
