package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ReservationsCreatedTotal counts reservation creation outcomes.
	ReservationsCreatedTotal *prometheus.CounterVec
	// PromoRedemptionsTotal counts promo code application outcomes.
	PromoRedemptionsTotal *prometheus.CounterVec
	// PricingFallbackTotal counts price resolutions that fell back to linear pricing
	// because the stored day-price overrides could not be parsed.
	PricingFallbackTotal prometheus.Counter
	// EmailTasksTotal counts enqueued and processed email tasks.
	EmailTasksTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ReservationsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Count of reservation creation attempts by outcome.",
		}, []string{"result"})
		PromoRedemptionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_redemptions_total",
			Help:      "Count of promo code applications by outcome.",
		}, []string{"result"})
		PricingFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pricing_override_fallback_total",
			Help:      "Number of price resolutions that ignored unparsable day-price overrides.",
		})
		EmailTasksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_tasks_total",
			Help:      "Count of transactional email tasks by stage and outcome.",
		}, []string{"stage", "result"})

		mustRegister(reg, ReservationsCreatedTotal, PromoRedemptionsTotal, PricingFallbackTotal, EmailTasksTotal)
	})
}
