package calc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	worth "go-btc-worth"
)

// Metrics instruments the engine's cycles.
type Metrics struct {
	cycleDuration prometheus.Summary
	cyclesTotal   *prometheus.CounterVec
	currentPrice  *prometheus.GaugeVec
}

// NewMetrics registers and returns the engine metrics. reg is typically
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycleDuration: prometheus.NewSummary(prometheus.SummaryOpts{
			Namespace: "worth",
			Name:      "cycle_duration_seconds",
			Help:      "Time spent per fetch-and-reconcile cycle",
		}),
		cyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "worth",
			Name:      "cycles_total",
			Help:      "Number of reconcile cycles by outcome",
		}, []string{"outcome"}),
		currentPrice: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "worth",
			Name:      "btc_price",
			Help:      "Current price of 1 BTC in the selected currency",
		}, []string{"currency"}),
	}
	reg.MustRegister(m.cycleDuration, m.cyclesTotal, m.currentPrice)
	return m
}

func (m *Metrics) observe(took time.Duration, err error, currency worth.Currency, current worth.Price) {
	m.cycleDuration.Observe(took.Seconds())
	if err != nil {
		m.cyclesTotal.WithLabelValues("error").Inc()
		return
	}
	m.cyclesTotal.WithLabelValues("ok").Inc()
	m.currentPrice.WithLabelValues(currency.Code).Set(float64(current))
}
