package snsd

import (
	"github.com/prometheus/client_golang/prometheus"
)

const MetricNameSpace = "snsd"

var (
	contractTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "contract_total",
			Help:      "built contract envelopes by command and status",
		},
		[]string{"command", "status"},
	)

	lookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: MetricNameSpace,
			Name:      "lookup_duration_seconds",
			Help:      "domain lookup latency",
			Buckets:   prometheus.DefBuckets,
		},
	)

	registrarSequence = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "registrar_sequence",
			Help:      "current registrar account sequence number",
		},
	)

	ordersTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "orders_total",
			Help:      "archived envelope orders",
		},
	)
)

func init() {
	prometheus.MustRegister(
		contractTotal,
		lookupDuration,
		registrarSequence,
		ordersTotal,
	)
}

func metricContract(command string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	contractTotal.WithLabelValues(command, status).Inc()
}
