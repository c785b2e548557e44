package http

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the API operation counters and the ledger size gauge.
type Metrics struct {
	AddsTotal     prometheus.Counter
	DeletesTotal  prometheus.Counter
	SearchesTotal prometheus.Counter
	LedgerSize    prometheus.Gauge
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		AddsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "purchases_adds_total",
			Help: "Number of records added through the API.",
		}),
		DeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "purchases_deletes_total",
			Help: "Number of records deleted through the API.",
		}),
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "purchases_searches_total",
			Help: "Number of record list/search requests.",
		}),
		LedgerSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "purchases_ledger_size",
			Help: "Number of records in the ledger after the last API operation.",
		}),
	}
	reg.MustRegister(m.AddsTotal, m.DeletesTotal, m.SearchesTotal, m.LedgerSize)
	return m
}
