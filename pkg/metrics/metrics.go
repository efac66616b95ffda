// Package metrics holds the Prometheus counters for remote calls, retries,
// handle cache lookups and degraded queries. A nil *Metrics is valid and
// records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	remoteCalls  *prometheus.CounterVec
	retries      *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	degraded     *prometheus.CounterVec
}

// New creates the counters and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesdesk_remote_calls_total",
			Help: "Calls to the spreadsheet API by operation and outcome.",
		}, []string{"op", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesdesk_remote_retries_total",
			Help: "Retried spreadsheet API calls by operation.",
		}, []string{"op"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesdesk_handle_cache_lookups_total",
			Help: "Workbook and worksheet handle cache lookups.",
		}, []string{"kind", "result"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesdesk_degraded_queries_total",
			Help: "Queries that fell back to an empty result.",
		}, []string{"query"}),
	}
	if reg != nil {
		reg.MustRegister(m.remoteCalls, m.retries, m.cacheLookups, m.degraded)
	}
	return m
}

func (m *Metrics) RemoteCall(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.remoteCalls.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) Retry(op string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(op).Inc()
}

func (m *Metrics) CacheLookup(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) Degraded(query string) {
	if m == nil {
		return
	}
	m.degraded.WithLabelValues(query).Inc()
}
