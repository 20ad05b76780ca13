// Package metrics exposes the service's Prometheus metrics.
//
// Each Registry owns a private prometheus.Registry, so several servers (or
// tests) in one process never collide on metric names.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gophauth"

// Outcome labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	SignUps          *prometheus.CounterVec
	SignIns          *prometheus.CounterVec
	SignOuts         prometheus.Counter
	Validations      *prometheus.CounterVec
	AccountDeletions prometheus.Counter
}

// NewRegistry creates the counters and registers them together with the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		SignUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Sign-up attempts by result.",
		}, []string{"result"}),
		SignIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signins_total",
			Help:      "Sign-in attempts by result.",
		}, []string{"result"}),
		SignOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signouts_total",
			Help:      "Sign-out requests.",
		}),
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_validations_total",
			Help:      "Session validations by result.",
		}, []string{"result"}),
		AccountDeletions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_deletions_total",
			Help:      "Accounts removed through the admin API.",
		}),
	}

	r.registry.MustRegister(
		r.SignUps,
		r.SignIns,
		r.SignOuts,
		r.Validations,
		r.AccountDeletions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// ObserveDirectories registers gauges reporting the current number of
// accounts and live sessions. The functions are called on every scrape.
func (r *Registry) ObserveDirectories(accounts, sessions func() int) {
	r.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accounts",
			Help:      "Registered accounts.",
		}, func() float64 { return float64(accounts()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Live sessions.",
		}, func() float64 { return float64(sessions()) }),
	)
}

func (r *Registry) RecordSignUp(result string)     { r.SignUps.WithLabelValues(result).Inc() }
func (r *Registry) RecordSignIn(result string)     { r.SignIns.WithLabelValues(result).Inc() }
func (r *Registry) RecordSignOut()                 { r.SignOuts.Inc() }
func (r *Registry) RecordValidation(result string) { r.Validations.WithLabelValues(result).Inc() }
func (r *Registry) RecordAccountDeletion()         { r.AccountDeletions.Inc() }

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
