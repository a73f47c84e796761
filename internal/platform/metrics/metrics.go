// Package metrics exposes the core safety signals as prometheus series.
// A bus subscriber feeds the audit-derived counters so modules stay free of
// instrumentation concerns.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warden/internal/shared/events"
)

// Collectors holds every warden prometheus series.
type Collectors struct {
	registry *prometheus.Registry

	RecordsWritten *prometheus.CounterVec
	Breaches       prometheus.Counter
	AutoPauses     prometheus.Counter
	ThreatsLogged  prometheus.Counter
	LockdownActive prometheus.Gauge
	SegmentsSealed prometheus.Counter
}

// NewCollectors builds and registers the warden series on a fresh registry.
func NewCollectors() *Collectors {
	registry := prometheus.NewRegistry()

	c := &Collectors{
		registry: registry,
		RecordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "warden",
			Name:      "audit_records_total",
			Help:      "Forensic records appended, by severity.",
		}, []string{"severity"}),
		Breaches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "warden",
			Name:      "breaker_breaches_total",
			Help:      "Volume threshold breaches observed by the circuit breaker.",
		}),
		AutoPauses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "warden",
			Name:      "sentinel_auto_pauses_total",
			Help:      "Automatic pauses triggered by the sentinel executor.",
		}),
		ThreatsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "warden",
			Name:      "threats_logged_total",
			Help:      "Threat sightings appended to the threat surface history.",
		}),
		LockdownActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "warden",
			Name:      "lockdown_active",
			Help:      "Whether the global deny-all lockdown is engaged (0 or 1).",
		}),
		SegmentsSealed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "warden",
			Name:      "ledger_segments_sealed_total",
			Help:      "Ledger segments sealed into attestation certificates.",
		}),
	}

	registry.MustRegister(
		c.RecordsWritten,
		c.Breaches,
		c.AutoPauses,
		c.ThreatsLogged,
		c.LockdownActive,
		c.SegmentsSealed,
	)
	return c
}

// Handler serves the registry in the standard exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// HandleAuditEvent folds one audit envelope into the series. Wired as a bus
// subscriber on the audit.recorded and audit.segment_sealed topics.
func (c *Collectors) HandleAuditEvent(_ context.Context, event events.Envelope) error {
	switch event.EventType {
	case events.TopicSegmentSealed:
		c.SegmentsSealed.Inc()
		return nil
	}

	c.RecordsWritten.WithLabelValues(event.Severity).Inc()
	switch event.Category {
	case "volume_threshold_breached":
		c.Breaches.Inc()
	case "auto_pause_triggered":
		c.AutoPauses.Inc()
	case "threat_logged":
		c.ThreatsLogged.Inc()
	case "lockdown_triggered":
		c.LockdownActive.Set(1)
	case "lockdown_released":
		c.LockdownActive.Set(0)
	}
	return nil
}
