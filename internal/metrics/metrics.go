// Package metrics counts action log operations with Prometheus collectors.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dshills/actionlog/internal/actionlog"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for action logs.
type Metrics struct {
	registry *prometheus.Registry

	actions  *prometheus.CounterVec
	conflict *prometheus.CounterVec
}

// New creates a metrics set on its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "actionlog_actions_total",
				Help: "Total number of action log operations",
			},
			[]string{"domain", "op"},
		),
		conflict: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "actionlog_conflicts_total",
				Help: "Total number of undo/redo requests refused by a domain conflict",
			},
			[]string{"domain"},
		),
	}
	m.registry.MustRegister(m.actions, m.conflict)
	return m
}

// Observe counts one log operation.
func (m *Metrics) Observe(domain string, op actionlog.Op) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(domain, string(op)).Inc()
}

// Conflict counts one refused undo or redo.
func (m *Metrics) Conflict(domain string) {
	if m == nil {
		return
	}
	m.conflict.WithLabelValues(domain).Inc()
}

// Observer adapts m into an action log observer for domain.
// Returns nil if m is nil, which WithObserver ignores.
func Observer[P any](m *Metrics, domain string) actionlog.Observer[P] {
	if m == nil {
		return nil
	}
	return func(op actionlog.Op, _ actionlog.Action[P]) {
		m.Observe(domain, op)
	}
}

// WriteText writes every non-zero counter as "name{labels} value" lines,
// sorted for stable output.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	var lines []string
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			value := metric.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", fam.GetName(), strings.Join(labels, ","), value))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
