// Package metrics exposes journal activity as prometheus metrics. A CLI
// process is short lived, so the registry is flushed to a node_exporter
// textfile instead of being scraped.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rustyeddy/tradejournal/journal"
)

const namespace = "tradejournal"

// Source is the part of *journal.Store the metrics follow.
type Source interface {
	List() []journal.Record
	Subscribe(fn func(journal.Event)) (cancel func())
}

type Metrics struct {
	registry *prometheus.Registry

	Operations   *prometheus.CounterVec
	Trades       prometheus.Gauge
	NetPnl       prometheus.Gauge
	LastMutation prometheus.Gauge

	now func() time.Time
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Journal mutations by kind",
		}, []string{"op"}),
		Trades: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "trades",
			Help:      "Trades currently in the journal",
		}),
		NetPnl: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "net_pnl",
			Help:      "Sum of pnl over the journal",
		}),
		LastMutation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_mutation_timestamp_seconds",
			Help:      "Unix time of the last journal mutation",
		}),
		now: time.Now,
	}

	m.registry.MustRegister(m.Operations)
	m.registry.MustRegister(m.Trades)
	m.registry.MustRegister(m.NetPnl)
	m.registry.MustRegister(m.LastMutation)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Attach seeds the gauges from src and keeps them current. Call the
// returned func to stop following src.
func (m *Metrics) Attach(src Source) (detach func()) {
	m.observe(src.List())
	return src.Subscribe(func(ev journal.Event) {
		m.Operations.WithLabelValues(string(ev.Kind)).Inc()
		m.LastMutation.Set(float64(m.now().Unix()))
		m.observe(src.List())
	})
}

func (m *Metrics) observe(recs []journal.Record) {
	m.Trades.Set(float64(len(recs)))
	m.NetPnl.Set(journal.Equity(recs).Final())
}

// WriteTextfile atomically writes every registered metric to path in the
// text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
