// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metric owns the Prometheus registry of the gateway.

Nothing here is a package-level singleton: [NewRegistry] builds a private
registry, registers the gateway [Metrics] and the Go/process collectors under
a constant "app" label, and exposes the scrape handler. Tests build their own
registry and assert on it in isolation.
*/
package metric

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the Prometheus registry with the gateway metrics.
type Registry struct {
	prometheusRegistry *prometheus.Registry
	Metrics            *Metrics
}

// NewRegistry creates a registry whose series all carry app=appLabel.
func NewRegistry(appLabel string) (*Registry, error) {
	prometheusRegistry := prometheus.NewRegistry()

	registerer := prometheus.Registerer(prometheusRegistry)
	if appLabel != "" {
		registerer = prometheus.WrapRegistererWith(prometheus.Labels{"app": appLabel}, prometheusRegistry)
	}

	metrics := NewMetrics()
	runtime := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}

	for _, collector := range append(metrics.collectors(), runtime...) {
		if err := registerer.Register(collector); err != nil {
			return nil, fmt.Errorf("metric: register collector: %w", err)
		}
	}

	return &Registry{prometheusRegistry: prometheusRegistry, Metrics: metrics}, nil
}

// Handler serves the registry in the Prometheus text exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})
}
