// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Label names shared by the gateway collectors.
const (
	LabelMethod = "method"
	LabelStatus = "status"
	LabelURL    = "url"
	LabelResult = "result"
)

// Response cache outcomes recorded under [LabelResult].
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheStore = "store"
)

// summaryObjectives maps each exported quantile, from p1 to p99.9, to its allowed rank error.
var summaryObjectives = map[float64]float64{
	0.01:  0.001,
	0.05:  0.005,
	0.5:   0.05,
	0.9:   0.01,
	0.95:  0.005,
	0.99:  0.001,
	0.999: 0.0001,
}

// Metrics is the observability context handed to the upstream adapter,
// the resolvers, and the GraphQL handler.
type Metrics struct {
	// UpstreamErrors counts failed upstream calls by method, status and URL.
	UpstreamErrors *prometheus.CounterVec

	// CharacterRequests and CharacterDuration cover the character fields by HTTP verb.
	CharacterRequests *prometheus.CounterVec
	CharacterDuration *prometheus.SummaryVec

	// HelloRequests and HelloDuration cover Query.hello.
	HelloRequests prometheus.Counter
	HelloDuration prometheus.Summary

	// ResponseCache counts response cache lookups and writes.
	ResponseCache *prometheus.CounterVec
}

// NewMetrics creates the gateway collectors. They are not registered yet.
func NewMetrics() *Metrics {
	return &Metrics{
		UpstreamErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "characters_api_request_errors",
				Help: "register errors from characters api",
			},
			[]string{LabelMethod, LabelStatus, LabelURL},
		),

		CharacterRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "characters_api_request_characters_counter",
				Help: "count each request made at /characters",
			},
			[]string{LabelMethod},
		),

		CharacterDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "characters_api_request_characters_duration",
				Help:       "duration of requests of characters api made at /characters",
				Objectives: summaryObjectives,
			},
			[]string{LabelMethod},
		),

		HelloRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "characters_api_request_hello_counter",
			Help: "count each request made at /",
		}),

		HelloDuration: prometheus.NewSummary(prometheus.SummaryOpts{
			Name:       "characters_api_request_hello_duration",
			Help:       "duration of requests of character api made at /",
			Objectives: summaryObjectives,
		}),

		ResponseCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "characters_api_response_cache_total",
				Help: "response cache lookups and writes by outcome",
			},
			[]string{LabelResult},
		),
	}
}

// collectors lists every collector for registration.
func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.UpstreamErrors,
		m.CharacterRequests,
		m.CharacterDuration,
		m.HelloRequests,
		m.HelloDuration,
		m.ResponseCache,
	}
}

// StartCharacterTimer increments the character counter for method and
// returns a timer observing into the matching summary.
func (m *Metrics) StartCharacterTimer(method string) *prometheus.Timer {
	m.CharacterRequests.WithLabelValues(method).Inc()
	return prometheus.NewTimer(m.CharacterDuration.WithLabelValues(method))
}

// StartHelloTimer increments the hello counter and returns its timer.
func (m *Metrics) StartHelloTimer() *prometheus.Timer {
	m.HelloRequests.Inc()
	return prometheus.NewTimer(m.HelloDuration)
}
