// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// node kind label values
const (
	kindLeaf = "leaf"
	kindNode = "node"
)

// Metrics counts the structural events of the trees built by a Factory.
// All methods are safe on a nil *Metrics.
type Metrics struct {
	assimilations *prometheus.CounterVec
	conversions   *prometheus.CounterVec
	released      *prometheus.CounterVec
	inserts       prometheus.Counter
	removes       prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// With a nil reg the collectors stay unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// assimilations counts promotions to skip-list storage by node kind
		assimilations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "substtree_assimilations_total",
			Help: "Total promotions of nodes to skip-list storage by node kind",
		}, []string{"kind"}),

		// conversions counts first-order to higher-order conversions
		conversions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "substtree_higher_order_conversions_total",
			Help: "Total conversions of nodes to higher order by node kind",
		}, []string{"kind"}),

		released: f.NewCounterVec(prometheus.CounterOpts{
			Name: "substtree_nodes_released_total",
			Help: "Total nodes given back to the pool by node kind",
		}, []string{"kind"}),

		inserts: f.NewCounter(prometheus.CounterOpts{
			Name: "substtree_leaf_inserts_total",
			Help: "Total payloads added to leaves",
		}),

		removes: f.NewCounter(prometheus.CounterOpts{
			Name: "substtree_leaf_removes_total",
			Help: "Total payloads removed from leaves",
		}),
	}
}

func (m *Metrics) assimilated(kind string) {
	if m != nil {
		m.assimilations.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) converted(kind string) {
	if m != nil {
		m.conversions.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) nodeReleased(kind string) {
	if m != nil {
		m.released.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) payloadInserted() {
	if m != nil {
		m.inserts.Inc()
	}
}

func (m *Metrics) payloadRemoved() {
	if m != nil {
		m.removes.Inc()
	}
}
