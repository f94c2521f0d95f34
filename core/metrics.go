//----------------------------------------------------------------------
// This file is part of leatea-routing.
// Copyright (C) 2022 Bernd Fix >Y<
//
// leatea-routing is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// leatea-routing is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package core

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics mirror the near_metrics calls in original_source's routing
// table actor (edge update counter, active-edge gauge, recalculation
// counter/histogram, reachable-peer gauge). Each RoutingTable builds
// its own set so multiple instances (e.g. in tests) don't collide on
// global metric names.

// metrics bundles the per-instance Prometheus collectors.
type metrics struct {
	edgeUpdates       prometheus.Counter
	edgeActive        prometheus.Gauge
	recalculations    prometheus.Counter
	recalcDuration    prometheus.Histogram
	peerReachable     prometheus.Gauge
	componentsSpilled prometheus.Counter
}

// newMetrics builds a fresh metric set and registers it with reg. reg
// may be nil, in which case metrics are created but never exposed
// (useful for tests that don't care about scraping).
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		edgeUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routingtable_edge_updates_total",
			Help: "Number of edges submitted via AddVerifiedEdges.",
		}),
		edgeActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routingtable_edge_active",
			Help: "Number of Added edges currently in the overlay graph.",
		}),
		recalculations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routingtable_recalculations_total",
			Help: "Number of forwarding-table recomputations performed.",
		}),
		recalcDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "routingtable_recalculation_seconds",
			Help: "Time spent recomputing the forwarding table.",
		}),
		peerReachable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routingtable_peer_reachable",
			Help: "Number of peers reachable in the last forwarding computation.",
		}),
		componentsSpilled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "routingtable_components_spilled_total",
			Help: "Number of components written to the store by the spill engine.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{
			m.edgeUpdates, m.edgeActive, m.recalculations, m.recalcDuration,
			m.peerReachable, m.componentsSpilled,
		} {
			_ = reg.Register(c)
		}
	}
	return m
}
