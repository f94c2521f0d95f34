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
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

//----------------------------------------------------------------------
// Router owns the pieces a RoutingTableUpdate touches: the Edge Store,
// Overlay Graph, Reachability Tracker and Spill Engine, plus the
// published ForwardingTable snapshot (§4.5, §4.6). It is not
// concurrency-safe on its own; the Control Surface actor is the only
// thing that may call into it.
//----------------------------------------------------------------------

// Router computes and publishes forwarding snapshots.
type Router struct {
	local     *PeerID
	edges     *EdgeStore
	graph     *OverlayGraph
	tracker   *ReachabilityTracker
	spill     *SpillEngine
	reconcile *reconciler
	clock     clock.Clock
	log       *zap.Logger
	m         *metrics
	listener  Listener
	published atomic.Pointer[ForwardingTable]
	dirty     bool
}

// NewRouter wires up a Router for local, backed by store (may be nil
// for an in-memory-only instance, e.g. most tests).
func NewRouter(local *PeerID, store Store, clk clock.Clock, log *zap.Logger, m *metrics, listener Listener) *Router {
	if clk == nil {
		clk = defaultClock()
	}
	log = nopIfNil(log)
	r := &Router{
		local:     local,
		edges:     NewEdgeStore(),
		graph:     NewOverlayGraph(local),
		tracker:   NewReachabilityTracker(),
		spill:     NewSpillEngine(store, clk, log, m, listener),
		reconcile: newReconciler(log),
		clock:     clk,
		log:       log,
		m:         m,
		listener:  listener,
	}
	r.published.Store(&ForwardingTable{hops: make(map[string][]*PeerID), ids: make(map[string]*PeerID)})
	return r
}

// Forwarding returns the currently published snapshot. Safe to call
// from any goroutine; the returned table is immutable.
func (r *Router) Forwarding() *ForwardingTable {
	return r.published.Load()
}

// emit notifies r.listener, if any, swallowing a nil listener.
func (r *Router) emit(ev *Event) {
	if r.listener != nil {
		r.listener(ev)
	}
}

// AddEdges applies edges through the nonce-checked path (§4.1),
// updating the Overlay Graph and Reachability Tracker as a side
// effect, and triggers a restore-on-touch for any newly-seen peer.
// Returns the subset actually accepted.
func (r *Router) AddEdges(edges []*Edge) []*Edge {
	var accepted []*Edge
	for _, e := range edges {
		if r.addEdge(e) {
			accepted = append(accepted, e)
		}
	}
	if r.m != nil {
		r.m.edgeUpdates.Add(float64(len(edges)))
		r.m.edgeActive.Set(float64(r.graph.TotalActiveEdges()))
	}
	return accepted
}

// addEdge is the normal verified-edge ingestion path, reused both by
// AddEdges and by the Spill Engine's component restore.
func (r *Router) addEdge(e *Edge) bool {
	if !r.edges.Upsert(e) {
		r.emit(&Event{Type: EvEdgeStale, Peer: e.Peer0, Ref: e.Peer1, Val: e.Nonce})
		return false
	}
	switch e.Kind {
	case Added:
		r.graph.AddEdge(e.Peer0, e.Peer1)
	case Removed:
		r.graph.RemoveEdge(e.Peer0, e.Peer1)
	}
	r.dirty = true
	for _, p := range []*PeerID{e.Peer0, e.Peer1} {
		if p.Equal(r.local) || r.tracker.Contains(p) {
			continue
		}
		r.spill.RestoreOnTouch(p, r.local, r.tracker, r.addEdge)
	}
	r.emit(&Event{Type: EvEdgeAccepted, Peer: e.Peer0, Ref: e.Peer1, Val: e.Nonce})
	return true
}

// AdvRemoveEdges removes edges unconditionally, bypassing nonce checks
// (§6, test-only escape hatch).
func (r *Router) AdvRemoveEdges(edges []*Edge) {
	for _, e := range edges {
		key := e.Key()
		r.edges.Remove(key)
		r.graph.RemoveEdge(e.Peer0, e.Peer1)
	}
	if len(edges) > 0 {
		r.dirty = true
	}
}

// AllEdges returns every edge currently in the Edge Store (§6
// RequestRoutingTable).
func (r *Router) AllEdges() []*Edge {
	return r.edges.All()
}

// Recalculate implements RoutingTableUpdate (§4.5, §4.6): if no edge
// mutation has happened since the last recomputation, this is a no-op
// that returns the already-published snapshot. Otherwise it refreshes
// the Reachability Tracker from a fresh BFS, publishes the new
// forwarding snapshot, optionally invokes the Spill Engine, and
// reports edges evicted by the spill so the caller can drop its own
// bookkeeping on the local-incident subset. The dirty flag is cleared
// on every completed recomputation, whether or not anything evicted.
func (r *Router) Recalculate(prune PrunePolicy, unreachableFor time.Duration) RoutingTableUpdateResult {
	if !r.dirty {
		return RoutingTableUpdateResult{Forwarding: r.Forwarding()}
	}
	r.dirty = false

	start := r.clock.Now()
	table := r.graph.CalculateDistance()
	r.published.Store(table)

	for _, p := range table.Peers() {
		r.tracker.Touch(p, start)
	}

	var evicted []*Edge
	if prune != PruneDisable {
		evicted = r.spill.PruneAndSpill(r.tracker, r.edges, prune == PruneNow, unreachableFor)
		for _, e := range evicted {
			r.edges.Remove(e.Key())
			r.graph.RemoveEdge(e.Peer0, e.Peer1)
		}
	}

	if r.m != nil {
		r.m.recalculations.Inc()
		r.m.recalcDuration.Observe(r.clock.Now().Sub(start).Seconds())
		r.m.peerReachable.Set(float64(table.Len()))
	}
	r.emit(&Event{Type: EvRecalculated, Peer: r.local, Val: table.Len()})

	var evictedLocal []*Edge
	for _, e := range evicted {
		if e.ContainsPeer(r.local) {
			evictedLocal = append(evictedLocal, e)
		}
	}
	return RoutingTableUpdateResult{EvictedLocalEdges: evictedLocal, Forwarding: table}
}
