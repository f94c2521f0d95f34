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
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

//----------------------------------------------------------------------
// RoutingTable is the public Control Surface (§4.6, §6): a single
// goroutine owns every mutable piece of state (Edge Store, Overlay
// Graph, Reachability Tracker, Spill Engine) and drains a channel of
// typed requests, the idiomatic-Go rendering of original_source's
// actix Handler<RoutingTableMessages>. Every exported method except
// Forwarding sends a request and blocks on its own reply channel.
//----------------------------------------------------------------------

// RoutingTable is the sole entry point callers use to submit edges and
// retrieve forwarding state. The zero value is not usable; build one
// with New.
type RoutingTable struct {
	requests chan any
	done     chan struct{}
	router   *Router
}

// Options configures a RoutingTable. All fields are optional.
type Options struct {
	Store    Store
	Clock    clock.Clock
	Log      *zap.Logger
	Registry prometheus.Registerer
	Listener Listener
}

// New starts the actor loop for local and returns a handle to it.
// Callers must eventually call Stop.
func New(local *PeerID, opts Options) *RoutingTable {
	m := newMetrics(opts.Registry)
	router := NewRouter(local, opts.Store, opts.Clock, opts.Log, m, opts.Listener)
	rt := &RoutingTable{
		requests: make(chan any, 64),
		done:     make(chan struct{}),
		router:   router,
	}
	go rt.run(router)
	return rt
}

func (rt *RoutingTable) run(router *Router) {
	defer close(rt.done)
	for req := range rt.requests {
		switch r := req.(type) {
		case *addVerifiedEdgesReq:
			r.reply <- router.AddEdges(r.edges)
		case *routingTableUpdateReq:
			r.reply <- router.Recalculate(r.prune, r.unreachableFor)
		case *requestRoutingTableReq:
			r.reply <- router.AllEdges()
		case *advRemoveEdgesReq:
			router.AdvRemoveEdges(r.edges)
			r.reply <- struct{}{}
		case *addPeerReq:
			router.AddPeer(r.peer)
			r.reply <- struct{}{}
		case *removePeerReq:
			router.RemovePeer(r.peer)
			r.reply <- struct{}{}
		case *splitEdgesForPeerReq:
			known, unknown := router.SplitEdgesForPeer(r.peer, r.hashes)
			r.reply <- splitEdgesForPeerResp{KnownSimpleEdges: known, UnknownHashes: unknown}
		case *stopReq:
			r.reply <- struct{}{}
			return
		}
	}
}

// AddVerifiedEdges submits a batch of already-verified edges and
// returns the subset actually accepted under the nonce-monotonicity
// rule (§4.1, §6).
func (rt *RoutingTable) AddVerifiedEdges(edges []*Edge) []*Edge {
	req := &addVerifiedEdgesReq{edges: edges, reply: make(chan []*Edge, 1)}
	rt.requests <- req
	return <-req.reply
}

// RoutingTableUpdate triggers a forwarding-table recomputation and,
// depending on prune, a pass of the Component Spill Engine (§4.4,
// §4.5, §6).
func (rt *RoutingTable) RoutingTableUpdate(prune PrunePolicy, unreachableFor time.Duration) RoutingTableUpdateResult {
	req := &routingTableUpdateReq{prune: prune, unreachableFor: unreachableFor, reply: make(chan RoutingTableUpdateResult, 1)}
	rt.requests <- req
	return <-req.reply
}

// RequestRoutingTable returns every edge currently known to the Edge
// Store, for diagnostics (§6).
func (rt *RoutingTable) RequestRoutingTable() []*Edge {
	req := &requestRoutingTableReq{reply: make(chan []*Edge, 1)}
	rt.requests <- req
	return <-req.reply
}

// AdvRemoveEdges unconditionally removes edges, bypassing nonce checks
// (§6, intended for tests only).
func (rt *RoutingTable) AdvRemoveEdges(edges []*Edge) {
	req := &advRemoveEdgesReq{edges: edges, reply: make(chan struct{}, 1)}
	rt.requests <- req
	<-req.reply
}

// AddPeer registers peer for reconciliation (§6 add_peer), tagging its
// aggregate edge set with a fresh random seed. A no-op when
// Config.ReconciliationEnabled is false.
func (rt *RoutingTable) AddPeer(peer *PeerID) {
	req := &addPeerReq{peer: peer, reply: make(chan struct{}, 1)}
	rt.requests <- req
	<-req.reply
}

// RemovePeer unregisters peer from reconciliation (§6 remove_peer).
func (rt *RoutingTable) RemovePeer(peer *PeerID) {
	req := &removePeerReq{peer: peer, reply: make(chan struct{}, 1)}
	rt.requests <- req
	<-req.reply
}

// SplitEdgesForPeer answers a reconciliation round for peer (§6
// split_edges_for_peer): given the edge-key hashes it claims to
// already hold, returns the edges this core recognises among them and
// the hashes it cannot match. An unregistered peer gets two empty
// slices back (§7).
func (rt *RoutingTable) SplitEdgesForPeer(peer *PeerID, hashes []EdgeHash) (knownSimpleEdges []*Edge, unknownHashes []EdgeHash) {
	req := &splitEdgesForPeerReq{peer: peer, hashes: hashes, reply: make(chan splitEdgesForPeerResp, 1)}
	rt.requests <- req
	resp := <-req.reply
	return resp.KnownSimpleEdges, resp.UnknownHashes
}

// Stop terminates the actor loop. In-flight requests already queued
// ahead of Stop complete first; requests submitted after Stop returns
// will panic on a closed channel send, so callers must not use the
// handle again once Stop returns.
func (rt *RoutingTable) Stop() {
	req := &stopReq{reply: make(chan struct{}, 1)}
	rt.requests <- req
	<-req.reply
	close(rt.requests)
	<-rt.done
}

// Forwarding returns the currently published forwarding snapshot
// without going through the actor loop: the snapshot is published via
// an atomic pointer specifically so readers don't need to serialize
// behind the single writer (§4.6). New seeds an empty table, so this
// is always safe to call.
func (rt *RoutingTable) Forwarding() *ForwardingTable {
	return rt.router.Forwarding()
}
