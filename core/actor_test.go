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
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

func TestRoutingTableTwoEdgeForwarding(t *testing.T) {
	local, mid, far := newTestPeer(), newTestPeer(), newTestPeer()
	rt := New(local, Options{})
	defer rt.Stop()

	rt.AddVerifiedEdges([]*Edge{
		NewEdge(local, mid, 1, Added, nil, nil),
		NewEdge(mid, far, 1, Added, nil, nil),
	})
	rt.RoutingTableUpdate(PruneDisable, 0)

	hops := rt.Forwarding().NextHops(far)
	if len(hops) != 1 || !hops[0].Equal(mid) {
		t.Fatalf("expected far to be reached via mid, got %v", hops)
	}
}

func TestRoutingTableSupersedeWithRemoved(t *testing.T) {
	local, peer := newTestPeer(), newTestPeer()
	rt := New(local, Options{})
	defer rt.Stop()

	rt.AddVerifiedEdges([]*Edge{NewEdge(local, peer, 1, Added, nil, nil)})
	rt.RoutingTableUpdate(PruneDisable, 0)
	if hops := rt.Forwarding().NextHops(peer); len(hops) != 1 {
		t.Fatalf("expected peer reachable after Added edge, got %v", hops)
	}

	rt.AddVerifiedEdges([]*Edge{NewEdge(local, peer, 2, Removed, nil, nil)})
	rt.RoutingTableUpdate(PruneDisable, 0)
	if hops := rt.Forwarding().NextHops(peer); len(hops) != 0 {
		t.Fatalf("expected peer unreachable after superseding Removed edge, got %v", hops)
	}
}

func TestRoutingTableStaleInputRejected(t *testing.T) {
	local, peer := newTestPeer(), newTestPeer()
	rt := New(local, Options{})
	defer rt.Stop()

	accepted := rt.AddVerifiedEdges([]*Edge{NewEdge(local, peer, 5, Added, nil, nil)})
	if len(accepted) != 1 {
		t.Fatalf("expected the first edge to be accepted, got %d", len(accepted))
	}
	accepted = rt.AddVerifiedEdges([]*Edge{NewEdge(local, peer, 3, Added, nil, nil)})
	if len(accepted) != 0 {
		t.Fatalf("expected a stale-nonce edge to be rejected, got %d accepted", len(accepted))
	}
}

func TestRoutingTableSpillThenRestore(t *testing.T) {
	mock := clock.NewMock()
	store := newMemStore()
	local, mid, far := newTestPeer(), newTestPeer(), newTestPeer()
	rt := New(local, Options{Store: store, Clock: mock})
	defer rt.Stop()

	rt.AddVerifiedEdges([]*Edge{
		NewEdge(local, mid, 1, Added, nil, nil),
		NewEdge(mid, far, 1, Added, nil, nil),
	})
	rt.RoutingTableUpdate(PruneDisable, 0)
	if hops := rt.Forwarding().NextHops(far); len(hops) == 0 {
		t.Fatal("expected far reachable before spill")
	}

	// sever the only path in. mid/far's reachability timestamps stop
	// refreshing once the following recomputation drops them from the
	// forwarding table, which happens as part of the forced update below.
	rt.AddVerifiedEdges([]*Edge{NewEdge(local, mid, 2, Removed, nil, nil)})

	// advance well past the hysteresis window and the unreachable
	// threshold, then force a spill.
	mock.Add(2 * time.Hour)
	rt.RoutingTableUpdate(PruneNow, time.Hour)

	if nonce, ok, _ := store.PeerComponent(mid); !ok {
		t.Fatalf("expected mid to be recorded in a component, got nonce=%d ok=%v", nonce, ok)
	}

	// touching mid again (a fresh edge mentioning it) must restore its
	// whole component, including the edge to far.
	rt.AddVerifiedEdges([]*Edge{NewEdge(local, mid, 3, Added, nil, nil)})
	rt.RoutingTableUpdate(PruneDisable, 0)

	if hops := rt.Forwarding().NextHops(far); len(hops) == 0 {
		t.Fatal("expected far reachable again after restore-on-touch")
	}
}

func TestRoutingTableHysteresisBlocksEarlyPrune(t *testing.T) {
	mock := clock.NewMock()
	store := newMemStore()
	local, peer := newTestPeer(), newTestPeer()
	rt := New(local, Options{Store: store, Clock: mock})
	defer rt.Stop()

	rt.AddVerifiedEdges([]*Edge{NewEdge(local, peer, 1, Added, nil, nil)})
	rt.RoutingTableUpdate(PruneDisable, 0)

	// disconnect peer so its reachability timestamp stops refreshing
	rt.AddVerifiedEdges([]*Edge{NewEdge(local, peer, 2, Removed, nil, nil)})

	// peer individually qualifies as unreachable after 10 minutes, but
	// the tracker as a whole (SAVE_PEERS_MAX_TIME = 1h by default) is
	// still too young at the 30-minute mark for PruneOncePerHour to act.
	mock.Add(30 * time.Minute)
	rt.RoutingTableUpdate(PruneOncePerHour, 10*time.Minute)

	if _, ok, _ := store.PeerComponent(peer); ok {
		t.Fatal("expected hysteresis to block the prune before SavePeersMaxTime elapses")
	}
}

func TestRoutingTableComponentNonceIncreases(t *testing.T) {
	mock := clock.NewMock()
	store := newMemStore()
	local, p1, p2 := newTestPeer(), newTestPeer(), newTestPeer()
	rt := New(local, Options{Store: store, Clock: mock})
	defer rt.Stop()

	rt.AddVerifiedEdges([]*Edge{NewEdge(local, p1, 1, Added, nil, nil)})
	rt.RoutingTableUpdate(PruneDisable, 0)
	rt.AddVerifiedEdges([]*Edge{NewEdge(local, p1, 2, Removed, nil, nil)})
	mock.Add(2 * time.Hour)
	rt.RoutingTableUpdate(PruneNow, time.Hour)
	nonce1, ok, _ := store.PeerComponent(p1)
	if !ok {
		t.Fatal("expected p1 spilled")
	}

	rt.AddVerifiedEdges([]*Edge{NewEdge(local, p2, 1, Added, nil, nil)})
	rt.RoutingTableUpdate(PruneDisable, 0)
	rt.AddVerifiedEdges([]*Edge{NewEdge(local, p2, 2, Removed, nil, nil)})
	mock.Add(2 * time.Hour)
	rt.RoutingTableUpdate(PruneNow, time.Hour)
	nonce2, ok, _ := store.PeerComponent(p2)
	if !ok {
		t.Fatal("expected p2 spilled")
	}

	if nonce2 <= nonce1 {
		t.Fatalf("expected component nonce to strictly increase across spills, got %d then %d", nonce1, nonce2)
	}
}
