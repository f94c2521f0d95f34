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

import "testing"

func TestSplitEdgesForPeerUnregisteredReturnsEmpty(t *testing.T) {
	SetConfiguration(&Config{ReconciliationEnabled: true, SavePeersMaxTime: cfg.SavePeersMaxTime})
	defer SetConfiguration(DefaultConfig())

	local, remote := newTestPeer(), newTestPeer()
	rt := New(local, Options{})
	defer rt.Stop()

	known, unknown := rt.SplitEdgesForPeer(remote, []EdgeHash{EdgeHash(42)})
	if len(known) != 0 || len(unknown) != 0 {
		t.Fatalf("expected empty response for unregistered peer, got known=%v unknown=%v", known, unknown)
	}
}

func TestSplitEdgesForPeerKnownAndUnknown(t *testing.T) {
	SetConfiguration(&Config{ReconciliationEnabled: true, SavePeersMaxTime: cfg.SavePeersMaxTime})
	defer SetConfiguration(DefaultConfig())

	local, a, b, remote := newTestPeer(), newTestPeer(), newTestPeer(), newTestPeer()
	rt := New(local, Options{})
	defer rt.Stop()

	edge := NewEdge(local, a, 1, Added, nil, nil)
	rt.AddVerifiedEdges([]*Edge{edge, NewEdge(local, b, 1, Added, nil, nil)})
	rt.AddPeer(remote)

	knownHash := edge.Key().Hash()
	unknownHash := EdgeHash(0xdeadbeef)

	known, unknown := rt.SplitEdgesForPeer(remote, []EdgeHash{knownHash, unknownHash})
	if len(known) != 1 || known[0].Key() != edge.Key() {
		t.Fatalf("expected the known hash to resolve to the matching edge, got %v", known)
	}
	if len(unknown) != 1 || unknown[0] != unknownHash {
		t.Fatalf("expected the unmatched hash to come back unchanged, got %v", unknown)
	}

	rt.RemovePeer(remote)
	known, unknown = rt.SplitEdgesForPeer(remote, []EdgeHash{knownHash})
	if len(known) != 0 || len(unknown) != 0 {
		t.Fatal("expected split to return empty once the peer is unregistered again")
	}
}
