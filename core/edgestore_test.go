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

func TestEdgeStoreNonceMonotonicity(t *testing.T) {
	a, b := newTestPeer(), newTestPeer()
	s := NewEdgeStore()

	e1 := NewEdge(a, b, 2, Added, nil, nil)
	if !s.Upsert(e1) {
		t.Fatal("first edge should be accepted")
	}

	stale := NewEdge(a, b, 1, Added, nil, nil)
	if s.Upsert(stale) {
		t.Fatal("edge with lower nonce must be rejected")
	}
	if s.CurrentNonce(e1.Key()) != 2 {
		t.Fatal("stale edge must not have overwritten the store")
	}

	equalNonce := NewEdge(a, b, 2, Removed, nil, nil)
	if s.Upsert(equalNonce) {
		t.Fatal("edge with equal nonce must be rejected (strictly increasing only)")
	}

	newer := NewEdge(a, b, 3, Removed, nil, nil)
	if !s.Upsert(newer) {
		t.Fatal("edge with strictly higher nonce must be accepted")
	}
	got, ok := s.Get(e1.Key())
	if !ok || got.Kind != Removed {
		t.Fatal("store did not retain the superseding Removed edge")
	}
}

// TestEdgeStoreNonceMonotonicityAcrossDistinctPeerIDInstances exercises
// the case a same-pointer test can't: two *PeerID values for the same
// logical peer (as store/codec.go produces on every decode, since it
// always calls core.NewPeerID fresh). The store must still recognise
// them as the same edge key.
func TestEdgeStoreNonceMonotonicityAcrossDistinctPeerIDInstances(t *testing.T) {
	a, b := newTestPeer(), newTestPeer()
	s := NewEdgeStore()

	e1 := NewEdge(a, b, 2, Added, nil, nil)
	if !s.Upsert(e1) {
		t.Fatal("first edge should be accepted")
	}

	aCopy := NewPeerID(a.Bytes())
	bCopy := NewPeerID(b.Bytes())
	stale := NewEdge(aCopy, bCopy, 1, Added, nil, nil)
	if s.Upsert(stale) {
		t.Fatal("edge with lower nonce, decoded into fresh PeerID instances, must still be rejected")
	}
	if s.CurrentNonce(EdgeKeyOf(aCopy, bCopy)) != 2 {
		t.Fatal("a key built from fresh PeerID instances must resolve to the same stored entry")
	}
}

func TestEdgeStoreKeyCanonicalisation(t *testing.T) {
	a, b := newTestPeer(), newTestPeer()
	k1 := EdgeKeyOf(a, b)
	k2 := EdgeKeyOf(b, a)
	if k1 != k2 {
		t.Fatal("EdgeKeyOf must canonicalise regardless of argument order")
	}
}
