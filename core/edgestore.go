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

//----------------------------------------------------------------------
// EdgeStore is the canonical mapping from edge key to the latest known
// signed edge (§4.1). It is only ever touched from the single-writer
// actor loop, so unlike the teacher's ForwardTable it carries no lock
// of its own.
//----------------------------------------------------------------------

// EdgeStore holds the latest authoritative edge for every key. Keyed
// on key.String() rather than EdgeKey itself: EdgeKey holds *PeerID
// pointers, and Go's map equality on a pointer-valued struct field
// compares addresses, not the peer identity they point to — the same
// reason OverlayGraph and ForwardingTable key everything on
// PeerID.Key() instead of the pointer.
type EdgeStore struct {
	recs map[string]*Edge
}

// NewEdgeStore creates an empty edge store.
func NewEdgeStore() *EdgeStore {
	return &EdgeStore{recs: make(map[string]*Edge)}
}

// Contains reports whether an edge exists for the key.
func (s *EdgeStore) Contains(key EdgeKey) bool {
	_, ok := s.recs[key.String()]
	return ok
}

// CurrentNonce returns the nonce of the stored edge for key, or 0 if
// the key is absent.
func (s *EdgeStore) CurrentNonce(key EdgeKey) uint64 {
	if e, ok := s.recs[key.String()]; ok {
		return e.Nonce
	}
	return 0
}

// Get returns the stored edge for key, if any.
func (s *EdgeStore) Get(key EdgeKey) (*Edge, bool) {
	e, ok := s.recs[key.String()]
	return e, ok
}

// Upsert replaces the entry for edge.Key() iff edge.Nonce is strictly
// greater than the current nonce for that key (the sole correctness
// rule of §4.1, invariant 2). Returns whether it was applied.
func (s *EdgeStore) Upsert(edge *Edge) bool {
	key := edge.Key()
	if edge.Nonce <= s.CurrentNonce(key) {
		return false
	}
	s.recs[key.String()] = edge
	return true
}

// Remove unconditionally deletes the entry for key, reporting whether
// it was present.
func (s *EdgeStore) Remove(key EdgeKey) bool {
	k := key.String()
	if _, ok := s.recs[k]; !ok {
		return false
	}
	delete(s.recs, k)
	return true
}

// Len returns the number of edges currently stored.
func (s *EdgeStore) Len() int {
	return len(s.recs)
}

// Iter calls fn for every stored edge. Iteration order is unspecified.
func (s *EdgeStore) Iter(fn func(*Edge)) {
	for _, e := range s.recs {
		fn(e)
	}
}

// All returns a snapshot slice of every stored edge.
func (s *EdgeStore) All() []*Edge {
	out := make([]*Edge, 0, len(s.recs))
	for _, e := range s.recs {
		out = append(out, e)
	}
	return out
}
