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

import "fmt"

// EdgeKind tags whether an edge represents an established or torn-down
// connection. By convention Added edges carry odd nonces and Removed
// edges carry even nonces, but the core treats the tag as independent
// information (§3).
type EdgeKind uint8

const (
	Added EdgeKind = iota
	Removed
)

func (k EdgeKind) String() string {
	if k == Added {
		return "Added"
	}
	return "Removed"
}

// EdgeKey is the canonical unordered pair of peer identities: Peer0 is
// always the lesser of the two under PeerID.Less (§3 invariant 1).
type EdgeKey struct {
	Peer0 *PeerID
	Peer1 *PeerID
}

// String returns a map-key-stable representation of the edge key.
func (k EdgeKey) String() string {
	return k.Peer0.Key() + "|" + k.Peer1.Key()
}

// Contains reports whether p is one of the two endpoints.
func (k EdgeKey) Contains(p *PeerID) bool {
	return k.Peer0.Equal(p) || k.Peer1.Equal(p)
}

// Edge is a signed, nonced, kinded record for an unordered pair of
// peers (§3). Proof0/Proof1 are the two endpoint signatures; they are
// opaque to the core (verification happens outside it, §1). Edge is
// serialized by store/codec.go, not by gospel/data, so it carries no
// wire-format struct tags.
type Edge struct {
	Peer0  *PeerID
	Peer1  *PeerID
	Nonce  uint64
	Kind   EdgeKind
	Proof0 []byte
	Proof1 []byte
}

// Key canonicalises the edge's endpoints into an EdgeKey, swapping
// Peer0/Peer1 if necessary so Peer0 < Peer1 under the peer order.
func (e *Edge) Key() EdgeKey {
	return EdgeKeyOf(e.Peer0, e.Peer1)
}

// EdgeKeyOf builds the canonical edge key for an unordered peer pair.
func EdgeKeyOf(a, b *PeerID) EdgeKey {
	if a.Less(b) {
		return EdgeKey{Peer0: a, Peer1: b}
	}
	return EdgeKey{Peer0: b, Peer1: a}
}

// NewEdge builds an edge with its endpoints canonicalised.
func NewEdge(peer0, peer1 *PeerID, nonce uint64, kind EdgeKind, proof0, proof1 []byte) *Edge {
	key := EdgeKeyOf(peer0, peer1)
	e := &Edge{Peer0: key.Peer0, Peer1: key.Peer1, Nonce: nonce, Kind: kind}
	if key.Peer0.Equal(peer0) {
		e.Proof0, e.Proof1 = proof0, proof1
	} else {
		e.Proof0, e.Proof1 = proof1, proof0
	}
	return e
}

// ContainsPeer reports whether p is one of the edge's two endpoints.
func (e *Edge) ContainsPeer(p *PeerID) bool {
	return e.Peer0.Equal(p) || e.Peer1.Equal(p)
}

// Other returns the endpoint of e that is not p, or nil if p is
// neither endpoint.
func (e *Edge) Other(p *PeerID) *PeerID {
	switch {
	case e.Peer0.Equal(p):
		return e.Peer1
	case e.Peer1.Equal(p):
		return e.Peer0
	default:
		return nil
	}
}

// String returns a human-readable representation.
func (e *Edge) String() string {
	return fmt.Sprintf("Edge{%s<->%s,#%d,%s}", e.Peer0, e.Peer1, e.Nonce, e.Kind)
}
