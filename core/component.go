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

// Store is the external, concurrency-safe key-value collaborator the
// Spill Engine persists components through (§6 "Persisted state").
// The concrete implementation (package store) wraps goleveldb; this
// interface is all the core depends on, so it can be faked in tests.
type Store interface {
	// LastComponentNonce returns the next component nonce to allocate,
	// and whether one was ever stored.
	LastComponentNonce() (uint64, bool, error)

	// ComponentEdges returns the edge list stored for a component
	// nonce, if any.
	ComponentEdges(nonce uint64) ([]*Edge, bool, error)

	// PeerComponent returns the component nonce that owns peer's
	// spilled edges, if the peer is currently spilled.
	PeerComponent(peer *PeerID) (uint64, bool, error)

	// NewBatch starts a batched, atomically-committed update.
	NewBatch() Batch
}

// Batch is a set of writes committed atomically (§5 "store_update" ->
// "commit").
type Batch interface {
	SetLastComponentNonce(nonce uint64)
	SetComponentEdges(nonce uint64, edges []*Edge)
	DeleteComponentEdges(nonce uint64)
	SetPeerComponent(peer *PeerID, nonce uint64)
	DeletePeerComponent(peer *PeerID)
	Commit() error
}
