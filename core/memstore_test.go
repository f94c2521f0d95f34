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

// memStore is an in-memory Store used only by this package's tests, so
// the Spill Engine and Router can be exercised without pulling in the
// goleveldb-backed implementation.
type memStore struct {
	nonce     uint64
	haveNonce bool
	edges     map[uint64][]*Edge
	peers     map[string]uint64
}

func newMemStore() *memStore {
	return &memStore{edges: make(map[uint64][]*Edge), peers: make(map[string]uint64)}
}

func (m *memStore) LastComponentNonce() (uint64, bool, error) {
	return m.nonce, m.haveNonce, nil
}

func (m *memStore) ComponentEdges(nonce uint64) ([]*Edge, bool, error) {
	edges, ok := m.edges[nonce]
	return edges, ok, nil
}

func (m *memStore) PeerComponent(peer *PeerID) (uint64, bool, error) {
	nonce, ok := m.peers[peer.Key()]
	return nonce, ok, nil
}

func (m *memStore) NewBatch() Batch {
	return &memBatch{store: m}
}

type memOp func(*memStore)

type memBatch struct {
	store *memStore
	ops   []memOp
}

func (b *memBatch) SetLastComponentNonce(nonce uint64) {
	b.ops = append(b.ops, func(m *memStore) { m.nonce, m.haveNonce = nonce, true })
}

func (b *memBatch) SetComponentEdges(nonce uint64, edges []*Edge) {
	b.ops = append(b.ops, func(m *memStore) { m.edges[nonce] = edges })
}

func (b *memBatch) DeleteComponentEdges(nonce uint64) {
	b.ops = append(b.ops, func(m *memStore) { delete(m.edges, nonce) })
}

func (b *memBatch) SetPeerComponent(peer *PeerID, nonce uint64) {
	key := peer.Key()
	b.ops = append(b.ops, func(m *memStore) { m.peers[key] = nonce })
}

func (b *memBatch) DeletePeerComponent(peer *PeerID) {
	key := peer.Key()
	b.ops = append(b.ops, func(m *memStore) { delete(m.peers, key) })
}

func (b *memBatch) Commit() error {
	for _, op := range b.ops {
		op(b.store)
	}
	return nil
}
