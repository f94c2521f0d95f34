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

// Package store implements core.Store on top of goleveldb, the
// on-disk collaborator the Component Spill Engine persists spilled
// components through. It mirrors the three logical columns of
// original_source's near_store::Store used by the routing table actor:
// LastComponentNonce, ComponentEdges and PeerComponent, each given its
// own key prefix in a single leveldb database.
package store

import (
	"encoding/binary"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"

	"routingtable/core"
)

const (
	prefixNonce     byte = 0x01 // single key: next free component nonce
	prefixComponent byte = 0x02 // nonce -> encoded edge list
	prefixPeer      byte = 0x03 // peer bytes -> nonce
)

var keyNonce = []byte{prefixNonce}

// Store wraps a goleveldb database and implements core.Store.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if necessary) a goleveldb database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func componentKey(nonce uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefixComponent
	binary.BigEndian.PutUint64(key[1:], nonce)
	return key
}

func peerKey(peer *core.PeerID) []byte {
	raw := peer.Bytes()
	key := make([]byte, 1+len(raw))
	key[0] = prefixPeer
	copy(key[1:], raw)
	return key
}

// LastComponentNonce implements core.Store.
func (s *Store) LastComponentNonce() (uint64, bool, error) {
	val, err := s.db.Get(keyNonce, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(val) != 8 {
		return 0, false, errors.New("store: malformed last-component-nonce record")
	}
	return binary.BigEndian.Uint64(val), true, nil
}

// ComponentEdges implements core.Store.
func (s *Store) ComponentEdges(nonce uint64) ([]*core.Edge, bool, error) {
	val, err := s.db.Get(componentKey(nonce), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	edges, err := decodeEdges(val)
	if err != nil {
		return nil, false, err
	}
	return edges, true, nil
}

// PeerComponent implements core.Store.
func (s *Store) PeerComponent(peer *core.PeerID) (uint64, bool, error) {
	val, err := s.db.Get(peerKey(peer), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if len(val) != 8 {
		return 0, false, errors.New("store: malformed peer-component record")
	}
	return binary.BigEndian.Uint64(val), true, nil
}

// NewBatch implements core.Store.
func (s *Store) NewBatch() core.Batch {
	return &batch{db: s.db, raw: new(leveldb.Batch)}
}

// batch implements core.Batch with a buffered leveldb.Batch, so every
// mutation made during one RoutingTableUpdate commits atomically.
type batch struct {
	db  *leveldb.DB
	raw *leveldb.Batch
}

func (b *batch) SetLastComponentNonce(nonce uint64) {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, nonce)
	b.raw.Put(keyNonce, val)
}

func (b *batch) SetComponentEdges(nonce uint64, edges []*core.Edge) {
	b.raw.Put(componentKey(nonce), encodeEdges(edges))
}

func (b *batch) DeleteComponentEdges(nonce uint64) {
	b.raw.Delete(componentKey(nonce))
}

func (b *batch) SetPeerComponent(peer *core.PeerID, nonce uint64) {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, nonce)
	b.raw.Put(peerKey(peer), val)
}

func (b *batch) DeletePeerComponent(peer *core.PeerID) {
	b.raw.Delete(peerKey(peer))
}

func (b *batch) Commit() error {
	return b.db.Write(b.raw, nil)
}
