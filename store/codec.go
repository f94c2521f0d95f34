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

package store

import (
	"encoding/binary"
	"fmt"

	"routingtable/core"
)

// encodeEdges/decodeEdges give ComponentEdges a flat on-disk layout:
// a count followed by, per edge, Peer0|Peer1|Nonce|Kind|len(Proof0)|
// Proof0|len(Proof1)|Proof1. Proofs are opaque to the core, so they
// round-trip as raw bytes rather than through any signature-aware type.
func encodeEdges(edges []*core.Edge) []byte {
	buf := make([]byte, 4, 4+len(edges)*96)
	binary.BigEndian.PutUint32(buf, uint32(len(edges)))
	for _, e := range edges {
		buf = append(buf, e.Peer0.Bytes()...)
		buf = append(buf, e.Peer1.Bytes()...)

		var scratch [9]byte
		binary.BigEndian.PutUint64(scratch[:8], e.Nonce)
		scratch[8] = byte(e.Kind)
		buf = append(buf, scratch[:]...)

		buf = appendBytes(buf, e.Proof0)
		buf = appendBytes(buf, e.Proof1)
	}
	return buf
}

func appendBytes(buf, data []byte) []byte {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(data)))
	buf = append(buf, length[:]...)
	return append(buf, data...)
}

const peerIDSize = 32

func decodeEdges(buf []byte) ([]*core.Edge, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("store: truncated edge list header")
	}
	count := binary.BigEndian.Uint32(buf[:4])
	pos := 4
	edges := make([]*core.Edge, 0, count)
	for i := uint32(0); i < count; i++ {
		peer0, next, err := readPeer(buf, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		peer1, next, err := readPeer(buf, pos)
		if err != nil {
			return nil, err
		}
		pos = next

		if pos+9 > len(buf) {
			return nil, fmt.Errorf("store: truncated edge record")
		}
		nonce := binary.BigEndian.Uint64(buf[pos : pos+8])
		kind := core.EdgeKind(buf[pos+8])
		pos += 9

		proof0, next, err := readBytes(buf, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		proof1, next, err := readBytes(buf, pos)
		if err != nil {
			return nil, err
		}
		pos = next

		edges = append(edges, core.NewEdge(peer0, peer1, nonce, kind, proof0, proof1))
	}
	return edges, nil
}

func readPeer(buf []byte, pos int) (*core.PeerID, int, error) {
	if pos+peerIDSize > len(buf) {
		return nil, 0, fmt.Errorf("store: truncated peer id")
	}
	return core.NewPeerID(buf[pos : pos+peerIDSize]), pos + peerIDSize, nil
}

func readBytes(buf []byte, pos int) ([]byte, int, error) {
	if pos+4 > len(buf) {
		return nil, 0, fmt.Errorf("store: truncated byte-slice length")
	}
	length := int(binary.BigEndian.Uint32(buf[pos : pos+4]))
	pos += 4
	if pos+length > len(buf) {
		return nil, 0, fmt.Errorf("store: truncated byte slice")
	}
	return buf[pos : pos+length], pos + length, nil
}
