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
	"bytes"
	"crypto/rand"
	"encoding/binary"
)

//----------------------------------------------------------------------
// Random numbers
//----------------------------------------------------------------------

// RndUInt64 returns a random uint64 integer, used to seed the
// reconciliation Bloom filter (§6).
func RndUInt64() uint64 {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	var v uint64
	c := bytes.NewBuffer(b)
	_ = binary.Read(c, binary.BigEndian, &v)
	return v
}

// RndUInt32 returns a random uint32 integer.
func RndUInt32() uint32 {
	return uint32(RndUInt64())
}

//----------------------------------------------------------------------
// generic array helpers
//----------------------------------------------------------------------

// Clone creates a new slice with the same content as the argument.
func Clone[T []E, E any](d T) T {
	if d == nil {
		return nil
	}
	r := make(T, len(d))
	copy(r, d)
	return r
}
