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

// Event types emitted by the routing table for diagnostics.
const (
	EvEdgeAccepted        = 1 // edge passed the nonce check and was applied
	EvEdgeStale           = 2 // edge was rejected (nonce <= current)
	EvRecalculated        = 3 // forwarding table recomputed
	EvComponentSpilled    = 4 // a component was written to the store
	EvComponentRestored   = 5 // a component was read back from the store
	EvInconsistentRestore = 6 // a restored peer's component nonce disagreed
)

// Event reports something interesting happening inside the core.
type Event struct {
	Type int     // event type (see consts)
	Peer *PeerID // peer the event concerns (optional)
	Ref  *PeerID // secondary peer reference (optional)
	Val  any     // event-specific payload
}

// Listener is notified of Events. May be nil.
type Listener func(*Event)
