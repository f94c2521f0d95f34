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

package sim

import (
	"fmt"

	"routingtable/core"
)

// Node pairs a running RoutingTable with the physical placement used to
// decide, at wiring time, which other nodes it is directly connected to.
// Unlike the teacher's SimNode it carries no message channel: there is
// no gossip to relay, since Network wires verified edges directly.
type Node struct {
	rt  *core.RoutingTable
	id  *core.PeerID
	pos *Position
	r2  float64 // squared broadcast radius
}

// NewNode starts a fresh RoutingTable for a newly generated identity at
// pos, reachable within r2 (squared distance).
func NewNode(pos *Position, r2 float64) *Node {
	prv := core.NewPeerPrivate()
	return &Node{
		rt:  core.New(prv.Public(), core.Options{}),
		id:  prv.Public(),
		pos: pos,
		r2:  r2,
	}
}

// PeerID returns the node's identity.
func (n *Node) PeerID() *core.PeerID {
	return n.id
}

// CanReach reports whether peer lies within n's broadcast radius.
func (n *Node) CanReach(peer *Node) bool {
	return n.pos.Distance2(peer.pos) < n.r2
}

// Stop terminates the node's RoutingTable actor.
func (n *Node) Stop() {
	n.rt.Stop()
}

func (n *Node) String() string {
	if n == nil {
		return "Node{nil}"
	}
	return fmt.Sprintf("Node{%s @ %s}", n.id, n.pos)
}
