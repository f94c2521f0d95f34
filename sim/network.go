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

// Package sim builds a network of RoutingTable actors scattered over a
// 2D plane and wires them the way a transport layer would once it has
// verified a beacon exchange between two physically adjacent peers.
// It replaces the teacher's gossip-based network simulation (which
// measured how many epochs a LEARN/TEACH exchange needed to converge)
// with a direct measurement of forwarding coverage, since the new core
// has no convergence delay of its own: an edge is either accepted or
// rejected the moment it is submitted.
package sim

import (
	"math/rand"

	"routingtable/core"
)

// Network is a population of Nodes placed on a plane, together with
// the routing tables they build once wired.
type Network struct {
	nodes []*Node
	byKey map[string]*Node
	walls *WallModel // optional line-of-sight obstruction model
}

// SetWalls installs a wall model: Wire then uses it to decide
// reachability instead of a bare squared-distance comparison.
func (n *Network) SetWalls(walls *WallModel) {
	n.walls = walls
}

func (n *Network) canReach(a, b *Node) bool {
	if n.walls != nil {
		return n.walls.CanReach(a, b)
	}
	return a.CanReach(b) || b.CanReach(a)
}

// NewNetwork places Cfg.Env.NumNodes nodes uniformly at random over the
// configured plane.
func NewNetwork() *Network {
	n := &Network{}
	for i := 0; i < Cfg.Env.NumNodes; i++ {
		pos := &Position{
			X: rand.Float64() * Cfg.Env.Width, //nolint:gosec // deterministic test seed
			Y: rand.Float64() * Cfg.Env.Height, //nolint:gosec // deterministic test seed
		}
		n.nodes = append(n.nodes, NewNode(pos, Cfg.Node.Reach2))
	}
	n.byKey = make(map[string]*Node, len(n.nodes))
	for _, node := range n.nodes {
		n.byKey[node.PeerID().Key()] = node
	}
	return n
}

// Nodes returns every node in the network.
func (n *Network) Nodes() []*Node {
	return n.nodes
}

// Wire builds a verified Added edge for every pair of physically
// adjacent nodes and submits the whole edge set to every node, as if a
// lower transport layer had already exchanged and validated beacons
// between each pair and the edge had then been announced to all peers
// (§1 Non-goals: the core never verifies signatures itself).
func (n *Network) Wire() {
	var nonce uint64
	var edges []*core.Edge
	for i, a := range n.nodes {
		for _, b := range n.nodes[i+1:] {
			if !n.canReach(a, b) {
				continue
			}
			nonce++
			edges = append(edges, core.NewEdge(a.PeerID(), b.PeerID(), nonce, core.Added, nil, nil))
		}
	}
	for _, node := range n.nodes {
		node.rt.AddVerifiedEdges(edges)
	}
}

// Recalculate triggers a forwarding-table recomputation on every node,
// without invoking the Spill Engine (there is nothing unreachable yet
// in a freshly-wired network).
func (n *Network) Recalculate() {
	for _, node := range n.nodes {
		node.rt.RoutingTableUpdate(core.PruneDisable, 0)
	}
}

// Stop shuts down every node's RoutingTable actor.
func (n *Network) Stop() {
	for _, node := range n.nodes {
		node.Stop()
	}
}

// Coverage returns the percentage of ordered node pairs, restricted to
// pairs in the same physical-connectivity component, for which the
// forwarding table actually resolves a next hop. It mirrors the
// teacher's success-rate measurement in spirit (sim/network.go's
// RoutingTable/Stats pair) but reads the published ForwardingTable
// directly instead of replaying a hop-by-hop route.
func (n *Network) Coverage() float64 {
	components := n.components()
	total, reached := 0, 0
	for _, a := range n.nodes {
		table := a.rt.Forwarding()
		comp := components[a.PeerID().Key()]
		for _, b := range n.nodes {
			if a == b || components[b.PeerID().Key()] != comp {
				continue
			}
			total++
			if len(table.NextHops(b.PeerID())) > 0 {
				reached++
			}
		}
	}
	if total == 0 {
		return 100.
	}
	return 100. * float64(reached) / float64(total)
}

// components labels every node with an integer identifying its
// physical-connectivity component via a plain BFS over CanReach.
func (n *Network) components() map[string]int {
	labels := make(map[string]int, len(n.nodes))
	next := 0
	for _, start := range n.nodes {
		if _, done := labels[start.PeerID().Key()]; done {
			continue
		}
		queue := []*Node{start}
		labels[start.PeerID().Key()] = next
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, peer := range n.nodes {
				key := peer.PeerID().Key()
				if _, done := labels[key]; done {
					continue
				}
				if n.canReach(cur, peer) {
					labels[key] = next
					queue = append(queue, peer)
				}
			}
		}
		next++
	}
	return labels
}
