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

import "testing"

// TestNetworkFullCoverage wires a randomly-placed network and checks
// that every physically-connected pair of nodes ends up with a
// resolvable route, the many-node analogue of the two-edge forwarding
// scenario.
func TestNetworkFullCoverage(t *testing.T) {
	Cfg.Env.NumNodes = 40
	Cfg.Node.Reach2 = 400. // radius 20 on a 100x100 plane: a dense graph

	netw := NewNetwork()
	defer netw.Stop()
	netw.Wire()
	netw.Recalculate()

	if cov := netw.Coverage(); cov < 99.9 {
		t.Fatalf("coverage = %.2f%%, want 100%%", cov)
	}
}

// TestNetworkWallBlocksReach checks that installing a fully opaque wall
// between two otherwise-adjacent nodes severs their connectivity, and
// that a network with no wall installed reaches them as usual.
func TestNetworkWallBlocksReach(t *testing.T) {
	Cfg.Env.Width, Cfg.Env.Height = 100., 100.
	a := NewNode(&Position{X: 20, Y: 50}, 10000.) // reach covers the whole plane
	b := NewNode(&Position{X: 80, Y: 50}, 10000.)
	defer a.Stop()
	defer b.Stop()

	netw := &Network{nodes: []*Node{a, b}}
	if !netw.canReach(a, b) {
		t.Fatal("expected reach with no wall installed")
	}

	walls := NewWallModel()
	walls.Add(&Position{X: 50, Y: 0}, &Position{X: 50, Y: 100}, 0)
	netw.SetWalls(walls)
	if netw.canReach(a, b) {
		t.Fatal("expected a fully opaque wall to block reach")
	}
}

// TestNetworkSparseGraphPartitions checks that a sparse network still
// settles: nodes outside broadcast reach of everyone else form their
// own, correctly-reported, single-node component.
func TestNetworkSparseGraphPartitions(t *testing.T) {
	Cfg.Env.NumNodes = 20
	Cfg.Node.Reach2 = 1. // radius 1 on a 100x100 plane: mostly isolated

	netw := NewNetwork()
	defer netw.Stop()
	netw.Wire()
	netw.Recalculate()

	if cov := netw.Coverage(); cov < 99.9 {
		t.Fatalf("coverage = %.2f%%, want 100%% (every node should at least route within its own component)", cov)
	}
}
