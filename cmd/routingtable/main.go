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

// Command routingtable runs a random planar network of RoutingTable
// actors, wires them once and reports the forwarding coverage reached.
// It is the direct descendant of the teacher's root main.go, adapted
// from an epoch-by-epoch gossip simulation to a single wire-then-
// recalculate pass, since the new core has no convergence delay of its
// own.
package main

import (
	"flag"
	"log"
	"time"

	"routingtable/sim"
)

func main() {
	var (
		width, height, reach2 float64
		numNodes              int
		wallReduce            float64
	)
	flag.Float64Var(&width, "w", 100., "plane width")
	flag.Float64Var(&height, "l", 100., "plane height")
	flag.Float64Var(&reach2, "r", 49., "broadcast reach, squared")
	flag.IntVar(&numNodes, "n", 500, "number of nodes")
	flag.Float64Var(&wallReduce, "wall-reduce", 0, "if >0, bisect the plane with a wall reducing reach by this factor (0 disables)")
	flag.Parse()

	sim.Cfg.Env.Width = width
	sim.Cfg.Env.Height = height
	sim.Cfg.Node.Reach2 = reach2
	sim.Cfg.Env.NumNodes = numNodes

	log.Println("Placing network...")
	netw := sim.NewNetwork()
	defer netw.Stop()

	if wallReduce > 0 {
		log.Printf("Installing bisecting wall, reach reduced by factor %.3f", wallReduce)
		walls := sim.NewWallModel()
		walls.Add(&sim.Position{X: width / 2, Y: 0}, &sim.Position{X: width / 2, Y: height}, wallReduce)
		netw.SetWalls(walls)
	}

	log.Println("Wiring verified edges...")
	start := time.Now()
	netw.Wire()
	netw.Recalculate()
	log.Printf("Converged in %s", time.Since(start))

	log.Printf("Forwarding coverage: %.2f%%", netw.Coverage())
}
