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

import "fmt"

// Position places a simulated node on a 2D plane.
type Position struct {
	X, Y float64
}

// Distance2 returns the squared Euclidean distance between two
// positions (squared so callers can compare against a squared reach
// without a sqrt).
func (p *Position) Distance2(pos *Position) float64 {
	dx := p.X - pos.X
	dy := p.Y - pos.Y
	return dx*dx + dy*dy
}

func (p *Position) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}
