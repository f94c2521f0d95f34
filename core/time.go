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
	"time"

	"github.com/benbjohnson/clock"
)

//----------------------------------------------------------------------
// The Reachability Tracker and the Spill Engine's hysteresis window
// (§4.3, §4.4) are the two places this core cares about wall-clock
// time. Both are exercised here through an injectable clock.Clock
// instead of calling time.Now() directly, so tests can advance time
// deterministically across SAVE_PEERS_MAX_TIME windows instead of
// sleeping.
//----------------------------------------------------------------------

// Instant is a point in time as tracked by the Reachability Tracker.
type Instant = time.Time

// defaultClock is used whenever a RoutingTable is built without an
// explicit clock (production use).
func defaultClock() clock.Clock {
	return clock.New()
}
