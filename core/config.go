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

import "time"

// Config holds the tunables of the routing-table core.
type Config struct {
	// SavePeersMaxTime is the hysteresis window from §4.4/§9: a prune
	// pass only evicts peers if the oldest reachability timestamp in
	// the tracker is older than this, even when individual victims
	// qualify on their own.
	SavePeersMaxTime time.Duration

	// ReconciliationEnabled gates the optional Bloom-filter aggregate
	// set used by AddPeer/RemovePeer/SplitEdgesForPeer (§6). Disabled
	// by default since the IBF exchange subsystem it serves is
	// explicitly out of scope (§1, §9).
	ReconciliationEnabled bool
}

// package-local configuration data (with default values)
var cfg = DefaultConfig()

// DefaultConfig mirrors nearcore's operating point: an hour of
// hysteresis before a prune pass is allowed to evict anyone.
func DefaultConfig() *Config {
	return &Config{
		SavePeersMaxTime:      time.Hour,
		ReconciliationEnabled: false,
	}
}

// SetConfiguration overrides the package-local configuration before use.
func SetConfiguration(c *Config) {
	if c.SavePeersMaxTime > 0 {
		cfg.SavePeersMaxTime = c.SavePeersMaxTime
	}
	cfg.ReconciliationEnabled = c.ReconciliationEnabled
}
