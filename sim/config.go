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
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"routingtable/core"
)

// Random generator (deterministic) for reproducible integration tests.
func init() {
	rand.Seed(19031962)
}

// EnvironCfg describes the physical placement of simulated nodes.
type EnvironCfg struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	NumNodes int     `json:"numNodes"`
}

// NodeCfg holds configuration data for simulated nodes.
type NodeCfg struct {
	Reach2 float64 `json:"reach2"` // squared broadcast radius
}

// Config is the test configuration for a simulated network.
type Config struct {
	Core *core.Config `json:"core"`
	Env  *EnvironCfg  `json:"environment"`
	Node *NodeCfg     `json:"node"`
}

// Cfg is the global configuration used by package-level helpers.
var Cfg = &Config{
	Core: &core.Config{
		SavePeersMaxTime: time.Hour,
	},
	Env: &EnvironCfg{
		Width:    100.,
		Height:   100.,
		NumNodes: 60,
	},
	Node: &NodeCfg{
		Reach2: 500.,
	},
}

// ReadConfig deserializes a configuration from a JSON file.
func ReadConfig(fn string) error {
	data, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &Cfg)
}
