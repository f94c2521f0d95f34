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

//----------------------------------------------------------------------
// ReachabilityTracker records the last time each non-local peer was
// seen reachable in the computed forwarding table (§4.3). It drives
// the Spill Engine's pruning decision.
//----------------------------------------------------------------------

// ReachabilityTracker is a plain insert-or-update map of peer to the
// instant it was last observed reachable.
type ReachabilityTracker struct {
	last map[string]Instant
	ids  map[string]*PeerID
}

// NewReachabilityTracker creates an empty tracker.
func NewReachabilityTracker() *ReachabilityTracker {
	return &ReachabilityTracker{
		last: make(map[string]Instant),
		ids:  make(map[string]*PeerID),
	}
}

// Touch marks p reachable at instant now, inserting or updating it.
func (r *ReachabilityTracker) Touch(p *PeerID, now Instant) {
	r.last[p.Key()] = now
	r.ids[p.Key()] = p
}

// Contains reports whether p is currently tracked.
func (r *ReachabilityTracker) Contains(p *PeerID) bool {
	_, ok := r.last[p.Key()]
	return ok
}

// LastSeen returns the last-reachable instant for p, if tracked.
func (r *ReachabilityTracker) LastSeen(p *PeerID) (Instant, bool) {
	t, ok := r.last[p.Key()]
	return t, ok
}

// Remove deletes p from the tracker.
func (r *ReachabilityTracker) Remove(p *PeerID) {
	delete(r.last, p.Key())
	delete(r.ids, p.Key())
}

// Len returns the number of peers currently tracked.
func (r *ReachabilityTracker) Len() int {
	return len(r.last)
}

// Oldest returns the minimum last-reachable instant across the whole
// tracker, and false if the tracker is empty.
func (r *ReachabilityTracker) Oldest() (Instant, bool) {
	var oldest Instant
	first := true
	for _, t := range r.last {
		if first || t.Before(oldest) {
			oldest = t
			first = false
		}
	}
	return oldest, !first
}

// Peers returns every peer currently tracked; use LastSeen for its
// last-reachable instant. Order is unspecified.
func (r *ReachabilityTracker) Peers() []*PeerID {
	out := make([]*PeerID, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, id)
	}
	return out
}
