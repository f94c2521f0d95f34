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
	"go.uber.org/zap"
)

//----------------------------------------------------------------------
// SpillEngine moves edges incident on long-unreachable peers into a
// numbered component in the store, and transparently restores such a
// component if any of its members reappears (§4.4). It is the most
// subtle part of the core: ported from original_source's
// prune_unreachable_edges_and_save_to_db / fetch_edges_for_peer_from_disk,
// rendered in the teacher's style (best-effort store I/O, warn and
// continue on faults).
//----------------------------------------------------------------------

// SpillEngine owns the store-backed component lifecycle.
type SpillEngine struct {
	store    Store
	clock    clock.Clock
	log      *zap.Logger
	m        *metrics
	listener Listener

	nextNonce uint64
}

// NewSpillEngine creates a SpillEngine, reading the next free
// component nonce from the store at construction time (§4, invariant 6).
func NewSpillEngine(store Store, clk clock.Clock, log *zap.Logger, m *metrics, listener Listener) *SpillEngine {
	e := &SpillEngine{store: store, clock: clk, log: nopIfNil(log), m: m, listener: listener}
	if store != nil {
		if nonce, ok, err := store.LastComponentNonce(); err != nil {
			e.log.Warn("reading last component nonce failed; starting at 0", zap.Error(err))
		} else if ok {
			e.nextNonce = nonce
		}
	}
	return e
}

// emit notifies e.listener, if any, swallowing a nil listener.
func (e *SpillEngine) emit(ev *Event) {
	if e.listener != nil {
		e.listener(ev)
	}
}

// PruneAndSpill implements the prune-and-spill entry point of §4.4.
// It scans tracker for peers unreachable for longer than
// unreachableFor, honours the SAVE_PEERS_MAX_TIME hysteresis window
// unless force is set, and on eviction writes a new component to the
// store and removes the victims from tracker. The collected edges are
// returned so the caller can remove them from the Edge Store and
// Overlay Graph (step 6 of §4.4); this engine never mutates either.
func (e *SpillEngine) PruneAndSpill(tracker *ReachabilityTracker, edges *EdgeStore, force bool, unreachableFor time.Duration) []*Edge {
	now := e.clock.Now()
	oldest, any := tracker.Oldest()
	if !any {
		return nil
	}

	victims := make(map[string]*PeerID)
	for _, p := range tracker.Peers() {
		last, _ := tracker.LastSeen(p)
		if now.Sub(last) >= unreachableFor {
			victims[p.Key()] = p
		}
	}

	if !force && now.Sub(oldest) < cfg.SavePeersMaxTime {
		return nil
	}
	if len(victims) == 0 {
		return nil
	}

	nonce := e.nextNonce
	e.nextNonce++

	var collected []*Edge
	edges.Iter(func(edge *Edge) {
		key := edge.Key()
		if _, ok := victims[key.Peer0.Key()]; ok {
			collected = append(collected, edge)
			return
		}
		if _, ok := victims[key.Peer1.Key()]; ok {
			collected = append(collected, edge)
		}
	})

	if e.store != nil {
		batch := e.store.NewBatch()
		batch.SetLastComponentNonce(e.nextNonce)
		for _, p := range victims {
			batch.SetPeerComponent(p, nonce)
		}
		batch.SetComponentEdges(nonce, collected)
		if err := batch.Commit(); err != nil {
			e.log.Warn("committing spilled component failed", zap.Uint64("nonce", nonce), zap.Error(err))
		}
	}

	for _, p := range victims {
		tracker.Remove(p)
	}
	if e.m != nil {
		e.m.componentsSpilled.Inc()
	}
	e.emit(&Event{Type: EvComponentSpilled, Val: nonce})
	return collected
}

// RestoreOnTouch implements the restore-on-touch entry point of §4.4.
// It is invoked whenever a new edge announcement mentions a peer p
// that is neither local nor already tracked. If p was never spilled,
// it is simply inserted into tracker. If it was, the whole owning
// component is read back and re-applied through addEdge (the normal
// verified-edge path, so nonce monotonicity still governs every
// restored edge).
func (e *SpillEngine) RestoreOnTouch(p *PeerID, local *PeerID, tracker *ReachabilityTracker, addEdge func(*Edge) bool) {
	now := e.clock.Now()
	if e.store == nil {
		tracker.Touch(p, now)
		return
	}
	nonce, ok, err := e.store.PeerComponent(p)
	if err != nil {
		e.log.Warn("reading peer component failed", zap.Stringer("peer", p), zap.Error(err))
		tracker.Touch(p, now)
		return
	}
	if !ok {
		tracker.Touch(p, now)
		return
	}

	edges, ok, err := e.store.ComponentEdges(nonce)
	batch := e.store.NewBatch()
	batch.DeleteComponentEdges(nonce)
	if err != nil || !ok {
		if err != nil {
			e.log.Warn("reading component edges failed", zap.Uint64("nonce", nonce), zap.Error(err))
		}
		if cerr := batch.Commit(); cerr != nil {
			e.log.Warn("committing component-edge deletion failed", zap.Error(cerr))
		}
		tracker.Touch(p, now)
		return
	}

	e.emit(&Event{Type: EvComponentRestored, Peer: p, Val: nonce})

	backdated := now.Add(-cfg.SavePeersMaxTime)
	for _, edge := range edges {
		for _, q := range []*PeerID{edge.Peer0, edge.Peer1} {
			if q.Equal(local) || tracker.Contains(q) {
				continue
			}
			qNonce, qOK, qErr := e.store.PeerComponent(q)
			switch {
			case qErr != nil:
				e.log.Warn("reading peer component failed during restore", zap.Stringer("peer", q), zap.Error(qErr))
			case qOK && qNonce == nonce:
				tracker.Touch(q, backdated)
				batch.DeletePeerComponent(q)
			case qOK:
				e.log.Warn("peer belongs to a different component than expected",
					zap.Stringer("peer", q), zap.Uint64("expected", nonce), zap.Uint64("actual", qNonce))
				// q keeps its own component C' on disk, untouched, but it
				// must not fall back through addEdge's restore-on-touch
				// below (§4.4 step 3: do not restore C'). Marking it seen
				// now, rather than backdated, makes tracker.Contains(q)
				// true for the rest of this pass without pretending q was
				// ever actually reachable.
				tracker.Touch(q, now)
				e.emit(&Event{Type: EvInconsistentRestore, Peer: q, Val: qNonce})
			default:
				e.log.Warn("peer has no component on record during restore", zap.Stringer("peer", q))
			}
		}
		// Re-add through the normal verified-edge path so nonce
		// monotonicity still governs; a newer incoming edge for the
		// same key may render this a no-op.
		addEdge(edge)
	}
	if err := batch.Commit(); err != nil {
		e.log.Warn("committing component restore failed", zap.Uint64("nonce", nonce), zap.Error(err))
	}
}
