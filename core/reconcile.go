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
	"hash/fnv"

	"github.com/bfix/gospel/data"
	"go.uber.org/zap"
)

//----------------------------------------------------------------------
// Reconciliation is the pure, core-owned half of the optional IBF-based
// set-reconciliation subsystem (§1, §6, §9): the core never runs the
// probabilistic merge itself, it only answers "of the edges you claim
// to know, which do I also have, and which hashes mean nothing to me".
// Each registered peer gets its own salted Bloom filter over the edge
// keys it is assumed to already know, built and torn down through
// AddPeer/RemovePeer exactly as §6 describes ("insert or remove the
// aggregate edge set tagged with a random seed"); this reuses the
// teacher's own core/forward_table.go Filter/Candidates machinery
// (data.SaltedBloomFilter) rather than inventing a new structure.
//----------------------------------------------------------------------

// EdgeHash is the content hash of an edge key used by the
// reconciliation wire format (§6 split_edges_for_peer). It is
// independent of peer ordering since EdgeKey is already canonical.
type EdgeHash uint64

// Hash returns the reconciliation hash for the edge key.
func (k EdgeKey) Hash() EdgeHash {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.String()))
	return EdgeHash(h.Sum64())
}

// peerFilter is the aggregate edge set the core maintains per
// registered reconciliation peer.
type peerFilter struct {
	seed   uint32
	filter *data.SaltedBloomFilter
}

// reconciler owns the per-peer filters the reconciliation interface of
// §6 depends on. It is a field of Router, but factored out since it is
// wholly optional (Config.ReconciliationEnabled) and none of its state
// participates in the core invariants of §3/§8.
type reconciler struct {
	log    *zap.Logger
	filter map[string]*peerFilter // peer key -> aggregate filter
}

func newReconciler(log *zap.Logger) *reconciler {
	return &reconciler{log: nopIfNil(log), filter: make(map[string]*peerFilter)}
}

// buildFilter tags a fresh salted Bloom filter over every edge key
// currently in the store with a new random seed, the same sizing the
// teacher's ForwardTable.Filter uses (n+2 entries, 1/n false-positive
// rate).
func buildFilter(edges *EdgeStore) *peerFilter {
	n := edges.Len() + 2
	fpr := 1. / float64(n)
	seed := RndUInt32()
	f := data.NewSaltedBloomFilter(seed, n, fpr)
	edges.Iter(func(e *Edge) {
		f.Add([]byte(e.Key().String()))
	})
	return &peerFilter{seed: seed, filter: f}
}

// AddPeer registers peer for reconciliation (§6 "add_peer"), tagging
// its aggregate edge set with a fresh random seed.
func (rc *reconciler) AddPeer(peer *PeerID, edges *EdgeStore) {
	rc.filter[peer.Key()] = buildFilter(edges)
}

// RemovePeer unregisters peer (§6 "remove_peer"), discarding its
// aggregate filter.
func (rc *reconciler) RemovePeer(peer *PeerID) {
	delete(rc.filter, peer.Key())
}

// SplitEdgesForPeer answers a reconciliation round for peer (§6
// split_edges_for_peer): given the edge-key hashes the remote side
// claims to already hold, it returns the full edges this core
// recognises among them (knownSimpleEdges) and the hashes it cannot
// match to anything in the Edge Store (unknownHashes). An unregistered
// peer is logged at error level (§7 "unknown peer in reconciliation
// message") and answered with two empty slices so the remote side
// abandons the exchange.
func (rc *reconciler) SplitEdgesForPeer(peer *PeerID, edges *EdgeStore, hashes []EdgeHash) (knownSimpleEdges []*Edge, unknownHashes []EdgeHash) {
	if _, ok := rc.filter[peer.Key()]; !ok {
		rc.log.Error("reconciliation request from unregistered peer", zap.Stringer("peer", peer))
		return nil, nil
	}

	byHash := make(map[EdgeHash]*Edge, edges.Len())
	edges.Iter(func(e *Edge) {
		byHash[e.Key().Hash()] = e
	})

	for _, h := range hashes {
		if e, ok := byHash[h]; ok {
			knownSimpleEdges = append(knownSimpleEdges, e)
		} else {
			unknownHashes = append(unknownHashes, h)
		}
	}
	return knownSimpleEdges, unknownHashes
}

// AddPeer implements §6 add_peer for the Router; a no-op when
// reconciliation is disabled by configuration.
func (r *Router) AddPeer(peer *PeerID) {
	if !cfg.ReconciliationEnabled {
		return
	}
	r.reconcile.AddPeer(peer, r.edges)
}

// RemovePeer implements §6 remove_peer for the Router.
func (r *Router) RemovePeer(peer *PeerID) {
	if !cfg.ReconciliationEnabled {
		return
	}
	r.reconcile.RemovePeer(peer)
}

// SplitEdgesForPeer implements §6 split_edges_for_peer for the Router.
// Returns two nil slices when reconciliation is disabled.
func (r *Router) SplitEdgesForPeer(peer *PeerID, hashes []EdgeHash) ([]*Edge, []EdgeHash) {
	if !cfg.ReconciliationEnabled {
		return nil, nil
	}
	return r.reconcile.SplitEdgesForPeer(peer, r.edges, hashes)
}
