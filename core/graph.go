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
// OverlayGraph is the undirected adjacency view over currently Added
// edges (§4.2). Self-loops are forbidden and parallel edges collapse
// to a single entry because the edge key is unique per unordered pair.
//----------------------------------------------------------------------

// OverlayGraph is an undirected graph over peer identities (at most
// one edge per peer pair), parameterised by the local peer.
type OverlayGraph struct {
	local *PeerID
	adj   map[string]map[string]*PeerID // peer key -> neighbour key -> neighbour id
	ids   map[string]*PeerID            // peer key -> PeerID, for lookups
}

// NewOverlayGraph creates an empty graph rooted at local.
func NewOverlayGraph(local *PeerID) *OverlayGraph {
	return &OverlayGraph{
		local: local,
		adj:   make(map[string]map[string]*PeerID),
		ids:   make(map[string]*PeerID),
	}
}

func (g *OverlayGraph) ensure(p *PeerID) {
	if _, ok := g.adj[p.Key()]; !ok {
		g.adj[p.Key()] = make(map[string]*PeerID)
		g.ids[p.Key()] = p
	}
}

// AddEdge adds an undirected edge between a and b. Self-loops are
// rejected silently (§3).
func (g *OverlayGraph) AddEdge(a, b *PeerID) {
	if a.Equal(b) {
		return
	}
	g.ensure(a)
	g.ensure(b)
	g.adj[a.Key()][b.Key()] = b
	g.adj[b.Key()][a.Key()] = a
}

// RemoveEdge removes the undirected edge between a and b, if present.
func (g *OverlayGraph) RemoveEdge(a, b *PeerID) {
	if nbrs, ok := g.adj[a.Key()]; ok {
		delete(nbrs, b.Key())
	}
	if nbrs, ok := g.adj[b.Key()]; ok {
		delete(nbrs, a.Key())
	}
}

// TotalActiveEdges returns the number of undirected edges in the graph.
func (g *OverlayGraph) TotalActiveEdges() int {
	total := 0
	for _, nbrs := range g.adj {
		total += len(nbrs)
	}
	return total / 2
}

// Neighbors returns the direct neighbours of p.
func (g *OverlayGraph) Neighbors(p *PeerID) []*PeerID {
	nbrs, ok := g.adj[p.Key()]
	if !ok {
		return nil
	}
	out := make([]*PeerID, 0, len(nbrs))
	for _, n := range nbrs {
		out = append(out, n)
	}
	return out
}

// ForwardingTable maps a reachable peer to the set of first-hop
// neighbours of local that lie on some shortest path to it.
type ForwardingTable struct {
	hops map[string][]*PeerID
	ids  map[string]*PeerID
}

// NextHops returns the next-hop candidates for peer, or nil if
// unreachable.
func (f *ForwardingTable) NextHops(peer *PeerID) []*PeerID {
	if f == nil {
		return nil
	}
	return f.hops[peer.Key()]
}

// Len returns the number of reachable peers in the table.
func (f *ForwardingTable) Len() int {
	if f == nil {
		return 0
	}
	return len(f.hops)
}

// Peers returns every reachable peer recorded in the table. Order is
// unspecified.
func (f *ForwardingTable) Peers() []*PeerID {
	if f == nil {
		return nil
	}
	out := make([]*PeerID, 0, len(f.ids))
	for _, id := range f.ids {
		out = append(out, id)
	}
	return out
}

// bfsPeer is the per-peer BFS state, kept in a side table keyed by
// PeerID.Key() so results can be looked up and walked without
// re-threading PeerID pointers through every helper.
type bfsPeer struct {
	id        *PeerID
	distance  int
	firstHops map[string]*PeerID
}

// CalculateDistance runs a breadth-first search from the local peer
// and returns, for every other reachable peer, the set of first-hop
// neighbours of local that begin some shortest path to it (§4.2).
//
// Algorithm: every direct neighbour n of local starts with
// firstHops(n) = {n}. When BFS visits v as a neighbour of u at
// distance(u)+1, firstHops(v) absorbs firstHops(u); visits at equal
// distance are ignored (they are not part of a shortest path through
// u). The local peer itself never appears in the result, and
// next-hop order is unspecified (callers must treat it as a set).
func (g *OverlayGraph) CalculateDistance() *ForwardingTable {
	visited := make(map[string]*bfsPeer)
	queue := make([]*bfsPeer, 0, len(g.adj))

	if _, ok := g.adj[g.local.Key()]; ok {
		root := &bfsPeer{id: g.local, distance: 0, firstHops: map[string]*PeerID{}}
		visited[g.local.Key()] = root
		queue = append(queue, root)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for nk, n := range g.adj[cur.id.Key()] {
			if existing, ok := visited[nk]; ok {
				if existing.distance == cur.distance+1 {
					mergeInto(existing.firstHops, cur.firstHops)
				}
				// equal-or-lesser distance: ignored, not a shortest-path edge
				continue
			}
			next := &bfsPeer{id: n, distance: cur.distance + 1, firstHops: map[string]*PeerID{}}
			if cur.id.Equal(g.local) {
				next.firstHops[nk] = n
			} else {
				mergeInto(next.firstHops, cur.firstHops)
			}
			visited[nk] = next
			queue = append(queue, next)
		}
	}

	table := &ForwardingTable{
		hops: make(map[string][]*PeerID),
		ids:  make(map[string]*PeerID),
	}
	for key, bp := range visited {
		if key == g.local.Key() {
			continue
		}
		list := make([]*PeerID, 0, len(bp.firstHops))
		for _, h := range bp.firstHops {
			list = append(list, h)
		}
		table.hops[key] = list
		table.ids[key] = bp.id
	}
	return table
}

func mergeInto(dst, src map[string]*PeerID) {
	for k, v := range src {
		dst[k] = v
	}
}
