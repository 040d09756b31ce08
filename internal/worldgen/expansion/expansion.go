// Package expansion implements the weighted multi-source Dijkstra
// flood-fill shared by the People & Culture Engine and the
// Nations/Subnations Engine (spec §4.7, §4.9): every seed spreads
// simultaneously, and a tile's owner is whichever seed reached it at
// minimum accumulated cost.
package expansion

import (
	"container/heap"

	"cosmopoeia/internal/worldgen/tilegraph"
)

// Seed is one expansion origin: a tile plus an opaque owner id the
// caller assigns (a culture, nation, or subnation id).
type Seed struct {
	TileID int
	Owner  int
}

// CostFunc computes the cost of stepping from "from" to "to", given
// the owner currently expanding (so callers can apply a culture-match
// or expansionism modifier). Must be >= 0; a negative value is treated
// as 0 (no disappearing cost).
type CostFunc func(from, to *tilegraph.Tile, owner int) float64

// Result maps each reached tile id to its winning owner and the
// accumulated cost at which it was reached.
type Result struct {
	Owner map[int]int
	Cost  map[int]float64
}

type heapItem struct {
	tileID int
	owner  int
	cost   float64
}

type costHeap []heapItem

func (h costHeap) Len() int { return len(h) }
func (h costHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].tileID < h[j].tileID // deterministic tiebreak (spec §5)
}
func (h costHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *costHeap) Push(x any)   { *h = append(*h, x.(heapItem)) }
func (h *costHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Run floods from every seed simultaneously, bounded by maxCost: a
// tile is only claimed if reached at cost <= maxCost (spec §4.7's
// "neutral-land threshold"). Seeds are pushed in slice order, which
// must already be id-sorted by the caller for full determinism.
func Run(g *tilegraph.Graph, seeds []Seed, cost CostFunc, maxCost float64) Result {
	res := Result{Owner: map[int]int{}, Cost: map[int]float64{}}
	h := &costHeap{}
	heap.Init(h)

	for _, s := range seeds {
		heap.Push(h, heapItem{tileID: s.TileID, owner: s.Owner, cost: 0})
	}

	for h.Len() > 0 {
		item := heap.Pop(h).(heapItem)
		if existing, ok := res.Cost[item.tileID]; ok && existing <= item.cost {
			continue
		}
		res.Owner[item.tileID] = item.owner
		res.Cost[item.tileID] = item.cost

		t := g.Get(item.tileID)
		if t == nil {
			continue
		}
		for _, n := range g.NeighborTiles(t) {
			step := cost(t, n, item.owner)
			if step < 0 {
				step = 0
			}
			total := item.cost + step
			if total > maxCost {
				continue
			}
			if existing, ok := res.Cost[n.ID]; ok && existing <= total {
				continue
			}
			heap.Push(h, heapItem{tileID: n.ID, owner: item.owner, cost: total})
		}
	}
	return res
}
