// Package hydrology runs the shore-distance, water-flow, lake, and
// river stages in order (spec §4.5).
package hydrology

import (
	"cosmopoeia/internal/worldgen/tilegraph"
)

// computeShoreDistance runs spec §4.5 step 1: BFS outward from every
// land tile adjacent to an Ocean/Lake tile, positive distance on land,
// negative inward on water.
func computeShoreDistance(g *tilegraph.Graph) {
	type frontierEntry struct {
		tile *tilegraph.Tile
		dist int
	}

	var landFrontier, waterFrontier []frontierEntry
	seenLand := map[int]bool{}
	seenWater := map[int]bool{}

	g.Range(func(t *tilegraph.Tile) bool {
		if isWater(t) {
			return true
		}
		for _, n := range g.NeighborTiles(t) {
			if isWater(n) && !seenLand[t.ID] {
				landFrontier = append(landFrontier, frontierEntry{t, 0})
				seenLand[t.ID] = true
			}
		}
		return true
	})
	g.Range(func(t *tilegraph.Tile) bool {
		if !isWater(t) {
			return true
		}
		for _, n := range g.NeighborTiles(t) {
			if !isWater(n) && !seenWater[t.ID] {
				waterFrontier = append(waterFrontier, frontierEntry{t, -1})
				seenWater[t.ID] = true
			}
		}
		return true
	})

	bfs := func(frontier []frontierEntry, seen map[int]bool, step int) {
		queue := append([]frontierEntry{}, frontier...)
		for i := 0; i < len(queue); i++ {
			cur := queue[i]
			cur.tile.ShoreDistance = cur.dist
			for _, n := range g.NeighborTiles(cur.tile) {
				if isWater(n) != isWater(cur.tile) {
					continue // stay within the same water/land side
				}
				if seen[n.ID] {
					continue
				}
				seen[n.ID] = true
				queue = append(queue, frontierEntry{n, cur.dist + step})
			}
		}
	}
	bfs(landFrontier, seenLand, 1)
	bfs(waterFrontier, seenWater, -1)
}

// computeHarbor populates every tile's HarborTileID (the first adjacent
// Ocean tile, by neighbor order — a seagoing harbor, not a lakeshore)
// and WaterCount (how many neighbors are Ocean or Lake), per
// spec.md:41. Read later by settlement's capital/town port scoring
// instead of re-deriving adjacency per call.
func computeHarbor(g *tilegraph.Graph) {
	g.Range(func(t *tilegraph.Tile) bool {
		var harbor *int
		count := 0
		for _, n := range g.NeighborTiles(t) {
			if !isWater(n) {
				continue
			}
			count++
			if harbor == nil && n.Grouping == tilegraph.Ocean {
				id := n.ID
				harbor = &id
			}
		}
		t.HarborTileID = harbor
		t.WaterCount = &count
		return true
	})
}

func isWater(t *tilegraph.Tile) bool {
	return t.Grouping == tilegraph.Ocean || t.Grouping == tilegraph.Lake
}
