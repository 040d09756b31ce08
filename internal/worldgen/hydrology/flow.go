package hydrology

import (
	"sort"

	"cosmopoeia/internal/worldgen/tilegraph"
)

// computeWaterFlow runs spec §4.5 step 2: for each land tile in
// descending-elevation order, route precipitation + already-accumulated
// inflow to its lowest lower neighbour; ties break by ascending tile
// id for determinism (spec §5). A tile with no strictly lower neighbour
// is a sink, returned for lake formation.
func computeWaterFlow(g *tilegraph.Graph) (sinks []*tilegraph.Tile, inflowCount map[int]int) {
	var land []*tilegraph.Tile
	g.Range(func(t *tilegraph.Tile) bool {
		if !isWater(t) {
			land = append(land, t)
			t.WaterAccumulation = t.Precipitation
			t.FlowTo = nil
		}
		return true
	})

	sort.Slice(land, func(i, j int) bool {
		if land[i].Elevation != land[j].Elevation {
			return land[i].Elevation > land[j].Elevation
		}
		return land[i].ID < land[j].ID
	})

	inflowCount = make(map[int]int, len(land))

	for _, t := range land {
		lowest := lowestLowerNeighbor(g, t)
		if lowest == nil {
			sinks = append(sinks, t)
			continue
		}
		t.FlowTo = []tilegraph.Neighbor{tilegraph.TileNeighbor(lowest.ID)}
		t.WaterFlow = t.WaterAccumulation
		lowest.WaterAccumulation += t.WaterAccumulation
		inflowCount[lowest.ID]++
	}

	sort.Slice(sinks, func(i, j int) bool { return sinks[i].ID < sinks[j].ID })
	return sinks, inflowCount
}

// lowestLowerNeighbor returns the neighbour (Tile or CrossMap kind)
// with the smallest elevation strictly below t's, an Ocean neighbour
// also qualifying at an elevation equal to t's, or nil if none exists.
func lowestLowerNeighbor(g *tilegraph.Graph, t *tilegraph.Tile) *tilegraph.Tile {
	var best *tilegraph.Tile
	for _, n := range g.NeighborTiles(t) {
		candidate := n.Elevation < t.Elevation || (n.Grouping == tilegraph.Ocean && n.Elevation <= t.Elevation)
		if !candidate {
			continue
		}
		if best == nil || n.Elevation < best.Elevation || (n.Elevation == best.Elevation && n.ID < best.ID) {
			best = n
		}
	}
	return best
}
