package hydrology

import (
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
)

// synthesizeRivers runs spec §4.5 step 5: walk each source (a tile
// with no upstream inflow and flow at or above riverThreshold) along
// its flow_to chain, emitting one segment per hop and tagging
// endpoints by the branching/confluence topology observed at each
// node. The walk stops at an ocean tile (to-type Mouth) or at a lake
// tile, whose to-type is Lake, or BranchingLake where that lake tile
// is also an outlet; a lake arrival is never typed Mouth.
func synthesizeRivers(g *tilegraph.Graph, inflowCount map[int]int, riverThreshold float64) {
	g.Range(func(t *tilegraph.Tile) bool {
		if isWater(t) {
			return true
		}
		if inflowCount[t.ID] != 0 {
			return true // not a source
		}
		if t.WaterFlow < riverThreshold {
			return true
		}
		walkRiver(g, t, inflowCount, riverThreshold)
		return true
	})
}

func walkRiver(g *tilegraph.Graph, source *tilegraph.Tile, inflowCount map[int]int, riverThreshold float64) {
	cur := source
	for {
		if len(cur.FlowTo) == 0 {
			return
		}
		next := g.Get(cur.FlowTo[0].TileID)
		if next == nil {
			return
		}

		fromType := endpointType(cur, inflowCount, true)
		toType := endpointType(next, inflowCount, false)

		seg := &tilegraph.RiverSegment{
			ID:         len(g.Rivers) + 1,
			FromTileID: cur.ID,
			FromType:   fromType,
			FromFlow:   cur.WaterFlow,
			ToTileID:   next.ID,
			ToType:     toType,
			ToFlow:     next.WaterFlow,
			Geometry:   orb.LineString{cur.Site, next.Site},
		}
		g.Rivers = append(g.Rivers, seg)

		if toType == tilegraph.RiverMouth || toType == tilegraph.RiverLake || toType == tilegraph.RiverBranchingLake {
			return
		}
		if next.WaterFlow < riverThreshold {
			return
		}
		cur = next
	}
}

func endpointType(t *tilegraph.Tile, inflowCount map[int]int, isFrom bool) tilegraph.RiverEndpointType {
	if t.Grouping == tilegraph.Ocean {
		return tilegraph.RiverMouth
	}
	if t.LakeID != nil {
		if t.OutletFrom != nil {
			return tilegraph.RiverBranchingLake
		}
		return tilegraph.RiverLake
	}
	if isFrom {
		if inflowCount[t.ID] == 0 {
			return tilegraph.RiverSource
		}
		if inflowCount[t.ID] > 1 {
			return tilegraph.RiverConfluence
		}
		return tilegraph.RiverContinuing
	}
	if inflowCount[t.ID] > 1 {
		return tilegraph.RiverBranchingConfluence
	}
	return tilegraph.RiverContinuing
}
