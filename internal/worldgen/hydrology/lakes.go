package hydrology

import (
	"container/heap"

	"cosmopoeia/internal/worldgen/tilegraph"
)

// rimItem is one candidate tile on a pond's growing boundary, ordered
// by elevation with tile-id tiebreak for determinism.
type rimItem struct {
	tile *tilegraph.Tile
}

type rimHeap []rimItem

func (h rimHeap) Len() int { return len(h) }
func (h rimHeap) Less(i, j int) bool {
	if h[i].tile.Elevation != h[j].tile.Elevation {
		return h[i].tile.Elevation < h[j].tile.Elevation
	}
	return h[i].tile.ID < h[j].tile.ID
}
func (h rimHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *rimHeap) Push(x any)        { *h = append(*h, x.(rimItem)) }
func (h *rimHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// fillSink implements the priority-flood lake fill of spec §4.5 step 3:
// raise a virtual water surface from the sink until it spills over the
// lowest rim neighbour, which becomes the outlet. When a second rim
// tile ties the outlet's elevation exactly, it joins the pond at the
// new shoreline as altOutlet: a second, branching drain point (SPEC_FULL
// §12), rather than being silently absorbed or discarded.
func fillSink(g *tilegraph.Graph, sink *tilegraph.Tile) (pond []*tilegraph.Tile, outlet, altOutlet *tilegraph.Tile, surface float64) {
	inPond := map[int]bool{sink.ID: true}
	onRim := map[int]bool{}
	rim := &rimHeap{}
	heap.Init(rim)

	pushNeighbors := func(t *tilegraph.Tile) {
		for _, n := range g.NeighborTiles(t) {
			if n.Grouping == tilegraph.Ocean {
				continue // ocean always drains the pond; handled by caller
			}
			if inPond[n.ID] || onRim[n.ID] {
				continue
			}
			onRim[n.ID] = true
			heap.Push(rim, rimItem{n})
		}
	}

	pond = []*tilegraph.Tile{sink}
	surface = sink.Elevation
	pushNeighbors(sink)

	for rim.Len() > 0 {
		item := heap.Pop(rim).(rimItem)
		t := item.tile
		if t.Elevation <= surface {
			inPond[t.ID] = true
			pond = append(pond, t)
			pushNeighbors(t)
			continue
		}
		// t is the first rim tile that would stick out above the current
		// surface: it's the spill point. The surface rises to its
		// elevation and every pond tile floods up to that level.
		outlet = t
		surface = t.Elevation
		// A tied rim tile at the same spill elevation floods in alongside
		// the pond (its elevation now equals the raised surface) and
		// becomes a second outlet rather than waiting on the rim forever.
		if rim.Len() > 0 && (*rim)[0].tile.Elevation == surface {
			tie := heap.Pop(rim).(rimItem).tile
			altOutlet = tie
			inPond[tie.ID] = true
			pond = append(pond, tie)
		}
		break
	}
	return pond, outlet, altOutlet, surface
}

// formLakes runs spec §4.5 steps 3-4 over every sink found by
// computeWaterFlow, flood-filling each and classifying the resulting
// lake.
func formLakes(g *tilegraph.Graph, sinks []*tilegraph.Tile, thresholds LakeThresholds) {
	for _, sink := range sinks {
		if sink.LakeID != nil {
			continue // already absorbed by an earlier sink's pond
		}
		// If the sink itself borders the ocean, the flow simply dead-ends
		// into the sea; no lake needed.
		if hasOceanNeighbor(g, sink) {
			continue
		}

		pond, outlet, altOutlet, surface := fillSink(g, sink)

		lake := &tilegraph.LakeRecord{
			ID:      len(g.Lakes) + 1,
			Surface: surface,
			Size:    len(pond),
		}

		var inflow float64
		var tempSum float64
		for _, t := range pond {
			id := lake.ID
			t.LakeID = &id
			t.Grouping = tilegraph.Lake
			inflow += t.WaterAccumulation
			tempSum += t.Temperature
		}
		lake.Flow = inflow
		if len(pond) > 0 {
			lake.Temperature = tempSum / float64(len(pond))
		}

		if outlet != nil {
			outletID := outlet.ID
			lake.OutletTileID = &outletID
			outlet.OutletFrom = ptrNeighbor(tilegraph.TileNeighbor(sink.ID))
			outlet.WaterAccumulation += inflow
		}
		if altOutlet != nil {
			// Already flooded into pond above (LakeID, Grouping set there);
			// this is what makes it a branching outlet rather than a plain
			// shoreline tile.
			altOutlet.OutletFrom = ptrNeighbor(tilegraph.TileNeighbor(sink.ID))
			altOutlet.WaterAccumulation += inflow
		}

		lake.Type = classifyLake(lake, pond, thresholds, outlet == nil)
		g.Lakes = append(g.Lakes, lake)
	}
}

func ptrNeighbor(n tilegraph.Neighbor) *tilegraph.Neighbor { return &n }

func hasOceanNeighbor(g *tilegraph.Graph, t *tilegraph.Tile) bool {
	for _, n := range g.NeighborTiles(t) {
		if n.Grouping == tilegraph.Ocean {
			return true
		}
	}
	return false
}

// LakeThresholds parameterizes spec §4.5 step 4's lake typing.
type LakeThresholds struct {
	FrozenTemp   float64
	AridLatitude float64 // degrees; |lat| above this with no outlet => Salt
	MarshDepth   float64 // surface - bed elevation below this => Marsh
	PluvialFlow  float64 // inflow above this with no outlet => Pluvial
}

// DefaultLakeThresholds returns the lake-typing defaults: frozen below
// 0 degrees, salt beyond 35 degrees latitude, marsh under 5 m deep,
// pluvial above 500 inflow.
func DefaultLakeThresholds() LakeThresholds {
	return LakeThresholds{FrozenTemp: 0, AridLatitude: 35, MarshDepth: 5, PluvialFlow: 500}
}

func classifyLake(lake *tilegraph.LakeRecord, pond []*tilegraph.Tile, th LakeThresholds, noOutlet bool) tilegraph.LakeType {
	if lake.Temperature < th.FrozenTemp {
		return tilegraph.LakeFrozen
	}
	var minBed float64 = lake.Surface
	var latSum float64
	for _, t := range pond {
		if t.Elevation < minBed {
			minBed = t.Elevation
		}
		latSum += t.Site[1]
	}
	avgLat := latSum / float64(len(pond))
	depth := lake.Surface - minBed

	if noOutlet && absF(avgLat) >= th.AridLatitude {
		return tilegraph.LakeSalt
	}
	if depth < th.MarshDepth {
		return tilegraph.LakeMarsh
	}
	if noOutlet && lake.Flow >= th.PluvialFlow {
		return tilegraph.LakePluvial
	}
	if lake.Flow <= 0 {
		return tilegraph.LakeDry
	}
	return tilegraph.LakeFresh
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
