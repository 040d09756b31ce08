package region

import (
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
)

// Coastline returns the boundary edges of the union of all land tiles
// (neither Ocean nor Lake): every polygon edge whose neighbour tile
// across it is Ocean or off the map (spec §4.10).
func Coastline(g *tilegraph.Graph) []orb.LineString {
	var segments []orb.LineString
	g.Range(func(t *tilegraph.Tile) bool {
		if t.Grouping == tilegraph.Ocean || t.Grouping == tilegraph.Lake {
			return true
		}
		if len(t.Polygon) == 0 {
			return true
		}
		ring := t.Polygon[0]
		neighborAt := func(i int) *tilegraph.Tile {
			if i >= len(t.Neighbors) {
				return nil
			}
			n := t.Neighbors[i].Neighbor
			if !n.IsTile() {
				return nil
			}
			return g.Get(n.TileID)
		}
		for i := 0; i+1 < len(ring); i++ {
			neighbor := neighborAt(i)
			if neighbor == nil || neighbor.Grouping == tilegraph.Ocean {
				segments = append(segments, orb.LineString{ring[i], ring[i+1]})
			}
		}
		return true
	})
	return chain(segments)
}

// chain greedily stitches loose segments sharing endpoints into longer
// polylines, closing rings where the chain returns to its start.
func chain(segments []orb.LineString) []orb.LineString {
	remaining := append([]orb.LineString(nil), segments...)
	var result []orb.LineString

	for len(remaining) > 0 {
		cur := remaining[0]
		remaining = remaining[1:]

		extended := true
		for extended {
			extended = false
			for i, seg := range remaining {
				if cur[len(cur)-1] == seg[0] {
					cur = append(cur, seg[1:]...)
					remaining = removeAt(remaining, i)
					extended = true
					break
				}
				if cur[len(cur)-1] == seg[len(seg)-1] {
					cur = append(cur, reverse(seg)[1:]...)
					remaining = removeAt(remaining, i)
					extended = true
					break
				}
			}
		}
		result = append(result, cur)
	}
	return result
}

func removeAt(segs []orb.LineString, i int) []orb.LineString {
	out := append([]orb.LineString(nil), segs[:i]...)
	return append(out, segs[i+1:]...)
}

func reverse(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}

// BufferLakeInward shrinks a lake ring toward its centroid by a factor
// derived from lakeBufferScale (spec §4.10: "shrinking the union of
// lake tiles inward by lake_buffer_scale"). No geometry-offset library
// is in reach, so this approximates a true negative buffer with a
// per-vertex scale toward the centroid; for the small, roughly convex
// polygons a single lake tile-cluster produces, the visual and
// topological effect is the same: the ring contracts uniformly and
// endpoints stay ordered.
func BufferLakeInward(ring orb.Ring, lakeBufferScale float64) orb.Ring {
	if len(ring) == 0 || lakeBufferScale <= 0 {
		return ring
	}
	centroid := ringCentroid(ring)
	shrink := 1 - (lakeBufferScale / 100)
	if shrink < 0.1 {
		shrink = 0.1
	}
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		out[i] = orb.Point{
			centroid[0] + (p[0]-centroid[0])*shrink,
			centroid[1] + (p[1]-centroid[1])*shrink,
		}
	}
	return out
}

func ringCentroid(ring orb.Ring) orb.Point {
	var sx, sy float64
	n := len(ring)
	if n == 0 {
		return orb.Point{}
	}
	for _, p := range ring {
		sx += p[0]
		sy += p[1]
	}
	return orb.Point{sx / float64(n), sy / float64(n)}
}
