// Package region assembles per-label vector regions from the Tile
// Graph Store: unions, coastline/lake boundary extraction, and Bezier
// boundary smoothing (spec §4.10).
package region

import (
	"sort"

	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
)

// Options configures one assembly pass (spec §6 defaults).
type Options struct {
	BezierScale     float64
	LakeBufferScale float64
}

// DefaultOptions returns spec §6's bezier_scale=100, lake_buffer_scale=2.
func DefaultOptions() Options {
	return Options{BezierScale: 100, LakeBufferScale: 2}
}

// Region is one labeled multipolygon, e.g. the "Forest" biome region or
// nation id 3's territory.
type Region struct {
	Label string
	Value string
	Geom  orb.MultiPolygon
}

// GroupByGrouping partitions land/water-class tiles for the coastline
// and per-grouping layers.
func GroupByGrouping(g *tilegraph.Graph) map[tilegraph.Grouping][]*tilegraph.Tile {
	out := map[tilegraph.Grouping][]*tilegraph.Tile{}
	g.Range(func(t *tilegraph.Tile) bool {
		out[t.Grouping] = append(out[t.Grouping], t)
		return true
	})
	return out
}

// GroupByBiome partitions tiles by biome name.
func GroupByBiome(g *tilegraph.Graph) map[string][]*tilegraph.Tile {
	out := map[string][]*tilegraph.Tile{}
	g.Range(func(t *tilegraph.Tile) bool {
		if t.Biome != "" {
			out[t.Biome] = append(out[t.Biome], t)
		}
		return true
	})
	return out
}

// GroupByCulture partitions tiles by owning culture id.
func GroupByCulture(g *tilegraph.Graph) map[int][]*tilegraph.Tile {
	return groupByIntPtr(g, func(t *tilegraph.Tile) *int { return t.CultureID })
}

// GroupByNation partitions tiles by owning nation id.
func GroupByNation(g *tilegraph.Graph) map[int][]*tilegraph.Tile {
	return groupByIntPtr(g, func(t *tilegraph.Tile) *int { return t.NationID })
}

// GroupBySubnation partitions tiles by owning subnation id.
func GroupBySubnation(g *tilegraph.Graph) map[int][]*tilegraph.Tile {
	return groupByIntPtr(g, func(t *tilegraph.Tile) *int { return t.SubnationID })
}

func groupByIntPtr(g *tilegraph.Graph, field func(t *tilegraph.Tile) *int) map[int][]*tilegraph.Tile {
	out := map[int][]*tilegraph.Tile{}
	g.Range(func(t *tilegraph.Tile) bool {
		if id := field(t); id != nil {
			out[*id] = append(out[*id], t)
		}
		return true
	})
	return out
}

// Union collects every tile's polygon sharing a label into one
// multipolygon. Tile Voronoi cells sharing an edge already share that
// edge's vertices exactly, so the member polygons tile the label's
// territory without gaps or overlaps; this module doesn't dissolve the
// shared interior edges into a single outer ring (no CAG/boolean
// geometry library is in reach here), so a label's region is a
// multipolygon of its member cells rather than one minimal-vertex
// polygon. Degenerate member rings are repaired or dropped.
func Union(tiles []*tilegraph.Tile) orb.MultiPolygon {
	mp := make(orb.MultiPolygon, 0, len(tiles))
	for _, t := range tiles {
		poly, ok := Repair(t.Polygon)
		if !ok {
			continue
		}
		mp = append(mp, poly)
	}
	return mp
}

// Repair validates a polygon and attempts buffer-by-zero-style cleanup
// (closing an unclosed ring, dropping a degenerate near-duplicate
// vertex), falling back to the convex hull of the ring's points when
// the ring still has fewer than 3 usable vertices (spec §4.10, §9).
func Repair(poly orb.Polygon) (orb.Polygon, bool) {
	if len(poly) == 0 {
		return nil, false
	}
	ring := closeRing(poly[0])
	ring = dedupe(ring)
	if len(ring) >= 4 {
		return orb.Polygon{ring}, true
	}

	hull := convexHull(poly[0])
	if len(hull) < 3 {
		return nil, false
	}
	return orb.Polygon{closeRing(hull)}, true
}

// convexHull computes the convex hull of a point set with Andrew's
// monotone chain (spec §9's "recomputing the convex/concave hull of
// the tile set as fallback"); no CAG library in reach offers this, and
// the algorithm is a direct stdlib-sort application, so it's written
// out rather than imported.
func convexHull(points []orb.Point) []orb.Point {
	pts := append([]orb.Point(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})
	pts = uniquePoints(pts)
	if len(pts) < 3 {
		return pts
	}

	cross := func(o, a, b orb.Point) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	lower := make([]orb.Point, 0, len(pts))
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	upper := make([]orb.Point, 0, len(pts))
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func uniquePoints(pts []orb.Point) []orb.Point {
	out := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			out = append(out, p)
		}
	}
	return out
}

func closeRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 {
		return ring
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

func dedupe(ring orb.Ring) orb.Ring {
	out := make(orb.Ring, 0, len(ring))
	for i, p := range ring {
		if i > 0 && p == ring[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
