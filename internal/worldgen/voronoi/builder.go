// Package voronoi builds the initial tile set from a bounding rectangle
// (spec §4.2): a jittered grid of sites, a Delaunay triangulation and
// its Voronoi dual, and the derived neighbour graph with edge-of-map
// and antimeridian-wrap tagging.
package voronoi

import (
	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/spatial"
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/paulmach/orb"
)

// Rectangle is an alias for tilegraph.Rectangle: the Voronoi Builder
// doesn't own world-rectangle semantics, it only consumes them.
type Rectangle = tilegraph.Rectangle

// Options configures one Voronoi build (spec §4.2).
type Options struct {
	Rect      Rectangle
	TileCount int
	Seed      int64
}

// Build produces a fresh Tile Graph Store whose tiles' sites, polygons
// and neighbour lists satisfy spec §3's invariants.
func Build(opts Options) (*tilegraph.Graph, error) {
	if err := opts.Rect.Validate(); err != nil {
		return nil, err
	}
	if opts.TileCount < 1 {
		return nil, errs.New(errs.Input, "voronoi", "tile-count", "tile count must be positive")
	}

	grid := jitteredSites(opts.Rect, opts.TileCount, opts.Seed)

	tri, err := triangulate(grid.points)
	if err != nil {
		return nil, errs.Wrap(errs.Geometry, "voronoi", "triangulate", "delaunay triangulation failed", err)
	}

	g := tilegraph.NewGraph()
	g.Rect = opts.Rect
	for _, site := range grid.points {
		g.CreateTile(&tilegraph.Tile{Site: site, Grouping: tilegraph.Continent})
	}

	polys := tri.cells(opts.Rect)
	for i, poly := range polys {
		g.Get(i + 1).Polygon = poly
	}

	adjacency := tri.neighborGraph()
	wrap := spatial.WrapsAntimeridian(opts.Rect.Width)
	assignNeighbors(g, grid, adjacency, opts.Rect, wrap)

	return g, nil
}

// Centroid returns the area-weighted centroid of a tile's polygon,
// falling back to its site when the polygon is degenerate.
func Centroid(t *tilegraph.Tile) orb.Point {
	if len(t.Polygon) == 0 || len(t.Polygon[0]) < 3 {
		return t.Site
	}
	var cx, cy, area float64
	ring := t.Polygon[0]
	n := len(ring)
	for i := 0; i < n-1; i++ {
		a, b := ring[i], ring[i+1]
		cross := a[0]*b[1] - b[0]*a[1]
		area += cross
		cx += (a[0] + b[0]) * cross
		cy += (a[1] + b[1]) * cross
	}
	if area == 0 {
		return t.Site
	}
	area *= 0.5
	cx /= 6 * area
	cy /= 6 * area
	return orb.Point{cx, cy}
}
