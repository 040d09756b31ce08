package voronoi

import (
	"math"
	"sort"

	"github.com/fogleman/delaunay"
	"github.com/paulmach/orb"
)

// triangulation wraps the Delaunay/Voronoi duality spec §4.2 asks for:
// triangles give both the Voronoi neighbour graph (any two points
// sharing a triangle edge are neighbours) and, via their circumcenters,
// each site's Voronoi cell polygon.
type triangulation struct {
	tri    *delaunay.Triangulation
	points []orb.Point
}

func triangulate(points []orb.Point) (*triangulation, error) {
	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, err
	}
	return &triangulation{tri: tri, points: points}, nil
}

// neighborGraph returns, for each site index, the set of site indices
// sharing a Delaunay triangle edge with it.
func (t *triangulation) neighborGraph() [][]int {
	adj := make([]map[int]bool, len(t.points))
	for i := range adj {
		adj[i] = make(map[int]bool)
	}
	tris := t.tri.Triangles
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		addEdge(adj, a, b)
		addEdge(adj, b, c)
		addEdge(adj, c, a)
	}
	out := make([][]int, len(adj))
	for i, set := range adj {
		ids := make([]int, 0, len(set))
		for j := range set {
			ids = append(ids, j)
		}
		sort.Ints(ids)
		out[i] = ids
	}
	return out
}

func addEdge(adj []map[int]bool, a, b int) {
	adj[a][b] = true
	adj[b][a] = true
}

// cells returns each site's Voronoi polygon, clipped to rect. Sites on
// the triangulation's convex hull have an open cell in the true
// Voronoi diagram; those are approximated by clipping whatever partial
// ring of circumcenters exists against the rectangle, falling back to
// a small square around the site when fewer than 3 circumcenters were
// found (isolated/edge sites in a sparse triangulation).
func (t *triangulation) cells(rect Rectangle) []orb.Polygon {
	byPoint := make([][]orb.Point, len(t.points))
	tris := t.tri.Triangles
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		cc, ok := circumcenter(t.points[a], t.points[b], t.points[c])
		if !ok {
			continue
		}
		byPoint[a] = append(byPoint[a], cc)
		byPoint[b] = append(byPoint[b], cc)
		byPoint[c] = append(byPoint[c], cc)
	}

	out := make([]orb.Polygon, len(t.points))
	for i, site := range t.points {
		ring := sortAround(site, dedupe(byPoint[i]))
		var poly orb.Polygon
		if len(ring) >= 3 {
			poly = orb.Polygon{closeRing(ring)}
		} else {
			poly = orb.Polygon{fallbackSquare(site, rect)}
		}
		out[i] = clipToRect(poly, rect)
		if len(out[i]) == 0 {
			out[i] = orb.Polygon{closeRing(fallbackSquare(site, rect))}
		}
	}
	return out
}

func circumcenter(a, b, c orb.Point) (orb.Point, bool) {
	ax, ay := a[0], a[1]
	bx, by := b[0], b[1]
	cx, cy := c[0], c[1]

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < 1e-12 {
		return orb.Point{}, false
	}
	ux := ((ax*ax+ay*ay)*(by-cy) + (bx*bx+by*by)*(cy-ay) + (cx*cx+cy*cy)*(ay-by)) / d
	uy := ((ax*ax+ay*ay)*(cx-bx) + (bx*bx+by*by)*(ax-cx) + (cx*cx+cy*cy)*(bx-ax)) / d
	return orb.Point{ux, uy}, true
}

func dedupe(pts []orb.Point) []orb.Point {
	out := make([]orb.Point, 0, len(pts))
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if math.Abs(p[0]-q[0]) < 1e-9 && math.Abs(p[1]-q[1]) < 1e-9 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

func sortAround(center orb.Point, pts []orb.Point) []orb.Point {
	sort.Slice(pts, func(i, j int) bool {
		return math.Atan2(pts[i][1]-center[1], pts[i][0]-center[0]) <
			math.Atan2(pts[j][1]-center[1], pts[j][0]-center[0])
	})
	return pts
}

func closeRing(pts []orb.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, p)
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

func fallbackSquare(site orb.Point, rect Rectangle) []orb.Point {
	half := math.Min(rect.Width, rect.Height) / 200
	return []orb.Point{
		{site[0] - half, site[1] - half},
		{site[0] + half, site[1] - half},
		{site[0] + half, site[1] + half},
		{site[0] - half, site[1] + half},
	}
}
