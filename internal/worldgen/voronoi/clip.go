package voronoi

import "github.com/paulmach/orb"

// clipToRect clips poly's outer ring to rect using Sutherland-Hodgman,
// which is sufficient here because every candidate cell ring is convex.
func clipToRect(poly orb.Polygon, rect Rectangle) orb.Ring {
	if len(poly) == 0 {
		return nil
	}
	ring := poly[0]

	ring = clipEdge(ring, func(p orb.Point) bool { return p[0] >= rect.West }, func(a, b orb.Point) orb.Point {
		return lerpX(a, b, rect.West)
	})
	ring = clipEdge(ring, func(p orb.Point) bool { return p[0] <= rect.East() }, func(a, b orb.Point) orb.Point {
		return lerpX(a, b, rect.East())
	})
	ring = clipEdge(ring, func(p orb.Point) bool { return p[1] >= rect.South }, func(a, b orb.Point) orb.Point {
		return lerpY(a, b, rect.South)
	})
	ring = clipEdge(ring, func(p orb.Point) bool { return p[1] <= rect.North() }, func(a, b orb.Point) orb.Point {
		return lerpY(a, b, rect.North())
	})
	if len(ring) < 3 {
		return nil
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

func clipEdge(ring orb.Ring, inside func(orb.Point) bool, intersect func(a, b orb.Point) orb.Point) orb.Ring {
	if len(ring) == 0 {
		return ring
	}
	pts := []orb.Point(ring)
	if pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	var out []orb.Point
	n := len(pts)
	for i := 0; i < n; i++ {
		cur := pts[i]
		prev := pts[(i-1+n)%n]
		curIn := inside(cur)
		prevIn := inside(prev)
		if curIn {
			if !prevIn {
				out = append(out, intersect(prev, cur))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, intersect(prev, cur))
		}
	}
	return orb.Ring(out)
}

func lerpX(a, b orb.Point, x float64) orb.Point {
	if b[0] == a[0] {
		return orb.Point{x, a[1]}
	}
	t := (x - a[0]) / (b[0] - a[0])
	return orb.Point{x, a[1] + t*(b[1]-a[1])}
}

func lerpY(a, b orb.Point, y float64) orb.Point {
	if b[1] == a[1] {
		return orb.Point{a[0], y}
	}
	t := (y - a[1]) / (b[1] - a[1])
	return orb.Point{a[0] + t*(b[0]-a[0]), y}
}
