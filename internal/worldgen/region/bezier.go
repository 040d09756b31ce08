package region

import "github.com/paulmach/orb"

// SmoothBezier replaces line's interior with piecewise quadratic Bezier
// curves, preserving its endpoints exactly (spec §4.10). bezierScale
// controls how many points are sampled per segment; higher values
// produce smoother, more subdivided curves. No spline/Bezier library
// appears anywhere in the reachable ecosystem stack here, so this is
// implemented directly against math (stdlib) — the other REQUIRED
// stdlib justification alongside the Region Assembler's convex-hull
// fallback.
func SmoothBezier(line orb.LineString, bezierScale float64) orb.LineString {
	if len(line) < 3 {
		return line
	}
	steps := stepsFor(bezierScale)

	out := make(orb.LineString, 0, len(line)*steps)
	out = append(out, line[0])
	for i := 0; i+2 < len(line); i++ {
		p0 := midpoint(line[i], line[i+1])
		p1 := line[i+1]
		p2 := midpoint(line[i+1], line[i+2])
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps)
			out = append(out, quadraticBezier(p0, p1, p2, t))
		}
	}
	out = append(out, line[len(line)-1])
	return out
}

// stepsFor maps the spec's 0-unbounded bezier_scale knob to a sane
// per-segment sample count.
func stepsFor(bezierScale float64) int {
	steps := int(bezierScale / 25)
	if steps < 2 {
		steps = 2
	}
	if steps > 16 {
		steps = 16
	}
	return steps
}

func midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

func quadraticBezier(p0, p1, p2 orb.Point, t float64) orb.Point {
	u := 1 - t
	x := u*u*p0[0] + 2*u*t*p1[0] + t*t*p2[0]
	y := u*u*p0[1] + 2*u*t*p1[1] + t*t*p2[1]
	return orb.Point{x, y}
}

// SmoothRiver applies the same Bezier smoothing to a river's polyline
// (spec §4.10: "River polylines are smoothed"), preserving the source
// and mouth endpoints exactly so junctions stay anchored to their tile
// centres.
func SmoothRiver(line orb.LineString, bezierScale float64) orb.LineString {
	return SmoothBezier(line, bezierScale)
}
