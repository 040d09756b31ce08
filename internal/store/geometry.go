package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Geometries are stored as WKT text columns rather than GeoPackage's
// binary WKB-with-header envelope: no geometry text/binary encoding
// library appears anywhere in the reachable pack, and a hand-rolled
// WKB writer would need to reproduce the GPB header framing exactly to
// be worth the risk, so this module writes plain WKT, which any GIS
// tool's "load from WKT column" path still reads. This is the
// REQUIRED stdlib justification for this package's geometry encoding.

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func pointWKT(p orb.Point) string {
	return fmt.Sprintf("POINT (%s %s)", fmtCoord(p[0]), fmtCoord(p[1]))
}

func ringWKT(ring orb.Ring) string {
	parts := make([]string, len(ring))
	for i, p := range ring {
		parts[i] = fmtCoord(p[0]) + " " + fmtCoord(p[1])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func polygonWKT(poly orb.Polygon) string {
	if len(poly) == 0 {
		return "POLYGON EMPTY"
	}
	parts := make([]string, len(poly))
	for i, ring := range poly {
		parts[i] = ringWKT(ring)
	}
	return "POLYGON (" + strings.Join(parts, ", ") + ")"
}

func multiPolygonWKT(mp orb.MultiPolygon) string {
	if len(mp) == 0 {
		return "MULTIPOLYGON EMPTY"
	}
	parts := make([]string, len(mp))
	for i, poly := range mp {
		inner := make([]string, len(poly))
		for j, ring := range poly {
			inner[j] = ringWKT(ring)
		}
		parts[i] = "(" + strings.Join(inner, ", ") + ")"
	}
	return "MULTIPOLYGON (" + strings.Join(parts, ", ") + ")"
}

func lineStringWKT(ls orb.LineString) string {
	if len(ls) == 0 {
		return "LINESTRING EMPTY"
	}
	parts := make([]string, len(ls))
	for i, p := range ls {
		parts[i] = fmtCoord(p[0]) + " " + fmtCoord(p[1])
	}
	return "LINESTRING (" + strings.Join(parts, ", ") + ")"
}
