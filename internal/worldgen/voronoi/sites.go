package voronoi

import (
	"math"
	"math/rand"

	"cosmopoeia/internal/rng"

	"github.com/paulmach/orb"
)

// siteGrid is the jittered grid of generating points, plus the row/col
// each site came from — retained only to make edge-of-map tagging
// (edges.go) cheap; it plays no further part once neighbours exist.
type siteGrid struct {
	points []orb.Point
	row    []int
	col    []int
	rows   int
	cols   int
	ids    [][]int // ids[row][col] -> index into points
}

// jitteredSites lays out a grid whose cell count is close to tileCount,
// then perturbs each site uniformly within its cell (spec §4.2: "a
// jittered grid such that tile count is close to N").
func jitteredSites(rect Rectangle, tileCount int, seed int64) siteGrid {
	if tileCount < 1 {
		tileCount = 1
	}
	aspect := rect.Width / rect.Height
	rows := int(math.Round(math.Sqrt(float64(tileCount) / aspect)))
	if rows < 1 {
		rows = 1
	}
	cols := int(math.Round(float64(tileCount) / float64(rows)))
	if cols < 1 {
		cols = 1
	}

	r := rng.Child(seed, "voronoi:sites")

	cellH := rect.Height / float64(rows)
	cellW := rect.Width / float64(cols)

	g := siteGrid{rows: rows, cols: cols}
	g.ids = make([][]int, rows)
	for row := 0; row < rows; row++ {
		g.ids[row] = make([]int, cols)
		for col := 0; col < cols; col++ {
			lat := jitter(r, rect.South+float64(row)*cellH, cellH)
			lon := jitter(r, rect.West+float64(col)*cellW, cellW)
			idx := len(g.points)
			g.points = append(g.points, orb.Point{lon, lat})
			g.row = append(g.row, row)
			g.col = append(g.col, col)
			g.ids[row][col] = idx
		}
	}
	return g
}

func jitter(r *rand.Rand, cellOrigin, cellSize float64) float64 {
	margin := cellSize * 0.1
	return cellOrigin + margin + r.Float64()*(cellSize-2*margin)
}
