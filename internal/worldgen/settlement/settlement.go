// Package settlement places capitals and towns (spec §4.8).
package settlement

import (
	"math"
	"sort"

	"cosmopoeia/internal/worldgen/tilegraph"
)

// Options configures one placement pass. CapitalCount/TownCount of 0
// mean a default derived from the habitable-tile count (sqrt/4 capitals,
// 1/20 towns), clamped to that count.
type Options struct {
	CapitalCount    int
	TownCount       int
	CapitalSpacing  float64
	TownSpacing     float64
	ScoreThreshold  float64
}

// DefaultOptions picks capital/town spacing values that work
// reasonably for a ~10000-tile world (spec §6's tile_count default).
func DefaultOptions() Options {
	return Options{CapitalSpacing: 10, TownSpacing: 3, ScoreThreshold: 0.05}
}

// Run places capitals, then towns, mutating each chosen tile's
// TownID and the graph's Towns list.
func Run(g *tilegraph.Graph, opts Options) {
	habitable := habitableTiles(g)
	if len(habitable) == 0 {
		return
	}

	capitalCount := opts.CapitalCount
	if capitalCount == 0 {
		capitalCount = clampInt(int(math.Sqrt(float64(len(habitable)))/4), 1, len(habitable))
	}
	townCount := opts.TownCount
	if townCount == 0 {
		townCount = clampInt(len(habitable)/20, capitalCount, len(habitable))
	}

	var placed []*tilegraph.Tile
	for i := 0; i < capitalCount; i++ {
		t := pickBest(habitable, placed, opts.CapitalSpacing, opts.ScoreThreshold, true)
		if t == nil {
			break
		}
		town := &tilegraph.Town{
			ID:         len(g.Towns) + 1,
			TileID:     t.ID,
			IsCapital:  true,
			CultureID:  t.CultureID,
			GroupingID: t.GroupingID,
			Population: t.Population,
		}
		if harbor := harborNeighbor(g, t); harbor != nil {
			town.IsPort = true
		}
		g.Towns = append(g.Towns, town)
		tid := town.ID
		t.TownID = &tid
		placed = append(placed, t)
	}

	for i := len(placed); i < townCount; i++ {
		t := pickBest(habitable, placed, opts.TownSpacing, opts.ScoreThreshold*0.5, false)
		if t == nil {
			break
		}
		town := &tilegraph.Town{
			ID:         len(g.Towns) + 1,
			TileID:     t.ID,
			CultureID:  t.CultureID,
			GroupingID: t.GroupingID,
			Population: t.Population,
		}
		if harbor := harborNeighbor(g, t); harbor != nil {
			town.IsPort = true
		}
		g.Towns = append(g.Towns, town)
		tid := town.ID
		t.TownID = &tid
		placed = append(placed, t)
	}
}

func habitableTiles(g *tilegraph.Graph) []*tilegraph.Tile {
	var out []*tilegraph.Tile
	g.Range(func(t *tilegraph.Tile) bool {
		if t.Habitability > 0 && t.TownID == nil {
			out = append(out, t)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// pickBest selects the habitable tile maximizing a combined score of
// habitability, harbour access, and distance from already-placed
// settlements (spec §4.8), subject to minimum spacing.
func pickBest(candidates, placed []*tilegraph.Tile, spacing, threshold float64, preferCoastal bool) *tilegraph.Tile {
	var best *tilegraph.Tile
	bestScore := math.Inf(-1)
	for _, t := range candidates {
		if t.TownID != nil {
			continue
		}
		tooClose := false
		for _, p := range placed {
			if dist(t, p) < spacing {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		score := t.Habitability
		if preferCoastal && t.ShoreDistance == 0 {
			score += 0.3
		}
		minDist := math.Inf(1)
		for _, p := range placed {
			if d := dist(t, p); d < minDist {
				minDist = d
			}
		}
		if math.IsInf(minDist, 1) {
			minDist = spacing
		}
		score += minDist * 0.01
		if score > bestScore {
			bestScore = score
			best = t
		}
	}
	if best != nil && bestScore < threshold {
		return nil
	}
	return best
}

// harborNeighbor reads t's precomputed HarborTileID (spec.md:41) rather
// than re-scanning neighbors; hydrology's computeHarbor populates it for
// every tile before settlement runs.
func harborNeighbor(g *tilegraph.Graph, t *tilegraph.Tile) *tilegraph.Tile {
	if t.HarborTileID == nil {
		return nil
	}
	return g.Get(*t.HarborTileID)
}

func dist(a, b *tilegraph.Tile) float64 {
	dx := a.Site[0] - b.Site[0]
	dy := a.Site[1] - b.Site[1]
	return math.Sqrt(dx*dx + dy*dy)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
