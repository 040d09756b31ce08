package culture

import (
	"math"
	"sort"

	"cosmopoeia/internal/rng"
	"cosmopoeia/internal/worldgen/expansion"
	"cosmopoeia/internal/worldgen/tilegraph"
)

// Definition is one culture available for seeding, resolved from a
// CultureSetDoc entry (spec §6).
type Definition struct {
	Name         string
	Type         tilegraph.CultureType
	Namer        string
	Preference   *Preference
	Expansionism float64
}

// Options configures one culture placement + expansion pass.
type Options struct {
	MinSpacing      float64 // degrees, minimum distance between seeded culture centres
	ExpansionFactor float64
	NeutralLandCost float64 // spec §4.7's "neutral-land threshold"
	RiverCost       float64
	WaterCost       float64
	SizeVariance    float64 // 0-10, clamped; SPEC_FULL §12's per-step cost jitter
}

// DefaultOptions returns spec §6's expansion_factor default plus
// reasonable movement-cost multipliers.
func DefaultOptions() Options {
	return Options{MinSpacing: 4, ExpansionFactor: 1, NeutralLandCost: 1000, RiverCost: 1.5, WaterCost: 4}
}

// biomeMovementCost approximates spec §4.7's biome.movement_cost term;
// harsher biomes cost more to cross.
var biomeMovementCost = map[string]float64{
	"Ocean": 20, "Glacier": 8, "Tundra": 2, "ColdDesert": 2.5, "Desert": 3,
	"Taiga": 1.5, "Grassland": 1, "Savanna": 1.2, "Forest": 1.3,
	"TropicalForest": 1.6, "TemperateRainforest": 1.5, "TropicalRainforest": 1.8, "Wetland": 2,
}

// Seed places each definition's culture at the habitable tile
// maximizing its preference score, subject to minimum spacing (spec
// §4.7), then runs the shared weighted Dijkstra expansion. seed roots
// the per-edge cost jitter opts.SizeVariance draws (SPEC_FULL §12).
func Seed(g *tilegraph.Graph, defs []Definition, opts Options, seed int64) {
	maxHabitability := 0.0
	g.Range(func(t *tilegraph.Tile) bool {
		if t.Habitability > maxHabitability {
			maxHabitability = t.Habitability
		}
		return true
	})

	var centres []*tilegraph.Tile
	for _, def := range defs {
		best := pickSeedTile(g, def, maxHabitability, centres, opts.MinSpacing)
		if best == nil {
			continue
		}
		c := &tilegraph.Culture{
			ID:           len(g.Cultures) + 1,
			Name:         def.Name,
			Namer:        def.Namer,
			Type:         def.Type,
			Expansionism: def.Expansionism,
			CenterTileID: best.ID,
		}
		g.Cultures = append(g.Cultures, c)
		cid := c.ID
		best.CultureID = &cid
		centres = append(centres, best)
	}

	expand(g, defs, maxHabitability, opts, seed)
}

func pickSeedTile(g *tilegraph.Graph, def Definition, maxHabitability float64, existing []*tilegraph.Tile, minSpacing float64) *tilegraph.Tile {
	var best *tilegraph.Tile
	bestScore := math.Inf(-1)
	g.Range(func(t *tilegraph.Tile) bool {
		if t.Habitability <= 0 || t.CultureID != nil {
			return true
		}
		for _, e := range existing {
			if dist(t, e) < minSpacing {
				return true
			}
		}
		score := def.Preference.Eval(t, maxHabitability)
		if score > bestScore || (score == bestScore && (best == nil || t.ID < best.ID)) {
			bestScore = score
			best = t
		}
		return true
	})
	return best
}

func dist(a, b *tilegraph.Tile) float64 {
	dx := a.Site[0] - b.Site[0]
	dy := a.Site[1] - b.Site[1]
	return math.Sqrt(dx*dx + dy*dy)
}

func expand(g *tilegraph.Graph, defs []Definition, maxHabitability float64, opts Options, seed int64) {
	if len(g.Cultures) == 0 {
		return
	}
	byOwner := make(map[int]Definition, len(g.Cultures))
	seeds := make([]expansion.Seed, 0, len(g.Cultures))
	for _, c := range g.Cultures {
		for _, def := range defs {
			if def.Name == c.Name {
				byOwner[c.ID] = def
			}
		}
		seeds = append(seeds, expansion.Seed{TileID: c.CenterTileID, Owner: c.ID})
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i].TileID < seeds[j].TileID })

	riverTiles := make(map[int]bool, len(g.Rivers))
	for _, r := range g.Rivers {
		riverTiles[r.FromTileID] = true
	}

	costFn := func(from, to *tilegraph.Tile, owner int) float64 {
		def := byOwner[owner]
		pref := def.Preference.Eval(to, maxHabitability)
		if pref <= 0.01 {
			pref = 0.01
		}
		cost := (1 / pref) * biomeMovementCost[to.Biome]
		if riverTiles[to.ID] {
			cost *= opts.RiverCost
		}
		if to.Grouping == tilegraph.Ocean {
			cost *= opts.WaterCost
		}
		cost *= opts.ExpansionFactor
		if def.Expansionism > 0 {
			cost /= def.Expansionism
		}
		cost += rng.SizeVarianceJitter(seed, "culture", []int{from.ID, to.ID, owner}, opts.SizeVariance, cost)
		return cost
	}

	res := expansion.Run(g, seeds, costFn, opts.NeutralLandCost)
	g.Range(func(t *tilegraph.Tile) bool {
		if owner, ok := res.Owner[t.ID]; ok {
			cid := owner
			t.CultureID = &cid
		}
		return true
	})
}
