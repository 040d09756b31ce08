// Package nation expands nations from capitals and subnations within
// nations, reusing the culture engine's weighted Dijkstra (spec §4.9).
package nation

import (
	"sort"

	"cosmopoeia/internal/rng"
	"cosmopoeia/internal/worldgen/expansion"
	"cosmopoeia/internal/worldgen/tilegraph"
)

// Options configures one nation/subnation expansion pass (spec §6).
type Options struct {
	ExpansionFactor      float64
	NeutralLandCost      float64
	ForeignCultureFactor float64 // multiplier applied when crossing into a tile of a different culture
	SubnationPercentage  float64 // spec §6 default 20
	SizeVariance         float64 // 0-10, clamped; SPEC_FULL §12's per-step cost jitter
}

// DefaultOptions returns spec §6's defaults.
func DefaultOptions() Options {
	return Options{ExpansionFactor: 1, NeutralLandCost: 1000, ForeignCultureFactor: 2.5, SubnationPercentage: 20}
}

// CapitalSeed is one nation's starting point: its capital town's tile
// plus the culture that should expand cheaply from it.
type CapitalSeed struct {
	NationID  int
	TileID    int
	CultureID int
	Expansionism float64
}

// ExpandNations runs spec §4.9's nation expansion: the same weighted
// Dijkstra as cultures, with cost modified by culture match and
// nation expansionism. rootSeed roots the per-edge cost jitter
// opts.SizeVariance draws (SPEC_FULL §12).
func ExpandNations(g *tilegraph.Graph, caps []CapitalSeed, opts Options, rootSeed int64) {
	if len(caps) == 0 {
		return
	}
	byOwner := make(map[int]CapitalSeed, len(caps))
	seeds := make([]expansion.Seed, 0, len(caps))
	for _, c := range caps {
		byOwner[c.NationID] = c
		seeds = append(seeds, expansion.Seed{TileID: c.TileID, Owner: c.NationID})
	}
	sort.Slice(seeds, func(i, j int) bool { return seeds[i].TileID < seeds[j].TileID })

	costFn := func(from, to *tilegraph.Tile, owner int) float64 {
		seed := byOwner[owner]
		cost := baseTileCost(to)
		if to.CultureID == nil || *to.CultureID != seed.CultureID {
			cost *= opts.ForeignCultureFactor
		}
		if opts.ExpansionFactor > 0 {
			cost /= opts.ExpansionFactor
		}
		if seed.Expansionism > 0 {
			cost /= seed.Expansionism
		}
		cost += rng.SizeVarianceJitter(rootSeed, "nation", []int{from.ID, to.ID, owner}, opts.SizeVariance, cost)
		return cost
	}

	res := expansion.Run(g, seeds, costFn, opts.NeutralLandCost)
	g.Range(func(t *tilegraph.Tile) bool {
		if owner, ok := res.Owner[t.ID]; ok {
			nid := owner
			t.NationID = &nid
		}
		return true
	})
}

func baseTileCost(t *tilegraph.Tile) float64 {
	if t.Grouping == tilegraph.Ocean {
		return 20
	}
	base := 1.0
	if t.Habitability > 0 {
		base = 1 / t.Habitability
		if base > 10 {
			base = 10
		}
	}
	return base
}

// SubnationSeed is one subnation's seat (a selected town within a
// nation).
type SubnationSeed struct {
	NationID    int
	SubnationID int
	TileID      int
	CultureID   int
}

// ExpandSubnations runs spec §4.9's subnation expansion, bounded to
// each seed's own nation's tiles. rootSeed roots the per-edge cost
// jitter opts.SizeVariance draws (SPEC_FULL §12).
func ExpandSubnations(g *tilegraph.Graph, seeds []SubnationSeed, opts Options, rootSeed int64) {
	if len(seeds) == 0 {
		return
	}
	byNation := map[int][]SubnationSeed{}
	for _, s := range seeds {
		byNation[s.NationID] = append(byNation[s.NationID], s)
	}

	for nationID, nationSeeds := range byNation {
		sort.Slice(nationSeeds, func(i, j int) bool { return nationSeeds[i].TileID < nationSeeds[j].TileID })

		byOwner := make(map[int]SubnationSeed, len(nationSeeds))
		expSeeds := make([]expansion.Seed, 0, len(nationSeeds))
		for _, s := range nationSeeds {
			byOwner[s.SubnationID] = s
			expSeeds = append(expSeeds, expansion.Seed{TileID: s.TileID, Owner: s.SubnationID})
		}

		// boundedGraph restricts NeighborTiles traversal implicitly via the
		// cost function: tiles outside the nation are given an
		// unreachable cost rather than filtering the graph itself, since
		// Tile Graph Store has no sub-view concept.
		costFn := func(from, to *tilegraph.Tile, owner int) float64 {
			if to.NationID == nil || *to.NationID != nationID {
				return opts.NeutralLandCost * 2
			}
			cost := baseTileCost(to)
			if opts.ExpansionFactor > 0 {
				cost /= opts.ExpansionFactor
			}
			cost += rng.SizeVarianceJitter(rootSeed, "subnation", []int{from.ID, to.ID, owner}, opts.SizeVariance, cost)
			return cost
		}

		res := expansion.Run(g, expSeeds, costFn, opts.NeutralLandCost)
		g.Range(func(t *tilegraph.Tile) bool {
			if t.NationID == nil || *t.NationID != nationID {
				return true
			}
			if owner, ok := res.Owner[t.ID]; ok {
				sid := owner
				t.SubnationID = &sid
			}
			return true
		})
	}
}
