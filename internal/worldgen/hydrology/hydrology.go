package hydrology

import (
	"github.com/rs/zerolog"

	"cosmopoeia/internal/worldgen/tilegraph"
)

// Options configures one hydrology pass (spec §6 defaults).
type Options struct {
	RiverThreshold float64
	Lakes          LakeThresholds
}

// DefaultOptions returns spec §6's river_threshold default plus the
// lake-typing defaults.
func DefaultOptions() Options {
	return Options{RiverThreshold: 10, Lakes: DefaultLakeThresholds()}
}

// Run executes spec §4.5's five steps in order against g. A sink with
// no tile neighbours at all is lowered by epsilon below its own
// elevation and the recovery is logged (see recoverIsolatedSinks);
// every other sink goes to lake formation.
func Run(g *tilegraph.Graph, log *zerolog.Logger, opts Options) {
	computeShoreDistance(g)
	computeHarbor(g)

	sinks, inflowCount := computeWaterFlow(g)
	sinks = recoverIsolatedSinks(g, sinks, log)

	formLakes(g, sinks, opts.Lakes)
	tilegraph.LabelGroupings(g)
	synthesizeRivers(g, inflowCount, opts.RiverThreshold)
}

const epsilon = 1e-6

// recoverIsolatedSinks handles the one genuine "cannot be flooded
// within the map" case: a sink with no land/lake neighbour at all
// (every neighbour is off-map or absent), so fillSink would have no
// rim candidate to ever pop. A sink that does have neighbours is left
// to formLakes, which may legitimately produce a closed, outlet-less
// basin (an arid Salt/Dry lake per classifyLake) — that is expected
// behaviour, not a failure.
func recoverIsolatedSinks(g *tilegraph.Graph, sinks []*tilegraph.Tile, log *zerolog.Logger) []*tilegraph.Tile {
	var remaining []*tilegraph.Tile
	for _, t := range sinks {
		neighbors := g.NeighborTiles(t)
		if len(neighbors) > 0 {
			remaining = append(remaining, t)
			continue
		}
		if log != nil {
			log.Warn().Int("tile_id", t.ID).Msg("isolated sink has no neighbours to drain toward; lowering below its prior elevation")
		}
		g.SetElevation(t.ID, t.Elevation-epsilon)
	}
	return remaining
}
