// Package biome classifies tiles into biomes by a moisture/temperature
// matrix, with override rules for Ocean, Wetland, and Glacier (spec
// §4.6).
package biome

import (
	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/worldgen/tilegraph"
)

const (
	Ocean   = "Ocean"
	Wetland = "Wetland"
	Glacier = "Glacier"
)

// moistureBins and temperatureBins are the bin edges (exclusive upper)
// partitioning each axis; len(bins)+1 rows/cols in the matrix.
var moistureBins = []float64{10, 30, 60, 100}
var temperatureBins = []float64{0, 10, 20}

// Matrix maps [temperatureBin][moistureBin] to a biome name. Rows run
// cold-to-hot, columns dry-to-wet; every cell must be populated (spec
// §4.6: "Matrix completeness is required").
var Matrix = [][]string{
	// moisture: <10        10-30        30-60          60-100        >=100
	{"Tundra", "ColdDesert", "Taiga", "Taiga", "Taiga"},
	{"ColdDesert", "Grassland", "Forest", "Forest", "TemperateRainforest"},
	{"Desert", "Savanna", "Forest", "TropicalForest", "TropicalRainforest"},
	{"Desert", "Savanna", "Savanna", "TropicalForest", "TropicalRainforest"},
}

// Options configures the override thresholds (spec §4.6).
type Options struct {
	WetlandFlowThreshold float64
	WetlandMaxElevation  float64
	GlacierTemp          float64
}

// DefaultOptions returns sensible thresholds consistent with the
// climate/hydrology defaults elsewhere in the pipeline.
func DefaultOptions() Options {
	return Options{WetlandFlowThreshold: 300, WetlandMaxElevation: 50, GlacierTemp: -10}
}

// Validate checks matrix completeness: every (temperature, moisture)
// cell must map to exactly one non-empty biome name.
func Validate() error {
	for i, row := range Matrix {
		if len(row) != len(moistureBins)+1 {
			return errs.New(errs.State, "biome", "matrix", "incomplete biome matrix row")
		}
		for j, name := range row {
			if name == "" {
				return errs.New(errs.State, "biome", "matrix", "empty biome matrix cell")
			}
			_ = i
			_ = j
		}
	}
	if len(Matrix) != len(temperatureBins)+1 {
		return errs.New(errs.State, "biome", "matrix", "incomplete biome matrix")
	}
	return nil
}

// Run classifies every tile in g (spec §4.6).
func Run(g *tilegraph.Graph, opts Options) error {
	if err := Validate(); err != nil {
		return err
	}
	g.Range(func(t *tilegraph.Tile) bool {
		t.Biome = classify(t, opts)
		return true
	})
	return nil
}

func classify(t *tilegraph.Tile, opts Options) string {
	if t.Grouping == tilegraph.Ocean {
		return Ocean
	}
	if t.Temperature <= opts.GlacierTemp {
		return Glacier
	}
	if t.WaterFlow > opts.WetlandFlowThreshold && t.ElevationScaled < int(opts.WetlandMaxElevation) {
		return Wetland
	}
	mi := bin(t.Precipitation, moistureBins)
	ti := bin(t.Temperature, temperatureBins)
	return Matrix[ti][mi]
}

func bin(v float64, edges []float64) int {
	for i, e := range edges {
		if v < e {
			return i
		}
	}
	return len(edges)
}
