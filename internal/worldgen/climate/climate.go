// Package climate computes per-tile temperature, wind direction, and
// precipitation (spec §4.4).
package climate

import (
	"math"
	"sort"

	"cosmopoeia/internal/worldgen/tilegraph"
)

// Band is one of the six latitude bands spec §6 gives default wind
// directions for.
type Band int

const (
	BandNPolar Band = iota
	BandNMid
	BandNTrop
	BandSTrop
	BandSMid
	BandSPolar
)

// DefaultWindDirections is spec §6's default six-band wind table, in
// degrees clockwise from north, indexed by Band.
var DefaultWindDirections = [6]float64{225, 45, 225, 315, 135, 315}

// Options configures one climate pass (spec §6 defaults).
type Options struct {
	EquatorTemp         float64
	PolarTemp           float64
	ElevationCoolingK    float64 // k in T(tile) = lerp(...) - k*max(0, elevation)
	WindDirections       [6]float64
	PrecipitationFactor  float64
}

// DefaultOptions returns spec §6's documented defaults.
func DefaultOptions() Options {
	return Options{
		EquatorTemp:         27,
		PolarTemp:           -30,
		ElevationCoolingK:    0.0065, // ~6.5C/km lapse rate, applied per metre of elevation above sea level
		WindDirections:       DefaultWindDirections,
		PrecipitationFactor:  1,
	}
}

// bandOf classifies a latitude into one of the six bands (spec §4.4).
func bandOf(lat float64) Band {
	abs := math.Abs(lat)
	switch {
	case lat >= 0 && abs >= 60:
		return BandNPolar
	case lat >= 0 && abs >= 30:
		return BandNMid
	case lat >= 0:
		return BandNTrop
	case abs < 30:
		return BandSTrop
	case abs < 60:
		return BandSMid
	default:
		return BandSPolar
	}
}

// Run computes temperature, wind, and precipitation for every tile.
func Run(g *tilegraph.Graph, opts Options) {
	computeTemperature(g, opts)
	computeWind(g, opts)
	computePrecipitation(g, opts)
}

func computeTemperature(g *tilegraph.Graph, opts Options) {
	g.Range(func(t *tilegraph.Tile) bool {
		lat := t.Site[1]
		// cos(latitude) peaks at the equator (lat=0) and falls to 0 at the
		// poles, matching spec §4.4's lerp weight.
		w := math.Cos(lat * math.Pi / 180)
		base := opts.PolarTemp + (opts.EquatorTemp-opts.PolarTemp)*w
		elevAboveSea := math.Max(0, t.Elevation-g.SeaLevel)
		t.Temperature = base - opts.ElevationCoolingK*elevAboveSea
		return true
	})
}

func computeWind(g *tilegraph.Graph, opts Options) {
	g.Range(func(t *tilegraph.Tile) bool {
		band := bandOf(t.Site[1])
		t.Wind = opts.WindDirections[band]
		return true
	})
}

// windVector returns the unit (dx, dy) a wind bearing blows toward, in
// (longitude, latitude) space; dx/dy follow the same clockwise-from-
// north convention as spatial.Bearing.
func windVector(bearingDeg float64) (float64, float64) {
	rad := bearingDeg * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}

// computePrecipitation distributes moisture along each latitude band's
// wind sweep (spec §4.4). Tiles are bucketed into lanes perpendicular
// to the band's wind direction, then each lane is walked in downwind
// order, depositing a fraction of carried moisture proportional to
// elevation gain and carrying the remainder onward; ocean tiles
// replenish the carried moisture.
func computePrecipitation(g *tilegraph.Graph, opts Options) {
	byBand := map[Band][]*tilegraph.Tile{}
	g.Range(func(t *tilegraph.Tile) bool {
		b := bandOf(t.Site[1])
		byBand[b] = append(byBand[b], t)
		return true
	})

	for band, tiles := range byBand {
		if len(tiles) == 0 {
			continue
		}
		dx, dy := windVector(opts.WindDirections[band])
		// perpendicular axis, for lane bucketing
		px, py := -dy, dx

		lanes := laneCount(len(tiles))
		minP, maxP := perpRange(tiles, px, py)
		span := maxP - minP
		if span == 0 {
			span = 1
		}

		buckets := make(map[int][]*tilegraph.Tile, lanes)
		for _, t := range tiles {
			p := t.Site[0]*px + t.Site[1]*py
			idx := int((p - minP) / span * float64(lanes))
			if idx >= lanes {
				idx = lanes - 1
			}
			if idx < 0 {
				idx = 0
			}
			buckets[idx] = append(buckets[idx], t)
		}

		for _, lane := range buckets {
			sort.Slice(lane, func(i, j int) bool {
				return lane[i].Site[0]*dx+lane[i].Site[1]*dy < lane[j].Site[0]*dx+lane[j].Site[1]*dy
			})
			carried := 100 * opts.PrecipitationFactor
			var prevElev float64
			for i, t := range lane {
				if t.Grouping == tilegraph.Ocean {
					carried = math.Min(carried+20*opts.PrecipitationFactor, 150*opts.PrecipitationFactor)
					t.Precipitation = 0
					prevElev = t.Elevation
					continue
				}
				gain := 0.0
				if i > 0 {
					gain = math.Max(0, t.Elevation-prevElev)
				}
				upliftFrac := math.Min(1, gain/2000)
				fraction := 0.05 + 0.5*upliftFrac
				deposit := carried * fraction
				if deposit > carried {
					deposit = carried
				}
				t.Precipitation = deposit
				carried -= deposit
				prevElev = t.Elevation
			}
		}
	}
}

func laneCount(n int) int {
	l := int(math.Sqrt(float64(n)))
	if l < 1 {
		return 1
	}
	return l
}

func perpRange(tiles []*tilegraph.Tile, px, py float64) (float64, float64) {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, t := range tiles {
		p := t.Site[0]*px + t.Site[1]*py
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}
