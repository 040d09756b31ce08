package terrain

import (
	"encoding/json"
	"math"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/worldgen/tilegraph"

	"github.com/aquilax/go-perlin"
)

// exec dispatches one already-expanded recipe step.
func (e *Engine) exec(s recipe.Step) error {
	switch s.Command {
	case "clear":
		return e.clear()
	case "clear_ocean", "fill_ocean":
		return e.fillOcean()
	case "random_uniform":
		return e.randomUniform(s.Args)
	case "add_hill":
		return e.addHill(s.Args)
	case "add_range":
		return e.addRange(s.Args)
	case "add_strait":
		return e.addStrait(s.Args)
	case "mask":
		return e.mask(s.Args)
	case "invert":
		return e.invert(s.Args)
	case "add":
		return e.add(s.Args)
	case "multiply":
		return e.multiply(s.Args)
	case "smooth":
		return e.smooth(s.Args)
	case "erode":
		return e.erode(s.Args)
	case "seed_ocean":
		return e.seedOcean(s.Args)
	case "flood_ocean":
		return e.floodOcean()
	case "sample_ocean_masked":
		return e.sampleOceanMasked(s.Args)
	case "sample_ocean_below":
		return e.sampleOceanBelow(s.Args)
	case "sample_elevation":
		return e.sampleElevation(s.Args)
	default:
		return errs.New(errs.Input, "terrain", s.Command, "unknown terrain command")
	}
}

func (e *Engine) clear() error {
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		e.Graph.SetElevation(t.ID, 0)
		t.Grouping = tilegraph.Continent
		return true
	})
	return nil
}

func (e *Engine) fillOcean() error {
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		if t.Elevation <= e.Graph.SeaLevel {
			t.Grouping = tilegraph.Ocean
		}
		return true
	})
	return nil
}

type heightFilterArgs struct {
	HeightDelta string `json:"height_delta"`
	HeightRange *string `json:"height_filter,omitempty"`
}

func parseHeightFilter(raw *string) (recipe.Range, bool, error) {
	if raw == nil {
		return recipe.Range{}, false, nil
	}
	r, err := recipe.ParseRange(*raw)
	if err != nil {
		return recipe.Range{}, false, err
	}
	return r, true, nil
}

func (e *Engine) randomUniform(raw json.RawMessage) error {
	var args heightFilterArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "random_uniform", "malformed args", err)
	}
	delta, err := recipe.ParseRange(args.HeightDelta)
	if err != nil {
		return err
	}
	filter, hasFilter, err := parseHeightFilter(args.HeightRange)
	if err != nil {
		return err
	}
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		if hasFilter && !filter.Contains(t.Elevation) {
			return true
		}
		e.Graph.SetElevation(t.ID, t.Elevation+delta.SampleFloat(e.RNG))
		return true
	})
	return nil
}

type bumpArgs struct {
	Count       string `json:"count"`
	HeightDelta string `json:"height_delta"`
	XFilter     string `json:"x_filter"`
	YFilter     string `json:"y_filter"`
}

func (e *Engine) addHill(raw json.RawMessage) error {
	var args bumpArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "add_hill", "malformed args", err)
	}
	count, height, xr, yr, err := args.parse()
	if err != nil {
		return err
	}
	n := count.SampleInt(e.RNG)
	for i := 0; i < n; i++ {
		cx := xr.SampleFloat(e.RNG)
		cy := yr.SampleFloat(e.RNG)
		peak := height.SampleFloat(e.RNG)
		radius := 0.15 + e.RNG.Float64()*0.15
		e.bumpGaussian(cx, cy, radius, peak)
	}
	return nil
}

func (e *Engine) addRange(raw json.RawMessage) error {
	var args bumpArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "add_range", "malformed args", err)
	}
	count, height, xr, yr, err := args.parse()
	if err != nil {
		return err
	}
	n := count.SampleInt(e.RNG)
	for i := 0; i < n; i++ {
		x0, y0 := xr.SampleFloat(e.RNG), yr.SampleFloat(e.RNG)
		angle := e.RNG.Float64() * 2 * math.Pi
		length := 0.2 + e.RNG.Float64()*0.3
		x1 := x0 + length*math.Cos(angle)
		y1 := y0 + length*math.Sin(angle)
		peak := height.SampleFloat(e.RNG)
		radius := 0.05 + e.RNG.Float64()*0.05
		e.bumpRidge(x0, y0, x1, y1, radius, peak)
	}
	return nil
}

func (a bumpArgs) parse() (count, height, xr, yr recipe.Range, err error) {
	count, err = recipe.ParseRange(a.Count)
	if err != nil {
		return
	}
	height, err = recipe.ParseRange(a.HeightDelta)
	if err != nil {
		return
	}
	xr, err = recipe.ParseRange(a.XFilter)
	if err != nil {
		return
	}
	yr, err = recipe.ParseRange(a.YFilter)
	return
}

// bumpGaussian raises elevation in a Gaussian falloff around (cx, cy)
// in normalized [0,1] rectangle space.
func (e *Engine) bumpGaussian(cx, cy, radius, peak float64) {
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		nx := e.Graph.Rect.NormalizedX(t.Site[0])
		ny := e.Graph.Rect.NormalizedY(t.Site[1])
		d2 := (nx-cx)*(nx-cx) + (ny-cy)*(ny-cy)
		bump := peak * math.Exp(-d2/(2*radius*radius))
		if bump > 0.01 || bump < -0.01 {
			e.Graph.SetElevation(t.ID, t.Elevation+bump)
		}
		return true
	})
}

// bumpRidge raises elevation along a line segment with Gaussian
// cross-section falloff, the linear-ridge counterpart of bumpGaussian.
func (e *Engine) bumpRidge(x0, y0, x1, y1, radius, peak float64) {
	dx, dy := x1-x0, y1-y0
	segLen2 := dx*dx + dy*dy
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		nx := e.Graph.Rect.NormalizedX(t.Site[0])
		ny := e.Graph.Rect.NormalizedY(t.Site[1])
		var d2 float64
		if segLen2 == 0 {
			d2 = (nx-x0)*(nx-x0) + (ny-y0)*(ny-y0)
		} else {
			tt := ((nx-x0)*dx + (ny-y0)*dy) / segLen2
			if tt < 0 {
				tt = 0
			}
			if tt > 1 {
				tt = 1
			}
			px, py := x0+tt*dx, y0+tt*dy
			d2 = (nx-px)*(nx-px) + (ny-py)*(ny-py)
		}
		bump := peak * math.Exp(-d2/(2*radius*radius))
		if bump > 0.01 || bump < -0.01 {
			e.Graph.SetElevation(t.ID, t.Elevation+bump)
		}
		return true
	})
}

type straitArgs struct {
	Width     string `json:"width"`
	Direction string `json:"direction"` // "horizontal" | "vertical"
}

func (e *Engine) addStrait(raw json.RawMessage) error {
	var args straitArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "add_strait", "malformed args", err)
	}
	width, err := recipe.ParseRange(args.Width)
	if err != nil {
		return err
	}
	w := width.SampleFloat(e.RNG)
	pos := e.RNG.Float64()
	horizontal := args.Direction == "horizontal"

	e.Graph.Range(func(t *tilegraph.Tile) bool {
		var coord float64
		if horizontal {
			coord = e.Graph.Rect.NormalizedY(t.Site[1])
		} else {
			coord = e.Graph.Rect.NormalizedX(t.Site[0])
		}
		d := math.Abs(coord - pos)
		if d < w/2 {
			depress := (1 - d/(w/2)) * math.Abs(e.Graph.SeaLevel-e.Graph.MinElevation) * 0.5
			e.Graph.SetElevation(t.ID, t.Elevation-depress)
		}
		return true
	})
	return nil
}

type maskArgs struct {
	Power float64 `json:"power"`
}

func (e *Engine) mask(raw json.RawMessage) error {
	args := maskArgs{Power: 1}
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "mask", "malformed args", err)
	}
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		nx := e.Graph.Rect.NormalizedX(t.Site[0])
		ny := e.Graph.Rect.NormalizedY(t.Site[1])
		distToEdge := math.Min(math.Min(nx, 1-nx), math.Min(ny, 1-ny)) * 2
		if distToEdge < 0 {
			distToEdge = 0
		}
		factor := math.Pow(distToEdge, args.Power)
		e.Graph.SetElevation(t.ID, t.Elevation*factor)
		return true
	})
	return nil
}

type invertArgs struct {
	Probability float64 `json:"probability"`
	Axes        string  `json:"axes"` // "x" | "y" | "both"
}

func (e *Engine) invert(raw json.RawMessage) error {
	args := invertArgs{Probability: 1, Axes: "both"}
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "invert", "malformed args", err)
	}
	if e.RNG.Float64() >= args.Probability {
		return nil
	}
	flipX := args.Axes == "x" || args.Axes == "both"
	flipY := args.Axes == "y" || args.Axes == "both"

	elevations := make(map[int]float64, e.Graph.Len())
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		nx, ny := t.Site[0], t.Site[1]
		if flipX {
			nx = e.Graph.Rect.West + (e.Graph.Rect.East() - t.Site[0])
		}
		if flipY {
			ny = e.Graph.Rect.South + (e.Graph.Rect.North() - t.Site[1])
		}
		src := e.nearestTile(nx, ny)
		if src != nil {
			elevations[t.ID] = src.Elevation
		}
		return true
	})
	for id, elev := range elevations {
		e.Graph.SetElevation(id, elev)
	}
	return nil
}

// nearestTile does a linear nearest-site search; recipes invert a
// whole tile set at most a few times per run so this stays cheap
// relative to triangulation.
func (e *Engine) nearestTile(lon, lat float64) *tilegraph.Tile {
	var best *tilegraph.Tile
	bestD := math.MaxFloat64
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		dx := t.Site[0] - lon
		dy := t.Site[1] - lat
		d := dx*dx + dy*dy
		if d < bestD {
			bestD = d
			best = t
		}
		return true
	})
	return best
}

func (e *Engine) add(raw json.RawMessage) error {
	var args heightFilterArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "add", "malformed args", err)
	}
	delta, err := recipe.ParseRange(args.HeightDelta)
	if err != nil {
		return err
	}
	filter, hasFilter, err := parseHeightFilter(args.HeightRange)
	if err != nil {
		return err
	}
	d := delta.SampleFloat(e.RNG)
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		if hasFilter && !filter.Contains(t.Elevation) {
			return true
		}
		e.Graph.SetElevation(t.ID, t.Elevation+d)
		return true
	})
	return nil
}

type multiplyArgs struct {
	HeightFactor string  `json:"height_factor"`
	HeightRange  *string `json:"height_filter,omitempty"`
}

func (e *Engine) multiply(raw json.RawMessage) error {
	var args multiplyArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "multiply", "malformed args", err)
	}
	factor, err := recipe.ParseRange(args.HeightFactor)
	if err != nil {
		return err
	}
	filter, hasFilter, err := parseHeightFilter(args.HeightRange)
	if err != nil {
		return err
	}
	f := factor.SampleFloat(e.RNG)
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		if hasFilter && !filter.Contains(t.Elevation) {
			return true
		}
		e.Graph.SetElevation(t.ID, t.Elevation*f)
		return true
	})
	return nil
}

type smoothArgs struct {
	Fr float64 `json:"fr"`
}

func (e *Engine) smooth(raw json.RawMessage) error {
	args := smoothArgs{Fr: 2}
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "smooth", "malformed args", err)
	}
	next := make([]float64, e.Graph.Len())
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		neighbors := e.Graph.NeighborTiles(t)
		sum := t.Elevation * args.Fr
		weight := args.Fr
		for _, n := range neighbors {
			sum += n.Elevation
			weight++
		}
		if weight == 0 {
			weight = 1
		}
		next[t.ID-1] = sum / weight
		return true
	})
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		e.Graph.SetElevation(t.ID, next[t.ID-1])
		return true
	})
	return nil
}

type erodeArgs struct {
	Iterations       int     `json:"iterations"`
	WeatheringAmount float64 `json:"weathering_amount"`
}

// erode implements spec §4.3's per-iteration weathering: weather
// weathering_amount*f(slope) metres, scaled by a Perlin jitter in
// [0.4, 1.2] and capped at half the slope, of soil off each tile's
// steepest-descent edge and deposit it on the lower neighbour.
func (e *Engine) erode(raw json.RawMessage) error {
	args := erodeArgs{Iterations: 10, WeatheringAmount: 1000}
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "erode", "malformed args", err)
	}
	alpha, beta, n := 2.0, 2.0, int32(3)
	p := perlin.NewPerlin(alpha, beta, n, e.RNG.Int63())

	for iter := 0; iter < args.Iterations; iter++ {
		deltas := make(map[int]float64, e.Graph.Len())
		e.Graph.Range(func(t *tilegraph.Tile) bool {
			lowest := steepestDescent(e.Graph, t)
			if lowest == nil {
				return true
			}
			slope := t.Elevation - lowest.Elevation
			if slope <= 0 {
				return true
			}
			jitter := 0.8 + 0.4*p.Noise2D(t.Site[0]*0.1, t.Site[1]*0.1)
			moved := math.Min(args.WeatheringAmount*slopeFactor(slope)*jitter, slope/2)
			deltas[t.ID] -= moved
			deltas[lowest.ID] += moved
			return true
		})
		e.Graph.Range(func(t *tilegraph.Tile) bool {
			if d, ok := deltas[t.ID]; ok {
				e.Graph.SetElevation(t.ID, t.Elevation+d)
			}
			return true
		})
	}
	return nil
}

func slopeFactor(slope float64) float64 {
	return slope / (slope + 500)
}

func steepestDescent(g *tilegraph.Graph, t *tilegraph.Tile) *tilegraph.Tile {
	var lowest *tilegraph.Tile
	for _, n := range g.NeighborTiles(t) {
		if n.Elevation < t.Elevation && (lowest == nil || n.Elevation < lowest.Elevation || (n.Elevation == lowest.Elevation && n.ID < lowest.ID)) {
			lowest = n
		}
	}
	return lowest
}

type seedOceanArgs struct {
	Count   string `json:"count"`
	XFilter string `json:"x_filter,omitempty"`
	YFilter string `json:"y_filter,omitempty"`
}

func (e *Engine) seedOcean(raw json.RawMessage) error {
	args := seedOceanArgs{Count: "1", XFilter: "0..=1", YFilter: "0..=1"}
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "seed_ocean", "malformed args", err)
	}
	count, err := recipe.ParseRange(args.Count)
	if err != nil {
		return err
	}
	xr, err := recipe.ParseRange(args.XFilter)
	if err != nil {
		return err
	}
	yr, err := recipe.ParseRange(args.YFilter)
	if err != nil {
		return err
	}

	var candidates []*tilegraph.Tile
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		if t.Elevation > e.Graph.SeaLevel {
			return true
		}
		nx := e.Graph.Rect.NormalizedX(t.Site[0])
		ny := e.Graph.Rect.NormalizedY(t.Site[1])
		if xr.Contains(nx) && yr.Contains(ny) {
			candidates = append(candidates, t)
		}
		return true
	})
	n := count.SampleInt(e.RNG)
	for i := 0; i < n && len(candidates) > 0; i++ {
		idx := e.RNG.Intn(len(candidates))
		candidates[idx].Grouping = tilegraph.Ocean
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
	return nil
}

// floodOcean runs the fixpoint BFS from spec §4.3: any tile at or below
// sea level adjacent to an Ocean tile becomes Ocean, repeated to a
// fixpoint. Uses a FIFO queue seeded in id order so the result never
// depends on map iteration order.
func (e *Engine) floodOcean() error {
	queue := make([]*tilegraph.Tile, 0, e.Graph.Len())
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		if t.Grouping == tilegraph.Ocean {
			queue = append(queue, t)
		}
		return true
	})
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, n := range e.Graph.NeighborTiles(t) {
			if n.Grouping != tilegraph.Ocean && n.Elevation <= e.Graph.SeaLevel {
				n.Grouping = tilegraph.Ocean
				queue = append(queue, n)
			}
		}
	}
	return nil
}

type sampleOceanMaskedArgs struct {
	Source string `json:"source"`
}

func (e *Engine) sampleOceanMasked(raw json.RawMessage) error {
	var args sampleOceanMaskedArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "sample_ocean_masked", "malformed args", err)
	}
	src, err := e.source(args.Source)
	if err != nil {
		return err
	}
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		_, nodata := src.Sample(t.Site[0], t.Site[1])
		if !nodata {
			t.Grouping = tilegraph.Ocean
		}
		return true
	})
	return nil
}

type sampleOceanBelowArgs struct {
	Source    string  `json:"source"`
	Elevation float64 `json:"elevation"`
}

func (e *Engine) sampleOceanBelow(raw json.RawMessage) error {
	var args sampleOceanBelowArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "sample_ocean_below", "malformed args", err)
	}
	src, err := e.source(args.Source)
	if err != nil {
		return err
	}
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		v, nodata := src.Sample(t.Site[0], t.Site[1])
		if !nodata && v < args.Elevation {
			t.Grouping = tilegraph.Ocean
		}
		return true
	})
	return nil
}

type sampleElevationArgs struct {
	Source string `json:"source"`
}

func (e *Engine) sampleElevation(raw json.RawMessage) error {
	var args sampleElevationArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errs.Wrap(errs.Input, "terrain", "sample_elevation", "malformed args", err)
	}
	src, err := e.source(args.Source)
	if err != nil {
		return err
	}
	e.Graph.Range(func(t *tilegraph.Tile) bool {
		v, nodata := src.Sample(t.Site[0], t.Site[1])
		if !nodata {
			e.Graph.SetElevation(t.ID, v)
		}
		return true
	})
	return nil
}

func (e *Engine) source(name string) (interface {
	Sample(lon, lat float64) (float64, bool)
}, error) {
	src, ok := e.Sources[name]
	if !ok {
		return nil, errs.New(errs.Input, "terrain", name, "unknown raster source")
	}
	return src, nil
}
