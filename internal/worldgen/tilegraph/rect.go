package tilegraph

import "cosmopoeia/internal/errs"

// Rectangle is the world bounding rectangle in degrees (spec §4.2). It
// lives here, not in the Voronoi Builder, because every later stage
// (terrain x/y filters, climate latitude bands) needs it too.
type Rectangle struct {
	South, West   float64
	Height, Width float64
}

func (r Rectangle) North() float64 { return r.South + r.Height }
func (r Rectangle) East() float64  { return r.West + r.Width }

// Validate enforces spec §4.2's "fails when inputs violate a
// latitude/longitude range".
func (r Rectangle) Validate() error {
	if r.South < -90 || r.South > 90 {
		return errs.New(errs.Input, "voronoi", "rectangle", "south out of [-90, 90] range")
	}
	if r.North() < -90 || r.North() > 90.0001 {
		return errs.New(errs.Input, "voronoi", "rectangle", "north out of [-90, 90] range")
	}
	if r.Height <= 0 {
		return errs.New(errs.Input, "voronoi", "rectangle", "height must be positive")
	}
	if r.Width <= 0 || r.Width > 360 {
		return errs.New(errs.Input, "voronoi", "rectangle", "width must be in (0, 360] degrees")
	}
	return nil
}

// NormalizedX and NormalizedY map a site into [0,1] across the
// rectangle, the coordinate space AddHill/AddRange/Mask/Invert filters
// operate in (spec §4.3).
func (r Rectangle) NormalizedX(lon float64) float64 {
	if r.Width == 0 {
		return 0
	}
	return (lon - r.West) / r.Width
}

func (r Rectangle) NormalizedY(lat float64) float64 {
	if r.Height == 0 {
		return 0
	}
	return (lat - r.South) / r.Height
}
