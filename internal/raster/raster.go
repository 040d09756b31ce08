// Package raster reads single-band geographic rasters (spec §6:
// "Raster input") and samples them nearest-neighbour at tile-site
// coordinates for the terrain engine's SampleElevation/SampleOcean*
// commands and the heightmap `create` variant.
package raster

import (
	"image"
	"io"
	"os"

	"github.com/hhrutter/tiff"

	"cosmopoeia/internal/errs"
)

// Raster is a single-band raster readable at arbitrary geographic
// coordinates, with a defined nodata value.
type Raster interface {
	// Sample returns the value at (lon, lat) and whether it is nodata.
	Sample(lon, lat float64) (value float64, isNodata bool)
	// Bounds returns the raster's geographic extent.
	Bounds() Bounds
}

// Bounds is a raster's geographic extent in degrees.
type Bounds struct {
	West, South, East, North float64
}

// Overlaps reports whether b shares any area with the given rectangle
// corners.
func (b Bounds) Overlaps(west, south, east, north float64) bool {
	return b.West < east && east != west && b.East > west && b.South < north && b.North > south
}

// Contains reports whether b fully contains the given rectangle.
func (b Bounds) Contains(west, south, east, north float64) bool {
	return b.West <= west && b.East >= east && b.South <= south && b.North >= north
}

// tiffRaster adapts a decoded TIFF image, stretched over the bounds its
// loader was given, to the Raster interface.
type tiffRaster struct {
	img      image.Image
	bounds   Bounds
	nodata   float64
	hasNodat bool
}

// LoadGeoTIFF decodes path as a single-band GeoTIFF and wraps it as a
// Raster whose pixel grid spans bounds. No world file or embedded
// georeferencing tag is read, and bounds is not checked against
// anything. nodata marks missing-data pixels.
func LoadGeoTIFF(path string, bounds Bounds, nodata float64, hasNodata bool) (Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IO, "raster", path, "cannot open raster", err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, errs.Wrap(errs.IO, "raster", path, "cannot decode GeoTIFF", err)
	}

	return &tiffRaster{img: img, bounds: bounds, nodata: nodata, hasNodat: hasNodata}, nil
}

func decode(r io.Reader) (image.Image, error) {
	return tiff.Decode(r)
}

func (t *tiffRaster) Bounds() Bounds { return t.bounds }

func (t *tiffRaster) Sample(lon, lat float64) (float64, bool) {
	b := t.img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0, true
	}
	if !t.bounds.Contains(lon, lat, lon, lat) {
		return 0, true
	}

	fx := (lon - t.bounds.West) / (t.bounds.East - t.bounds.West)
	fy := (t.bounds.North - lat) / (t.bounds.North - t.bounds.South)

	px := b.Min.X + int(fx*float64(w))
	py := b.Min.Y + int(fy*float64(h))
	if px < b.Min.X {
		px = b.Min.X
	}
	if px >= b.Max.X {
		px = b.Max.X - 1
	}
	if py < b.Min.Y {
		py = b.Min.Y
	}
	if py >= b.Max.Y {
		py = b.Max.Y - 1
	}

	gray := gray16Value(t.img, px, py)
	if t.hasNodat && gray == t.nodata {
		return 0, true
	}
	return gray, false
}

// gray16Value extracts a single-band sample as a float64, via the
// image's 16-bit gray channel (the common single-band GeoTIFF sample
// format for elevation data).
func gray16Value(img image.Image, x, y int) float64 {
	r, _, _, _ := img.At(x, y).RGBA()
	return float64(r)
}
