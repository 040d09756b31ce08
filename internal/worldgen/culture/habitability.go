package culture

import (
	"cosmopoeia/internal/worldgen/tilegraph"
)

// BiomeHabitability gives each biome's base suitability for settlement
// (spec §4.7: "Habitability per tile = biome habitability x f(temperature)
// x g(water availability), zero on ocean").
var BiomeHabitability = map[string]float64{
	"Ocean":               0,
	"Glacier":             0,
	"Tundra":               0.2,
	"ColdDesert":           0.15,
	"Desert":               0.1,
	"Taiga":                 0.4,
	"Grassland":             0.8,
	"Savanna":               0.7,
	"Forest":                0.85,
	"TropicalForest":        0.75,
	"TemperateRainforest":  0.8,
	"TropicalRainforest":   0.6,
	"Wetland":               0.3,
}

// ComputeHabitability runs spec §4.7's habitability/population formula
// over every tile.
func ComputeHabitability(g *tilegraph.Graph) {
	g.Range(func(t *tilegraph.Tile) bool {
		if t.Grouping == tilegraph.Ocean {
			t.Habitability = 0
			t.Population = 0
			return true
		}
		base := BiomeHabitability[t.Biome]
		t.Habitability = base * temperatureFactor(t.Temperature) * waterFactor(t)
		t.Population = t.Habitability * tileArea(t)
		return true
	})
}

// temperatureFactor peaks at a comfortable 18C and falls off toward
// freezing and toward extreme heat.
func temperatureFactor(temp float64) float64 {
	d := temp - 18
	f := 1 - (d*d)/2500
	if f < 0.05 {
		return 0.05
	}
	return f
}

// waterFactor rewards proximity to fresh water (low positive shore
// distance, or any water flow) without penalizing dry interior tiles
// too harshly.
func waterFactor(t *tilegraph.Tile) float64 {
	f := 1.0
	if t.ShoreDistance >= 0 && t.ShoreDistance <= 2 {
		f += 0.3
	}
	if t.WaterFlow > 0 {
		f += 0.2
	}
	if f > 1.5 {
		f = 1.5
	}
	return f
}

// tileArea approximates a tile's surface area in square kilometres from
// its polygon via the shoelace formula, falling back to a nominal
// value for degenerate polygons.
func tileArea(t *tilegraph.Tile) float64 {
	if len(t.Polygon) == 0 || len(t.Polygon[0]) < 3 {
		return 100
	}
	ring := t.Polygon[0]
	var area float64
	for i := 0; i < len(ring)-1; i++ {
		a, b := ring[i], ring[i+1]
		area += a[0]*b[1] - b[0]*a[1]
	}
	area = area / 2
	if area < 0 {
		area = -area
	}
	const kmPerDegree = 111.0
	return area * kmPerDegree * kmPerDegree
}
