// Package culture computes habitability, places cultures, and expands
// their territory (spec §4.7).
package culture

import (
	"encoding/json"
	"math"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/worldgen/tilegraph"
)

// PreferenceOp tags which variant of the TilePreference recursive sum
// a node holds (spec §4.7, §9: "tagged sums with boxed children").
type PreferenceOp string

const (
	OpHabitability           PreferenceOp = "Habitability"
	OpShoreDistance           PreferenceOp = "ShoreDistance"
	OpElevation               PreferenceOp = "Elevation"
	OpNormalizedHabitability  PreferenceOp = "NormalizedHabitability"
	OpTemperature             PreferenceOp = "Temperature"
	OpBiomes                  PreferenceOp = "Biomes"
	OpOceanCoast               PreferenceOp = "OceanCoast"
	OpNegate                   PreferenceOp = "Negate"
	OpMultiply                 PreferenceOp = "Multiply"
	OpDivide                   PreferenceOp = "Divide"
	OpAdd                      PreferenceOp = "Add"
	OpPow                      PreferenceOp = "Pow"
)

// Preference is one node of the TilePreference expression tree.
// Leaf nodes (Habitability, ShoreDistance, Elevation,
// NormalizedHabitability) use no fields; Temperature uses Target;
// Biomes uses Names+Weight; OceanCoast uses Weight; combinators
// (Negate/Add/Multiply/Divide/Pow) use Children.
type Preference struct {
	Op       PreferenceOp  `json:"op"`
	Target   float64       `json:"target,omitempty"`
	Weight   float64       `json:"weight,omitempty"`
	Names    []string      `json:"names,omitempty"`
	Children []*Preference `json:"children,omitempty"`
}

// UnmarshalPreferenceJSON decodes a TilePreference document.
func UnmarshalPreferenceJSON(data []byte) (*Preference, error) {
	var p Preference
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errs.Wrap(errs.Input, "culture", "preference", "malformed TilePreference document", err)
	}
	return &p, nil
}

// Eval evaluates the expression for one tile by post-order traversal
// (spec §9), with maxHabitability supplied by the caller for the
// NormalizedHabitability leaf (habitability / max observed).
func (p *Preference) Eval(t *tilegraph.Tile, maxHabitability float64) float64 {
	switch p.Op {
	case OpHabitability:
		return t.Habitability
	case OpShoreDistance:
		return float64(t.ShoreDistance)
	case OpElevation:
		return float64(t.ElevationScaled)
	case OpNormalizedHabitability:
		if maxHabitability == 0 {
			return 0
		}
		return t.Habitability / maxHabitability
	case OpTemperature:
		return -math.Abs(t.Temperature - p.Target)
	case OpBiomes:
		for _, name := range p.Names {
			if t.Biome == name {
				return p.Weight
			}
		}
		return 0
	case OpOceanCoast:
		if t.ShoreDistance == 0 {
			return p.Weight
		}
		return 0
	case OpNegate:
		return -p.child(0, t, maxHabitability)
	case OpAdd:
		sum := 0.0
		for i := range p.Children {
			sum += p.child(i, t, maxHabitability)
		}
		return sum
	case OpMultiply:
		product := 1.0
		for i := range p.Children {
			product *= p.child(i, t, maxHabitability)
		}
		return product
	case OpDivide:
		if len(p.Children) != 2 {
			return 0
		}
		denom := p.child(1, t, maxHabitability)
		if denom == 0 {
			return 0
		}
		return p.child(0, t, maxHabitability) / denom
	case OpPow:
		if len(p.Children) != 2 {
			return 0
		}
		return math.Pow(p.child(0, t, maxHabitability), p.child(1, t, maxHabitability))
	default:
		return 0
	}
}

func (p *Preference) child(i int, t *tilegraph.Tile, maxHabitability float64) float64 {
	if i >= len(p.Children) || p.Children[i] == nil {
		return 0
	}
	return p.Children[i].Eval(t, maxHabitability)
}
