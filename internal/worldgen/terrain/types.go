// Package terrain runs a recipe (spec §4.3): an ordered list of
// elevation-shaping commands executed against a Tile Graph Store under
// one child RNG stream.
package terrain

import (
	"encoding/json"
	"math/rand"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/raster"
	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/worldgen/tilegraph"
)

// maxRecipeDepth bounds nested recipe-set expansion (spec §9: "bounded
// depth; a cycle among referenced recipe files must be rejected").
const maxRecipeDepth = 16

// Engine executes a RecipeSet's steps against a graph.
type Engine struct {
	Graph   *tilegraph.Graph
	RNG     *rand.Rand
	Sources map[string]raster.Raster // named raster sources for SampleElevation/SampleOcean*
}

// NewEngine builds a terrain Engine drawing from rng; callers pass the
// child stream keyed "terrain" so adding a step never perturbs another
// stage's stream (spec §9).
func NewEngine(g *tilegraph.Graph, rng *rand.Rand) *Engine {
	return &Engine{Graph: g, RNG: rng, Sources: map[string]raster.Raster{}}
}

// Run expands and executes the named recipe from set.
func (e *Engine) Run(set *recipe.RecipeSet, name string) error {
	r, err := set.Find(name)
	if err != nil {
		return err
	}
	steps, err := expand(set, r.Steps, 0, map[string]bool{name: true}, e.RNG)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if err := e.exec(step); err != nil {
			return errs.Wrap(errs.Geometry, "terrain", step.Command, "command failed", err)
		}
	}
	tilegraph.LabelGroupings(e.Graph)
	return nil
}

// expand flattens nested "recipe" / "recipe-set" steps into the
// command list, rejecting cycles and exceeding maxRecipeDepth. A
// "recipe-set" step picks one name uniformly at random from its
// candidate list, consuming the shared RNG in the order it's
// encountered (spec §4.3: "selects one recipe at random").
func expand(set *recipe.RecipeSet, steps []recipe.Step, depth int, visiting map[string]bool, rng *rand.Rand) ([]recipe.Step, error) {
	if depth > maxRecipeDepth {
		return nil, errs.New(errs.Input, "terrain", "recipe", "recipe nesting exceeds maximum depth")
	}
	out := make([]recipe.Step, 0, len(steps))
	for _, s := range steps {
		switch s.Command {
		case "recipe":
			var args struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal(s.Args, &args); err != nil {
				return nil, errs.Wrap(errs.Input, "terrain", "recipe", "malformed recipe reference", err)
			}
			nested, err := expandNamed(set, args.Name, depth, visiting, rng)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		case "recipe-set":
			var args struct {
				Names []string `json:"names"`
			}
			if err := json.Unmarshal(s.Args, &args); err != nil {
				return nil, errs.Wrap(errs.Input, "terrain", "recipe-set", "malformed recipe-set reference", err)
			}
			if len(args.Names) == 0 {
				return nil, errs.New(errs.Input, "terrain", "recipe-set", "recipe-set step has no candidate recipes")
			}
			chosen := args.Names[rng.Intn(len(args.Names))]
			nested, err := expandNamed(set, chosen, depth, visiting, rng)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		default:
			out = append(out, s)
		}
	}
	return out, nil
}

func expandNamed(set *recipe.RecipeSet, name string, depth int, visiting map[string]bool, rng *rand.Rand) ([]recipe.Step, error) {
	if visiting[name] {
		return nil, errs.New(errs.Input, "terrain", name, "cyclic recipe reference")
	}
	inner, err := set.Find(name)
	if err != nil {
		return nil, err
	}
	visiting[name] = true
	nested, err := expand(set, inner.Steps, depth+1, visiting, rng)
	delete(visiting, name)
	return nested, err
}
