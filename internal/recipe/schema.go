package recipe

import (
	"encoding/json"
	"fmt"

	"cosmopoeia/internal/errs"
)

// Step is one raw terrain recipe command as it appears in JSON (spec
// §4.3, §6): a command name plus a loosely-typed argument bag. The
// terrain engine is responsible for interpreting Args against the
// command's own schema.
type Step struct {
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Recipe is a named, ordered list of steps (spec §6: recipes reference
// other recipes by name, recipe sets bundle several recipes).
type Recipe struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// RecipeSet is the top-level terrain document: a list of recipes plus
// the name of the one to run by default.
type RecipeSet struct {
	Recipes []Recipe `json:"recipes"`
	Default string   `json:"default,omitempty"`
}

// LoadRecipeSet decodes a terrain recipe document from bytes.
func LoadRecipeSet(data []byte) (*RecipeSet, error) {
	var rs RecipeSet
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, errs.Wrap(errs.Input, "recipe", "recipe-set", "malformed recipe document", err)
	}
	if len(rs.Recipes) == 0 {
		return nil, errs.New(errs.Input, "recipe", "recipe-set", "recipe document has no recipes")
	}
	return &rs, nil
}

// Find returns the named recipe, or an Input error if it doesn't exist.
func (rs *RecipeSet) Find(name string) (*Recipe, error) {
	for i := range rs.Recipes {
		if rs.Recipes[i].Name == name {
			return &rs.Recipes[i], nil
		}
	}
	return nil, errs.New(errs.Input, "recipe", name, fmt.Sprintf("no recipe named %q", name))
}

// NamerDoc is the external Markov namer document (spec §6): a set of
// seed words, ordering and syllable parameters, plus transform rules.
type NamerDoc struct {
	Name               string   `json:"name"`
	Kind               string   `json:"kind"` // "markov" | "list"
	Seeds              []string `json:"seeds,omitempty"`
	Choices            []string `json:"choices,omitempty"` // for kind == "list"
	Order              int      `json:"order,omitempty"`
	MinLength          int      `json:"min_length,omitempty"`
	MaxLength          int      `json:"max_length,omitempty"`
	DuplicatableLetters string  `json:"duplicatable_letters,omitempty"`
	StateSuffixes      []string `json:"state_suffixes,omitempty"`
}

// LoadNamerDoc decodes a namer document from bytes.
func LoadNamerDoc(data []byte) (*NamerDoc, error) {
	var doc NamerDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.Input, "recipe", "namer", "malformed namer document", err)
	}
	if doc.Kind != "markov" && doc.Kind != "list" {
		return nil, errs.New(errs.Input, "recipe", "namer", fmt.Sprintf("unknown namer kind %q", doc.Kind))
	}
	return &doc, nil
}

// CultureSetDoc is the external culture-set document (spec §6): the
// named cultures available for a world, each with its preferences and
// namer reference.
type CultureSetDoc struct {
	Cultures []CultureDoc `json:"cultures"`
}

// CultureDoc is one culture entry within a CultureSetDoc.
type CultureDoc struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Namer       string          `json:"namer"`
	Preferences json.RawMessage `json:"preferences"`
	Expansionism float64        `json:"expansionism,omitempty"`
}

// LoadCultureSetDoc decodes a culture-set document from bytes.
func LoadCultureSetDoc(data []byte) (*CultureSetDoc, error) {
	var doc CultureSetDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.Input, "recipe", "culture-set", "malformed culture-set document", err)
	}
	if len(doc.Cultures) == 0 {
		return nil, errs.New(errs.Input, "recipe", "culture-set", "culture-set document has no cultures")
	}
	return &doc, nil
}
