package namer

import (
	"math/rand"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/recipe"
)

// Picker generates one name per call.
type Picker interface {
	Pick(rng *rand.Rand) string
}

// ListPicker samples uniformly without replacement from a fixed list,
// reshuffling and starting over once exhausted (spec §4.11).
type ListPicker struct {
	choices []string
	pool    []string
}

// NewListPicker builds a picker from doc's choices.
func NewListPicker(doc *recipe.NamerDoc) (*ListPicker, error) {
	if len(doc.Choices) == 0 {
		return nil, errs.New(errs.Input, "namer", doc.Name, "list namer requires at least one choice")
	}
	choices := append([]string(nil), doc.Choices...)
	return &ListPicker{choices: choices}, nil
}

// Pick returns the next name, reshuffling a fresh pool when exhausted.
func (p *ListPicker) Pick(rng *rand.Rand) string {
	if len(p.pool) == 0 {
		p.pool = append([]string(nil), p.choices...)
	}
	i := rng.Intn(len(p.pool))
	name := p.pool[i]
	p.pool = append(p.pool[:i], p.pool[i+1:]...)
	return name
}

// Pick implements Picker for Markov.
func (m *Markov) Pick(rng *rand.Rand) string { return m.Generate(rng) }

// New builds the Picker described by doc (spec §4.11's two variants).
func New(doc *recipe.NamerDoc) (Picker, error) {
	switch doc.Kind {
	case "markov":
		return TrainMarkov(doc)
	case "list":
		return NewListPicker(doc)
	default:
		return nil, errs.New(errs.Input, "namer", doc.Name, "unknown namer kind")
	}
}
