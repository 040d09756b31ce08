// Package namer generates tile, culture, settlement, and state names
// from Markov character models or fixed lists (spec §4.11).
package namer

import (
	"math/rand"
	"strings"

	"cosmopoeia/internal/recipe"

	"cosmopoeia/internal/errs"
)

const boundary = "\x00"

// Markov is a trained character n-gram model over a set of seed words.
type Markov struct {
	order               int
	minLength           int
	maxLength           int
	duplicatableLetters string
	transitions         map[string][]rune
}

// TrainMarkov builds a model from doc's seed words (spec §4.11: "train
// a character n-gram model from seed words").
func TrainMarkov(doc *recipe.NamerDoc) (*Markov, error) {
	if len(doc.Seeds) == 0 {
		return nil, errs.New(errs.Input, "namer", doc.Name, "markov namer requires at least one seed word")
	}
	order := doc.Order
	if order < 1 {
		order = 2
	}
	minLen := doc.MinLength
	if minLen < 1 {
		minLen = 3
	}
	maxLen := doc.MaxLength
	if maxLen < minLen {
		maxLen = minLen + 6
	}

	m := &Markov{
		order:               order,
		minLength:           minLen,
		maxLength:           maxLen,
		duplicatableLetters: doc.DuplicatableLetters,
		transitions:         make(map[string][]rune),
	}
	for _, seed := range doc.Seeds {
		m.ingest(seed)
	}
	return m, nil
}

func (m *Markov) ingest(word string) {
	padded := strings.Repeat(boundary, m.order) + strings.ToLower(word) + boundary
	runes := []rune(padded)
	for i := 0; i+m.order < len(runes); i++ {
		key := string(runes[i : i+m.order])
		m.transitions[key] = append(m.transitions[key], runes[i+m.order])
	}
}

// Generate samples a new name by walking the trained transition table,
// enforcing min/max length and the duplicatable-letters rule: a letter
// in duplicatableLetters may repeat once in a row, any other letter may
// not (spec §4.11).
func (m *Markov) Generate(rng *rand.Rand) string {
	for attempt := 0; attempt < 64; attempt++ {
		if name, ok := m.attempt(rng); ok {
			return name
		}
	}
	return "Unnamed"
}

func (m *Markov) attempt(rng *rand.Rand) (string, bool) {
	stateRunes := []rune(strings.Repeat(boundary, m.order))
	var out []rune
	lastRepeated := false
	stalls := 0

	for len(out) < m.maxLength && stalls < 8 {
		candidates := m.transitions[string(stateRunes)]
		if len(candidates) == 0 {
			break
		}
		next := candidates[rng.Intn(len(candidates))]
		if string(next) == boundary {
			break
		}
		if len(out) > 0 && out[len(out)-1] == next {
			allowed := strings.ContainsRune(m.duplicatableLetters, next)
			if !allowed || lastRepeated {
				stalls++
				continue
			}
			lastRepeated = true
		} else {
			lastRepeated = false
		}
		out = append(out, next)
		stateRunes = append(stateRunes[1:], next)
	}

	if len(out) < m.minLength {
		return "", false
	}
	return capitalize(string(out)), true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
