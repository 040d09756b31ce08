package namer

import (
	"math/rand"
	"testing"

	"cosmopoeia/internal/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainMarkov_RejectsNoSeeds(t *testing.T) {
	_, err := TrainMarkov(&recipe.NamerDoc{Name: "x", Kind: "markov"})
	require.Error(t, err)
}

func TestMarkov_GeneratesWithinLengthBounds(t *testing.T) {
	doc := &recipe.NamerDoc{
		Name: "elven", Kind: "markov",
		Seeds: []string{"aranel", "elaria", "thranduil", "galadriel", "legolas"},
		Order: 2, MinLength: 4, MaxLength: 10,
	}
	m, err := TrainMarkov(doc)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		name := m.Generate(rng)
		assert.GreaterOrEqual(t, len(name), doc.MinLength)
		assert.LessOrEqual(t, len(name), doc.MaxLength)
	}
}

func TestMarkov_DuplicatableLettersRespected(t *testing.T) {
	doc := &recipe.NamerDoc{
		Name: "test", Kind: "markov",
		Seeds: []string{"aa", "aa", "aa"}, Order: 1, MinLength: 1, MaxLength: 4,
		DuplicatableLetters: "",
	}
	m, err := TrainMarkov(doc)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(2))
	name := m.Generate(rng)
	for i := 1; i < len(name); i++ {
		assert.NotEqual(t, name[i-1], name[i])
	}
}

func TestListPicker_ExhaustsBeforeRepeating(t *testing.T) {
	doc := &recipe.NamerDoc{Name: "towns", Kind: "list", Choices: []string{"A", "B", "C"}}
	p, err := NewListPicker(doc)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		seen[p.Pick(rng)] = true
	}
	assert.Len(t, seen, 3)
}

func TestNew_RejectsUnknownKind(t *testing.T) {
	_, err := New(&recipe.NamerDoc{Name: "x", Kind: "bogus"})
	require.Error(t, err)
}

func TestApplyTransforms_TrimSuffixesIfLonger(t *testing.T) {
	transforms := []Transform{
		{Kind: TrimSuffixesIfLonger, Suffixes: []string{"ia", "land"}, MinLength: 5},
	}
	assert.Equal(t, "Gondor", ApplyTransforms("Gondor", transforms))
	assert.Equal(t, "Elveng", ApplyTransforms("Elvengland", transforms))
}

func TestApplyTransforms_ForceVowel(t *testing.T) {
	transforms := []Transform{{Kind: ForceVowel, Vowel: "a"}}
	assert.Equal(t, "Gondora", ApplyTransforms("Gondor", transforms))
	assert.Equal(t, "Asia", ApplyTransforms("Asia", transforms))
}

func TestSuffixPolicy_Suffix(t *testing.T) {
	p := &SuffixPolicy{Kind: Suffix, Text: "ia"}
	assert.Equal(t, "Gondoria", p.Apply("Gondor", rand.New(rand.NewSource(1))))
}

func TestSuffixPolicy_ChoiceRecursesToChild(t *testing.T) {
	p := &SuffixPolicy{Kind: ChoiceSuffix, Children: []*SuffixPolicy{
		{Kind: Suffix, Text: "ia"},
		{Kind: NoSuffix},
	}}
	rng := rand.New(rand.NewSource(4))
	out := p.Apply("Gondor", rng)
	assert.True(t, out == "Gondor" || out == "Gondoria")
}
