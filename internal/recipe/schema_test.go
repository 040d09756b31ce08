package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRecipeSet(t *testing.T) {
	doc := []byte(`{
		"default": "main",
		"recipes": [
			{"name": "main", "steps": [
				{"command": "clear", "args": {"height": -50}},
				{"command": "add_hill", "args": {"count": "1..3", "height": "30..70"}}
			]}
		]
	}`)
	rs, err := LoadRecipeSet(doc)
	require.NoError(t, err)
	assert.Equal(t, "main", rs.Default)
	require.Len(t, rs.Recipes, 1)
	assert.Len(t, rs.Recipes[0].Steps, 2)

	r, err := rs.Find("main")
	require.NoError(t, err)
	assert.Equal(t, "main", r.Name)

	_, err = rs.Find("missing")
	assert.Error(t, err)
}

func TestLoadRecipeSet_Empty(t *testing.T) {
	_, err := LoadRecipeSet([]byte(`{"recipes": []}`))
	assert.Error(t, err)
}

func TestLoadNamerDoc_RejectsUnknownKind(t *testing.T) {
	_, err := LoadNamerDoc([]byte(`{"name": "x", "kind": "bogus"}`))
	assert.Error(t, err)
}

func TestLoadNamerDoc_Markov(t *testing.T) {
	doc, err := LoadNamerDoc([]byte(`{"name": "elvish", "kind": "markov", "seeds": ["Aelindra", "Thalorien"], "order": 2}`))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Order)
}

func TestLoadCultureSetDoc(t *testing.T) {
	doc, err := LoadCultureSetDoc([]byte(`{"cultures": [{"name": "Highland", "type": "Highland", "namer": "elvish", "preferences": {}}]}`))
	require.NoError(t, err)
	assert.Len(t, doc.Cultures, 1)
}
