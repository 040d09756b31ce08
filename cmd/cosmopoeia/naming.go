package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/recipe"
	"cosmopoeia/internal/rng"
	"cosmopoeia/internal/worldgen/namer"
	"cosmopoeia/internal/worldgen/tilegraph"
)

// namerSet loads every namer document in a directory and lazily trains
// a Picker per name, keyed by the NamerDoc.Name a culture/recipe
// references (spec §4.7's Culture.Namer, §4.11).
type namerSet struct {
	docs    map[string]*recipe.NamerDoc
	pickers map[string]namer.Picker
}

// loadNamerSet reads every *.json file in dir as a NamerDoc. An empty
// dir yields an empty set; Pick then falls back to "Unnamed".
func loadNamerSet(dir string) (*namerSet, error) {
	set := &namerSet{docs: map[string]*recipe.NamerDoc{}, pickers: map[string]namer.Picker{}}
	if dir == "" {
		return set, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrap(errs.Input, "namer", dir, "failed to read namer directory", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errs.Wrap(errs.IO, "namer", path, "failed to read namer document", err)
		}
		doc, err := recipe.LoadNamerDoc(data)
		if err != nil {
			return nil, err
		}
		set.docs[doc.Name] = doc
	}
	return set, nil
}

func (s *namerSet) picker(name string) namer.Picker {
	if p, ok := s.pickers[name]; ok {
		return p
	}
	doc, ok := s.docs[name]
	if !ok {
		return nil
	}
	p, err := namer.New(doc)
	if err != nil {
		return nil
	}
	s.pickers[name] = p
	return p
}

// pick generates one name from the namer referenced by namerName,
// falling back to "Unnamed" if the namer is unknown (spec §4.11's
// picker interface has no failure mode visible to callers; missing
// documents are a configuration gap, not a generation error).
func (s *namerSet) pick(namerName string, r *rand.Rand) string {
	p := s.picker(namerName)
	if p == nil {
		return "Unnamed"
	}
	return p.Pick(r)
}

// statePolicy builds a Choice suffix policy from a NamerDoc's flat
// state_suffixes list (spec §4.11's recursive SuffixPolicy), offering
// each configured suffix or no suffix at all.
func statePolicy(namerName string, s *namerSet) *namer.SuffixPolicy {
	doc, ok := s.docs[namerName]
	if !ok || len(doc.StateSuffixes) == 0 {
		return &namer.SuffixPolicy{Kind: namer.DefaultSuffix}
	}
	children := make([]*namer.SuffixPolicy, 0, len(doc.StateSuffixes)+1)
	for _, sfx := range doc.StateSuffixes {
		children = append(children, &namer.SuffixPolicy{Kind: namer.Suffix, Text: sfx})
	}
	children = append(children, &namer.SuffixPolicy{Kind: namer.NoSuffix})
	return &namer.SuffixPolicy{Kind: namer.ChoiceSuffix, Children: children}
}

func cultureByID(g *tilegraph.Graph) map[int]*tilegraph.Culture {
	byID := make(map[int]*tilegraph.Culture, len(g.Cultures))
	for _, c := range g.Cultures {
		byID[c.ID] = c
	}
	return byID
}

// nameTowns assigns every unnamed town a name drawn from its culture's
// namer (spec §4.8, §4.11). Town IDs are assigned in ascending order
// by the Settlements Engine, so iterating g.Towns directly preserves
// a deterministic town-id-ascending order (spec §5).
func nameTowns(g *tilegraph.Graph, seed int64, set *namerSet) {
	cultures := cultureByID(g)
	for _, t := range g.Towns {
		if t.Name != "" || t.CultureID == nil {
			continue
		}
		c, ok := cultures[*t.CultureID]
		if !ok {
			continue
		}
		r := rng.Child(seed, "town-name-"+strconv.Itoa(t.ID))
		t.Name = set.pick(c.Namer, r)
	}
}

// nameNations assigns every unnamed nation a culture-rooted state name,
// suffixed per the culture's namer's state_suffixes policy.
func nameNations(g *tilegraph.Graph, seed int64, set *namerSet) {
	cultures := cultureByID(g)
	for _, n := range g.Nations {
		if n.Name != "" {
			continue
		}
		c, ok := cultures[n.CultureID]
		if !ok {
			continue
		}
		r := rng.Child(seed, "nation-name-"+strconv.Itoa(n.ID))
		base := set.pick(c.Namer, r)
		n.Name = statePolicy(c.Namer, set).Apply(base, r)
	}
}

// nameSubnations assigns every unnamed subnation a plain culture-rooted
// name (no state suffix: spec §4.9 treats subnations as administrative
// divisions, not sovereign states).
func nameSubnations(g *tilegraph.Graph, seed int64, set *namerSet) {
	cultures := cultureByID(g)
	for _, sn := range g.Subnations {
		if sn.Name != "" {
			continue
		}
		c, ok := cultures[sn.CultureID]
		if !ok {
			continue
		}
		r := rng.Child(seed, "subnation-name-"+strconv.Itoa(sn.ID))
		sn.Name = set.pick(c.Namer, r)
	}
}

