package namer

import (
	"math/rand"
	"strings"
)

// TransformKind tags one step of a state_name transform list (spec §4.11).
type TransformKind string

const (
	TrimSuffixes             TransformKind = "TrimSuffixes"
	TrimSuffixesIfLonger     TransformKind = "TrimSuffixesIfLonger"
	ForceVowel               TransformKind = "ForceVowel"
	ForcePrefix              TransformKind = "ForcePrefix"
	ForcePrefixByLetterClass TransformKind = "ForcePrefixByLetterClass"
)

// Transform is one step applied in order to a culture name to derive a
// state name.
type Transform struct {
	Kind      TransformKind
	Suffixes  []string // TrimSuffixes, TrimSuffixesIfLonger
	MinLength int       // TrimSuffixesIfLonger
	Vowel     string    // ForceVowel
	Prefix    string    // ForcePrefix, ForcePrefixByLetterClass
	Class     string    // ForcePrefixByLetterClass: "vowel" or "consonant"
}

// ApplyTransforms runs the transform list over name in order (spec §9:
// tagged-sum list applied left to right).
func ApplyTransforms(name string, transforms []Transform) string {
	for _, tr := range transforms {
		name = apply(name, tr)
	}
	return name
}

func apply(name string, tr Transform) string {
	switch tr.Kind {
	case TrimSuffixes:
		return trimSuffixes(name, tr.Suffixes)
	case TrimSuffixesIfLonger:
		if len([]rune(name)) > tr.MinLength {
			return trimSuffixes(name, tr.Suffixes)
		}
		return name
	case ForceVowel:
		if name == "" {
			return name
		}
		last := rune(name[len(name)-1])
		if !isVowel(last) {
			return name + tr.Vowel
		}
		return name
	case ForcePrefix:
		if !strings.HasPrefix(name, tr.Prefix) {
			return tr.Prefix + strings.ToLower(name)
		}
		return name
	case ForcePrefixByLetterClass:
		if name == "" {
			return name
		}
		first := rune(name[0])
		matches := (tr.Class == "vowel" && isVowel(first)) || (tr.Class == "consonant" && !isVowel(first))
		if matches {
			return name
		}
		return tr.Prefix + strings.ToLower(name)
	default:
		return name
	}
}

func trimSuffixes(name string, suffixes []string) string {
	for _, sfx := range suffixes {
		if strings.HasSuffix(strings.ToLower(name), strings.ToLower(sfx)) {
			return name[:len(name)-len(sfx)]
		}
	}
	return name
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	default:
		return false
	}
}

// SuffixPolicyKind tags a state_suffix policy (spec §4.11, recursive
// via Choice).
type SuffixPolicyKind string

const (
	NoSuffix                 SuffixPolicyKind = "NoSuffix"
	DefaultSuffix            SuffixPolicyKind = "Default"
	Suffix                   SuffixPolicyKind = "Suffix"
	ProbableSuffix           SuffixPolicyKind = "ProbableSuffix"
	ProbableSuffixIfShorter  SuffixPolicyKind = "ProbableSuffixIfShorter"
	ChoiceSuffix             SuffixPolicyKind = "Choice"
)

// SuffixPolicy is a recursive tagged sum: Choice holds Children, every
// other kind is a leaf.
type SuffixPolicy struct {
	Kind        SuffixPolicyKind
	Text        string          // Suffix, ProbableSuffix, ProbableSuffixIfShorter
	Probability float64         // ProbableSuffix, ProbableSuffixIfShorter
	MaxLength   int             // ProbableSuffixIfShorter
	Children    []*SuffixPolicy // Choice
}

// Apply evaluates the policy against name, post-order for Choice (spec
// §9: "evaluate by post-order traversal").
func (p *SuffixPolicy) Apply(name string, rng *rand.Rand) string {
	if p == nil {
		return name
	}
	switch p.Kind {
	case NoSuffix:
		return name
	case DefaultSuffix:
		if strings.HasSuffix(strings.ToLower(name), "ia") {
			return name
		}
		return name + "ia"
	case Suffix:
		return name + p.Text
	case ProbableSuffix:
		if rng.Float64() < p.Probability {
			return name + p.Text
		}
		return name
	case ProbableSuffixIfShorter:
		if len([]rune(name)) < p.MaxLength && rng.Float64() < p.Probability {
			return name + p.Text
		}
		return name
	case ChoiceSuffix:
		if len(p.Children) == 0 {
			return name
		}
		choice := p.Children[rng.Intn(len(p.Children))]
		return choice.Apply(name, rng)
	default:
		return name
	}
}
