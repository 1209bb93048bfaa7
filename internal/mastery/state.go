package mastery

import (
	"sort"

	"github.com/abhisek/familyhub/internal/facts"
)

// FactState is a fact's position in the learner's current skill picture.
type FactState string

const (
	StateUnseen   FactState = "unseen"
	StateWeak     FactState = "weak"
	StateMastered FactState = "mastered"
)

// Set is an unordered collection of canonical facts.
type Set map[facts.Fact]struct{}

// Add inserts f.
func (s Set) Add(f facts.Fact) {
	s[f] = struct{}{}
}

// Has reports whether f is a member.
func (s Set) Has(f facts.Fact) bool {
	_, ok := s[f]
	return ok
}

// Sorted returns the members in universe order so callers that sample from
// the set stay deterministic under a seeded source.
func (s Set) Sorted() []facts.Fact {
	out := make([]facts.Fact, 0, len(s))
	for f := range s {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Classification partitions the fact universe into three disjoint sets.
type Classification struct {
	Mastered Set
	Weak     Set
	Unseen   Set
}

func newClassification() Classification {
	return Classification{
		Mastered: make(Set),
		Weak:     make(Set),
		Unseen:   make(Set),
	}
}

// StateOf returns which set f belongs to. Facts outside the universe are
// reported as unseen.
func (c Classification) StateOf(f facts.Fact) FactState {
	f = facts.Canonical(f.A, f.B)
	switch {
	case c.Mastered.Has(f):
		return StateMastered
	case c.Weak.Has(f):
		return StateWeak
	default:
		return StateUnseen
	}
}

// Counts returns the set sizes.
func (c Classification) Counts() (mastered, weak, unseen int) {
	return len(c.Mastered), len(c.Weak), len(c.Unseen)
}

// Total is the number of facts covered, always facts.UniverseSize.
func (c Classification) Total() int {
	return len(c.Mastered) + len(c.Weak) + len(c.Unseen)
}
