package session

import (
	"math/rand/v2"

	"github.com/abhisek/familyhub/internal/facts"
	"github.com/abhisek/familyhub/internal/mastery"
)

// Planner draws adaptive practice questions from a mastery classification.
type Planner struct {
	weights Weights
	rng     Rand
}

// NewPlanner creates a Planner with the default weights. A nil rng uses the
// goroutine-safe top-level functions of math/rand/v2.
func NewPlanner(rng Rand) *Planner {
	if rng == nil {
		rng = globalRand{}
	}
	return &Planner{weights: DefaultWeights(), rng: rng}
}

// pools holds the facts still available to draw, per category.
type pools map[PlanCategory][]facts.Fact

func newPools(c mastery.Classification) pools {
	return pools{
		CategoryWeak:     c.Weak.Sorted(),
		CategoryUnseen:   c.Unseen.Sorted(),
		CategoryMastered: c.Mastered.Sorted(),
	}
}

func (p pools) sizes() map[PlanCategory]int {
	out := make(map[PlanCategory]int, len(p))
	for k, v := range p {
		out[k] = len(v)
	}
	return out
}

func (p pools) nonEmpty() []PlanCategory {
	var out []PlanCategory
	for _, c := range categoryOrder {
		if len(p[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// remove drops the fact at index i, preserving order.
func (p pools) remove(c PlanCategory, i int) {
	pool := p[c]
	p[c] = append(pool[:i:i], pool[i+1:]...)
}

// Select returns exactly count questions unless the classification is empty.
// Facts are drawn without replacement; once every pool is drained they are
// refilled from the classification and drawing continues.
func (p *Planner) Select(c mastery.Classification, count int) []Question {
	avail := newPools(c)
	weights := rebalance(p.weights, avail.sizes())

	questions := make([]Question, 0, count)
	var recent []facts.Fact

	for len(questions) < count {
		cats := avail.nonEmpty()
		if len(cats) == 0 {
			avail = newPools(c)
			cats = avail.nonEmpty()
			if len(cats) == 0 {
				break
			}
		}

		cat := p.pickCategory(cats, weights)
		idx := p.pickFact(avail[cat], recent)
		fact := avail[cat][idx]
		avail.remove(cat, idx)

		a, b := fact.A, fact.B
		if a != b && p.rng.Float64() < 0.5 {
			a, b = b, a
		}
		questions = append(questions, Question{A: a, B: b, Answer: a * b, Category: cat})

		recent = append(recent, fact)
		if len(recent) > RecentWindow {
			recent = recent[1:]
		}
	}
	return questions
}

// pickCategory draws a category proportionally to its weight among the
// non-empty ones, falling back to uniform when they all weigh zero.
func (p *Planner) pickCategory(cats []PlanCategory, weights Weights) PlanCategory {
	var total float64
	for _, c := range cats {
		total += weights[c]
	}
	if total <= 0 {
		return cats[p.rng.IntN(len(cats))]
	}

	r := p.rng.Float64() * total
	for _, c := range cats {
		r -= weights[c]
		if r < 0 {
			return c
		}
	}
	return cats[len(cats)-1]
}

// pickFact returns an index into pool, avoiding recently drawn facts when
// the pool has anything else to offer.
func (p *Planner) pickFact(pool []facts.Fact, recent []facts.Fact) int {
	var fresh []int
	for i, f := range pool {
		if !contains(recent, f) {
			fresh = append(fresh, i)
		}
	}
	if len(fresh) == 0 {
		return p.rng.IntN(len(pool))
	}
	return fresh[p.rng.IntN(len(fresh))]
}

func contains(list []facts.Fact, f facts.Fact) bool {
	for _, x := range list {
		if x == f {
			return true
		}
	}
	return false
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }
