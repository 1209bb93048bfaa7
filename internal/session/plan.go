package session

import "github.com/abhisek/familyhub/internal/facts"

// PlanCategory is the pool a practice question was drawn from.
type PlanCategory string

const (
	CategoryWeak     PlanCategory = "weak"
	CategoryUnseen   PlanCategory = "unseen"
	CategoryMastered PlanCategory = "mastered"
)

// categoryOrder fixes iteration order so seeded draws are reproducible.
var categoryOrder = []PlanCategory{CategoryWeak, CategoryUnseen, CategoryMastered}

// DefaultTrainingQuestions is the length of a training session.
const DefaultTrainingQuestions = 20

// RecentWindow is how many previous facts a draw tries not to repeat.
const RecentWindow = 3

// Weights maps each category to its share of draws.
type Weights map[PlanCategory]float64

// DefaultWeights is the 50/30/20 weak/unseen/mastered mix.
func DefaultWeights() Weights {
	return Weights{
		CategoryWeak:     0.5,
		CategoryUnseen:   0.3,
		CategoryMastered: 0.2,
	}
}

// Question is one practice prompt. A and B are in presentation order, which
// may be flipped relative to the canonical fact.
type Question struct {
	A        int          `json:"a"`
	B        int          `json:"b"`
	Answer   int          `json:"answer"`
	Category PlanCategory `json:"category"`
}

// Fact returns the canonical fact behind the question.
func (q Question) Fact() facts.Fact {
	return facts.Canonical(q.A, q.B)
}

// Rand is the randomness the planner needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}
