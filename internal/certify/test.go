package certify

import (
	"fmt"

	"github.com/abhisek/familyhub/internal/facts"
)

// Problem is a question as shown to the learner. The answer is never part of
// it; grading recomputes the product.
type Problem struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Test is a generated certification test.
type Test struct {
	Level     int       `json:"level"`
	Questions []Problem `json:"questions"`
	TimeLimit int       `json:"time_limit,omitempty"`
	Total     int       `json:"total"`
	Label     string    `json:"label"`
}

// Rand is the randomness the generator needs.
type Rand interface {
	IntN(n int) int
}

// Generate draws a test for level n. Operands are independent and uniform
// over the whole fact range.
func Generate(n int, rng Rand) Test {
	lvl := LevelFor(n)
	span := facts.MaxOperand - facts.MinOperand + 1

	qs := make([]Problem, lvl.Questions)
	for i := range qs {
		qs[i] = Problem{
			A: facts.MinOperand + rng.IntN(span),
			B: facts.MinOperand + rng.IntN(span),
		}
	}
	return Test{
		Level:     lvl.Number,
		Questions: qs,
		TimeLimit: lvl.TimeLimit,
		Total:     lvl.Questions,
		Label:     lvl.Label(),
	}
}

// Result is the outcome of grading one submission.
type Result struct {
	Level     int
	Correct   int
	Total     int
	Duration  *int
	TimeLimit int
	Passed    bool
	Reason    string
}

// Grade scores answers against the products of the submitted problems.
// Only the first Questions pairs count; missing answers or problems count as
// wrong. A timed level submitted without a duration fails on time.
func Grade(n int, questions []Problem, answers []int, duration *int) Result {
	lvl := LevelFor(n)

	correct := 0
	for i := 0; i < lvl.Questions && i < len(questions) && i < len(answers); i++ {
		q := questions[i]
		if answers[i] == q.A*q.B {
			correct++
		}
	}

	res := Result{
		Level:     lvl.Number,
		Correct:   correct,
		Total:     lvl.Questions,
		Duration:  duration,
		TimeLimit: lvl.TimeLimit,
	}

	switch {
	case correct < lvl.Questions:
		res.Reason = fmt.Sprintf("Got %d of %d correct", correct, lvl.Questions)
	case lvl.Timed() && (duration == nil || *duration < 0):
		res.Reason = fmt.Sprintf("No time recorded but limit is %ds", lvl.TimeLimit)
	case lvl.Timed() && *duration > lvl.TimeLimit:
		res.Reason = fmt.Sprintf("Took %ds but limit is %ds", *duration, lvl.TimeLimit)
	default:
		res.Passed = true
	}
	return res
}
