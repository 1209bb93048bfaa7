package mastery

import (
	"math"
	"sort"

	"github.com/abhisek/familyhub/internal/facts"
)

const (
	// DefaultWindow is how many recent training sessions feed classification.
	DefaultWindow = 3

	// MinAttempts is the fewest attempts a fact needs before it can be mastered.
	MinAttempts = 3

	// MasteryAccuracy is the accuracy bar for mastery.
	MasteryAccuracy = 0.8
)

// SessionType distinguishes practice from certification records.
type SessionType string

const (
	SessionTraining SessionType = "training"
	SessionTest     SessionType = "test"
)

// Attempt is one answered question inside a session.
type Attempt struct {
	A       int
	B       int
	Correct bool
}

// Record is the slice of a progress record the analyzer needs.
type Record struct {
	// Seq is the store's insertion sequence; larger is newer.
	Seq      int64
	Type     SessionType
	Attempts []Attempt
}

type tally struct {
	correct int
	total   int
}

// Analyze classifies every fact using only the most recent DefaultWindow
// training records. Records may arrive in any order.
func Analyze(records []Record) Classification {
	return AnalyzeWindow(records, DefaultWindow)
}

// AnalyzeWindow is Analyze with an explicit window size.
func AnalyzeWindow(records []Record, window int) Classification {
	tallies := make(map[facts.Fact]*tally)
	for _, r := range recentTraining(records, window) {
		for _, at := range r.Attempts {
			f := facts.Canonical(at.A, at.B)
			if !f.Valid() {
				continue
			}
			t, ok := tallies[f]
			if !ok {
				t = &tally{}
				tallies[f] = t
			}
			t.total++
			if at.Correct {
				t.correct++
			}
		}
	}

	c := newClassification()
	for _, f := range facts.Universe() {
		t, ok := tallies[f]
		switch {
		case !ok:
			c.Unseen.Add(f)
		case t.total >= MinAttempts && float64(t.correct)/float64(t.total) >= MasteryAccuracy:
			c.Mastered.Add(f)
		default:
			c.Weak.Add(f)
		}
	}
	return c
}

// RecentAccuracy returns the percentage of correct attempts across the
// classification window, rounded to one decimal. Zero when nothing was tried.
func RecentAccuracy(records []Record) float64 {
	var correct, total int
	for _, r := range recentTraining(records, DefaultWindow) {
		for _, at := range r.Attempts {
			if !facts.Canonical(at.A, at.B).Valid() {
				continue
			}
			total++
			if at.Correct {
				correct++
			}
		}
	}
	return Percent(correct, total)
}

// CountSessions returns how many records have the given type.
func CountSessions(records []Record, typ SessionType) int {
	n := 0
	for _, r := range records {
		if r.Type == typ {
			n++
		}
	}
	return n
}

// Percent returns correct/total as a percentage rounded to one decimal.
func Percent(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

// recentTraining returns up to n training records, newest first.
func recentTraining(records []Record, n int) []Record {
	var training []Record
	for _, r := range records {
		if r.Type == SessionTraining {
			training = append(training, r)
		}
	}
	sort.SliceStable(training, func(i, j int) bool {
		return training[i].Seq > training[j].Seq
	})
	if len(training) > n {
		training = training[:n]
	}
	return training
}
