package mastery

import (
	"math/rand/v2"
	"testing"

	"github.com/abhisek/familyhub/internal/facts"
)

func training(seq int64, attempts ...Attempt) Record {
	return Record{Seq: seq, Type: SessionTraining, Attempts: attempts}
}

func ok(a, b int) Attempt   { return Attempt{A: a, B: b, Correct: true} }
func miss(a, b int) Attempt { return Attempt{A: a, B: b} }

func assertPartition(t *testing.T, c Classification) {
	t.Helper()
	if c.Total() != facts.UniverseSize {
		t.Fatalf("classification covers %d facts, want %d", c.Total(), facts.UniverseSize)
	}
	for _, f := range facts.Universe() {
		n := 0
		for _, s := range []Set{c.Mastered, c.Weak, c.Unseen} {
			if s.Has(f) {
				n++
			}
		}
		if n != 1 {
			t.Errorf("fact %v is in %d sets, want 1", f, n)
		}
	}
}

func TestAnalyzeEmptyHistory(t *testing.T) {
	c := Analyze(nil)
	assertPartition(t, c)
	if len(c.Unseen) != facts.UniverseSize {
		t.Errorf("unseen = %d, want %d", len(c.Unseen), facts.UniverseSize)
	}
}

func TestAnalyzeThresholds(t *testing.T) {
	tests := []struct {
		name     string
		attempts []Attempt
		want     FactState
	}{
		{"three of three", []Attempt{ok(6, 7), ok(7, 6), ok(6, 7)}, StateMastered},
		{"four of five", []Attempt{ok(6, 7), ok(6, 7), ok(6, 7), ok(6, 7), miss(6, 7)}, StateMastered},
		{"two of three", []Attempt{ok(6, 7), ok(6, 7), miss(6, 7)}, StateWeak},
		{"too few attempts", []Attempt{ok(6, 7), ok(6, 7)}, StateWeak},
		{"single miss", []Attempt{miss(7, 6)}, StateWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Analyze([]Record{training(1, tt.attempts...)})
			assertPartition(t, c)
			if got := c.StateOf(facts.Canonical(6, 7)); got != tt.want {
				t.Errorf("state = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeTalliesAcrossWindow(t *testing.T) {
	records := []Record{
		training(1, ok(3, 4)),
		training(2, ok(4, 3)),
		training(3, ok(3, 4)),
	}
	c := Analyze(records)
	if got := c.StateOf(facts.Canonical(3, 4)); got != StateMastered {
		t.Errorf("3x4 state = %q, want mastered", got)
	}
}

func TestAnalyzeRecencyBound(t *testing.T) {
	// Oldest session masters 9x9; the three newest never mention it.
	records := []Record{
		training(4, ok(2, 2)),
		training(3, ok(2, 3)),
		training(2, ok(2, 4)),
		training(1, ok(9, 9), ok(9, 9), ok(9, 9)),
	}
	c := Analyze(records)
	if got := c.StateOf(facts.Fact{A: 9, B: 9}); got != StateUnseen {
		t.Errorf("9x9 state = %q, want unseen", got)
	}
	if got := c.StateOf(facts.Fact{A: 2, B: 4}); got != StateWeak {
		t.Errorf("2x4 state = %q, want weak", got)
	}
}

func TestAnalyzeOrderIndependent(t *testing.T) {
	records := []Record{
		training(1, ok(9, 9), ok(9, 9), ok(9, 9)),
		training(2, ok(2, 4)),
		training(4, ok(2, 2)),
		training(3, ok(2, 3)),
	}
	c := Analyze(records)
	if got := c.StateOf(facts.Fact{A: 9, B: 9}); got != StateUnseen {
		t.Errorf("9x9 state = %q, want unseen", got)
	}
}

func TestAnalyzeIgnoresTestRecords(t *testing.T) {
	records := []Record{
		{Seq: 5, Type: SessionTest, Attempts: []Attempt{ok(5, 5), ok(5, 5), ok(5, 5)}},
		training(1, ok(2, 2)),
	}
	c := Analyze(records)
	if got := c.StateOf(facts.Fact{A: 5, B: 5}); got != StateUnseen {
		t.Errorf("5x5 state = %q, want unseen", got)
	}
}

func TestAnalyzeIgnoresOutOfRange(t *testing.T) {
	c := Analyze([]Record{training(1, ok(13, 2), ok(0, 4))})
	assertPartition(t, c)
	if len(c.Unseen) != facts.UniverseSize {
		t.Errorf("unseen = %d, want %d", len(c.Unseen), facts.UniverseSize)
	}
}

func TestAnalyzePartitionRandomHistories(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 50; i++ {
		var records []Record
		sessions := rng.IntN(6)
		for s := 0; s < sessions; s++ {
			var attempts []Attempt
			for q := 0; q < 20; q++ {
				attempts = append(attempts, Attempt{
					A:       rng.IntN(12) + 1,
					B:       rng.IntN(12) + 1,
					Correct: rng.IntN(2) == 0,
				})
			}
			records = append(records, training(int64(s), attempts...))
		}
		assertPartition(t, Analyze(records))
	}
}

func TestRecentAccuracy(t *testing.T) {
	records := []Record{
		training(1, miss(2, 2), miss(2, 2), miss(2, 2), miss(2, 2)),
		training(2, ok(2, 3), miss(2, 3)),
		training(3, ok(2, 4)),
		training(4, ok(2, 5)),
	}
	// Window is sessions 2..4: 3 of 4 correct.
	if got := RecentAccuracy(records); got != 75 {
		t.Errorf("RecentAccuracy = %v, want 75", got)
	}
	if got := RecentAccuracy(nil); got != 0 {
		t.Errorf("RecentAccuracy(nil) = %v, want 0", got)
	}
}

func TestRecentAccuracySkipsOutOfRange(t *testing.T) {
	records := []Record{
		training(1, ok(2, 3), miss(0, 5), miss(13, 2), miss(2, -1)),
	}
	if got := RecentAccuracy(records); got != 100 {
		t.Errorf("RecentAccuracy = %v, want 100", got)
	}
	if got := RecentAccuracy([]Record{training(1, miss(0, 0))}); got != 0 {
		t.Errorf("RecentAccuracy(only invalid) = %v, want 0", got)
	}
}

func TestPercentRounding(t *testing.T) {
	if got := Percent(2, 3); got != 66.7 {
		t.Errorf("Percent(2, 3) = %v, want 66.7", got)
	}
	if got := Percent(1, 0); got != 0 {
		t.Errorf("Percent(1, 0) = %v, want 0", got)
	}
}

func TestCountSessions(t *testing.T) {
	records := []Record{
		training(1),
		{Seq: 2, Type: SessionTest},
		training(3),
	}
	if got := CountSessions(records, SessionTraining); got != 2 {
		t.Errorf("training sessions = %d, want 2", got)
	}
	if got := CountSessions(records, SessionTest); got != 1 {
		t.Errorf("test sessions = %d, want 1", got)
	}
}
