// Package certify generates and grades the timed certification tests that
// unlock each mastery level.
package certify

import "fmt"

// MinLevel and MaxLevel bound the certification ladder.
const (
	MinLevel = 1
	MaxLevel = 3
)

// QuestionsPerTest is the fixed length of every certification test.
const QuestionsPerTest = 45

// Level describes one rung of the certification ladder.
type Level struct {
	Number    int
	Questions int
	// TimeLimit is in seconds. Zero means untimed.
	TimeLimit int
}

var levels = map[int]Level{
	1: {Number: 1, Questions: QuestionsPerTest},
	2: {Number: 2, Questions: QuestionsPerTest, TimeLimit: 120},
	3: {Number: 3, Questions: QuestionsPerTest, TimeLimit: 60},
}

// Timed reports whether the level enforces a time limit.
func (l Level) Timed() bool { return l.TimeLimit > 0 }

// Label is the display name, e.g. "Level 2".
func (l Level) Label() string { return fmt.Sprintf("Level %d", l.Number) }

// ClampLevel forces n into [MinLevel, MaxLevel].
func ClampLevel(n int) int {
	if n < MinLevel {
		return MinLevel
	}
	if n > MaxLevel {
		return MaxLevel
	}
	return n
}

// LevelFor returns the configuration for n after clamping.
func LevelFor(n int) Level {
	return levels[ClampLevel(n)]
}

// NextLevel picks the level to test when the caller did not ask for one:
// one above the current level, capped at MaxLevel. A requested level below
// MinLevel counts as unspecified.
func NextLevel(current, requested int) int {
	if requested >= MinLevel {
		return ClampLevel(requested)
	}
	return ClampLevel(current + 1)
}
