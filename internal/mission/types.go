package mission

import (
	"github.com/abhisek/familyhub/internal/certify"
	"github.com/abhisek/familyhub/internal/rewards"
)

// Prompt is a question as shown to the learner, without its answer.
type Prompt struct {
	A int `json:"a"`
	B int `json:"b"`
}

// TrainingSession is the practice content for one sitting.
type TrainingSession struct {
	Type          string   `json:"type"`
	Questions     []Prompt `json:"questions,omitempty"`
	Total         int      `json:"total"`
	MasteredCount int      `json:"mastered_count"`
	WeakCount     int      `json:"weak_count"`
	UnseenCount   int      `json:"unseen_count"`

	PieceName   string `json:"piece_name,omitempty"`
	Description string `json:"description,omitempty"`
	Message     string `json:"message,omitempty"`
}

// TrainingAnswer is one self-reported practice answer.
type TrainingAnswer struct {
	A          int  `json:"a"`
	B          int  `json:"b"`
	UserAnswer *int `json:"user_answer"`
	Correct    bool `json:"correct"`
}

// TrainingSubmission is a finished practice sitting.
type TrainingSubmission struct {
	Questions       []TrainingAnswer `json:"questions"`
	DurationSeconds *int             `json:"duration_seconds,omitempty"`
}

// TrainingResult reports a recorded practice sitting.
type TrainingResult struct {
	Correct       int     `json:"correct"`
	Total         int     `json:"total"`
	ScorePct      float64 `json:"score_pct"`
	MasteredCount int     `json:"mastered_count"`
	WeakCount     int     `json:"weak_count"`
	UnseenCount   int     `json:"unseen_count"`
	TotalFacts    int     `json:"total_facts"`
	Message       string  `json:"message,omitempty"`
}

// TestSession is a certification test. The answer key is withheld.
type TestSession struct {
	Type      string            `json:"type"`
	Level     int               `json:"level,omitempty"`
	Questions []certify.Problem `json:"questions,omitempty"`
	// TimeLimit is nil for untimed levels.
	TimeLimit *int   `json:"time_limit"`
	Total     int    `json:"total"`
	Label     string `json:"label,omitempty"`

	PieceName string `json:"piece_name,omitempty"`
	Message   string `json:"message,omitempty"`
}

// TestSubmission is a finished certification test.
type TestSubmission struct {
	Level           int               `json:"level"`
	Answers         []int             `json:"answers"`
	Questions       []certify.Problem `json:"questions"`
	DurationSeconds *int              `json:"duration_seconds,omitempty"`
	PieceName       string            `json:"piece_name,omitempty"`
}

// TestResult reports a graded certification test.
type TestResult struct {
	Passed          bool   `json:"passed"`
	Level           int    `json:"level"`
	Correct         int    `json:"correct"`
	Total           int    `json:"total"`
	DurationSeconds *int   `json:"duration_seconds"`
	TimeLimit       *int   `json:"time_limit"`
	CurrentLevel    int    `json:"current_level"`
	Completed       bool   `json:"completed"`
	Reason          string `json:"reason,omitempty"`

	PendingApproval bool           `json:"pending_approval,omitempty"`
	Message         string         `json:"message,omitempty"`
	Reward          *rewards.Grant `json:"reward,omitempty"`
}

// Summary is an assignment's progress at a glance.
type Summary struct {
	State            State   `json:"state"`
	MasteredCount    int     `json:"mastered_count"`
	WeakCount        int     `json:"weak_count"`
	UnseenCount      int     `json:"unseen_count"`
	TotalFacts       int     `json:"total_facts"`
	TrainingSessions int     `json:"training_sessions"`
	TestAttempts     int     `json:"test_attempts"`
	CurrentLevel     int     `json:"current_level"`
	RecentAccuracy   float64 `json:"recent_accuracy"`

	PieceName string `json:"piece_name,omitempty"`
	Submitted bool   `json:"submitted,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}
