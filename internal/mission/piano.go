package mission

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/familyhub/internal/mastery"
	"github.com/abhisek/familyhub/internal/store"
)

// Piano is a performance mission: practice happens away from the app and
// an adult approves the performance.
type Piano struct{}

type pianoData struct {
	PieceName string `json:"piece_name,omitempty"`
	Practiced bool   `json:"practiced,omitempty"`
	Submitted bool   `json:"submitted,omitempty"`
}

func (Piano) Type() string { return TypePiano }

func pieceName(m *store.Mission) string {
	if s, ok := m.Config["piece_name"].(string); ok && s != "" {
		return s
	}
	return "Unknown piece"
}

func (Piano) Training(t *Turn) (*TrainingSession, error) {
	desc, _ := t.Mission.Config["description"].(string)
	if desc == "" {
		desc = "Practice your piece!"
	}
	return &TrainingSession{
		Type:        "training",
		PieceName:   pieceName(t.Mission),
		Description: desc,
		Message:     "Practice your piece, then take the test when you're ready to perform.",
	}, nil
}

func (Piano) SubmitTraining(t *Turn, sub TrainingSubmission) (*TrainingResult, *store.ProgressRecord, error) {
	data, err := json.Marshal(pianoData{PieceName: pieceName(t.Mission), Practiced: true})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal practice data: %w", err)
	}
	rec := &store.ProgressRecord{
		AssignmentID:    t.Assignment.ID,
		SessionType:     string(mastery.SessionTraining),
		Data:            data,
		DurationSeconds: sub.DurationSeconds,
	}
	return &TrainingResult{
		Message: "Practice logged. Keep going, and take the test when you're ready.",
	}, rec, nil
}

func (Piano) Test(t *Turn, _ int) (*TestSession, error) {
	return &TestSession{
		Type:      "test",
		PieceName: pieceName(t.Mission),
		Message:   "Perform the piece for a parent, then submit it for approval.",
	}, nil
}

func (Piano) SubmitTest(t *Turn, sub TestSubmission) (*TestResult, *store.ProgressRecord, error) {
	piece := sub.PieceName
	if piece == "" {
		piece = pieceName(t.Mission)
	}
	data, err := json.Marshal(pianoData{PieceName: piece, Submitted: true})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal performance data: %w", err)
	}

	submitForApproval(t.Assignment)

	rec := &store.ProgressRecord{
		AssignmentID:    t.Assignment.ID,
		SessionType:     string(mastery.SessionTest),
		Data:            data,
		DurationSeconds: sub.DurationSeconds,
	}
	return &TestResult{
		DurationSeconds: sub.DurationSeconds,
		CurrentLevel:    t.Assignment.CurrentLevel,
		PendingApproval: true,
		Message:         "Submitted! An admin will review your performance.",
	}, rec, nil
}

func (Piano) Summary(t *Turn) (*Summary, error) {
	recs := masteryRecords(t.Records)
	state := State(t.Assignment.State)
	return &Summary{
		State:            state,
		TrainingSessions: mastery.CountSessions(recs, mastery.SessionTraining),
		TestAttempts:     mastery.CountSessions(recs, mastery.SessionTest),
		CurrentLevel:     t.Assignment.CurrentLevel,
		PieceName:        pieceName(t.Mission),
		Submitted:        state == StatePendingApproval || state == StateCompleted,
		Completed:        state == StateCompleted,
	}, nil
}
