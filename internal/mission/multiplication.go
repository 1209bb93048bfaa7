package mission

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/familyhub/internal/certify"
	"github.com/abhisek/familyhub/internal/facts"
	"github.com/abhisek/familyhub/internal/mastery"
	"github.com/abhisek/familyhub/internal/session"
	"github.com/abhisek/familyhub/internal/store"
)

// Multiplication is the times-table mission: adaptive practice followed by
// three certification levels.
type Multiplication struct{}

// trainingData is the stored payload of a training record.
type trainingData struct {
	Questions []TrainingAnswer `json:"questions"`
}

// testData is the stored payload of a test record.
type testData struct {
	Level        int               `json:"level"`
	Questions    []certify.Problem `json:"questions"`
	UserAnswers  []int             `json:"user_answers"`
	CorrectCount int               `json:"correct_count"`
	Passed       bool              `json:"passed"`
}

func (Multiplication) Type() string { return TypeMultiplication }

func (Multiplication) Training(t *Turn) (*TrainingSession, error) {
	cls := mastery.Analyze(masteryRecords(t.Records))
	qs := session.NewPlanner(t.Rand).Select(cls, session.DefaultTrainingQuestions)

	prompts := make([]Prompt, len(qs))
	for i, q := range qs {
		prompts[i] = Prompt{A: q.A, B: q.B}
	}
	mastered, weak, unseen := cls.Counts()
	return &TrainingSession{
		Type:          "training",
		Questions:     prompts,
		Total:         len(prompts),
		MasteredCount: mastered,
		WeakCount:     weak,
		UnseenCount:   unseen,
	}, nil
}

func (Multiplication) SubmitTraining(t *Turn, sub TrainingSubmission) (*TrainingResult, *store.ProgressRecord, error) {
	questions := sub.Questions
	if questions == nil {
		questions = []TrainingAnswer{}
	}
	data, err := json.Marshal(trainingData{Questions: questions})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal training data: %w", err)
	}

	correct := 0
	for _, q := range questions {
		if q.Correct {
			correct++
		}
	}
	rec := &store.ProgressRecord{
		AssignmentID:    t.Assignment.ID,
		SessionType:     string(mastery.SessionTraining),
		Data:            data,
		Score:           correct,
		DurationSeconds: sub.DurationSeconds,
	}

	// Classify as if the record were already stored, so the counts include
	// this sitting.
	history := masteryRecords(t.Records)
	pending := toMasteryRecord(*rec)
	pending.Seq = t.latestSeq() + 1
	cls := mastery.Analyze(append(history, pending))
	mastered, weak, unseen := cls.Counts()

	return &TrainingResult{
		Correct:       correct,
		Total:         len(questions),
		ScorePct:      mastery.Percent(correct, len(questions)),
		MasteredCount: mastered,
		WeakCount:     weak,
		UnseenCount:   unseen,
		TotalFacts:    facts.UniverseSize,
	}, rec, nil
}

func (Multiplication) Test(t *Turn, level int) (*TestSession, error) {
	n := certify.NextLevel(t.Assignment.CurrentLevel, level)
	test := certify.Generate(n, t.Rand)
	return &TestSession{
		Type:      "test",
		Level:     test.Level,
		Questions: test.Questions,
		TimeLimit: timeLimit(certify.LevelFor(n)),
		Total:     test.Total,
		Label:     test.Label,
	}, nil
}

func (Multiplication) SubmitTest(t *Turn, sub TestSubmission) (*TestResult, *store.ProgressRecord, error) {
	level := certify.ClampLevel(sub.Level)
	res := certify.Grade(level, sub.Questions, sub.Answers, sub.DurationSeconds)

	questions, answers := sub.Questions, sub.Answers
	if questions == nil {
		questions = []certify.Problem{}
	}
	if answers == nil {
		answers = []int{}
	}
	data, err := json.Marshal(testData{
		Level:        level,
		Questions:    questions,
		UserAnswers:  answers,
		CorrectCount: res.Correct,
		Passed:       res.Passed,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal test data: %w", err)
	}

	recordTestOutcome(t.Assignment, level, certify.MaxLevel, res.Passed, t.Now)

	rec := &store.ProgressRecord{
		AssignmentID:    t.Assignment.ID,
		SessionType:     string(mastery.SessionTest),
		Data:            data,
		Score:           res.Correct,
		DurationSeconds: sub.DurationSeconds,
	}
	return &TestResult{
		Passed:          res.Passed,
		Level:           level,
		Correct:         res.Correct,
		Total:           res.Total,
		DurationSeconds: sub.DurationSeconds,
		TimeLimit:       timeLimit(certify.LevelFor(level)),
		CurrentLevel:    t.Assignment.CurrentLevel,
		Completed:       State(t.Assignment.State) == StateCompleted,
		Reason:          res.Reason,
	}, rec, nil
}

func (Multiplication) Summary(t *Turn) (*Summary, error) {
	recs := masteryRecords(t.Records)
	cls := mastery.Analyze(recs)
	mastered, weak, unseen := cls.Counts()
	return &Summary{
		State:            State(t.Assignment.State),
		MasteredCount:    mastered,
		WeakCount:        weak,
		UnseenCount:      unseen,
		TotalFacts:       facts.UniverseSize,
		TrainingSessions: mastery.CountSessions(recs, mastery.SessionTraining),
		TestAttempts:     mastery.CountSessions(recs, mastery.SessionTest),
		CurrentLevel:     t.Assignment.CurrentLevel,
		RecentAccuracy:   mastery.RecentAccuracy(recs),
		Completed:        State(t.Assignment.State) == StateCompleted,
	}, nil
}

func timeLimit(l certify.Level) *int {
	if !l.Timed() {
		return nil
	}
	v := l.TimeLimit
	return &v
}

// masteryRecords converts stored records for the analyzer. A training
// record whose payload cannot be read still counts as a session, with no
// attempts.
func masteryRecords(recs []store.ProgressRecord) []mastery.Record {
	out := make([]mastery.Record, len(recs))
	for i, r := range recs {
		out[i] = toMasteryRecord(r)
	}
	return out
}

func toMasteryRecord(r store.ProgressRecord) mastery.Record {
	rec := mastery.Record{Seq: r.Sequence, Type: mastery.SessionType(r.SessionType)}
	if rec.Type != mastery.SessionTraining {
		return rec
	}
	var d trainingData
	if err := json.Unmarshal(r.Data, &d); err != nil {
		return rec
	}
	rec.Attempts = make([]mastery.Attempt, len(d.Questions))
	for i, q := range d.Questions {
		rec.Attempts[i] = mastery.Attempt{A: q.A, B: q.B, Correct: q.Correct}
	}
	return rec
}
