// Package mission runs assigned missions through training, certification
// and completion.
package mission

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/familyhub/internal/facts"
	"github.com/abhisek/familyhub/internal/rewards"
	"github.com/abhisek/familyhub/internal/store"
)

// HintSource looks up the memory aid for a fact.
type HintSource interface {
	Lookup(ctx context.Context, a, b int) string
}

// Config holds the engine's optional collaborators.
type Config struct {
	// Granter receives the reward when a mission completes. Nil skips
	// granting.
	Granter  rewards.Granter
	Hints    HintSource
	Registry *Registry
	Logger   *zap.Logger
	// Rand seeds question draws. Nil uses math/rand/v2's global source.
	Rand *rand.Rand
	Now  func() time.Time
}

// Engine exposes the mission operations over the stores.
type Engine struct {
	missions    store.MissionRepo
	assignments store.AssignmentRepo
	progress    store.ProgressRepo

	granter  rewards.Granter
	hints    HintSource
	registry *Registry
	log      *zap.Logger
	rng      Rand
	now      func() time.Time
}

// NewEngine creates an Engine.
func NewEngine(missions store.MissionRepo, assignments store.AssignmentRepo, progress store.ProgressRepo, cfg Config) *Engine {
	e := &Engine{
		missions:    missions,
		assignments: assignments,
		progress:    progress,
		granter:     cfg.Granter,
		hints:       cfg.Hints,
		registry:    cfg.Registry,
		log:         cfg.Logger,
		now:         cfg.Now,
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.now == nil {
		e.now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.Rand != nil {
		e.rng = &lockedRand{r: cfg.Rand}
	} else {
		e.rng = globalRand{}
	}
	return e
}

// CreateMission validates and stores a mission definition.
func (e *Engine) CreateMission(ctx context.Context, d Definition) (*store.Mission, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if _, err := e.registry.Lookup(d.Type); err != nil {
		return nil, err
	}
	m := d.toMission()
	if err := e.missions.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create mission: %w", err)
	}
	e.log.Info("mission created",
		zap.Int64("mission_id", m.ID),
		zap.String("title", m.Title),
		zap.String("type", m.Type))
	return m, nil
}

// Seed creates each definition whose title does not exist yet and returns
// the ones it created.
func (e *Engine) Seed(ctx context.Context, defs []Definition) ([]store.Mission, error) {
	var created []store.Mission
	for _, d := range defs {
		_, err := e.missions.GetByTitle(ctx, d.Title)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return created, fmt.Errorf("look up %q: %w", d.Title, err)
		}
		m, err := e.CreateMission(ctx, d)
		if err != nil {
			return created, err
		}
		created = append(created, *m)
	}
	return created, nil
}

// Missions lists every mission definition.
func (e *Engine) Missions(ctx context.Context) ([]store.Mission, error) {
	return e.missions.List(ctx)
}

// Assign gives a mission to a user. Each user holds a mission at most once.
func (e *Engine) Assign(ctx context.Context, missionID int64, userID string) (*store.Assignment, error) {
	m, err := e.missions.Get(ctx, missionID)
	if err != nil {
		return nil, notFound(err, "mission %d", missionID)
	}
	if _, err := e.registry.Lookup(m.Type); err != nil {
		return nil, err
	}

	_, err = e.assignments.Find(ctx, missionID, userID)
	if err == nil {
		return nil, fmt.Errorf("mission %d for %s: %w", missionID, userID, ErrAlreadyAssigned)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find assignment: %w", err)
	}

	a := &store.Assignment{
		MissionID:  missionID,
		UserID:     userID,
		State:      string(StateAssigned),
		AssignedAt: e.now(),
	}
	if err := e.assignments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	e.log.Info("mission assigned",
		zap.Int64("assignment_id", a.ID),
		zap.Int64("mission_id", missionID),
		zap.String("user_id", userID))
	return a, nil
}

// Assignments lists a user's assignments.
func (e *Engine) Assignments(ctx context.Context, userID string) ([]store.Assignment, error) {
	return e.assignments.ListByUser(ctx, userID)
}

// Assignment returns one assignment.
func (e *Engine) Assignment(ctx context.Context, id int64) (*store.Assignment, error) {
	a, err := e.assignments.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "assignment %d", id)
	}
	return a, nil
}

// Start moves an assigned mission into training.
func (e *Engine) Start(ctx context.Context, id int64) (*store.Assignment, error) {
	a, err := e.Assignment(ctx, id)
	if err != nil {
		return nil, err
	}
	from := a.State
	if err := start(a, e.now()); err != nil {
		return nil, err
	}
	if err := e.assignments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("save assignment: %w", err)
	}
	e.logTransition(a, from, "start")
	return a, nil
}

// TrainingSession draws practice content. Allowed before the mission is
// formally started.
func (e *Engine) TrainingSession(ctx context.Context, id int64) (*TrainingSession, error) {
	t, h, err := e.turn(ctx, id, "training session", trainingFrom)
	if err != nil {
		return nil, err
	}
	return h.Training(t)
}

// SubmitTraining records a practice sitting and keeps the mission in
// training.
func (e *Engine) SubmitTraining(ctx context.Context, id int64, sub TrainingSubmission) (*TrainingResult, error) {
	t, h, err := e.turn(ctx, id, "submit training", trainingFrom)
	if err != nil {
		return nil, err
	}
	from := t.Assignment.State
	if err := enterTraining(t.Assignment, t.Now); err != nil {
		return nil, err
	}

	res, rec, err := h.SubmitTraining(t, sub)
	if err != nil {
		return nil, err
	}
	if err := e.persist(ctx, t.Assignment, rec); err != nil {
		return nil, err
	}
	e.logTransition(t.Assignment, from, "submit training")
	return res, nil
}

// Test generates a certification test. A level below 1 means the next level
// after the current one.
func (e *Engine) Test(ctx context.Context, id int64, level int) (*TestSession, error) {
	t, h, err := e.turn(ctx, id, "request test", testFrom)
	if err != nil {
		return nil, err
	}
	return h.Test(t, level)
}

// SubmitTest grades a certification test, records it and grants the reward
// if it completes the mission.
func (e *Engine) SubmitTest(ctx context.Context, id int64, sub TestSubmission) (*TestResult, error) {
	t, h, err := e.turn(ctx, id, "submit test", testFrom)
	if err != nil {
		return nil, err
	}
	from := t.Assignment.State

	res, rec, err := h.SubmitTest(t, sub)
	if err != nil {
		return nil, err
	}
	if err := e.persist(ctx, t.Assignment, rec); err != nil {
		return nil, err
	}
	e.logTransition(t.Assignment, from, "submit test")

	if from != string(StateCompleted) && State(t.Assignment.State) == StateCompleted {
		res.Reward = e.grant(ctx, t.Mission, t.Assignment)
	}
	return res, nil
}

// Summary reports an assignment's progress. Allowed in every state.
func (e *Engine) Summary(ctx context.Context, id int64) (*Summary, error) {
	t, h, err := e.turn(ctx, id, "summary", nil)
	if err != nil {
		return nil, err
	}
	return h.Summary(t)
}

// Approve completes a mission waiting for approval and grants its reward.
func (e *Engine) Approve(ctx context.Context, id int64) (*store.Assignment, *rewards.Grant, error) {
	a, err := e.Assignment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	from := a.State
	if err := approve(a, e.now()); err != nil {
		return nil, nil, err
	}
	m, err := e.missions.Get(ctx, a.MissionID)
	if err != nil {
		return nil, nil, notFound(err, "mission %d", a.MissionID)
	}
	if err := e.assignments.Update(ctx, a); err != nil {
		return nil, nil, fmt.Errorf("save assignment: %w", err)
	}
	e.logTransition(a, from, "approve")
	return a, e.grant(ctx, m, a), nil
}

// Reject sends a mission waiting for approval back to training.
func (e *Engine) Reject(ctx context.Context, id int64) (*store.Assignment, error) {
	a, err := e.Assignment(ctx, id)
	if err != nil {
		return nil, err
	}
	from := a.State
	if err := reject(a); err != nil {
		return nil, err
	}
	if err := e.assignments.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("save assignment: %w", err)
	}
	e.logTransition(a, from, "reject")
	return a, nil
}

// Notifications lists the user's assignments they have not been told
// about yet.
func (e *Engine) Notifications(ctx context.Context, userID string) ([]store.Assignment, error) {
	return e.assignments.Unnotified(ctx, userID)
}

// Dismiss marks an assignment's notification as seen.
func (e *Engine) Dismiss(ctx context.Context, id int64) error {
	if err := e.assignments.MarkNotified(ctx, id); err != nil {
		return notFound(err, "assignment %d", id)
	}
	return nil
}

// Mnemonic returns the memory aid for a×b in either operand order.
func (e *Engine) Mnemonic(ctx context.Context, a, b int) string {
	if e.hints != nil {
		return e.hints.Lookup(ctx, a, b)
	}
	return facts.Mnemonic(a, b)
}

// turn loads an assignment, checks the operation is allowed from its state
// and gathers what the handler needs. A nil allowed list skips the check.
func (e *Engine) turn(ctx context.Context, id int64, op string, allowed []State) (*Turn, Handler, error) {
	a, err := e.Assignment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if allowed != nil {
		if err := requireState(op, a, allowed); err != nil {
			return nil, nil, err
		}
	}

	m, err := e.missions.Get(ctx, a.MissionID)
	if err != nil {
		return nil, nil, notFound(err, "mission %d", a.MissionID)
	}
	h, err := e.registry.Lookup(m.Type)
	if err != nil {
		return nil, nil, err
	}

	recs, err := e.progress.List(ctx, a.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list progress: %w", err)
	}

	return &Turn{
		Mission:    m,
		Assignment: a,
		Records:    recs,
		Rand:       e.rng,
		Now:        e.now(),
	}, h, nil
}

// persist records the submission and the assignment's new state together.
func (e *Engine) persist(ctx context.Context, a *store.Assignment, rec *store.ProgressRecord) error {
	if err := e.progress.Commit(ctx, a, rec); err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	return nil
}

// grant hands the mission reward to the granter. Failures are logged and
// do not affect the completed mission.
func (e *Engine) grant(ctx context.Context, m *store.Mission, a *store.Assignment) *rewards.Grant {
	desc := m.RewardDescription
	if desc == "" {
		desc = "Mission reward: " + m.Title
	}
	g := rewards.Grant{
		UserID:      a.UserID,
		Cash:        m.RewardCash,
		XP:          m.RewardXP,
		Icon:        m.RewardIcon,
		Description: desc,
	}
	if e.granter == nil {
		return &g
	}

	if err := e.granter.Grant(ctx, g); err != nil {
		e.log.Error("reward grant failed",
			zap.Int64("assignment_id", a.ID),
			zap.String("user_id", a.UserID),
			zap.Error(err))
		return &g
	}
	e.log.Info("reward granted",
		zap.Int64("assignment_id", a.ID),
		zap.String("user_id", a.UserID),
		zap.Int("cash", g.Cash),
		zap.Int("xp", g.XP))
	return &g
}

func (e *Engine) logTransition(a *store.Assignment, from, op string) {
	e.log.Info("assignment updated",
		zap.Int64("assignment_id", a.ID),
		zap.String("op", op),
		zap.String("from", from),
		zap.String("to", a.State),
		zap.Int("current_level", a.CurrentLevel))
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return err
}

// lockedRand serializes access to a caller-supplied source.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }
