package mission

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/familyhub/internal/store"
)

// State is an assignment's lifecycle position.
type State string

const (
	StateAssigned        State = "assigned"
	StateTraining        State = "training"
	StateFailed          State = "failed"
	StateCompleted       State = "completed"
	StatePendingApproval State = "pending_approval"
)

var (
	// ErrNotFound is returned when a mission or assignment does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownMissionType is returned when no handler is registered for a
	// mission's type.
	ErrUnknownMissionType = errors.New("unknown mission type")

	// ErrAlreadyAssigned is returned when the user already has the mission.
	ErrAlreadyAssigned = errors.New("mission already assigned")
)

// ErrInvalidState rejects an operation attempted from the wrong state.
// Nothing is written when it is returned.
type ErrInvalidState struct {
	Op      string
	State   State
	Allowed []State
}

func (e *ErrInvalidState) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = string(s)
	}
	return fmt.Sprintf("%s: assignment is %s, must be %s", e.Op, e.State, strings.Join(allowed, " or "))
}

// States from which each operation may run.
var (
	startFrom    = []State{StateAssigned}
	trainingFrom = []State{StateAssigned, StateTraining, StateFailed}
	testFrom     = []State{StateTraining, StateFailed}
	approvalFrom = []State{StatePendingApproval}
)

func requireState(op string, a *store.Assignment, allowed []State) error {
	cur := State(a.State)
	if slices.Contains(allowed, cur) {
		return nil
	}
	return &ErrInvalidState{Op: op, State: cur, Allowed: allowed}
}

// start moves assigned -> training.
func start(a *store.Assignment, now time.Time) error {
	if err := requireState("start", a, startFrom); err != nil {
		return err
	}
	a.State = string(StateTraining)
	a.StartedAt = &now
	return nil
}

// enterTraining lands a training submission in training, stamping
// started_at when it leaves assigned.
func enterTraining(a *store.Assignment, now time.Time) error {
	if err := requireState("submit training", a, trainingFrom); err != nil {
		return err
	}
	if State(a.State) == StateAssigned || a.StartedAt == nil {
		a.StartedAt = &now
	}
	a.State = string(StateTraining)
	return nil
}

// recordTestOutcome applies a graded certification test. A pass raises
// current_level (never lowers it) and completes the mission at maxLevel.
func recordTestOutcome(a *store.Assignment, level, maxLevel int, passed bool, now time.Time) {
	if !passed {
		a.State = string(StateFailed)
		return
	}
	if level > a.CurrentLevel {
		a.CurrentLevel = level
	}
	if level >= maxLevel {
		a.State = string(StateCompleted)
		a.CompletedAt = &now
		return
	}
	a.State = string(StateTraining)
}

// submitForApproval parks an approval mission until an adult reviews it.
func submitForApproval(a *store.Assignment) {
	a.State = string(StatePendingApproval)
}

func approve(a *store.Assignment, now time.Time) error {
	if err := requireState("approve", a, approvalFrom); err != nil {
		return err
	}
	a.State = string(StateCompleted)
	a.CompletedAt = &now
	return nil
}

func reject(a *store.Assignment) error {
	if err := requireState("reject", a, approvalFrom); err != nil {
		return err
	}
	a.State = string(StateTraining)
	return nil
}
