package mission

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/familyhub/internal/rewards"
	"github.com/abhisek/familyhub/internal/store"
)

// fakeMissions implements store.MissionRepo in memory.
type fakeMissions struct {
	byID   map[int64]store.Mission
	nextID int64
}

func newFakeMissions() *fakeMissions {
	return &fakeMissions{byID: make(map[int64]store.Mission)}
}

func (f *fakeMissions) Create(_ context.Context, m *store.Mission) error {
	f.nextID++
	m.ID = f.nextID
	f.byID[m.ID] = *m
	return nil
}

func (f *fakeMissions) Get(_ context.Context, id int64) (*store.Mission, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &m, nil
}

func (f *fakeMissions) GetByTitle(_ context.Context, title string) (*store.Mission, error) {
	for _, m := range f.byID {
		if m.Title == title {
			return &m, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeMissions) List(_ context.Context) ([]store.Mission, error) {
	var out []store.Mission
	for _, m := range f.byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeAssignments implements store.AssignmentRepo in memory.
type fakeAssignments struct {
	byID      map[int64]store.Assignment
	nextID    int64
	updates   int
	updateErr error
}

func newFakeAssignments() *fakeAssignments {
	return &fakeAssignments{byID: make(map[int64]store.Assignment)}
}

func (f *fakeAssignments) Create(_ context.Context, a *store.Assignment) error {
	f.nextID++
	a.ID = f.nextID
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAssignments) Get(_ context.Context, id int64) (*store.Assignment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (f *fakeAssignments) Find(_ context.Context, missionID int64, userID string) (*store.Assignment, error) {
	for _, a := range f.byID {
		if a.MissionID == missionID && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeAssignments) ListByUser(_ context.Context, userID string) ([]store.Assignment, error) {
	var out []store.Assignment
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignments) Update(_ context.Context, a *store.Assignment) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[a.ID]; !ok {
		return store.ErrNotFound
	}
	f.updates++
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAssignments) Unnotified(_ context.Context, userID string) ([]store.Assignment, error) {
	var out []store.Assignment
	for _, a := range f.byID {
		if a.UserID == userID && !a.Notified {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignments) MarkNotified(_ context.Context, id int64) error {
	a, ok := f.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	a.Notified = true
	f.byID[id] = a
	return nil
}

// fakeProgress implements store.ProgressRepo in memory. Commit saves the
// assignment through assignments and undoes the append if that fails.
type fakeProgress struct {
	records     []store.ProgressRecord
	seq         int64
	err         error
	assignments *fakeAssignments
}

func (f *fakeProgress) Append(_ context.Context, rec *store.ProgressRecord) error {
	if f.err != nil {
		return f.err
	}
	f.seq++
	rec.ID = f.seq
	rec.Sequence = f.seq
	rec.CreatedAt = time.Now()
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeProgress) Commit(ctx context.Context, a *store.Assignment, rec *store.ProgressRecord) error {
	n := len(f.records)
	if rec != nil {
		if err := f.Append(ctx, rec); err != nil {
			return err
		}
	}
	if err := f.assignments.Update(ctx, a); err != nil {
		f.records = f.records[:n]
		return err
	}
	return nil
}

func (f *fakeProgress) List(_ context.Context, assignmentID int64) ([]store.ProgressRecord, error) {
	var out []store.ProgressRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].AssignmentID == assignmentID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

// recordingGranter captures grants.
type recordingGranter struct {
	mu     sync.Mutex
	grants []rewards.Grant
	err    error
}

func (g *recordingGranter) Grant(_ context.Context, gr rewards.Grant) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grants = append(g.grants, gr)
	return g.err
}

type fixture struct {
	engine      *Engine
	missions    *fakeMissions
	assignments *fakeAssignments
	progress    *fakeProgress
	granter     *recordingGranter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		missions:    newFakeMissions(),
		assignments: newFakeAssignments(),
		granter:     &recordingGranter{},
	}
	f.progress = &fakeProgress{assignments: f.assignments}
	f.engine = NewEngine(f.missions, f.assignments, f.progress, Config{
		Granter: f.granter,
		Rand:    rand.New(rand.NewPCG(7, 11)),
	})
	return f
}

// assign creates the seed mission of the given type and assigns it to kid.
func (f *fixture) assign(t *testing.T, typ string) *store.Assignment {
	t.Helper()
	ctx := context.Background()
	for _, d := range Seeds() {
		if d.Type != typ {
			continue
		}
		m, err := f.engine.CreateMission(ctx, d)
		if err != nil {
			t.Fatalf("create mission: %v", err)
		}
		a, err := f.engine.Assign(ctx, m.ID, "kid")
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		return a
	}
	t.Fatalf("no seed mission of type %s", typ)
	return nil
}

func (f *fixture) state(t *testing.T, id int64) State {
	t.Helper()
	a, err := f.assignments.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	return State(a.State)
}

func perfectAnswers(ts *TestSession) []int {
	out := make([]int, len(ts.Questions))
	for i, q := range ts.Questions {
		out[i] = q.A * q.B
	}
	return out
}

func secs(n int) *int { return &n }

func isInvalidState(err error) bool {
	var ise *ErrInvalidState
	return errors.As(err, &ise)
}
