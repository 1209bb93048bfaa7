package mission

import (
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/familyhub/internal/store"
)

// Mission types with a built-in handler.
const (
	TypeMultiplication = "multiplication"
	TypePiano          = "piano"
)

// Rand is the randomness handlers draw questions with.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Turn is everything a handler sees for one operation. Handlers may change
// Assignment; the engine persists it along with any returned record.
type Turn struct {
	Mission    *store.Mission
	Assignment *store.Assignment
	// Records are the assignment's progress records, newest first.
	Records []store.ProgressRecord
	Rand    Rand
	Now     time.Time
}

// latestSeq is the sequence of the newest record, or 0.
func (t *Turn) latestSeq() int64 {
	if len(t.Records) == 0 {
		return 0
	}
	return t.Records[0].Sequence
}

// Handler implements the training and test flow of one mission type.
// The engine checks the shared state rules before calling it.
type Handler interface {
	Type() string
	Training(t *Turn) (*TrainingSession, error)
	// SubmitTraining returns the record to append.
	SubmitTraining(t *Turn, sub TrainingSubmission) (*TrainingResult, *store.ProgressRecord, error)
	Test(t *Turn, level int) (*TestSession, error)
	// SubmitTest applies the outcome to t.Assignment and returns the
	// record to append.
	SubmitTest(t *Turn, sub TestSubmission) (*TestResult, *store.ProgressRecord, error)
	Summary(t *Turn) (*Summary, error)
}

// Registry maps mission types to handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates a registry holding hs.
func NewRegistry(hs ...Handler) *Registry {
	r := &Registry{handlers: make(map[string]Handler, len(hs))}
	for _, h := range hs {
		r.Register(h)
	}
	return r
}

// DefaultRegistry holds the multiplication and piano handlers.
func DefaultRegistry() *Registry {
	return NewRegistry(Multiplication{}, Piano{})
}

// Register adds h, replacing any handler of the same type.
func (r *Registry) Register(h Handler) {
	r.handlers[h.Type()] = h
}

// Lookup returns the handler for typ.
func (r *Registry) Lookup(typ string) (Handler, error) {
	h, ok := r.handlers[typ]
	if !ok {
		return nil, fmt.Errorf("%q: %w", typ, ErrUnknownMissionType)
	}
	return h, nil
}

// Types lists the registered mission types, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
