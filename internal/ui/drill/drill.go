// Package drill is the terminal UI for answering a batch of multiplication
// problems, used for both training sessions and certification tests.
package drill

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/familyhub/internal/ui/components"
)

type Mode int

const (
	// Training gives feedback after every answer and shows the memory aid
	// after a miss.
	Training Mode = iota
	// Test gives no feedback and ends when the time limit runs out.
	Test
)

type Problem struct {
	A, B int
}

type Config struct {
	Mode     Mode
	Title    string
	Problems []Problem
	// TimeLimit of zero means untimed.
	TimeLimit time.Duration
	// Hint returns the memory aid for a×b. Only used in training.
	Hint func(a, b int) string
	Now  func() time.Time
}

// Result is what the learner entered. Answers has one entry per problem;
// nil marks a problem that was skipped or never reached.
type Result struct {
	SessionID string
	Answers   []*int
	Elapsed   time.Duration
	Aborted   bool
}

// Answered returns the non-nil answers in order, cut at the first gap,
// which is the shape a test submission takes.
func (r Result) Answered() []int {
	out := make([]int, 0, len(r.Answers))
	for _, a := range r.Answers {
		if a == nil {
			break
		}
		out = append(out, *a)
	}
	return out
}

type phase int

const (
	phaseAsk phase = iota
	phaseFeedback
	phaseDone
)

type tickMsg time.Time

// advanceMsg moves past the feedback for problem index after a correct
// answer. Stale ones are ignored.
type advanceMsg struct{ index int }

const correctPause = 700 * time.Millisecond

type Model struct {
	cfg     Config
	id      string
	input   components.NumberInput
	answers []*int
	index   int
	phase   phase
	correct int
	// lastCorrect and lastHint describe the feedback on screen.
	lastCorrect bool
	lastHint    string
	start       time.Time
	elapsed     time.Duration
	aborted     bool
	width       int
	height      int
}

func New(cfg Config) Model {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	m := Model{
		cfg:     cfg,
		id:      uuid.NewString(),
		input:   components.NewNumberInput("?", 3),
		answers: make([]*int, len(cfg.Problems)),
		start:   cfg.Now(),
	}
	if len(cfg.Problems) == 0 {
		m.phase = phaseDone
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	if m.phase == phaseDone {
		return tea.Quit
	}
	return tea.Batch(m.input.Init(), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.phase == phaseDone {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		m.elapsed = m.cfg.Now().Sub(m.start)
		if m.timedOut() {
			return m.finish()
		}
		return m, tick()

	case advanceMsg:
		if m.phase == phaseFeedback && m.lastCorrect && msg.index == m.index {
			return m.next()
		}
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m.finish()
		}
		if m.phase == phaseFeedback {
			return m.next()
		}
		if msg.String() == "enter" {
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	p := m.cfg.Problems[m.index]
	v, ok := m.input.Int()
	if ok {
		m.answers[m.index] = &v
	}

	if m.cfg.Mode == Test {
		if !ok {
			return m, nil
		}
		return m.next()
	}

	m.phase = phaseFeedback
	m.lastCorrect = ok && v == p.A*p.B
	if m.lastCorrect {
		m.correct++
		m.lastHint = ""
		idx := m.index
		return m, tea.Tick(correctPause, func(time.Time) tea.Msg { return advanceMsg{index: idx} })
	}
	if m.cfg.Hint != nil {
		m.lastHint = m.cfg.Hint(p.A, p.B)
	}
	return m, nil
}

func (m Model) next() (tea.Model, tea.Cmd) {
	m.input.Reset()
	m.phase = phaseAsk
	m.index++
	if m.index >= len(m.cfg.Problems) {
		return m.finish()
	}
	return m, nil
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	m.elapsed = m.cfg.Now().Sub(m.start)
	m.phase = phaseDone
	return m, tea.Quit
}

func (m Model) timedOut() bool {
	return m.cfg.Mode == Test && m.cfg.TimeLimit > 0 && m.elapsed >= m.cfg.TimeLimit
}

// Done reports whether the drill has ended.
func (m Model) Done() bool { return m.phase == phaseDone }

func (m Model) Result() Result {
	return Result{
		SessionID: m.id,
		Answers:   append([]*int(nil), m.answers...),
		Elapsed:   m.elapsed,
		Aborted:   m.aborted,
	}
}

// Run shows the drill until it finishes, the learner quits, or ctx ends.
func Run(ctx context.Context, cfg Config, opts ...tea.ProgramOption) (Result, error) {
	p := tea.NewProgram(New(cfg), opts...)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-stop:
		}
	}()

	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("run drill: %w", err)
	}
	res := final.(Model).Result()
	if ctx.Err() != nil {
		res.Aborted = true
	}
	return res, nil
}
