package drill

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/familyhub/internal/ui/components"
	"github.com/abhisek/familyhub/internal/ui/layout"
	"github.com/abhisek/familyhub/internal/ui/theme"
)

const defaultWidth = 60

func (m Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render draws the full frame as a string.
func (m Model) Render() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	header := layout.RenderHeader(m.cfg.Title, m.status(), width)
	footer := layout.RenderFooter(m.keyHints(), width)
	return layout.RenderFrame(header, m.body(width), footer, width, m.height)
}

func (m Model) status() string {
	if m.cfg.Mode == Training {
		return fmt.Sprintf("★ %d", m.correct)
	}
	if m.cfg.TimeLimit == 0 {
		return "untimed  " + clock(m.elapsed)
	}
	left := m.cfg.TimeLimit - m.elapsed
	if left <= 0 {
		return theme.TimerExpired.Render("time's up")
	}
	return theme.Timer.Render(clock(left))
}

func clock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func (m Model) keyHints() []layout.KeyHint {
	switch m.phase {
	case phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Next"}, {Key: "Esc", Description: "Quit"}}
	case phaseDone:
		return nil
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Answer"}, {Key: "Esc", Description: "Quit"}}
}

func (m Model) body(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	total := len(m.cfg.Problems)

	if m.phase == phaseDone {
		if m.cfg.Mode == Training {
			return center.Render(theme.Title.Render(fmt.Sprintf("\nDone! %d of %d correct.", m.correct, total)))
		}
		return center.Render(theme.Title.Render("\nAll done! Checking your answers..."))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Render(components.ProgressBar{Done: m.index, Total: total, Width: width / 2}.View()))
	b.WriteString("\n\n")

	p := m.cfg.Problems[m.index]
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Problem.Render(fmt.Sprintf("%d × %d", p.A, p.B))))
	b.WriteString("\n\n")

	if m.phase == phaseAsk {
		b.WriteString(center.Render("= " + m.input.View()))
		return b.String()
	}

	if m.lastCorrect {
		b.WriteString(center.Render(theme.Correct.Render("Correct!")))
		return b.String()
	}
	b.WriteString(center.Render(theme.Incorrect.Render(fmt.Sprintf("Not quite. %d × %d = %d", p.A, p.B, p.A*p.B))))
	if m.lastHint != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Mnemonic.Width(width*2/3).Render(m.lastHint)))
	}
	return b.String()
}
