package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/familyhub/internal/ui/theme"
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader puts title on the left and status on the right.
func RenderHeader(title, status string, width int) string {
	left := theme.Title.Render("  " + title)
	right := theme.Dim.Render(status)

	gap := width - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return bar(width).Render(left + strings.Repeat(" ", gap) + right)
}

func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key)+
			" "+theme.Dim.Render(h.Description))
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, giving the content all
// the height the bars leave. A zero height skips the padding.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().Width(width)
	if height > 0 {
		h := height - lipgloss.Height(header) - lipgloss.Height(footer)
		if h < 0 {
			h = 0
		}
		body = body.Height(h)
	}
	return header + "\n" + body.Render(content) + "\n" + footer
}
