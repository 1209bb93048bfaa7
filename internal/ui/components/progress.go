package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/familyhub/internal/ui/theme"
)

// ProgressBar renders done/total as a filled bar followed by "done/total".
type ProgressBar struct {
	Done  int
	Total int
	Width int
}

func (p ProgressBar) View() string {
	w := p.Width
	if w < 4 {
		w = 4
	}
	filled := 0
	if p.Total > 0 {
		filled = min(max(w*p.Done/p.Total, 0), w)
	}
	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", w-filled)) +
		theme.Dim.Render(fmt.Sprintf("  %d/%d", p.Done, p.Total))
}
