package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput is a focused text input that only accepts digits.
type NumberInput struct {
	Model textinput.Model
}

func NewNumberInput(placeholder string, maxDigits int) NumberInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = maxDigits
	ti.Focus()
	return NumberInput{Model: ti}
}

func (n NumberInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update drops printable non-digit keys and forwards everything else.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.Text != "" {
		if strings.IndexFunc(k.Text, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return n, nil
		}
	}
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

func (n NumberInput) View() string {
	return n.Model.View()
}

// Int parses the input. ok is false when the field is empty or not a
// number.
func (n NumberInput) Int() (v int, ok bool) {
	v, err := strconv.Atoi(strings.TrimSpace(n.Model.Value()))
	return v, err == nil
}

func (n *NumberInput) Reset() {
	n.Model.Reset()
}
