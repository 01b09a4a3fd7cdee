package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nethesap/nethesap/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with app styling. Inputs start blurred;
// the owning screen decides which one has focus.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	Label       string
}

// NewTextInput creates a new styled text input. charLimit <= 0 means no
// limit.
func NewTextInput(label, placeholder string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
		ti.SetWidth(charLimit + 1)
	}
	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
		Label:       label,
	}
}

// Update handles messages. Numeric inputs drop non-digit characters before
// they reach the model.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
			for _, r := range kmsg.Text {
				if r < '0' || r > '9' {
					return t, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and the input.
func (t TextInput) View() string {
	label := theme.Label
	if t.Model.Focused() {
		label = theme.Selected
	}
	view := t.Model.View()
	if t.Label == "" {
		return view
	}
	return label.Render(t.Label) + " " + lipgloss.NewStyle().Foreground(theme.Text).Render(view)
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}
