package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/viager/internal/tui/tuistyles"
)

// Choice is one option of a ChoiceList
type Choice struct {
	Value string
	Label string
}

// ChoiceList is a vertical radio list. Cursor is the highlighted row,
// Selected the confirmed one (-1 for none).
type ChoiceList struct {
	Title     string
	Choices   []Choice
	Cursor    int
	Selected  int
	IsFocused bool
}

// NewChoiceList creates a list with nothing selected
func NewChoiceList(title string, choices []Choice) *ChoiceList {
	return &ChoiceList{Title: title, Choices: choices, Selected: -1}
}

// Up moves the cursor up
func (c *ChoiceList) Up() {
	if c.Cursor > 0 {
		c.Cursor--
	}
}

// Down moves the cursor down
func (c *ChoiceList) Down() {
	if c.Cursor < len(c.Choices)-1 {
		c.Cursor++
	}
}

// Confirm selects the row under the cursor and returns its value
func (c *ChoiceList) Confirm() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Choices) {
		return ""
	}
	c.Selected = c.Cursor
	return c.Choices[c.Cursor].Value
}

// Select marks the choice with value as selected and moves the cursor to it
func (c *ChoiceList) Select(value string) {
	c.Selected = -1
	for i, ch := range c.Choices {
		if ch.Value == value {
			c.Selected = i
			c.Cursor = i
			return
		}
	}
}

// SelectedValue returns the selected value or ""
func (c *ChoiceList) SelectedValue() string {
	if c.Selected < 0 || c.Selected >= len(c.Choices) {
		return ""
	}
	return c.Choices[c.Selected].Value
}

// Render returns the styled list
func (c *ChoiceList) Render() string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground).Render(c.Title))
		b.WriteString("\n")
	}
	for i, ch := range c.Choices {
		mark := "( )"
		if i == c.Selected {
			mark = "(•)"
		}
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if c.IsFocused && i == c.Cursor {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		b.WriteString(style.Render(prefix + mark + " " + ch.Label))
		if i < len(c.Choices)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
