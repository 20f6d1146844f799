package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/viager/internal/tui/tuistyles"
)

// PercentSlider is a 0-100 slider moved in whole points
type PercentSlider struct {
	Label       string
	Value       int
	Step        int
	Width       int // width of the bar in cells
	MinCaption  string
	MaxCaption  string
	IsFocused   bool
	Description string
}

// NewPercentSlider creates a slider at value with the given step
func NewPercentSlider(label string, value, step int) *PercentSlider {
	if step <= 0 {
		step = 1
	}
	s := &PercentSlider{Label: label, Step: step, Width: 40}
	s.SetValue(value)
	return s
}

// WithCaptions labels the two ends of the bar
func (p *PercentSlider) WithCaptions(low, high string) *PercentSlider {
	p.MinCaption = low
	p.MaxCaption = high
	return p
}

// WithWidth sets the bar width
func (p *PercentSlider) WithWidth(width int) *PercentSlider {
	p.Width = width
	return p
}

// WithDescription adds a help line under the bar
func (p *PercentSlider) WithDescription(desc string) *PercentSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *PercentSlider) SetFocused(focused bool) *PercentSlider {
	p.IsFocused = focused
	return p
}

// SetValue sets the position, clamped to [0,100]
func (p *PercentSlider) SetValue(value int) {
	p.Value = max(0, min(100, value))
}

// Increment moves the thumb one step right
func (p *PercentSlider) Increment() { p.SetValue(p.Value + p.Step) }

// Decrement moves the thumb one step left
func (p *PercentSlider) Decrement() { p.SetValue(p.Value - p.Step) }

// Render returns the styled slider
func (p *PercentSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(fmt.Sprintf("%d%%", p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderBar(thumbStyle))

	if p.MinCaption != "" || p.MaxCaption != "" {
		gap := max(1, p.Width+2-lipgloss.Width(p.MinCaption)-lipgloss.Width(p.MaxCaption))
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
			Render(p.MinCaption + strings.Repeat(" ", gap) + p.MaxCaption))
	}

	if p.Description != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(p.Description))
	}

	if p.IsFocused {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Italic(true).
			Render(fmt.Sprintf("← → %d points • shift+← → 1 point", p.Step)))
	}

	return content.String()
}

// thumb position in [0, Width-1]
func (p *PercentSlider) thumb() int {
	if p.Width <= 1 {
		return 0
	}
	return (p.Value*(p.Width-1) + 50) / 100
}

func (p *PercentSlider) renderBar(thumbStyle lipgloss.Style) string {
	if p.Width <= 0 {
		return "[]"
	}
	pos := p.thumb()

	var bar strings.Builder
	bar.WriteString("[")
	if pos > 0 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", pos)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := p.Width - pos - 1; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}
