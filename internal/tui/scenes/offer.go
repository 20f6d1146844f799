package scenes

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/output"
	"github.com/rgehrsitz/viager/internal/tui/components"
	"github.com/rgehrsitz/viager/internal/tui/tuimsg"
	"github.com/rgehrsitz/viager/internal/tui/tuistyles"
	"github.com/rgehrsitz/viager/internal/wizard"
)

// SliderStep is the move of a plain arrow key
const SliderStep = 5

// OfferModel is the balance slider scene: the seller trades monthly income
// for a larger lump sum and sees the payments recomputed.
type OfferModel struct {
	ctx          context.Context
	session      *wizard.Session
	slider       *components.PercentSlider
	previous     *domain.OfferCalculationResult
	showSchedule bool
	width        int
	height       int
}

// NewOfferModel creates the slider scene
func NewOfferModel() *OfferModel {
	return &OfferModel{ctx: context.Background()}
}

// SetSession binds the scene to a wizard session
func (m *OfferModel) SetSession(ctx context.Context, s *wizard.Session) {
	if ctx != nil {
		m.ctx = ctx
	}
	m.session = s
	m.previous = nil
	m.showSchedule = false
	m.slider = components.NewPercentSlider("Balance", s.Parameters().SliderPercent, SliderStep).
		WithCaptions("more monthly income", "more upfront cash").
		SetFocused(true)
}

// SetSize updates the scene dimensions
func (m *OfferModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Editing reports whether the scene is capturing free text
func (m *OfferModel) Editing() bool { return false }

// Update handles messages for the slider scene
func (m *OfferModel) Update(msg tea.Msg) (*OfferModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.session == nil {
		return m, nil
	}

	current := m.session.Parameters().SliderPercent
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h"))):
		return m, m.moveTo(current - SliderStep)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l"))):
		return m, m.moveTo(current + SliderStep)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+left", "H"))):
		return m, m.moveTo(current - 1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+right", "L"))):
		return m, m.moveTo(current + 1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("home", "0"))):
		return m, m.moveTo(0)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("end", "9"))):
		return m, m.moveTo(100)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("s"))):
		m.showSchedule = !m.showSchedule
		return m, nil
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		return m, func() tea.Msg { return tuimsg.ProceedToDecisionMsg{} }
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
		return m, func() tea.Msg { return tuimsg.BackMsg{} }
	}
	return m, nil
}

func (m *OfferModel) moveTo(pct int) tea.Cmd {
	before := m.session.Result()
	if calculation.ClampSlider(pct) == m.session.Parameters().SliderPercent {
		return nil
	}
	result, err := m.session.SetSlider(m.ctx, pct)
	m.previous = &before
	m.slider.SetValue(m.session.Parameters().SliderPercent)
	if err != nil {
		return func() tea.Msg { return tuimsg.ErrorMsg{Err: err} }
	}
	slider := m.session.Parameters().SliderPercent
	return func() tea.Msg { return tuimsg.SliderChangedMsg{SliderPercent: slider, Result: result} }
}

// View renders the slider, the payment cards and optionally the schedule
func (m *OfferModel) View() string {
	if m.session == nil {
		return "No offer selected.\n\nPick an offer from the list first."
	}

	offer := m.session.Offer()
	result := m.session.Result()

	header := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Your provisional offer "+offer.Reference),
		tuistyles.SubtitleStyle.Render(offerSubtitle(offer)),
	)

	lump := components.NewAmountCard("Lump sum", result.LumpSum).
		WithDescription(output.FormatFraction(result.LumpSumPercent) + " of offer price")
	monthly := components.NewAmountCard("Monthly", result.Monthly).
		WithDescription(fmt.Sprintf("for %d years", offer.ContractDuration))
	total := components.NewAmountCard("Total benefit", result.TotalBenefit).
		WithDescription(output.FormatPercentage(result.NetBenefitPercentage) + " of market value")
	if m.previous != nil {
		lump.WithChange(m.previous.LumpSum, result.LumpSum)
		monthly.WithChange(m.previous.Monthly, result.Monthly)
		total.WithChange(m.previous.TotalBenefit, result.TotalBenefit)
	}
	cards := []*components.MetricCard{
		components.NewAmountCard("Offer price", result.OfferPrice).WithDescription("80% of market value"),
		lump,
		monthly,
		total,
	}

	sections := []string{
		header,
		"",
		tuistyles.BorderStyle.Render(m.slider.Render()),
		"",
		components.MetricGrid(cards, 2),
	}
	if m.showSchedule {
		sections = append(sections, "", m.renderSchedule())
	}
	sections = append(sections, "", lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render("←/→ adjust • 0/9 ends • s schedule • Enter respond • ESC offers"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *OfferModel) renderSchedule() string {
	offer := m.session.Offer()
	rows := calculation.NewOfferCalculator().Schedule(offer.MarketValue, offer.ContractDuration, 10)
	current := m.session.Parameters().SliderPercent

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-7s %-16s %-12s %-16s", "Slider", "Lump sum", "Monthly", "Total")))
	for _, row := range rows {
		line := fmt.Sprintf("%-7s %-16s %-12s %-16s",
			fmt.Sprintf("%d%%", row.SliderPercent),
			output.FormatCurrency(row.Result.LumpSum),
			output.FormatCurrency(row.Result.Monthly),
			output.FormatCurrency(row.Result.TotalBenefit))
		style := tuistyles.TableCellStyle
		if row.SliderPercent == current {
			style = tuistyles.TableHighlightStyle
		}
		b.WriteString("\n" + style.Render(line))
	}
	return b.String()
}

func offerSubtitle(offer domain.Offer) string {
	parts := []string{}
	if offer.Address != "" {
		parts = append(parts, offer.Address)
	}
	parts = append(parts,
		"market value "+output.FormatCurrency(offer.MarketValue),
		fmt.Sprintf("%d years", offer.ContractDuration))
	return strings.Join(parts, " • ")
}
