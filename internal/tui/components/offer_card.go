package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/tui/tuistyles"
)

// OfferCard summarises an offer for the selection list
type OfferCard struct {
	Offer      domain.Offer
	IsSelected bool
	Width      int
}

// NewOfferCard creates a card for offer
func NewOfferCard(offer domain.Offer) *OfferCard {
	return &OfferCard{Offer: offer, Width: 60}
}

// SetSelected marks the card as selected
func (c *OfferCard) SetSelected(selected bool) *OfferCard {
	c.IsSelected = selected
	return c
}

// WithWidth sets the card width
func (c *OfferCard) WithWidth(width int) *OfferCard {
	c.Width = width
	return c
}

// Render returns the bordered card
func (c *OfferCard) Render() string {
	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Offer.Reference))
	if c.Offer.Address != "" {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.Offer.Address))
	}
	content.WriteString("\n\n")
	for _, h := range c.highlights() {
		content.WriteString("• " + h + "\n")
	}

	border := tuistyles.ColorBorder
	if c.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(c.Width).
		Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a single-line version for lists
func (c *OfferCard) RenderCompact() string {
	name := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Offer.Reference)
	detail := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
		Render(fmt.Sprintf("%s • %d years", tuistyles.FormatCurrency(c.Offer.MarketValue), c.Offer.ContractDuration))
	return name + " " + detail
}

func (c *OfferCard) highlights() []string {
	h := []string{
		"Market value " + tuistyles.FormatCurrency(c.Offer.MarketValue),
		fmt.Sprintf("Contract duration %d years", c.Offer.ContractDuration),
	}
	if c.Offer.AdvisorPhone != "" {
		h = append(h, "Advisor "+c.Offer.AdvisorPhone)
	}
	return h
}

// OfferListCompact renders the compact list with a cursor on selectedIndex
func OfferListCompact(cards []*OfferCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No offers available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}
	return strings.Join(rendered, "\n")
}
