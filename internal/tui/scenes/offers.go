package scenes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/tui/components"
	"github.com/rgehrsitz/viager/internal/tui/tuimsg"
	"github.com/rgehrsitz/viager/internal/tui/tuistyles"
)

// OffersModel lists the offers of the loaded file
type OffersModel struct {
	offers        []domain.Offer
	cards         []*components.OfferCard
	selectedIndex int
	width         int
	height        int
}

// NewOffersModel creates an empty offer list
func NewOffersModel() *OffersModel {
	return &OffersModel{}
}

// SetOffers replaces the listed offers
func (m *OffersModel) SetOffers(offers []domain.Offer) {
	m.offers = offers
	m.cards = make([]*components.OfferCard, len(offers))
	for i, offer := range offers {
		m.cards[i] = components.NewOfferCard(offer).WithWidth(50)
	}
	if m.selectedIndex >= len(m.offers) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *OffersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedOffer returns the reference under the cursor
func (m *OffersModel) SelectedOffer() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.offers) {
		return m.offers[m.selectedIndex].Reference
	}
	return ""
}

// Editing reports whether the scene is capturing free text
func (m *OffersModel) Editing() bool { return false }

// Update handles messages for the offer list
func (m *OffersModel) Update(msg tea.Msg) (*OffersModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.offers)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, len(m.offers)-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		ref := m.SelectedOffer()
		if ref == "" {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.OfferSelectedMsg{Reference: ref} }
	}
	return m, nil
}

// View renders the offer list and the selected offer's card
func (m *OffersModel) View() string {
	if len(m.offers) == 0 {
		return "No offers available.\n\nLoad an offer file with at least one offer."
	}
	for i, card := range m.cards {
		card.SetSelected(i == m.selectedIndex)
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).MarginBottom(1).Render("Offers")
	list := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(44).
		Render(title + "\n" + components.OfferListCompact(m.cards, m.selectedIndex))

	content := lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.cards[m.selectedIndex].Render())
	help := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("↑/k up • ↓/j down • Enter open • g top • G bottom")
	return content + "\n\n" + help
}
