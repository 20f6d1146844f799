package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneOffers:
		content = m.offersModel.View()
	case SceneOffer:
		content = m.offerModel.View()
	case SceneDecision:
		content = m.decisionModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(max(contentHeight, 0)).Render(content),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Viager - Provisional Offer")

	breadcrumb := m.currentScene.String()
	if m.session != nil {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.session.Offer().Reference)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	if m.editing() {
		shortcuts = []string{formatShortcut("ctrl+c", "quit")}
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.status != "" {
		status := SubtitleStyle.Render(m.status)
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(status)-4))
		statusText = statusText + spacer + status
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render("⠋ " + message))
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(fmt.Sprintf("Error: %s", m.err.Error())) +
		"\n\n" + SubtitleStyle.Render("Press any key to continue...")
	return m.renderApp(content)
}

// helpMarkdown is the help screen source, rendered with glamour
const helpMarkdown = `# Keyboard shortcuts

| Keys | Action |
|------|--------|
| ↑/↓ Enter | pick an offer |
| ←/→ | move the balance slider by 5 points |
| shift+←/→ | move the slider by 1 point |
| 0 / 9 | slider to 0% or 100% |
| s | show the slider schedule |
| Enter | continue to your response |
| a t d | accept, talk to an advisor, decline |
| Ctrl+S | submit the decline form |
| ESC | go back |
| ? / q | help / quit |

Your choices are saved as you go: you can quit and pick up where you left off.
`

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	wrap := max(m.width-8, 40)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		if out, err := renderer.Render(helpMarkdown); err == nil {
			return BorderStyle.Render(strings.TrimSpace(out))
		}
	}
	return BorderStyle.Render(helpMarkdown)
}
