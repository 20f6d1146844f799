package scenes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/viager/internal/decision"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/output"
	"github.com/rgehrsitz/viager/internal/tui/components"
	"github.com/rgehrsitz/viager/internal/tui/tuimsg"
	"github.com/rgehrsitz/viager/internal/tui/tuistyles"
	"github.com/rgehrsitz/viager/internal/wizard"
)

type decisionFocus int

const (
	focusAdvisor decisionFocus = iota
	focusActions
	focusReasons
	focusDetails
)

// Action is one of the three responses offered to the seller
type Action int

const (
	ActionAccept Action = iota
	ActionSpeak
	ActionDecline
)

func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "Accept offer"
	case ActionSpeak:
		return "Speak to an advisor"
	case ActionDecline:
		return "Decline"
	default:
		return "Unknown"
	}
}

var actions = []Action{ActionAccept, ActionSpeak, ActionDecline}

// DecisionModel is the response scene: advisor choice, then accept, speak
// to someone or decline with a reason.
type DecisionModel struct {
	ctx     context.Context
	session *wizard.Session

	focus        decisionFocus
	advisorList  *components.ChoiceList
	actionCursor int
	reasonList   *components.ChoiceList
	details      textinput.Model

	notice     string
	err        error
	submission *domain.Submission
	submitErr  error
	submitting bool

	width  int
	height int
}

// NewDecisionModel creates the response scene
func NewDecisionModel() *DecisionModel {
	reasons := make([]components.Choice, len(domain.DeclineReasons))
	for i, r := range domain.DeclineReasons {
		reasons[i] = components.Choice{Value: string(r), Label: r.Label()}
	}

	details := textinput.New()
	details.Placeholder = "Anything you would like to add (optional)"
	details.CharLimit = 1000
	details.Width = 60

	return &DecisionModel{
		ctx: context.Background(),
		advisorList: components.NewChoiceList("Before responding, have you discussed this offer?", []components.Choice{
			{Value: string(domain.AdvisorChoiceShared), Label: "Yes, I shared it with family or an advisor"},
			{Value: string(domain.AdvisorChoiceProceed), Label: "No, I am proceeding on my own"},
		}),
		reasonList: components.NewChoiceList("Why are you declining?", reasons),
		details:    details,
	}
}

// SetSession binds the scene to a wizard session and mirrors its saved state
func (m *DecisionModel) SetSession(ctx context.Context, s *wizard.Session) {
	if ctx != nil {
		m.ctx = ctx
	}
	m.session = s
	m.notice = ""
	m.err = nil
	m.submission = nil
	m.submitErr = nil
	m.submitting = false
	if sub, ok := s.Submitted(); ok {
		m.submission = &sub
	}

	flow := s.Flow()
	m.advisorList.Select(string(flow.AdvisorChoice()))
	m.reasonList.Select(string(flow.Decline().Reason))
	m.details.SetValue(flow.Decline().Details)

	switch {
	case flow.Panel() == domain.PanelDeclining:
		m.setFocus(focusReasons)
	case flow.AdvisorChoice() != domain.AdvisorChoiceUnset:
		m.setFocus(focusActions)
	default:
		m.setFocus(focusAdvisor)
	}
}

// SetSize updates the scene dimensions
func (m *DecisionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Editing reports whether keystrokes go to the details field
func (m *DecisionModel) Editing() bool { return m.focus == focusDetails }

// Submission returns the completed submission, if any
func (m *DecisionModel) Submission() (domain.Submission, bool) {
	if m.submission == nil {
		return domain.Submission{}, false
	}
	return *m.submission, true
}

// Err returns the last rejected action
func (m *DecisionModel) Err() error { return m.err }

func (m *DecisionModel) setFocus(f decisionFocus) {
	m.focus = f
	m.advisorList.IsFocused = f == focusAdvisor
	m.reasonList.IsFocused = f == focusReasons
	if f == focusDetails {
		m.details.Focus()
	} else {
		m.details.Blur()
	}
}

// Update handles messages for the response scene
func (m *DecisionModel) Update(msg tea.Msg) (*DecisionModel, tea.Cmd) {
	if m.session == nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case tuimsg.SubmissionCompleteMsg:
		m.submitting = false
		if msg.Err != nil {
			m.submitErr = msg.Err
			return m, nil
		}
		sub := msg.Submission
		m.session.MarkSubmitted(sub)
		m.submission = &sub
		m.submitErr = nil
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.focus == focusDetails {
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *DecisionModel) handleKeyPress(msg tea.KeyMsg) (*DecisionModel, tea.Cmd) {
	flow := m.session.Flow()
	m.err = nil

	if flow.Status().Final() {
		if m.submitErr != nil && key.Matches(msg, key.NewBinding(key.WithKeys("r"))) {
			return m, m.submit()
		}
		return m, nil
	}

	if flow.Panel() == domain.PanelDeclining {
		return m.handleDeclineForm(msg)
	}

	if flow.Panel() == domain.PanelSpeaking {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "backspace"))):
			return m, m.apply(func(f *decision.Flow) error { return f.ReturnToChoices() })
		case m.submitErr != nil && key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
			return m, m.submit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("tab"))):
		if m.focus == focusAdvisor {
			m.setFocus(focusActions)
		} else {
			m.setFocus(focusAdvisor)
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		return m, func() tea.Msg { return tuimsg.BackMsg{} }

	case key.Matches(msg, key.NewBinding(key.WithKeys("a"))):
		return m, m.run(ActionAccept)
	case key.Matches(msg, key.NewBinding(key.WithKeys("t"))):
		return m, m.run(ActionSpeak)
	case key.Matches(msg, key.NewBinding(key.WithKeys("d"))):
		return m, m.run(ActionDecline)
	}

	if m.focus == focusAdvisor {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			m.advisorList.Up()
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			m.advisorList.Down()
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter", " "))):
			choice := domain.AdvisorChoice(m.advisorList.Confirm())
			cmd := m.apply(func(f *decision.Flow) error { return f.SelectAdvisorChoice(choice) })
			if m.err == nil {
				m.setFocus(focusActions)
			}
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "up", "h", "k"))):
		if m.actionCursor > 0 {
			m.actionCursor--
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "down", "l", "j"))):
		if m.actionCursor < len(actions)-1 {
			m.actionCursor++
		}
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter", " "))):
		return m, m.run(actions[m.actionCursor])
	}
	return m, nil
}

func (m *DecisionModel) handleDeclineForm(msg tea.KeyMsg) (*DecisionModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.setFocus(focusActions)
		return m, m.apply(func(f *decision.Flow) error { return f.ReturnToChoices() })

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
		return m, m.submitDecline()

	case key.Matches(msg, key.NewBinding(key.WithKeys("tab", "shift+tab"))):
		if m.focus == focusDetails {
			m.setFocus(focusReasons)
		} else {
			m.setFocus(focusDetails)
		}
		return m, nil
	}

	if m.focus == focusDetails {
		if key.Matches(msg, key.NewBinding(key.WithKeys("enter"))) {
			return m, m.submitDecline()
		}
		var cmd tea.Cmd
		m.details, cmd = m.details.Update(msg)
		m.session.Flow().Decline().SetDetails(m.details.Value())
		return m, cmd
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.reasonList.Up()
	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.reasonList.Down()
	case key.Matches(msg, key.NewBinding(key.WithKeys("enter", " "))):
		reason := domain.DeclineReason(m.reasonList.Confirm())
		cmd := m.apply(func(f *decision.Flow) error { return f.Decline().SetReason(reason) })
		if m.err == nil {
			m.setFocus(focusDetails)
		}
		return m, cmd
	}
	return m, nil
}

// run performs one of the three response actions
func (m *DecisionModel) run(a Action) tea.Cmd {
	switch a {
	case ActionAccept:
		var acceptance decision.Acceptance
		cmd := m.apply(func(f *decision.Flow) error {
			var err error
			acceptance, err = f.Accept()
			return err
		})
		if m.err != nil {
			return cmd
		}
		m.notice = "Offer accepted. Your reference number is " + acceptance.OfferReference + "."
		return tea.Batch(cmd, decided(domain.DecisionAccepted), m.submit())

	case ActionSpeak:
		cmd := m.apply(func(f *decision.Flow) error { return f.SpeakToHuman() })
		if m.err != nil {
			return cmd
		}
		return tea.Batch(cmd, decided(domain.DecisionSpeakingToAdvisor), m.submit())

	case ActionDecline:
		cmd := m.apply(func(f *decision.Flow) error { return f.BeginDecline() })
		if m.err == nil {
			m.setFocus(focusReasons)
		}
		return cmd
	}
	return nil
}

func (m *DecisionModel) submitDecline() tea.Cmd {
	m.session.Flow().Decline().SetDetails(m.details.Value())
	cmd := m.apply(func(f *decision.Flow) error {
		_, err := f.SubmitDecline()
		return err
	})
	if m.err != nil {
		if errors.Is(m.err, decision.ErrDeclineReasonRequired) {
			m.setFocus(focusReasons)
		}
		return cmd
	}
	m.setFocus(focusActions)
	m.notice = "Thank you. Your response has been recorded."
	return tea.Batch(cmd, decided(domain.DecisionDeclined), m.submit())
}

// apply runs a transition through the session so the new state is saved.
// Rejected transitions stay on the scene; storage failures go to the root.
func (m *DecisionModel) apply(transition func(f *decision.Flow) error) tea.Cmd {
	var rejected error
	err := m.session.Apply(m.ctx, func(f *decision.Flow) error {
		rejected = transition(f)
		return rejected
	})
	if rejected != nil {
		m.err = rejected
		return nil
	}
	if err != nil {
		return func() tea.Msg { return tuimsg.ErrorMsg{Err: err} }
	}
	return nil
}

// submit snapshots the response here, on the update loop, and only sends
// the immutable copy from the command goroutine
func (m *DecisionModel) submit() tea.Cmd {
	sub, err := m.session.Prepare()
	if err != nil {
		m.submitErr = err
		return nil
	}
	m.submitting = true
	s, ctx := m.session, m.ctx
	return func() tea.Msg {
		return tuimsg.SubmissionCompleteMsg{Submission: sub, Err: s.Send(ctx, sub)}
	}
}

func decided(status domain.DecisionStatus) tea.Cmd {
	return func() tea.Msg { return tuimsg.DecisionMadeMsg{Status: status} }
}

// View renders the response scene
func (m *DecisionModel) View() string {
	if m.session == nil {
		return "No offer selected.\n\nPick an offer from the list first."
	}
	flow := m.session.Flow()
	offer := m.session.Offer()
	result := m.session.Result()

	sections := []string{
		lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Respond to offer " + offer.Reference),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("Lump sum %s • %s per month for %d years",
			output.FormatCurrency(result.LumpSum), output.FormatCurrency(result.Monthly), offer.ContractDuration)),
		"",
	}

	if !flow.Status().Final() {
		sections = append(sections, tuistyles.BorderStyle.Render(m.advisorList.Render()), "")
		if flow.ShowGuidance() {
			sections = append(sections, tuistyles.InfoStyle.Render(guidanceText(flow.AdvisorChoice())), "")
		}
		sections = append(sections, m.renderActions(flow), "")
	}

	switch flow.Panel() {
	case domain.PanelAccepted:
		sections = append(sections, m.renderAccepted(flow))
	case domain.PanelSpeaking:
		sections = append(sections, m.renderSpeaking(offer))
	case domain.PanelDeclining:
		if !flow.Status().Final() {
			sections = append(sections, m.renderDeclineForm())
		}
	}
	if flow.Status() == domain.DecisionDeclined {
		sections = append(sections, m.renderDeclined(flow))
	}

	if m.err != nil {
		sections = append(sections, "", tuistyles.ErrorStyle.Render(m.err.Error()))
	}
	sections = append(sections, "", m.renderSubmissionStatus())
	sections = append(sections, "", lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(m.helpLine(flow)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func guidanceText(choice domain.AdvisorChoice) string {
	if choice == domain.AdvisorChoiceShared {
		return "Good. Take the time you need: this offer stays available while you think it over."
	}
	return "A viager is a long-term commitment. You can speak to an advisor at no cost before deciding."
}

func (m *DecisionModel) renderActions(flow *decision.Flow) string {
	enabled := map[Action]bool{
		ActionAccept:  flow.CanAccept(),
		ActionSpeak:   flow.CanSpeakToHuman(),
		ActionDecline: flow.CanDecline(),
	}
	buttons := make([]string, len(actions))
	for i, a := range actions {
		style := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(tuistyles.ColorBorder)
		switch {
		case !enabled[a]:
			style = style.Foreground(tuistyles.ColorMuted).Faint(true)
		case m.focus == focusActions && i == m.actionCursor:
			style = style.Bold(true).Foreground(tuistyles.ColorAccent).BorderForeground(tuistyles.ColorAccent)
		}
		buttons[i] = style.Render(a.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m *DecisionModel) renderAccepted(flow *decision.Flow) string {
	body := tuistyles.SuccessStyle.Render("Offer accepted") + "\n\n" +
		"Your reference number is " + lipgloss.NewStyle().Bold(true).Render(flow.OfferReference()) + ".\n" +
		"An advisor will contact you to prepare the deed."
	return tuistyles.ActiveBorderStyle.Render(body)
}

func (m *DecisionModel) renderSpeaking(offer domain.Offer) string {
	phone := offer.AdvisorPhone
	if phone == "" {
		phone = "your usual contact"
	}
	body := lipgloss.NewStyle().Bold(true).Render("Speak to an advisor") + "\n\n" +
		"Call " + lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorAccent).Render(phone) +
		" and quote reference " + offer.Reference + ".\n" +
		"We have also asked an advisor to call you back."
	return tuistyles.ActiveBorderStyle.Render(body)
}

func (m *DecisionModel) renderDeclineForm() string {
	var b strings.Builder
	b.WriteString(m.reasonList.Render())
	b.WriteString("\n\n")
	label := tuistyles.ParameterLabelStyle
	if m.focus == focusDetails {
		label = label.Foreground(tuistyles.ColorPrimary)
	}
	b.WriteString(label.Render("Details"))
	b.WriteString("\n")
	b.WriteString(m.details.View())
	return tuistyles.ActiveBorderStyle.Render(b.String())
}

func (m *DecisionModel) renderDeclined(flow *decision.Flow) string {
	payload := flow.Payload()
	body := lipgloss.NewStyle().Bold(true).Render("Offer declined") + "\n\n" +
		"Reason: " + payload.DeclineReason.Label()
	if payload.DeclineDetails != "" {
		body += "\nDetails: " + payload.DeclineDetails
	}
	return tuistyles.BorderStyle.Render(body)
}

func (m *DecisionModel) renderSubmissionStatus() string {
	switch {
	case m.submitting:
		return tuistyles.InfoStyle.Render("Sending your response...")
	case m.submitErr != nil:
		return tuistyles.ErrorStyle.Render("Could not send your response: " + m.submitErr.Error() + " (r to retry)")
	case m.submission != nil:
		msg := "Response sent (" + m.submission.ID + ")"
		if m.notice != "" {
			msg = m.notice + " " + msg
		}
		return tuistyles.SuccessStyle.Render(msg)
	case m.notice != "":
		return tuistyles.InfoStyle.Render(m.notice)
	}
	return ""
}

func (m *DecisionModel) helpLine(flow *decision.Flow) string {
	switch {
	case flow.Status().Final():
		return "q quit"
	case flow.Panel() == domain.PanelDeclining:
		return "↑/↓ reason • Enter choose • Tab details • Ctrl+S submit • ESC back to choices"
	case flow.Panel() == domain.PanelSpeaking:
		return "ESC back to choices"
	}
	return "↑/↓ choose • Enter confirm • Tab switch • a accept • t talk • d decline • ESC slider"
}
