package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.offersModel.SetSize(msg.Width, msg.Height)
		m.offerModel.SetSize(msg.Width, msg.Height)
		m.decisionModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.loading = false
		m.offersModel.SetOffers(msg.Config.Offers)
		switch {
		case m.initialRef != "":
			return m.selectOffer(m.initialRef)
		case len(msg.Config.Offers) == 1:
			return m.selectOffer(msg.Config.Offers[0].Reference)
		}
		return m, nil

	case tuimsg.OfferSelectedMsg:
		return m.selectOffer(msg.Reference)

	case SessionReadyMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.session = msg.Session
		m.offerModel.SetSession(m.ctx, msg.Session)
		m.decisionModel.SetSession(m.ctx, msg.Session)
		flow := msg.Session.Flow()
		m.previousScene = m.currentScene
		if flow.Status() != domain.DecisionNone || flow.Panel() != domain.PanelNone {
			m.currentScene = SceneDecision
		} else {
			m.currentScene = SceneOffer
		}
		m.status = "Opened " + msg.Session.Offer().Reference
		return m, nil

	case tuimsg.ProceedToDecisionMsg:
		m.previousScene = m.currentScene
		m.currentScene = SceneDecision
		return m, nil

	case tuimsg.BackMsg:
		return m.back(), nil

	case tuimsg.SliderChangedMsg:
		m.status = fmt.Sprintf("Slider %d%%", msg.SliderPercent)
		return m, nil

	case tuimsg.DecisionMadeMsg:
		m.status = "Decision: " + string(msg.Status)
		return m, nil

	case tuimsg.SubmissionCompleteMsg:
		var cmd tea.Cmd
		m.decisionModel, cmd = m.decisionModel.Update(msg)
		if msg.Err == nil {
			m.status = "Submitted " + msg.Submission.ID
		}
		return m, cmd
	}

	return m.updateCurrentScene(msg)
}

// back returns to the scene preceding the current one
func (m Model) back() Model {
	switch m.currentScene {
	case SceneDecision:
		m.currentScene = SceneOffer
	case SceneOffer:
		m.currentScene = SceneOffers
	case SceneHelp:
		m.currentScene = m.previousScene
	}
	return m
}

// editing reports whether the current scene captures free text
func (m Model) editing() bool {
	switch m.currentScene {
	case SceneOffers:
		return m.offersModel.Editing()
	case SceneOffer:
		return m.offerModel.Editing()
	case SceneDecision:
		return m.decisionModel.Editing()
	}
	return false
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	if !m.editing() {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			if m.currentScene == SceneHelp {
				return m.back(), nil
			}
			m.previousScene = m.currentScene
			m.currentScene = SceneHelp
			return m, nil
		case "esc":
			if m.currentScene == SceneHelp {
				return m.back(), nil
			}
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneOffers:
		m.offersModel, cmd = m.offersModel.Update(msg)
	case SceneOffer:
		m.offerModel, cmd = m.offerModel.Update(msg)
	case SceneDecision:
		m.decisionModel, cmd = m.decisionModel.Update(msg)
	}
	return m, cmd
}
