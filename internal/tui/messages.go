package tui

import (
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/tui/tuimsg"
	"github.com/rgehrsitz/viager/internal/wizard"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneOffers Scene = iota
	SceneOffer
	SceneDecision
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ConfigLoadedMsg signals the offer file has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// SessionReadyMsg carries a freshly opened (or restored) wizard session
type SessionReadyMsg struct {
	Session *wizard.Session
	Err     error
}

// ErrorMsg displays an error to the user
type ErrorMsg = tuimsg.ErrorMsg
