package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/viager/internal/config"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/tui/scenes"
	"github.com/rgehrsitz/viager/internal/wizard"
)

// SessionOpener opens (or restores) the wizard session for an offer. The
// caller decides which store, ledger and submitter back it.
type SessionOpener func(ctx context.Context, offer domain.Offer) (*wizard.Session, error)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	ctx context.Context

	// Configuration and data
	configPath  string
	config      *domain.Configuration
	initialRef  string
	openSession SessionOpener
	session     *wizard.Session

	// Scene models
	offersModel   *scenes.OffersModel
	offerModel    *scenes.OfferModel
	decisionModel *scenes.DecisionModel

	// Last event shown in the status bar
	status string

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model
func NewModel(configPath string, open SessionOpener) Model {
	return Model{
		currentScene:   SceneOffers,
		ctx:            context.Background(),
		configPath:     configPath,
		openSession:    open,
		offersModel:    scenes.NewOffersModel(),
		offerModel:     scenes.NewOfferModel(),
		decisionModel:  scenes.NewDecisionModel(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading offers...",
	}
}

// WithInitialOffer opens the offer with reference ref as soon as the file is loaded
func (m Model) WithInitialOffer(ref string) Model {
	m.initialRef = ref
	return m
}

// WithContext sets the context passed to the session and its stores
func (m Model) WithContext(ctx context.Context) Model {
	if ctx != nil {
		m.ctx = ctx
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// Session returns the active wizard session, if any
func (m Model) Session() *wizard.Session { return m.session }

// CurrentScene returns the scene being displayed
func (m Model) CurrentScene() Scene { return m.currentScene }

// loadConfigCmd returns a command that loads the offer file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// openSessionCmd returns a command that opens the session for offer
func openSessionCmd(ctx context.Context, open SessionOpener, offer domain.Offer) tea.Cmd {
	return func() tea.Msg {
		s, err := open(ctx, offer)
		return SessionReadyMsg{Session: s, Err: err}
	}
}

func (m Model) selectOffer(ref string) (Model, tea.Cmd) {
	if m.config == nil {
		return m, nil
	}
	offer, ok := m.config.FindOffer(ref)
	if !ok {
		m.err = fmt.Errorf("offer %s not found", ref)
		return m, nil
	}
	if m.openSession == nil {
		m.err = fmt.Errorf("no session opener configured")
		return m, nil
	}
	m.loading = true
	m.loadingMessage = "Opening offer " + ref + "..."
	return m, openSessionCmd(m.ctx, m.openSession, *offer)
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneOffers:
		return "Offers"
	case SceneOffer:
		return "Offer"
	case SceneDecision:
		return "Response"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
