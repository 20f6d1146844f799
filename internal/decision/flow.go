// Package decision implements the response step of the provisional-offer
// wizard: the advisor acknowledgement gate, the three response actions and
// the decline form.
package decision

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/viager/internal/domain"
)

var (
	ErrAdvisorChoiceRequired = errors.New("an advisor choice must be made first")
	ErrInvalidAdvisorChoice  = errors.New("invalid advisor choice")
	ErrDeclineReasonRequired = errors.New("a decline reason is required")
	ErrInvalidDeclineReason  = errors.New("invalid decline reason")
	ErrDeclineFormClosed     = errors.New("decline form is not open")
	ErrDecisionFinal         = errors.New("a final decision has already been made")
)

// Stage is the position of the flow in its state machine
type Stage int

const (
	StageAwaitingAdvisorChoice Stage = iota
	StageAdvisorChoiceMade
	StageAccepted
	StageDeclining
	StageSpeakingToHuman
	StageDeclined
)

func (s Stage) String() string {
	switch s {
	case StageAwaitingAdvisorChoice:
		return "AwaitingAdvisorChoice"
	case StageAdvisorChoiceMade:
		return "AdvisorChoiceMade"
	case StageAccepted:
		return "Accepted"
	case StageDeclining:
		return "Declining"
	case StageSpeakingToHuman:
		return "SpeakingToHuman"
	case StageDeclined:
		return "Declined"
	default:
		return "Unknown"
	}
}

// Acceptance is produced when the offer is accepted
type Acceptance struct {
	OfferReference string `json:"offer_reference"`
}

// Flow is the decision state machine of one wizard pass.
// All transitions are synchronous and perform no I/O.
type Flow struct {
	offerReference string
	advisorChoice  domain.AdvisorChoice
	status         domain.DecisionStatus
	panel          domain.Panel
	decline        DeclineSubmission
}

// NewFlow creates a flow in its initial state
func NewFlow(offerReference string) *Flow {
	return &Flow{
		offerReference: offerReference,
		status:         domain.DecisionNone,
		panel:          domain.PanelNone,
	}
}

// RestoreFlow rebuilds a flow from previously saved state. Unknown values in
// the saved state are dropped rather than rejected, as is any status the
// transitions could not have produced from the saved choice and reason.
func RestoreFlow(offerReference string, saved *domain.WizardDecisionState) *Flow {
	f := NewFlow(offerReference)
	if saved == nil {
		return f
	}
	if saved.AdvisorChoice.Valid() {
		f.advisorChoice = saved.AdvisorChoice
	}
	if saved.DeclineReason.Valid() {
		f.decline.Reason = saved.DeclineReason
	}
	f.decline.Details = saved.DeclineDetails

	switch saved.DecisionStatus {
	case domain.DecisionAccepted:
		if f.advisorChoice.Valid() {
			f.status = domain.DecisionAccepted
			f.panel = domain.PanelAccepted
			return f
		}
	case domain.DecisionDeclined:
		if f.decline.CanSubmit() {
			f.status = domain.DecisionDeclined
			f.panel = domain.PanelDeclining
			return f
		}
	case domain.DecisionSpeakingToAdvisor:
		if f.advisorChoice.Valid() {
			f.status = domain.DecisionSpeakingToAdvisor
		}
	}

	switch saved.Panel {
	case domain.PanelDeclining:
		f.panel = domain.PanelDeclining
	case domain.PanelSpeaking:
		if f.status == domain.DecisionSpeakingToAdvisor {
			f.panel = domain.PanelSpeaking
		}
	}
	return f
}

// OfferReference returns the reference of the offer being answered
func (f *Flow) OfferReference() string { return f.offerReference }

// AdvisorChoice returns the recorded advisor choice
func (f *Flow) AdvisorChoice() domain.AdvisorChoice { return f.advisorChoice }

// Status returns the decision status
func (f *Flow) Status() domain.DecisionStatus { return f.status }

// Panel returns the section currently shown below the actions
func (f *Flow) Panel() domain.Panel { return f.panel }

// Decline exposes the decline form
func (f *Flow) Decline() *DeclineSubmission { return &f.decline }

// Stage maps the flow's fields onto the state machine
func (f *Flow) Stage() Stage {
	switch {
	case f.status == domain.DecisionAccepted:
		return StageAccepted
	case f.status == domain.DecisionDeclined:
		return StageDeclined
	case f.panel == domain.PanelDeclining:
		return StageDeclining
	case f.panel == domain.PanelSpeaking:
		return StageSpeakingToHuman
	case f.advisorChoice.Valid():
		return StageAdvisorChoiceMade
	default:
		return StageAwaitingAdvisorChoice
	}
}

// SelectAdvisorChoice records whether the seller consulted someone
func (f *Flow) SelectAdvisorChoice(choice domain.AdvisorChoice) error {
	if f.status.Final() {
		return ErrDecisionFinal
	}
	if !choice.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAdvisorChoice, choice)
	}
	f.advisorChoice = choice
	return nil
}

// CanAccept reports whether the accept action is enabled
func (f *Flow) CanAccept() bool {
	return f.advisorChoice.Valid() && !f.status.Final()
}

// CanSpeakToHuman reports whether the speak-to-advisor action is enabled
func (f *Flow) CanSpeakToHuman() bool {
	return f.advisorChoice.Valid() && !f.status.Final()
}

// CanDecline reports whether the decline form can be opened. Unlike the
// other actions it does not wait for an advisor choice.
func (f *Flow) CanDecline() bool {
	return !f.status.Final()
}

// ShowGuidance reports whether the "choose a response" banner should be shown
func (f *Flow) ShowGuidance() bool {
	return f.advisorChoice.Valid() && f.status == domain.DecisionNone
}

// Accept accepts the offer. Terminal.
func (f *Flow) Accept() (Acceptance, error) {
	if f.status.Final() {
		return Acceptance{}, ErrDecisionFinal
	}
	if !f.advisorChoice.Valid() {
		return Acceptance{}, ErrAdvisorChoiceRequired
	}
	f.status = domain.DecisionAccepted
	f.panel = domain.PanelAccepted
	return Acceptance{OfferReference: f.offerReference}, nil
}

// SpeakToHuman requests a call back from an advisor
func (f *Flow) SpeakToHuman() error {
	if f.status.Final() {
		return ErrDecisionFinal
	}
	if !f.advisorChoice.Valid() {
		return ErrAdvisorChoiceRequired
	}
	f.status = domain.DecisionSpeakingToAdvisor
	f.panel = domain.PanelSpeaking
	return nil
}

// BeginDecline opens the decline form without changing the status
func (f *Flow) BeginDecline() error {
	if f.status.Final() {
		return ErrDecisionFinal
	}
	f.panel = domain.PanelDeclining
	return nil
}

// ReturnToChoices closes the speak or decline panel
func (f *Flow) ReturnToChoices() error {
	if f.status.Final() {
		return ErrDecisionFinal
	}
	f.panel = domain.PanelNone
	return nil
}

// SubmitDecline declines the offer with the captured reason. Terminal.
func (f *Flow) SubmitDecline() (DeclinePayload, error) {
	if f.status.Final() {
		return DeclinePayload{}, ErrDecisionFinal
	}
	if f.panel != domain.PanelDeclining {
		return DeclinePayload{}, ErrDeclineFormClosed
	}
	payload, err := f.decline.Submit()
	if err != nil {
		return DeclinePayload{}, err
	}
	f.status = domain.DecisionDeclined
	return payload, nil
}

// Payload builds the submission payload for the current state. Decline
// fields are only included once the offer is declined.
func (f *Flow) Payload() domain.SubmissionPayload {
	p := domain.SubmissionPayload{
		DecisionStatus: f.status,
		AdvisorChoice:  f.advisorChoice,
	}
	if f.status == domain.DecisionDeclined {
		p.DeclineReason = f.decline.Reason
		p.DeclineDetails = f.decline.Details
	}
	return p
}

// State snapshots the flow for persistence
func (f *Flow) State() domain.WizardDecisionState {
	return domain.WizardDecisionState{
		OfferReference: f.offerReference,
		AdvisorChoice:  f.advisorChoice,
		DecisionStatus: f.status,
		DeclineReason:  f.decline.Reason,
		DeclineDetails: f.decline.Details,
		Panel:          f.panel,
	}
}
