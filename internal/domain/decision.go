package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdvisorChoice records whether the seller consulted someone before responding
type AdvisorChoice string

const (
	AdvisorChoiceUnset   AdvisorChoice = ""
	AdvisorChoiceShared  AdvisorChoice = "shared"  // shared with family or an advisor
	AdvisorChoiceProceed AdvisorChoice = "proceed" // proceeding independently
)

// Valid reports whether c is one of the selectable choices
func (c AdvisorChoice) Valid() bool {
	return c == AdvisorChoiceShared || c == AdvisorChoiceProceed
}

// DecisionStatus is the seller's response to the offer
type DecisionStatus string

const (
	DecisionNone              DecisionStatus = "none"
	DecisionAccepted          DecisionStatus = "accepted"
	DecisionDeclined          DecisionStatus = "declined"
	DecisionSpeakingToAdvisor DecisionStatus = "speaking_to_advisor"
)

// Final reports whether no further response can be given
func (s DecisionStatus) Final() bool {
	return s == DecisionAccepted || s == DecisionDeclined
}

// DeclineReason is the fixed set of reasons offered on the decline form
type DeclineReason string

const (
	DeclineReasonUnset                 DeclineReason = ""
	DeclineReasonTerms                 DeclineReason = "terms"
	DeclineReasonAmount                DeclineReason = "amount"
	DeclineReasonTiming                DeclineReason = "timing"
	DeclineReasonPersonalCircumstances DeclineReason = "personalCircumstances"
	DeclineReasonTermsConcern          DeclineReason = "termsConcern"
	DeclineReasonOther                 DeclineReason = "otherReason"
)

// DeclineReasons lists the selectable reasons in display order
var DeclineReasons = []DeclineReason{
	DeclineReasonTerms,
	DeclineReasonAmount,
	DeclineReasonTiming,
	DeclineReasonPersonalCircumstances,
	DeclineReasonTermsConcern,
	DeclineReasonOther,
}

// Valid reports whether r is a known reason
func (r DeclineReason) Valid() bool {
	for _, known := range DeclineReasons {
		if r == known {
			return true
		}
	}
	return false
}

// Label returns a human readable description of the reason
func (r DeclineReason) Label() string {
	switch r {
	case DeclineReasonTerms:
		return "The contract terms do not suit me"
	case DeclineReasonAmount:
		return "The amount is too low"
	case DeclineReasonTiming:
		return "The timing is not right"
	case DeclineReasonPersonalCircumstances:
		return "My personal circumstances have changed"
	case DeclineReasonTermsConcern:
		return "I have concerns about the terms"
	case DeclineReasonOther:
		return "Another reason"
	default:
		return "No reason selected"
	}
}

// Panel is the single section shown below the response actions.
// It replaces three mutually exclusive visibility flags.
type Panel string

const (
	PanelNone      Panel = "none"
	PanelAccepted  Panel = "accepted"
	PanelDeclining Panel = "declining"
	PanelSpeaking  Panel = "speaking"
)

// WizardDecisionState is the serialisable state of one wizard pass
type WizardDecisionState struct {
	OfferReference string         `yaml:"offer_reference" json:"offer_reference"`
	SliderPercent  int            `yaml:"slider_percent" json:"slider_percent"`
	AdvisorChoice  AdvisorChoice  `yaml:"advisor_choice,omitempty" json:"advisor_choice,omitempty"`
	DecisionStatus DecisionStatus `yaml:"decision_status" json:"decision_status"`
	DeclineReason  DeclineReason  `yaml:"decline_reason,omitempty" json:"decline_reason,omitempty"`
	DeclineDetails string         `yaml:"decline_details,omitempty" json:"decline_details,omitempty"`
	Panel          Panel          `yaml:"panel" json:"panel"`
	UpdatedAt      time.Time      `yaml:"updated_at" json:"updated_at"`
}

// SubmissionPayload is what the wizard step hands to the persistence collaborator
type SubmissionPayload struct {
	DeclineReason  DeclineReason  `json:"declineReason,omitempty"`
	DeclineDetails string         `json:"declineDetails,omitempty"`
	DecisionStatus DecisionStatus `json:"decisionStatus"`
	AdvisorChoice  AdvisorChoice  `json:"advisorChoice"`
}

// Submission wraps a payload with its identity and timing
type Submission struct {
	ID             string            `json:"id"`
	OfferReference string            `json:"offer_reference"`
	Payload        SubmissionPayload `json:"payload"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}

// AuditAction names a decision audit log event
type AuditAction string

const AuditBalanceAdjustment AuditAction = "BALANCE_ADJUSTMENT"

// BalanceAdjustmentDetails is the payload of a BALANCE_ADJUSTMENT event
type BalanceAdjustmentDetails struct {
	SliderPercent    int             `json:"sliderPercent"`
	MarketValue      decimal.Decimal `json:"marketValue"`
	LumpSum          decimal.Decimal `json:"lumpSum"`
	ContractDuration int             `json:"contractDuration"`
}

// AuditEvent is a decision audit log entry
type AuditEvent struct {
	Action         AuditAction              `json:"action"`
	OfferReference string                   `json:"offer_reference"`
	Details        BalanceAdjustmentDetails `json:"details"`
	RecordedAt     time.Time                `json:"recorded_at"`
}
