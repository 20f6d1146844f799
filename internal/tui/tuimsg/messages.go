// Package tuimsg holds the messages exchanged between the wizard scenes and
// the root model.
package tuimsg

import (
	"github.com/rgehrsitz/viager/internal/domain"
)

// OfferSelectedMsg signals an offer has been picked from the list
type OfferSelectedMsg struct {
	Reference string
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProceedToDecisionMsg moves from the slider to the response actions
type ProceedToDecisionMsg struct{}

// BackMsg asks the root model for the previous scene
type BackMsg struct{}

// SliderChangedMsg signals the offer has been recomputed
type SliderChangedMsg struct {
	SliderPercent int
	Result        domain.OfferCalculationResult
}

// DecisionMadeMsg signals the flow reached accepted, declined or speaking
type DecisionMadeMsg struct {
	Status domain.DecisionStatus
}

// SubmissionCompleteMsg carries the outcome of handing the response over
type SubmissionCompleteMsg struct {
	Submission domain.Submission
	Err        error
}
