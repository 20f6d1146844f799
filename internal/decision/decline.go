package decision

import (
	"fmt"

	"github.com/rgehrsitz/viager/internal/domain"
)

// DeclineSubmission captures the reason and free-text detail of a decline
type DeclineSubmission struct {
	Reason  domain.DeclineReason
	Details string
}

// DeclinePayload is the packaged result of a submitted decline
type DeclinePayload struct {
	Reason  domain.DeclineReason `json:"reason"`
	Details string               `json:"details,omitempty"`
}

// SetReason selects one of the known decline reasons
func (d *DeclineSubmission) SetReason(reason domain.DeclineReason) error {
	if !reason.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDeclineReason, reason)
	}
	d.Reason = reason
	return nil
}

// SetDetails replaces the free-text detail. Any text is accepted.
func (d *DeclineSubmission) SetDetails(details string) {
	d.Details = details
}

// CanSubmit reports whether a reason has been chosen
func (d *DeclineSubmission) CanSubmit() bool {
	return d.Reason != domain.DeclineReasonUnset
}

// Submit packages the decline once a reason is set
func (d *DeclineSubmission) Submit() (DeclinePayload, error) {
	if !d.CanSubmit() {
		return DeclinePayload{}, ErrDeclineReasonRequired
	}
	return DeclinePayload{Reason: d.Reason, Details: d.Details}, nil
}
