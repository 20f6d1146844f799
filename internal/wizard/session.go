// Package wizard drives one pass through the provisional-offer wizard: it
// recomputes the offer as the slider moves, records the audit trail, keeps
// the partial state in a key/value store and hands the final response to a
// submitter.
package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/decision"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/store"
)

// StateStore persists partial wizard state
type StateStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// AuditSink receives decision audit events
type AuditSink interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// Submitter receives the completed wizard response
type Submitter interface {
	Submit(ctx context.Context, sub domain.Submission) error
}

// Deps are the collaborators of a session. Nil members are replaced with
// in-memory or no-op implementations.
type Deps struct {
	Calculator *calculation.OfferCalculator
	Store      StateStore
	Audit      AuditSink
	Submitter  Submitter
	Logger     calculation.Logger
	Now        func() time.Time
}

// Session owns the state of one wizard pass
type Session struct {
	offer  domain.Offer
	params domain.OfferParameters
	result domain.OfferCalculationResult
	flow   *decision.Flow

	calc      *calculation.OfferCalculator
	store     StateStore
	audit     AuditSink
	submitter Submitter
	logger    calculation.Logger
	now       func() time.Time

	submitted *domain.Submission
}

// StateKey is the store key holding an offer's wizard state
func StateKey(offerReference string) string {
	return "wizard:" + offerReference
}

// NewSession starts a session for offer, restoring any previously saved
// state. The initial slider position comes from the saved state when
// present, otherwise from the offer.
func NewSession(ctx context.Context, offer domain.Offer, deps Deps) (*Session, error) {
	if offer.ContractDuration < 1 {
		return nil, fmt.Errorf("offer %s: contract duration must be at least 1 year", offer.Reference)
	}
	s := &Session{
		offer:     offer,
		calc:      deps.Calculator,
		store:     deps.Store,
		audit:     deps.Audit,
		submitter: deps.Submitter,
		logger:    deps.Logger,
		now:       deps.Now,
	}
	if s.calc == nil {
		s.calc = calculation.NewOfferCalculator()
	}
	if s.logger == nil {
		s.logger = calculation.NopLogger{}
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.audit == nil {
		s.audit = NewLoggerSink(s.logger)
	}
	if s.now == nil {
		s.now = time.Now
	}

	saved, err := s.loadState(ctx)
	if err != nil {
		return nil, err
	}

	slider := offer.SliderPercent
	if saved != nil {
		slider = saved.SliderPercent
		s.logger.Infof("restored wizard state for %s (status=%s)", offer.Reference, saved.DecisionStatus)
	}
	s.flow = decision.RestoreFlow(offer.Reference, saved)
	s.params = offer.Parameters(calculation.ClampSlider(slider))
	s.result = s.calc.Compute(s.params)
	return s, nil
}

// Offer returns the offer being answered
func (s *Session) Offer() domain.Offer { return s.offer }

// Parameters returns the current calculator input
func (s *Session) Parameters() domain.OfferParameters { return s.params }

// Result returns the latest computation
func (s *Session) Result() domain.OfferCalculationResult { return s.result }

// Flow exposes the decision state machine
func (s *Session) Flow() *decision.Flow { return s.flow }

// Submitted returns the submission once Submit has succeeded
func (s *Session) Submitted() (domain.Submission, bool) {
	if s.submitted == nil {
		return domain.Submission{}, false
	}
	return *s.submitted, true
}

// SetSlider moves the slider, recomputes the offer and records a
// BALANCE_ADJUSTMENT event. The position is clamped to [0,100].
func (s *Session) SetSlider(ctx context.Context, pct int) (domain.OfferCalculationResult, error) {
	s.params.SliderPercent = calculation.ClampSlider(pct)
	s.result = s.calc.Compute(s.params)

	event := domain.AuditEvent{
		Action:         domain.AuditBalanceAdjustment,
		OfferReference: s.offer.Reference,
		Details: domain.BalanceAdjustmentDetails{
			SliderPercent:    s.params.SliderPercent,
			MarketValue:      s.params.MarketValue,
			LumpSum:          s.result.LumpSum,
			ContractDuration: s.params.ContractDuration,
		},
		RecordedAt: s.now(),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		return s.result, fmt.Errorf("failed to record balance adjustment: %w", err)
	}
	return s.result, s.Save(ctx)
}

// Nudge moves the slider by delta points
func (s *Session) Nudge(ctx context.Context, delta int) (domain.OfferCalculationResult, error) {
	return s.SetSlider(ctx, s.params.SliderPercent+delta)
}

// Apply runs a flow transition and saves the resulting state. The
// transition's own error is returned without saving.
func (s *Session) Apply(ctx context.Context, transition func(f *decision.Flow) error) error {
	if err := transition(s.flow); err != nil {
		return err
	}
	return s.Save(ctx)
}

// State returns the serialisable state of the session
func (s *Session) State() domain.WizardDecisionState {
	state := s.flow.State()
	state.SliderPercent = s.params.SliderPercent
	state.UpdatedAt = s.now()
	return state
}

// Save writes the current state to the store
func (s *Session) Save(ctx context.Context) error {
	raw, err := json.Marshal(s.State())
	if err != nil {
		return fmt.Errorf("failed to encode wizard state: %w", err)
	}
	if err := s.store.Set(ctx, StateKey(s.offer.Reference), string(raw)); err != nil {
		return fmt.Errorf("failed to save wizard state for %s: %w", s.offer.Reference, err)
	}
	return nil
}

// Prepare snapshots the current payload as a submission. The session must
// have reached a decision. The returned value shares nothing with the
// session, so it can be sent from another goroutine.
func (s *Session) Prepare() (domain.Submission, error) {
	if s.flow.Status() == domain.DecisionNone {
		return domain.Submission{}, fmt.Errorf("offer %s: no decision to submit", s.offer.Reference)
	}
	if s.submitter == nil {
		return domain.Submission{}, fmt.Errorf("offer %s: no submitter configured", s.offer.Reference)
	}
	return domain.Submission{
		ID:             uuid.NewString(),
		OfferReference: s.offer.Reference,
		Payload:        s.flow.Payload(),
		SubmittedAt:    s.now(),
	}, nil
}

// Send hands a prepared submission to the submitter. It reads no mutable
// session state.
func (s *Session) Send(ctx context.Context, sub domain.Submission) error {
	if s.submitter == nil {
		return fmt.Errorf("offer %s: no submitter configured", sub.OfferReference)
	}
	return s.submitter.Submit(ctx, sub)
}

// MarkSubmitted records a submission that Send delivered
func (s *Session) MarkSubmitted(sub domain.Submission) {
	s.submitted = &sub
	s.logger.Infof("submitted %s for offer %s (%s)", sub.ID, sub.OfferReference, sub.Payload.DecisionStatus)
}

// Submit prepares, sends and records the current payload in one call. A
// submitter error is returned as is and the flow is left in its decided
// state so the caller can retry.
func (s *Session) Submit(ctx context.Context) (domain.Submission, error) {
	sub, err := s.Prepare()
	if err != nil {
		return domain.Submission{}, err
	}
	if err := s.Send(ctx, sub); err != nil {
		return domain.Submission{}, err
	}
	s.MarkSubmitted(sub)
	return sub, nil
}

func (s *Session) loadState(ctx context.Context) (*domain.WizardDecisionState, error) {
	raw, ok, err := s.store.Get(ctx, StateKey(s.offer.Reference))
	if err != nil {
		return nil, fmt.Errorf("failed to load wizard state for %s: %w", s.offer.Reference, err)
	}
	if !ok {
		return nil, nil
	}
	var state domain.WizardDecisionState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Warnf("discarding unreadable wizard state for %s: %v", s.offer.Reference, err)
		return nil, nil
	}
	return &state, nil
}
