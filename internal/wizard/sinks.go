package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/domain"
)

// LoggerSink writes audit events to a Logger
type LoggerSink struct {
	logger calculation.Logger
}

func NewLoggerSink(l calculation.Logger) *LoggerSink {
	if l == nil {
		l = calculation.NopLogger{}
	}
	return &LoggerSink{logger: l}
}

func (s *LoggerSink) Record(_ context.Context, event domain.AuditEvent) error {
	s.logger.Infof("%s offer=%s slider=%d market_value=%s lump_sum=%s duration=%d",
		event.Action,
		event.OfferReference,
		event.Details.SliderPercent,
		event.Details.MarketValue.StringFixed(2),
		event.Details.LumpSum.StringFixed(2),
		event.Details.ContractDuration,
	)
	return nil
}

// MultiSink fans an event out to several sinks, collecting every error
type MultiSink []AuditSink

func (m MultiSink) Record(ctx context.Context, event domain.AuditEvent) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Record(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// JSONSubmitter writes each submission as one JSON line
type JSONSubmitter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewJSONSubmitter(w io.Writer) *JSONSubmitter {
	return &JSONSubmitter{w: w}
}

func (j *JSONSubmitter) Submit(_ context.Context, sub domain.Submission) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := json.NewEncoder(j.w).Encode(sub); err != nil {
		return fmt.Errorf("failed to write submission %s: %w", sub.ID, err)
	}
	return nil
}

// MultiSubmitter hands a submission to each submitter in order, stopping at
// the first failure
type MultiSubmitter []Submitter

func (m MultiSubmitter) Submit(ctx context.Context, sub domain.Submission) error {
	for _, s := range m {
		if err := s.Submit(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}
