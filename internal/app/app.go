// Package app assembles the runtime collaborators shared by the CLI and the
// terminal UI: state store, ledger, logger and submission target.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/config"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/ledger"
	"github.com/rgehrsitz/viager/internal/store"
	"github.com/rgehrsitz/viager/internal/wizard"
)

// Runtime holds everything a wizard session needs. Ledger is nil when
// settings leave ledger.path empty.
type Runtime struct {
	Settings *config.Settings
	Store    store.KeyValueStore
	Ledger   *ledger.Ledger
	Logger   calculation.Logger

	out   io.Writer
	flush func() error
}

// Options tune Open
type Options struct {
	// Out receives submissions as JSON lines when no ledger is configured
	Out io.Writer
	// Logger overrides the logger built from settings
	Logger calculation.Logger
}

// Open builds the runtime described by settings
func Open(settings *config.Settings, opts Options) (*Runtime, error) {
	if settings == nil {
		return nil, errors.New("nil settings")
	}
	rt := &Runtime{Settings: settings, out: opts.Out, Logger: opts.Logger}
	if rt.out == nil {
		rt.out = io.Discard
	}
	if rt.Logger == nil {
		logger, flush, err := NewLogger(settings.Debug)
		if err != nil {
			return nil, err
		}
		rt.Logger = logger
		rt.flush = flush
	}

	kv, err := store.Open(store.Options{
		Backend:   settings.Store.Backend,
		Path:      settings.Store.Path,
		RedisAddr: settings.Store.RedisAddr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	rt.Store = kv

	if settings.Ledger.Path != "" {
		l, err := ledger.Open(settings.Ledger.Path)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.Ledger = l
	}

	rt.Logger.Debugf("runtime ready: store=%s ledger=%q", settings.Store.Backend, settings.Ledger.Path)
	return rt, nil
}

// NewLogger returns a zap-backed Logger. Debug enables development output at
// debug level, otherwise only warnings and errors reach stderr.
func NewLogger(debug bool) (calculation.Logger, func() error, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l.Sugar(), l.Sync, nil
}

// Deps wires the runtime into wizard session dependencies
func (r *Runtime) Deps() wizard.Deps {
	deps := wizard.Deps{
		Store:  r.Store,
		Logger: r.Logger,
	}
	if r.Ledger != nil {
		deps.Audit = wizard.MultiSink{r.Ledger, wizard.NewLoggerSink(r.Logger)}
		deps.Submitter = r.Ledger
	} else {
		deps.Audit = wizard.NewLoggerSink(r.Logger)
		deps.Submitter = wizard.NewJSONSubmitter(r.out)
	}
	return deps
}

// OpenSession opens or restores the wizard session for offer
func (r *Runtime) OpenSession(ctx context.Context, offer domain.Offer) (*wizard.Session, error) {
	return wizard.NewSession(ctx, offer, r.Deps())
}

// Close releases the ledger and any closable store
func (r *Runtime) Close() error {
	var errs []error
	if r.Ledger != nil {
		errs = append(errs, r.Ledger.Close())
	}
	if c, ok := r.Store.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	if r.flush != nil {
		// Sync on a terminal stderr returns EINVAL
		_ = r.flush()
	}
	return errors.Join(errs...)
}
