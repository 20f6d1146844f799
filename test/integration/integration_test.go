package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/viager/internal/app"
	"github.com/rgehrsitz/viager/internal/breakeven"
	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/compare"
	"github.com/rgehrsitz/viager/internal/config"
	"github.com/rgehrsitz/viager/internal/decision"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/output"
)

const offersFile = "../testdata/offers.yaml"

func loadOffers(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(offersFile)
	require.NoError(t, err)
	require.Len(t, cfg.Offers, 3)
	return cfg
}

// openRuntime writes a settings file for a file store and SQLite ledger in
// dir and opens the runtime it describes
func openRuntime(t *testing.T, dir string, withLedger bool, out *bytes.Buffer) *app.Runtime {
	t.Helper()
	ledgerPath := ""
	if withLedger {
		ledgerPath = filepath.Join(dir, "ledger.db")
	}
	settingsFile := filepath.Join(dir, "settings.yaml")
	content := "store:\n  backend: file\n  path: " + filepath.Join(dir, "state.yaml") +
		"\nledger:\n  path: \"" + ledgerPath + "\"\n"
	require.NoError(t, os.WriteFile(settingsFile, []byte(content), 0o644))

	settings, err := config.LoadSettings(settingsFile)
	require.NoError(t, err)

	opts := app.Options{Logger: calculation.NopLogger{}}
	if out != nil {
		opts.Out = out
	}
	rt, err := app.Open(settings, opts)
	require.NoError(t, err)
	return rt
}

func TestIntegrationSmokeTest(t *testing.T) {
	cfg := loadOffers(t)
	calc := calculation.NewOfferCalculator()

	for _, offer := range cfg.Offers {
		t.Run(offer.Reference, func(t *testing.T) {
			report := calc.Report(offer, offer.SliderPercent, 25)
			require.NotNil(t, report)

			for _, name := range output.AvailableFormatterNames() {
				f := output.GetFormatterByName(name)
				require.NotNil(t, f, name)
				data, err := f.Format(report)
				require.NoError(t, err, name)
				assert.NotEmpty(t, data, name)
			}
		})
	}
}

func TestDeclineJourney_ResumedAcrossRuns(t *testing.T) {
	cfg := loadOffers(t)
	offer, ok := cfg.FindOffer("VG-2031")
	require.True(t, ok)
	dir := t.TempDir()
	ctx := context.Background()

	// first run: move the slider and start declining, then quit
	rt := openRuntime(t, dir, true, nil)
	session, err := rt.OpenSession(ctx, *offer)
	require.NoError(t, err)

	_, err = session.Nudge(ctx, 20)
	require.NoError(t, err)
	err = session.Apply(ctx, func(f *decision.Flow) error {
		if err := f.BeginDecline(); err != nil {
			return err
		}
		if err := f.Decline().SetReason(domain.DeclineReasonAmount); err != nil {
			return err
		}
		f.Decline().SetDetails("Hoping for a larger bouquet")
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, rt.Close())

	// second run: the decline form is restored and submitted
	rt = openRuntime(t, dir, true, nil)
	defer rt.Close()
	session, err = rt.OpenSession(ctx, *offer)
	require.NoError(t, err)

	assert.Equal(t, 70, session.Parameters().SliderPercent)
	assert.Equal(t, domain.PanelDeclining, session.Flow().Panel())
	assert.Equal(t, domain.DeclineReasonAmount, session.Flow().Decline().Reason)
	assert.Equal(t, "Hoping for a larger bouquet", session.Flow().Decline().Details)
	assert.True(t, session.Result().LumpSum.Equal(decimal.NewFromInt(124000)))

	err = session.Apply(ctx, func(f *decision.Flow) error {
		_, err := f.SubmitDecline()
		return err
	})
	require.NoError(t, err)
	sub, err := session.Submit(ctx)
	require.NoError(t, err)

	subs, err := rt.Ledger.Submissions(ctx, "VG-2031")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, sub.ID, subs[0].ID)
	assert.Equal(t, domain.DecisionDeclined, subs[0].Payload.DecisionStatus)
	assert.Equal(t, domain.DeclineReasonAmount, subs[0].Payload.DeclineReason)

	events, err := rt.Ledger.AuditEvents(ctx, "VG-2031", 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.AuditBalanceAdjustment, events[0].Action)
	assert.Equal(t, 70, events[0].Details.SliderPercent)
}

func TestAcceptJourney_WithoutLedger(t *testing.T) {
	cfg := loadOffers(t)
	offer, ok := cfg.FindOffer("VG-2032")
	require.True(t, ok)
	ctx := context.Background()

	var out bytes.Buffer
	rt := openRuntime(t, t.TempDir(), false, &out)
	defer rt.Close()
	assert.Nil(t, rt.Ledger)

	session, err := rt.OpenSession(ctx, *offer)
	require.NoError(t, err)
	err = session.Apply(ctx, func(f *decision.Flow) error {
		if err := f.SelectAdvisorChoice(domain.AdvisorChoiceShared); err != nil {
			return err
		}
		_, err := f.Accept()
		return err
	})
	require.NoError(t, err)

	_, err = session.Submit(ctx)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"decisionStatus":"accepted"`)
	assert.Contains(t, out.String(), "VG-2032")
}

func TestDataConsistency_SolverMatchesCalculator(t *testing.T) {
	cfg := loadOffers(t)
	calc := calculation.NewOfferCalculator()
	solver := breakeven.NewSolver(calc)
	ctx := context.Background()

	for _, offer := range cfg.Offers {
		for slider := 0; slider <= 100; slider += 5 {
			want := calc.Compute(offer.Parameters(slider))

			res, err := solver.Solve(ctx, breakeven.Request{
				Offer:  offer,
				Target: breakeven.TargetLumpSum,
				Amount: want.LumpSum,
			})
			require.NoError(t, err)
			assert.True(t, res.Exact, "%s slider %d", offer.Reference, slider)
			assert.True(t, res.Offer.LumpSum.Equal(want.LumpSum), "%s slider %d", offer.Reference, slider)
		}
	}
}

func TestDataConsistency_CompareMatchesCalculator(t *testing.T) {
	cfg := loadOffers(t)
	calc := calculation.NewOfferCalculator()

	set, err := compare.NewCompareEngine(calc).CompareOffers(context.Background(), cfg, "VG-2031", []string{"VG-2032", "VG-2033"})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)

	for _, alt := range set.AlternativeResults {
		offer, ok := cfg.FindOffer(alt.Name)
		require.True(t, ok)
		want := calc.Compute(offer.Parameters(offer.SliderPercent))
		assert.Equal(t, want, alt.Result, alt.Name)
	}
}
