package scenes

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/wizard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []domain.AuditEvent
}

func (r *recordingSink) Record(_ context.Context, event domain.AuditEvent) error {
	r.events = append(r.events, event)
	return nil
}

type recordingSubmitter struct {
	subs []domain.Submission
	err  error
}

func (r *recordingSubmitter) Submit(_ context.Context, sub domain.Submission) error {
	if r.err != nil {
		return r.err
	}
	r.subs = append(r.subs, sub)
	return nil
}

func testOffer() domain.Offer {
	return domain.Offer{
		Reference:        "VG-2031",
		Address:          "12 rue des Lilas, Lyon",
		MarketValue:      decimal.NewFromInt(500000),
		ContractDuration: 20,
		SliderPercent:    50,
		AdvisorPhone:     "+33 4 72 00 00 00",
	}
}

func newSession(t *testing.T, deps wizard.Deps) *wizard.Session {
	t.Helper()
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC) }
	}
	s, err := wizard.NewSession(context.Background(), testOffer(), deps)
	require.NoError(t, err)
	return s
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// runCmd executes cmd and any batched commands, returning the messages
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
