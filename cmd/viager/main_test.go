package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/viager/internal/app"
	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/config"
	"github.com/rgehrsitz/viager/internal/decision"
	"github.com/rgehrsitz/viager/internal/domain"
)

const offersYAML = `offers:
  - reference: VG-2031
    address: 12 rue des Lilas, 69003 Lyon
    market_value: 500000
    contract_duration: 20
    slider_percent: 50
  - reference: VG-2032
    market_value: 320000
    contract_duration: 15
    slider_percent: 0
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	err := cmd.Execute()
	return buf.String(), err
}

func writeOffers(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "offers.yaml")
	if err := os.WriteFile(path, []byte(offersYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "viager" {
		t.Errorf("Expected root command use to be 'viager', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}
	if !strings.Contains(out, "calculate") {
		t.Error("Expected help to list the calculate command")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"calculate",
		"schedule",
		"validate",
		"target",
		"compare",
		"example",
		"wizard",
		"submissions",
		"audit",
		"version",
	}

	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expectedCommands {
		if !registered[name] {
			t.Errorf("Expected command '%s' to be registered with root command", name)
		}
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, err := execute(t, "invalid-command"); err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestCalculate_FromFile(t *testing.T) {
	out, err := execute(t, "calculate", writeOffers(t), "--ref", "VG-2031")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	for _, want := range []string{
		"Reference: VG-2031",
		"Offer Price: €400,000.00",
		"Lump Sum: €100,000.00 (25.00%)",
		"Monthly: €1,250.00 for 20 years",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCalculate_SliderOverride(t *testing.T) {
	out, err := execute(t, "calculate", writeOffers(t), "--ref", "VG-2031", "--slider", "100", "-f", "csv")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !strings.Contains(out, ",100,400000.00,0.4000,160000.00,") {
		t.Errorf("Expected slider 100 row, got:\n%s", out)
	}
}

func TestCalculate_AdHoc(t *testing.T) {
	out, err := execute(t, "calculate", "--market-value", "500000", "--duration", "20", "--slider", "0", "-f", "json")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if !strings.Contains(out, `"lump_sum": "40000"`) {
		t.Errorf("Expected a 40000 lump sum, got:\n%s", out)
	}
}

func TestCalculate_Errors(t *testing.T) {
	offers := writeOffers(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"ambiguous file", []string{"calculate", offers}, "--ref is required"},
		{"unknown ref", []string{"calculate", offers, "--ref", "VG-9"}, "offer VG-9 not found"},
		{"no input", []string{"calculate"}, "--market-value is required"},
		{"bad slider", []string{"calculate", "--market-value", "500000", "--slider", "101"}, "slider percent must be between 0 and 100"},
		{"bad duration", []string{"calculate", "--market-value", "500000", "--duration", "0"}, "contract duration must be at least 1 year"},
		{"bad format", []string{"calculate", offers, "--ref", "VG-2031", "-f", "pdf"}, "unknown output format"},
		{"no target", []string{"target", offers, "--ref", "VG-2031"}, "exactly one of --monthly or --lump-sum"},
		{"both targets", []string{"target", offers, "--ref", "VG-2031", "--monthly", "1", "--lump-sum", "1"}, "exactly one of --monthly or --lump-sum"},
		{"bad target bounds", []string{"target", offers, "--ref", "VG-2031", "--monthly", "1000", "--min-slider", "90", "--max-slider", "10"}, "min_slider"},
		{"bad step", []string{"schedule", offers, "--ref", "VG-2031", "--step", "0"}, "--step must be between 1 and 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSchedule(t *testing.T) {
	out, err := execute(t, "schedule", writeOffers(t), "--ref", "VG-2032", "--step", "50", "-f", "detailed-csv")
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Errorf("Expected header plus 3 rows, got %d:\n%s", len(lines), out)
	}
}

func TestTarget(t *testing.T) {
	out, err := execute(t, "target", writeOffers(t), "--ref", "VG-2031", "--monthly", "1250")
	if err != nil {
		t.Fatalf("target failed: %v", err)
	}
	for _, want := range []string{"Position:        46%", "matched exactly"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	out, err = execute(t, "target", "--market-value", "500000", "--lump-sum", "100000", "--json")
	if err != nil {
		t.Fatalf("target failed: %v", err)
	}
	if !strings.Contains(out, `"slider_percent": 50`) {
		t.Errorf("Expected slider 50, got:\n%s", out)
	}
}

func TestCompare(t *testing.T) {
	offers := writeOffers(t)

	out, err := execute(t, "compare", offers, "--ref", "VG-2031", "--with", "max_lump_sum", "--transform", "set_duration:years=15")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{"VIAGER OFFER COMPARISON", "VG-2031 (base)", "max_lump_sum", "set_duration:years=15"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	out, err = execute(t, "compare", offers, "--ref", "VG-2031", "--offers", "VG-2032", "-f", "csv")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "VG-2032,alternative,0,15,320000.00,26000.00") {
		t.Errorf("Expected the VG-2032 row, got:\n%s", out)
	}

	out, err = execute(t, "compare", "--list-templates")
	if err != nil || !strings.Contains(out, "front_loaded_short") {
		t.Errorf("Expected the template list, got %v:\n%s", err, out)
	}

	if _, err := execute(t, "compare", offers, "--ref", "VG-2031", "--with", "nope"); err == nil {
		t.Error("Expected an error for an unknown template")
	}
}

func TestCompare_RankedCompactJSON(t *testing.T) {
	offers := writeOffers(t)

	out, err := execute(t, "compare", offers, "--ref", "VG-2031",
		"--with", "max_lump_sum,max_monthly", "--rank", "monthly", "-f", "json-compact")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if strings.Count(strings.TrimSpace(out), "\n") != 0 {
		t.Errorf("Expected a single JSON line, got:\n%s", out)
	}
	monthly, lump := strings.Index(out, `"name":"max_monthly"`), strings.Index(out, `"name":"max_lump_sum"`)
	if monthly < 0 || lump < 0 || monthly > lump {
		t.Errorf("Expected max_monthly ranked before max_lump_sum, got:\n%s", out)
	}

	if _, err := execute(t, "compare", offers, "--ref", "VG-2031", "--with", "max_lump_sum", "--rank", "age"); err == nil {
		t.Error("Expected an error for an unknown rank")
	}
}

func TestExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	out, err := execute(t, "example", path)
	if err != nil {
		t.Fatalf("example failed: %v", err)
	}
	if !strings.Contains(out, "Example offers file written to") {
		t.Errorf("Unexpected output: %s", out)
	}
	if _, err := execute(t, "validate", path); err != nil {
		t.Errorf("Expected the example file to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	path := writeOffers(t)
	out, err := execute(t, "validate", path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid (2 offers)") {
		t.Errorf("Unexpected output: %s", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("offers:\n  - reference: X\n    market_value: 0\n    contract_duration: 5\n"), 0o644)
	if _, err := execute(t, "validate", bad); err == nil {
		t.Error("Expected an error for a zero market value")
	}
	if _, err := execute(t, "validate", path, bad); err == nil {
		t.Error("Expected an error when any file is invalid")
	}
	if _, err := execute(t, "validate", path, bad, "--watch"); err == nil {
		t.Error("Expected --watch to reject several files")
	}

	second := writeOffers(t)
	out, err = execute(t, "validate", path, second)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if strings.Count(out, "is valid (2 offers)") != 2 {
		t.Errorf("Expected both files reported, got:\n%s", out)
	}
}

func TestSubmissionsAndAudit(t *testing.T) {
	dir := t.TempDir()
	settingsFile := filepath.Join(dir, "settings.yaml")
	ledgerPath := filepath.Join(dir, "ledger.db")
	os.WriteFile(settingsFile, []byte("store:\n  backend: memory\nledger:\n  path: "+ledgerPath+"\n"), 0o644)

	// record one slider move and one response through the runtime
	s, err := config.LoadSettings(settingsFile)
	if err != nil {
		t.Fatal(err)
	}
	rt, err := app.Open(s, app.Options{Logger: calculation.NopLogger{}})
	if err != nil {
		t.Fatal(err)
	}
	cfg, _ := config.NewInputParser().LoadFromFile(writeOffers(t))
	ctx := context.Background()
	session, err := rt.OpenSession(ctx, cfg.Offers[0])
	if err != nil {
		t.Fatal(err)
	}
	session.SetSlider(ctx, 60)
	err = session.Apply(ctx, func(f *decision.Flow) error {
		if err := f.SelectAdvisorChoice(domain.AdvisorChoiceProceed); err != nil {
			return err
		}
		return f.SpeakToHuman()
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := session.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	rt.Close()

	out, err := execute(t, "--settings", settingsFile, "submissions")
	if err != nil {
		t.Fatalf("submissions failed: %v", err)
	}
	if !strings.Contains(out, string(domain.DecisionSpeakingToAdvisor)) {
		t.Errorf("Expected the speaking_to_advisor response, got:\n%s", out)
	}

	out, err = execute(t, "--settings", settingsFile, "audit", "--ref", "VG-2031")
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if !strings.Contains(out, string(domain.AuditBalanceAdjustment)) || !strings.Contains(out, "60%") {
		t.Errorf("Expected the balance adjustment at 60%%, got:\n%s", out)
	}
}

func TestSubmissions_NoLedger(t *testing.T) {
	settingsFile := filepath.Join(t.TempDir(), "settings.yaml")
	os.WriteFile(settingsFile, []byte("store:\n  backend: memory\nledger:\n  path: \"\"\n"), 0o644)

	_, err := execute(t, "--settings", settingsFile, "submissions")
	if err == nil || !strings.Contains(err.Error(), "no ledger configured") {
		t.Errorf("Expected a missing ledger error, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "viager dev") {
		t.Errorf("Unexpected version output: %s", out)
	}
}
