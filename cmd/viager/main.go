package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/viager/internal/app"
	"github.com/rgehrsitz/viager/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	settingsPath string
	debugMode    bool
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "viager %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "viager",
		Short: "Provisional viager offer calculator",
		Long: `Computes provisional viager (life-annuity property sale) offers and walks
the seller through accepting, declining or talking to an advisor.

The balance slider moves value between the upfront lump sum (bouquet) and
the monthly payments (rente) over the contract duration.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to a settings file (store, ledger, debug)")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	root.AddCommand(newCalculateCmd())
	root.AddCommand(newScheduleCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newExampleCmd())
	root.AddCommand(newTargetCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newWizardCmd())
	root.AddCommand(newSubmissionsCmd())
	root.AddCommand(newAuditCmd())
	root.AddCommand(versionCmd())
	return root
}

// loadSettings reads runtime settings, letting --debug override the file
func loadSettings() (*config.Settings, error) {
	s, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	if debugMode {
		s.Debug = true
	}
	return s, nil
}

// openRuntime builds the store, ledger and logger described by settings
func openRuntime(cmd *cobra.Command) (*app.Runtime, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return app.Open(s, app.Options{Out: cmd.OutOrStdout()})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
