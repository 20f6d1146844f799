package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/viager/internal/app"
	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/tui"
)

func newWizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard [offers-file]",
		Short: "Answer an offer interactively",
		Long: `Open the interactive offer wizard: adjust the balance slider, then accept,
decline or ask to speak to an advisor. Progress is saved as you go and
restored the next time the same offer is opened.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, _ := cmd.Flags().GetString("ref")

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			// nothing may be printed over the alternate screen unless debugging
			opts := app.Options{}
			if !settings.Debug {
				opts.Logger = calculation.NopLogger{}
			}
			rt, err := app.Open(settings, opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			model := tui.NewModel(args[0], rt.OpenSession).
				WithInitialOffer(ref).
				WithContext(cmd.Context())
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("error running wizard: %w", err)
			}

			if m, ok := final.(tui.Model); ok && m.Session() != nil {
				s := m.Session()
				if sub, ok := s.Submitted(); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Response %s recorded for offer %s (%s)\n",
						sub.ID, sub.OfferReference, sub.Payload.DecisionStatus)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Progress on offer %s saved\n", s.Offer().Reference)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("ref", "", "Open this offer directly")
	return cmd
}
