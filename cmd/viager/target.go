package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/viager/internal/breakeven"
)

func newTargetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target [offers-file]",
		Short: "Find the slider position paying a required amount",
		Long: `Find the balance slider position whose monthly payment or lump sum comes
closest to a required amount.

Examples:
  viager target offers.yaml --ref VG-2031 --monthly 1250
  viager target --market-value 500000 --duration 20 --lump-sum 120000 --max-slider 80`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			monthly, _ := cmd.Flags().GetString("monthly")
			lumpSum, _ := cmd.Flags().GetString("lump-sum")
			if (monthly == "") == (lumpSum == "") {
				return fmt.Errorf("exactly one of --monthly or --lump-sum is required")
			}
			target, raw := breakeven.TargetMonthly, monthly
			if lumpSum != "" {
				target, raw = breakeven.TargetLumpSum, lumpSum
			}
			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", raw, err)
			}

			offer, err := resolveOffer(cmd, args)
			if err != nil {
				return err
			}
			minSlider, _ := cmd.Flags().GetInt("min-slider")
			maxSlider, _ := cmd.Flags().GetInt("max-slider")

			result, err := breakeven.NewSolver(nil).Solve(cmd.Context(), breakeven.Request{
				Offer:       offer,
				Target:      target,
				Amount:      amount,
				Constraints: breakeven.Constraints{MinSlider: minSlider, MaxSlider: maxSlider},
			})
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}
	cmd.Flags().String("ref", "", "Offer reference (required when the file holds several offers)")
	cmd.Flags().String("market-value", "", "Market value for an ad-hoc offer")
	cmd.Flags().Int("duration", 20, "Contract duration in years for an ad-hoc offer")
	cmd.Flags().String("monthly", "", "Required monthly payment")
	cmd.Flags().String("lump-sum", "", "Required lump sum")
	cmd.Flags().Int("min-slider", 0, "Lowest slider position to consider")
	cmd.Flags().Int("max-slider", 100, "Highest slider position to consider")
	cmd.Flags().Bool("json", false, "Print JSON instead of a report")
	return cmd
}
