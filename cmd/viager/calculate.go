package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rgehrsitz/viager/internal/app"
	"github.com/rgehrsitz/viager/internal/calculation"
	"github.com/rgehrsitz/viager/internal/config"
	"github.com/rgehrsitz/viager/internal/domain"
	"github.com/rgehrsitz/viager/internal/output"
)

func newCalculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [offers-file]",
		Short: "Calculate a provisional offer",
		Long: `Calculate the provisional offer for one offer of an offers file, or for an
ad-hoc offer given with --market-value and --duration.

Examples:
  viager calculate offers.yaml --ref VG-2031
  viager calculate offers.yaml --ref VG-2031 --slider 80 -f json
  viager calculate --market-value 500000 --duration 20 --slider 50 -f csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, _ := cmd.Flags().GetInt("schedule-step")
			return runCalculate(cmd, args, step)
		},
	}
	addOfferFlags(cmd, "console-lite")
	cmd.Flags().Int("schedule-step", 0, "Also list every slider position in steps of N")
	return cmd
}

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [offers-file]",
		Short: "Show the offer at every slider position",
		Long: `Print the payment split for slider positions 0, step, 2*step ... 100.

Examples:
  viager schedule offers.yaml --ref VG-2031
  viager schedule --market-value 500000 --duration 20 --step 25 -f detailed-csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, _ := cmd.Flags().GetInt("step")
			if step <= 0 || step > 100 {
				return fmt.Errorf("--step must be between 1 and 100")
			}
			return runCalculate(cmd, args, step)
		},
	}
	addOfferFlags(cmd, "console")
	cmd.Flags().Int("step", 10, "Slider step between rows")
	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [offers-file...]",
		Short: "Validate one or more offers files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			watch, _ := cmd.Flags().GetBool("watch")
			if watch && len(args) > 1 {
				return fmt.Errorf("--watch takes a single offers file")
			}

			counts := make([]int, len(args))
			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(4)
			for i, inputFile := range args {
				g.Go(func() error {
					cfg, err := config.NewInputParser().LoadFromFile(inputFile)
					if err != nil {
						return err
					}
					counts[i] = len(cfg.Offers)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			for i, inputFile := range args {
				fmt.Fprintf(out, "Offers file %s is valid (%d offers)\n", inputFile, counts[i])
			}
			if !watch {
				return nil
			}

			inputFile := args[0]
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)\n", inputFile)
			return config.WatchOffers(ctx, inputFile, config.DefaultWatchDebounce, func(cfg *domain.Configuration, err error) {
				if err != nil {
					fmt.Fprintf(out, "✗ %v\n", err)
					return
				}
				fmt.Fprintf(out, "✓ %d offers valid\n", len(cfg.Offers))
			})
		},
	}
	cmd.Flags().Bool("watch", false, "Keep validating the file each time it changes")
	return cmd
}

// runCalculate resolves the offer, computes the report and writes it in the
// requested format
func runCalculate(cmd *cobra.Command, args []string, scheduleStep int) error {
	offer, err := resolveOffer(cmd, args)
	if err != nil {
		return err
	}

	slider := offer.SliderPercent
	if cmd.Flags().Changed("slider") {
		slider, _ = cmd.Flags().GetInt("slider")
	}
	if err := config.NewInputParser().ValidateParameters(offer.Parameters(slider)); err != nil {
		return err
	}

	calc := calculation.NewOfferCalculator()
	if debugMode {
		logger, flush, err := app.NewLogger(true)
		if err != nil {
			return err
		}
		defer flush()
		calc.SetLogger(logger)
	}
	report := calc.Report(offer, slider, scheduleStep)

	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (available: %s)",
			format, strings.Join(output.AvailableFormatterNames(), ", "))
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		filename, err := output.WriteFormatted(f, report, fileExtension(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// resolveOffer picks the offer from the file argument or builds one from flags
func resolveOffer(cmd *cobra.Command, args []string) (domain.Offer, error) {
	if len(args) == 1 {
		cfg, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return domain.Offer{}, err
		}
		ref, _ := cmd.Flags().GetString("ref")
		if ref == "" {
			if len(cfg.Offers) > 1 {
				return domain.Offer{}, fmt.Errorf("--ref is required: %s holds %d offers", args[0], len(cfg.Offers))
			}
			return cfg.Offers[0], nil
		}
		offer, ok := cfg.FindOffer(ref)
		if !ok {
			return domain.Offer{}, fmt.Errorf("offer %s not found in %s", ref, args[0])
		}
		return *offer, nil
	}

	mvStr, _ := cmd.Flags().GetString("market-value")
	if mvStr == "" {
		return domain.Offer{}, fmt.Errorf("either an offers file or --market-value is required")
	}
	mv, err := decimal.NewFromString(mvStr)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("invalid --market-value %q: %w", mvStr, err)
	}
	duration, _ := cmd.Flags().GetInt("duration")
	ref, _ := cmd.Flags().GetString("ref")
	return domain.Offer{
		Reference:        ref,
		MarketValue:      mv,
		ContractDuration: duration,
		SliderPercent:    50,
	}, nil
}

func fileExtension(formatter string) string {
	switch formatter {
	case "csv", "detailed-csv":
		return "csv"
	case "json":
		return "json"
	case "html", "chart":
		return "html"
	default:
		return "txt"
	}
}

func addOfferFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().String("ref", "", "Offer reference (required when the file holds several offers)")
	cmd.Flags().Int("slider", 50, "Balance slider position 0-100 (defaults to the offer's)")
	cmd.Flags().String("market-value", "", "Market value for an ad-hoc offer")
	cmd.Flags().Int("duration", 20, "Contract duration in years for an ad-hoc offer")
	cmd.Flags().StringP("format", "f", defaultFormat,
		"Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
}


func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Write an example offers file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := args[0]
			example := config.NewInputParser().CreateExampleConfiguration()
			if err := config.SaveConfiguration(example, outputFile); err != nil {
				return fmt.Errorf("failed to save example offers: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example offers file written to %s\n", outputFile)
			return nil
		},
	}
}
