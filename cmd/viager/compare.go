package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/viager/internal/compare"
	"github.com/rgehrsitz/viager/internal/config"
	"github.com/rgehrsitz/viager/internal/transform"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [offers-file]",
		Short: "Compare an offer with what-if variants or other offers",
		Long: `Compare the payments of one offer against variants built from templates
or transforms, or against other offers of the same file.

Examples:
  viager compare offers.yaml --ref VG-2031 --with max_lump_sum,shorter_5yr
  viager compare offers.yaml --ref VG-2031 --transform set_slider:percent=80
  viager compare offers.yaml --ref VG-2031 --offers VG-2032,VG-2033 -f csv
  viager compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := compare.NewCompareEngine(nil)
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(engine.TemplateRegistry))
				return nil
			}

			with, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			others, _ := cmd.Flags().GetStringSlice("offers")

			var set *compare.ComparisonSet
			if len(others) > 0 {
				if len(args) != 1 {
					return fmt.Errorf("--offers needs an offers file")
				}
				ref, _ := cmd.Flags().GetString("ref")
				if ref == "" {
					return fmt.Errorf("--ref is required with --offers")
				}
				cfg, err := config.NewInputParser().LoadFromFile(args[0])
				if err != nil {
					return err
				}
				set, err = engine.CompareOffers(cmd.Context(), cfg, ref, others)
				if err != nil {
					return err
				}
			} else {
				base, err := resolveOffer(cmd, args)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("slider") {
					base.SliderPercent, _ = cmd.Flags().GetInt("slider")
				}
				set, err = engine.Compare(cmd.Context(), base, compare.CompareOptions{
					Templates:  transform.ParseTemplateList(with),
					Transforms: transforms,
				})
				if err != nil {
					return err
				}
			}
			if len(args) == 1 {
				set.ConfigPath = args[0]
			}

			rank, _ := cmd.Flags().GetString("rank")
			set, err := compare.RankAlternatives(set, rank)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch format {
			case "table":
				out = (&compare.TableFormatter{}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json", "json-compact":
				out, err = (&compare.JSONFormatter{Pretty: format == "json"}).Format(set)
				out += "\n"
			default:
				return fmt.Errorf("unknown output format %q (available: table, compact, csv, json, json-compact)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("ref", "", "Base offer reference (required when the file holds several offers)")
	cmd.Flags().Int("slider", 50, "Base slider position (defaults to the offer's)")
	cmd.Flags().String("market-value", "", "Market value for an ad-hoc base offer")
	cmd.Flags().Int("duration", 20, "Contract duration in years for an ad-hoc base offer")
	cmd.Flags().String("with", "", "Comma-separated template names")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value (repeatable)")
	cmd.Flags().StringSlice("offers", nil, "Compare against these offers of the file instead")
	cmd.Flags().Bool("list-templates", false, "List the built-in templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json, json-compact)")
	cmd.Flags().String("rank", "", "Order variants by lump_sum, monthly or total, largest first")
	return cmd
}
