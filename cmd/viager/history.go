package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/viager/internal/output"
)

var errNoLedger = errors.New("no ledger configured (set ledger.path in the settings file or VIAGER_LEDGER_PATH)")

func newSubmissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List recorded wizard responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, _ := cmd.Flags().GetString("ref")
			asJSON, _ := cmd.Flags().GetBool("json")

			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.Ledger == nil {
				return errNoLedger
			}

			subs, err := rt.Ledger.Submissions(cmd.Context(), ref)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, subs)
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No submissions recorded")
				return nil
			}

			rows := make([][]string, 0, len(subs))
			for _, sub := range subs {
				rows = append(rows, []string{
					sub.SubmittedAt.Format("2006-01-02 15:04"),
					sub.OfferReference,
					string(sub.Payload.DecisionStatus),
					string(sub.Payload.AdvisorChoice),
					string(sub.Payload.DeclineReason),
					sub.Payload.DeclineDetails,
					sub.ID,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Submitted", "Offer", "Status", "Advisor", "Reason", "Details", "ID"}, rows))
			return nil
		},
	}
	cmd.Flags().String("ref", "", "Only this offer")
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")
	return cmd
}

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List balance slider audit events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, _ := cmd.Flags().GetString("ref")
			limit, _ := cmd.Flags().GetInt("limit")
			asJSON, _ := cmd.Flags().GetBool("json")

			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()
			if rt.Ledger == nil {
				return errNoLedger
			}

			events, err := rt.Ledger.AuditEvents(cmd.Context(), ref, limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, events)
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No audit events recorded")
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, e := range events {
				rows = append(rows, []string{
					e.RecordedAt.Format("2006-01-02 15:04:05"),
					string(e.Action),
					e.OfferReference,
					strconv.Itoa(e.Details.SliderPercent) + "%",
					output.FormatCurrency(e.Details.LumpSum),
					output.FormatCurrency(e.Details.MarketValue),
					strconv.Itoa(e.Details.ContractDuration),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Recorded", "Action", "Offer", "Slider", "Lump sum", "Market value", "Years"}, rows))
			return nil
		},
	}
	cmd.Flags().String("ref", "", "Only this offer")
	cmd.Flags().Int("limit", 0, "Show at most N events (0 for all)")
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")
	return cmd
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			return style
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
