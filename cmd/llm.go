package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/familyhub/internal/llm"
	"github.com/abhisek/familyhub/internal/store"
)

func newLLMCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "llm",
		Short: "Inspect LLM requests made while authoring hints",
	}

	var (
		limit   int
		purpose string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent LLM requests",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			events, err := e.store.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No LLM requests found.")
				return nil
			}

			fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"SEQ", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Fprintln(out, strings.Repeat("─", 96))
			for _, ev := range events {
				if purpose != "" && ev.Purpose != purpose {
					continue
				}
				ok := "✓"
				if !ev.Success {
					ok = "✗ " + truncate(ev.ErrorMessage, 40)
				}
				fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
					ev.Sequence,
					ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
					ev.Purpose,
					truncate(ev.Model, 28),
					ev.InputTokens,
					ev.OutputTokens,
					ev.LatencyMs,
					ok,
				)
			}
			return nil
		}),
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "Number of requests to show")
	list.Flags().StringVarP(&purpose, "purpose", "p", "", "Filter by purpose (e.g. hint)")

	usage := &cobra.Command{
		Use:   "usage",
		Short: "Show token usage and estimated cost per model",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			events, err := e.store.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			out := cmd.OutOrStdout()
			summaries := llm.Summarize(events)
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}

			rule := strings.Repeat("─", 80)
			fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %9s\n", "Model", "Calls", "Failed", "Input", "Output", "Cost")
			fmt.Fprintln(out, rule)

			var (
				total    float64
				unpriced []string
			)
			for _, s := range summaries {
				cost := "?"
				if s.Priced {
					cost = formatCost(s.CostUSD)
					total += s.CostUSD
				} else {
					unpriced = append(unpriced, s.Model)
				}
				fmt.Fprintf(out, "%-32s  %6d  %6d  %10d  %10d  %9s\n",
					truncate(s.Model, 32), s.Requests, s.Failures, s.InputTokens, s.OutputTokens, cost)
			}
			fmt.Fprintln(out, rule)

			label := "TOTAL"
			if len(unpriced) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Fprintf(out, "%-32s  %6s  %6s  %10s  %10s  %9s\n", label, "", "", "", "", formatCost(total))
			if len(unpriced) > 0 {
				fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
			}
			return nil
		}),
	}

	c.AddCommand(list, usage)
	return c
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
