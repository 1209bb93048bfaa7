package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/familyhub/internal/hints"
)

func newHintCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "hint",
		Short: "Look up and generate memory aids for multiplication facts",
	}

	show := &cobra.Command{
		Use:   "show <a> <b>",
		Short: "Show the memory aid for a × b",
		Args:  cobra.ExactArgs(2),
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			a, err := parseOperand(args[0])
			if err != nil {
				return err
			}
			b, err := parseOperand(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.engine.Mnemonic(cmd.Context(), a, b))
			return nil
		}),
	}

	var source string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the memory aid for every fact",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			entries, err := e.book.Catalogue(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FACT\tSOURCE\tHINT")
			for _, en := range entries {
				if source != "" && string(en.Source) != source {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", en.Fact, en.Source, en.Hint)
			}
			return tw.Flush()
		}),
	}
	list.Flags().StringVar(&source, "source", "", "Only show hints from this source (curated, generated, template)")

	var overwrite bool
	generate := &cobra.Command{
		Use:   "generate [<a> <b>]",
		Short: "Author hints with the configured LLM",
		Long: "Author a hint for a × b, or with no arguments for every fact that has neither a curated " +
			"nor a generated hint (--overwrite regenerates existing generated hints too).",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("accepts 0 or 2 args, received %d", len(args))
			}
			return nil
		},
		RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
			ctx := cmd.Context()
			p, err := e.provider(ctx)
			if err != nil {
				return err
			}
			author := hints.NewAuthor(p, e.store.HintRepo(), e.log)
			out := cmd.OutOrStdout()

			if len(args) == 2 {
				a, err := parseOperand(args[0])
				if err != nil {
					return err
				}
				b, err := parseOperand(args[1])
				if err != nil {
					return err
				}
				h, err := author.Generate(ctx, a, b)
				if errors.Is(err, hints.ErrCurated) {
					return fmt.Errorf("%d × %d already has a curated hint", a, b)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", h.FactKey, h.Hint)
				return nil
			}

			report, err := author.Fill(ctx, overwrite)
			fmt.Fprintf(out, "Generated %d hints, skipped %d.\n", len(report.Generated), report.Skipped)
			return err
		}),
	}
	generate.Flags().BoolVar(&overwrite, "overwrite", false, "Regenerate hints that were generated before")

	c.AddCommand(show, list, generate)
	return c
}
