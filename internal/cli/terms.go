// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taibuivan/harmonia/internal/client"
	"github.com/taibuivan/harmonia/internal/contracts/terms"
)

// NewTermsCommand creates the terms command group.
func NewTermsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terms",
		Short: "Edit contract term drafts",
	}
	cmd.AddCommand(newTermsShowCommand(opts))
	cmd.AddCommand(newTermsResizeCommand(opts))
	cmd.AddCommand(newTermsCopyFirstYearCommand(opts))
	return cmd
}

func newTermsShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <deal-id>",
		Short: "Print the saved terms draft of a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client, out io.Writer) error {
				draft, err := c.GetTermsDraft(ctx, args[0])
				if err != nil {
					return err
				}
				if draft == nil {
					return fmt.Errorf("deal %s has no terms draft", args[0])
				}
				return printDraft(out, opts.format(), draft)
			})
		},
	}
}

func newTermsResizeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resize <deal-id> <years>",
		Short: "Change the contract duration, copying the last year forward",
		Long: `Change the contract duration of a terms draft.

Growing copies the last year's rates into every new year. Shrinking drops
the trailing years. A deal without a draft starts from an all-zero draft.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			years, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("years must be a number: %q", args[1])
			}

			return opts.run(cmd, func(ctx context.Context, c *client.Client, out io.Writer) error {
				return editDraft(ctx, c, out, opts.format(), args[0], true, func(t *terms.Terms) error {
					return t.Resize(years)
				})
			})
		},
	}
}

func newTermsCopyFirstYearCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "copy-first-year <deal-id>",
		Short: "Overwrite every later year with the year 1 rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client, out io.Writer) error {
				return editDraft(ctx, c, out, opts.format(), args[0], false, func(t *terms.Terms) error {
					t.CopyFirstYear()
					return nil
				})
			})
		},
	}
}

// editDraft loads a draft, applies edit and saves it against the version read.
func editDraft(ctx context.Context, c *client.Client, out io.Writer, format, dealID string, createMissing bool, edit func(*terms.Terms) error) error {
	draft, err := c.GetTermsDraft(ctx, dealID)
	if err != nil {
		return err
	}

	input := terms.SaveInput{}
	switch {
	case draft != nil:
		input.Terms = draft.Terms
		input.Version = draft.Version
	case createMissing:
		input.Terms = *terms.New(terms.MinYears)
	default:
		return fmt.Errorf("deal %s has no terms draft", dealID)
	}

	if err := edit(&input.Terms); err != nil {
		return err
	}

	saved, err := c.SaveTermsDraft(ctx, dealID, input)
	if client.Conflict(err) {
		return errors.New("the draft changed since it was read; run the command again")
	}
	if err != nil {
		return err
	}
	return printDraft(out, format, saved)
}

func printDraft(out io.Writer, format string, draft *terms.Draft) error {
	if format == FormatJSON {
		return writeJSON(out, draft)
	}

	table := newTable(out)
	fmt.Fprint(table, "YEAR")
	for _, category := range terms.Categories {
		if draft.Enabled[category] {
			fmt.Fprintf(table, "\t%s", category)
		}
	}
	fmt.Fprintln(table)

	for year := 1; year <= draft.DurationYears; year++ {
		fmt.Fprintf(table, "%d", year)
		for _, category := range terms.Categories {
			if draft.Enabled[category] {
				fmt.Fprintf(table, "\t%.2f", draft.Rate(year, category))
			}
		}
		fmt.Fprintln(table)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d years, version %d\n", draft.DurationYears, draft.Version)
	return err
}
