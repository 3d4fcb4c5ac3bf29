// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taibuivan/harmonia/internal/client"
	"github.com/taibuivan/harmonia/internal/deals/deliverable"
	"github.com/taibuivan/harmonia/pkg/date"
)

// NewPacksCommand creates the packs command group.
func NewPacksCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Work with deliverable packs",
	}
	cmd.AddCommand(newPacksApplyCommand(opts))
	return cmd
}

type packsApplyOptions struct {
	dealID string
	start  string
	atomic bool
}

func newPacksApplyCommand(opts *RootOptions) *cobra.Command {
	applyOpts := &packsApplyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <pack-id>",
		Short: "Create one deliverable per pack item on a deal",
		Long: `Create one deliverable per pack item on a deal.

By default every item is created with its own request and reported on its
own line, so a failed item does not hold back the rest. With --atomic the
server applies the whole pack in one transaction instead.

Due dates are offsets from --start, or from the deal start date when omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, c *client.Client, out io.Writer) error {
				return runPacksApply(ctx, c, out, opts.format(), args[0], applyOpts)
			})
		},
	}

	cmd.Flags().StringVar(&applyOpts.dealID, "deal", "", "deal id (required)")
	cmd.Flags().StringVar(&applyOpts.start, "start", "", "anchor date YYYY-MM-DD (default: deal start date)")
	cmd.Flags().BoolVar(&applyOpts.atomic, "atomic", false, "apply server side in one transaction")
	_ = cmd.MarkFlagRequired("deal")

	return cmd
}

func runPacksApply(ctx context.Context, c *client.Client, out io.Writer, format, packID string, applyOpts *packsApplyOptions) error {
	var start *date.Date
	if applyOpts.start != "" {
		parsed, err := date.Parse(applyOpts.start)
		if err != nil {
			return fmt.Errorf("invalid --start %q: %w", applyOpts.start, err)
		}
		start = &parsed
	}

	if applyOpts.atomic {
		created, err := c.ApplyPackAtomic(ctx, packID, deliverable.ApplyInput{DealID: applyOpts.dealID, StartDate: start})
		if err != nil {
			return err
		}
		if format == FormatJSON {
			return writeJSON(out, created)
		}
		_, err = fmt.Fprintf(out, "Created %d deliverables\n", len(created))
		return err
	}

	if start == nil {
		deal, err := c.GetDeal(ctx, applyOpts.dealID)
		if err != nil {
			return err
		}
		start = &deal.StartDate
	}

	results, err := c.ApplyPack(ctx, packID, applyOpts.dealID, *start)
	if err != nil {
		return err
	}
	return reportResults(out, format, results)
}

// itemReport is the JSON shape of one fan-out result.
type itemReport struct {
	Name  string                   `json:"name"`
	OK    bool                     `json:"ok"`
	Item  *deliverable.Deliverable `json:"deliverable,omitempty"`
	Error string                   `json:"error,omitempty"`
}

// reportResults prints one line per item and fails when any item failed.
func reportResults(out io.Writer, format string, results []client.ItemResult) error {
	if format == FormatJSON {
		reports := make([]itemReport, 0, len(results))
		for _, result := range results {
			report := itemReport{Name: result.Input.Name, OK: result.Err == nil, Item: result.Deliverable}
			if result.Err != nil {
				report.Error = result.Err.Error()
			}
			reports = append(reports, report)
		}
		if err := writeJSON(out, reports); err != nil {
			return err
		}
	} else {
		table := newTable(out)
		fmt.Fprintln(table, "ITEM\tRESULT\tDUE")
		for _, result := range results {
			due := "-"
			if result.Input.DueDate != nil {
				due = result.Input.DueDate.String()
			}
			outcome := "created"
			if result.Err != nil {
				outcome = "failed: " + result.Err.Error()
			}
			fmt.Fprintf(table, "%s\t%s\t%s\n", result.Input.Name, outcome, due)
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}

	if failed := client.Failed(results); failed > 0 {
		return &PartialError{Failed: failed, Total: len(results)}
	}
	return nil
}
