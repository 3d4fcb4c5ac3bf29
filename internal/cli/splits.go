// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/taibuivan/harmonia/internal/client"
	"github.com/taibuivan/harmonia/internal/rights/split"
)

// NewSplitsCommand creates the splits command group.
func NewSplitsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splits",
		Short: "Inspect ownership splits",
	}
	cmd.AddCommand(newSplitsShowCommand(opts))
	return cmd
}

func newSplitsShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <work|recording> <id> <writer|publisher|master>",
		Short: "Show the shares of one split bucket and whether they total 100%",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket := split.Bucket{
				SubjectType: split.SubjectType(args[0]),
				SubjectID:   args[1],
				RightType:   split.RightType(args[2]),
			}
			if !bucket.Valid() {
				return fmt.Errorf("unknown bucket %s/%s", args[0], args[2])
			}

			return opts.run(cmd, func(ctx context.Context, c *client.Client, out io.Writer) error {
				breakdown, err := c.Splits(ctx, bucket)
				if err != nil {
					return err
				}
				if opts.format() == FormatJSON {
					return writeJSON(out, breakdown)
				}
				return printBreakdown(out, breakdown)
			})
		},
	}
}

func printBreakdown(out io.Writer, breakdown *split.Breakdown) error {
	table := newTable(out)
	fmt.Fprintln(table, "ENTITY\tSHARE\tTERRITORY\tLOCKED")
	for _, share := range breakdown.Shares {
		fmt.Fprintf(table, "%s\t%.2f%%\t%s\t%t\n", share.EntityID, share.SharePercentage, share.Territory, share.Locked)
	}
	if err := table.Flush(); err != nil {
		return err
	}

	summary := breakdown.Summary
	_, err := fmt.Fprintf(out, "\nTotal %.2f%% (%s, delta %+.2f, %d shares)\n", summary.Total, summary.Status, summary.Delta, summary.Count)
	return err
}
