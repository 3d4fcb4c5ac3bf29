// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/harmonia/internal/client"
	"github.com/taibuivan/harmonia/internal/deals/deliverable"
	"github.com/taibuivan/harmonia/pkg/date"
)

// # Manifest

// Manifest is the YAML document read by "deliverables import".
//
//	deal_id: 0190f3c2-...
//	start_date: 2026-03-01
//	deliverables:
//	  - name: Master WAV
//	    kind: audio
//	    due_offset_days: 7
//	  - name: Cover art
//	    kind: artwork
//	    due_date: 2026-03-20
//	    notes: 3000x3000 JPG
type Manifest struct {
	DealID       string         `yaml:"deal_id"`
	StartDate    string         `yaml:"start_date"`
	Deliverables []ManifestItem `yaml:"deliverables"`
}

// ManifestItem is one deliverable in a [Manifest]. DueDate wins over DueOffsetDays.
type ManifestItem struct {
	Name          string `yaml:"name"`
	Kind          string `yaml:"kind"`
	Status        string `yaml:"status"`
	DueDate       string `yaml:"due_date"`
	DueOffsetDays *int   `yaml:"due_offset_days"`
	Notes         string `yaml:"notes"`
}

var validKinds = map[deliverable.Kind]bool{
	deliverable.KindAudio: true, deliverable.KindArtwork: true, deliverable.KindMetadata: true,
	deliverable.KindVideo: true, deliverable.KindDocument: true, deliverable.KindOther: true,
}

// ParseManifest decodes a manifest and resolves it into create payloads.
// Every problem is reported at once, one per line.
func ParseManifest(r io.Reader) (*Manifest, []client.DeliverableInput, error) {
	var manifest Manifest
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&manifest); err != nil {
		return nil, nil, fmt.Errorf("parse manifest: %w", err)
	}

	var problems []string
	if strings.TrimSpace(manifest.DealID) == "" {
		problems = append(problems, "deal_id is required")
	}
	if len(manifest.Deliverables) == 0 {
		problems = append(problems, "deliverables must not be empty")
	}

	var start *date.Date
	if manifest.StartDate != "" {
		parsed, err := date.Parse(manifest.StartDate)
		if err != nil {
			problems = append(problems, fmt.Sprintf("start_date %q is not YYYY-MM-DD", manifest.StartDate))
		} else {
			start = &parsed
		}
	}

	inputs := make([]client.DeliverableInput, 0, len(manifest.Deliverables))
	for i, item := range manifest.Deliverables {
		at := fmt.Sprintf("deliverables[%d]", i)

		input := client.DeliverableInput{
			DealID: strings.TrimSpace(manifest.DealID),
			Name:   strings.TrimSpace(item.Name),
			Kind:   deliverable.Kind(strings.ToLower(strings.TrimSpace(item.Kind))),
			Status: deliverable.Status(strings.TrimSpace(item.Status)),
		}
		if input.Name == "" {
			problems = append(problems, at+".name is required")
		}
		if !validKinds[input.Kind] {
			problems = append(problems, fmt.Sprintf("%s.kind %q is not a deliverable kind", at, item.Kind))
		}
		if notes := strings.TrimSpace(item.Notes); notes != "" {
			input.Notes = &notes
		}

		switch {
		case item.DueDate != "":
			due, err := date.Parse(item.DueDate)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s.due_date %q is not YYYY-MM-DD", at, item.DueDate))
				break
			}
			input.DueDate = &due
		case item.DueOffsetDays != nil:
			if start == nil {
				problems = append(problems, at+".due_offset_days needs start_date")
				break
			}
			due := start.AddDays(*item.DueOffsetDays)
			input.DueDate = &due
		}

		inputs = append(inputs, input)
	}

	if len(problems) > 0 {
		return nil, nil, errors.New("invalid manifest:\n  " + strings.Join(problems, "\n  "))
	}
	return &manifest, inputs, nil
}

// # Commands

// NewDeliverablesCommand creates the deliverables command group.
func NewDeliverablesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deliverables",
		Short: "Manage deal deliverables",
	}
	cmd.AddCommand(newDeliverablesImportCommand(opts))
	return cmd
}

func newDeliverablesImportCommand(opts *RootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <manifest.yaml>",
		Short: "Bulk-create deliverables from a YAML manifest",
		Long: `Bulk-create deliverables from a YAML manifest.

The whole manifest is checked before anything is sent. Items are then created
in parallel and each one is reported on its own line.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			manifest, inputs, err := ParseManifest(file)
			if err != nil {
				return err
			}

			if dryRun {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Manifest OK: %d deliverables for deal %s\n", len(inputs), manifest.DealID)
				return err
			}

			return opts.run(cmd, func(ctx context.Context, c *client.Client, out io.Writer) error {
				return reportResults(out, opts.format(), c.CreateDeliverables(ctx, inputs))
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the manifest without creating anything")
	return cmd
}
