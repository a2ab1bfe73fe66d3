package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/spf13/cobra"

	"github.com/fgridley/photo-journal/internal/domain"
	"github.com/fgridley/photo-journal/internal/handler"
	"github.com/fgridley/photo-journal/internal/timeline"
)

// inputRecord is one element of the input JSON array.
type inputRecord struct {
	Date         inputDate `json:"date"`
	LocationName string    `json:"location_name"`
	PhotoURL     string    `json:"photo_url"`
}

// inputDate is a YYYY-MM-DD date that decodes null, "" and unparseable values
// to the zero time, so the builder skips that one record instead of the whole
// file failing to decode.
type inputDate struct {
	time.Time
}

func (d *inputDate) UnmarshalJSON(b []byte) error {
	var od openapi_types.Date
	if err := od.UnmarshalJSON(b); err != nil {
		d.Time = time.Time{}
		return nil
	}
	d.Time = od.Time
	return nil
}

type buildOptions struct {
	sort    bool
	verbose bool
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions
	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Segment photo records into stays and transits",
		Long: `Build reads a JSON array of photo records and prints the timeline.

Each record looks like:
  {"date": "2025-06-01", "location_name": "Tokyo", "photo_url": "https://..."}

Records must be ascending by date unless --sort is given. With no file
argument, records are read from stdin.

Examples:
  journal build trip.json
  cat trip.json | journal build --sort`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runBuild(in, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.sort, "sort", false, "Sort records by date instead of rejecting unsorted input")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug detail to stderr")
	return cmd
}

// runBuild decodes records from in, builds the timeline, and writes it to out
// as indented JSON. Skipped records are logged to errOut.
func runBuild(in io.Reader, out, errOut io.Writer, opts buildOptions) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	var input []inputRecord
	if err := json.NewDecoder(in).Decode(&input); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}
	logger.Debug("records decoded", "count", len(input))

	records := make([]domain.PhotoRecord, len(input))
	for i, r := range input {
		records[i] = domain.PhotoRecord{Date: r.Date.Time, LocationName: r.LocationName, PhotoURL: r.PhotoURL}
	}

	order := timeline.OrderStrict
	if opts.sort {
		order = timeline.OrderSort
	}
	res, err := timeline.NewBuilder(timeline.WithOrder(order), timeline.WithLogger(logger)).Build(records)
	if err != nil {
		return err
	}
	logger.Debug("timeline built", "segments", len(res.Segments), "skipped", len(res.Skipped))

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(handler.TimelineToResponse(res))
}
