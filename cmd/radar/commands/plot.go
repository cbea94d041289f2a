package commands

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dyluth/radar/internal/layout"
	"github.com/dyluth/radar/internal/pipeline"
	"github.com/dyluth/radar/internal/printer"
	"github.com/dyluth/radar/internal/render"
	"github.com/dyluth/radar/internal/report"
	"github.com/dyluth/radar/internal/source"
	"github.com/spf13/cobra"
)

const formatSVG = "svg"

var (
	plotSource sourceFlags
	plotFormat string
	plotOut    string
	plotSeed   int64
	plotTitle  string
)

var plotCmd = &cobra.Command{
	Use:   "plot [LOCATION]",
	Short: "Validate rows and lay out a radar",
	Long: `Read rows from a source, validate them, build the radar and place every blip.

LOCATION is a file path or an http(s) URL. Without it the source section of
radar.yml is used.

Required columns: name, ring, quadrant. Optional: isNew, topic, description.
A radar has at most four quadrants and at most the configured number of
rings (four by default).

Output Formats:
  table - Numbered blips with ring, quadrant and coordinates
  jsonl - One JSON object per blip
  json  - Full radar document with rings, quadrants and blips
  svg   - Rendered radar image

Examples:
  # Lay out a pipe-delimited file
  radar plot tech-radar.csv

  # Render the stored items to an image with a fixed layout
  radar plot --kind store --format svg --seed 7 --out radar.svg

  # Comma-separated document over HTTP as JSON
  radar plot https://example.com/radar.csv -d , -f json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlot,
}

func init() {
	plotSource.register(plotCmd)
	plotCmd.Flags().StringVarP(&plotFormat, "format", "f", string(report.FormatTable), "Output format: table, jsonl, json or svg")
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "", "Write output to a file instead of stdout")
	plotCmd.Flags().Int64Var(&plotSeed, "seed", 0, "Layout seed for reproducible placement (0 = config or random)")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "Radar title (default: config title or document name)")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	format := strings.ToLower(plotFormat)
	var reportFormat report.Format
	if format != formatSVG {
		f, err := report.ParseFormat(format)
		if err != nil {
			return printer.Error("invalid output format", err.Error(), []string{"Valid formats: table, jsonl, json, svg"})
		}
		reportFormat = f
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var location string
	if len(args) > 0 {
		location = args[0]
	}

	fetcher, closeSource, err := openSource(ctx, cfg, &plotSource, location)
	if err != nil {
		return err
	}
	defer closeSource()

	batch, err := fetcher.Fetch(ctx)
	if err != nil {
		return printer.Failure(err)
	}

	seed := plotSeed
	if seed == 0 {
		seed = cfg.Layout.Seed
	}
	rnd, seed := layout.NewSeededRNG(seed)
	log.Printf("[DEBUG] Layout seed %d", seed)

	res, err := pipeline.Run(batch.Headers, batch.Rows, pipeline.Options{
		Geometry: cfg.Layout.Geometry(),
		Rand:     rnd,
	})
	if err != nil {
		return printer.Failure(err)
	}

	title := firstNonEmpty(plotTitle, cfg.Title, source.Title(batch.Name, time.Now()))

	var w io.Writer = printer.Out
	if plotOut != "" {
		f, err := os.Create(plotOut)
		if err != nil {
			return printer.Error("cannot write output", err.Error(), nil)
		}
		defer f.Close()
		w = f
	}

	if format == formatSVG {
		err = render.SVG(w, res, title)
	} else {
		err = report.FormatPlacements(w, res, title, reportFormat)
	}
	if err != nil {
		return printer.Failure(err)
	}

	if plotOut != "" {
		printer.Success("Wrote %d blips to %s (seed %d)\n", len(res.Placements), plotOut, seed)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
