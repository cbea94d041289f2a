// Package pipeline turns a batch of raw rows into a laid-out radar.
//
// The stages run strictly in order: sanitize, verify headers, verify
// content, build the domain model, place blips. The first failing stage
// ends the run and no partial result is returned.
package pipeline

import (
	"fmt"
	"log"

	"github.com/dyluth/radar/internal/ingest"
	"github.com/dyluth/radar/internal/layout"
	"github.com/dyluth/radar/pkg/radar"
)

// Options configures a run.
type Options struct {
	Geometry layout.Geometry
	Rand     layout.Source // nil means time-seeded
}

// DefaultOptions returns options with the default geometry.
func DefaultOptions() Options {
	return Options{Geometry: layout.DefaultGeometry()}
}

// Result is a fully assembled radar with one placement per blip.
type Result struct {
	Radar      *radar.Radar
	Placements []layout.Placement
	Geometry   layout.Geometry
}

// Run executes the pipeline over one batch.
func Run(headers []string, rows []ingest.RawRow, opts Options) (*Result, error) {
	entries := ingest.SanitizeAll(rows)

	validator := ingest.NewContentValidator(headers)
	if err := validator.VerifyHeaders(); err != nil {
		log.Printf("[WARN] Rejected source headers %v: %v", headers, err)
		return nil, err
	}
	if err := validator.VerifyContent(entries); err != nil {
		log.Printf("[WARN] Rejected source content: %v", err)
		return nil, err
	}

	r, err := radar.Build(entries, opts.Geometry.MaxRings)
	if err != nil {
		if _, ok := radar.AsMalformed(err); ok {
			log.Printf("[WARN] Rejected source content: %v", err)
			return nil, err
		}
		return nil, fmt.Errorf("failed to build radar: %w", err)
	}

	engine, err := layout.NewEngine(opts.Geometry, opts.Rand)
	if err != nil {
		return nil, fmt.Errorf("failed to create layout engine: %w", err)
	}

	placements, err := engine.Place(r)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out radar: %w", err)
	}

	crowded := 0
	for _, p := range placements {
		if p.Crowded {
			crowded++
		}
	}
	if crowded > 0 {
		log.Printf("[WARN] %d of %d blips could not be separated after %d attempts", crowded, len(placements), opts.Geometry.MaxAttempts)
	}

	log.Printf("[INFO] Laid out %d blips across %d quadrants and %d rings", len(placements), len(r.Quadrants()), len(r.Rings()))

	return &Result{Radar: r, Placements: placements, Geometry: engine.Geometry()}, nil
}
