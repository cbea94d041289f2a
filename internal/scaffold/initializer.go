// Package scaffold writes a starter radar.yml and sample document.
package scaffold

import (
	"context"
	"embed"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/dyluth/radar/internal/config"
	"github.com/dyluth/radar/internal/pipeline"
	"github.com/dyluth/radar/internal/source"
)

//go:embed templates/*
var templatesFS embed.FS

// Files created by Initialize, relative to the target directory.
const (
	ConfigFile = config.DefaultPath
	SampleFile = "tech-radar.csv"
)

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Template    string
	Permissions os.FileMode
}

var starterFiles = []FileInfo{
	{Path: ConfigFile, Template: "templates/radar.yml.tmpl", Permissions: 0644},
	{Path: SampleFile, Template: "templates/tech-radar.csv.tmpl", Permissions: 0644},
}

// CheckExisting returns an error naming any starter file already in dir.
func CheckExisting(dir string) error {
	var existing []string
	for _, f := range starterFiles {
		if _, err := os.Stat(filepath.Join(dir, f.Path)); err == nil {
			existing = append(existing, f.Path)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	msg := "project already initialized\n\nFound existing"
	if len(existing) == 1 {
		msg += fmt.Sprintf(": %s\n", existing[0])
	} else {
		msg += " files:\n"
		for _, f := range existing {
			msg += fmt.Sprintf("  - %s\n", f)
		}
	}
	msg += "\nUse 'radar init --force' to overwrite them"

	return fmt.Errorf("%s", msg)
}

// Initialize writes the starter files into dir and checks that they load.
// Existing files are overwritten only when force is set.
func Initialize(dir string, force bool) ([]string, error) {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	var created []string
	for _, f := range starterFiles {
		content, err := templatesFS.ReadFile(f.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s template: %w", f.Path, err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.Path), content, f.Permissions); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
		created = append(created, f.Path)
	}

	if err := validateCreatedFiles(dir); err != nil {
		return nil, err
	}

	return created, nil
}

// validateCreatedFiles loads the written config and runs the sample
// document through the pipeline.
func validateCreatedFiles(dir string) error {
	cfg, err := config.Load(filepath.Join(dir, ConfigFile))
	if err != nil {
		return fmt.Errorf("created %s is invalid: %w", ConfigFile, err)
	}

	sample := &source.File{Path: filepath.Join(dir, SampleFile)}
	batch, err := sample.Fetch(context.Background())
	if err != nil {
		return fmt.Errorf("failed to read created %s: %w", SampleFile, err)
	}

	opts := pipeline.Options{Geometry: cfg.Layout.Geometry(), Rand: rand.New(rand.NewSource(1))}
	if _, err := pipeline.Run(batch.Headers, batch.Rows, opts); err != nil {
		return fmt.Errorf("created %s is invalid: %w", SampleFile, err)
	}

	return nil
}
