package commands

import (
	"path/filepath"

	"github.com/dyluth/radar/internal/printer"
	"github.com/dyluth/radar/internal/scaffold"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Create a starter radar.yml and sample document",
	Long: `Create a starter project in DIR (default: the current directory).

Creates:
  • radar.yml      - Configuration with every default spelled out
  • tech-radar.csv - Sample pipe-delimited document

Use --force to overwrite existing files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite existing radar.yml and tech-radar.csv")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	created, err := scaffold.Initialize(dir, forceInit)
	if err != nil {
		return printer.Error("initialization failed", err.Error(), nil)
	}

	printer.Success("Initialized radar project\n")
	printer.Info("\nCreated:\n")
	for _, f := range created {
		printer.Info("  ✓ %s\n", filepath.Join(dir, f))
	}
	printer.Info("\nNext steps:\n")
	printer.Info("  1. Edit %s with your own technologies\n", scaffold.SampleFile)
	printer.Info("  2. Run 'radar plot' to check the layout\n")
	printer.Info("  3. Run 'radar import' to load it into the item store\n")
	return nil
}
