package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/l3aro/go-callgraph-oracle/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gco configuration interactively",
	Long: `Guides you through setting up gco configuration step by step.
Creates a config file with output directory, entry depth and worker settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	cfg := config.DefaultConfig()

	outputDir := cfg.OutputDir
	entryDepth := strconv.Itoa(cfg.EntryDepth)
	workers := strconv.Itoa(cfg.Workers)
	verbose := cfg.Verbose

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory for generated sources and oracles").
				Placeholder(cfg.OutputDir).
				Value(&outputDir),
			huh.NewInput().
				Title("Default entry depth for synthesized programs").
				Placeholder(entryDepth).
				Validate(validatePositiveInt).
				Value(&entryDepth),
			huh.NewInput().
				Title("Batch worker pool size").
				Placeholder(workers).
				Validate(validatePositiveInt).
				Value(&workers),
			huh.NewConfirm().
				Title("Enable verbose logging?").
				Value(&verbose),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	cfg.EntryDepth, _ = strconv.Atoi(entryDepth)
	cfg.Workers, _ = strconv.Atoi(workers)
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return err
	}

	path := config.GlobalPath()
	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Printf("Configuration saved to %s\n", path)
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}
