package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/normalize"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default resume JSON seed",
	Long:  "Write the built-in resume as editable JSON to the seed path served at /resume.json.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

var (
	initOutput string
	initForce  bool
)

func init() {
	initCmd.Flags().StringVarP(&initOutput, "out", "o", "", "Output path (default: SEED_PATH)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := initOutput
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.SeedPath
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	content, err := normalize.DefaultJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(content, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
