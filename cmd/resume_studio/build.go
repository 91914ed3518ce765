package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/normalize"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/storage"
	"github.com/jonathan/resume-studio/internal/types"
)

var buildCmd = &cobra.Command{
	Use:   "build <resume.json>",
	Short: "Render a resume JSON file to a Word document",
	Long: `Render a resume JSON file ("-" reads stdin) to .docx. The file is named after the employer
unless --out is given. With --upload the document is also stored in the artifact bucket or directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

var (
	buildOutput string
	buildUpload bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "out", "o", "", "Output file or directory (default: current directory)")
	buildCmd.Flags().BoolVar(&buildUpload, "upload", false, "Store the document in the configured artifact storage")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	result, err := normalize.Normalize(types.DefaultResumeData(), raw)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	content, err := rendering.RenderDOCX(result.Data)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	fileName := rendering.FileName(result.Employer)
	outPath := outputPath(buildOutput, fileName)
	if err := os.WriteFile(outPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", outPath, len(content))

	if !buildUpload {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	store, err := newArtifactStore(ctx, cfg)
	if err != nil {
		return err
	}
	key := storage.ArtifactKey(cfg.ArtifactPrefix, fileName, time.Now())
	location, err := store.Put(ctx, key, rendering.ContentType, content)
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", location)
	return nil
}

// outputPath resolves --out: empty means the current directory, an existing
// directory receives fileName, anything else is the file path itself.
func outputPath(out, fileName string) string {
	if out == "" {
		return fileName
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, fileName)
	}
	return out
}
