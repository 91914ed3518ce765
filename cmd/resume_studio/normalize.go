package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/normalize"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/types"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <resume.json>",
	Short: "Print the normalized resume record",
	Long: `Parse a resume JSON file ("-" reads stdin) the way the editor does and print the resulting record.
Sections that are missing or malformed fall back to the built-in resume. Schema warnings go to stderr.
With --payload the record is printed back in the editable JSON form instead.
With --summary a readable overview replaces the JSON output.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

var (
	normalizePayload bool
	normalizeSummary bool
)

func init() {
	normalizeCmd.Flags().BoolVar(&normalizePayload, "payload", false, "Print the editable JSON form instead of the record")
	normalizeCmd.Flags().BoolVar(&normalizeSummary, "summary", false, "Print a readable summary instead of JSON")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	result, err := normalize.Normalize(types.DefaultResumeData(), raw)
	if err != nil {
		return fmt.Errorf("%s: %w", normalize.ParseErrorMessage, err)
	}
	if normalizeSummary {
		printer := observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintResume(result.Data, result.Employer)
		printer.PrintWarnings(result.Warnings)
		return nil
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	var out []byte
	if normalizePayload {
		out, err = normalize.MarshalPayload(normalize.BuildPayload(result.Data, result.Employer))
	} else {
		out, err = json.MarshalIndent(struct {
			Employer string           `json:"employer"`
			Data     types.ResumeData `json:"data"`
		}{result.Employer, result.Data}, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
