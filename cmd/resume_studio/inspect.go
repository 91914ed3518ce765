package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/rendering"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <resume.docx>",
	Short: "Print the text of a Word document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	content, err := readInput(args[0])
	if err != nil {
		return err
	}
	text, err := rendering.ExtractText(content)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
