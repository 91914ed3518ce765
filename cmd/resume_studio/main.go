// Package main provides the resume_studio command line: the editor server and
// offline tools for building, checking and crawling.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "resume_studio",
	Short: "Resume JSON editor and DOCX builder",
	Long: "Resume Studio edits a resume as JSON, renders it to a Word document named after the target employer, " +
		"and fetches job descriptions through a Firecrawl-compatible crawl API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file (environment variables override it)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
