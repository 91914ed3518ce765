package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/crawl"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/ingestion"
	"github.com/jonathan/resume-studio/internal/observability"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <url>",
	Short: "Fetch a job description",
	Long: `Fetch the text of a job posting through the crawl API, printing progress to stderr.
Without a crawl API key or self-hosted base URL, or with --local, the page is scraped directly.
Results are cached in Postgres when DATABASE_URL is set.
With --out-dir the cleaned text is saved as job_posting.md beside a job_posting.meta.json record.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

var (
	crawlOutput  string
	crawlLocal   bool
	crawlNoCache bool
	crawlOutDir  string
	crawlSummary bool
)

func init() {
	crawlCmd.Flags().StringVarP(&crawlOutput, "out", "o", "", "Write the text to this file instead of stdout")
	crawlCmd.Flags().BoolVar(&crawlLocal, "local", false, "Scrape the page directly without the crawl API")
	crawlCmd.Flags().BoolVar(&crawlNoCache, "no-cache", false, "Bypass the page cache")
	crawlCmd.Flags().StringVar(&crawlOutDir, "out-dir", "", "Save the cleaned text and its metadata into this directory")
	crawlCmd.Flags().BoolVar(&crawlSummary, "summary", false, "Print a summary box to stderr")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := newCrawlService(ctx, cfg, crawlOptions{LocalOnly: crawlLocal, NoCache: crawlNoCache})
	if err != nil {
		return err
	}
	defer cleanup()

	stderr := cmd.ErrOrStderr()
	res, err := svc.Crawl(ctx, args[0], crawl.Hooks{
		OnProgress: func(p crawl.Progress) {
			fmt.Fprintln(stderr, p.Message)
		},
	})
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	note := string(res.Source)
	if res.Partial {
		note += ", partial"
	}
	fmt.Fprintf(stderr, "Done (%s, %d characters)\n", note, len(res.Text))
	if crawlSummary {
		observability.NewPrinter(stderr).PrintCrawl(args[0], res)
	}

	if crawlOutDir != "" {
		path, err := saveCrawl(crawlOutDir, args[0], res)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Saved %s\n", path)
	}

	if crawlOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		return nil
	}
	if err := os.WriteFile(crawlOutput, []byte(res.Text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", crawlOutput, err)
	}
	return nil
}

// saveCrawl writes the cleaned text of res and its metadata into dir.
func saveCrawl(dir, pageURL string, res *crawl.Result) (string, error) {
	text := ingestion.CleanText(res.Text)
	meta := ingestion.NewMetadata(pageURL, text, string(res.Source), res.Partial, time.Now())
	if platform := fetch.DetectPlatform(pageURL); platform != fetch.PlatformUnknown {
		meta.Platform = string(platform)
	}
	return ingestion.WriteOutput(dir, text, meta)
}
