package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/crawl"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the crawled page cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show <url>",
	Short: "Print a cached page",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheShow,
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "Remove a page from the cache",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheDelete,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired pages",
	Args:  cobra.NoArgs,
	RunE:  runCachePrune,
}

func init() {
	cacheCmd.AddCommand(cacheShowCmd, cacheDeleteCmd, cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	pageURL, err := crawl.ValidateURL(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	page, err := database.GetPage(ctx, pageURL)
	if err != nil {
		return err
	}
	if page == nil {
		return fmt.Errorf("%s is not cached", pageURL)
	}

	status := "fresh"
	if page.IsExpired(time.Now()) {
		status = "expired"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Source: %s, fetched %s, %s\n",
		page.Source, page.FetchedAt.UTC().Format(time.RFC3339), status)
	fmt.Fprintln(cmd.OutOrStdout(), page.Markdown)
	return nil
}

func runCacheDelete(cmd *cobra.Command, args []string) error {
	pageURL, err := crawl.ValidateURL(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeletePage(ctx, pageURL); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", pageURL)
	return nil
}

func runCachePrune(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := context.Background()
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	n, err := database.DeleteExpiredPages(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired pages\n", n)
	return nil
}
