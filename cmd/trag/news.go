package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tgweon/trag/internal/index"
	"github.com/tgweon/trag/internal/logging"
	"github.com/tgweon/trag/internal/news"
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Fetch and ingest news articles from the RSS feed",
}

var newsOnceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single poll tick and exit",
	RunE:  runNewsOnce,
}

var newsPollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Poll the feed on an interval until interrupted",
	Long: `Poll fetches news for every configured keyword on a fixed interval and
ingests articles that pass the deduplication gate. A PID file ensures only
one poller runs at a time; progress goes to the configured log file.`,
	RunE: runNewsPoll,
}

func init() {
	newsCmd.PersistentFlags().StringSlice("keywords", nil, "search keywords (default from config)")

	newsCmd.AddCommand(newsOnceCmd)
	newsCmd.AddCommand(newsPollCmd)
	rootCmd.AddCommand(newsCmd)
}

func runNewsOnce(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	applyNewsFlags(cmd, &cfg.News.Keywords)
	if len(cfg.News.Keywords) == 0 {
		return fmt.Errorf("no news keywords configured")
	}
	cfg.News.Enabled = true

	ctx := cmd.Context()
	idx, err := index.OpenWithEmbedding(ctx, cfg.Index, cfg.Embedding)
	if err != nil {
		return err
	}
	defer idx.Close()

	logger := logging.NewFileLogger(cfg.News.LogPath)
	defer logger.Sync()

	poller := news.NewPoller(idx, cfg.News, logger)
	res, err := poller.RunOnce(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "News tick: %d added, %d skipped, %d errors\n", res.Added, res.Skipped, res.Errors)
	return nil
}

func runNewsPoll(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	applyNewsFlags(cmd, &cfg.News.Keywords)
	if len(cfg.News.Keywords) == 0 {
		return fmt.Errorf("no news keywords configured")
	}
	cfg.News.Enabled = true

	ok, err := news.TryAcquireSingleton(cfg.News.PIDPath)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("another poller is already running (PID file %s)", cfg.News.PIDPath)
	}
	defer news.ReleaseSingleton(cfg.News.PIDPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	idx, err := index.OpenWithEmbedding(ctx, cfg.Index, cfg.Embedding)
	if err != nil {
		return err
	}
	defer idx.Close()

	logger := logging.NewFileLogger(cfg.News.LogPath)
	defer logger.Sync()

	fmt.Fprintf(os.Stdout, "Polling news every %s for %d keyword(s); log: %s\n",
		cfg.News.PollInterval, len(cfg.News.Keywords), cfg.News.LogPath)

	if err := news.NewPoller(idx, cfg.News, logger).Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Poller stopped")
	return nil
}

func applyNewsFlags(cmd *cobra.Command, keywords *[]string) {
	if kws, _ := cmd.Flags().GetStringSlice("keywords"); len(kws) > 0 {
		*keywords = kws
	}
}
