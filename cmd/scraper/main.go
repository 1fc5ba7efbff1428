package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/coinwatch/tweet-scraper/internal/browser"
	"github.com/coinwatch/tweet-scraper/internal/collector"
	"github.com/coinwatch/tweet-scraper/internal/config"
	"github.com/coinwatch/tweet-scraper/internal/domain"
	"github.com/coinwatch/tweet-scraper/internal/ingest"
	"github.com/coinwatch/tweet-scraper/internal/query"
	"github.com/coinwatch/tweet-scraper/internal/report"
	"github.com/coinwatch/tweet-scraper/internal/scrape"
	"github.com/coinwatch/tweet-scraper/internal/storage"
)

var (
	startDate   string
	endDate     string
	minFaves    int
	minRetweets int
	minReplies  int
	pageMode    string
	language    string
	configPath  string
	coinsFile   string
	mode        string
	headless    bool
)

func main() {
	root := &cobra.Command{
		Use:   "scraper CHROME_PATH COIN_NAME COIN_ABBRV",
		Short: "Scrape coin tweets from Twitter search, one CSV per day",
		Long: "Drives a real Chrome browser through Twitter search results for each day\n" +
			"in the date range, scrolls until the feed is exhausted, deduplicates the\n" +
			"visible tweets, and exports one CSV per day.",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	root.Flags().StringVar(&startDate, "start-date", "2021-12-31", "first day to search (YYYY-MM-DD)")
	root.Flags().StringVar(&endDate, "end-date", "2022-01-01", "last day to search (YYYY-MM-DD)")
	root.Flags().IntVar(&minFaves, "min-faves", 0, "minimum favorites/likes on searched tweets")
	root.Flags().IntVar(&minRetweets, "min-retweets", 0, "minimum retweets on searched tweets")
	root.Flags().IntVar(&minReplies, "min-replies", 0, "minimum replies on searched tweets")
	root.Flags().StringVar(&pageMode, "page", "top", "'top' or 'latest' results page")
	root.Flags().StringVar(&language, "language", "en", "tweet language code")
	root.Flags().StringVar(&configPath, "config", "", "optional YAML config file")
	root.Flags().StringVar(&coinsFile, "coins-file", "", "CSV of additional name,abbrv targets")
	root.Flags().StringVar(&mode, "mode", "browser", "'browser' or 'mock' (scripted feed, no Chrome)")
	root.Flags().BoolVar(&headless, "headless", false, "run Chrome without a window")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	chromePath := args[0]
	coin := domain.Coin{Name: args[1], Abbrv: args[2]}

	// All validation happens before any browser session is opened.
	if err := validateKeyword("COIN_NAME", coin.Name); err != nil {
		return err
	}
	if err := validateKeyword("COIN_ABBRV", coin.Abbrv); err != nil {
		return err
	}
	pageMode = strings.ToLower(pageMode)
	if pageMode != "top" && pageMode != "latest" {
		return fmt.Errorf("--page must be 'top' or 'latest', got %q", pageMode)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	days, err := query.DateRange(startDate, endDate)
	if err != nil {
		return err
	}
	if len(days) < 2 {
		logger.Warn("date range spans a single day, nothing to scrape",
			"start", startDate, "end", endDate)
		return nil
	}

	coins := []domain.Coin{coin}
	if coinsFile != "" {
		more, err := ingest.LoadCoins(coinsFile)
		if err != nil {
			return err
		}
		coins = append(coins, more...)
	}

	var session *browser.Session
	if mode == "browser" || mode == "" {
		session, err = browser.Open(browser.Config{
			Bin:             chromePath,
			Headless:        headless || cfg.Browser.Headless,
			NavTimeout:      cfg.Browser.NavTimeout.Std(),
			FirstResultWait: cfg.Browser.FirstResultWait.Std(),
			Logger:          logger,
		})
		if err != nil {
			return err
		}
		defer session.Close()
	}

	nav, feed, err := collector.NewStack(mode, session)
	if err != nil {
		return err
	}

	errlog, err := storage.OpenErrorLog(cfg.Output.ErrorLog)
	if err != nil {
		return err
	}
	defer errlog.Close()

	harv := collector.NewHarvester(feed, collector.HarvesterConfig{
		Settle:       cfg.Scroll.Settle.Std(),
		StallLimit:   cfg.Scroll.StallLimit,
		ScrollBudget: cfg.Scroll.Budget,
		Logger:       logger,
	})
	runner := scrape.NewRunner(nav, harv, &storage.CSVSink{Root: cfg.Output.Root}, errlog,
		scrape.RunnerConfig{
			InitialSettle: cfg.Scroll.InitialSettle.Std(),
			DayDelay:      cfg.DayDelay.Std(),
		}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var summaries []report.CoinSummary
	var runErr error
	for _, c := range coins {
		search := query.Search{
			CoinName:    c.Name,
			CoinAbbrv:   c.Abbrv,
			MinReplies:  minReplies,
			MinFaves:    minFaves,
			MinRetweets: minRetweets,
			Language:    language,
			Page:        pageMode,
		}
		logger.Info("scraping coin", "name", c.Name, "abbrv", c.Abbrv,
			"start", days[0], "end", days[len(days)-1])

		summary, err := runner.Run(ctx, search, days)
		summaries = append(summaries, summary)
		if err != nil {
			logger.Error("run aborted", "coin", c.Abbrv, "error", err)
			runErr = err
			break
		}
	}

	if err := report.Write(cfg.Output.Report, summaries); err != nil {
		logger.Error("report failed", "error", err)
	} else {
		logger.Info("scrape finished", "coins", len(summaries), "report", cfg.Output.Report)
	}
	return runErr
}

func validateKeyword(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return fmt.Errorf("no spaces allowed in %s", name)
	}
	return nil
}
