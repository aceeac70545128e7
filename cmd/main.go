package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"dns-parser/adapters"
	"dns-parser/extractor"
	"dns-parser/internal/types"
	"dns-parser/utils"

	"github.com/briandowns/spinner"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if present
	_ = godotenv.Load()

	defaults := types.DefaultConfig()
	var (
		urlFlag       = flag.String("url", os.Getenv("DNS_PARSE_URL"), "Listing page to parse (prompted when empty)")
		headlessFlag  = flag.String("headless", os.Getenv("DNS_PARSE_HEADLESS"), "Hide the browser window: true/false (prompted when empty)")
		outputDirFlag = flag.String("output-dir", defaults.OutputDir, "Directory for result files")
		maxPagesFlag  = flag.Int("max-pages", defaults.MaxPages, "Stop after this many pages (0 = no limit)")
		timeoutFlag   = flag.Duration("timeout", defaults.Timeout, "Per-page navigation timeout")
		originFlag    = flag.String("origin", defaults.Origin, "Origin prefixed to relative product links")
		httpOnly      = flag.Bool("http-only", false, "Fetch pages over plain HTTP instead of a browser")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := newLogger(*verbose)

	prompter := utils.NewPrompter(os.Stdin, os.Stdout)
	var headless bool
	if *headlessFlag != "" {
		v, err := strconv.ParseBool(*headlessFlag)
		if err != nil {
			logger.Errorf("Invalid -headless value %q: %v", *headlessFlag, err)
			return 2
		}
		headless = v
	} else if !*httpOnly {
		v, err := prompter.Bool("Would you like to hide browser?")
		if err != nil {
			logger.Errorf("Failed to read browser mode: %v", err)
			return 2
		}
		headless = v
	}

	baseURL := *urlFlag
	if baseURL == "" {
		answer, err := prompter.String("Which of page would you like to parse?")
		if err != nil {
			logger.Errorf("Failed to read listing URL: %v", err)
			return 2
		}
		baseURL = answer
	}

	config := types.DefaultConfig()
	config.BaseURL = baseURL
	config.Headless = headless
	config.HTTPOnly = *httpOnly
	config.OutputDir = *outputDirFlag
	config.MaxPages = *maxPagesFlag
	config.Timeout = *timeoutFlag
	config.Origin = *originFlag

	var source adapters.ContentSource
	if config.HTTPOnly {
		source = utils.NewHTTPClient(config, logger)
	} else {
		source = utils.NewBrowserClient(config, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stdout))
	dnsExtractor := extractor.NewDNSExtractor(config, source, logger)
	dnsExtractor.OnPage(func(page int) {
		spin.Lock()
		spin.Suffix = fmt.Sprintf(" Page %d is being parsed", page)
		spin.Unlock()
		spin.Start()
	})

	result, err := dnsExtractor.Run(ctx)
	spin.Stop()

	var writeErr *types.WriteError
	switch {
	case errors.As(err, &writeErr):
		// scraping finished, only persisting failed
		logger.Errorf("Data was parsed (%d products) but %v", len(result.Products), err)
		return 0
	case err != nil:
		logger.Errorf("Something went wrong: %v", err)
		return 1
	}

	logger.Infof("Data was parsed: %d products from %d pages", len(result.Products), result.Pages)
	logger.Infof("File has been written successfully: %s", result.Path)
	return 0
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()

	// Set timestamp format with milliseconds
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	// Set log level from LOG_LEVEL env if present
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
			return logger
		}
	}
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
