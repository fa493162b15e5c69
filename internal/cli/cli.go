package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/dirtrace-ics/internal/config"
	"github.com/pfrederiksen/dirtrace-ics/internal/logger"
	"github.com/pfrederiksen/dirtrace-ics/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

type options struct {
	output   string
	format   string
	yearMode string
	year     int
	timeout  time.Duration
	verbose  bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "dirtrace-ics [source]",
		Short: "Convert the dirt-grade race schedule to iCalendar",
		Long: `Fetches the dirt-grade race schedule and writes an iCalendar file with one
all-day event per race. Races at JRA venues are left out.

source is an http(s) URL or a saved copy of the page. It defaults to
DIRTRACE_URL or ` + scraper.DefaultURL + `.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&opts.format, "format", string(FormatICS), "Output format: ics, json or text")
	cmd.Flags().StringVar(&opts.yearMode, "year-mode", "", "Where the schedule year comes from: heading or fixed")
	cmd.Flags().IntVar(&opts.year, "year", 0, "Schedule year (implies --year-mode fixed)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Fetch timeout (default from DIRTRACE_TIMEOUT or 30s)")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	return cmd
}

// run is the main command logic
func run(cmd *cobra.Command, args []string, opts *options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatICS && format != FormatJSON && format != FormatText {
		return fmt.Errorf("invalid format: %s (must be 'ics', 'json' or 'text')", opts.format)
	}

	year, err := yearStrategy(cmd, cfg, opts)
	if err != nil {
		return err
	}

	source := cfg.SourceURL
	if len(args) == 1 {
		source = args[0]
	}
	timeout := cfg.Timeout
	if opts.timeout > 0 {
		timeout = opts.timeout
	}

	logger.Debug("Fetching schedule", logger.Fields{
		"source":    source,
		"year_mode": string(year.Mode),
		"year":      year.Year,
		"timeout":   timeout.String(),
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	started := time.Now()
	races, err := scraper.New(source, timeout).FetchRaces(ctx, year)
	if err != nil {
		logger.Error("Extracting races failed", logger.Fields{"source": source}, err)
		return fmt.Errorf("extracting races: %w", err)
	}

	logger.Info("Extracted races", logger.Fields{
		"source":   source,
		"races":    len(races),
		"duration": time.Since(started).String(),
	})

	var buf bytes.Buffer
	if err := WriteOutput(&buf, races, format); err != nil {
		return fmt.Errorf("rendering output: %w", err)
	}

	if opts.output == "" {
		if _, err := cmd.OutOrStdout().Write(buf.Bytes()); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(opts.output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Debug("Wrote output", logger.Fields{"path": opts.output, "bytes": buf.Len()})

	return nil
}

// yearStrategy combines flags and config. --year alone selects fixed mode.
func yearStrategy(cmd *cobra.Command, cfg config.Config, opts *options) (scraper.YearStrategy, error) {
	strategy := cfg.YearStrategy()

	if cmd.Flags().Changed("year") {
		if opts.year <= 0 {
			return scraper.YearStrategy{}, fmt.Errorf("--year must be positive")
		}
		strategy = scraper.Fixed(opts.year)
	}

	if opts.yearMode != "" {
		mode, err := scraper.ParseYearMode(opts.yearMode)
		if err != nil {
			return scraper.YearStrategy{}, err
		}
		strategy.Mode = mode
	}

	if strategy.Mode == scraper.YearFixed && strategy.Year <= 0 {
		return scraper.YearStrategy{}, fmt.Errorf("fixed year mode needs a year: pass --year or set DIRTRACE_YEAR")
	}

	return strategy, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
