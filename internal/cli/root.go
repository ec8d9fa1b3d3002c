// Package cli implements the news-digest command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"news-digest/internal/config"
	"news-digest/internal/domain/entity"
	"news-digest/internal/infra/render"
	"news-digest/internal/observability/logging"
	"news-digest/internal/observability/metrics"
	"news-digest/internal/usecase/digest"
)

// options holds the flag values shared by the root and schedule commands.
type options struct {
	configPath  string
	limit       int
	output      string
	format      string
	metricsFile string
}

// NewRootCommand builds the command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "news-digest <source_url>",
		Short: "Summarize the top headlines of a news site",
		Long: `news-digest lists the headline links on a news homepage, fetches each
article, summarizes it with a language model and prints a Markdown digest.

Required environment: SCRAPE_API_KEY (firecrawl backend) and LLM_API_KEY.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, deps, opts, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file (environment wins)")
	flags.IntVarP(&opts.limit, "limit", "n", 0, "number of headlines to summarize (default: DEFAULT_LIMIT)")
	flags.StringVarP(&opts.output, "output", "o", "", "write the digest to this file instead of stdout")
	flags.StringVar(&opts.format, "format", render.FormatMarkdown, "output format: markdown or html")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus text-format metrics to this file")

	rootCmd.AddCommand(newScheduleCommand(deps, opts))
	rootCmd.AddCommand(newVersionCommand(deps))

	return rootCmd
}

// pipeline is a configured digest run, built once per command invocation.
type pipeline struct {
	settings *config.Settings
	service  digest.Service
	logger   *slog.Logger
	limit    int
}

// prepare validates flags, loads settings and constructs the clients.
// Settings are loaded before any client exists.
func prepare(deps Deps, opts *options, sourceURL string) (*pipeline, error) {
	if err := render.ValidateFormat(opts.format); err != nil {
		return nil, err
	}

	settings, err := config.LoadFile(opts.configPath)
	if err != nil {
		return nil, err
	}

	if err := entity.ValidateSourceURL(sourceURL); err != nil {
		return nil, err
	}

	limit := opts.limit
	if limit == 0 {
		limit = settings.DefaultLimit
	}

	// Client packages log through the default logger.
	logger := logging.NewLogger(deps.Stderr)
	slog.SetDefault(logger)

	scraper, err := deps.NewScraper(settings)
	if err != nil {
		return nil, err
	}
	sum, err := deps.NewSummarizer(settings)
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	return &pipeline{
		settings: settings,
		service:  digest.NewService(scraper, sum, settings.LLMMaxTokens),
		logger:   logger,
		limit:    limit,
	}, nil
}

// generate runs the pipeline once and delivers the result.
func (p *pipeline) generate(ctx context.Context, deps Deps, opts *options, sourceURL string) error {
	ctx, runID := logging.StartRun(ctx, p.logger)
	logger := logging.FromContext(ctx)
	logger.Info("generating digest",
		slog.String("source_url", sourceURL),
		slog.Int("limit", p.limit),
		slog.String("scrape_backend", p.settings.ScrapeBackend),
		slog.String("llm_provider", p.settings.LLMProvider),
		slog.String("llm_model", p.settings.LLMModel))

	markdown, err := p.service.Run(ctx, sourceURL, p.limit)
	writeMetrics(logger, opts.metricsFile)
	if err != nil {
		return err
	}

	out, err := render.Render(opts.format, "News digest: "+sourceURL, markdown)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = fmt.Fprintln(deps.Stdout, out)
		return err
	}

	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	logger.Debug("digest written", slog.String("path", opts.output), slog.String("run_id", runID))
	_, err = fmt.Fprintf(deps.Stdout, "Written digest to %s\n", opts.output)
	return err
}

func runOnce(cmd *cobra.Command, deps Deps, opts *options, sourceURL string) error {
	p, err := prepare(deps, opts, sourceURL)
	if err != nil {
		return err
	}
	return p.generate(cmd.Context(), deps, opts, sourceURL)
}

// writeMetrics exports the metrics registry when a path was given.
// A failed export is logged and does not fail the run.
func writeMetrics(logger *slog.Logger, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Warn("failed to write metrics file",
			slog.String("path", path),
			slog.Any("error", err))
	}
}

// Execute runs the CLI with signal-aware cancellation and returns the
// process exit code.
func Execute(ctx context.Context, deps Deps, args []string) int {
	rootCmd := NewRootCommand(deps)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
