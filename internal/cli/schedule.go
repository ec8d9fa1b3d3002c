package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	pkgconfig "news-digest/pkg/config"
)

// scheduleOptions holds the flags specific to the schedule command.
type scheduleOptions struct {
	cronSchedule string
	timezone     string
	runNow       bool
}

func newScheduleCommand(deps Deps, opts *options) *cobra.Command {
	sOpts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule <source_url>",
		Short: "Regenerate the digest into a file on a cron schedule",
		Long: `schedule keeps running and rewrites the digest file (-o) every time the
cron expression fires. A failed run is logged and the next run proceeds.`,
		Example:       `  news-digest schedule https://news.example.com --cron "0 7 * * *" -o digest.md`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, deps, opts, sOpts, args[0])
		},
	}

	cmd.Flags().StringVar(&sOpts.cronSchedule, "cron", "", "five-field cron expression, e.g. \"0 7 * * *\"")
	cmd.Flags().StringVar(&sOpts.timezone, "timezone", "UTC", "IANA timezone the schedule is evaluated in")
	cmd.Flags().BoolVar(&sOpts.runNow, "now", false, "also generate once immediately")

	return cmd
}

func runSchedule(cmd *cobra.Command, deps Deps, opts *options, sOpts *scheduleOptions, sourceURL string) error {
	if err := pkgconfig.ValidateCronSchedule(sOpts.cronSchedule); err != nil {
		return err
	}
	if opts.output == "" {
		return errors.New("schedule requires an output file (-o)")
	}
	loc, err := time.LoadLocation(sOpts.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", sOpts.timezone, err)
	}

	p, err := prepare(deps, opts, sourceURL)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	job := func() {
		start := time.Now()
		if err := p.generate(ctx, deps, opts, sourceURL); err != nil {
			p.logger.Error("scheduled digest failed",
				slog.String("source_url", sourceURL),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err))
		}
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(sOpts.cronSchedule, job); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	if sOpts.runNow {
		job()
	}

	c.Start()
	p.logger.Info("scheduler started",
		slog.String("schedule", sOpts.cronSchedule),
		slog.String("timezone", loc.String()),
		slog.String("output", opts.output))

	<-ctx.Done()
	p.logger.Info("scheduler stopping")
	<-c.Stop().Done()
	return nil
}
