package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "mastereditor",
		Usage:   "subreddit moderation daemon",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"t"},
				Usage:   "log would-be actions without modifying the subreddit",
				EnvVars: []string{"MASTEREDITOR_DRY_RUN"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug-level logging",
				EnvVars: []string{"MASTEREDITOR_VERBOSE"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Aliases: []string{"l"},
				Usage:   "append one log line per event to this file, in addition to stdout",
				EnvVars: []string{"MASTEREDITOR_LOG_FILE"},
			},
			&cli.StringFlag{
				Name:    "submission",
				Aliases: []string{"s"},
				Usage:   "evaluate exactly one submission by ID, then exit",
			},
			&cli.StringFlag{
				Name:    "submission-test",
				Aliases: []string{"S"},
				Usage:   "same as --submission, with --dry-run forced on",
			},
			&cli.StringFlag{
				Name:    "subreddit",
				Aliases: []string{"r"},
				Usage:   "subreddit to moderate",
				Value:   "amv",
				EnvVars: []string{"MASTEREDITOR_SUBREDDIT"},
			},
			&cli.StringFlag{
				Name:    "subreddit-id",
				Usage:   "thing ID of the monitored subreddit, matched against comment metadata",
				Value:   "t5_2qpg3",
				EnvVars: []string{"MASTEREDITOR_SUBREDDIT_ID"},
			},
			&cli.BoolFlag{
				Name:    "activity-check",
				Usage:   "enforce the author-activity gate (staged rollout; logs only when off)",
				EnvVars: []string{"MASTEREDITOR_ACTIVITY_CHECK"},
			},
			&cli.StringFlag{
				Name:    "operator",
				Usage:   "reddit username to notify when the daemon gives up",
				EnvVars: []string{"MASTEREDITOR_OPERATOR"},
			},
			&cli.StringFlag{
				Name:    "slack-webhook-url",
				Usage:   "optional slack incoming-webhook for escalation notices",
				EnvVars: []string{"SLACK_WEBHOOK_URL"},
			},
			&cli.StringFlag{
				Name:    "megathread-template",
				Usage:   "path to the feedback megathread body template",
				EnvVars: []string{"MASTEREDITOR_MEGATHREAD_TEMPLATE"},
			},
			&cli.StringFlag{
				Name:    "flair-template-id",
				Usage:   "flair template applied to the monthly megathread",
				Value:   "23f368e6-f498-11e7-8211-0e87da16ebac",
				EnvVars: []string{"MASTEREDITOR_FLAIR_TEMPLATE_ID"},
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "redis URL for decision counters; in-memory when empty",
				EnvVars: []string{"REDIS_URL"},
			},
			&cli.StringFlag{
				Name:    "metrics-listen",
				Usage:   "IP or address, and port, to listen on for metrics APIs",
				Value:   ":3989",
				EnvVars: []string{"MASTEREDITOR_METRICS_LISTEN"},
			},
			&cli.StringFlag{
				Name:     "reddit-client-id",
				EnvVars:  []string{"REDDIT_CLIENT_ID"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "reddit-client-secret",
				EnvVars:  []string{"REDDIT_CLIENT_SECRET"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "reddit-username",
				EnvVars:  []string{"REDDIT_USERNAME"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "reddit-password",
				EnvVars:  []string{"REDDIT_PASSWORD"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "youtube-api-key",
				EnvVars:  []string{"YOUTUBE_API_KEY"},
				Required: true,
			},
		},
		Action: runAction,
	}

	return app.Run(args)
}

func runAction(cctx *cli.Context) error {
	dryRun := cctx.Bool("dry-run")
	verbose := cctx.Bool("verbose")
	submissionID := cctx.String("submission")
	if sid := cctx.String("submission-test"); sid != "" {
		submissionID = sid
		dryRun = true
		verbose = true
	}
	if dryRun {
		// dry runs are debugging runs
		verbose = true
	}

	logger, closeLog, err := setupLogger(cctx.String("log-file"), verbose)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting up", "version", versioninfo.Short(), "subreddit", cctx.String("subreddit"))
	if dryRun {
		logger.Warn("running in dry-run mode, no changes will be made to the subreddit")
	}

	// Enable OTLP HTTP exporter
	// For relevant environment variables:
	// https://pkg.go.dev/go.opentelemetry.io/otel/exporters/otlp/otlptrace#readme-environment-variables
	if ep := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
		logger.Info("setting up trace exporter", "endpoint", ep)
		expCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		exp, err := otlptracehttp.New(expCtx)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := exp.Shutdown(ctx); err != nil {
				logger.Error("failed to shutdown trace exporter", "err", err)
			}
		}()
		tp := tracesdk.NewTracerProvider(
			tracesdk.WithBatcher(exp),
			tracesdk.WithResource(resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceNameKey.String("mastereditor"),
				attribute.String("env", os.Getenv("ENVIRONMENT")),
			)),
		)
		otel.SetTracerProvider(tp)
	}

	srv, err := NewServer(Config{
		Logger:             logger,
		Subreddit:          cctx.String("subreddit"),
		SubredditID:        cctx.String("subreddit-id"),
		DryRun:             dryRun,
		ActivityCheck:      cctx.Bool("activity-check"),
		Operator:           cctx.String("operator"),
		SlackWebhookURL:    cctx.String("slack-webhook-url"),
		MegathreadTemplate: cctx.String("megathread-template"),
		FlairTemplateID:    cctx.String("flair-template-id"),
		RedisURL:           cctx.String("redis-url"),
		RedditCredentials: redditCredentials(
			cctx.String("reddit-client-id"),
			cctx.String("reddit-client-secret"),
			cctx.String("reddit-username"),
			cctx.String("reddit-password"),
		),
		YoutubeAPIKey: cctx.String("youtube-api-key"),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if submissionID != "" {
		logger.Info("running one moderation cycle", "submission", submissionID)
		if err := srv.RunSingle(ctx, submissionID); err != nil {
			logger.Error("single-submission run failed", "submission", submissionID, "err", err)
			return cli.Exit("", 1)
		}
		return nil
	}

	go func() {
		if err := srv.RunMetrics(cctx.String("metrics-listen")); err != nil {
			logger.Error("failed to start metrics endpoint", "err", err)
		}
	}()

	return srv.Run(ctx)
}

// logger writing JSON lines to stdout and, when configured, appending the
// same lines to a log file
func setupLogger(path string, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	closeLog := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
		closeLog = func() { f.Close() }
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeLog, nil
}
