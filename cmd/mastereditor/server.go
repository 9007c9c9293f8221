package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/amv-mods/mastereditor/automod"
	"github.com/amv-mods/mastereditor/automod/countstore"
	"github.com/amv-mods/mastereditor/automod/rules"
	"github.com/amv-mods/mastereditor/reddit"
	"github.com/amv-mods/mastereditor/supervisor"
	"github.com/amv-mods/mastereditor/youtube"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultMegathreadBody = "Post a link to your edit below and give feedback to at least two other editors in return."

type Config struct {
	Logger             *slog.Logger
	Subreddit          string
	SubredditID        string
	DryRun             bool
	ActivityCheck      bool
	Operator           string
	SlackWebhookURL    string
	MegathreadTemplate string
	FlairTemplateID    string
	RedisURL           string
	RedditCredentials  reddit.Credentials
	YoutubeAPIKey      string
}

func redditCredentials(clientID, clientSecret, username, password string) reddit.Credentials {
	return reddit.Credentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Username:     username,
		Password:     password,
	}
}

type Server struct {
	logger *slog.Logger
	engine *automod.Engine
	loop   *supervisor.Loop
}

func NewServer(config Config) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	gateway := reddit.NewHTTPClient(config.RedditCredentials, logger)
	resolver := youtube.NewAPIResolver(config.YoutubeAPIKey, reddit.RobustHTTPClient(logger))

	var counters countstore.CountStore
	if config.RedisURL != "" {
		cnt, err := countstore.NewRedisCountStore(config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("initializing redis countstore: %w", err)
		}
		counters = cnt
	} else {
		counters = countstore.NewMemCountStore()
	}

	engine := &automod.Engine{
		Logger:      logger,
		Gateway:     gateway,
		Resolver:    resolver,
		Rules:       rules.DefaultRules(),
		Counters:    counters,
		Subreddit:   config.Subreddit,
		SubredditID: config.SubredditID,

		ActivityCheckEnabled: config.ActivityCheck,
	}
	engine.Actor = &automod.ActionExecutor{
		Gateway: gateway,
		Logger:  logger,
		DryRun:  config.DryRun,
	}

	template := config.MegathreadTemplate
	if template != "" {
		raw, err := os.ReadFile(template)
		if err != nil {
			return nil, fmt.Errorf("reading megathread template: %w", err)
		}
		template = string(raw)
	} else {
		template = defaultMegathreadBody
	}

	loop := &supervisor.Loop{
		Engine:             engine,
		Gateway:            gateway,
		Logger:             logger,
		Subreddit:          config.Subreddit,
		Operator:           config.Operator,
		SlackWebhookURL:    config.SlackWebhookURL,
		MegathreadTemplate: template,
		FlairTemplateID:    config.FlairTemplateID,
	}

	return &Server{
		logger: logger,
		engine: engine,
		loop:   loop,
	}, nil
}

func (s *Server) RunMetrics(listen string) error {
	http.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(listen, nil)
}

// Run consumes the live stream until shutdown or escalation.
func (s *Server) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}

// RunSingle evaluates exactly one submission and returns; used for
// testing a rule change against a known post.
func (s *Server) RunSingle(ctx context.Context, id string) error {
	sub, err := s.engine.Gateway.FetchSubmission(ctx, id)
	if err != nil {
		return fmt.Errorf("resolving submission %q: %w", id, err)
	}
	return s.engine.ProcessSubmission(ctx, sub)
}
