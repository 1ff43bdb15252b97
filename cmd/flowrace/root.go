// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gogama/flowrace"
	"github.com/gogama/flowrace/internal/config"
	"github.com/gogama/flowrace/internal/logger"
	"github.com/gogama/flowrace/langflow"
	"github.com/gogama/flowrace/race"
	"github.com/gogama/flowrace/retry"
	"github.com/gogama/flowrace/stagger"
	"github.com/gogama/flowrace/timeout"
)

const version = "0.1.0"

var (
	cfgFile      string
	staggerFlag  time.Duration
	attemptsFlag int
	singleQuery  string
)

var rootCmd = &cobra.Command{
	Use:   "flowrace",
	Short: "race a query across redundant Langflow flows",
	Long: `flowrace issues each query to an ordered list of redundant Langflow
flows, staggering the start of each later flow, and prints the first
usable answer. Flows that have not started when a winner is found are
cancelled before they ever reach the server, which bounds load spikes
and avoids rate limiting; if every flow fails or answers empty, the
whole cohort is retried with a fresh session.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "flowrace.yaml", "config file path")
	rootCmd.Flags().DurationVar(&staggerFlag, "stagger", 0, "override the stagger interval between flow starts")
	rootCmd.Flags().IntVar(&attemptsFlag, "attempts", 0, "override the maximum number of cohort attempts")
	rootCmd.Flags().StringVarP(&singleQuery, "query", "q", "", "run a single query instead of the interactive loop")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if staggerFlag > 0 {
		cfg.Race.StaggerInterval = staggerFlag
	}
	if attemptsFlag > 0 {
		cfg.Race.MaxAttempts = attemptsFlag
	}

	log := logger.New(&logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	})
	defer func() {
		_ = log.Sync()
	}()

	racer := newRacer(cfg, log)
	backends := make([]race.Backend, len(cfg.Langflow.Flows))
	for i, f := range cfg.Langflow.Flows {
		backends[i] = race.Backend(f)
	}

	r := &repl{
		cfg:      cfg,
		racer:    racer,
		backends: backends,
		log:      log,
		in:       cmd.InOrStdin(),
		out:      cmd.OutOrStdout(),
	}
	if singleQuery != "" {
		return r.once(cmd.Context(), singleQuery)
	}
	return r.loop(cmd.Context())
}

func newRacer(cfg *config.Config, log *zap.Logger) *flowrace.Racer {
	var tp timeout.Policy
	if cfg.Langflow.CallTimeout > 0 {
		tp = timeout.Fixed(cfg.Langflow.CallTimeout)
	} else {
		tp = timeout.Infinite
	}
	invoker := &langflow.Client{
		BaseURL:       cfg.Langflow.BaseURL,
		APIKey:        cfg.Langflow.APIKey,
		HTTPDoer:      http.DefaultClient,
		TimeoutPolicy: tp,
	}
	return &flowrace.Racer{
		Invoker: invoker,
		Stagger: stagger.Linear(cfg.Race.StaggerInterval),
		RetryPolicy: retry.NewPolicy(
			retry.Times(cfg.Race.MaxAttempts-1).And(retry.AllFailed),
			retry.NewFixedWaiter(cfg.Race.Cooldown),
		),
		Logger: log,
	}
}
