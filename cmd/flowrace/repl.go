// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gogama/flowrace"
	"github.com/gogama/flowrace/internal/config"
	"github.com/gogama/flowrace/internal/stats"
	"github.com/gogama/flowrace/race"
	"github.com/gogama/flowrace/stagger"
)

const rule = "----------------------------------------------------------------------"

type repl struct {
	cfg      *config.Config
	racer    *flowrace.Racer
	backends []race.Backend
	log      *zap.Logger
	in       io.Reader
	out      io.Writer
}

func (r *repl) loop(ctx context.Context) error {
	r.banner()
	session := stats.New()
	scanner := bufio.NewScanner(r.in)

	for {
		fmt.Fprint(r.out, "you> ")
		if !scanner.Scan() {
			r.goodbye(session)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "exit", "quit", "q":
			r.goodbye(session)
			return nil
		case "config", "c":
			r.configure(scanner)
			continue
		case "":
			fmt.Fprintln(r.out, "please type a question")
			continue
		}

		start := time.Now()
		err := r.ask(ctx, input)
		session.Record(time.Since(start), err == nil)
		if ctx.Err() != nil {
			r.goodbye(session)
			return ctx.Err()
		}
	}
}

// once runs a single query and exits, for scripted use.
func (r *repl) once(ctx context.Context, query string) error {
	return r.ask(ctx, query)
}

func (r *repl) ask(ctx context.Context, query string) error {
	p, err := race.NewPlanWithContext(ctx, query, r.backends)
	if err != nil {
		return err
	}

	e, err := r.racer.Race(p)
	if err != nil {
		var exhausted *race.Exhausted
		if errors.As(err, &exhausted) {
			fmt.Fprintf(r.out, "\nall flows failed after %d attempts (%d flows tried)\n",
				exhausted.Attempts, exhausted.Workers)
			fmt.Fprintln(r.out, "suggestions:")
			fmt.Fprintln(r.out, "  - check that the configured flows are up")
			fmt.Fprintln(r.out, "  - try a more specific question")
			fmt.Fprintln(r.out, "  - type 'config' to raise the stagger interval")
			fmt.Fprintln(r.out, rule)
			return err
		}
		r.log.Error("race failed", zap.Error(err))
		return err
	}

	res := e.Result
	fmt.Fprintf(r.out, "\nai> %s\n", res.Payload)
	fmt.Fprintf(r.out, "    [flow %s answered in %s, attempt %d]\n",
		short(res.Winner), res.Elapsed.Round(10*time.Millisecond), e.Attempt)
	fmt.Fprintln(r.out, rule)
	return nil
}

func (r *repl) configure(scanner *bufio.Scanner) {
	fmt.Fprintf(r.out, "current stagger interval: %s\n", r.cfg.Race.StaggerInterval)
	fmt.Fprint(r.out, "new interval (e.g. 5s, empty keeps current): ")
	if !scanner.Scan() {
		return
	}
	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		return
	}
	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		fmt.Fprintln(r.out, "invalid interval, keeping current value")
		return
	}
	r.cfg.Race.StaggerInterval = d
	r.racer.Stagger = stagger.Linear(d)
	fmt.Fprintf(r.out, "stagger interval set to %s\n", d)
}

func (r *repl) banner() {
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "flowrace %s — staggered race across %d flows\n",
		version, len(r.backends))
	fmt.Fprintln(r.out, "first usable answer wins; unstarted flows are cancelled")
	for i, b := range r.backends {
		delay := time.Duration(i) * r.cfg.Race.StaggerInterval
		fmt.Fprintf(r.out, "  flow %d: %s (starts after %s)\n", i+1, short(b), delay)
	}
	fmt.Fprintln(r.out, "commands: exit, config")
	fmt.Fprintln(r.out, rule)
}

func (r *repl) goodbye(session *stats.Session) {
	if summary := session.Summary(); summary != "" {
		fmt.Fprintln(r.out, "\nSession statistics:")
		fmt.Fprint(r.out, summary)
	}
	fmt.Fprintln(r.out, "bye")
}

// short abbreviates a flow id for display, the way long UUIDs are
// usually shown in logs.
func short(b race.Backend) string {
	s := string(b)
	if len(s) <= 8 {
		return s
	}
	return s[:8] + "..."
}
