package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"duelsim/internal/config"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitUnsolvable = 2
	exitBounded    = 3 // a win may still exist above the max cost
)

type options struct {
	ConfigPath string
	InputPath  string
	OutPath    string
	Preset     string
	Replay     string
	Seed       int64
	Rollouts   int
	MaxCost    int
	Workers    int
	Timeout    time.Duration
	Record     bool
	LogLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env, err := config.Env()
	if err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
		os.Exit(exitFailure)
	}

	var opts options
	var verbose bool
	flag.StringVar(&opts.ConfigPath, "config", env.ConfigPath, "duel config yaml (empty: built-in presets)")
	flag.StringVar(&opts.InputPath, "input", env.InputPath, "boss stats file")
	flag.StringVar(&opts.OutPath, "out", env.OutPath, "json report file (empty: none)")
	flag.StringVar(&opts.Preset, "preset", "all", "preset name or all")
	flag.StringVar(&opts.Replay, "replay", "", "comma separated moves to replay instead of searching")
	flag.Int64Var(&opts.Seed, "seed", 0, "rollout seed (0: config)")
	flag.IntVar(&opts.Rollouts, "n", -1, "random rollouts used to bound the search (-1: config)")
	flag.IntVar(&opts.MaxCost, "max-cost", -1, "discard states costing more than this (-1: config)")
	flag.IntVar(&opts.Workers, "workers", runtime.NumCPU(), "presets solved in parallel")
	flag.DurationVar(&opts.Timeout, "timeout", 0, "search timeout per run (0: config)")
	flag.BoolVar(&opts.Record, "log", false, "include the replayed event log in the report")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	opts.LogLevel = env.LogLevel
	if verbose {
		opts.LogLevel = "debug"
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(opts.LogLevel)}))

	os.Exit(run(ctx, opts, os.Stdout, logger))
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func printResults(w io.Writer, results []presetReport) {
	for _, r := range results {
		switch {
		case r.Replay != nil && r.Cost == nil:
			fmt.Fprintf(w, "%s: replay %s (%d mana)\n", r.Name, r.Replay.Winner, r.Replay.ManaUsed)
		case r.Solved:
			fmt.Fprintf(w, "%s: %d\n", r.Name, *r.Cost)
		case r.Bounded:
			fmt.Fprintf(w, "%s: no solution within max-cost %d\n", r.Name, r.Stats.Bound)
		default:
			fmt.Fprintf(w, "%s: unsolvable\n", r.Name)
		}
	}
}
