package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"duelsim/internal/combat"
	"duelsim/internal/config"
	"duelsim/internal/metrics/inmemory"
	"duelsim/internal/search"
	"duelsim/internal/util"
)

type report struct {
	RunID   string            `json:"run_id"`
	Boss    config.BossStats  `json:"boss"`
	Presets []presetReport    `json:"presets"`
	Metrics inmemory.Snapshot `json:"metrics"`
}

type presetReport struct {
	Name       string               `json:"name"`
	Difficulty string               `json:"difficulty"`
	Solved     bool                 `json:"solved"`
	Bounded    bool                 `json:"bounded,omitempty"`
	Cost       *int                 `json:"cost,omitempty"`
	Moves      []combat.Move        `json:"moves,omitempty"`
	Stats      *search.Stats        `json:"stats,omitempty"`
	Replay     *combat.ReplayResult `json:"replay,omitempty"`
}

// run returns the process exit code. Input and config problems fail before
// any search starts.
func run(ctx context.Context, opts options, stdout io.Writer, logger *slog.Logger) int {
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.Error("load config", "path", opts.ConfigPath, "err", err)
		return exitFailure
	}
	boss, err := config.LoadBoss(opts.InputPath)
	if err != nil {
		logger.Error("load boss stats", "path", opts.InputPath, "err", err)
		return exitFailure
	}
	presets, err := selectPresets(cfg, opts.Preset)
	if err != nil {
		logger.Error("select preset", "err", err)
		return exitFailure
	}
	var replay []combat.Move
	if opts.Replay != "" {
		if replay, err = combat.ParseMoves(opts.Replay); err != nil {
			logger.Error("parse replay", "err", err)
			return exitFailure
		}
	}

	ss := mergeSearch(cfg.Search, opts)
	if ss.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ss.timeout)
		defer cancel()
	}

	logger.Info("duel loaded", "boss_hp", boss.HitPoints, "boss_damage", boss.Damage, "presets", len(presets))

	rec := inmemory.NewRecorder()
	results := make([]presetReport, len(presets))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, p := range presets {
		i, p := i, p
		g.Go(func() error {
			initial, err := combat.DuelFromConfig(p, boss)
			if err != nil {
				return err
			}
			pr := presetReport{Name: p.Name, Difficulty: initial.Difficulty.String()}
			if replay != nil {
				rr := combat.Replay(initial, replay, opts.Record)
				pr.Replay = &rr
				pr.Solved = rr.Win
				results[i] = pr
				return nil
			}

			res, err := solvePreset(gctx, initial, p.Name, i, ss, rec, logger)
			if err != nil {
				return fmt.Errorf("preset %q: %w", p.Name, err)
			}
			pr.Stats = &res.Stats
			pr.Bounded = res.Bounded
			if res.Found {
				cost := res.Cost
				pr.Solved = true
				pr.Cost = &cost
				pr.Moves = res.Moves
				rr := combat.Replay(initial, res.Moves, opts.Record)
				if !rr.Win || rr.ManaUsed != res.Cost {
					return fmt.Errorf("preset %q: replay of the optimal path ended %s at %d mana", p.Name, rr.Winner, rr.ManaUsed)
				}
				if opts.Record {
					pr.Replay = &rr
				}
			}
			logger.Info("preset done", "preset", p.Name, "solved", res.Found, "cost", res.Cost, "expanded", res.Stats.Expanded)
			results[i] = pr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("solve", "err", err)
		return exitFailure
	}

	printResults(stdout, results)

	if opts.OutPath != "" {
		rep := report{RunID: runID, Boss: boss, Presets: results, Metrics: rec.Snapshot()}
		if err := os.WriteFile(opts.OutPath, combat.MarshalPretty(rep), 0o644); err != nil {
			logger.Error("write report", "path", opts.OutPath, "err", err)
			return exitFailure
		}
		logger.Debug("report written", "path", opts.OutPath)
	}

	code := exitOK
	for _, r := range results {
		switch {
		case r.Solved:
		case r.Bounded:
			code = exitBounded
		default:
			return exitUnsolvable
		}
	}
	return code
}

type searchSettings struct {
	seed     int64
	rollouts int
	maxCost  int
	timeout  time.Duration
}

// mergeSearch lets flags override the config file.
func mergeSearch(def config.SearchDef, opts options) searchSettings {
	s := searchSettings{seed: def.Seed, rollouts: def.Rollouts, maxCost: def.MaxCost, timeout: def.Timeout}
	if opts.Seed != 0 {
		s.seed = opts.Seed
	}
	if opts.Rollouts >= 0 {
		s.rollouts = opts.Rollouts
	}
	if opts.MaxCost >= 0 {
		s.maxCost = opts.MaxCost
	}
	if opts.Timeout > 0 {
		s.timeout = opts.Timeout
	}
	return s
}

func solvePreset(ctx context.Context, initial combat.DuelState, name string, idx int, ss searchSettings, rec *inmemory.Recorder, logger *slog.Logger) (search.Result, error) {
	opts := search.Options{
		MaxCost:    ss.maxCost,
		CheckEvery: 256,
		Label:      name,
		Observer:   rec,
		Logger:     logger.With("preset", name),
	}
	if ss.rollouts > 0 {
		opts.Rollouts = ss.rollouts
		opts.Rng = util.Split(ss.seed, idx)
	}
	return search.NewSolver(opts).Solve(ctx, initial)
}

func selectPresets(cfg *config.DuelConfig, name string) ([]config.PresetDef, error) {
	if name == "" || name == "all" {
		return cfg.Presets, nil
	}
	p, ok := cfg.Preset(name)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	return []config.PresetDef{p}, nil
}
