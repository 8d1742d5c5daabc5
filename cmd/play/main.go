package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lk16/othengine/internal/config"
	"github.com/lk16/othengine/internal/engine"
	"github.com/lk16/othengine/internal/game"
	"github.com/lk16/othengine/internal/othello"
	"github.com/lk16/othengine/internal/services"
)

func main() {
	config.SetLogLevel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	black := flag.String("black", string(engine.KindHuman), "engine playing black: human, random or minimax")
	white := flag.String("white", string(engine.KindMinimax), "engine playing white: human, random or minimax")
	flag.IntVar(&cfg.BoardSize, "size", cfg.BoardSize, "board size, even and between 4 and 16")
	flag.IntVar(&cfg.SearchDepth, "depth", cfg.SearchDepth, "minimax search depth")
	flag.StringVar(&cfg.PassRule, "pass-rule", cfg.PassRule, "how minimax scores a side without moves: continue or sentinel")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for random engines, 0 picks one from the clock")
	flag.BoolVar(&cfg.Pause, "pause", cfg.Pause, "wait for enter after every move")
	flag.Parse()

	if err = cfg.Validate(); err != nil {
		slog.Error("Invalid flags", "error", err)
		os.Exit(1)
	}

	if err = run(cfg, engine.Kind(*black), engine.Kind(*white)); err != nil {
		slog.Error("Game failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, blackKind, whiteKind engine.Kind) error {
	ctx := context.Background()

	passRule, err := engine.ParsePassRule(cfg.PassRule)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	slog.Debug("Starting game", "size", cfg.BoardSize, "seed", seed, "black", blackKind, "white", whiteKind)

	svc, err := services.InitServices(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svc.Close() //nolint:errcheck

	input, closeInput, err := engine.NewStdinReader()
	if err != nil {
		return err
	}
	defer closeInput() //nolint:errcheck

	options := engine.Options{
		Depth:    cfg.SearchDepth,
		PassRule: passRule,
		Cache:    svc.Cache,
		Seed:     seed,
		Input:    input,
		Output:   os.Stdout,
	}

	blackEngine, err := engine.New(blackKind, options)
	if err != nil {
		return err
	}

	options.Seed = seed + 1

	whiteEngine, err := engine.New(whiteKind, options)
	if err != nil {
		return err
	}

	board, err := othello.NewBoard(cfg.BoardSize)
	if err != nil {
		return err
	}

	gameOptions := []game.Option{
		game.WithOutput(os.Stdout),
		game.WithEngineNames(string(blackKind), string(whiteKind)),
	}
	if cfg.Pause {
		gameOptions = append(gameOptions, game.WithPause(input))
	}

	result, err := game.New(board, blackEngine, whiteEngine, gameOptions...).Run()
	if err != nil {
		return err
	}

	if svc.Games == nil {
		return nil
	}

	if err = svc.Games.SaveGame(ctx, result); err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	slog.Info("Game archived", "game_id", result.ID)
	return nil
}
