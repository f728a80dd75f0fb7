package main

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/desktop"
	"github.com/tomz197/skydodge/internal/game"
	"github.com/tomz197/skydodge/internal/leaderboard"
	"github.com/tomz197/skydodge/internal/object"
)

const appName = "skydodge"

func main() {
	logger := config.NewLogger(os.Stderr, "desktop")

	rules, err := config.LoadRules(config.GetEnv("DODGE_RULES", ""))
	if err != nil {
		logger.Fatal("Failed to load rules", "err", err)
	}
	store := leaderboard.OpenGdataStore(config.GetEnv("DODGE_DATA", appName), logger)
	submitter := leaderboard.NewSubmitter(store, logger)

	seed := config.GetEnvInt64("DODGE_SEED", time.Now().UnixNano())
	g, err := desktop.New(desktop.Options{
		Rules:     rules,
		Seed:      seed,
		NoiseSeed: seed + 1,
		Submitter: submitter,
		Logger:    logger,
		DefaultID: config.GetEnv("USER", ""),
	})
	if err != nil {
		logger.Fatal("Failed to start", "err", err)
	}

	ebiten.SetWindowTitle("skydodge")
	ebiten.SetWindowSize(object.FieldWidth, object.FieldHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(game.TicksPerSecond)

	logger.Info("Starting", "seed", seed, "boss", rules.Boss)
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("Game error", "err", err)
	}
	submitter.Wait()
}
