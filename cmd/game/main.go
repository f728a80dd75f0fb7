package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/leaderboard"
	"github.com/tomz197/skydodge/internal/loop"
)

const appName = "skydodge"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal belongs to the game, so logs only go to DODGE_LOG.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("DODGE_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	rules, err := config.LoadRules(config.GetEnv("DODGE_RULES", ""))
	if err != nil {
		return err
	}
	store := leaderboard.OpenGdataStore(config.GetEnv("DODGE_DATA", appName), logger)
	submitter := leaderboard.NewSubmitter(store, logger)
	defer submitter.Wait()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	seed := config.GetEnvInt64("DODGE_SEED", time.Now().UnixNano())
	logger.Info("Starting", "seed", seed, "boss", rules.Boss)

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, loop.Options{
		Rules:     rules,
		Seed:      seed,
		NoiseSeed: seed + 1,
		Submitter: submitter,
		Logger:    logger,
		DefaultID: config.GetEnv("USER", ""),
	})
}
