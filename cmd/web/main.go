package main

import (
	"net"
	"net/http"
	"os"

	"github.com/quasilyte/gdata/v2"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/leaderboard"
)

const (
	appName     = "skydodge"
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
	topN        = 20
)

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	app := config.GetEnv("DODGE_DATA", appName)

	manager, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		logger.Fatal("Failed to open leaderboard data", "app", app, "err", err)
	}

	// Reload on every request so scores from running game servers show up.
	load := func() ([]leaderboard.Entry, error) {
		store, err := leaderboard.NewGdataStore(manager, leaderboard.DefaultLimit)
		if err != nil {
			return nil, err
		}
		return store.Top(topN)
	}

	srv, err := newServer(load, sshHost, logger)
	if err != nil {
		logger.Fatal("Failed to build pages", "err", err)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		logger.Fatal("Server error", "err", err)
	}
}
