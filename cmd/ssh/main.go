package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/charmbracelet/wish/recover"

	"github.com/tomz197/skydodge/internal/config"
	"github.com/tomz197/skydodge/internal/leaderboard"
	"github.com/tomz197/skydodge/internal/loop"
)

const (
	appName            = "skydodge"
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	// Longer than loop.ShutdownDisplaySeconds so players see the notice.
	defaultShutdownGrace = 15 * time.Second
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	grace := config.GetEnvDuration("SSH_SHUTDOWN_GRACE", defaultShutdownGrace)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "shutdownGrace", grace)

	rules, err := config.LoadRules(config.GetEnv("DODGE_RULES", ""))
	if err != nil {
		logger.Fatal("Failed to load rules", "err", err)
	}

	// The leaderboard is the only state shared between sessions.
	store := leaderboard.OpenGdataStore(config.GetEnv("DODGE_DATA", appName), logger)
	submitter := leaderboard.NewSubmitter(store, logger)
	hub := newSessionHub()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			recover.MiddlewareWithLogger(
				logger,
				gameMiddleware(hub, submitter, rules, logger),
				activeterm.Middleware(),
			),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Notify players and wait for them to disconnect
	if !hub.Shutdown(grace) {
		logger.Warn("Sessions still open after shutdown notice", "remaining", hub.Active())
	}
	submitter.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}

// gameMiddleware runs one independent game per SSH session.
func gameMiddleware(hub *sessionHub, submitter *leaderboard.Submitter, rules config.Rules, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			shutdown, leave := hub.Join()
			defer leave()

			sessLogger := logger.With("user", sess.User())
			sessLogger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			seed := config.GetEnvInt64("DODGE_SEED", time.Now().UnixNano())
			err := loop.Run(bufio.NewReader(sess), sess, loop.Options{
				TermSizeFunc: sizeTracker.getSize,
				Rules:        rules,
				Seed:         seed,
				NoiseSeed:    seed + 1,
				Submitter:    submitter,
				Logger:       sessLogger,
				DefaultID:    sess.User(),
				Shutdown:     shutdown,
			})
			if err != nil {
				sessLogger.Error("Game error", "err", err)
			}
			next(sess)
		}
	}
}
