package main

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/skydodge/internal/leaderboard"
)

//go:embed leaderboard.html
var pageSource string

// server serves the read-only leaderboard.
type server struct {
	load    func() ([]leaderboard.Entry, error)
	page    *template.Template
	sshHost string
	logger  *log.Logger
}

type pageData struct {
	SSHHost string
	Entries []leaderboard.Entry
}

func newServer(load func() ([]leaderboard.Entry, error), sshHost string, logger *log.Logger) (*server, error) {
	page, err := template.New("leaderboard").Funcs(template.FuncMap{
		"rank": func(i int) int { return i + 1 },
	}).Parse(pageSource)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &server{load: load, page: page, sshHost: sshHost, logger: logger}, nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /leaderboard.yaml", s.handleYAML)
	return mux
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	entries, err := s.load()
	if err != nil {
		s.logger.Error("Failed to load leaderboard", "err", err)
		http.Error(w, "leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, pageData{SSHHost: s.sshHost, Entries: entries}); err != nil {
		s.logger.Error("Failed to render leaderboard", "err", err)
	}
}

func (s *server) handleYAML(w http.ResponseWriter, r *http.Request) {
	entries, err := s.load()
	if err != nil {
		s.logger.Error("Failed to load leaderboard", "err", err)
		http.Error(w, "leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(entries); err != nil {
		s.logger.Error("Failed to encode leaderboard", "err", err)
	}
}
