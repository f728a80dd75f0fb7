// Package leaderboard records final scores. It is the score submission
// collaborator of a game session: submissions run off the tick loop and
// report back through a channel.
package leaderboard

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultLimit is the number of entries a store keeps.
const DefaultLimit = 100

// Storage location inside the gdata app directory.
const (
	boardObject   = "leaderboard"
	boardProperty = "scores"
)

// Entry is one submitted score.
type Entry struct {
	ID    string    `yaml:"id"`
	Score int       `yaml:"score"`
	At    time.Time `yaml:"at"`
}

// Store keeps entries ranked by score, highest first. Equal scores rank by
// submission time, earliest first.
type Store interface {
	// Add records e and returns its 1-based rank.
	Add(e Entry) (int, error)
	// Top returns up to n of the best entries.
	Top(n int) ([]Entry, error)
}

// board is the persisted document.
type board struct {
	Entries []Entry `yaml:"entries"`
}

// GdataStore is a Store persisted as YAML through gdata. A nil manager keeps
// entries in memory only.
type GdataStore struct {
	mu      sync.Mutex
	manager *gdata.Manager
	entries []Entry
	limit   int
}

// NewGdataStore creates a store on manager and loads what it already holds.
// manager may be nil. A limit below 1 means DefaultLimit.
func NewGdataStore(manager *gdata.Manager, limit int) (*GdataStore, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	s := &GdataStore{manager: manager, limit: limit}
	if err := s.load(); err != nil {
		return s, err
	}
	return s, nil
}

// OpenGdataStore opens the gdata app directory for appName and builds a store
// on it. When gdata is unavailable or the saved board is unreadable, the
// store still works in memory and the problem is logged.
func OpenGdataStore(appName string, logger *log.Logger) *GdataStore {
	if logger == nil {
		logger = log.Default()
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("Persistent storage unavailable, keeping scores in memory", "app", appName, "err", err)
		manager = nil
	}
	s, err := NewGdataStore(manager, DefaultLimit)
	if err != nil {
		logger.Warn("Failed to load leaderboard, starting empty", "err", err)
	}
	return s
}

func (s *GdataStore) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(boardObject, boardProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(boardObject, boardProperty)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	var b board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	slices.SortStableFunc(b.Entries, compareEntries)
	if len(b.Entries) > s.limit {
		b.Entries = b.Entries[:s.limit]
	}
	s.entries = b.Entries
	return nil
}

func (s *GdataStore) save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(board{Entries: s.entries})
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := s.manager.SaveObjectProp(boardObject, boardProperty, data); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}

// Add implements Store. The rank is computed before trimming to the limit,
// so an entry that does not make the board still learns where it placed.
func (s *GdataStore) Add(e Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, _ := slices.BinarySearchFunc(s.entries, e, func(a, b Entry) int {
		// Land after every entry that ranks equal or better.
		if compareEntries(a, b) <= 0 {
			return -1
		}
		return 1
	})
	rank := i + 1
	if i >= s.limit {
		return rank, nil
	}

	prev := slices.Clone(s.entries)
	s.entries = slices.Insert(s.entries, i, e)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	if err := s.save(); err != nil {
		s.entries = prev
		return 0, err
	}
	return rank, nil
}

// Top implements Store.
func (s *GdataStore) Top(n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n = min(max(n, 0), len(s.entries))
	return slices.Clone(s.entries[:n]), nil
}

// Len returns the number of stored entries.
func (s *GdataStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// compareEntries orders by score descending, then by time ascending.
func compareEntries(a, b Entry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return a.At.Compare(b.At)
}
