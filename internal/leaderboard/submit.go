package leaderboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// MaxIDLength is the longest identifier accepted, in bytes.
const MaxIDLength = 64

var (
	// ErrEmptyID is returned for identifiers that are blank after trimming.
	ErrEmptyID = errors.New("identifier is empty")
	// ErrIDTooLong is returned for identifiers over MaxIDLength bytes.
	ErrIDTooLong = errors.New("identifier is too long")
)

// ValidateID trims id and checks that it can be stored.
func ValidateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	if len(id) > MaxIDLength {
		return "", fmt.Errorf("%w: %d bytes, max %d", ErrIDTooLong, len(id), MaxIDLength)
	}
	return id, nil
}

// Result reports the outcome of a submission.
type Result struct {
	Entry Entry
	Rank  int
	Err   error
}

// Submitter sends final scores to a Store without blocking the caller.
type Submitter struct {
	store  Store
	logger *log.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// NewSubmitter creates a submitter writing to store.
func NewSubmitter(store Store, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Submitter{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Submit records score for id in the background. The returned channel
// receives exactly one Result and is then closed; it is buffered, so a caller
// that stops listening never blocks the submission.
func (s *Submitter) Submit(id string, score int) <-chan Result {
	out := make(chan Result, 1)

	id, err := ValidateID(id)
	if err != nil {
		out <- Result{Err: err}
		close(out)
		return out
	}
	e := Entry{ID: id, Score: score, At: s.now()}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(out)

		rank, err := s.store.Add(e)
		if err != nil {
			s.logger.Error("Score submission failed", "id", e.ID, "score", e.Score, "err", err)
			out <- Result{Entry: e, Err: fmt.Errorf("failed to submit score: %w", err)}
			return
		}
		s.logger.Info("Score submitted", "id", e.ID, "score", e.Score, "rank", rank)
		out <- Result{Entry: e, Rank: rank}
	}()
	return out
}

// Wait blocks until every submission in flight has finished.
func (s *Submitter) Wait() {
	s.wg.Wait()
}

// Top returns the best n entries of the underlying store.
func (s *Submitter) Top(n int) ([]Entry, error) {
	return s.store.Top(n)
}
