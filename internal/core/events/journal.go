package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrAlreadyJournaled is returned by Repository.Append when the seq is already stored
var ErrAlreadyJournaled = errors.New("event already journaled")

// Repository persists committed events for restore on startup
type Repository interface {
	// Append stores one event. Appending a seq that already exists fails with ErrAlreadyJournaled.
	Append(ctx context.Context, e Event) error

	// List returns every stored event ordered by seq ascending
	List(ctx context.Context) ([]Event, error)
}

// JournalObserver appends every committed event to a Repository.
// Events are written strictly in seq order. When a write fails, the event and
// every later one stay in a backlog that is retried on the next notification,
// on Flush and from the background flusher, so the stored journal is always a
// gap-free prefix of committed history.
type JournalObserver struct {
	repo    Repository
	logger  *slog.Logger
	pending []Event
	mu      sync.Mutex
}

// NewJournalObserver creates an observer writing to repo
func NewJournalObserver(repo Repository, logger *slog.Logger) *JournalObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalObserver{repo: repo, logger: logger}
}

// Notify implements Observer
func (j *JournalObserver) Notify(ctx context.Context, e Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.pending = append(j.pending, e)
	// Detach from request cancellation: a client hanging up must not lose a committed event
	if err := j.flushLocked(context.WithoutCancel(ctx)); err != nil {
		j.logger.Error("failed to journal event",
			"seq", e.Seq,
			"event_type", e.Type,
			"event_id", e.ID,
			"backlog", len(j.pending),
			"error", err)
	}
}

// Flush retries the backlog and reports an error while any event is still unwritten
func (j *JournalObserver) Flush(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.flushLocked(ctx); err != nil {
		return fmt.Errorf("%d events not journaled: %w", len(j.pending), err)
	}
	return nil
}

// Pending returns the number of committed events not yet written
func (j *JournalObserver) Pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.pending)
}

// StartFlusher retries the backlog every interval until stop is closed
func (j *JournalObserver) StartFlusher(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if j.Pending() == 0 {
					continue
				}
				if err := j.Flush(context.Background()); err != nil {
					j.logger.Warn("journal backlog retry failed", "error", err)
				}
			case <-stop:
				return
			}
		}
	}()
}

func (j *JournalObserver) flushLocked(ctx context.Context) error {
	for len(j.pending) > 0 {
		e := j.pending[0]
		// A duplicate means an earlier attempt reached the table before reporting failure
		if err := j.repo.Append(ctx, e); err != nil && !errors.Is(err, ErrAlreadyJournaled) {
			return err
		}
		j.pending[0] = Event{}
		j.pending = j.pending[1:]
	}
	j.pending = nil
	return nil
}
