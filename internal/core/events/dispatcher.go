package events

import (
	"context"
	"log/slog"
	"sync"
)

// Dispatcher fans each event out to every registered observer in registration order
type Dispatcher struct {
	logger    *slog.Logger
	observers []Observer
	mu        sync.RWMutex
}

// NewDispatcher creates a dispatcher with no observers
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// Subscribe registers an observer
func (d *Dispatcher) Subscribe(o Observer) {
	if o == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Notify delivers e to every observer.
// A panicking observer is logged and skipped so the remaining observers still run.
func (d *Dispatcher) Notify(ctx context.Context, e Event) {
	d.mu.RLock()
	observers := append([]Observer(nil), d.observers...)
	d.mu.RUnlock()

	for _, o := range observers {
		d.deliver(ctx, o, e)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, o Observer, e Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event observer panicked",
				"event_type", e.Type,
				"seq", e.Seq,
				"panic", r)
		}
	}()
	o.Notify(ctx, e)
}
