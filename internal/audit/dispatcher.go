package audit

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/rootbits-api/internal/logger"
)

type Event struct {
	UserID   string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Dispatcher writes audit events on a background worker. Events are dropped
// when the queue is full; auditing never fails a request.
type Dispatcher struct {
	logger *Logger
	log    *logger.Logger
	queue  chan Event
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(l *Logger, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dispatcher{
		logger: l,
		log:    log,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			ctx := d.log.WithFields(context.Background(), map[string]any{
				"action": ev.Action,
				"entity": ev.Entity,
			})
			d.log.Error(ctx, "audit.write_failed", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn(d.log.WithField(context.Background(), "action", ev.Action), "audit.dispatcher_closed")
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn(d.log.WithField(context.Background(), "action", ev.Action), "audit.queue_full")
	}
}

// Close stops accepting events and waits for the queue to drain. Events
// dispatched afterwards are dropped.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
