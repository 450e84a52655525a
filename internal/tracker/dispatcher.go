package tracker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"shortener-analytics/internal/domain"
	"shortener-analytics/pkg/logger"
)

// ClickRecorder is what the dispatcher's workers call
type ClickRecorder interface {
	Record(ctx context.Context, linkID uint, req domain.ClickRequest) (*domain.ClickEvent, error)
}

type job struct {
	linkID uint
	req    domain.ClickRequest
}

// Dispatcher runs click recording on a fixed pool of workers fed by a
// bounded queue. Submit never blocks the caller.
type Dispatcher struct {
	recorder ClickRecorder
	jobs     chan job
	timeout  time.Duration
	logger   *logger.Logger

	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	dropped atomic.Int64
}

// NewDispatcher starts workers goroutines that each record one click at a
// time, bounded by timeout
func NewDispatcher(recorder ClickRecorder, workers, queueSize int, timeout time.Duration, log *logger.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		recorder: recorder,
		jobs:     make(chan job, queueSize),
		timeout:  timeout,
		logger:   log.WithFields(map[string]interface{}{"component": "click_dispatcher"}),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work()
	}

	return d
}

// Submit queues a click. It returns false when the click was dropped because
// the queue is full or the dispatcher is closed.
func (d *Dispatcher) Submit(linkID uint, req domain.ClickRequest) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.dropped.Add(1)
		d.logger.Warnw("Click dropped, dispatcher closed", "link_id", linkID)
		return false
	}

	select {
	case d.jobs <- job{linkID: linkID, req: req}:
		return true
	default:
		d.dropped.Add(1)
		d.logger.Warnw("Click dropped, queue full", "link_id", linkID, "queue_size", cap(d.jobs))
		return false
	}
}

// Dropped reports how many clicks were discarded since start
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting clicks and waits for queued ones to be recorded,
// or for ctx to end
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for j := range d.jobs {
		d.handle(j)
	}
}

func (d *Dispatcher) handle(j job) {
	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Errorw("Panic while recording click", "link_id", j.linkID, "panic", rec)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if _, err := d.recorder.Record(ctx, j.linkID, j.req); err != nil {
		d.logger.Errorw("Failed to record click", "link_id", j.linkID, "error", err)
	}
}
