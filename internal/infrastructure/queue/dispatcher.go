package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fittrack/exercise-tracker/internal/api/metrics"
	"github.com/fittrack/exercise-tracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes append audit events to a fixed set of workers using
// consistent hashing on the user id, so one user's events are persisted in
// append order. It satisfies service.AuditSink.
type Dispatcher struct {
	workers []chan ports.ExerciseEvent
	repo    ports.AuditRepository
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.ExerciseEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ExerciseEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop closes their
// channels.
func (d *Dispatcher) Start() {
	d.wg.Add(len(d.workers))
	for i, ch := range d.workers {
		go d.runWorker(i, ch)
	}
}

// Stop closes the shard channels and blocks until every worker has drained
// its queue, so events enqueued before shutdown are still persisted. Safe to
// call more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Record enqueues an audit event without blocking the request path. When the
// shard's buffer is full, or the dispatcher is stopped, the event is dropped
// with a warning; the audit trail is advisory, the append itself has already
// been persisted.
func (d *Dispatcher) Record(ev ports.ExerciseEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("user_id", ev.UserID).Msg("audit pipeline stopped, event dropped")
		return
	}

	idx := d.shardIndex(ev.UserID)
	select {
	case d.workers[idx] <- ev:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().Str("user_id", ev.UserID).Int("worker_id", idx).Msg("audit queue full, event dropped")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

// runWorker persists events until its channel is closed. Inserts run on a
// fresh context so the drain during shutdown is not cut short by the
// process-level cancellation; the repository applies its own timeout.
func (d *Dispatcher) runWorker(id int, ch <-chan ports.ExerciseEvent) {
	defer d.wg.Done()

	worker := strconv.Itoa(id)
	for ev := range ch {
		metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		if err := d.repo.Insert(context.Background(), &ev); err != nil {
			metrics.AuditEventsErrorsTotal.Inc()
			d.log.Error().Err(err).
				Str("user_id", ev.UserID).
				Int("worker_id", id).
				Msg("audit event write failed")
			continue
		}
		metrics.AuditEventsWrittenTotal.Inc()
	}
}
