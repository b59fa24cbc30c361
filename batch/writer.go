package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Writer buffers write operations and flushes them to the table service
// asynchronously: a background timer empties the queue in bounded slices,
// and Drain empties it synchronously on demand. Execution outcomes are
// reported through the Listener, never to the enqueuing caller.
type Writer struct {
	cfg      Config
	log      zerolog.Logger
	listener Listener
	metrics  *metrics
	exec     *executor
	queue    *unitQueue

	draining atomic.Bool

	flushc    chan chan struct{}
	stopc     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option customizes a Writer.
type Option func(*Writer)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Writer) { w.log = log }
}

// WithListener attaches a notification listener.
func WithListener(l Listener) Option {
	return func(w *Writer) { w.listener = l }
}

// WithRegisterer registers the writer's metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(w *Writer) { w.metrics = newMetrics(reg) }
}

// NewWriter creates a writer over client and starts its flush loop.
// Callers must Close it when done.
func NewWriter(client Client, cfg Config, opts ...Option) *Writer {
	cfg.validate()
	w := &Writer{
		cfg:      cfg,
		log:      zerolog.Nop(),
		listener: NopListener{},
		queue:    &unitQueue{},
		flushc:   make(chan chan struct{}),
		stopc:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.metrics == nil {
		w.metrics = newMetrics(nil)
	}
	w.exec = newExecutor(client, w.log, w.listener, w.metrics)

	go w.loop()
	return w
}

// Enqueue groups the operations into batch units and appends them to the
// pending queue. Operations for one partition key keep row-key order
// within this call; nothing is ordered across calls. Retrieve operations
// and calls made during a drain are rejected without enqueuing anything.
func (w *Writer) Enqueue(ops ...Operation) error {
	if w.draining.Load() {
		return ErrDrainInProgress
	}
	for _, op := range ops {
		if op.Kind == KindRetrieve {
			return ErrReadOnlyKind
		}
	}
	if len(ops) == 0 {
		return nil
	}

	units := group(ops, w.cfg.MaxBatchSize)
	w.queue.push(units...)
	w.metrics.enqueuedOps.Add(float64(len(ops)))

	for _, op := range ops {
		w.listener.ItemAdded(op.Table, op.Kind, op.Record.PartitionKey(), op.Record.RowKey())
	}
	w.log.Debug().Int("operations", len(ops)).Int("units", len(units)).Msg("operations enqueued")
	return nil
}

// Count returns the number of pending batch units.
func (w *Writer) Count() int { return w.queue.len() }

// HasItems reports whether any batch unit is pending.
func (w *Writer) HasItems() bool { return w.Count() > 0 }

// Drain blocks until every pending unit has been attempted, ignoring the
// per-flush time budget. Any in-flight timer flush finishes first; while
// the drain runs, Enqueue and Clear are rejected so it observes a
// quiescent queue. Failed units are abandoned, not requeued, so the
// queue is always empty afterwards.
func (w *Writer) Drain() error {
	if !w.draining.CompareAndSwap(false, true) {
		return ErrDrainInProgress
	}
	defer w.draining.Store(false)

	donec := make(chan struct{})
	select {
	case w.flushc <- donec:
	case <-w.done:
		return ErrClosed
	}
	select {
	case <-donec:
		return nil
	case <-w.done:
		return ErrClosed
	}
}

// Clear discards all pending units without executing them and emits one
// queue-cleared notification. Rejected while a drain is in progress.
func (w *Writer) Clear() error {
	if w.draining.Load() {
		return ErrDrainInProgress
	}
	dropped := w.queue.clear()
	w.metrics.clearedUnits.Add(float64(dropped))
	if dropped > 0 {
		w.log.Info().Int("units", dropped).Msg("queue cleared")
	}
	w.listener.QueueCleared()
	return nil
}

// Close stops the flush loop. Pending units stay queued and are not
// executed; call Drain first to flush them.
func (w *Writer) Close() error {
	w.closeOnce.Do(func() {
		close(w.stopc)
		<-w.done
	})
	return nil
}

// loop is the queue's single consumer: timer fires run budgeted flushes,
// drain requests run the queue to exhaustion. Serializing both here is
// what keeps the timer callback and a drain from ever consuming
// concurrently.
func (w *Writer) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.cfg.flushInterval())
	defer ticker.Stop()

	for {
		select {
		case <-w.stopc:
			return
		case <-ticker.C:
			w.flush(context.Background())
		case donec := <-w.flushc:
			w.drainAll(context.Background())
			close(donec)
		}
	}
}

// flush executes queued units until the queue empties or the time budget
// elapses; leftovers wait for the next cycle.
func (w *Writer) flush(ctx context.Context) {
	total := w.queue.len()
	if total == 0 {
		return
	}
	deadline := time.Now().Add(w.cfg.flushBudget())
	for i := 1; ; i++ {
		if time.Now().After(deadline) {
			w.log.Warn().Int("remaining", w.queue.len()).Msg("flush budget exhausted")
			return
		}
		u, ok := w.queue.pop()
		if !ok {
			return
		}
		w.exec.execute(ctx, i, total, u)
	}
}

// drainAll executes every queued unit with no time bound.
func (w *Writer) drainAll(ctx context.Context) {
	total := w.queue.len()
	w.listener.DrainStarted(total)
	w.log.Info().Int("units", total).Msg("drain started")

	for i := 1; ; i++ {
		u, ok := w.queue.pop()
		if !ok {
			break
		}
		w.exec.execute(ctx, i, total, u)
	}

	w.listener.DrainCompleted()
	w.log.Info().Msg("drain completed")
}
