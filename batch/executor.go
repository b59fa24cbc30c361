package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// executor runs batch units against the table service, creating target
// tables lazily and isolating failures per unit.
type executor struct {
	client   Client
	log      zerolog.Logger
	listener Listener
	metrics  *metrics

	mu      sync.Mutex
	ensured map[string]struct{}
}

func newExecutor(client Client, log zerolog.Logger, listener Listener, m *metrics) *executor {
	return &executor{
		client:   client,
		log:      log,
		listener: listener,
		metrics:  m,
		ensured:  make(map[string]struct{}),
	}
}

// execute attempts one unit. A failed unit is dropped, reported through
// the error notification, and never retried; every outcome emits a
// progress notification.
func (e *executor) execute(ctx context.Context, index, total int, u *Unit) {
	pk, rk := u.PartitionKey(), u.FirstRowKey()

	err := e.ensureTable(ctx, u.Table)
	if err == nil {
		if u.Size() == 1 {
			err = e.client.Execute(ctx, u.Ops[0])
		} else {
			err = e.client.ExecuteBatch(ctx, u)
		}
	}

	if err != nil {
		e.metrics.failedUnits.Inc()
		e.log.Error().
			Err(err).
			Str("table", u.Table).
			Stringer("kind", u.Kind).
			Str("partition_key", pk).
			Int("size", u.Size()).
			Msg("batch unit failed")
		e.listener.Error(fmt.Sprintf("batch of %d %s operations against table %s failed", u.Size(), u.Kind, u.Table), err)
	} else {
		e.metrics.flushedUnits.Inc()
		e.log.Debug().
			Str("table", u.Table).
			Stringer("kind", u.Kind).
			Str("partition_key", pk).
			Int("size", u.Size()).
			Msg("batch unit executed")
	}

	e.listener.FlushProgress(index, total, u.Table, u.Kind, pk, rk)
}

// ensureTable resolves the target table, creating it on first use. The
// ensured set is the executor's own; nothing else touches it.
func (e *executor) ensureTable(ctx context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.ensured[name]; ok {
		return nil
	}

	exists, err := e.client.TableExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check table %s: %w", name, err)
	}
	if !exists {
		e.log.Info().Str("table", name).Msg("creating table")
		if err := e.client.CreateTable(ctx, name); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
	}
	e.ensured[name] = struct{}{}
	return nil
}
