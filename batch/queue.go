package batch

import "sync"

// unitQueue is a concurrency-safe FIFO of pending batch units. Producers
// are arbitrary caller goroutines; the sole consumer is the writer's
// flush loop.
type unitQueue struct {
	mu    sync.Mutex
	units []*Unit
}

func (q *unitQueue) push(units ...*Unit) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.units = append(q.units, units...)
}

func (q *unitQueue) pop() (*Unit, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.units) == 0 {
		return nil, false
	}
	u := q.units[0]
	q.units = q.units[1:]
	return u, true
}

func (q *unitQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.units)
}

// clear discards every pending unit and returns how many were dropped.
func (q *unitQueue) clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.units)
	q.units = nil
	return n
}
