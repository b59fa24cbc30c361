package batch

import "errors"

var (
	// ErrDrainInProgress is returned by Enqueue and Clear while a drain
	// holds the queue quiescent.
	ErrDrainInProgress = errors.New("terrace: drain in progress")

	// ErrReadOnlyKind is returned when a retrieve operation is enqueued;
	// the write-behind queue accepts writes and deletes only.
	ErrReadOnlyKind = errors.New("terrace: read operations cannot be queued")

	// ErrClosed is returned once the writer's flush loop has stopped.
	ErrClosed = errors.New("terrace: writer is closed")
)
