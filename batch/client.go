package batch

import "context"

// Client is the table-service surface the writer depends on. The dynamo
// package provides the production implementation; tests substitute fakes.
type Client interface {
	// TableExists reports whether the named table exists.
	TableExists(ctx context.Context, name string) (bool, error)

	// CreateTable creates the named table.
	CreateTable(ctx context.Context, name string) error

	// Execute runs a single operation.
	Execute(ctx context.Context, op Operation) error

	// ExecuteBatch runs a unit as one atomic request. The service
	// rejects units over 100 entries or mixing partition keys or kinds;
	// grouping upholds those bounds before a unit reaches here.
	ExecuteBatch(ctx context.Context, unit *Unit) error
}
