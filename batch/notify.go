package batch

// Listener receives write-behind lifecycle notifications. Callbacks run
// synchronously, most on the flush loop goroutine; implementations must
// return quickly. Execution failures surface only here - the enqueuing
// call has long since returned - so embedding code that cares about
// persistent failure must watch Error.
type Listener interface {
	// ItemAdded fires once per operation accepted by Enqueue.
	ItemAdded(table string, kind Kind, partitionKey, rowKey string)

	// FlushProgress fires once per unit attempted, success or failure.
	// index counts from 1 to total within one flush or drain cycle; the
	// row key is the unit's first member's.
	FlushProgress(index, total int, table string, kind Kind, partitionKey, rowKey string)

	// Error fires when a unit fails to execute. The unit is abandoned;
	// there is no automatic retry.
	Error(msg string, cause error)

	// DrainStarted fires when a drain begins, with the queue size at
	// that moment.
	DrainStarted(queued int)

	// DrainCompleted fires when a drain has attempted every unit.
	DrainCompleted()

	// QueueCleared fires once per Clear call.
	QueueCleared()
}

// NopListener discards every notification.
type NopListener struct{}

func (NopListener) ItemAdded(string, Kind, string, string)               {}
func (NopListener) FlushProgress(int, int, string, Kind, string, string) {}
func (NopListener) Error(string, error)                                  {}
func (NopListener) DrainStarted(int)                                     {}
func (NopListener) DrainCompleted()                                      {}
func (NopListener) QueueCleared()                                        {}

var _ Listener = NopListener{}
