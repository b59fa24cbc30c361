// Package batch buffers table writes and flushes them behind the caller.
//
// A [Writer] accepts insert, merge, replace and delete operations,
// groups them into units the service can execute atomically (same table,
// same partition key, same kind, at most 100 entries), and empties the
// queue from a background timer. [Writer.Drain] flushes everything
// synchronously; [Writer.Clear] throws pending work away.
//
//	client, _ := dynamo.NewClient(ctx, cfg)
//	w := batch.NewWriter(client, cfg,
//	    batch.WithLogger(log),
//	    batch.WithListener(myListener))
//	defer w.Close()
//
//	op, _ := batch.NewOperation(reg, "orders", batch.KindInsert, &order)
//	_ = w.Enqueue(op)
//	...
//	_ = w.Drain()
//
// Enqueue never waits on the network and never learns how its operations
// fared: execution errors arrive on the [Listener], and the failed unit
// is abandoned. There are no cross-batch transactional guarantees.
package batch
