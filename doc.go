/*
Package flow provides a watermarked flow-control queue for streaming
pipelines.

Concept

Pipeline elements exchange data in one of two modes:

    Push - the producer delivers a buffer whenever one is ready;
    Pull - the consumer requests a buffer whenever it has demand.

When a push-mode element feeds a pull-mode element directly, the producer's
cadence and the consumer's demand never line up. Queue sits between the two
and absorbs the difference: Push never blocks the producer, Pull never
blocks the consumer, and buffers travel through in strict FIFO order.

Watermarks

Unbounded buffering hides sizing mistakes until memory runs out, so every
queue carries two watermarks chosen at construction:

    warn - occupancy above this level raises a recoverable warning;
    fail - occupancy above this level is an unrecoverable overflow.

A warning is advisory: the queue keeps accepting buffers and the owning
pipeline decides whether to throttle the producer. An overflow is fatal for
the link: the queue refuses the buffer, enters the Failed state and rejects
every push until the owner calls Reset. There is no silent drop policy;
operators size the watermarks instead.

Occupancy is counted in buffers by default. WithByteThresholds switches a
queue to payload-byte accounting.

Links

Run binds one producer and one consumer around a queue, executes each in
its own goroutine and reports the first failure from Await:

    q, err := flow.New(flow.WithThresholds(64, 256))
    r := q.Run(ctx, producer, consumer)
    err = r.Await()

The producer finishes the link gracefully by returning io.EOF.
*/
package flow
