package flow

import (
	"context"
	"io"
	"sync"
	"time"
)

// Producer is the push-mode side of a link. Produce returns the next
// buffer, io.EOF when the stream is over, or any other error to abort
// the link.
type Producer interface {
	Produce() (*Buffer, error)
}

// Consumer is the pull-mode side of a link. A non-nil error aborts the
// link.
type Consumer interface {
	Consume(*Buffer) error
}

// defaultInterval is the consumer's demand cadence when the queue is empty.
const defaultInterval = time.Millisecond

// RunOption provides a way to set functional parameters to a link run.
type RunOption func(*Runner)

// WithInterval sets how often the consumer re-checks an empty queue.
// This cadence is the link's scheduling policy, the queue itself never
// blocks either side.
func WithInterval(d time.Duration) RunOption {
	return func(r *Runner) {
		r.interval = d
	}
}

// Runner executes a single link: one producer and one consumer bound
// around one queue, each in its own goroutine.
type Runner struct {
	cancelFn  context.CancelFunc
	interval  time.Duration
	done      chan struct{}
	errorChan chan error
}

// Run starts the link and returns a runner to await it. The producer
// finishes the link gracefully by returning io.EOF; the consumer then
// drains whatever is queued before the run completes. The first error
// from either side, ErrOverflow included, cancels the other side and is
// reported from Await.
func (q *Queue) Run(ctx context.Context, p Producer, c Consumer, options ...RunOption) *Runner {
	ctx, cancelFn := context.WithCancel(ctx)
	r := &Runner{
		cancelFn:  cancelFn,
		interval:  defaultInterval,
		done:      make(chan struct{}),
		errorChan: make(chan error, 1),
	}
	for _, option := range options {
		option(r)
	}

	m := merger{errorChan: make(chan error, 1)}
	m.merge(
		q.produce(ctx, p, r.done),
		q.consume(ctx, c, r.done, r.interval),
	)
	go m.wait()

	go func() {
		defer close(r.errorChan)
		if err, ok := <-m.errorChan; ok {
			// first error cancels the other side, the rest are ignored.
			cancelFn()
			for range m.errorChan {
			}
			r.errorChan <- err
			return
		}
		cancelFn()
	}()
	return r
}

// Await blocks until the link is done and returns the first error that
// occurred, or nil when the producer finished with io.EOF and the
// consumer drained the queue.
func (r *Runner) Await() error {
	for err := range r.errorChan {
		if err != nil {
			return err
		}
	}
	return nil
}

// produce pushes buffers until the producer is exhausted or fails.
func (q *Queue) produce(ctx context.Context, p Producer, done chan struct{}) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			b, err := p.Produce()
			if err == io.EOF {
				return
			}
			if err != nil {
				errc <- err
				return
			}
			if _, err := q.Push(b); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc
}

// consume pulls buffers on its own demand cadence until the producer is
// done and the queue is drained.
func (q *Queue) consume(ctx context.Context, c Consumer, done chan struct{}, interval time.Duration) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			if b, ok := q.Pull(); ok {
				if err := c.Consume(b); err != nil {
					errc <- err
					return
				}
				continue
			}
			select {
			case <-ctx.Done():
				return
			case <-done:
				// producer finished, drain the leftovers.
				for {
					b, ok := q.Pull()
					if !ok {
						return
					}
					if err := c.Consume(b); err != nil {
						errc <- err
						return
					}
				}
			case <-t.C:
			}
		}
	}()
	return errc
}

// merger allows to listen to multiple error channels.
type merger struct {
	wg        sync.WaitGroup
	errorChan chan error
}

// merge error channels from both sides of the link into one.
func (m *merger) merge(errcList ...<-chan error) {
	m.wg.Add(len(errcList))
	for _, ec := range errcList {
		go m.listen(ec)
	}
}

// listen blocks until error is received or channel is closed.
func (m *merger) listen(ec <-chan error) {
	if err, ok := <-ec; ok {
		select {
		case m.errorChan <- err:
		default:
		}
	}
	m.wg.Done()
}

// wait waits for all underlying error channels to be closed and then
// closes the output error channel.
func (m *merger) wait() {
	m.wg.Wait()
	close(m.errorChan)
}
