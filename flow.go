package flow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/xid"

	"pipelined.dev/flow/log"
	"pipelined.dev/flow/metric"
)

// Default watermarks applied when no thresholds option is provided.
const (
	defaultWarnThreshold = 64
	defaultFailThreshold = 256
)

// initial ring capacity for queues with large or byte-sized watermarks.
const defaultRingCapacity = 64

var (
	// ErrInvalidThresholds is returned if watermarks do not form a valid
	// configuration: both must be non-negative and warn must not exceed fail.
	ErrInvalidThresholds = errors.New("invalid thresholds")
	// ErrOverflow is returned if a push would raise occupancy above the
	// fail watermark. Once returned, the queue is failed and rejects all
	// pushes until Reset.
	ErrOverflow = errors.New("queue overflow")
)

// Logger is a global interface for flow loggers.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
}

var defaultLogger Logger = log.GetLogger()

// sizing identifies units in which queue occupancy is measured.
type sizing int

const (
	sizingCount sizing = iota
	sizingBytes
)

// Queue decouples a push-mode producer from a pull-mode consumer. Push
// and Pull are safe to call concurrently and never block beyond lock
// contention. Buffers are delivered in the exact order they were pushed.
type Queue struct {
	uid      string
	name     string
	warn     int
	fail     int
	sizing   sizing
	listener Listener
	log      Logger
	meter    *metric.Meter

	m     sync.Mutex
	ring  *ring
	size  int
	state State
}

// newUID returns new unique id value.
func newUID() string {
	return xid.New().String()
}

// New creates a new queue and applies provided options.
// Returned queue is empty and in Normal state.
func New(options ...Option) (*Queue, error) {
	q := &Queue{
		uid:  newUID(),
		name: "queue",
		warn: defaultWarnThreshold,
		fail: defaultFailThreshold,
		log:  defaultLogger,
	}
	for _, option := range options {
		if err := option(q); err != nil {
			return nil, err
		}
	}
	q.ring = newRing(q.ringCapacity())
	q.meter = metric.GetMeter(q.name)
	return q, nil
}

// ringCapacity picks the initial ring size. In count units the ring never
// holds more than fail buffers, so small watermarks allocate exactly once.
func (q *Queue) ringCapacity() int {
	if q.sizing == sizingCount && q.fail < defaultRingCapacity {
		return q.fail
	}
	return defaultRingCapacity
}

// weight returns the occupancy cost of a buffer in the queue's units.
func (q *Queue) weight(b *Buffer) int {
	if q.sizing == sizingBytes {
		return b.Len()
	}
	return 1
}

// Push appends a buffer to the tail of the queue. It never blocks the
// producer. The returned state is the queue state after the push: Normal
// while occupancy stays at or below warn, Warning while it stays within
// fail. If the push would raise occupancy above fail, the buffer is
// refused, ownership stays with the caller and ErrOverflow is returned;
// the queue is failed from that point on and every following push is
// rejected the same way until Reset.
func (q *Queue) Push(b *Buffer) (State, error) {
	q.m.Lock()
	if q.state == StateFailed {
		q.m.Unlock()
		q.meter.Overflow()
		return StateFailed, ErrOverflow
	}
	if q.size+q.weight(b) > q.fail {
		from := q.state
		q.state = StateFailed
		size := q.size
		q.m.Unlock()
		q.meter.Overflow()
		q.notify(from, StateFailed, size)
		return StateFailed, ErrOverflow
	}
	q.ring.enqueue(b)
	q.size += q.weight(b)
	from := q.state
	if q.size > q.warn {
		q.state = StateWarning
	}
	to, size := q.state, q.size
	q.m.Unlock()
	q.meter.Push(int64(size))
	q.notify(from, to, size)
	return to, nil
}

// Pull removes and returns the head buffer. It never blocks the consumer:
// when the queue is empty it returns false and the caller defers its own
// work. Draining occupancy to the warn watermark walks Warning back to
// Normal; it does not clear Failed.
func (q *Queue) Pull() (*Buffer, bool) {
	q.m.Lock()
	b, ok := q.ring.dequeue()
	if !ok {
		q.m.Unlock()
		return nil, false
	}
	q.size -= q.weight(b)
	from := q.state
	if from == StateWarning && q.size <= q.warn {
		q.state = StateNormal
	}
	to, size := q.state, q.size
	q.m.Unlock()
	q.meter.Pull(int64(size))
	q.notify(from, to, size)
	return b, true
}

// Reset drops all queued buffers and returns the queue to Normal state.
// It is the explicit recovery path out of Failed and is expected to be
// called by the owning pipeline after it has handled the overflow, e.g.
// by restarting the link.
func (q *Queue) Reset() {
	q.m.Lock()
	q.ring.reset()
	q.size = 0
	from := q.state
	q.state = StateNormal
	q.m.Unlock()
	q.meter.SetOccupancy(0)
	q.notify(from, StateNormal, 0)
}

// Size returns current occupancy in the queue's units.
func (q *Queue) Size() int {
	q.m.Lock()
	defer q.m.Unlock()
	return q.size
}

// State returns current queue state.
func (q *Queue) State() State {
	q.m.Lock()
	defer q.m.Unlock()
	return q.state
}

// ID returns unique identifier of the queue.
func (q *Queue) ID() string {
	return q.uid
}

// Name returns the queue name used for logging and metrics.
func (q *Queue) Name() string {
	return q.name
}

// notify reports a state transition to the logger, the meter and the
// listener. It must be called with the queue lock released.
func (q *Queue) notify(from, to State, size int) {
	if from == to {
		return
	}
	switch to {
	case StateWarning:
		q.meter.Warning()
		q.log.Info(fmt.Sprintf("flow: queue %s above warn watermark: size %d", q.name, size))
	case StateFailed:
		q.log.Info(fmt.Sprintf("flow: queue %s overflowed: size %d", q.name, size))
	case StateNormal:
		q.log.Debug(fmt.Sprintf("flow: queue %s back to normal: size %d", q.name, size))
	}
	if q.listener != nil {
		q.listener(from, to)
	}
}
