package flow

// Option provides a way to set functional parameters to queue.
type Option func(*Queue) error

// WithThresholds sets warn and fail watermarks measured in buffer count.
// Both must be non-negative and warn must not exceed fail, otherwise New
// returns ErrInvalidThresholds.
func WithThresholds(warn, fail int) Option {
	return func(q *Queue) error {
		if warn < 0 || fail < 0 || warn > fail {
			return ErrInvalidThresholds
		}
		q.warn = warn
		q.fail = fail
		q.sizing = sizingCount
		return nil
	}
}

// WithByteThresholds sets warn and fail watermarks measured in payload
// bytes instead of buffer count. The unit is fixed for the lifetime of
// the queue.
func WithByteThresholds(warn, fail int) Option {
	return func(q *Queue) error {
		if warn < 0 || fail < 0 || warn > fail {
			return ErrInvalidThresholds
		}
		q.warn = warn
		q.fail = fail
		q.sizing = sizingBytes
		return nil
	}
}

// WithName sets the queue name used in log lines and metric keys.
// Queues sharing a name share metric counters.
func WithName(name string) Option {
	return func(q *Queue) error {
		q.name = name
		return nil
	}
}

// WithListener registers a callback for queue state transitions.
func WithListener(fn Listener) Option {
	return func(q *Queue) error {
		q.listener = fn
		return nil
	}
}

// WithLogger overrides the default logger.
func WithLogger(l Logger) Option {
	return func(q *Queue) error {
		q.log = l
		return nil
	}
}
