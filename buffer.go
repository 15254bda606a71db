package flow

import "time"

// Buffer is a single unit of data travelling through a link. It is owned
// by exactly one side at a time: by the producer until Push accepts it,
// by the queue while it waits, and by the consumer after Pull returns it.
type Buffer struct {
	Data      []byte
	Timestamp time.Duration
	Duration  time.Duration
}

// Len returns the payload length in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// End returns the timestamp right after this buffer's data.
func (b *Buffer) End() time.Duration {
	return b.Timestamp + b.Duration
}
