// Package mock provides scripted producers and consumers to test links.
package mock

import (
	"io"
	"sync"
	"time"

	"pipelined.dev/flow"
)

const (
	defaultBufferSize = 512
	defaultInterval   = 10 * time.Millisecond
)

// Producer produces a limited number of buffers and then finishes with
// io.EOF. Payload bytes carry the buffer sequence number so consumers
// can verify ordering.
type Producer struct {
	// Limit is the number of buffers to produce.
	Limit int
	// BufferSize is the payload size in bytes, defaultBufferSize if zero.
	BufferSize int
	// Interval is the duration stamped on every buffer, defaultInterval
	// if zero.
	Interval time.Duration
	// Pace is slept before every Produce call to simulate a real-time
	// producer.
	Pace time.Duration
	// ErrorOnCall makes Produce fail with provided error at this
	// zero-based call number.
	ErrorOnCall int
	// Err is the error to return at ErrorOnCall. Ignored when nil.
	Err error

	produced int
}

// Produce implements flow.Producer.
func (p *Producer) Produce() (*flow.Buffer, error) {
	if p.Err != nil && p.produced == p.ErrorOnCall {
		return nil, p.Err
	}
	if p.produced >= p.Limit {
		return nil, io.EOF
	}
	if p.Pace > 0 {
		time.Sleep(p.Pace)
	}
	size := p.BufferSize
	if size == 0 {
		size = defaultBufferSize
	}
	interval := p.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(p.produced)
	}
	b := &flow.Buffer{
		Data:      data,
		Timestamp: time.Duration(p.produced) * interval,
		Duration:  interval,
	}
	p.produced++
	return b, nil
}

// Produced returns the number of buffers produced so far.
func (p *Producer) Produced() int {
	return p.produced
}

// Consumer records consumed buffers. Delay and Err allow to script a
// slow or failing consumer.
type Consumer struct {
	// Delay is slept on every Consume call to simulate a slow consumer.
	Delay time.Duration
	// Err fails Consume immediately when set.
	Err error

	m       sync.Mutex
	buffers []*flow.Buffer
}

// Consume implements flow.Consumer.
func (c *Consumer) Consume(b *flow.Buffer) error {
	if c.Err != nil {
		return c.Err
	}
	if c.Delay > 0 {
		time.Sleep(c.Delay)
	}
	c.m.Lock()
	c.buffers = append(c.buffers, b)
	c.m.Unlock()
	return nil
}

// Consumed returns the number of buffers consumed so far.
func (c *Consumer) Consumed() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.buffers)
}

// Buffers returns a snapshot of consumed buffers in arrival order.
func (c *Consumer) Buffers() []*flow.Buffer {
	c.m.Lock()
	defer c.m.Unlock()
	return append([]*flow.Buffer(nil), c.buffers...)
}
