package flow

// ring is a growable FIFO of buffers. It is not safe for concurrent use,
// the queue lock guards it.
type ring struct {
	buf   []*Buffer
	read  int
	write int
	full  bool
}

func newRing(sz int) *ring {
	if sz < 1 {
		sz = 1
	}
	return &ring{buf: make([]*Buffer, sz)}
}

// length returns a number of elements currently in the ring.
func (r *ring) length() int {
	if r.read == r.write {
		if r.full {
			return len(r.buf)
		}
		return 0
	}
	if r.read < r.write {
		return r.write - r.read
	}
	return r.write - r.read + len(r.buf)
}

// enqueue appends a buffer to the tail, doubling the ring when it is full.
func (r *ring) enqueue(b *Buffer) {
	if r.full {
		r.grow()
	}
	r.buf[r.write] = b
	r.write = (r.write + 1) % len(r.buf)
	r.full = r.read == r.write
}

// dequeue removes and returns the head buffer.
func (r *ring) dequeue() (*Buffer, bool) {
	if !r.full && r.read == r.write {
		return nil, false
	}
	b := r.buf[r.read]
	r.buf[r.read] = nil
	r.read = (r.read + 1) % len(r.buf)
	r.full = false
	return b, true
}

// reset drops all queued buffers and keeps the allocated capacity.
func (r *ring) reset() {
	for i := range r.buf {
		r.buf[i] = nil
	}
	r.read = 0
	r.write = 0
	r.full = false
}

func (r *ring) grow() {
	buf := make([]*Buffer, 2*len(r.buf))
	n := r.length()
	for i := 0; i < n; i++ {
		buf[i] = r.buf[(r.read+i)%len(r.buf)]
	}
	r.buf = buf
	r.read = 0
	r.write = n
	r.full = false
}
