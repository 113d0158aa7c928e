package kfmt

import "io"

// ringBufferSize defines the size of the ring buffer that captures Printf
// output before the console is attached. It is large enough to hold a full
// 80x25 screen and must always be a power of 2.
const ringBufferSize = 2048

// ringBuffer is a fixed-size FIFO that overwrites its oldest contents when
// full. It never allocates.
type ringBuffer struct {
	buffer         [ringBufferSize]byte
	rIndex, wIndex int
}

// Write writes len(p) bytes from p to the ringBuffer, discarding the oldest
// bytes if there is not enough room.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buffer[rb.wIndex] = b
		rb.wIndex = (rb.wIndex + 1) & (ringBufferSize - 1)
		if rb.rIndex == rb.wIndex {
			rb.rIndex = (rb.rIndex + 1) & (ringBufferSize - 1)
		}
	}

	return len(p), nil
}

// Read reads up to len(p) bytes into p. It returns io.EOF once the buffer
// has been drained.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.rIndex == rb.wIndex {
		return 0, io.EOF
	}

	// Read up to the write index or, if the data wraps around, up to the
	// end of the backing array.
	avail := rb.wIndex - rb.rIndex
	if rb.rIndex > rb.wIndex {
		avail = len(rb.buffer) - rb.rIndex
	}

	n := copy(p, rb.buffer[rb.rIndex:rb.rIndex+avail])
	rb.rIndex = (rb.rIndex + n) & (ringBufferSize - 1)

	return n, nil
}
