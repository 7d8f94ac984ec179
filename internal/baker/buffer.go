package baker

import (
	"errors"
	"sync"
)

// ErrReleased is returned when reading a buffer after Release.
var ErrReleased = errors.New("buffer released")

// Buffer is an uploaded, fixed-size structured buffer.
type Buffer interface {
	// Count is the number of elements the buffer was created with.
	Count() int
	// Release frees the buffer. Releasing twice is a no-op.
	Release() error
}

// Uploader creates a structured buffer holding count elements of stride bytes.
// GPU hosts implement it over their graphics API.
type Uploader interface {
	Upload(data []byte, count, stride int) (Buffer, error)
}

// MemoryUploader keeps uploaded buffers in host memory, for headless hosts and tests.
type MemoryUploader struct{}

// Upload copies data into a new MemoryBuffer.
func (MemoryUploader) Upload(data []byte, count, stride int) (Buffer, error) {
	return &MemoryBuffer{
		data:   append([]byte(nil), data...),
		count:  count,
		stride: stride,
	}, nil
}

// MemoryBuffer is a Buffer backed by a byte slice.
type MemoryBuffer struct {
	mu       sync.Mutex
	data     []byte
	count    int
	stride   int
	released bool
}

// Count returns the element count.
func (b *MemoryBuffer) Count() int {
	return b.count
}

// Stride returns the element size in bytes.
func (b *MemoryBuffer) Stride() int {
	return b.stride
}

// Bytes returns a copy of the buffer contents.
func (b *MemoryBuffer) Bytes() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return nil, ErrReleased
	}
	return append([]byte(nil), b.data...), nil
}

// Released reports whether Release has been called.
func (b *MemoryBuffer) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

// Release drops the contents.
func (b *MemoryBuffer) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.released = true
	b.data = nil
	return nil
}
