package ocr

import (
	"context"
	"errors"
	"sync"
)

// Recognizer extracts text from a scanned image. Implementations wrap a
// native OCR engine whose sessions are expensive and limited.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("ocr pool closed")

// Pool bounds concurrent access to the underlying recognizer. Every
// Acquire must be paired with a Release; the handle is invalid after
// Release and double releases are no-ops.
type Pool struct {
	recognizer Recognizer
	slots      chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewPool creates a pool allowing up to size concurrent recognitions.
func NewPool(recognizer Recognizer, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		recognizer: recognizer,
		slots:      make(chan struct{}, size),
	}
}

// Acquire blocks until a recognition slot is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Handle, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	p.mu.Unlock()

	select {
	case p.slots <- struct{}{}:
		return &Handle{pool: p}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close marks the pool closed. In-flight handles finish normally.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

// Handle is a leased recognition slot.
type Handle struct {
	pool    *Pool
	release sync.Once
}

// Recognize runs OCR on the image using the leased slot.
func (h *Handle) Recognize(ctx context.Context, image []byte) (string, error) {
	return h.pool.recognizer.Recognize(ctx, image)
}

// Release returns the slot to the pool. Safe to call more than once.
func (h *Handle) Release() {
	h.release.Do(func() {
		<-h.pool.slots
	})
}
