package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit is the buffer size (4KB) used when none is given.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit is the flush interval (50ms) used when none is given.
	DefaultTimeLimit = 50 * time.Millisecond
)

var errBatcherClosed = errors.New("batch processor closed")

// BatchProcessor coalesces small writes and hands them to a callback
// once a size or time limit is reached. Stage output arrives in many
// tiny chunks; batching keeps the renderer from redrawing per chunk.
// It is safe for concurrent use.
type BatchProcessor struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buf    *bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatchProcessor returns a running BatchProcessor. Non-positive
// limits fall back to the defaults. Call Close to stop the background
// ticker and flush what remains.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *BatchProcessor {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	bp := &BatchProcessor{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
		buf:       new(bytes.Buffer),
		stopCh:    make(chan struct{}),
	}

	bp.ticker = time.NewTicker(timeLimit)
	go bp.run()

	return bp
}

// Write buffers p. Crossing the size limit flushes synchronously.
func (bp *BatchProcessor) Write(p []byte) (n int, err error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0, errBatcherClosed
	}

	n, err = bp.buf.Write(p)
	if err != nil {
		return n, err
	}

	if bp.buf.Len() >= bp.sizeLimit {
		bp.flushLocked()
		// A full buffer just went out; restart the interval so the
		// ticker does not fire again immediately.
		bp.ticker.Reset(bp.timeLimit)
	}

	return n, nil
}

// Flush hands any buffered data to the callback now.
func (bp *BatchProcessor) Flush() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	if bp.closed {
		return
	}
	bp.flushLocked()
}

// Close stops the background flusher and performs a final flush.
// Subsequent writes fail.
func (bp *BatchProcessor) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}

	bp.closed = true
	close(bp.stopCh)
	bp.flushLocked()
	return nil
}

func (bp *BatchProcessor) run() {
	for {
		select {
		case <-bp.ticker.C:
			bp.Flush()
		case <-bp.stopCh:
			bp.ticker.Stop()
			return
		}
	}
}

// flushLocked must be called with mu held. The callback runs under the
// lock to preserve chunk order, so it must not block.
func (bp *BatchProcessor) flushLocked() {
	if bp.buf.Len() == 0 {
		return
	}

	data := make([]byte, bp.buf.Len())
	copy(data, bp.buf.Bytes())
	bp.buf.Reset()

	if bp.onFlush != nil {
		bp.onFlush(data)
	}
}
