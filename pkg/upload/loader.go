package upload

import (
	"context"
	"io"
	"sync"
)

// Loader decodes images in the background. Only the most recent Load can
// apply its result. Each decode reports exactly one Result: its own
// outcome, or ResultStale when it was superseded or cancelled.
type Loader struct {
	dec *Decoder

	mu  sync.Mutex
	gen uint64
	wg  sync.WaitGroup
}

// NewLoader creates a Loader around dec.
func NewLoader(dec *Decoder) *Loader {
	return &Loader{dec: dec}
}

// Load starts decoding r. apply receives the data URI and fail (optional)
// the error, unless a newer Load was started or ctx was cancelled in the
// meantime. If r is an io.Closer it is closed when reading finishes.
func (l *Loader) Load(ctx context.Context, r io.Reader, apply func(string), fail func(error)) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if c, ok := r.(io.Closer); ok {
			defer c.Close()
		}

		uri, res, err := l.dec.decode(r)

		l.mu.Lock()
		defer l.mu.Unlock()
		if gen != l.gen || ctx.Err() != nil {
			l.dec.report(ResultStale)
			l.dec.logger.Debug("stale upload dropped", "generation", gen)
			return
		}
		l.dec.report(res)
		if err != nil {
			if fail != nil {
				fail(err)
			}
			return
		}
		apply(uri)
	}()
}

// Cancel drops any pending result.
func (l *Loader) Cancel() {
	l.mu.Lock()
	l.gen++
	l.mu.Unlock()
}

// Wait blocks until every started decode has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}
