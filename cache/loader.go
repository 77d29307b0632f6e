// Package cache keeps a loaded model in memory between analyses.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/contrasta"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a loaded model is reused.
const DefaultTTL = time.Hour

var (
	_ contrasta.ModelLoader      = (*ModelLoader)(nil)
	_ contrasta.ModelInvalidator = (*ModelLoader)(nil)
)

// ModelLoader caches the model returned by another ModelLoader.
// Concurrent loads on a cold cache share one underlying load.
// Failed loads are never cached.
type ModelLoader struct {
	next  contrasta.ModelLoader
	ttl   time.Duration
	group singleflight.Group

	mu       sync.Mutex
	model    *contrasta.Model
	loadedAt time.Time
	gen      uint64

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewModelLoader wraps next. A zero ttl keeps the model until Invalidate.
func NewModelLoader(next contrasta.ModelLoader, ttl time.Duration) *ModelLoader {
	return &ModelLoader{next: next, ttl: ttl, Now: time.Now}
}

// Load returns the cached model, loading it when absent or expired.
func (l *ModelLoader) Load(ctx context.Context) (*contrasta.Model, error) {
	l.mu.Lock()
	if m := l.model; m != nil && !l.expired() {
		l.mu.Unlock()
		return m, nil
	}
	gen := l.gen
	l.mu.Unlock()

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own ctx is done.
	ch := l.group.DoChan("model", func() (any, error) {
		m, err := l.next.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		// Invalidate during the load discards the result for later callers.
		if gen == l.gen {
			l.model = m
			l.loadedAt = l.Now()
		}
		l.mu.Unlock()
		return m, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*contrasta.Model), nil
	}
}

// Invalidate drops the cached model.
func (l *ModelLoader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.model = nil
	l.gen++
}

// expired reports whether the cached model is past its TTL.
// Must be called with mu held.
func (l *ModelLoader) expired() bool {
	return l.ttl > 0 && l.Now().Sub(l.loadedAt) >= l.ttl
}
