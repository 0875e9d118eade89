package hxbind

import (
	"context"
	"sync"
)

// CancelToken is a one-shot cancellation signal.
//
// OnCancel registers fn to run once when the token fires; if the token has
// already fired, fn runs immediately. The returned stop function removes
// the registration.
type CancelToken interface {
	Cancelled() bool
	OnCancel(fn func()) (stop func())
}

// CancelSource is a CancelToken fired manually with Cancel.
type CancelSource struct {
	mu        sync.Mutex
	cancelled bool
	nextID    int
	listeners map[int]func()
}

// NewCancelSource creates an unfired token.
func NewCancelSource() *CancelSource {
	return &CancelSource{listeners: make(map[int]func())}
}

// Cancelled reports whether Cancel has been called.
func (s *CancelSource) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// OnCancel registers fn. Listeners run in registration order.
func (s *CancelSource) OnCancel(fn func()) func() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		fn()
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Cancel fires the token. Calls after the first are no-ops.
func (s *CancelSource) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	fns := make([]func(), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.listeners = nil
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// ContextToken adapts a context.Context. The token fires when ctx is done;
// OnCancel callbacks run on their own goroutine via context.AfterFunc.
func ContextToken(ctx context.Context) CancelToken {
	return contextToken{ctx: ctx}
}

type contextToken struct {
	ctx context.Context
}

func (t contextToken) Cancelled() bool {
	return t.ctx.Err() != nil
}

func (t contextToken) OnCancel(fn func()) func() {
	stop := context.AfterFunc(t.ctx, fn)
	return func() { stop() }
}
