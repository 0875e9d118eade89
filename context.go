package hxbind

import (
	"fmt"
	"log/slog"
	"sync"
)

// HandlerContext is the per-binding runtime handed to bridge callbacks.
//
// It references the bound State (never copies it), carries the optional
// cancellation token and config, and owns a list of cleanup functions.
// Dispose runs the cleanups in insertion order and empties the list;
// cleanups added afterwards run on the next Dispose.
//
// When a token is attached, the first of Dispose or the token firing
// settles the context; a token firing after that is ignored.
type HandlerContext struct {
	state  State
	signal CancelToken
	config any
	logger *slog.Logger

	mu         sync.Mutex
	cleanups   []func()
	settled    bool
	stopSignal func()
}

// NewHandlerContext wraps state. WithSignal, WithConfig and WithLogger
// apply.
func NewHandlerContext(state State, opts ...Option) *HandlerContext {
	o := applyOptions(opts)
	c := &HandlerContext{
		state:  state,
		signal: o.signal,
		config: o.config,
		logger: loggerOrDefault(o.logger),
	}
	if c.signal != nil {
		stop := c.signal.OnCancel(c.onCancel)
		c.mu.Lock()
		if c.settled {
			c.mu.Unlock()
			stop()
		} else {
			c.stopSignal = stop
			c.mu.Unlock()
		}
	}
	return c
}

// State returns the bound state.
func (c *HandlerContext) State() State {
	return c.state
}

// Signal returns the cancellation token, or nil.
func (c *HandlerContext) Signal() CancelToken {
	return c.signal
}

// Config returns the options bag passed with WithConfig.
func (c *HandlerContext) Config() any {
	return c.config
}

// Logger returns the context's logger.
func (c *HandlerContext) Logger() *slog.Logger {
	return c.logger
}

// IsActive reports whether the context is still live: true when no token
// is attached or the token has not fired.
func (c *HandlerContext) IsActive() bool {
	return c.signal == nil || !c.signal.Cancelled()
}

// Get reads a value from state. path may be a dotted string, []string or
// []any of strings.
func (c *HandlerContext) Get(path any) (any, error) {
	p, err := ToPath(path)
	if err != nil {
		return nil, err
	}
	if c.state == nil {
		return nil, fmt.Errorf("%w: %s (no state)", ErrNotFound, PathToPropertyName(p))
	}
	v, ok := c.state.Get(p)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, PathToPropertyName(p))
	}
	return v, nil
}

// Set writes a value into state. Bridges use it for write-back.
func (c *HandlerContext) Set(path any, value any) error {
	p, err := ToPath(path)
	if err != nil {
		return err
	}
	if c.state == nil {
		return fmt.Errorf("%w: no state to write %s", ErrNotFound, PathToPropertyName(p))
	}
	return c.state.Set(p, value)
}

// AddCleanup queues fn to run on the next Dispose.
func (c *HandlerContext) AddCleanup(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanups = append(c.cleanups, fn)
}

// Dispose runs and clears the queued cleanups. A panicking cleanup is
// logged and the remaining cleanups still run. Safe to call repeatedly.
func (c *HandlerContext) Dispose() {
	c.mu.Lock()
	fns, stop := c.settleLocked()
	c.mu.Unlock()
	c.run(fns, stop)
}

func (c *HandlerContext) onCancel() {
	c.mu.Lock()
	if c.settled {
		c.mu.Unlock()
		return
	}
	fns, stop := c.settleLocked()
	c.mu.Unlock()
	c.run(fns, stop)
}

// settleLocked takes the queued cleanups and detaches the token listener.
// c.mu must be held.
func (c *HandlerContext) settleLocked() ([]func(), func()) {
	fns, stop := c.cleanups, c.stopSignal
	c.cleanups = nil
	c.stopSignal = nil
	c.settled = true
	return fns, stop
}

func (c *HandlerContext) run(fns []func(), stop func()) {
	if stop != nil {
		stop()
	}
	for i, fn := range fns {
		c.runCleanup(i, fn)
	}
}

func (c *HandlerContext) runCleanup(i int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("cleanup failed", slog.Int("index", i), slog.Any("error", r))
		}
	}()
	fn()
}
