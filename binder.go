package hxbind

import (
	"fmt"
	"log/slog"
	"sync"
)

// Binder tracks which elements are bound through a Bridge.
//
// Each element has at most one live HandlerContext. Binding an element
// that is already bound disposes the previous context first, so cleanups
// from the old binding always run before the new binding starts.
//
//	b := hxbind.NewBinder(myBridge)
//	ctx, err := b.Bind(el, state, hxbind.WithSignal(hxbind.ContextToken(reqCtx)))
//	if hxbind.IsIncompatibleState(err) {
//	    ...
//	}
//	defer b.Unbind(el)
type Binder struct {
	bridge     Bridge
	dispatcher *Dispatcher
	logger     *slog.Logger

	// mu guards bound and locks and is not held while bridge callbacks run.
	// A per-element lock serializes binds of one element so a rebind never
	// overlaps.
	mu    sync.Mutex
	bound map[Element]*HandlerContext
	locks map[Element]*elementLock
}

type elementLock struct {
	mu   sync.Mutex
	refs int
}

// NewBinder creates a binder that routes every directive category to the
// matching bridge method. WithLogger applies.
func NewBinder(bridge Bridge, opts ...Option) *Binder {
	o := applyOptions(opts)
	logger := loggerOrDefault(o.logger)

	d := NewDispatcher(WithLogger(logger))
	d.OnModel(bridge.BindModel)
	d.OnAttributes(bridge.BindAttributes)
	d.OnProperties(bridge.BindProperties)
	d.OnClass(bridge.BindClass)
	d.OnBehaviors(bridge.BindBehaviors)

	return &Binder{
		bridge:     bridge,
		dispatcher: d,
		logger:     logger,
		bound:      make(map[Element]*HandlerContext),
		locks:      make(map[Element]*elementLock),
	}
}

// Dispatcher returns the binder's dispatcher, for extra subscribers.
func (b *Binder) Dispatcher() *Dispatcher {
	return b.dispatcher
}

// Bind scans el and binds its directives to state.
//
// Returns ErrIncompatibleState, without touching any existing binding,
// when the bridge rejects state.
//
// Bridge callbacks may bind other elements. Binding the element that is
// currently being bound from its own callbacks deadlocks.
func (b *Binder) Bind(el Element, state State, opts ...Option) (*HandlerContext, error) {
	if !b.bridge.IsStateCompatible(state) {
		return nil, fmt.Errorf("%w: %T on <%s>", ErrIncompatibleState, state, el.TagName())
	}

	unlock := b.lockElement(el)
	defer unlock()

	b.mu.Lock()
	prev, ok := b.bound[el]
	delete(b.bound, el)
	b.mu.Unlock()
	if ok {
		prev.Dispose()
	}

	_, ctx := b.dispatcher.Process(el, state, opts...)

	b.mu.Lock()
	b.bound[el] = ctx
	b.mu.Unlock()
	return ctx, nil
}

// BindAll binds every element in els to the same state. It stops at the
// first error; elements bound before it stay bound.
func (b *Binder) BindAll(els []Element, state State, opts ...Option) error {
	for _, el := range els {
		if _, err := b.Bind(el, state, opts...); err != nil {
			return err
		}
	}
	return nil
}

// Unbind disposes el's context and forgets el.
func (b *Binder) Unbind(el Element) error {
	b.mu.Lock()
	ctx, ok := b.bound[el]
	delete(b.bound, el)
	b.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: <%s>", ErrNotBound, el.TagName())
	}
	ctx.Dispose()
	return nil
}

// Context returns the live context for el.
func (b *Binder) Context(el Element) (*HandlerContext, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ctx, ok := b.bound[el]
	return ctx, ok
}

// IsBound reports whether el has a live context.
func (b *Binder) IsBound(el Element) bool {
	_, ok := b.Context(el)
	return ok
}

// Len returns the number of bound elements.
func (b *Binder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bound)
}

// Close unbinds every element.
func (b *Binder) Close() {
	b.mu.Lock()
	bound := b.bound
	b.bound = make(map[Element]*HandlerContext)
	b.mu.Unlock()

	for _, ctx := range bound {
		ctx.Dispose()
	}
}

// lockElement serializes binds of el and returns the unlock function.
func (b *Binder) lockElement(el Element) func() {
	b.mu.Lock()
	l, ok := b.locks[el]
	if !ok {
		l = &elementLock{}
		b.locks[el] = l
	}
	l.refs++
	b.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		b.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(b.locks, el)
		}
		b.mu.Unlock()
	}
}
