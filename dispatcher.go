package hxbind

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// ModelFunc receives an element's two-way binding directive.
type ModelFunc func(el Element, d DirectiveValue, ctx *HandlerContext) error

// DirectivesFunc receives a keyed directive category (attribute, property
// or behavior).
type DirectivesFunc func(el Element, d DirectiveMap, ctx *HandlerContext) error

// ClassFunc receives an element's class directive.
type ClassFunc func(el Element, d ClassDirectiveValue, ctx *HandlerContext) error

// Dispatcher scans elements and notifies per-category subscribers.
//
// For each element, categories are emitted in a fixed order (model,
// attribute, property, class, behavior) and only when non-empty. Within a
// category, subscribers run in registration order. A subscriber that
// returns an error or panics is logged and the rest still run.
//
//	d := hxbind.NewDispatcher()
//	d.OnAttributes(func(el hxbind.Element, dm hxbind.DirectiveMap, ctx *hxbind.HandlerContext) error {
//	    for name, dv := range dm.All() {
//	        ...
//	    }
//	    return nil
//	})
//	directives, ctx := d.Process(el, state)
type Dispatcher struct {
	scanner *Scanner
	logger  *slog.Logger

	mu         sync.RWMutex
	nextID     int
	model      []listener[ModelFunc]
	attributes []listener[DirectivesFunc]
	properties []listener[DirectivesFunc]
	class      []listener[ClassFunc]
	behaviors  []listener[DirectivesFunc]
}

type listener[F any] struct {
	id int
	fn F
}

// NewDispatcher creates a dispatcher with its own scanner. WithLogger
// applies to both.
func NewDispatcher(opts ...Option) *Dispatcher {
	o := applyOptions(opts)
	logger := loggerOrDefault(o.logger)
	return &Dispatcher{
		scanner: &Scanner{logger: logger},
		logger:  logger,
	}
}

// Scanner returns the dispatcher's scanner.
func (d *Dispatcher) Scanner() *Scanner {
	return d.scanner
}

// OnModel subscribes to model directives. The returned function
// unsubscribes.
func (d *Dispatcher) OnModel(fn ModelFunc) (unsubscribe func()) {
	return subscribe(d, &d.model, fn)
}

// OnAttributes subscribes to attribute directives.
func (d *Dispatcher) OnAttributes(fn DirectivesFunc) (unsubscribe func()) {
	return subscribe(d, &d.attributes, fn)
}

// OnProperties subscribes to property directives.
func (d *Dispatcher) OnProperties(fn DirectivesFunc) (unsubscribe func()) {
	return subscribe(d, &d.properties, fn)
}

// OnClass subscribes to class directives.
func (d *Dispatcher) OnClass(fn ClassFunc) (unsubscribe func()) {
	return subscribe(d, &d.class, fn)
}

// OnBehaviors subscribes to behavior directives.
func (d *Dispatcher) OnBehaviors(fn DirectivesFunc) (unsubscribe func()) {
	return subscribe(d, &d.behaviors, fn)
}

func subscribe[F any](d *Dispatcher, list *[]listener[F], fn F) func() {
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	*list = append(*list, listener[F]{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			for i, l := range *list {
				if l.id == id {
					*list = append((*list)[:i:i], (*list)[i+1:]...)
					return
				}
			}
		})
	}
}

// Process scans el once, wraps state in a new HandlerContext and emits one
// notification per non-empty category. WithSignal and WithConfig apply to
// the context.
func (d *Dispatcher) Process(el Element, state State, opts ...Option) (*ParsedDirectives, *HandlerContext) {
	pd, _ := d.scanner.Scan(el)
	ctx := NewHandlerContext(state, append([]Option{WithLogger(d.logger)}, opts...)...)
	d.Emit(el, pd, ctx)
	return pd, ctx
}

// Emit dispatches an already scanned directive set. Every subscriber gets
// its own copy of the directives, so changes made by one subscriber are
// never seen by the next one or by pd.
func (d *Dispatcher) Emit(el Element, pd *ParsedDirectives, ctx *HandlerContext) {
	d.mu.RLock()
	model := d.model
	attributes := d.attributes
	properties := d.properties
	class := d.class
	behaviors := d.behaviors
	d.mu.RUnlock()

	if pd.ModelDirective != nil {
		for _, l := range model {
			d.invoke(CategoryModel, func() error { return l.fn(el, pd.ModelDirective.Clone(), ctx) })
		}
	}
	if pd.AttributeDirectives.Len() > 0 {
		for _, l := range attributes {
			d.invoke(CategoryAttribute, func() error { return l.fn(el, pd.AttributeDirectives.Clone(), ctx) })
		}
	}
	if pd.PropertyDirectives.Len() > 0 {
		for _, l := range properties {
			d.invoke(CategoryProperty, func() error { return l.fn(el, pd.PropertyDirectives.Clone(), ctx) })
		}
	}
	if !pd.ClassDirective.IsEmpty() {
		for _, l := range class {
			d.invoke(CategoryClass, func() error { return l.fn(el, *pd.ClassDirective.Clone(), ctx) })
		}
	}
	if pd.BehaviorDirectives.Len() > 0 {
		for _, l := range behaviors {
			d.invoke(CategoryBehavior, func() error { return l.fn(el, pd.BehaviorDirectives.Clone(), ctx) })
		}
	}
}

// invoke runs one subscriber, turning a panic into a logged error.
func (d *Dispatcher) invoke(cat Category, fn func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err != nil {
		d.logger.LogAttrs(context.Background(), slog.LevelError, "directive subscriber failed",
			slog.String("category", cat.String()),
			slog.Any("error", err),
		)
	}
}
