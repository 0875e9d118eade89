package hxbind

import (
	"context"
	"log/slog"
)

// Bridge connects parsed directives to a concrete reactive store.
//
// IsStateCompatible is called before every bind; returning false aborts the
// bind with ErrIncompatibleState. The five Bind methods receive one
// directive category each and run only when that category is present on
// the element.
//
// Bridges that only handle some categories embed UnimplementedBridge to
// get defaults for the rest:
//
//	type SignalsBridge struct {
//	    hxbind.UnimplementedBridge
//	}
//
//	func (SignalsBridge) IsStateCompatible(s hxbind.State) bool {
//	    _, ok := s.(*signals.Store)
//	    return ok
//	}
//
//	func (b SignalsBridge) BindAttributes(el hxbind.Element, d hxbind.DirectiveMap, ctx *hxbind.HandlerContext) error {
//	    for name, dv := range d.All() {
//	        ...
//	        ctx.AddCleanup(unsubscribe)
//	    }
//	    return nil
//	}
//
// Resources acquired in a Bind method should be released through
// ctx.AddCleanup so rebinding and unbinding tear them down.
type Bridge interface {
	IsStateCompatible(state State) bool
	BindModel(el Element, d DirectiveValue, ctx *HandlerContext) error
	BindAttributes(el Element, d DirectiveMap, ctx *HandlerContext) error
	BindProperties(el Element, d DirectiveMap, ctx *HandlerContext) error
	BindClass(el Element, d ClassDirectiveValue, ctx *HandlerContext) error
	BindBehaviors(el Element, d DirectiveMap, ctx *HandlerContext) error
}

// UnimplementedBridge provides default Bind methods that log at debug level
// and do nothing. It does not implement IsStateCompatible; every bridge
// must decide that itself.
type UnimplementedBridge struct{}

// BindModel logs that model directives are not handled.
func (UnimplementedBridge) BindModel(el Element, _ DirectiveValue, ctx *HandlerContext) error {
	logUnimplemented(ctx, el, CategoryModel)
	return nil
}

// BindAttributes logs that attribute directives are not handled.
func (UnimplementedBridge) BindAttributes(el Element, _ DirectiveMap, ctx *HandlerContext) error {
	logUnimplemented(ctx, el, CategoryAttribute)
	return nil
}

// BindProperties logs that property directives are not handled.
func (UnimplementedBridge) BindProperties(el Element, _ DirectiveMap, ctx *HandlerContext) error {
	logUnimplemented(ctx, el, CategoryProperty)
	return nil
}

// BindClass logs that class directives are not handled.
func (UnimplementedBridge) BindClass(el Element, _ ClassDirectiveValue, ctx *HandlerContext) error {
	logUnimplemented(ctx, el, CategoryClass)
	return nil
}

// BindBehaviors logs that behavior directives are not handled.
func (UnimplementedBridge) BindBehaviors(el Element, _ DirectiveMap, ctx *HandlerContext) error {
	logUnimplemented(ctx, el, CategoryBehavior)
	return nil
}

func logUnimplemented(ctx *HandlerContext, el Element, cat Category) {
	logger := slog.Default()
	if ctx != nil {
		logger = ctx.Logger()
	}
	logger.LogAttrs(context.Background(), slog.LevelDebug, "bridge does not handle directive category",
		slog.String("category", cat.String()),
		slog.String("tag", el.TagName()),
	)
}
