package hxbind

import (
	"strings"
	"sync"
)

// FakeElement is an in-memory Element for tests of bridges and scanners.
//
//	el := hxbind.NewFakeElement("input",
//	    hxbind.Attribute{Name: "type", Value: "text"},
//	    hxbind.Attribute{Name: "data-m", Value: "form.email@input"},
//	)
//
// Properties are only those set with WithProperty; FakeElement does not
// model a real DOM. Use pointers: the Binder keys its table by identity.
type FakeElement struct {
	Tag   string
	Attrs []Attribute
	Props map[string]string
}

// NewFakeElement creates a fake element with the given tag and attributes.
func NewFakeElement(tag string, attrs ...Attribute) *FakeElement {
	return &FakeElement{Tag: tag, Attrs: attrs, Props: make(map[string]string)}
}

// WithProperty exposes a property on the element's property surface.
func (e *FakeElement) WithProperty(name, value string) *FakeElement {
	e.Props[name] = value
	return e
}

// SetAttribute replaces or appends an attribute.
func (e *FakeElement) SetAttribute(name, value string) {
	for i, a := range e.Attrs {
		if a.Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attribute{Name: name, Value: value})
}

// TagName returns the upper-case tag.
func (e *FakeElement) TagName() string {
	return strings.ToUpper(e.Tag)
}

// Attributes returns the attributes in insertion order.
func (e *FakeElement) Attributes() []Attribute {
	return e.Attrs
}

// Property returns a property set with WithProperty.
func (e *FakeElement) Property(name string) (string, bool) {
	v, ok := e.Props[name]
	return v, ok
}

// BridgeCall is one callback received by a RecordingBridge.
type BridgeCall struct {
	Category   Category
	Element    Element
	Model      *DirectiveValue
	Directives DirectiveMap
	Class      *ClassDirectiveValue
	Context    *HandlerContext
}

// RecordingBridge is a Bridge that records every callback.
//
// Compatible decides IsStateCompatible (nil accepts everything). Err, when
// set, is returned from every Bind method after recording.
type RecordingBridge struct {
	Compatible func(State) bool
	Err        error

	mu    sync.Mutex
	calls []BridgeCall
}

// IsStateCompatible consults Compatible.
func (r *RecordingBridge) IsStateCompatible(state State) bool {
	return r.Compatible == nil || r.Compatible(state)
}

// BindModel records a model call.
func (r *RecordingBridge) BindModel(el Element, d DirectiveValue, ctx *HandlerContext) error {
	return r.record(BridgeCall{Category: CategoryModel, Element: el, Model: &d, Context: ctx})
}

// BindAttributes records an attribute call.
func (r *RecordingBridge) BindAttributes(el Element, d DirectiveMap, ctx *HandlerContext) error {
	return r.record(BridgeCall{Category: CategoryAttribute, Element: el, Directives: d, Context: ctx})
}

// BindProperties records a property call.
func (r *RecordingBridge) BindProperties(el Element, d DirectiveMap, ctx *HandlerContext) error {
	return r.record(BridgeCall{Category: CategoryProperty, Element: el, Directives: d, Context: ctx})
}

// BindClass records a class call.
func (r *RecordingBridge) BindClass(el Element, d ClassDirectiveValue, ctx *HandlerContext) error {
	return r.record(BridgeCall{Category: CategoryClass, Element: el, Class: &d, Context: ctx})
}

// BindBehaviors records a behavior call.
func (r *RecordingBridge) BindBehaviors(el Element, d DirectiveMap, ctx *HandlerContext) error {
	return r.record(BridgeCall{Category: CategoryBehavior, Element: el, Directives: d, Context: ctx})
}

// Calls returns a copy of the recorded calls.
func (r *RecordingBridge) Calls() []BridgeCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]BridgeCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// Categories returns the category of each recorded call, in order.
func (r *RecordingBridge) Categories() []Category {
	calls := r.Calls()
	out := make([]Category, len(calls))
	for i, c := range calls {
		out[i] = c.Category
	}
	return out
}

// Reset forgets recorded calls.
func (r *RecordingBridge) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *RecordingBridge) record(call BridgeCall) error {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	r.mu.Unlock()
	return r.Err
}
