package hxbind

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// cleanupBridge registers a cleanup for every attribute bind.
type cleanupBridge struct {
	UnimplementedBridge
	events *[]string
}

func (cleanupBridge) IsStateCompatible(State) bool { return true }

func (b cleanupBridge) BindAttributes(_ Element, dm DirectiveMap, ctx *HandlerContext) error {
	*b.events = append(*b.events, "bind")
	ctx.AddCleanup(func() { *b.events = append(*b.events, "cleanup") })
	return nil
}

func TestBinderIncompatibleState(t *testing.T) {
	bridge := &RecordingBridge{Compatible: func(State) bool { return false }}
	b := NewBinder(bridge, WithLogger(discardLogger()))

	ctx, err := b.Bind(fullElement(), NewMapState(nil))
	if !IsIncompatibleState(err) {
		t.Fatalf("expected incompatible state, got %v", err)
	}
	if ctx != nil {
		t.Error("context should be nil on rejection")
	}
	if len(bridge.Calls()) != 0 {
		t.Errorf("bridge should not be called, got %v", bridge.Categories())
	}
}

func TestBinderRoutesCategories(t *testing.T) {
	bridge := &RecordingBridge{}
	b := NewBinder(bridge, WithLogger(discardLogger()))

	el := fullElement()
	ctx, err := b.Bind(el, NewMapState(nil))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	expect := []Category{CategoryModel, CategoryAttribute, CategoryProperty, CategoryClass, CategoryBehavior}
	if diff := cmp.Diff(expect, bridge.Categories()); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	for _, call := range bridge.Calls() {
		if call.Element != Element(el) || call.Context != ctx {
			t.Errorf("%s call has wrong element or context", call.Category)
		}
	}
	if got := bridge.Calls()[0].Model; got == nil || got.Event != "input" {
		t.Errorf("model call = %+v", got)
	}
}

func TestBinderRebindDisposesFirst(t *testing.T) {
	var events []string
	b := NewBinder(cleanupBridge{events: &events}, WithLogger(discardLogger()))
	el := NewFakeElement("div", attr("data-a-title", "t"))

	first, err := b.Bind(el, NewMapState(nil))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	second, err := b.Bind(el, NewMapState(nil))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}

	if diff := cmp.Diff([]string{"bind", "cleanup", "bind"}, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if first == second {
		t.Error("rebind should create a new context")
	}
	if ctx, _ := b.Context(el); ctx != second {
		t.Error("binder should track the new context")
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
}

func TestBinderRejectedRebindKeepsBinding(t *testing.T) {
	compatible := true
	bridge := &RecordingBridge{Compatible: func(State) bool { return compatible }}
	b := NewBinder(bridge, WithLogger(discardLogger()))
	el := fullElement()

	ctx, _ := b.Bind(el, NewMapState(nil))
	compatible = false
	if _, err := b.Bind(el, NewMapState(nil)); !IsIncompatibleState(err) {
		t.Fatalf("expected incompatible state, got %v", err)
	}
	if got, ok := b.Context(el); !ok || got != ctx {
		t.Error("rejected rebind should keep the existing binding")
	}
}

func TestBinderUnbind(t *testing.T) {
	var events []string
	b := NewBinder(cleanupBridge{events: &events}, WithLogger(discardLogger()))
	el := NewFakeElement("div", attr("data-a-title", "t"))

	if err := b.Unbind(el); !errors.Is(err, ErrNotBound) {
		t.Errorf("expected ErrNotBound, got %v", err)
	}

	if _, err := b.Bind(el, NewMapState(nil)); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if !b.IsBound(el) {
		t.Fatal("element should be bound")
	}
	if err := b.Unbind(el); err != nil {
		t.Fatalf("Unbind: %v", err)
	}
	if b.IsBound(el) {
		t.Error("element should be unbound")
	}
	if diff := cmp.Diff([]string{"bind", "cleanup"}, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBinderBindAllAndClose(t *testing.T) {
	var events []string
	b := NewBinder(cleanupBridge{events: &events}, WithLogger(discardLogger()))
	els := []Element{
		NewFakeElement("div", attr("data-a-title", "a")),
		NewFakeElement("div", attr("data-a-title", "b")),
	}

	if err := b.BindAll(els, NewMapState(nil)); err != nil {
		t.Fatalf("BindAll: %v", err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}

	b.Close()
	if b.Len() != 0 {
		t.Errorf("Len after Close = %d", b.Len())
	}
	if diff := cmp.Diff([]string{"bind", "bind", "cleanup", "cleanup"}, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestBinderSignal(t *testing.T) {
	var events []string
	b := NewBinder(cleanupBridge{events: &events}, WithLogger(discardLogger()))
	el := NewFakeElement("div", attr("data-a-title", "t"))

	src := NewCancelSource()
	ctx, err := b.Bind(el, NewMapState(nil), WithSignal(src))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	src.Cancel()

	if ctx.IsActive() {
		t.Error("context should be inactive after cancel")
	}
	if diff := cmp.Diff([]string{"bind", "cleanup"}, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordingBridgeError(t *testing.T) {
	bridge := &RecordingBridge{Err: errors.New("nope")}
	b := NewBinder(bridge, WithLogger(discardLogger()))

	if _, err := b.Bind(fullElement(), NewMapState(nil)); err != nil {
		t.Fatalf("bridge errors should not fail Bind: %v", err)
	}
	if len(bridge.Calls()) != 5 {
		t.Errorf("expected every category to be called, got %v", bridge.Categories())
	}
	bridge.Reset()
	if len(bridge.Calls()) != 0 {
		t.Error("Reset should clear calls")
	}
}

func TestUnimplementedBridgeDefaults(t *testing.T) {
	ctx := NewHandlerContext(NewMapState(nil), WithLogger(discardLogger()))
	var u UnimplementedBridge
	el := NewFakeElement("div")

	if err := u.BindModel(el, DirectiveValue{}, ctx); err != nil {
		t.Error(err)
	}
	if err := u.BindAttributes(el, DirectiveMap{}, ctx); err != nil {
		t.Error(err)
	}
	if err := u.BindProperties(el, DirectiveMap{}, nil); err != nil {
		t.Error(err)
	}
	if err := u.BindClass(el, ClassDirectiveValue{}, ctx); err != nil {
		t.Error(err)
	}
	if err := u.BindBehaviors(el, DirectiveMap{}, ctx); err != nil {
		t.Error(err)
	}
}

// nestingBridge binds a child element from inside the parent's callback.
type nestingBridge struct {
	UnimplementedBridge
	binder *Binder
	child  Element
}

func (nestingBridge) IsStateCompatible(State) bool { return true }

func (n *nestingBridge) BindBehaviors(_ Element, _ DirectiveMap, ctx *HandlerContext) error {
	_, err := n.binder.Bind(n.child, ctx.State())
	return err
}

func TestBinderBindFromCallback(t *testing.T) {
	bridge := &nestingBridge{child: NewFakeElement("span", attr("data-a-title", "t"))}
	bridge.binder = NewBinder(bridge, WithLogger(discardLogger()))
	parent := NewFakeElement("div", attr("data-b-list", "items"))

	done := make(chan error, 1)
	go func() {
		_, err := bridge.binder.Bind(parent, NewMapState(nil))
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Bind: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("binding from a bridge callback deadlocked")
	}
	if !bridge.binder.IsBound(parent) || !bridge.binder.IsBound(bridge.child) {
		t.Error("both elements should be bound")
	}
	if bridge.binder.Len() != 2 {
		t.Errorf("Len = %d, want 2", bridge.binder.Len())
	}
}
