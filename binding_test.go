package hxbind

import (
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
)

func TestBindingValues(t *testing.T) {
	tests := []struct {
		name   string
		got    string
		expect string
	}{
		{"target", Directive("user.name").Value(), "user.name"},
		{"debounce", Directive("q").Debounce(300).Value(), "q#debounce(300)"},
		{"mixed args", Directive("q").Modifier("x", 1.5, true, "a", "300").Value(), `q#x(1.5,true,a,"300")`},
		{"bare modifier", Directive("q").Modifier("prevent").Throttle(50).Value(), "q#prevent#throttle(50)"},
		{"model", Directive("form.email").Property("value").Debounce(400).On("input").ModelValue(), "form.email:value#debounce(400)@input"},
		{"model target only", Directive("form.email").ModelValue(), "form.email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expect {
				t.Errorf("got %q, want %q", tt.got, tt.expect)
			}
		})
	}
}

func TestBindingAttributes(t *testing.T) {
	b := Directive("page.title")
	tests := []struct {
		name   string
		got    templ.Attributes
		expect templ.Attributes
	}{
		{"attr", b.Attr("title"), templ.Attributes{"data-a-title": "page.title"}},
		{"native prop", b.Prop("innerHTML"), templ.Attributes{"data-p-innerhtml": "page.title"}},
		{"codec prop", b.Prop("style.backgroundColor"), templ.Attributes{"data-p-style.background-color": "page.title"}},
		{"behavior", b.Behavior("tooltip"), templ.Attributes{"data-b-tooltip": "page.title"}},
		{"class", b.Class("active"), templ.Attributes{"data-c-active": "page.title"}},
		{"computed class", b.ComputedClass(), templ.Attributes{"data-c": "page.title"}},
		{"model", b.Model(), templ.Attributes{"data-m": "page.title"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expect, tt.got); diff != "" {
				t.Errorf("attributes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBindingRoundTrip(t *testing.T) {
	b := Directive("user.name").Modifier("x", 2.0, false, "hello", "true", "-1")

	dv, diags := ParseDirectiveValue(b.Value())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diags)
	}
	args, _ := dv.Modifier("x")
	if diff := cmp.Diff([]any{2.0, false, "hello", "true", "-1"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	el := NewFakeElement("span", AttributesFromTempl(MergeAttributes(
		Directive("a").Prop("textContent"),
		Directive("b").Prop("style.backgroundColor"),
	))...)
	pd, _ := NewScanner(WithLogger(discardLogger())).Scan(el)
	if diff := cmp.Diff([]string{"style.backgroundColor", "textContent"}, pd.PropertyDirectives.Keys()); diff != "" {
		t.Errorf("property keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeAttributesLaterWins(t *testing.T) {
	got := MergeAttributes(
		templ.Attributes{"a": "1", "b": "1"},
		nil,
		templ.Attributes{"b": "2"},
	)
	if diff := cmp.Diff(templ.Attributes{"a": "1", "b": "2"}, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestBindingArgumentsScanBack(t *testing.T) {
	args := []any{"", " padded ", "a b", "(x)", "'", `"q"`, "TRUE", 0.25, -3, true}
	b := Directive("t").Modifier("fmt", args...)

	dv, diags := ParseDirectiveValue(b.Value())
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %s", diags)
	}
	got, ok := dv.Modifier("fmt")
	if !ok {
		t.Fatalf("modifier dropped from %q", b.Value())
	}
	expect := []any{"", " padded ", "a b", "(x)", "'", `"q"`, "TRUE", 0.25, -3.0, true}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("args mismatch for %q (-want +got):\n%s", b.Value(), diff)
	}
}

func TestBindingRejectsUnrepresentable(t *testing.T) {
	tests := []struct {
		name string
		call func()
	}{
		{"comma", func() { Directive("t").Modifier("fmt", "a,b") }},
		{"hash", func() { Directive("t").Modifier("fmt", "x#y") }},
		{"at", func() { Directive("t").Modifier("fmt", "a@b") }},
		{"bad name", func() { Directive("t").Modifier("de bounce") }},
		{"empty name", func() { Directive("t").Modifier("") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.call()
		})
	}
}
