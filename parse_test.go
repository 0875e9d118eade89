package hxbind

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// directive builds an expected DirectiveValue.
func directive(target string, mods ...Modifier) DirectiveValue {
	dv := DirectiveValue{Target: target}
	for _, m := range mods {
		dv.EventModifiers.Set(m.Name, m.Args)
	}
	return dv
}

func TestParseDirectiveValue(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expect    DirectiveValue
		diagCodes []DiagnosticCode
	}{
		{
			name:   "target only",
			input:  "user.name",
			expect: directive("user.name"),
		},
		{
			name:   "trimmed with modifiers",
			input:  "  user.name#debounce(300)  ",
			expect: directive("user.name", Modifier{Name: "debounce", Args: []any{300.0}}),
		},
		{
			name:   "dollar and hyphen",
			input:  "$store.item-count",
			expect: directive("$store.item-count"),
		},
		{
			name:      "unexpected trailing",
			input:     "count+1",
			expect:    directive("count"),
			diagCodes: []DiagnosticCode{DiagUnexpectedTrailing},
		},
		{
			name:      "empty",
			input:     "",
			expect:    directive(""),
			diagCodes: []DiagnosticCode{DiagEmptyTarget},
		},
		{
			name:      "modifiers without target",
			input:     "#once",
			expect:    directive("", Modifier{Name: "once", Args: []any{}}),
			diagCodes: []DiagnosticCode{DiagEmptyTarget},
		},
		{
			name:      "nothing readable",
			input:     "!!",
			expect:    directive(""),
			diagCodes: []DiagnosticCode{DiagEmptyTarget, DiagUnexpectedTrailing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, diags := ParseDirectiveValue(tt.input)
			if diff := cmp.Diff(tt.expect, result); diff != "" {
				t.Errorf("ParseDirectiveValue(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			var codes []DiagnosticCode
			for _, d := range diags {
				codes = append(codes, d.Code)
			}
			if diff := cmp.Diff(tt.diagCodes, codes); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseModelDirectiveValue(t *testing.T) {
	withDom := func(dv DirectiveValue, dom, event string) DirectiveValue {
		dv.DomProperty = dom
		dv.Event = event
		return dv
	}

	tests := []struct {
		name   string
		input  string
		expect DirectiveValue
	}{
		{
			name:  "full",
			input: "form.email:value#debounce(400)@input",
			expect: withDom(directive("form.email",
				Modifier{Name: "debounce", Args: []any{400.0}}), "value", "input"),
		},
		{
			name:   "target only",
			input:  "form.email",
			expect: directive("form.email"),
		},
		{
			name:   "last at wins",
			input:  "a@b@change",
			expect: withDom(directive("a@b"), "", "change"),
		},
		{
			name:   "first colon splits",
			input:  "a:b:c",
			expect: withDom(directive("a"), "b:c", ""),
		},
		{
			name:   "whitespace kept",
			input:  " spaced ",
			expect: directive(" spaced "),
		},
		{
			name:  "modifiers and event without property",
			input: "x#m1#m2(true)@click",
			expect: withDom(directive("x",
				Modifier{Name: "m1", Args: []any{}},
				Modifier{Name: "m2", Args: []any{true}}), "", "click"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseModelDirectiveValue(tt.input)
			if diff := cmp.Diff(tt.expect, result); diff != "" {
				t.Errorf("ParseModelDirectiveValue(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestDirectiveValuePaths(t *testing.T) {
	dv := DirectiveValue{Target: "user.a..b", DomProperty: "style.color"}

	if diff := cmp.Diff([]string{"user", "a.b"}, dv.TargetPath()); diff != "" {
		t.Errorf("TargetPath mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"style", "color"}, dv.DomPropertyPath()); diff != "" {
		t.Errorf("DomPropertyPath mismatch (-want +got):\n%s", diff)
	}

	dv.Target = "other"
	if diff := cmp.Diff([]string{"other"}, dv.TargetPath()); diff != "" {
		t.Errorf("TargetPath after change mismatch (-want +got):\n%s", diff)
	}
	if (DirectiveValue{}).DomPropertyPath() != nil {
		t.Error("empty DomProperty should have a nil path")
	}
}
