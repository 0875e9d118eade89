package hxbind

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []Modifier
	}{
		{
			name:   "numeric args",
			input:  "debounce(300,100)",
			expect: []Modifier{{Name: "debounce", Args: []any{300.0, 100.0}}},
		},
		{
			name:  "chain",
			input: "#debounce(300)#prevent",
			expect: []Modifier{
				{Name: "debounce", Args: []any{300.0}},
				{Name: "prevent", Args: []any{}},
			},
		},
		{
			name:   "repeated hash",
			input:  "##once",
			expect: []Modifier{{Name: "once", Args: []any{}}},
		},
		{
			name:   "invalid token dropped",
			input:  "#bad token#ok",
			expect: []Modifier{{Name: "ok", Args: []any{}}},
		},
		{
			name:  "coercion",
			input: `#x(-1.5, TRUE, false, 'a b', "q", raw, .5)`,
			expect: []Modifier{{Name: "x", Args: []any{
				-1.5, true, false, "a b", "q", "raw", 0.5,
			}}},
		},
		{
			name:   "empty group",
			input:  "#x()",
			expect: []Modifier{{Name: "x", Args: []any{}}},
		},
		{
			name:   "quoted number stays string",
			input:  `#x("300")`,
			expect: []Modifier{{Name: "x", Args: []any{"300"}}},
		},
		{
			name:  "duplicates kept in order",
			input: "#a(1)#b#a(2)",
			expect: []Modifier{
				{Name: "a", Args: []any{1.0}},
				{Name: "b", Args: []any{}},
				{Name: "a", Args: []any{2.0}},
			},
		},
		{
			name:   "empty",
			input:  "",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseModifiers(tt.input)
			if diff := cmp.Diff(tt.expect, result, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParseModifiers(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseModifierMapLaterDuplicateWins(t *testing.T) {
	mm := parseModifierMap("#a(1)#b#a(2)")

	if diff := cmp.Diff([]string{"a", "b"}, mm.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	args, _ := mm.Get("a")
	if diff := cmp.Diff([]any{2.0}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}
