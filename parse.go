package hxbind

import (
	"fmt"
	"regexp"
	"strings"
)

var targetRegexp = regexp.MustCompile(`^[A-Za-z0-9_.$-]+`)

// ParseDirectiveValue parses the "target[#modifiers]" grammar shared by
// attribute, property, behavior and class directives.
//
// Surrounding whitespace is trimmed. A missing target or unexpected content
// after the target produces a diagnostic, but the partial result is still
// returned so one bad attribute never hides the others.
func ParseDirectiveValue(input string) (DirectiveValue, Diagnostics) {
	var (
		dv    DirectiveValue
		diags Diagnostics
	)
	input = strings.TrimSpace(input)

	dv.Target = targetRegexp.FindString(input)
	if dv.Target == "" {
		diags = append(diags, Diagnostic{
			Code:    DiagEmptyTarget,
			Value:   input,
			Message: fmt.Sprintf("directive value %q has no target", input),
		})
	}

	rest := input[len(dv.Target):]
	switch {
	case rest == "":
	case strings.HasPrefix(rest, "#"):
		dv.EventModifiers = parseModifierMap(rest)
	default:
		diags = append(diags, Diagnostic{
			Code:    DiagUnexpectedTrailing,
			Value:   input,
			Message: fmt.Sprintf("unexpected %q after target %q", rest, dv.Target),
		})
	}

	return dv, diags
}

// ParseModelDirectiveValue parses the two-way binding grammar
// "target[:domProperty][#modifiers][@event]".
//
// The last "@" starts the event, so "@" may appear earlier in the target.
// The first "#" then starts the modifier chain and the first ":" separates
// the DOM property. Whitespace is kept as written.
func ParseModelDirectiveValue(input string) DirectiveValue {
	var dv DirectiveValue
	rest := input

	if i := strings.LastIndex(rest, "@"); i >= 0 {
		dv.Event = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.Index(rest, "#"); i >= 0 {
		dv.EventModifiers = parseModifierMap(rest[i+1:])
		rest = rest[:i]
	}
	if i := strings.Index(rest, ":"); i >= 0 {
		dv.Target = rest[:i]
		dv.DomProperty = rest[i+1:]
	} else {
		dv.Target = rest
	}

	return dv
}
