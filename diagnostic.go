package hxbind

import (
	"context"
	"log/slog"
	"strings"
)

// DiagnosticCode classifies a non-fatal directive problem.
type DiagnosticCode string

const (
	// DiagEmptyTarget: the directive value has no readable target.
	DiagEmptyTarget DiagnosticCode = "empty-target"
	// DiagUnexpectedTrailing: content after the target is not a modifier chain.
	DiagUnexpectedTrailing DiagnosticCode = "unexpected-trailing"
	// DiagModelIneligible: data-m on an element that cannot be two-way bound.
	DiagModelIneligible DiagnosticCode = "model-ineligible"
	// DiagClassConflict: data-c and data-c-* on the same element.
	DiagClassConflict DiagnosticCode = "class-conflict"
)

// Diagnostic describes a malformed or rejected directive. Diagnostics never
// stop parsing; the best-effort result is still returned.
type Diagnostic struct {
	Code      DiagnosticCode `json:"code"`
	Attribute string         `json:"attribute,omitempty"`
	Value     string         `json:"value,omitempty"`
	Message   string         `json:"message"`
}

// Diagnostics is an ordered list of diagnostics.
type Diagnostics []Diagnostic

// Has reports whether any diagnostic carries code.
func (d Diagnostics) Has(code DiagnosticCode) bool {
	for _, diag := range d {
		if diag.Code == code {
			return true
		}
	}
	return false
}

// String joins the messages, one per line.
func (d Diagnostics) String() string {
	lines := make([]string, len(d))
	for i, diag := range d {
		lines[i] = string(diag.Code) + ": " + diag.Message
	}
	return strings.Join(lines, "\n")
}

// Log writes every diagnostic as a warning.
func (d Diagnostics) Log(ctx context.Context, logger *slog.Logger) {
	for _, diag := range d {
		logger.LogAttrs(ctx, slog.LevelWarn, diag.Message,
			slog.String("code", string(diag.Code)),
			slog.String("attribute", diag.Attribute),
			slog.String("value", diag.Value),
		)
	}
}

// withAttribute stamps the source attribute name on diagnostics produced
// by the value grammars.
func (d Diagnostics) withAttribute(name string) Diagnostics {
	for i := range d {
		d[i].Attribute = name
	}
	return d
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
