package hxbind

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// modelInputTypes lists the INPUT types that support two-way binding.
var modelInputTypes = map[string]bool{
	"text":           true,
	"password":       true,
	"email":          true,
	"search":         true,
	"tel":            true,
	"url":            true,
	"number":         true,
	"range":          true,
	"date":           true,
	"time":           true,
	"month":          true,
	"week":           true,
	"datetime-local": true,
	"color":          true,
	"checkbox":       true,
	"radio":          true,
}

// Scanner turns an element's attributes into a ParsedDirectives value.
//
// Scanning is pure: the same attributes always produce the same directives
// and diagnostics. Diagnostics are returned and also logged as warnings.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a scanner. WithLogger sets the diagnostic logger.
func NewScanner(opts ...Option) *Scanner {
	o := applyOptions(opts)
	return &Scanner{logger: loggerOrDefault(o.logger)}
}

// Scan reads the element's own attributes.
func (s *Scanner) Scan(el Element) (*ParsedDirectives, Diagnostics) {
	return s.ScanAttributes(el, el.Attributes())
}

// ScanAttributes scans an explicit attribute list. el is still consulted
// for model eligibility and native property names.
//
// Each attribute is classified by prefix, in this order: data-a-, data-p-,
// data-b-, data-m, then data-c / data-c-*. Within a category directives keep
// attribute order.
func (s *Scanner) ScanAttributes(el Element, attrs []Attribute) (*ParsedDirectives, Diagnostics) {
	var (
		pd       = &ParsedDirectives{}
		diags    Diagnostics
		hasClass bool
	)

	for _, attr := range attrs {
		name := attr.Name
		switch {
		case strings.HasPrefix(name, AttributePrefix):
			dv, d := ParseDirectiveValue(attr.Value)
			diags = append(diags, d.withAttribute(name)...)
			pd.AttributeDirectives.Set(name[len(AttributePrefix):], dv)

		case strings.HasPrefix(name, PropertyPrefix):
			dv, d := ParseDirectiveValue(attr.Value)
			diags = append(diags, d.withAttribute(name)...)
			pd.PropertyDirectives.Set(propertyKey(el, name), dv)

		case strings.HasPrefix(name, BehaviorPrefix):
			dv, d := ParseDirectiveValue(attr.Value)
			diags = append(diags, d.withAttribute(name)...)
			pd.BehaviorDirectives.Set(name[len(BehaviorPrefix):], dv)

		case name == ModelMarker:
			if diag, ok := checkModelEligible(el); !ok {
				diag.Attribute = name
				diag.Value = attr.Value
				diags = append(diags, diag)
				continue
			}
			dv := ParseModelDirectiveValue(attr.Value)
			pd.ModelDirective = &dv

		case name == ClassMarker || strings.HasPrefix(name, ClassPrefix):
			hasClass = true
		}
	}

	if hasClass {
		cd, d := scanClassDirectives(attrs)
		pd.ClassDirective = cd
		diags = append(diags, d...)
	}

	diags.Log(context.Background(), s.logger)
	return pd, diags
}

// propertyKey keys a property directive by its native property name when
// there is one, otherwise by the name codec output.
func propertyKey(el Element, name string) string {
	if native, ok := IsNativePropertyName(el, name, PropertyPrefix); ok {
		return native
	}
	return AttributeNameToPropertyName(name, PropertyPrefix)
}

// scanClassDirectives collects every data-c attribute at once because the
// computed form excludes the reactive form.
//
// An empty suffix ("data-c-") is stored under the empty class name.
// TODO: reject empty class names once existing markup has been audited.
func scanClassDirectives(attrs []Attribute) (*ClassDirectiveValue, Diagnostics) {
	var (
		cd    = &ClassDirectiveValue{}
		diags Diagnostics
	)
	for _, attr := range attrs {
		switch {
		case attr.Name == ClassMarker:
			dv, d := ParseDirectiveValue(attr.Value)
			diags = append(diags, d.withAttribute(attr.Name)...)
			cd.ComputedClass = &dv
		case strings.HasPrefix(attr.Name, ClassPrefix):
			dv, d := ParseDirectiveValue(attr.Value)
			diags = append(diags, d.withAttribute(attr.Name)...)
			cd.ReactiveClasses.Set(attr.Name[len(ClassPrefix):], dv)
		}
	}

	if cd.ComputedClass != nil && cd.ComputedClass.Target == "" {
		cd.ComputedClass = nil
	}
	if cd.ComputedClass != nil && cd.ReactiveClasses.Len() > 0 {
		diags = append(diags, Diagnostic{
			Code:      DiagClassConflict,
			Attribute: ClassMarker,
			Value:     cd.ComputedClass.Target,
			Message: fmt.Sprintf("%s cannot be combined with %s* attributes; ignoring %s",
				ClassMarker, ClassPrefix, strings.Join(cd.ReactiveClasses.Keys(), ", ")),
		})
		cd.ReactiveClasses = DirectiveMap{}
	}
	return cd, diags
}

// checkModelEligible reports whether el supports two-way binding.
func checkModelEligible(el Element) (Diagnostic, bool) {
	tag := strings.ToUpper(el.TagName())
	switch tag {
	case "TEXTAREA", "SELECT":
		return Diagnostic{}, true
	}

	var elemType string
	if tag == "INPUT" {
		elemType = inputTypeOf(el)
		if modelInputTypes[elemType] {
			return Diagnostic{}, true
		}
	} else if t, ok := AttributeValue(el, "type"); ok {
		elemType = t
	}
	if ce, ok := el.Property("contentEditable"); ok && ce == "true" {
		return Diagnostic{}, true
	}
	if role, ok := AttributeValue(el, "role"); ok && role == "textbox" {
		return Diagnostic{}, true
	}

	msg := fmt.Sprintf("%s does not support two-way binding on <%s>", ModelMarker, strings.ToLower(tag))
	if elemType != "" {
		msg = fmt.Sprintf("%s does not support two-way binding on <%s type=%q>", ModelMarker, strings.ToLower(tag), elemType)
	}
	return Diagnostic{Code: DiagModelIneligible, Message: msg}, false
}

// inputTypeOf returns the lower-cased type of an INPUT element. A missing
// type reads as "text".
func inputTypeOf(el Element) string {
	if t, ok := el.Property("type"); ok && t != "" {
		return strings.ToLower(t)
	}
	if t, ok := AttributeValue(el, "type"); ok && t != "" {
		return strings.ToLower(t)
	}
	return "text"
}
