package hxbind

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPrefix is the attribute prefix stripped by the name codec.
const DefaultPrefix = "data-"

// dotMarker stands in for an escaped literal dot while segments are split.
// It cannot appear in an HTML attribute name.
const dotMarker = "\x00"

var (
	kebabRegexp = regexp.MustCompile(`-([a-z])`)
	camelRegexp = regexp.MustCompile(`[A-Z]`)
)

// nativeProperties maps lower-cased directive names onto element properties
// whose casing cannot be recovered from an attribute name.
var nativeProperties = map[string]string{
	"contenteditable":  "contentEditable",
	"content-editable": "contentEditable",
	"innerhtml":        "innerHTML",
	"inner-html":       "innerHTML",
	"outerhtml":        "outerHTML",
	"outer-html":       "outerHTML",
	"innertext":        "innerText",
	"inner-text":       "innerText",
	"outertext":        "outerText",
	"outer-text":       "outerText",
	"classname":        "className",
	"class-name":       "className",
	"textcontent":      "textContent",
	"text-content":     "textContent",
}

// AttributeNameToPropertyName converts a hyphenated attribute name into a
// camelCase property path.
//
// Names that do not start with prefix are returned unchanged. Within a path
// segment "--" escapes a literal hyphen and ".." escapes a literal dot:
//
//	AttributeNameToPropertyName("data-user.first-name", "data-")   // "user.firstName"
//	AttributeNameToPropertyName("data-test-attr--nested", "data-") // "testAttr-nested"
//	AttributeNameToPropertyName("data-test-attr---nested", "data-") // "testAttr-Nested"
func AttributeNameToPropertyName(attrName, prefix string) string {
	if !strings.HasPrefix(attrName, prefix) {
		return attrName
	}
	name := strings.ReplaceAll(attrName[len(prefix):], "..", dotMarker)

	segments := strings.Split(name, ".")
	for i, seg := range segments {
		if !strings.Contains(seg, "--") {
			segments[i] = kebabToCamel(seg)
			continue
		}
		parts := strings.Split(seg, "--")
		for j, part := range parts {
			parts[j] = kebabToCamel(part)
		}
		segments[i] = strings.Join(parts, "-")
	}

	return strings.ReplaceAll(strings.Join(segments, "."), dotMarker, "..")
}

// PropertyNameToAttributeName converts a dotted property path into an
// attribute name. It is the inverse of AttributeNameToPropertyName:
//
//	PropertyNameToAttributeName("user.firstName", "data-") // "data-user.first-name"
func PropertyNameToAttributeName(name, prefix string) string {
	return PathToAttributeName(PropertyNameToPath(name), prefix)
}

// PathToAttributeName converts explicit path segments into an attribute
// name. Hyphens and dots inside a segment are escaped before camelCase
// boundaries are folded to kebab-case.
func PathToAttributeName(path []string, prefix string) string {
	segments := make([]string, len(path))
	for i, seg := range path {
		seg = strings.ReplaceAll(seg, "-", "--")
		seg = strings.ReplaceAll(seg, ".", "..")
		segments[i] = camelToKebab(seg)
	}
	return prefix + strings.Join(segments, ".")
}

// PropertyNameToPath splits a dotted property name into segments. Two
// consecutive dots encode a literal dot inside a segment.
func PropertyNameToPath(name string) []string {
	var (
		path []string
		seg  strings.Builder
	)
	for i := 0; i < len(name); i++ {
		if name[i] != '.' {
			seg.WriteByte(name[i])
			continue
		}
		if i+1 < len(name) && name[i+1] == '.' {
			seg.WriteByte('.')
			i++
			continue
		}
		path = append(path, seg.String())
		seg.Reset()
	}
	return append(path, seg.String())
}

// PathToPropertyName joins segments into a dotted property name, escaping
// literal dots as "..".
func PathToPropertyName(path []string) string {
	segments := make([]string, len(path))
	for i, seg := range path {
		segments[i] = strings.ReplaceAll(seg, ".", "..")
	}
	return strings.Join(segments, ".")
}

// ToPath normalizes a dynamic path argument. Strings are split with
// PropertyNameToPath; []string and []any of strings are taken as segments.
// Anything else fails with ErrInvalidPath.
func ToPath(v any) ([]string, error) {
	switch p := v.(type) {
	case string:
		return PropertyNameToPath(p), nil
	case []string:
		return p, nil
	case []any:
		path := make([]string, len(p))
		for i, seg := range p {
			s, ok := seg.(string)
			if !ok {
				return nil, fmt.Errorf("%w: segment %d is %T", ErrInvalidPath, i, seg)
			}
			path[i] = s
		}
		return path, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a path", ErrInvalidPath, v)
	}
}

// IsNativePropertyName resolves a directive attribute name to a built-in
// element property. Well-known names with irregular casing come from a fixed
// table; anything else is probed against the element's property surface.
// The second result is false when the name is not a native property.
func IsNativePropertyName(el Element, name, prefix string) (string, bool) {
	stripped := strings.TrimPrefix(name, prefix)
	if native, ok := nativeProperties[strings.ToLower(stripped)]; ok {
		return native, true
	}
	if el != nil && stripped != "" {
		if _, ok := el.Property(stripped); ok {
			return stripped, true
		}
	}
	return "", false
}

// kebabToCamel folds "-x" into "X". Single characters pass through so an
// escaped hyphen never swallows the following letter on its own.
func kebabToCamel(s string) string {
	if len(s) <= 1 {
		return s
	}
	return kebabRegexp.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

func camelToKebab(s string) string {
	return camelRegexp.ReplaceAllStringFunc(s, func(m string) string {
		return "-" + strings.ToLower(m)
	})
}
