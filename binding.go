package hxbind

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var modifierNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Binding builds directive attributes for templates. It is the inverse of
// the scanner: attributes produced here scan back to the same directives.
// Arguments the grammar cannot carry are rejected by Modifier.
//
//	<input { hxbind.Directive("form.email").Debounce(400).On("input").Model()... } />
//	<span { hxbind.Directive("user.name").Prop("textContent")... }></span>
//	<div { hxbind.MergeAttributes(
//	    hxbind.Directive("isActive").Class("active"),
//	    hxbind.Directive("user.id").Attr("title"),
//	)... }></div>
type Binding struct {
	target      string
	domProperty string
	event       string
	modifiers   []Modifier
}

// Directive starts a binding to target, a dotted property path.
func Directive(target string) *Binding {
	return &Binding{target: target}
}

// Modifier appends "#name(args)". Arguments may be numbers, bools or
// strings; strings that would read back as another type are quoted.
//
// The grammar has no escapes, so Modifier panics when name is not
// [A-Za-z0-9_-]+ or a string argument contains ',', '#' or '@'.
func (b *Binding) Modifier(name string, args ...any) *Binding {
	if !modifierNameRegexp.MatchString(name) {
		panic(fmt.Sprintf("hxbind: invalid modifier name %q", name))
	}
	for _, arg := range args {
		if s, ok := arg.(string); ok && strings.ContainsAny(s, ",#@") {
			panic(fmt.Sprintf("hxbind: modifier %q argument %q cannot be represented", name, s))
		}
	}
	b.modifiers = append(b.modifiers, Modifier{Name: name, Args: args})
	return b
}

// Debounce appends "#debounce(ms)".
func (b *Binding) Debounce(ms int) *Binding {
	return b.Modifier("debounce", ms)
}

// Throttle appends "#throttle(ms)".
func (b *Binding) Throttle(ms int) *Binding {
	return b.Modifier("throttle", ms)
}

// Property names the DOM property of a model binding ("target:property").
func (b *Binding) Property(domProperty string) *Binding {
	b.domProperty = domProperty
	return b
}

// On sets the write-back event of a model binding ("target@event").
func (b *Binding) On(event string) *Binding {
	b.event = event
	return b
}

// Value renders the "target[#modifiers]" form.
func (b *Binding) Value() string {
	var sb strings.Builder
	sb.WriteString(b.target)
	b.writeModifiers(&sb)
	return sb.String()
}

// ModelValue renders the "target[:domProperty][#modifiers][@event]" form.
func (b *Binding) ModelValue() string {
	var sb strings.Builder
	sb.WriteString(b.target)
	if b.domProperty != "" {
		sb.WriteByte(':')
		sb.WriteString(b.domProperty)
	}
	b.writeModifiers(&sb)
	if b.event != "" {
		sb.WriteByte('@')
		sb.WriteString(b.event)
	}
	return sb.String()
}

// Attr returns a data-a-{name} attribute directive.
func (b *Binding) Attr(name string) templ.Attributes {
	return templ.Attributes{AttributePrefix + name: b.Value()}
}

// Prop returns a data-p-* property directive. Native properties with
// irregular casing (innerHTML, textContent, ...) are written in lower case;
// other property paths go through the name codec.
func (b *Binding) Prop(property string) templ.Attributes {
	if _, ok := nativeProperties[strings.ToLower(property)]; ok {
		return templ.Attributes{PropertyPrefix + strings.ToLower(property): b.Value()}
	}
	return templ.Attributes{PropertyNameToAttributeName(property, PropertyPrefix): b.Value()}
}

// Behavior returns a data-b-{name} behavior directive.
func (b *Binding) Behavior(name string) templ.Attributes {
	return templ.Attributes{BehaviorPrefix + name: b.Value()}
}

// Class returns a data-c-{class} directive toggling one class.
func (b *Binding) Class(class string) templ.Attributes {
	return templ.Attributes{ClassPrefix + class: b.Value()}
}

// ComputedClass returns a data-c directive whose value is the whole class
// list.
func (b *Binding) ComputedClass() templ.Attributes {
	return templ.Attributes{ClassMarker: b.Value()}
}

// Model returns the data-m two-way binding directive.
func (b *Binding) Model() templ.Attributes {
	return templ.Attributes{ModelMarker: b.ModelValue()}
}

// MergeAttributes combines attribute maps; later maps win on conflicts.
func MergeAttributes(attrs ...templ.Attributes) templ.Attributes {
	out := templ.Attributes{}
	for _, a := range attrs {
		for k, v := range a {
			out[k] = v
		}
	}
	return out
}

func (b *Binding) writeModifiers(sb *strings.Builder) {
	for _, m := range b.modifiers {
		sb.WriteByte('#')
		sb.WriteString(m.Name)
		if len(m.Args) == 0 {
			continue
		}
		sb.WriteByte('(')
		for i, arg := range m.Args {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(formatArg(arg))
		}
		sb.WriteByte(')')
	}
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case string:
		if v == "" {
			return `""`
		}
		if s, ok := coerceArg(v).(string); ok && s == v && v == strings.TrimSpace(v) {
			return v
		}
		return `"` + v + `"`
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}
