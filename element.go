package hxbind

import (
	"fmt"
	"sort"

	"github.com/a-h/templ"
)

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Name  string
	Value string
}

// Element is the view of a DOM element the scanner and bridges need.
//
// TagName returns the upper-case tag name. Attributes returns attributes in
// document order. Property probes the element's property surface and
// returns the string form of the property when it exists.
//
// Implementations must be comparable; a Binder keys its table by Element.
type Element interface {
	TagName() string
	Attributes() []Attribute
	Property(name string) (string, bool)
}

// AttributeValue returns the value of the named attribute on el.
func AttributeValue(el Element, name string) (string, bool) {
	for _, a := range el.Attributes() {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttributesFromTempl converts a templ attribute map into an attribute list
// sorted by name. Boolean attributes that are true get an empty value and
// false ones are omitted, matching how templ renders them.
func AttributesFromTempl(attrs templ.Attributes) []Attribute {
	out := make([]Attribute, 0, len(attrs))
	for name, v := range attrs {
		switch val := v.(type) {
		case string:
			out = append(out, Attribute{Name: name, Value: val})
		case bool:
			if val {
				out = append(out, Attribute{Name: name})
			}
		case nil:
		default:
			out = append(out, Attribute{Name: name, Value: fmt.Sprint(val)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
