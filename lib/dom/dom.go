// Package dom adapts golang.org/x/net/html nodes to hxbind.Element.
//
// It parses documents or fragments and finds the elements that carry
// directive attributes, so server-side code and tooling can scan markup
// the same way a browser bridge would:
//
//	root, err := dom.Parse(r)
//	for _, el := range dom.FindDirectiveElements(root) {
//	    directives, diags := scanner.Scan(el)
//	}
package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pthm/hxbind"
)

// Element wraps an element node. The zero value is not usable. Two Elements
// wrapping the same node are equal.
type Element struct {
	Node *html.Node
}

// Wrap returns the Element for n. n must be an element node.
func Wrap(n *html.Node) Element {
	return Element{Node: n}
}

// TagName returns the upper-case tag name.
func (e Element) TagName() string {
	return strings.ToUpper(e.Node.Data)
}

// Attributes returns the attributes in document order. Namespaced
// attributes are reported as "ns:key".
func (e Element) Attributes() []hxbind.Attribute {
	attrs := make([]hxbind.Attribute, len(e.Node.Attr))
	for i, a := range e.Node.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		attrs[i] = hxbind.Attribute{Name: name, Value: a.Val}
	}
	return attrs
}

// Property probes the element's DOM property surface. See properties.go
// for the modelled properties.
func (e Element) Property(name string) (string, bool) {
	return property(e.Node, name)
}

// Attr returns the value of a plain attribute.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Node.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Parse parses a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseFragment parses markup as the contents of <body> and returns the
// top-level nodes.
func ParseFragment(r io.Reader) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(r, body)
}

// FindDirectiveElements returns, in document order, every element under
// root (root included) that has at least one directive attribute.
func FindDirectiveElements(roots ...*html.Node) []hxbind.Element {
	var out []hxbind.Element
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && HasDirectives(n) {
			out = append(out, Wrap(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out
}

// HasDirectives reports whether n carries a directive attribute.
func HasDirectives(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && IsDirectiveAttribute(a.Key) {
			return true
		}
	}
	return false
}

// IsDirectiveAttribute reports whether name is one of the directive
// prefixes or markers.
func IsDirectiveAttribute(name string) bool {
	return strings.HasPrefix(name, hxbind.AttributePrefix) ||
		strings.HasPrefix(name, hxbind.PropertyPrefix) ||
		strings.HasPrefix(name, hxbind.BehaviorPrefix) ||
		name == hxbind.ModelMarker ||
		name == hxbind.ClassMarker ||
		strings.HasPrefix(name, hxbind.ClassPrefix)
}

// Render writes n back out as HTML.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}
