package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// globalProperties exist on every element. Values map the property to the
// attribute it reflects, or "" when it has no simple reflection.
var globalProperties = map[string]string{
	"id":              "id",
	"className":       "class",
	"title":           "title",
	"lang":            "lang",
	"dir":             "dir",
	"hidden":          "hidden",
	"tabIndex":        "tabindex",
	"accessKey":       "accesskey",
	"draggable":       "draggable",
	"spellcheck":      "spellcheck",
	"slot":            "slot",
	"style":           "style",
	"dataset":         "",
	"innerHTML":       "",
	"outerHTML":       "",
	"innerText":       "",
	"outerText":       "",
	"textContent":     "",
	"contentEditable": "",
	"tagName":         "",
	"nodeName":        "",
}

// tagProperties are the per-element interfaces modelled here.
var tagProperties = map[string]map[string]string{
	"input": {
		"value": "value", "defaultValue": "value", "checked": "checked",
		"defaultChecked": "checked", "indeterminate": "", "type": "type",
		"name": "name", "disabled": "disabled", "placeholder": "placeholder",
		"readOnly": "readonly", "required": "required", "min": "min",
		"max": "max", "step": "step", "multiple": "multiple", "pattern": "pattern",
	},
	"textarea": {
		"value": "", "defaultValue": "", "name": "name", "disabled": "disabled",
		"placeholder": "placeholder", "readOnly": "readonly", "required": "required",
		"rows": "rows", "cols": "cols",
	},
	"select": {
		"value": "", "selectedIndex": "", "name": "name", "disabled": "disabled",
		"multiple": "multiple", "required": "required",
	},
	"option": {
		"value": "value", "selected": "selected", "disabled": "disabled",
		"label": "label", "text": "",
	},
	"button": {
		"value": "value", "type": "type", "name": "name", "disabled": "disabled",
	},
	"a":     {"href": "href", "target": "target", "download": "download", "rel": "rel"},
	"img":   {"src": "src", "alt": "alt", "width": "width", "height": "height"},
	"form":  {"action": "action", "method": "method", "noValidate": "novalidate"},
	"label": {"htmlFor": "for"},
}

// inputTypes are the INPUT types browsers recognise; anything else reads
// back as "text".
var inputTypes = map[string]bool{
	"text": true, "password": true, "email": true, "search": true, "tel": true,
	"url": true, "number": true, "range": true, "date": true, "time": true,
	"month": true, "week": true, "datetime-local": true, "color": true,
	"checkbox": true, "radio": true, "button": true, "submit": true,
	"reset": true, "file": true, "hidden": true, "image": true,
}

func property(n *html.Node, name string) (string, bool) {
	tag := strings.ToLower(n.Data)
	reflected, ok := tagProperties[tag][name]
	if !ok {
		reflected, ok = globalProperties[name]
	}
	if !ok {
		return "", false
	}

	switch name {
	case "type":
		return elementType(n, tag), true
	case "contentEditable":
		return contentEditable(n), true
	case "textContent", "innerText", "text":
		return textContent(n), true
	case "tagName", "nodeName":
		return strings.ToUpper(n.Data), true
	}
	if tag == "textarea" && name == "value" {
		return textContent(n), true
	}
	if reflected == "" {
		return "", true
	}
	v, _ := attr(n, reflected)
	return v, true
}

func elementType(n *html.Node, tag string) string {
	t, _ := attr(n, "type")
	t = strings.ToLower(t)
	switch tag {
	case "input":
		if inputTypes[t] {
			return t
		}
		return "text"
	case "button":
		if t == "reset" || t == "button" {
			return t
		}
		return "submit"
	}
	return t
}

// contentEditable mirrors HTMLElement.contentEditable: an empty or "true"
// attribute reads "true"; a missing or invalid one reads "inherit".
func contentEditable(n *html.Node) string {
	v, ok := attr(n, "contenteditable")
	if !ok {
		return "inherit"
	}
	switch strings.ToLower(v) {
	case "", "true":
		return "true"
	case "false":
		return "false"
	case "plaintext-only":
		return "plaintext-only"
	default:
		return "inherit"
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
