// Package hxbind parses data-* binding directives on HTML elements and
// dispatches them to bridges that connect elements to a reactive store.
//
// hxbind is the parsing and dispatch core only. It recognises directive
// attributes, decodes their values into DirectiveValue descriptors and
// notifies subscribers; subscribing to a store, writing values back and
// touching the DOM is the bridge's job.
//
// # Directives
//
// Directives are ordinary attributes:
//
//	data-a-{attr}   set an attribute         target[#modifiers]
//	data-p-{prop}   set a DOM property       target[#modifiers]
//	data-b-{name}   custom bridge behavior   target[#modifiers]
//	data-m          two-way binding          target[:domProperty][#modifiers][@event]
//	data-c-{class}  toggle one class         target[#modifiers]
//	data-c          computed class list      target[#modifiers]
//
// A target is a dotted property path ("user.firstName"); ".." inside a path
// is a literal dot. Modifiers are "#name" or "#name(arg,arg)" with number,
// boolean or (optionally quoted) string arguments:
//
//	<input data-m="form.email:value#debounce(400)@input">
//	<span data-p-text-content="user.firstName"></span>
//	<li data-c-active="item.selected" data-b-tooltip="item.help#delay(200)"></li>
//
// Property directive names go through the name codec
// (AttributeNameToPropertyName), except for native properties such as
// innerHTML and textContent whose casing is looked up directly.
//
// # Scanning
//
// A Scanner turns one element into a ParsedDirectives value. Malformed
// directives never stop a scan: each problem becomes a Diagnostic, is
// logged as a warning and the rest of the element is still scanned. A data-m
// on an element that cannot be two-way bound, and a reactive class list
// that conflicts with a computed one, are dropped with a diagnostic.
//
// # Dispatch and lifecycle
//
// A Dispatcher scans an element, wraps the state in a HandlerContext and
// calls subscribers category by category (model, attribute, property, class,
// behavior). Subscribers release what they acquire through
// HandlerContext.AddCleanup; Dispose, or the attached CancelToken firing,
// runs those cleanups.
//
// Bridges implement the Bridge interface, usually embedding
// UnimplementedBridge, and are driven by a Binder, which keeps at most one
// live HandlerContext per element:
//
//	b := hxbind.NewBinder(myBridge)
//	for _, el := range dom.FindDirectiveElements(root) {
//	    if _, err := b.Bind(el, state); err != nil {
//	        return err
//	    }
//	}
//	defer b.Close()
//
// # Building directives
//
// Templates can emit directives with the Binding builder, which produces
// templ.Attributes:
//
//	<input { hxbind.Directive("form.email").Debounce(400).On("input").Model()... }/>
//
// # Manifests
//
// EncodeManifest packs a scanned ParsedDirectives into a signed string so a
// server can ship directives it has already scanned next to the markup.
package hxbind
