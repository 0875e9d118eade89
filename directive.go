package hxbind

// Directive attribute prefixes and markers.
const (
	AttributePrefix = "data-a-"
	PropertyPrefix  = "data-p-"
	BehaviorPrefix  = "data-b-"
	ModelMarker     = "data-m"
	ClassMarker     = "data-c"
	ClassPrefix     = ClassMarker + "-"
)

// Category identifies one of the five directive groups. Categories are
// dispatched in declaration order.
type Category int

const (
	CategoryModel Category = iota
	CategoryAttribute
	CategoryProperty
	CategoryClass
	CategoryBehavior
)

// String returns the category name used in logs.
func (c Category) String() string {
	switch c {
	case CategoryModel:
		return "model"
	case CategoryAttribute:
		return "attribute"
	case CategoryProperty:
		return "property"
	case CategoryClass:
		return "class"
	case CategoryBehavior:
		return "behavior"
	default:
		return "unknown"
	}
}

// Modifier is a single "#name(args)" entry from a directive value. Args
// hold float64, bool or string values.
type Modifier struct {
	Name string
	Args []any
}

// DirectiveValue is the parsed form of a directive attribute value.
//
// Target and DomProperty are property paths in string form; use
// TargetPath and DomPropertyPath for their segments. Event and DomProperty
// are only set by the model directive grammar.
type DirectiveValue struct {
	Target         string      `json:"target"`
	DomProperty    string      `json:"domProperty,omitempty"`
	Event          string      `json:"event,omitempty"`
	EventModifiers ModifierMap `json:"eventModifiers"`
}

// TargetPath splits Target into path segments. It is recomputed on every
// call so it always reflects the current Target.
func (d DirectiveValue) TargetPath() []string {
	return PropertyNameToPath(d.Target)
}

// DomPropertyPath splits DomProperty into path segments. An empty
// DomProperty yields an empty path.
func (d DirectiveValue) DomPropertyPath() []string {
	if d.DomProperty == "" {
		return nil
	}
	return PropertyNameToPath(d.DomProperty)
}

// Modifier returns the arguments of the named modifier.
func (d DirectiveValue) Modifier(name string) ([]any, bool) {
	return d.EventModifiers.Get(name)
}

// Modifiers returns the modifiers in order.
func (d DirectiveValue) Modifiers() []Modifier {
	var out []Modifier
	for name, args := range d.EventModifiers.All() {
		out = append(out, Modifier{Name: name, Args: args})
	}
	return out
}

// Clone returns a copy that shares nothing with d.
func (d DirectiveValue) Clone() DirectiveValue {
	d.EventModifiers = d.EventModifiers.Clone()
	return d
}

// Equal reports whether two directive values are structurally equal.
func (d DirectiveValue) Equal(o DirectiveValue) bool {
	return d.Target == o.Target &&
		d.DomProperty == o.DomProperty &&
		d.Event == o.Event &&
		d.EventModifiers.Equal(o.EventModifiers)
}

// ClassDirectiveValue holds either per-class toggles or one computed class
// list, never both.
type ClassDirectiveValue struct {
	ReactiveClasses DirectiveMap    `json:"reactiveClasses"`
	ComputedClass   *DirectiveValue `json:"computedClass,omitempty"`
}

// IsEmpty reports whether the value carries no class directive at all.
func (c *ClassDirectiveValue) IsEmpty() bool {
	return c == nil || (c.ComputedClass == nil && c.ReactiveClasses.Len() == 0)
}

// Clone returns a deep copy of c. A nil c yields nil.
func (c *ClassDirectiveValue) Clone() *ClassDirectiveValue {
	if c == nil {
		return nil
	}
	out := &ClassDirectiveValue{ReactiveClasses: c.ReactiveClasses.Clone()}
	if c.ComputedClass != nil {
		dv := c.ComputedClass.Clone()
		out.ComputedClass = &dv
	}
	return out
}

// Equal reports whether two class directive values are structurally equal.
func (c *ClassDirectiveValue) Equal(o *ClassDirectiveValue) bool {
	if c == nil || o == nil {
		return c == o
	}
	if (c.ComputedClass == nil) != (o.ComputedClass == nil) {
		return false
	}
	if c.ComputedClass != nil && !c.ComputedClass.Equal(*o.ComputedClass) {
		return false
	}
	return c.ReactiveClasses.Equal(o.ReactiveClasses)
}

// ParsedDirectives is every directive found on one element.
type ParsedDirectives struct {
	AttributeDirectives DirectiveMap         `json:"attributeDirectives"`
	PropertyDirectives  DirectiveMap         `json:"propertyDirectives"`
	BehaviorDirectives  DirectiveMap         `json:"behaviorDirectives"`
	ModelDirective      *DirectiveValue      `json:"modelDirective,omitempty"`
	ClassDirective      *ClassDirectiveValue `json:"classDirective,omitempty"`
}

// IsEmpty reports whether no category holds a directive.
func (p *ParsedDirectives) IsEmpty() bool {
	return p.ModelDirective == nil &&
		p.AttributeDirectives.Len() == 0 &&
		p.PropertyDirectives.Len() == 0 &&
		p.ClassDirective.IsEmpty() &&
		p.BehaviorDirectives.Len() == 0
}

// Equal reports whether two directive sets are structurally equal.
func (p *ParsedDirectives) Equal(o *ParsedDirectives) bool {
	if p == nil || o == nil {
		return p == o
	}
	if (p.ModelDirective == nil) != (o.ModelDirective == nil) {
		return false
	}
	if p.ModelDirective != nil && !p.ModelDirective.Equal(*o.ModelDirective) {
		return false
	}
	return p.AttributeDirectives.Equal(o.AttributeDirectives) &&
		p.PropertyDirectives.Equal(o.PropertyDirectives) &&
		p.BehaviorDirectives.Equal(o.BehaviorDirectives) &&
		p.ClassDirective.Equal(o.ClassDirective)
}
