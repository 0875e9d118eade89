package hxbind

import (
	"errors"
	"fmt"

	"github.com/pthm/hxbind/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// manifestVersion is bumped when the packed layout changes.
const manifestVersion = 1

// NewEncoder creates a manifest encoder with the given signing key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// EncodeManifest serialises a scanned directive set into a signed string,
// so a server can ship directives it has already scanned.
func EncodeManifest(enc *Encoder, pd *ParsedDirectives) (string, error) {
	return enc.Encode(pd)
}

// DecodeManifest verifies and decodes a manifest produced by
// EncodeManifest.
func DecodeManifest(enc *Encoder, manifest string) (*ParsedDirectives, error) {
	pd := &ParsedDirectives{}
	if err := enc.Decode(manifest, pd); err != nil {
		return nil, wrapEncodingError(err)
	}
	return pd, nil
}

// wrapEncodingError wraps encoding package errors with hxbind sentinel errors.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if errors.Is(err, encoding.ErrSignatureInvalid) {
		return ErrManifestSignature
	}
	return err
}

// EncodeMap flattens the directive set for packing. Keyed categories are
// stored as [name, value] pairs to keep their order.
func (p *ParsedDirectives) EncodeMap() map[string]any {
	m := map[string]any{
		"v": manifestVersion,
		"a": encodeDirectiveMap(p.AttributeDirectives),
		"p": encodeDirectiveMap(p.PropertyDirectives),
		"b": encodeDirectiveMap(p.BehaviorDirectives),
	}
	if p.ModelDirective != nil {
		m["m"] = encodeDirectiveValue(*p.ModelDirective)
	}
	if p.ClassDirective != nil {
		c := map[string]any{"r": encodeDirectiveMap(p.ClassDirective.ReactiveClasses)}
		if p.ClassDirective.ComputedClass != nil {
			c["x"] = encodeDirectiveValue(*p.ClassDirective.ComputedClass)
		}
		m["c"] = c
	}
	return m
}

// DecodeMap rebuilds the directive set from a packed map.
func (p *ParsedDirectives) DecodeMap(m map[string]any) error {
	if v, ok := toInt(m["v"]); !ok || v != manifestVersion {
		return fmt.Errorf("%w: unsupported version %v", ErrInvalidManifest, m["v"])
	}

	var err error
	if p.AttributeDirectives, err = decodeDirectiveMap(m["a"]); err != nil {
		return err
	}
	if p.PropertyDirectives, err = decodeDirectiveMap(m["p"]); err != nil {
		return err
	}
	if p.BehaviorDirectives, err = decodeDirectiveMap(m["b"]); err != nil {
		return err
	}
	if raw, ok := m["m"]; ok {
		dv, err := decodeDirectiveValue(raw)
		if err != nil {
			return err
		}
		p.ModelDirective = &dv
	}
	if raw, ok := m["c"]; ok {
		cm, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: class directive is %T", ErrInvalidManifest, raw)
		}
		cd := &ClassDirectiveValue{}
		if cd.ReactiveClasses, err = decodeDirectiveMap(cm["r"]); err != nil {
			return err
		}
		if x, ok := cm["x"]; ok {
			dv, err := decodeDirectiveValue(x)
			if err != nil {
				return err
			}
			cd.ComputedClass = &dv
		}
		p.ClassDirective = cd
	}
	return nil
}

func encodeDirectiveMap(dm DirectiveMap) []any {
	pairs := make([]any, 0, dm.Len())
	for name, dv := range dm.All() {
		pairs = append(pairs, []any{name, encodeDirectiveValue(dv)})
	}
	return pairs
}

func encodeDirectiveValue(dv DirectiveValue) map[string]any {
	mods := make([]any, 0, dv.EventModifiers.Len())
	for name, args := range dv.EventModifiers.All() {
		if args == nil {
			args = []any{}
		}
		mods = append(mods, []any{name, args})
	}
	return map[string]any{
		"t": dv.Target,
		"d": dv.DomProperty,
		"e": dv.Event,
		"m": mods,
	}
}

func decodeDirectiveMap(raw any) (DirectiveMap, error) {
	var dm DirectiveMap
	if raw == nil {
		return dm, nil
	}
	pairs, ok := raw.([]any)
	if !ok {
		return dm, fmt.Errorf("%w: directive list is %T", ErrInvalidManifest, raw)
	}
	for _, pair := range pairs {
		name, value, err := decodePair(pair)
		if err != nil {
			return dm, err
		}
		dv, err := decodeDirectiveValue(value)
		if err != nil {
			return dm, err
		}
		dm.Set(name, dv)
	}
	return dm, nil
}

func decodeDirectiveValue(raw any) (DirectiveValue, error) {
	var dv DirectiveValue
	m, ok := raw.(map[string]any)
	if !ok {
		return dv, fmt.Errorf("%w: directive is %T", ErrInvalidManifest, raw)
	}
	dv.Target, _ = m["t"].(string)
	dv.DomProperty, _ = m["d"].(string)
	dv.Event, _ = m["e"].(string)

	mods, _ := m["m"].([]any)
	for _, mod := range mods {
		name, value, err := decodePair(mod)
		if err != nil {
			return dv, err
		}
		args, ok := value.([]any)
		if !ok && value != nil {
			return dv, fmt.Errorf("%w: modifier %q args are %T", ErrInvalidManifest, name, value)
		}
		for i, a := range args {
			args[i] = normalizeArg(a)
		}
		if args == nil {
			args = []any{}
		}
		dv.EventModifiers.Set(name, args)
	}
	return dv, nil
}

func decodePair(raw any) (string, any, error) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return "", nil, fmt.Errorf("%w: malformed pair %v", ErrInvalidManifest, raw)
	}
	name, ok := pair[0].(string)
	if !ok {
		return "", nil, fmt.Errorf("%w: pair key is %T", ErrInvalidManifest, pair[0])
	}
	return name, pair[1], nil
}

// normalizeArg maps msgpack's compact integer encodings back to float64,
// the only numeric type the modifier grammar produces.
func normalizeArg(a any) any {
	if n, ok := toInt(a); ok {
		return float64(n)
	}
	if f, ok := a.(float32); ok {
		return float64(f)
	}
	return a
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
