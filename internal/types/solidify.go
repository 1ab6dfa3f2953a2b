package types

import "github.com/alantech/irgen/internal/scope"

// Solidify produces (and memoizes into s) a concrete instance of a
// generic template given the already-resolved generic argument types a
// caller holds (e.g. an array literal's element type, a call's actual
// argument type). It is idempotent per scope: a second call against the
// same scope with the same template and arguments returns the Type
// already registered under that synthetic name, rather than minting a
// fresh, unregistered instance every time.
func (t *Type) Solidify(args []*Type, s *scope.Scope) *Type {
	synthName := solidifiedName(t.Typename, args)
	if existing, ok := s.GetType(synthName); ok {
		if concrete, ok := existing.(*Type); ok {
			return concrete
		}
	}

	subst := make(map[string]*Type, len(args))
	for name, idx := range t.Generics {
		if idx < len(args) {
			subst[name] = args[idx]
		}
	}

	instance := &Type{
		Typename: synthName,
		Properties: replaceGenerics(t.Properties, subst),
		OriginalType: t,
		GenericArgs: args,
	}
	s.PutType(synthName, instance)
	return instance
}

// Realize applies an interface-map substitution through t's structure,
// returning a new Type with properties rewritten. Used to specialize a
// generic function's return type once call-site argument types are
// known.
func (t *Type) Realize(im InterfaceMap, s *scope.Scope) *Type {
	for from, to := range im {
		if t == from {
			return to
		}
	}
	if len(t.Properties) == 0 && len(t.GenericArgs) == 0 {
		return t
	}
	newProps := make([]Property, len(t.Properties))
	changed := false
	for i, p := range t.Properties {
		realized := p.Type.Realize(im, s)
		if realized != p.Type {
			changed = true
		}
		newProps[i] = Property{Name: p.Name, Type: realized}
	}
	newArgs := make([]*Type, len(t.GenericArgs))
	for i, a := range t.GenericArgs {
		realized := a.Realize(im, s)
		if realized != a {
			changed = true
		}
		newArgs[i] = realized
	}
	if !changed {
		return t
	}
	name := t.Typename
	if t.OriginalType != nil {
		name = solidifiedName(t.OriginalType.Typename, newArgs)
	}
	out := &Type{
		Typename: name,
		BuiltIn: t.BuiltIn,
		Properties: newProps,
		OriginalType: t.OriginalType,
		GenericArgs: newArgs,
		Iface: t.Iface,
		Alias: t.Alias,
	}
	if t.OriginalType != nil {
		s.PutType(name, out)
	}
	return out
}

// TypeApplies is the structural compatibility test, tried in order:
// equal typenames; this-is-interface delegates to Interface and records
// self -> other; this-is-generic-standin records self -> other; matching
// originalType recurses pairwise over generic arguments; an alias defers
// to the Type it renames. Otherwise false.
func (t *Type) TypeApplies(other *Type, s *scope.Scope, im InterfaceMap) bool {
	if other == nil {
		return false
	}
	if t.Typename == other.Typename {
		return true
	}
	if t.Iface != nil {
		if t.Iface.TypeApplies(other, s, im) {
			if im != nil {
				im[t] = other
			}
			return true
		}
		return false
	}
	if t.IsGenericStandin {
		if im != nil {
			im[t] = other
		}
		return true
	}
	if t.OriginalType != nil && other.OriginalType != nil &&
		t.OriginalType.Typename == other.OriginalType.Typename {
		if len(t.GenericArgs) != len(other.GenericArgs) {
			return false
		}
		for i := range t.GenericArgs {
			if !t.GenericArgs[i].TypeApplies(other.GenericArgs[i], s, im) {
				return false
			}
		}
		return true
	}
	if t.Alias != nil {
		return t.Alias.TypeApplies(other, s, im)
	}
	return false
}

// numericRank orders numeric built-ins from narrowest to widest per kind;
// Castable only permits widening within the same family (int widths,
// float widths, int->float) and must never be applied outside the
// emit-to-event boundary.
var numericRank = map[string]int{
	"int8": 1, "int16": 2, "int32": 3, "int64": 4,
	"float32": 10, "float64": 11,
}

var intNames = map[string]bool{"int8": true, "int16": true, "int32": true, "int64": true}
var floatNames = map[string]bool{"float32": true, "float64": true}

// Castable reports whether t can be numerically widened to other. Narrow
// by design: int widths widen to wider int widths, float widths widen to
// wider float widths, and any int widens to any float. Never used outside
// the emit-to-event boundary.
func (t *Type) Castable(other *Type) bool {
	tr, tok := numericRank[t.Typename]
	or, ook := numericRank[other.Typename]
	if !tok || !ook {
		return false
	}
	if intNames[t.Typename] && intNames[other.Typename] {
		return tr <= or
	}
	if floatNames[t.Typename] && floatNames[other.Typename] {
		return tr <= or
	}
	if intNames[t.Typename] && floatNames[other.Typename] {
		return true
	}
	return false
}
