// Package types implements the Type/Interface data model: a solidified
// representation of a source type (builtin, record, interface, alias, or
// generic standin) plus the solidify/realize/typeApplies/castable
// operations a call site uses to resolve generics and structural
// interfaces against it.
//
// A Type is a flat record (typename, builtIn, isGenericStandin, ordered
// properties, generics index, originalType backref, iface, alias) rather
// than a Hindley-Milner substitution algebra: this core's job is to
// realize already-declared generic/interface shapes against concrete
// call-site arguments, not to infer types from scratch.
package types

import (
	"fmt"
	"strings"

	"github.com/alantech/irgen/internal/scope"
)

// Property is one ordered property name -> Type pair. Order is
// semantically significant: property access lowers to indexed array
// access, so re-ordering a type's properties would change every
// existing access.
type Property struct {
	Name string
	Type *Type
}

// Type is the core's single representation of a named value shape: a
// built-in, an interface, a generic template, a solidified instance, an
// alias, or a generic-parameter placeholder.
type Type struct {
	Typename string
	BuiltIn bool
	IsGenericStandin bool
	Properties []Property // ordered; see Property doc
	Generics map[string]int // generic-parameter name -> positional index
	OriginalType *Type // back reference: solidified instance -> template
	GenericArgs []*Type // positional args used to solidify (parallel to OriginalType.Generics)
	Iface *Interface // non-nil when this Type *is* an interface
	Alias *Type // non-nil when this Type renames another
}

// TypeName implements scope.TypeEntity.
func (t *Type) TypeName() string { return t.Typename }

// ArgTypes/ReturnType mirror part of scope.Callable's method set; *Type
// has no Name method, so it does not satisfy scope.Callable.
// Function/operator signatures are represented by FunctionSignature, not
// Type, so these are unused in practice.
func (t *Type) ArgTypes() []scope.TypeEntity { return nil }
func (t *Type) ReturnType() scope.TypeEntity { return t }

func NewBuiltin(name string) *Type {
	return &Type{Typename: name, BuiltIn: true}
}

// NewGenericStandin builds the unresolved-parameter placeholder Type used
// inside a generic template's body (e.g. the `T` inside `Array<T>`).
func NewGenericStandin(name string) *Type {
	return &Type{Typename: name, IsGenericStandin: true}
}

// NewRecord builds a user-defined record/struct type with ordered fields.
func NewRecord(name string, props []Property, generics map[string]int) *Type {
	return &Type{Typename: name, Properties: props, Generics: generics}
}

// NewAlias builds a Type that renames another; aliased-vs-original still
// compare equal for user intent.
func NewAlias(name string, underlying *Type) *Type {
	return &Type{Typename: name, Alias: underlying}
}

// NewInterfaceType builds a Type that *is* an interface.
func NewInterfaceType(name string, iface *Interface) *Type {
	return &Type{Typename: name, Iface: iface}
}

func (t *Type) String() string { return t.Typename }

// IsInterface reports whether this Type is an interface description.
func (t *Type) IsInterface() bool { return t.Iface != nil }

// Property looks up a declared property by name, returning its index in
// declaration order (needed by the property-access lowering, which emits
// an indexed array load).
func (t *Type) Property(name string) (Property, int, bool) {
	for i, p := range t.Properties {
		if p.Name == name {
			return p, i, true
		}
	}
	return Property{}, -1, false
}

// FieldNames returns declared property names in declaration order.
func (t *Type) FieldNames() []string {
	names := make([]string, len(t.Properties))
	for i, p := range t.Properties {
		names[i] = p.Name
	}
	return names
}

// baseTypeName strips a solidified instance's "Base<g1, g2>" decoration
// back to "Base", used when comparing against a template's own name.
func baseTypeName(name string) string {
	if idx := strings.IndexByte(name, '<'); idx >= 0 {
		return name[:idx]
	}
	return name
}

// solidifiedName builds the synthetic "Base<g1, g2, …>" name for a
// solidified instance.
func solidifiedName(base string, args []*Type) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Typename
	}
	return fmt.Sprintf("%s<%s>", base, strings.Join(parts, ", "))
}

// replaceGenerics produces a copy of props with every generic standin
// named in subst replaced by its resolved Type.
func replaceGenerics(props []Property, subst map[string]*Type) []Property {
	out := make([]Property, len(props))
	for i, p := range props {
		if p.Type.IsGenericStandin {
			if resolved, ok := subst[p.Type.Typename]; ok {
				out[i] = Property{Name: p.Name, Type: resolved}
				continue
			}
		}
		if p.Type.OriginalType != nil || len(p.Type.Properties) > 0 {
			out[i] = Property{Name: p.Name, Type: &Type{
				Typename: p.Type.Typename,
				BuiltIn: p.Type.BuiltIn,
				IsGenericStandin: p.Type.IsGenericStandin,
				Properties: replaceGenerics(p.Type.Properties, subst),
				Generics: p.Type.Generics,
				OriginalType: p.Type.OriginalType,
				Iface: p.Type.Iface,
				Alias: p.Type.Alias,
			}}
			continue
		}
		out[i] = p
	}
	return out
}
