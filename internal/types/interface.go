package types

import "github.com/alantech/irgen/internal/scope"

// FunctionSignature is one named method an interface requires. An empty
// Name marks an anonymous function slot, deferred to the call site.
type FunctionSignature struct {
	Name string
	Args []*Type
	ReturnType *Type
}

// OperatorSignature records an operator's symbol, fixity, and shape.
type OperatorSignature struct {
	Symbol string
	Prefix bool // false => infix
	Args []*Type
	ReturnType *Type
}

// Interface is the structural contract description: function signatures,
// operator signatures, and required properties.
type Interface struct {
	Functions []FunctionSignature
	Operators []OperatorSignature
	RequiredProperties map[string]*Type
}

// InterfaceMap is a per-call binding from an interface (or generic
// standin) Type to the concrete Type it resolved to. Built fresh at each
// call site, never process-global.
type InterfaceMap map[*Type]*Type

// TypeApplies checks candidate against iface's structural contract:
// every required property present, every named function signature has
// a matching overload in scope, every operator signature has a matching
// overload. Anonymous function slots are deferred to the call site and
// always considered satisfied here.
func (iface *Interface) TypeApplies(candidate *Type, s *scope.Scope, im InterfaceMap) bool {
	for propName, propType := range iface.RequiredProperties {
		found, _, ok := candidate.Property(propName)
		if !ok {
			return false
		}
		if !found.Type.TypeApplies(propType, s, im) {
			return false
		}
	}

	for _, sig := range iface.Functions {
		if sig.Name == "" {
			continue // deferred to call site
		}
		entity := s.DeepGet(sig.Name)
		if len(entity.Functions) == 0 {
			return false
		}
		if !anyOverloadMatches(entity.Functions, sig.Args, candidate, s, im) {
			return false
		}
	}

	for _, sig := range iface.Operators {
		entity := s.DeepGet(sig.Symbol)
		if len(entity.Operators) == 0 {
			return false
		}
		if !anyOverloadMatches(entity.Operators, sig.Args, candidate, s, im) {
			return false
		}
	}

	return true
}

// anyOverloadMatches: an overload matches if its argument types are
// equal to the formal types, or share an originalType with property-wise
// structural match (including interface satisfaction), or are the
// checked Type itself, or share the same interface object.
func anyOverloadMatches(candidates []scope.Callable, formal []*Type, self *Type, s *scope.Scope, im InterfaceMap) bool {
	for _, c := range candidates {
		actual := c.ArgTypes()
		if len(actual) != len(formal) {
			continue
		}
		ok := true
		for i, f := range formal {
			at, isType := actual[i].(*Type)
			if !isType {
				ok = false
				break
			}
			switch {
			case f == self:
				// "Self" slot: the overload must accept the candidate Type.
				if at.Typename != self.Typename && !at.TypeApplies(self, s, im) {
					ok = false
				}
			case at.Typename == f.Typename:
				// equal
			case at.Iface != nil && f.Iface != nil && at.Iface == f.Iface:
				// share the same interface object
			case at.TypeApplies(f, s, im):
				// structural / interface satisfaction
			default:
				ok = false
			}
			if !ok {
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
