// Package primitives implements the opcode catalog: the fixed set of
// built-in callables the dispatcher can select alongside user-defined
// overloads, each carrying a name, an ordered argument-name list,
// argument/return types, and (for the handful that need one) a custom
// inliner that builds its own microstatements instead of lowering to a
// plain CALL.
//
// Registration happens at init time in a package-level map, split across
// catalog_*.go files by concern (numeric widths, arrays, strings, higher
// order, sequence, and the boundary-only I/O-flavored group).
package primitives

import (
	"fmt"

	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

// InlineFunc builds custom microstatements for a primitive call instead of
// the default plain CALL: a subset of primitives carry a custom inliner.
// args are the already-lowered argument microstatements in call order;
// the function appends whatever it needs to buf and returns the
// microstatement whose OutputName stands for the call's value.
type InlineFunc func(buf *microstatement.Buffer, outputName string, outputType *types.Type, args []*microstatement.Microstatement) (*microstatement.Microstatement, error)

// Primitive is one catalog entry. It implements scope.Callable so the
// dispatcher can treat it exactly like a user function overload.
type Primitive struct {
	PrimName string
	ArgNames []string
	ArgTypeVals []*types.Type
	RetType *types.Type
	Inline InlineFunc
	Pure bool
}

func (p *Primitive) Name() string { return p.PrimName }

func (p *Primitive) ArgTypes() []scope.TypeEntity {
	out := make([]scope.TypeEntity, len(p.ArgTypeVals))
	for i, t := range p.ArgTypeVals {
		out[i] = t
	}
	return out
}

func (p *Primitive) ReturnType() scope.TypeEntity { return p.RetType }

// Catalog is the process-wide registry, keyed by primitive name with
// overloads appended in registration order (last-registered wins on a
// tie, matching the dispatch rule user overloads obey).
type Catalog struct {
	byName map[string][]*Primitive
}

var global = &Catalog{byName: make(map[string][]*Primitive)}

// Register adds p to the global catalog under p.PrimName.
func Register(p *Primitive) {
	global.byName[p.PrimName] = append(global.byName[p.PrimName], p)
}

// Lookup returns every registered overload for name.
func Lookup(name string) ([]*Primitive, bool) {
	fns, ok := global.byName[name]
	return fns, ok
}

// InstallInto copies every catalog entry into s as function overloads, so
// a fresh prelude scope dispatches over primitives exactly
// like user-defined functions.
func InstallInto(s *scope.Scope) {
	for name, fns := range global.byName {
		for _, fn := range fns {
			s.PutFunction(name, fn)
		}
	}
}

// All returns every registered primitive, stably ordered by name then
// registration order, for catalog-dumping diagnostics.
func All() []*Primitive {
	names := make([]string, 0, len(global.byName))
	for name := range global.byName {
		names = append(names, name)
	}
	sortStrings(names)
	out := make([]*Primitive, 0, len(global.byName))
	for _, name := range names {
		out = append(out, global.byName[name]...)
	}
	return out
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// plainCall is the InlineFunc shared by every primitive that needs no
// custom lowering: append a CONSTDEC microstatement naming this primitive
// as callee, with the given output identity.
func plainCall(p *Primitive) InlineFunc {
	return func(buf *microstatement.Buffer, outputName string, outputType *types.Type, args []*microstatement.Microstatement) (*microstatement.Microstatement, error) {
		inputs := make([]string, len(args))
		for i, a := range args {
			inputs[i] = a.OutputName
		}
		m := &microstatement.Microstatement{
			Kind: microstatement.CONSTDEC,
			OutputName: outputName,
			OutputType: outputType,
			InputNames: inputs,
			Callees: []scope.Callable{p},
		}
		buf.Append(m)
		return m, nil
	}
}

func errArity(name string, want, got int) error {
	return fmt.Errorf("primitive %s: expected %d argument(s), got %d", name, want, got)
}
