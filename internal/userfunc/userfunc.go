// Package userfunc implements the function dispatcher and closure inliner
// of: overload resolution ("last wins"), lazy return-type
// inference, conditional-to-primitive-call rewriting, and the call-site
// microstatement inliner with recursion detection.
//
// Overload dispatch scans candidates in registration order and accepts
// the last structural match; closure handling generalizes to an ENTERFN-marker recursion
// guard and REREF-based argument binding.
package userfunc

import (
	"fmt"
	"strings"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/token"
	"github.com/alantech/irgen/internal/types"
)

// Argument is one formal parameter: a name and its resolved Type, built
// by resolving argument types and solidifying any generics at declaration
// time.
type Argument struct {
	Name string
	Type *types.Type
}

// UserFunction is one overload candidate declared in source.
type UserFunction struct {
	FnName string
	Args []Argument
	Statements []ast.Node
	Defscope *scope.Scope

	explicitReturnType *types.Type // nil when omitted; queried lazily
	returnTypeResolved bool
	resolvedReturnType *types.Type

	pure bool
}

// New constructs a UserFunction from its declaration. Argument types must
// already be solidified by the caller; New does not resolve type
// annotations.
func New(name string, args []Argument, explicitReturn *types.Type, statements []ast.Node, defscope *scope.Scope, pure bool) *UserFunction {
	uf := &UserFunction{
		FnName: name,
		Args: args,
		Statements: statements,
		Defscope: defscope,
		pure: pure,
	}
	if explicitReturn != nil {
		uf.explicitReturnType = explicitReturn
		uf.returnTypeResolved = true
		uf.resolvedReturnType = explicitReturn
	}
	return uf
}

func (uf *UserFunction) Name() string { return uf.FnName }
func (uf *UserFunction) IsPure() bool { return uf.pure }

func (uf *UserFunction) GetArguments() []Argument { return uf.Args }

// ArgTypes/ReturnType implement scope.Callable.
func (uf *UserFunction) ArgTypes() []scope.TypeEntity {
	out := make([]scope.TypeEntity, len(uf.Args))
	for i, a := range uf.Args {
		out[i] = a.Type
	}
	return out
}

func (uf *UserFunction) ReturnType() scope.TypeEntity {
	return uf.GetReturnType(nil)
}

// StatementLowerer is the subset of the microstatement generator
// (internal/lowering) UserFunction needs for lazy return-type inference
// and for the real body-lowering step of MicrostatementInlining. It is
// expressed as an interface here, rather than an import, to keep the
// dependency direction lowering -> userfunc -> {types, scope, microstatement}
// one-way (lowering is the only package allowed to depend on userfunc).
type StatementLowerer interface {
	LowerStatement(node ast.Node, s *scope.Scope, buf *microstatement.Buffer) error
}

// GetReturnType resolves the declaration's return type lazily:
// explicit annotation if present; otherwise, for expression-bodied
// functions whose arguments are all non-closure, run the body against a
// throwaway buffer seeded with REREFs; otherwise, if the body starts with
// a primitive call name, use that primitive's declared type; otherwise
// void. lowerer may be nil, in which case inference falls back to void
// when no explicit annotation is present (used by tests of the dispatcher
// alone).
func (uf *UserFunction) GetReturnType(lowerer StatementLowerer) *types.Type {
	if uf.returnTypeResolved {
		return uf.resolvedReturnType
	}
	uf.resolvedReturnType = uf.inferReturnType(lowerer)
	uf.returnTypeResolved = true
	return uf.resolvedReturnType
}

func (uf *UserFunction) inferReturnType(lowerer StatementLowerer) *types.Type {
	if lowerer == nil || len(uf.Statements) == 0 {
		return voidType
	}
	allConcrete := true
	for _, a := range uf.Args {
		if a.Type == nil || a.Type.Typename == "function" {
			allConcrete = false
			break
		}
	}
	if allConcrete {
		buf := microstatement.NewBuffer()
		fnScope := scope.New(uf.Defscope, nil)
		for _, a := range uf.Args {
			buf.Append(&microstatement.Microstatement{
				Kind: microstatement.REREF,
				OutputName: microstatement.NewSynthName(),
				OutputType: a.Type,
				Alias: a.Name,
			})
		}
		ok := true
		for _, stmt := range uf.Statements {
			if err := lowerer.LowerStatement(stmt, fnScope, buf); err != nil {
				ok = false
				break
			}
		}
		if ok {
			if last := buf.Last(); last != nil && last.OutputType != nil {
				return last.OutputType
			}
		}
	}
	if name, ok := leadingPrimitiveCallName(uf.Statements[0]); ok {
		fns := uf.Defscope.DeepGet(name).Functions
		if len(fns) > 0 {
			if rt, ok := fns[len(fns)-1].ReturnType().(*types.Type); ok {
				return rt
			}
		}
	}
	return voidType
}

var voidType = types.NewBuiltin("void")

// leadingPrimitiveCallName reports whether n's outermost form is a bare
// function call `name(...)`: a single Assignables element that is a
// BaseAssignableSeq whose first two elements are a Variable immediately
// followed by a FnCall.
func leadingPrimitiveCallName(n ast.Node) (string, bool) {
	outer, ok := n.(*ast.Assignables)
	if !ok || len(outer.Elements) != 1 {
		return "", false
	}
	seq, ok := outer.Elements[0].(*ast.BaseAssignableSeq)
	if !ok || len(seq.Elements) < 2 {
		return "", false
	}
	v, ok := seq.Elements[0].(*ast.Variable)
	if !ok {
		return "", false
	}
	if _, ok := seq.Elements[1].(*ast.FnCall); !ok {
		return "", false
	}
	return v.Name, true
}

// DispatchFn iterates candidates in scope-registration order and accepts
// the last one whose arity matches and whose every parameter type is
// satisfied by the actual argument type via TypeApplies; later, more
// specific declarations win ties deliberately.
func DispatchFn(candidates []scope.Callable, actualArgTypes []*types.Type, s *scope.Scope, pos token.Position) (scope.Callable, types.InterfaceMap, error) {
	var best scope.Callable
	var bestIM types.InterfaceMap
	for _, c := range candidates {
		formal := c.ArgTypes()
		if len(formal) != len(actualArgTypes) {
			continue
		}
		im := types.InterfaceMap{}
		ok := true
		for i, f := range formal {
			ft, isType := f.(*types.Type)
			if !isType || actualArgTypes[i] == nil {
				ok = false
				break
			}
			if !ft.TypeApplies(actualArgTypes[i], s, im) {
				ok = false
				break
			}
		}
		if ok {
			best = c
			bestIM = im
		}
	}
	if best == nil {
		return nil, nil, dispatchError(candidates, actualArgTypes, pos)
	}
	return best, bestIM, nil
}

func dispatchError(candidates []scope.Callable, actual []*types.Type, pos token.Position) error {
	names := make([]string, len(actual))
	for i, t := range actual {
		if t != nil {
			names[i] = t.Typename
		} else {
			names[i] = "?"
		}
	}
	sigs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		parts := make([]string, 0, len(c.ArgTypes()))
		for _, a := range c.ArgTypes() {
			parts = append(parts, a.TypeName())
		}
		sigs = append(sigs, fmt.Sprintf("(%s)", strings.Join(parts, ", ")))
	}
	name := ""
	if len(candidates) > 0 {
		name = candidates[0].Name()
	}
	return errors.NewDispatch(pos, name, names, sigs)
}
