package lowering

import (
	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/primitives"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
	"github.com/alantech/irgen/internal/userfunc"
)

// accumulator tracks the running value of a base-assignable chain as the
// state machine in fromBaseAssignableAst table advances:
// either a resolved value (a microstatement), a Scope (for `mod.fn`
// scoped calls), or a bare identifier awaiting the next element to decide
// what it means.
type accumulator struct {
	value *microstatement.Microstatement
	scopeVal *scope.Scope
	pendingVar string
}

// fromBaseAssignableAst drives the state machine of over one
// flat chain of base-assignable elements (variable, dot, fn-call,
// array-access, object-literal, constant, group), returning the
// microstatement standing for the chain's final value.
func (g *Generator) fromBaseAssignableAst(seq *ast.BaseAssignableSeq, s *scope.Scope, buf *microstatement.Buffer) (*microstatement.Microstatement, error) {
	var acc accumulator
	elems := seq.Elements

	for i := 0; i < len(elems); i++ {
		el := elems[i]
		switch n := el.(type) {
		case *ast.Variable:
			if err := g.stepVariable(n, i, elems, s, buf, &acc); err != nil {
				return nil, err
			}
		case *ast.Dot:
			if err := g.stepDot(n, i, elems, s, buf, &acc); err != nil {
				return nil, err
			}
		case *ast.FnCall:
			if err := g.stepCall(n, s, buf, &acc); err != nil {
				return nil, err
			}
		case *ast.ArrAccess:
			if err := g.stepArrAccess(n, s, buf, &acc); err != nil {
				return nil, err
			}
		case *ast.Constant:
			acc.value = g.fromConstantsAst(n, s, buf)
		case *ast.Group:
			inner, ok := n.Inner.(*ast.Assignables)
			if !ok {
				return nil, errors.NewSyntax(n.Pos(), "group body must be an expression")
			}
			v, err := g.fromAssignablesAst(inner, s, buf)
			if err != nil {
				return nil, err
			}
			acc.value = v
		case *ast.ObjectLiteral:
			v, err := g.fromObjectLiteralAst(n, s, buf)
			if err != nil {
				return nil, err
			}
			acc.value = v
		case *ast.ArrayLiteral:
			v, err := g.fromArrayLiteralAst(n, s, buf)
			if err != nil {
				return nil, err
			}
			acc.value = v
		default:
			return nil, errors.NewSyntax(el.Pos(), "unsupported base-assignable element")
		}
	}

	if acc.pendingVar != "" {
		// A bare trailing identifier with nothing after it: direct load.
		v, found := g.fromVarName(acc.pendingVar, s, buf)
		if !found {
			return nil, errors.NewLookup(seq.Pos(), acc.pendingVar)
		}
		acc.value = v
	}
	if acc.value == nil {
		return nil, errors.NewSyntax(seq.Pos(), "empty base-assignable chain")
	}
	return acc.value, nil
}

// stepVariable handles a bare identifier. If immediately followed by a
// FnCall, it applies as a function call now (consuming that FnCall from
// the chain is done by the caller loop naturally reaching it next, so
// here we just decide what kind of call it will be once we see it);
// otherwise it is a scoped identifier, a field access on the current
// accumulator, or a direct variable load.
func (g *Generator) stepVariable(n *ast.Variable, i int, elems []ast.Node, s *scope.Scope, buf *microstatement.Buffer, acc *accumulator) error {
	if _, ok := peekFnCall(elems, i); ok {
		acc.pendingVar = n.Name
		return nil
	}

	if acc.value != nil {
		// Field access on the current accumulator value.
		t := acc.value.OutputType
		if t == nil {
			return errors.NewLookup(n.Pos(), n.Name)
		}
		_, idx, ok := t.Property(n.Name)
		if !ok {
			return errors.NewLookup(n.Pos(), n.Name)
		}
		acc.value = emitFieldAccess(buf, acc.value, idx, t)
		return nil
	}

	if sub := scopeChild(s, n.Name); sub != nil {
		acc.scopeVal = sub
		return nil
	}

	v, found := g.fromVarName(n.Name, s, buf)
	if !found {
		acc.pendingVar = n.Name
		return nil
	}
	acc.value = v
	return nil
}

func peekFnCall(elems []ast.Node, i int) (*ast.FnCall, bool) {
	if i+1 >= len(elems) {
		return nil, false
	}
	call, ok := elems[i+1].(*ast.FnCall)
	return call, ok
}

// scopeChild is the hook for resolving name as a nested module scope.
// Module resolution is left to an external collaborator, and Scope has no
// child-scope table, so it always returns nil: a bare identifier is never
// treated as a scope here.
func scopeChild(s *scope.Scope, name string) *scope.Scope {
	return nil
}

func emitFieldAccess(buf *microstatement.Buffer, base *microstatement.Microstatement, idx int, ownerType *types.Type) *microstatement.Microstatement {
	idxName := microstatement.NewSynthName()
	buf.Append(&microstatement.Microstatement{
		Kind: microstatement.CONSTDEC,
		OutputName: idxName,
		OutputType: types.NewBuiltin("int64"),
		InputNames: []string{itoaDecimal(idx)},
	})
	outputName := microstatement.NewSynthName()
	m := &microstatement.Microstatement{
		Kind: microstatement.CONSTDEC,
		OutputName: outputName,
		OutputType: ownerType.Properties[idx].Type,
		InputNames: []string{base.OutputName, idxName},
	}
	if fns, ok := primitives.Lookup("register"); ok && len(fns) > 0 {
		m.Callees = []scope.Callable{fns[len(fns)-1]}
	}
	buf.Append(m)
	return m
}

func itoaDecimal(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	if neg {
		return "-" + digits
	}
	return digits
}

// stepDot folds a `.name` segment: a field access (handled the same as
// stepVariable's field-access branch) when nothing call-shaped follows,
// otherwise the pending name of a method-style call.
func (g *Generator) stepDot(n *ast.Dot, i int, elems []ast.Node, s *scope.Scope, buf *microstatement.Buffer, acc *accumulator) error {
	if acc.value == nil {
		return errors.NewSyntax(n.Pos(), "dot access with no preceding value")
	}
	if _, ok := peekFnCall(elems, i); ok {
		acc.pendingVar = n.Name
		return nil
	}
	t := acc.value.OutputType
	if t == nil {
		return errors.NewLookup(n.Pos(), n.Name)
	}
	_, idx, ok := t.Property(n.Name)
	if !ok {
		// Not a field: treat as a pending method-style call name, folded
		// into the chain per "method-sep" shape.
		acc.pendingVar = n.Name
		return nil
	}
	acc.value = emitFieldAccess(buf, acc.value, idx, t)
	return nil
}

// stepCall implements the three call-shape rules of: a plain
// function call in the current scope; a scoped call when the
// accumulator holds a Scope; or a method-style call (`x.f(y)` ≡
// `f(x, y)`) when the accumulator holds a value and the pending name came
// from a Dot immediately before this FnCall.
func (g *Generator) stepCall(n *ast.FnCall, s *scope.Scope, buf *microstatement.Buffer, acc *accumulator) error {
	name := acc.pendingVar
	acc.pendingVar = ""

	args := make([]*microstatement.Microstatement, 0, len(n.Args)+1)
	if acc.value != nil && name != "" {
		// Method-style: the accumulator becomes the first argument.
		args = append(args, acc.value)
		acc.value = nil
	}
	for _, argNode := range n.Args {
		seq, ok := argNode.(*ast.Assignables)
		if !ok {
			return errors.NewSyntax(argNode.Pos(), "call argument must be an expression")
		}
		v, err := g.fromAssignablesAst(seq, s, buf)
		if err != nil {
			return err
		}
		args = append(args, v)
	}

	lookupScope := s
	if acc.scopeVal != nil {
		lookupScope = acc.scopeVal
		acc.scopeVal = nil
	}

	candidates := lookupScope.DeepGet(name).Functions
	if len(candidates) == 0 {
		return errors.NewLookup(n.Pos(), name)
	}
	actualTypes := make([]*types.Type, len(args))
	actualNames := make([]string, len(args))
	for i, a := range args {
		actualTypes[i] = a.OutputType
		actualNames[i] = a.OutputName
	}

	chosen, im, err := userfunc.DispatchFn(candidates, actualTypes, s, n.Pos())
	if err != nil {
		return err
	}

	outputName := microstatement.NewSynthName()
	switch fn := chosen.(type) {
	case *userfunc.UserFunction:
		if err := fn.MicrostatementInlining(actualNames, s, buf, g, n.Pos()); err != nil {
			return err
		}
		acc.value = buf.Last()
	case *primitives.Primitive:
		m, err := fn.Inline(buf, outputName, fn.RetType, args)
		if err != nil {
			return err
		}
		if fn.RetType != nil {
			m.OutputType = rewriteInterfaceMapType(fn.RetType, im)
		}
		acc.value = m
	default:
		acc.value = callPrimitive(outputName, args, buf)
	}
	return nil
}

// rewriteInterfaceMapType resolves a declared return type through the
// per-call interface map dispatchFn built while matching argument types,
// the same substitution UserFunction.MicrostatementInlining applies to
// user-function calls (Realize).
func rewriteInterfaceMapType(declared *types.Type, im types.InterfaceMap) *types.Type {
	if im == nil {
		return declared
	}
	if concrete, ok := im[declared]; ok {
		return concrete
	}
	return declared.Realize(im, nil)
}

// callPrimitive is the fallback for a resolved callable this package
// doesn't specifically recognize: a plain CALL-shaped CONSTDEC naming
// the callee's output by position only.
func callPrimitive(outputName string, args []*microstatement.Microstatement, buf *microstatement.Buffer) *microstatement.Microstatement {
	inputs := make([]string, len(args))
	for i, a := range args {
		inputs[i] = a.OutputName
	}
	m := &microstatement.Microstatement{
		Kind: microstatement.CONSTDEC,
		OutputName: outputName,
		InputNames: inputs,
	}
	buf.Append(m)
	return m
}

// stepArrAccess implements array-access lowering: wrap an
// int64 index into a Result<int64> via okR, call resfrom against the
// array and index, retype the output to Result<ElementType>.
func (g *Generator) stepArrAccess(n *ast.ArrAccess, s *scope.Scope, buf *microstatement.Buffer, acc *accumulator) error {
	if acc.value == nil {
		return errors.NewSyntax(n.Pos(), "array access with no preceding array value")
	}
	idxSeq, ok := n.Index.(*ast.Assignables)
	if !ok {
		return errors.NewSyntax(n.Pos(), "array index must be an expression")
	}
	idx, err := g.fromAssignablesAst(idxSeq, s, buf)
	if err != nil {
		return err
	}

	arr := acc.value
	var elemType *types.Type
	if arr.OutputType != nil && len(arr.OutputType.GenericArgs) == 1 {
		elemType = arr.OutputType.GenericArgs[0]
	}
	retType := resultOf(elemType, s)

	wrappedName := microstatement.NewSynthName()
	appendPrimitiveCall(s, buf, microstatement.CONSTDEC, "okR", wrappedName, resultOf(types.NewBuiltin("int64"), s), []string{idx.OutputName})

	outputName := microstatement.NewSynthName()
	m := appendPrimitiveCall(s, buf, microstatement.CALL, "resfrom", outputName, retType, []string{arr.OutputName, wrappedName})
	acc.value = m
	return nil
}

// resultTemplate is the Result<T> template array-access lowering
// solidifies against, shared across calls the same way arrayLiteralTemplate
// is in literals.go.
var resultTemplate = &types.Type{Typename: "Result", BuiltIn: true, Generics: map[string]int{"T": 0}}

func resultOf(elem *types.Type, s *scope.Scope) *types.Type {
	if elem == nil {
		elem = types.NewBuiltin("void")
	}
	return resultTemplate.Solidify([]*types.Type{elem}, s)
}
