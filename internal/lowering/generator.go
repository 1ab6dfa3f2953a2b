// Package lowering implements the microstatement generator: a family of
// cooperating procedures that each take a parse-tree node, a scope, and
// the growing microstatement buffer, and append zero or more
// microstatements. It is the top of the core's dependency chain: it is
// the only package allowed to depend on userfunc, since it is the one
// place the call-site inliner (UserFunction.MicrostatementInlining)
// needs a concrete statement lowerer to recurse back into.
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

// Generator owns no state of its own; every method is a pure function of
// its arguments. Nothing is shared between modules other than the
// primitive-registry scope and the built-in Type catalog.
type Generator struct{}

// New returns a Generator. A fresh prelude Scope should be built with
// NewPrelude for each module compiled.
func New() *Generator { return &Generator{} }

// NewPrelude builds a root Scope with every catalog primitive installed
// as a function overload under its own name; no operator symbols are
// bound.
func NewPrelude() *scope.Scope {
	root := scope.New(nil, nil)
	primitives.InstallInto(root)
	return root
}

// LowerStatement implements userfunc.StatementLowerer: dispatch on the
// concrete statement node type and append whatever microstatements
// result to buf.
func (g *Generator) LowerStatement(node ast.Node, s *scope.Scope, buf *microstatement.Buffer) error {
	switch n := node.(type) {
	case *ast.ConstDecl:
		return g.fromConstdeclarationAst(n, s, buf)
	case *ast.LetDecl:
		return g.fromLetdeclarationAst(n, s, buf)
	case *ast.Assignment:
		return g.fromAssignmentsAst(n, s, buf)
	case *ast.Emit:
		return g.fromEmitAst(n, s, buf)
	case *ast.Exit:
		return g.fromExitAst(n, s, buf)
	case *ast.Assignables:
		_, err := g.fromAssignablesAst(n, s, buf)
		return err
	case *ast.Conditional:
		return g.fromConditionalAst(n, s, buf)
	default:
		return errors.NewSyntax(node.Pos(), "unsupported top-level statement shape")
	}
}

var _ userfunc.StatementLowerer = (*Generator)(nil)

// fromConditionalAst lowers a bare conditional statement that
// UserFunction.MaybeTransform has not (yet) rewritten into cond(...)
// calls -- used when LowerStatement is invoked directly against
// unrewritten source, e.g. by GetReturnType's throwaway-buffer probe.
func (g *Generator) fromConditionalAst(n *ast.Conditional, s *scope.Scope, buf *microstatement.Buffer) error {
	for _, branch := range n.Branches {
		branchScope := scope.New(s, nil)
		for _, stmt := range branch.Body {
			if err := g.LowerStatement(stmt, branchScope, buf); err != nil {
				return err
			}
		}
	}
	return nil
}

// lookupType type-asserts a scope.TypeEntity back to *types.Type, the
// boundary every lowering procedure crosses when reading a stored type.
func lookupType(e scope.TypeEntity) *types.Type {
	if e == nil {
		return nil
	}
	t, _ := e.(*types.Type)
	return t
}

// appendPrimitiveCall builds a CONSTDEC/CALL microstatement naming a
// catalog primitive directly by name (bypassing dispatchFn), used by the
// literal- and assignment-lowering helpers for the fixed internal
// primitives (newarr, pusharr, copytof, copytov) that implement those
// constructs rather than something user source ever calls by overload
// resolution.
func appendPrimitiveCall(s *scope.Scope, buf *microstatement.Buffer, kind microstatement.Kind, primName, outputName string, outputType *types.Type, inputs []string) *microstatement.Microstatement {
	m := &microstatement.Microstatement{
		Kind: kind,
		OutputName: outputName,
		OutputType: outputType,
		InputNames: inputs,
	}
	if fns := s.DeepGet(primName).Functions; len(fns) > 0 {
		m.Callees = []scope.Callable{fns[len(fns)-1]}
	}
	buf.Append(m)
	return m
}
