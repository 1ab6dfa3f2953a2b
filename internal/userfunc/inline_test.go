package userfunc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/token"
	"github.com/alantech/irgen/internal/types"
)

// fakeStatementLowerer understands exactly one shape -- `return <bareVar>`
// -- enough to drive MicrostatementInlining/GetReturnType without pulling
// in the real microstatement generator (which is the one package allowed
// to depend back on this one).
type fakeStatementLowerer struct{}

func (fakeStatementLowerer) LowerStatement(node ast.Node, s *scope.Scope, buf *microstatement.Buffer) error {
	exit, ok := node.(*ast.Exit)
	if !ok {
		return errors.NewSyntax(node.Pos(), "fake lowerer only understands return statements")
	}
	seq, ok := exit.Value.(*ast.Assignables)
	if !ok || len(seq.Elements) != 1 {
		return errors.NewSyntax(node.Pos(), "expected a single-variable return")
	}
	baseSeq, ok := seq.Elements[0].(*ast.BaseAssignableSeq)
	if !ok || len(baseSeq.Elements) != 1 {
		return errors.NewSyntax(node.Pos(), "expected a bare variable")
	}
	v, ok := baseSeq.Elements[0].(*ast.Variable)
	if !ok {
		return errors.NewSyntax(node.Pos(), "expected a variable")
	}
	m, idx := buf.FindByOutputNameFrom(buf.Len(), v.Name)
	if m == nil {
		return errors.NewLookup(node.Pos(), v.Name)
	}
	origin, _ := buf.OriginOf(m, idx)
	buf.Append(&microstatement.Microstatement{Kind: microstatement.EXIT, OutputName: origin.OutputName, OutputType: origin.OutputType})
	return nil
}

func identityFn() *UserFunction {
	int64T := types.NewBuiltin("int64")
	defscope := scope.New(nil, nil)
	return New("identity", []Argument{{Name: "x", Type: int64T}}, nil, []ast.Node{
		ast.NewExit(ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewVariable("x")))),
	}, defscope, true)
}

func TestMicrostatementInliningBindsArgumentAndReturnsIt(t *testing.T) {
	uf := identityFn()
	int64T := types.NewBuiltin("int64")
	callScope := scope.New(nil, nil)
	buf := microstatement.NewBuffer()
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_actual", OutputType: int64T, InputNames: []string{"42"}})

	err := uf.MicrostatementInlining([]string{"_actual"}, callScope, buf, fakeStatementLowerer{}, token.Position{})
	require.NoError(t, err)

	last := buf.Last()
	require.Equal(t, microstatement.EXIT, last.Kind)
	require.Equal(t, "_actual", last.OutputName)

	for i := 0; i < buf.Len(); i++ {
		require.NotEqual(t, microstatement.ENTERFN, buf.At(i).Kind)
		require.NotEqual(t, microstatement.REREF, buf.At(i).Kind)
	}
}

func TestMicrostatementInliningDetectsDirectRecursion(t *testing.T) {
	uf := identityFn()
	buf := microstatement.NewBuffer()
	buf.Append(&microstatement.Microstatement{Kind: microstatement.ENTERFN, OutputName: "_marker", FnMarker: uf})
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_actual", OutputType: types.NewBuiltin("int64")})

	err := uf.MicrostatementInlining([]string{"_actual"}, scope.New(nil, nil), buf, fakeStatementLowerer{}, token.Position{})
	require.Error(t, err)
	ce, ok := err.(*errors.CompileError)
	require.True(t, ok)
	require.Equal(t, errors.Recursion, ce.ErrKind)
}

func TestMicrostatementInliningMissingActualIsLookupError(t *testing.T) {
	uf := identityFn()
	buf := microstatement.NewBuffer()

	err := uf.MicrostatementInlining([]string{"_nowhere"}, scope.New(nil, nil), buf, fakeStatementLowerer{}, token.Position{})
	require.Error(t, err)
}
