package lowering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/primitives"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

func TestFromBaseAssignableAstDirectVariableLoad(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()
	int64T := types.NewBuiltin("int64")
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_c1", OutputType: int64T})

	seq := ast.NewBaseAssignableSeq(ast.NewVariable("_c1"))
	m, err := g.fromBaseAssignableAst(seq, s, buf)
	require.NoError(t, err)
	require.Equal(t, "_c1", m.OutputName)
}

func TestFromBaseAssignableAstFieldAccessViaDot(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	pointT := types.NewRecord("Point", []types.Property{
		{Name: "x", Type: types.NewBuiltin("int64")},
		{Name: "y", Type: types.NewBuiltin("int64")},
	}, nil)
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_p", OutputType: pointT})

	seq := ast.NewBaseAssignableSeq(ast.NewVariable("_p"), ast.NewDot("y"))
	m, err := g.fromBaseAssignableAst(seq, s, buf)
	require.NoError(t, err)
	require.Equal(t, "int64", m.OutputType.Typename)
	require.Len(t, m.InputNames, 2)
	require.Equal(t, "_p", m.InputNames[0])
}

func TestFromBaseAssignableAstUnknownFieldIsLookupError(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()
	pointT := types.NewRecord("Point", []types.Property{{Name: "x", Type: types.NewBuiltin("int64")}}, nil)
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_p", OutputType: pointT})

	seq := ast.NewBaseAssignableSeq(ast.NewVariable("_p"), ast.NewDot("z"))
	_, err := g.fromBaseAssignableAst(seq, s, buf)
	require.Error(t, err)
}

func TestFromBaseAssignableAstPlainFunctionCallDispatchesPrimitive(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	primitives.InstallInto(s)
	buf := microstatement.NewBuffer()
	int64T := types.NewBuiltin("int64")
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_a", OutputType: int64T, InputNames: []string{"1"}})
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_b", OutputType: int64T, InputNames: []string{"2"}})

	seq := ast.NewBaseAssignableSeq(
		ast.NewVariable("addi64"),
		ast.NewFnCall(
			ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewVariable("_a"))),
			ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewVariable("_b"))),
		),
	)
	m, err := g.fromBaseAssignableAst(seq, s, buf)
	require.NoError(t, err)
	require.Equal(t, "int64", m.OutputType.Typename)
	require.Len(t, m.Callees, 1)
	require.Equal(t, "addi64", m.Callees[0].Name())
}

func TestFromBaseAssignableAstArrAccessWrapsIndexAndCallsResfrom(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	primitives.InstallInto(s)
	buf := microstatement.NewBuffer()
	arrT := &types.Type{Typename: "Array<int64>", GenericArgs: []*types.Type{types.NewBuiltin("int64")}}
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_arr", OutputType: arrT})
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_idx", OutputType: types.NewBuiltin("int64"), InputNames: []string{"0"}})

	seq := ast.NewBaseAssignableSeq(
		ast.NewVariable("_arr"),
		ast.NewArrAccess(ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewVariable("_idx")))),
	)
	m, err := g.fromBaseAssignableAst(seq, s, buf)
	require.NoError(t, err)
	require.Equal(t, "Result<int64>", m.OutputType.Typename)

	last := buf.Last()
	require.Same(t, m, last)
	require.Equal(t, microstatement.CALL, m.Kind)
	require.Len(t, m.Callees, 1)
	require.Equal(t, "resfrom", m.Callees[0].Name())
}

func TestFromBaseAssignableAstEmptyChainIsSyntaxError(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()
	seq := ast.NewBaseAssignableSeq()
	_, err := g.fromBaseAssignableAst(seq, s, buf)
	require.Error(t, err)
}
