package lowering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

func TestFromEmitAstVoidEventNeedsNoValue(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	s.PutEvent("Tick", scope.Event{Name: "Tick", ValueType: types.NewBuiltin("void")})
	buf := microstatement.NewBuffer()

	err := g.fromEmitAst(ast.NewEmit("Tick", nil), s, buf)
	require.NoError(t, err)
	require.Equal(t, microstatement.EMIT, buf.Last().Kind)
	require.Equal(t, "Tick", buf.Last().OutputName)
	require.Empty(t, buf.Last().InputNames)
}

func TestFromEmitAstCastableValueSucceeds(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	s.PutEvent("Progress", scope.Event{Name: "Progress", ValueType: types.NewBuiltin("float64")})
	buf := microstatement.NewBuffer()

	err := g.fromEmitAst(ast.NewEmit("Progress", ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1")))), s, buf)
	require.NoError(t, err)
	require.Equal(t, microstatement.EMIT, buf.Last().Kind)
}

func TestFromEmitAstMismatchedValueIsTypeError(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	s.PutEvent("Progress", scope.Event{Name: "Progress", ValueType: types.NewBuiltin("int64")})
	buf := microstatement.NewBuffer()

	err := g.fromEmitAst(ast.NewEmit("Progress", ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant(`"oops"`)))), s, buf)
	require.Error(t, err)
}

func TestFromEmitAstUnknownEventIsLookupError(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	err := g.fromEmitAst(ast.NewEmit("Nowhere", nil), s, buf)
	require.Error(t, err)
}

func TestFromExitAstVoidReturnEmitsPlaceholder(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	err := g.fromExitAst(ast.NewExit(nil), s, buf)
	require.NoError(t, err)
	require.Equal(t, microstatement.EXIT, buf.Last().Kind)
	require.Equal(t, 2, buf.Len())
	require.Equal(t, []string{"void"}, buf.At(0).InputNames)
}

func TestFromExitAstReturnsLoweredExpressionValue(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	err := g.fromExitAst(ast.NewExit(ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("7")))), s, buf)
	require.NoError(t, err)
	last := buf.Last()
	require.Equal(t, microstatement.EXIT, last.Kind)
	require.Equal(t, buf.At(0).OutputName, last.OutputName)
}
