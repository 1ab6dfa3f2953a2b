package userfunc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

func TestMaybeTransformLeavesPlainBodyUntouched(t *testing.T) {
	uf := identityFn()
	specialized, err := uf.MaybeTransform(types.InterfaceMap{}, scope.New(nil, nil))
	require.NoError(t, err)
	require.Same(t, uf, specialized)
}

func TestMaybeTransformRewritesObjectLiteralTypeThroughInterfaceMap(t *testing.T) {
	baseT := types.NewInterfaceType("Base", nil)
	derivedT := types.NewRecord("Derived", nil, nil)
	im := types.InterfaceMap{baseT: derivedT}

	uf := New("make", nil, nil, []ast.Node{
		ast.NewObjectLiteral("Base", nil, nil),
	}, scope.New(nil, nil), true)

	specialized, err := uf.MaybeTransform(im, scope.New(nil, nil))
	require.NoError(t, err)
	require.NotSame(t, uf, specialized)

	lit, ok := specialized.Statements[0].(*ast.ObjectLiteral)
	require.True(t, ok)
	require.Equal(t, "Derived", lit.TypeName)
}

func TestMaybeTransformRewritesConditionalIntoCondCall(t *testing.T) {
	uf := New("branchy", nil, nil, []ast.Node{
		ast.NewConditional([]ast.ConditionalBranch{
			{
				Condition: ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("true"))),
				Body: []ast.Node{ast.NewExit(ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1"))))},
			},
		}),
	}, scope.New(nil, nil), true)

	specialized, err := uf.MaybeTransform(types.InterfaceMap{}, scope.New(nil, nil))
	require.NoError(t, err)

	// threadDidNotReturn kicks in because the branch contains a return:
	// retNotSet, retVal, the branch's cond call, then a single trailing
	// return retVal.
	require.Len(t, specialized.Statements, 4)
	require.IsType(t, &ast.LetDecl{}, specialized.Statements[0])
	require.IsType(t, &ast.LetDecl{}, specialized.Statements[1])
	require.IsType(t, &ast.BaseAssignableSeq{}, specialized.Statements[2])
	exit, ok := specialized.Statements[3].(*ast.Exit)
	require.True(t, ok)
	v, ok := exit.Value.(*ast.Variable)
	require.True(t, ok)
	require.Equal(t, "retVal", v.Name)
}

func TestRewriteConditionalsThreadsNestedReturnIntoClosureBody(t *testing.T) {
	branch := ast.ConditionalBranch{
		Condition: ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("true"))),
		Body:      []ast.Node{ast.NewExit(ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1"))))},
	}
	stmts := []ast.Node{ast.NewConditional([]ast.ConditionalBranch{branch})}

	out, anyReturned := rewriteConditionals(stmts)
	require.True(t, anyReturned)
	require.Len(t, out, 1)

	seq, ok := out[0].(*ast.BaseAssignableSeq)
	require.True(t, ok)
	require.Len(t, seq.Elements, 2)
	call, ok := seq.Elements[1].(*ast.FnCall)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	lit, ok := call.Args[1].(*ast.FunctionLiteral)
	require.True(t, ok)

	body := lit.Def.Statements
	require.Len(t, body, 2)
	assign1, ok := body[0].(*ast.Assignment)
	require.True(t, ok)
	require.Equal(t, []string{"retVal"}, assign1.Path)
	assign2, ok := body[1].(*ast.Assignment)
	require.True(t, ok)
	require.Equal(t, []string{"retNotSet"}, assign2.Path)

	for _, s := range body {
		_, isExit := s.(*ast.Exit)
		require.False(t, isExit, "return must be rewritten, not left as a bare discarded Exit inside the cond closure")
	}
}

func TestMaybeTransformRewritesObjectLiteralTypeNestedInReturn(t *testing.T) {
	baseT := types.NewInterfaceType("Base", nil)
	derivedT := types.NewRecord("Derived", nil, nil)
	im := types.InterfaceMap{baseT: derivedT}

	uf := New("makeAndReturn", nil, nil, []ast.Node{
		ast.NewExit(ast.NewAssignables(ast.NewBaseAssignableSeq(
			ast.NewObjectLiteral("Base", nil, nil),
		))),
		// Sibling conditional also forces needsTransform, the same way
		// TestMaybeTransformWrapsLetDeclRHSInRef does.
		ast.NewConditional([]ast.ConditionalBranch{{
			Condition: ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("true"))),
			Body:      nil,
		}}),
	}, scope.New(nil, nil), true)

	specialized, err := uf.MaybeTransform(im, scope.New(nil, nil))
	require.NoError(t, err)

	exit, ok := specialized.Statements[0].(*ast.Exit)
	require.True(t, ok)
	assignables, ok := exit.Value.(*ast.Assignables)
	require.True(t, ok)
	seq, ok := assignables.Elements[0].(*ast.BaseAssignableSeq)
	require.True(t, ok)
	lit, ok := seq.Elements[0].(*ast.ObjectLiteral)
	require.True(t, ok)
	require.Equal(t, "Derived", lit.TypeName)
}

func TestMaybeTransformWrapsLetDeclRHSInRef(t *testing.T) {
	uf := New("withlet", nil, nil, []ast.Node{
		// Trigger needsTransform via a sibling conditional so the let
		// declaration also passes through wrapAssignmentRHSInRef.
		ast.NewLetDecl("y", nil, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1")))),
		ast.NewConditional([]ast.ConditionalBranch{{Condition: ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("true"))), Body: nil}}),
	}, scope.New(nil, nil), true)

	specialized, err := uf.MaybeTransform(types.InterfaceMap{}, scope.New(nil, nil))
	require.NoError(t, err)

	letDecl, ok := specialized.Statements[0].(*ast.LetDecl)
	require.True(t, ok)
	seq, ok := letDecl.Value.(*ast.BaseAssignableSeq)
	require.True(t, ok)
	v, ok := seq.Elements[0].(*ast.Variable)
	require.True(t, ok)
	require.Equal(t, "ref", v.Name)
}
