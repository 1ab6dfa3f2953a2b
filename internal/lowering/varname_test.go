package lowering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

func TestFromVarNameFindsDirectOutputName(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()
	int64T := types.NewBuiltin("int64")
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_c1", OutputType: int64T})

	m, ok := g.fromVarName("_c1", s, buf)
	require.True(t, ok)
	require.Equal(t, "_c1", m.OutputName)
}

func TestFromVarNameFollowsAliasToOrigin(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()
	int64T := types.NewBuiltin("int64")
	buf.Append(&microstatement.Microstatement{Kind: microstatement.CONSTDEC, OutputName: "_c1", OutputType: int64T})
	buf.Append(&microstatement.Microstatement{Kind: microstatement.REREF, OutputName: "_r1", InputNames: []string{"_c1"}, Alias: "x"})

	m, ok := g.fromVarName("x", s, buf)
	require.True(t, ok)
	require.Equal(t, "_c1", m.OutputName)
}

func TestFromVarNameMissingReturnsFalse(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	m, ok := g.fromVarName("nowhere", s, buf)
	require.False(t, ok)
	require.Nil(t, m)
}

func TestFromVarNameLowersModuleConstantOnFirstReference(t *testing.T) {
	g := New()
	root := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	decl := ast.NewConstDecl("answer", nil, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("42"))))
	root.PutConstant("answer", scope.ConstantDecl{Name: "answer", Node: decl, OriginScope: root})

	m, ok := g.fromVarName("answer", root, buf)
	require.True(t, ok)
	require.Equal(t, "int64", m.OutputType.Typename)

	last := buf.Last()
	require.Equal(t, microstatement.REREF, last.Kind)
	require.Equal(t, "answer", last.Alias)
}
