package lowering

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
)

func TestFromLetdeclarationAstAppendsAliasedLetdec(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	decl := ast.NewLetDecl("count", nil, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("0"))))
	err := g.fromLetdeclarationAst(decl, s, buf)
	require.NoError(t, err)

	require.Equal(t, microstatement.LETDEC, buf.At(0).Kind)
	last := buf.Last()
	require.Equal(t, microstatement.REREF, last.Kind)
	require.Equal(t, "count", last.Alias)

	alias, ok := s.GetAlias("count")
	require.True(t, ok)
	require.Equal(t, buf.At(0).OutputName, alias.OutputName)
}

func TestFromConstdeclarationAstDoesNotMutateRhsKind(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	decl := ast.NewConstDecl("total", nil, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1"))))
	err := g.fromConstdeclarationAst(decl, s, buf)
	require.NoError(t, err)
	require.Equal(t, microstatement.CONSTDEC, buf.At(0).Kind)
}

func TestFromAssignmentsAstReassignsLetBinding(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	letDecl := ast.NewLetDecl("count", nil, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("0"))))
	require.NoError(t, g.fromLetdeclarationAst(letDecl, s, buf))

	assign := ast.NewAssignment([]string{"count"}, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1"))))
	err := g.fromAssignmentsAst(assign, s, buf)
	require.NoError(t, err)

	last := buf.Last()
	require.Equal(t, microstatement.ASSIGNMENT, last.Kind)
	require.Equal(t, buf.At(0).OutputName, last.OutputName)
}

func TestFromAssignmentsAstRejectsConstTarget(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	constDecl := ast.NewConstDecl("total", nil, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1"))))
	require.NoError(t, g.fromConstdeclarationAst(constDecl, s, buf))

	assign := ast.NewAssignment([]string{"total"}, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("2"))))
	err := g.fromAssignmentsAst(assign, s, buf)
	require.Error(t, err)
	ce, ok := err.(*errors.CompileError)
	require.True(t, ok)
	require.Equal(t, errors.Reassignment, ce.ErrKind)
}

func TestFromAssignmentsAstUnknownTargetIsLookupError(t *testing.T) {
	g := New()
	s := scope.New(nil, nil)
	buf := microstatement.NewBuffer()

	assign := ast.NewAssignment([]string{"nowhere"}, ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("2"))))
	err := g.fromAssignmentsAst(assign, s, buf)
	require.Error(t, err)
}
