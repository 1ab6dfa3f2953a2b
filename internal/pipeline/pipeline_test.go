package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/factstore"
)

func TestPipelineRunLowersAndRenders(t *testing.T) {
	functions := map[string][]ast.Node{
		"main": {
			ast.NewExit(ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1")))),
		},
	}
	ctx := NewContext("example", functions)
	p := New(NewLoweringStage(), &RenderStage{})
	result := p.Run(ctx)

	require.Empty(t, result.Errors)
	require.Contains(t, result.Rendered["main"], "fn main {")
	require.Contains(t, result.Rendered["main"], "return")
}

func TestPipelineRunCollectsErrorsWithoutAbortingOtherFunctions(t *testing.T) {
	functions := map[string][]ast.Node{
		"good": {ast.NewExit(ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1"))))},
		"bad": {&ast.Import{Path: "oops"}},
	}
	ctx := NewContext("example", functions)
	p := New(NewLoweringStage(), &RenderStage{})
	result := p.Run(ctx)

	require.NotEmpty(t, result.Errors)
	require.Contains(t, result.Rendered, "good")
	require.NotContains(t, result.Rendered, "bad")
}

func TestLoweringStageRecordsMicrostatementsWhenStoreIsSet(t *testing.T) {
	store, err := factstore.Open(filepath.Join(t.TempDir(), "run", "facts.db"))
	require.NoError(t, err)
	defer store.Close()

	functions := map[string][]ast.Node{
		"main": {
			ast.NewExit(ast.NewAssignables(ast.NewBaseAssignableSeq(ast.NewConstant("1")))),
		},
	}
	ctx := NewContext("example", functions)
	ctx.Store = store
	NewLoweringStage().Process(ctx)

	require.Empty(t, ctx.Errors)
}
