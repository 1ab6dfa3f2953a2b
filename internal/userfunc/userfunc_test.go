package userfunc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/token"
	"github.com/alantech/irgen/internal/types"
)

type fakePrimitive struct {
	name string
	args []*types.Type
	ret *types.Type
}

func (f *fakePrimitive) Name() string { return f.name }
func (f *fakePrimitive) ArgTypes() []scope.TypeEntity {
	out := make([]scope.TypeEntity, len(f.args))
	for i, a := range f.args {
		out[i] = a
	}
	return out
}
func (f *fakePrimitive) ReturnType() scope.TypeEntity { return f.ret }

func TestDispatchFnLastWins(t *testing.T) {
	int64T := types.NewBuiltin("int64")
	s := scope.New(nil, nil)

	first := &fakePrimitive{name: "f", args: []*types.Type{int64T}, ret: int64T}
	second := &fakePrimitive{name: "f", args: []*types.Type{int64T}, ret: int64T}

	chosen, _, err := DispatchFn([]scope.Callable{first, second}, []*types.Type{int64T}, s, token.Position{})
	require.NoError(t, err)
	require.Same(t, second, chosen)
}

func TestDispatchFnNoMatchReturnsDispatchError(t *testing.T) {
	int64T := types.NewBuiltin("int64")
	stringT := types.NewBuiltin("string")
	s := scope.New(nil, nil)

	fn := &fakePrimitive{name: "f", args: []*types.Type{int64T}, ret: int64T}
	_, _, err := DispatchFn([]scope.Callable{fn}, []*types.Type{stringT}, s, token.Position{})
	require.Error(t, err)
	ce, ok := err.(*errors.CompileError)
	require.True(t, ok)
	require.Equal(t, errors.Dispatch, ce.ErrKind)
}

func TestDispatchFnBindsInterfaceMapFromGenericStandin(t *testing.T) {
	elem := types.NewGenericStandin("T")
	int64T := types.NewBuiltin("int64")
	s := scope.New(nil, nil)

	fn := &fakePrimitive{name: "identity", args: []*types.Type{elem}, ret: elem}
	_, im, err := DispatchFn([]scope.Callable{fn}, []*types.Type{int64T}, s, token.Position{})
	require.NoError(t, err)
	require.Equal(t, int64T, im[elem])
}

func TestGetReturnTypeExplicitAnnotation(t *testing.T) {
	stringT := types.NewBuiltin("string")
	uf := New("f", nil, stringT, nil, scope.New(nil, nil), true)
	require.Equal(t, stringT, uf.GetReturnType(nil))
}

func TestGetReturnTypeVoidFallbackWithoutLowerer(t *testing.T) {
	uf := New("f", nil, nil, nil, scope.New(nil, nil), true)
	require.Equal(t, "void", uf.GetReturnType(nil).Typename)
}
