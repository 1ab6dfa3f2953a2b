package primitives

import (
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

// returnRule computes the return type of an array primitive that needs a
// custom inliner: at inlining time it derives the return type from the
// closure argument's already-realized return type (the closure's
// signature -- element-only, zero-arg, or element+index -- having been
// chosen by the caller, before the closure microstatement reaches here).
type returnRule func(arrElem, closureRet *types.Type) *types.Type

func elementReturn(arrElem, closureRet *types.Type) *types.Type { return closureRet }
func arrayOfClosureReturn(arrElem, closureRet *types.Type) *types.Type {
	return arrayOf(closureRet)
}
func unchangedArrayReturn(arrElem, closureRet *types.Type) *types.Type {
	return arrayOf(arrElem)
}
func boolReturn(arrElem, closureRet *types.Type) *types.Type { return builtinType("bool") }

func init() {
	registerHigherOrderArray("map", arrayOfClosureReturn)
	registerHigherOrderArray("mapl", arrayOfClosureReturn)
	registerHigherOrderArray("each", unchangedArrayReturn)
	registerHigherOrderArray("eachl", unchangedArrayReturn)
	registerHigherOrderArray("find", elementReturn)
	registerHigherOrderArray("findl", elementReturn)
	registerHigherOrderArray("every", boolReturn)
	registerHigherOrderArray("some", boolReturn)
	registerHigherOrderArray("filter", unchangedArrayReturn)
	registerHigherOrderArray("filterl", unchangedArrayReturn)
	registerHigherOrderArray("seqeach", unchangedArrayReturn)
	registerHigherOrderArray("reducel", elementReturn)
	registerHigherOrderArray("reducep", elementReturn)
	registerHigherOrderArray("foldl", elementReturn)
	registerHigherOrderArray("foldp", elementReturn)
}

// registerHigherOrderArray wires one (arr, closure) -> T primitive whose
// true return type is computed by rule from the closure's own realized
// return type, rather than declared up front.
func registerHigherOrderArray(name string, rule returnRule) {
	p := &Primitive{
		PrimName: name,
		ArgNames: []string{"arr", "fn"},
		ArgTypeVals: []*types.Type{arrayOf(genericElem), builtinType("function")},
		RetType: nil, // computed per call site by the inliner below
		Pure: false,
	}
	p.Inline = func(buf *microstatement.Buffer, outputName string, outputType *types.Type, args []*microstatement.Microstatement) (*microstatement.Microstatement, error) {
		if len(args) != 2 {
			return nil, errArity(name, 2, len(args))
		}
		arr, closure := args[0], args[1]
		closureRet := closure.ClosureReturnType
		if closureRet == nil {
			closureRet = genericElem
		}
		arrElem := genericElem
		if arr.OutputType != nil && len(arr.OutputType.GenericArgs) == 1 {
			arrElem = arr.OutputType.GenericArgs[0]
		}
		retType := rule(arrElem, closureRet)
		if outputType != nil {
			retType = outputType
		}
		m := &microstatement.Microstatement{
			Kind: microstatement.CONSTDEC,
			OutputName: outputName,
			OutputType: retType,
			InputNames: []string{arr.OutputName, closure.OutputName},
			Callees: []scope.Callable{p},
		}
		buf.Append(m)
		return m, nil
	}
	Register(p)
}
