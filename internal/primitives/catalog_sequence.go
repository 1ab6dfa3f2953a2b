package primitives

import (
	"strconv"

	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

// This init wires the sequence/self-recursion primitives: seqwhile,
// seqdo, seqrec, selfrec. Their inliner does not realize function-valued
// arguments as closures; it reads the ClosureReturnType already recorded
// on the argument microstatements. seqrec and selfrec take their return
// type from their recursion function's ClosureReturnType (the generic
// element standin when it is unset); seqwhile and seqdo return void.
func init() {
	seqT := builtinType("Seq")
	boolT := builtinType("bool")
	fnT := builtinType("function")

	registerSeqPrimitive("seqwhile", []*types.Type{seqT, fnT, fnT}, func(args []*microstatement.Microstatement) *types.Type {
		return builtinType("void")
	})
	registerSeqPrimitive("seqdo", []*types.Type{seqT, fnT}, func(args []*microstatement.Microstatement) *types.Type {
		return builtinType("void")
	})
	registerSeqPrimitive("seqrec", []*types.Type{seqT, fnT}, func(args []*microstatement.Microstatement) *types.Type {
		if len(args) == 2 && args[1].ClosureReturnType != nil {
			return args[1].ClosureReturnType
		}
		return genericElem
	})
	registerSeqPrimitive("selfrec", []*types.Type{fnT}, func(args []*microstatement.Microstatement) *types.Type {
		if len(args) == 1 && args[0].ClosureReturnType != nil {
			return args[0].ClosureReturnType
		}
		return genericElem
	})
	_ = boolT
}

func registerSeqPrimitive(name string, argTypes []*types.Type, retRule func([]*microstatement.Microstatement) *types.Type) {
	argNames := make([]string, len(argTypes))
	for i := range argNames {
		argNames[i] = "a" + strconv.Itoa(i)
	}
	p := &Primitive{
		PrimName: name,
		ArgNames: argNames,
		ArgTypeVals: argTypes,
		RetType: nil,
		Pure: false,
	}
	p.Inline = func(buf *microstatement.Buffer, outputName string, outputType *types.Type, args []*microstatement.Microstatement) (*microstatement.Microstatement, error) {
		if len(args) != len(argTypes) {
			return nil, errArity(name, len(argTypes), len(args))
		}
		retType := retRule(args)
		if outputType != nil {
			retType = outputType
		}
		inputs := make([]string, len(args))
		for i, a := range args {
			inputs[i] = a.OutputName
		}
		m := &microstatement.Microstatement{
			Kind: microstatement.CONSTDEC,
			OutputName: outputName,
			OutputType: retType,
			InputNames: inputs,
			Callees: []scope.Callable{p},
		}
		buf.Append(m)
		return m, nil
	}
	Register(p)
}
