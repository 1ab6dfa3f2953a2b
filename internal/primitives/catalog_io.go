package primitives

import "github.com/alantech/irgen/internal/types"

// This init wires the remaining catalog groups: option/result/either
// constructors and predicates, namespaced data-store get/set/has/del,
// http ops, exec/wait/exit/stdout, hash, and errors. These are
// boundary-only from the core's point of view (the event-loop runtime
// executes them) but still need a typed catalog entry so the dispatcher
// and return-type inference see a complete signature.
func init() {
	registerOptionResultEither()
	registerDataStore()
	registerProcessAndIO()
}

func registerOptionResultEither() {
	boolT := builtinType("bool")
	stringT := builtinType("string")
	errorT := builtinType("Error")
	elem := genericElem

	maybeT := wrapperOf("Maybe", elem)
	resultT := wrapperOf("Result", elem)
	eitherLeftT := wrapperOf("Either", elem)

	registerUnaryNumeric("some", elem, maybeT)
	registerUnaryNumeric("none", builtinType("void"), maybeT)
	registerUnaryNumeric("ismaybe", maybeT, boolT)

	registerUnaryNumeric("okR", elem, resultT)
	registerUnaryNumeric("errR", stringT, resultT)
	registerUnaryNumeric("isokR", resultT, boolT)
	registerUnaryNumeric("geterrR", resultT, errorT)

	registerUnaryNumeric("mainE", elem, eitherLeftT)
	registerUnaryNumeric("altE", elem, eitherLeftT)
	registerUnaryNumeric("ismainE", eitherLeftT, boolT)

	registerUnaryNumeric("errorstring", stringT, errorT)
	registerUnaryNumeric("errorcode", errorT, builtinType("int64"))
}

func registerDataStore() {
	stringT := builtinType("string")
	boolT := builtinType("bool")
	elem := genericElem
	maybeT := wrapperOf("Maybe", elem)

	registerBinary("dsget", stringT, stringT, maybeT)
	registerThreeArg("dsset", stringT, stringT, elem, boolT)
	registerBinary("dshas", stringT, stringT, boolT)
	registerBinary("dsdel", stringT, stringT, boolT)
}

func registerProcessAndIO() {
	stringT := builtinType("string")
	int64T := builtinType("int64")
	boolT := builtinType("bool")
	execResT := builtinType("ExecRes")
	arrStringT := arrayOf(stringT)
	voidT := builtinType("void")

	registerBinary("execop", stringT, arrStringT, execResT)
	registerUnaryNumeric("waitop", execResT, execResT)
	registerUnaryNumeric("exitop", int64T, voidT)
	registerUnaryNumeric("stdoutp", stringT, voidT)

	registerUnaryNumeric("hash", stringT, int64T)

	registerBinary("httpget", stringT, arrStringT, builtinType("InternalResponse"))
	registerThreeArg("httppost", stringT, stringT, arrStringT, builtinType("InternalResponse"))

	_ = boolT
}

// wrapperOf returns (and memoizes) a single-argument generic wrapper
// built-in (Maybe, Result, Either).
func wrapperOf(base string, elem *types.Type) *types.Type {
	name := base + "<" + elem.Typename + ">"
	if t, ok := builtinTypes[name]; ok {
		return t
	}
	template := wrapperTemplate(base)
	t := &types.Type{
		Typename: name,
		OriginalType: template,
		GenericArgs: []*types.Type{elem},
	}
	builtinTypes[name] = t
	return t
}

var wrapperTemplates = map[string]*types.Type{}

func wrapperTemplate(base string) *types.Type {
	if t, ok := wrapperTemplates[base]; ok {
		return t
	}
	t := &types.Type{Typename: base, BuiltIn: true, Generics: map[string]int{"T": 0}}
	wrapperTemplates[base] = t
	return t
}
