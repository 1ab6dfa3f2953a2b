package primitives

import "github.com/alantech/irgen/internal/types"

// genericElem is the shared standin used by every generic array
// primitive's element-type slot; TypeApplies binds it per call site via
// the caller-supplied InterfaceMap (types/solidify.go), so one Primitive
// value serves every Array<X> instantiation.
var genericElem = types.NewGenericStandin("T")

// This init wires the non-closure array-ops group: cat, rep, new,
// push, pop, length, copyfrom, copyto, register, keys, values, keyval.
// The closure-taking members (find, filter, every, some, map, reduce,
// each) live in catalog_higher_order.go.
func init() {
	int64T := builtinType("int64")
	boolT := builtinType("bool")
	arrT := arrayOf(genericElem)
	keyValT := keyValOf(genericElem)

	registerBinary("catarr", arrT, arrT, arrT)
	registerBinary("reparr", arrT, int64T, arrT)
	registerUnaryNumeric("newarr", int64T, arrT)
	registerThreeArg("pusharr", arrT, genericElem, int64T, boolT)
	registerUnaryNumeric("poparr", arrT, genericElem)
	registerUnaryNumeric("lengtharr", arrT, int64T)
	registerBinary("copyfromarr", arrT, int64T, genericElem)
	registerThreeArg("copytoarr", arrT, int64T, genericElem, boolT)
	registerBinary("registerarr", arrT, int64T, genericElem)
	// register/copytof/copytov are the indirection primitives
	// fromAssignmentsAst and the field-access path in
	// fromBaseAssignableAst emit directly by name, rather than through
	// dispatchFn overload resolution, so they are registered under their
	// bare names alongside the *arr family.
	registerBinary("register", arrT, int64T, genericElem)
	registerThreeArg("copytof", arrT, int64T, genericElem, boolT)
	registerThreeArg("copytov", arrT, int64T, genericElem, boolT)
	registerUnaryNumeric("keysarr", keyValT, arrayOf(genericElem))
	registerUnaryNumeric("valuesarr", keyValT, arrayOf(genericElem))
	registerBinary("keyvalarr", genericElem, genericElem, keyValT)

	registerUnaryNumeric("clone", genericElem, genericElem)
	registerUnaryNumeric("ref", genericElem, genericElem)

	// resfrom backs indexed array access (a[i] lowering): the index is
	// pre-wrapped into a Result<int64> via okR so an out-of-bounds index
	// can fail the same way a parse/lookup failure does, and resfrom
	// threads that failure into a Result<T> rather than panicking.
	resultInt64 := wrapperOf("Result", int64T)
	resultElem := wrapperOf("Result", genericElem)
	registerBinary("resfrom", arrT, resultInt64, resultElem)
}

func registerThreeArg(name string, a, b, c, ret *types.Type) {
	p := &Primitive{
		PrimName: name,
		ArgNames: []string{"a", "b", "c"},
		ArgTypeVals: []*types.Type{a, b, c},
		RetType: ret,
		Pure: false,
	}
	p.Inline = plainCall(p)
	Register(p)
}

var keyValTemplateType *types.Type

// keyValOf mirrors arrayOf for the built-in KeyVal<K, V> pair type.
func keyValOf(elem *types.Type) *types.Type {
	name := "KeyVal<" + elem.Typename + ">"
	if t, ok := builtinTypes[name]; ok {
		return t
	}
	if keyValTemplateType == nil {
		keyValTemplateType = &types.Type{Typename: "KeyVal", BuiltIn: true, Generics: map[string]int{"K": 0, "V": 1}}
	}
	t := &types.Type{
		Typename: name,
		OriginalType: keyValTemplateType,
		GenericArgs: []*types.Type{elem},
	}
	builtinTypes[name] = t
	return t
}
