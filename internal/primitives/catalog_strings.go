package primitives

import "github.com/alantech/irgen/internal/types"

// This init wires the string-ops group of: cat, split,
// repeat, trim, matches, index, length, join, template.
func init() {
	stringT := builtinType("string")
	boolT := builtinType("bool")
	int64T := builtinType("int64")
	arrayStringT := arrayOf(stringT)

	registerBinary("catstring", stringT, stringT, stringT)
	registerBinary("splitstring", stringT, stringT, arrayStringT)
	registerBinary("repeatstring", stringT, int64T, stringT)
	registerUnaryNumeric("trimstring", stringT, stringT)
	registerBinary("matchesstring", stringT, stringT, boolT)
	registerBinary("indexstring", stringT, stringT, int64T)
	registerUnaryNumeric("lengthstring", stringT, int64T)
	registerBinary("joinstring", arrayStringT, stringT, stringT)
	registerBinary("templatestring", stringT, arrayStringT, stringT)

	cmpOps := []string{"eq", "neq", "lt", "lte", "gt", "gte"}
	for _, op := range cmpOps {
		registerBinary(op+"string", stringT, stringT, boolT)
	}
}

// arrayOf returns (and memoizes) the built-in generic array instance
// Array<elem> used pervasively by the array/string/collection primitives.
func arrayOf(elem *types.Type) *types.Type {
	name := "Array<" + elem.Typename + ">"
	if t, ok := builtinTypes[name]; ok {
		return t
	}
	t := &types.Type{
		Typename: name,
		OriginalType: arrayTemplate(),
		GenericArgs: []*types.Type{elem},
	}
	builtinTypes[name] = t
	return t
}

var arrayTemplateType *types.Type

// arrayTemplate is the shared generic Array<T> template every arrayOf
// instance back-references via OriginalType, so TypeApplies's
// matching-OriginalType recursion (types/solidify.go) treats two
// Array<X> instances as the same family.
func arrayTemplate() *types.Type {
	if arrayTemplateType == nil {
		arrayTemplateType = &types.Type{
			Typename: "Array",
			BuiltIn: true,
			Generics: map[string]int{"T": 0},
		}
	}
	return arrayTemplateType
}
