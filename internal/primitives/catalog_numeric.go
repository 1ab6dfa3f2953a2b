package primitives

import "github.com/alantech/irgen/internal/types"

// numericWidth names one built-in numeric type and the short suffix its
// primitive family uses, e.g. "i64" for int64 arithmetic opcodes.
type numericWidth struct {
	typeName string
	suffix string
	isFloat bool
}

var intWidths = []numericWidth{
	{"int8", "i8", false}, {"int16", "i16", false},
	{"int32", "i32", false}, {"int64", "i64", false},
}
var floatWidths = []numericWidth{
	{"float32", "f32", true}, {"float64", "f64", true},
}
var numericWidths = append(append([]numericWidth{}, intWidths...), floatWidths...)

var builtinTypes = map[string]*types.Type{}

func builtinType(name string) *types.Type {
	if t, ok := builtinTypes[name]; ok {
		return t
	}
	t := types.NewBuiltin(name)
	builtinTypes[name] = t
	return t
}

func init() {
	registerCasts()
	registerArithmetic()
	registerBitwiseAndLogical()
	registerComparisons()
}

// registerCasts wires every width/kind pair in the numeric casts group:
// a narrowing or widening reinterpretation opcode for every ordered pair
// of distinct numeric widths.
func registerCasts() {
	for _, from := range numericWidths {
		for _, to := range numericWidths {
			if from.typeName == to.typeName {
				continue
			}
			from, to := from, to
			name := from.suffix + to.suffix
			p := &Primitive{
				PrimName: name,
				ArgNames: []string{"val"},
				ArgTypeVals: []*types.Type{builtinType(from.typeName)},
				RetType: builtinType(to.typeName),
				Pure: true,
			}
			p.Inline = plainCall(p)
			Register(p)
		}
	}
}

// registerArithmetic wires add/sub/neg/abs/mul/div/mod/pow/sqrt per
// numeric width (mod reserved to ints, sqrt to floats).
func registerArithmetic() {
	binary := []string{"add", "sub", "mul", "div"}
	unary := []string{"neg", "abs"}

	for _, w := range numericWidths {
		w := w
		t := builtinType(w.typeName)
		for _, op := range binary {
			registerBinaryNumeric(op+w.suffix, t, t)
		}
		for _, op := range unary {
			registerUnaryNumeric(op+w.suffix, t, t)
		}
	}
	for _, w := range intWidths {
		w := w
		t := builtinType(w.typeName)
		registerBinaryNumeric("mod"+w.suffix, t, t)
		registerBinaryNumeric("pow"+w.suffix, t, t)
	}
	for _, w := range floatWidths {
		w := w
		t := builtinType(w.typeName)
		registerBinaryNumeric("pow"+w.suffix, t, t)
		registerUnaryNumeric("sqrt"+w.suffix, t, t)
	}
}

// registerBitwiseAndLogical wires and/or/xor/not/nand/nor/xnor per int
// width and for bool.
func registerBitwiseAndLogical() {
	for _, w := range intWidths {
		w := w
		t := builtinType(w.typeName)
		registerBinaryNumeric("and"+w.suffix, t, t)
		registerBinaryNumeric("or"+w.suffix, t, t)
		registerBinaryNumeric("xor"+w.suffix, t, t)
		registerBinaryNumeric("nand"+w.suffix, t, t)
		registerBinaryNumeric("nor"+w.suffix, t, t)
		registerBinaryNumeric("xnor"+w.suffix, t, t)
		registerUnaryNumeric("not"+w.suffix, t, t)
	}
	boolT := builtinType("bool")
	registerBinaryNumeric("andbool", boolT, boolT)
	registerBinaryNumeric("orbool", boolT, boolT)
	registerBinaryNumeric("xorbool", boolT, boolT)
	registerBinaryNumeric("nandbool", boolT, boolT)
	registerBinaryNumeric("norbool", boolT, boolT)
	registerBinaryNumeric("xnorbool", boolT, boolT)
	registerUnaryNumeric("notbool", boolT, boolT)
}

// registerComparisons wires eq/neq/lt/lte/gt/gte for every primitive
// numeric width and for bool; string comparisons are registered in
// catalog_strings.go.
func registerComparisons() {
	cmpOps := []string{"eq", "neq", "lt", "lte", "gt", "gte"}
	boolT := builtinType("bool")
	for _, w := range numericWidths {
		w := w
		t := builtinType(w.typeName)
		for _, op := range cmpOps {
			registerBinary(op+w.suffix, t, t, boolT)
		}
	}
	for _, op := range cmpOps {
		registerBinary(op+"bool", boolT, boolT, boolT)
	}
}

func registerBinaryNumeric(name string, argType, retType *types.Type) {
	registerBinary(name, argType, argType, retType)
}

func registerUnaryNumeric(name string, argType, retType *types.Type) {
	p := &Primitive{
		PrimName: name,
		ArgNames: []string{"val"},
		ArgTypeVals: []*types.Type{argType},
		RetType: retType,
		Pure: true,
	}
	p.Inline = plainCall(p)
	Register(p)
}

func registerBinary(name string, lhs, rhs, retType *types.Type) {
	p := &Primitive{
		PrimName: name,
		ArgNames: []string{"a", "b"},
		ArgTypeVals: []*types.Type{lhs, rhs},
		RetType: retType,
		Pure: true,
	}
	p.Inline = plainCall(p)
	Register(p)
}
