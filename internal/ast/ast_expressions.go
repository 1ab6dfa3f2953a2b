package ast

// Assignables is an operator-precedence-separated sequence: it alternates
// BaseAssignableSeq values and Operator tokens, e.g.
// [seq(a), Operator("+"), seq(b), Operator("*"), seq(c)] for `a + b * c`.
// A leading Operator with no left neighbor is necessarily a prefix use
// ( fromAssignablesAst).
type Assignables struct {
	base
	Elements []Node
}

func NewAssignables(elements ...Node) *Assignables { return &Assignables{Elements: elements} }

func (n *Assignables) Kind() Kind { return KAssignables }
func (n *Assignables) Has(name string) bool { return false }
func (n *Assignables) Get(name string) Node { return nil }
func (n *Assignables) GetAll() []Node { return n.Elements }

// Operator is an operator token inside an Assignables sequence. It is
// used as a prefix operator when its Infix flag is false, or when its left
// neighbor is absent or is itself an operator.
type Operator struct {
	base
	Symbol string
	Infix bool
}

func NewOperator(symbol string, infix bool) *Operator { return &Operator{Symbol: symbol, Infix: infix} }

func (n *Operator) Kind() Kind { return KOperator }
func (n *Operator) Has(name string) bool { return false }
func (n *Operator) Get(name string) Node { return nil }
func (n *Operator) GetAll() []Node { return nil }

// BaseAssignableSeq is one maximal chain of base-assignable elements: the
// state machine in fromBaseAssignableAst table drives over
// exactly this list (variable, dot, fn-call, array-access, object-literal,
// constant, group, in the permitted transitions).
type BaseAssignableSeq struct {
	base
	Elements []Node
}

func NewBaseAssignableSeq(elements ...Node) *BaseAssignableSeq {
	return &BaseAssignableSeq{Elements: elements}
}

func (n *BaseAssignableSeq) Kind() Kind { return KAssignables }
func (n *BaseAssignableSeq) Has(name string) bool { return false }
func (n *BaseAssignableSeq) Get(name string) Node { return nil }
func (n *BaseAssignableSeq) GetAll() []Node { return n.Elements }

// Variable is a bare identifier reference.
type Variable struct {
	base
	Name string
}

func NewVariable(name string) *Variable { return &Variable{Name: name} }

func (n *Variable) Kind() Kind { return KVariable }
func (n *Variable) Has(name string) bool { return false }
func (n *Variable) Get(name string) Node { return nil }
func (n *Variable) GetAll() []Node { return nil }

// Dot is a `.name` segment: a field access when nothing that looks like a
// call follows, or — folded into the same node per "method-sep"
// shape — the separator immediately before a call that turns it into a
// method-style dispatch (`x.f(y)` ≡ `f(x, y)`).
type Dot struct {
	base
	Name string
}

func NewDot(name string) *Dot { return &Dot{Name: name} }

func (n *Dot) Kind() Kind { return KDot }
func (n *Dot) Has(name string) bool { return false }
func (n *Dot) Get(name string) Node { return nil }
func (n *Dot) GetAll() []Node { return nil }

// Constant is a literal lexeme (number, string, bool) exactly as written
// in source; fromConstantsAst infers its type from its shape.
type Constant struct {
	base
	Lexeme string
}

func NewConstant(lexeme string) *Constant { return &Constant{Lexeme: lexeme} }

func (n *Constant) Kind() Kind { return KConstant }
func (n *Constant) Has(name string) bool { return false }
func (n *Constant) Get(name string) Node { return nil }
func (n *Constant) GetAll() []Node { return nil }

// Group is a parenthesized expression: an expression group at sequence
// position 0, a call anywhere else.
type Group struct {
	base
	Inner Node
}

func NewGroup(inner Node) *Group { return &Group{Inner: inner} }

func (n *Group) Kind() Kind { return KGroup }
func (n *Group) Has(name string) bool {
	return name == "inner"
}
func (n *Group) Get(name string) Node {
	if name == "inner" {
		return n.Inner
	}
	return nil
}
func (n *Group) GetAll() []Node { return nil }

// FnCall is a call's argument list; the callee name/scoping comes from
// whatever base-assignable element preceded it in the chain.
type FnCall struct {
	base
	Args []Node // each an Assignables
}

func NewFnCall(args ...Node) *FnCall { return &FnCall{Args: args} }

func (n *FnCall) Kind() Kind { return KFnCall }
func (n *FnCall) Has(name string) bool { return false }
func (n *FnCall) Get(name string) Node { return nil }
func (n *FnCall) GetAll() []Node { return n.Args }

// ArrAccess is an `[index]` suffix.
type ArrAccess struct {
	base
	Index Node // an Assignables
}

func NewArrAccess(index Node) *ArrAccess { return &ArrAccess{Index: index} }

func (n *ArrAccess) Kind() Kind { return KArrAccess }
func (n *ArrAccess) Has(name string) bool {
	return name == "index"
}
func (n *ArrAccess) Get(name string) Node {
	if name == "index" {
		return n.Index
	}
	return nil
}
func (n *ArrAccess) GetAll() []Node { return nil }

// FieldInit is one `name: value` pair in an object literal's textual
// order, which need not match the declared type's field order; object
// literal lowering re-sorts to declaration order.
type FieldInit struct {
	Name string
	Value Node // an Assignables
}

// ObjectLiteral: `TypeName<G1,G2> { f1: v1, f2: v2 }`.
type ObjectLiteral struct {
	base
	TypeName string
	TypeArgs []Node // type annotations for G1, G2, ...
	Fields []FieldInit
}

func NewObjectLiteral(typeName string, typeArgs []Node, fields []FieldInit) *ObjectLiteral {
	return &ObjectLiteral{TypeName: typeName, TypeArgs: typeArgs, Fields: fields}
}

func (n *ObjectLiteral) Kind() Kind { return KObjectLiteral }
func (n *ObjectLiteral) Has(name string) bool { return false }
func (n *ObjectLiteral) Get(name string) Node { return nil }
func (n *ObjectLiteral) GetAll() []Node { return nil }

// ArrayLiteral: `Array<K>{e1, e2, ...}`; ElementType may be nil, in which
// case the element type is inferred from the first element.
type ArrayLiteral struct {
	base
	ElementType Node
	Elements []Node // each an Assignables
}

func NewArrayLiteral(elemType Node, elements []Node) *ArrayLiteral {
	return &ArrayLiteral{ElementType: elemType, Elements: elements}
}

func (n *ArrayLiteral) Kind() Kind { return KArrayLiteral }
func (n *ArrayLiteral) Has(name string) bool {
	return name == "elementType" && n.ElementType != nil
}
func (n *ArrayLiteral) Get(name string) Node {
	if name == "elementType" {
		return n.ElementType
	}
	return nil
}
func (n *ArrayLiteral) GetAll() []Node { return n.Elements }

// FunctionLiteral wraps an anonymous FunctionDef as an expression.
type FunctionLiteral struct {
	base
	Def *FunctionDef
}

func NewFunctionLiteral(def *FunctionDef) *FunctionLiteral { return &FunctionLiteral{Def: def} }

func (n *FunctionLiteral) Kind() Kind { return KFunctionLiteral }
func (n *FunctionLiteral) Has(name string) bool {
	return name == "def"
}
func (n *FunctionLiteral) Get(name string) Node {
	if name == "def" {
		return n.Def
	}
	return nil
}
func (n *FunctionLiteral) GetAll() []Node { return nil }
