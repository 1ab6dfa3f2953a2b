// Package ast defines the parse-tree shape the microstatement generator
// consumes. Producing these trees (lexing, parsing, module/import
// resolution) is an external collaborator's job — this package only
// fixes the contract: every node exposes named children, positional
// children, source location, and its raw source text through a uniform
// navigation interface.
package ast

import "github.com/alantech/irgen/internal/token"

// Kind discriminates the shapes this package defines: module imports,
// const and let declarations, assignments, assignables, base-assignables,
// conditionals, exits, emits, and function definitions.
type Kind int

const (
	KProgram Kind = iota
	KImport
	KConstDecl
	KLetDecl
	KAssignment
	KAssignables
	KVariable
	KConstant
	KObjectLiteral
	KArrayLiteral
	KFunctionLiteral
	KFnCall
	KArrAccess
	KDot
	KGroup
	KMethodSep
	KOperator
	KConditional
	KExit
	KEmit
	KFunctionDef
	KTypeAnnotation
)

func (k Kind) String() string {
	switch k {
	case KProgram:
		return "Program"
	case KImport:
		return "Import"
	case KConstDecl:
		return "ConstDecl"
	case KLetDecl:
		return "LetDecl"
	case KAssignment:
		return "Assignment"
	case KAssignables:
		return "Assignables"
	case KVariable:
		return "Variable"
	case KConstant:
		return "Constant"
	case KObjectLiteral:
		return "ObjectLiteral"
	case KArrayLiteral:
		return "ArrayLiteral"
	case KFunctionLiteral:
		return "FunctionLiteral"
	case KFnCall:
		return "FnCall"
	case KArrAccess:
		return "ArrAccess"
	case KDot:
		return "Dot"
	case KGroup:
		return "Group"
	case KMethodSep:
		return "MethodSep"
	case KOperator:
		return "Operator"
	case KConditional:
		return "Conditional"
	case KExit:
		return "Exit"
	case KEmit:
		return "Emit"
	case KFunctionDef:
		return "FunctionDef"
	case KTypeAnnotation:
		return "TypeAnnotation"
	default:
		return "Unknown"
	}
}

// Node is the uniform navigation interface every parse-tree node exposes.
// The generator reads children through the concrete node types of this
// package (it type-switches on them); Kind and Has/Get/GetAll give
// generic walks, such as the userfunc transform, a uniform view.
type Node interface {
	Kind() Kind
	// Has reports whether a named child is present.
	Has(name string) bool
	// Get returns a named child, or nil if absent.
	Get(name string) Node
	// GetAll returns this node's positional children, in source order.
	GetAll() []Node
	// Raw returns the node's raw source text, for diagnostics.
	Raw() string
	// Pos returns the node's source location, zero if unknown.
	Pos() token.Position
}

// base is embedded by every concrete node to supply Pos/Raw; each
// concrete node defines its own Has/Get/GetAll.
type base struct {
	RawText string
	Position token.Position
}

func (b base) Raw() string { return b.RawText }
func (b base) Pos() token.Position { return b.Position }

// namedChildren is a small helper for a fixed set of named children: it
// implements Has/Get by map lookup. It has no GetAll, and no node type in
// this package embeds it.
type namedChildren map[string]Node

func (m namedChildren) Has(name string) bool { _, ok := m[name]; return ok }
func (m namedChildren) Get(name string) Node { return m[name] }
