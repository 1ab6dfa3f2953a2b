// Package microstatement implements the IR record: a tagged sum over a
// closed set of kinds, referencing its inputs by string name
// (SSA-by-identity) rather than by pointer or index, so the REREF-cleanup
// pass is a pure filter over a slice.
//
// Buffers are flat, append-only slices rather than a tree, and synthetic
// output names use github.com/google/uuid to mint random 128-bit
// identifiers that never collide with a source-level name.
package microstatement

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

// Kind is one of the closed set of microstatement shapes.
type Kind int

const (
	CONSTDEC Kind = iota
	LETDEC
	ASSIGNMENT
	CALL
	EMIT
	EXIT
	REREF
	CLOSURE
	CLOSUREDEF
	ARG
	ENTERFN
	ENTERCONDFN
)

func (k Kind) String() string {
	return [...]string{
		"CONSTDEC", "LETDEC", "ASSIGNMENT", "CALL", "EMIT", "EXIT",
		"REREF", "CLOSURE", "CLOSUREDEF", "ARG", "ENTERFN", "ENTERCONDFN",
	}[k]
}

// ClosureArg is one formal parameter of a CLOSURE microstatement's inner
// function contract.
type ClosureArg struct {
	Name string
	Type *types.Type
}

// Microstatement is a single three-address IR node.
type Microstatement struct {
	Kind Kind
	OutputName string
	OutputType *types.Type
	InputNames []string
	Callees []scope.Callable // for CALL/value-returning CONSTDEC: selected primitive(s)
	Alias string // secondary handle for user-visible identifier lookup

	// Closure metadata, populated only for CLOSURE/CLOSUREDEF.
	ClosureBody []*Microstatement
	ClosureArgs []ClosureArg
	ClosureReturnType *types.Type
	ClosurePure bool

	// FnMarker carries the UserFunction identity for ENTERFN markers, so
	// the recursion check can compare by identity.
	FnMarker interface{}
}

// NewSynthName returns a fresh synthetic output name: "_" plus a random
// 128-bit id.
func NewSynthName() string {
	return "_" + uuid.New().String()
}

// Buffer is the append-only, caller-owned sequence lowering procedures
// mutate; buffers are owned exclusively by the caller of each lowering
// procedure.
type Buffer struct {
	stmts []*Microstatement
}

func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Len() int { return len(b.stmts) }
func (b *Buffer) At(i int) *Microstatement { return b.stmts[i] }
func (b *Buffer) All() []*Microstatement { return b.stmts }
func (b *Buffer) Last() *Microstatement {
	if len(b.stmts) == 0 {
		return nil
	}
	return b.stmts[len(b.stmts)-1]
}

func (b *Buffer) Append(m *Microstatement) { b.stmts = append(b.stmts, m) }

// Truncate drops everything from index i onward (used by the inliner's
// REREF cleanup and ENTERFN-marker removal).
func (b *Buffer) Truncate(i int) { b.stmts = b.stmts[:i] }

// RemoveRange deletes stmts[from:to) in place, preserving order.
func (b *Buffer) RemoveRange(from, to int) {
	b.stmts = append(b.stmts[:from:from], b.stmts[to:]...)
}

// FindByOutputNameFrom walks backward from `from` (exclusive) looking for
// a microstatement whose OutputName or Alias equals name — the core
// lookup fromVarName relies on.
func (b *Buffer) FindByOutputNameFrom(from int, name string) (*Microstatement, int) {
	if from < 0 || from > len(b.stmts) {
		from = len(b.stmts)
	}
	for i := from - 1; i >= 0; i-- {
		m := b.stmts[i]
		if m.OutputName == name || m.Alias == name {
			return m, i
		}
	}
	return nil, -1
}

// OriginOf walks past REREF aliasing to find the non-REREF microstatement
// that actually computed a value, so its declared type stays faithful
// (fromVarName "walk further back" rule).
func (b *Buffer) OriginOf(m *Microstatement, idx int) (*Microstatement, int) {
	for m != nil && m.Kind == REREF && len(m.InputNames) == 1 {
		origin, originIdx := b.FindByOutputNameFrom(idx, m.InputNames[0])
		if origin == nil {
			break
		}
		m, idx = origin, originIdx
	}
	return m, idx
}

// String renders m in the textual output format used for golden fixtures.
func (m *Microstatement) String() string {
	calleeName := func() string {
		if len(m.Callees) == 0 {
			return ""
		}
		return m.Callees[0].Name()
	}
	inputs := func() string {
		s := ""
		for i, in := range m.InputNames {
			if i > 0 {
				s += ", "
			}
			s += in
		}
		return s
	}
	switch m.Kind {
	case CONSTDEC, LETDEC:
		prefix := "const"
		if m.Kind == LETDEC {
			prefix = "let"
		}
		if len(m.Callees) > 0 {
			return fmt.Sprintf("%s %s: %s = %s(%s)", prefix, m.OutputName, typeName(m.OutputType), calleeName(), inputs())
		}
		if len(m.InputNames) > 0 {
			return fmt.Sprintf("%s %s: %s = %s", prefix, m.OutputName, typeName(m.OutputType), m.InputNames[0])
		}
		return fmt.Sprintf("%s %s: %s", prefix, m.OutputName, typeName(m.OutputType))
	case ASSIGNMENT:
		if len(m.Callees) > 0 {
			return fmt.Sprintf("%s = %s(%s)", m.OutputName, calleeName(), inputs())
		}
		return fmt.Sprintf("%s = %s", m.OutputName, inputs())
	case CALL:
		return fmt.Sprintf("%s(%s)", calleeName(), inputs())
	case EMIT:
		if len(m.InputNames) > 0 {
			return fmt.Sprintf("emit %s %s(%s)", m.OutputName, calleeName(), inputs())
		}
		return fmt.Sprintf("emit %s", m.OutputName)
	case EXIT:
		return fmt.Sprintf("return %s", m.OutputName)
	case CLOSURE:
		args := ""
		for i, a := range m.ClosureArgs {
			if i > 0 {
				args += ", "
			}
			args += a.Name + ": " + typeName(a.Type)
		}
		return fmt.Sprintf("const %s: function = fn (%s): %s { %d stmts }", m.OutputName, args, typeName(m.ClosureReturnType), len(m.ClosureBody))
	default:
		return "" // REREF/ARG/CLOSUREDEF/ENTERFN/ENTERCONDFN are not emitted
	}
}

func typeName(t *types.Type) string {
	if t == nil {
		return "void"
	}
	return t.Typename
}
