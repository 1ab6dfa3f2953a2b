// Package errors implements the fatal-error taxonomy for lowering. Every
// lowering failure is one of these kinds; there is no partial-success
// contract so the first one raised aborts the module.
//
// A single typed error per failure mode, source-located via token.Position,
// in the vein of a compiler diagnostics package.
package errors

import (
	"fmt"
	"strings"

	"github.com/alantech/irgen/internal/token"
)

// Kind names one taxonomy entry.
type Kind string

const (
	Lookup Kind = "LookupError"
	TypeMismatch Kind = "TypeMismatch"
	Dispatch Kind = "DispatchError"
	Reassignment Kind = "Reassignment"
	Recursion Kind = "Recursion"
	LiteralShape Kind = "LiteralShape"
	UnreachableCd Kind = "UnreachableCode"
	Syntax Kind = "Syntax"
)

// CompileError is the single fatal error value that aborts a module's
// lowering: errors from any lowering step abort the current module
// compilation with a single error value.
type CompileError struct {
	ErrKind Kind
	Message string
	Position token.Position
}

func (e *CompileError) Error() string {
	if e.Position.IsZero() {
		return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Position, e.ErrKind, e.Message)
}

func New(kind Kind, pos token.Position, format string, args ...interface{}) *CompileError {
	return &CompileError{ErrKind: kind, Position: pos, Message: fmt.Sprintf(format, args...)}
}

func NewLookup(pos token.Position, name string) *CompileError {
	return New(Lookup, pos, "%q is not defined in any reachable scope", name)
}

func NewTypeMismatch(pos token.Position, expected, actual string) *CompileError {
	return New(TypeMismatch, pos, "expected type %s but found %s", expected, actual)
}

// NewDispatch enumerates candidate signatures in the error message.
func NewDispatch(pos token.Position, fnName string, actualArgs []string, candidates []string) *CompileError {
	var b strings.Builder
	fmt.Fprintf(&b, "no overload of %s accepts (%s); candidates:", fnName, strings.Join(actualArgs, ", "))
	for _, c := range candidates {
		b.WriteString("\n ")
		b.WriteString(c)
	}
	return New(Dispatch, pos, "%s", b.String())
}

func NewReassignment(pos token.Position, name string, reason string) *CompileError {
	return New(Reassignment, pos, "cannot assign to %q: %s", name, reason)
}

// NewRecursion renders the call stack as "f -> g -> f".
func NewRecursion(pos token.Position, stack []string) *CompileError {
	return New(Recursion, pos, "Recursive callstack detected: %s. Aborting.", strings.Join(stack, " -> "))
}

func NewLiteralShape(pos token.Position, typeName string, missing, extra []string) *CompileError {
	return New(LiteralShape, pos, "literal for %s missing fields %v and has extra fields %v", typeName, missing, extra)
}

func NewUnreachable(pos token.Position) *CompileError {
	return New(UnreachableCd, pos, "unreachable statement after a terminating return")
}

func NewSyntax(pos token.Position, detail string) *CompileError {
	return New(Syntax, pos, "malformed assignable path: %s", detail)
}
