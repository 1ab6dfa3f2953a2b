// Package scope implements the nested, two-parent-chain keyed mapping
// used for name resolution. It is the leaf of the core's dependency
// graph: nothing in this package depends on Type, UserFunction, or
// Microstatement; they depend on it.
package scope

import (
	"strings"

	"github.com/alantech/irgen/internal/ast"
)

// Callable is the minimal shape a function or operator overload must
// expose to be dispatchable. UserFunction and the primitive registry's
// wrappers both implement it; scope never imports either, so its
// signature is expressed purely in terms of TypeEntity.
type Callable interface {
	Name() string
	ArgTypes() []TypeEntity
	ReturnType() TypeEntity
}

// TypeEntity is the minimal shape a Type must expose to live in a scope.
// Scope is the leaf of the core's dependency graph: it knows only that a
// stored type can name itself, never the types package's internals
// (solidify/realize/typeApplies). Callers type-assert the concrete
// *types.Type back out.
type TypeEntity interface {
	TypeName() string
}

// Event is a named emission point with a static value type. Runtime
// delivery is owned by an external event-loop collaborator; the core
// only needs the name/type pair to type-check EMIT microstatements.
type Event struct {
	Name string
	ValueType TypeEntity
}

// ConstantDecl is a lazy global: instantiated into microstatements the
// first time it's referenced.
type ConstantDecl struct {
	Name string
	Node ast.Node
	OriginScope *Scope // scope the RHS must be lowered in, not the caller's
}

// MicrostatementAlias is a secondary handle used for user-visible
// identifier lookup of a value produced earlier in the same buffer.
type MicrostatementAlias struct {
	OutputName string
}

// Scope is a single frame: a mapping from identifier to entity, an
// optional primary parent, and an optional secondary parent.
type Scope struct {
	types map[string]TypeEntity
	functions map[string][]Callable
	operators map[string][]Callable
	events map[string]Event
	constants map[string]ConstantDecl
	aliases map[string]MicrostatementAlias
	primary *Scope
	secondary *Scope
}

// New creates an empty frame with the given primary/secondary parents
// (either may be nil).
func New(primary, secondary *Scope) *Scope {
	return &Scope{
		types: make(map[string]TypeEntity),
		functions: make(map[string][]Callable),
		operators: make(map[string][]Callable),
		events: make(map[string]Event),
		constants: make(map[string]ConstantDecl),
		aliases: make(map[string]MicrostatementAlias),
		primary: primary,
		secondary: secondary,
	}
}

func (s *Scope) Primary() *Scope { return s.primary }
func (s *Scope) Secondary() *Scope { return s.secondary }

// --- put: insert or replace in the current frame only ---

func (s *Scope) PutType(name string, t TypeEntity) { s.types[name] = t }
func (s *Scope) PutEvent(name string, e Event) { s.events[name] = e }
func (s *Scope) PutConstant(name string, c ConstantDecl) { s.constants[name] = c }
func (s *Scope) PutAlias(name string, a MicrostatementAlias) { s.aliases[name] = a }

// PutFunction appends an overload candidate under name; last-wins
// dispatch order depends on append order.
func (s *Scope) PutFunction(name string, fn Callable) {
	s.functions[name] = append(s.functions[name], fn)
}

func (s *Scope) PutOperator(symbol string, op Callable) {
	s.operators[symbol] = append(s.operators[symbol], op)
}

// --- get: look up in this frame only ---

func (s *Scope) GetType(name string) (TypeEntity, bool) { t, ok := s.types[name]; return t, ok }
func (s *Scope) GetFunctions(name string) ([]Callable, bool) {
	fns, ok := s.functions[name]
	return fns, ok
}
func (s *Scope) GetOperators(symbol string) ([]Callable, bool) {
	ops, ok := s.operators[symbol]
	return ops, ok
}
func (s *Scope) GetEvent(name string) (Event, bool) { e, ok := s.events[name]; return e, ok }
func (s *Scope) GetConstant(name string) (ConstantDecl, bool) {
	c, ok := s.constants[name]
	return c, ok
}
func (s *Scope) GetAlias(name string) (MicrostatementAlias, bool) {
	a, ok := s.aliases[name]
	return a, ok
}

// Entity is whatever deepGet found, tagged so callers can act on it
// without a type switch over every concrete kind.
type Entity struct {
	Type TypeEntity
	Functions []Callable
	Operators []Callable
	Event *Event
	Constant *ConstantDecl
	Alias *MicrostatementAlias
}

func (e Entity) Found() bool {
	return e.Type != nil || e.Functions != nil || e.Operators != nil ||
		e.Event != nil || e.Constant != nil || e.Alias != nil
}

// DeepGet walks primary parents until found; on miss at the root, the
// *current* frame's secondary parent is consulted recursively before
// giving up. Dotted names are the caller's concern: DeepGet does not
// split on '.' itself.
func (s *Scope) DeepGet(name string) Entity {
	for cur := s; cur != nil; cur = cur.primary {
		if e := cur.localEntity(name); e.Found() {
			return e
		}
	}
	if s.secondary != nil {
		return s.secondary.DeepGet(name)
	}
	return Entity{}
}

// DeepGetDotted retries DeepGet by splitting the final dot off a name
// that wasn't found whole.
func (s *Scope) DeepGetDotted(name string) (Entity, string) {
	if e := s.DeepGet(name); e.Found() {
		return e, name
	}
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return Entity{}, name
	}
	prefix := name[:idx]
	return s.DeepGet(prefix), prefix
}

func (s *Scope) localEntity(name string) Entity {
	var e Entity
	if t, ok := s.types[name]; ok {
		e.Type = t
	}
	if fns, ok := s.functions[name]; ok {
		e.Functions = fns
	}
	if ops, ok := s.operators[name]; ok {
		e.Operators = ops
	}
	if ev, ok := s.events[name]; ok {
		e.Event = &ev
	}
	if c, ok := s.constants[name]; ok {
		e.Constant = &c
	}
	if a, ok := s.aliases[name]; ok {
		e.Alias = &a
	}
	return e
}
