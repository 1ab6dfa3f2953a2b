// Package pipeline orchestrates one module compilation: parse-tree in,
// a rendered microstatement dump (or collected errors) out. It ties
// together the prelude scope, per-function lowering, and backend
// rendering stages behind a single entry point cmd/irgen calls.
//
// Each stage receives and returns the shared Context, continuing past a
// failing stage so later stages can still contribute diagnostics: a
// batch of independent functions in one module should report every
// failure it can rather than stopping at the first.
package pipeline

import (
	"strings"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/backend"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/factstore"
	"github.com/alantech/irgen/internal/lowering"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
)

// Context carries one module's compilation state across stages: the
// input parse tree, the prelude scope it lowers against, the resulting
// buffer per function, and any errors stages along the way collected.
// Store is optional: when set (via --fact-store), LoweringStage records
// every emitted microstatement to it for post-hoc debugging.
type Context struct {
	ModuleName string
	Functions map[string][]ast.Node // function name -> statement list
	Prelude *scope.Scope
	Buffers map[string]*microstatement.Buffer
	Rendered map[string]string
	Errors []*errors.CompileError
	Store *factstore.Store
}

// NewContext builds a Context with a fresh prelude scope installed.
func NewContext(moduleName string, functions map[string][]ast.Node) *Context {
	return &Context{
		ModuleName: moduleName,
		Functions: functions,
		Prelude: lowering.NewPrelude(),
		Buffers: make(map[string]*microstatement.Buffer),
	}
}

// Stage is one pipeline step. A Stage receives and returns a Context so
// later stages can run even after an earlier one recorded an error.
type Stage interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of stages over one Context.
type Pipeline struct {
	stages []Stage
}

func New(stages ...Stage) *Pipeline { return &Pipeline{stages: stages} }

func (p *Pipeline) Run(ctx *Context) *Context {
	for _, s := range p.stages {
		ctx = s.Process(ctx)
	}
	return ctx
}

// LoweringStage lowers every function body in ctx.Functions into its own
// microstatement buffer, under a fresh child scope of the prelude.
type LoweringStage struct {
	Generator *lowering.Generator
}

func NewLoweringStage() *LoweringStage {
	return &LoweringStage{Generator: lowering.New()}
}

func (s *LoweringStage) Process(ctx *Context) *Context {
	for name, stmts := range ctx.Functions {
		fnScope := scope.New(ctx.Prelude, nil)
		buf := microstatement.NewBuffer()
		var failed bool
		for _, stmt := range stmts {
			if err := s.Generator.LowerStatement(stmt, fnScope, buf); err != nil {
				if ce, ok := err.(*errors.CompileError); ok {
					ctx.Errors = append(ctx.Errors, ce)
				}
				failed = true
				break
			}
		}
		if !failed {
			ctx.Buffers[name] = buf
			recordToFactStore(ctx, name, buf)
		}
	}
	return ctx
}

// recordToFactStore mirrors buf into ctx.Store, when one is configured.
// A write failure here is a debug-sink problem, not a lowering failure,
// so it is dropped rather than threaded into ctx.Errors.
func recordToFactStore(ctx *Context, function string, buf *microstatement.Buffer) {
	if ctx.Store == nil {
		return
	}
	for seq, m := range buf.All() {
		typeName := ""
		if m.OutputType != nil {
			typeName = m.OutputType.Typename
		}
		_ = ctx.Store.RecordMicrostatement(ctx.ModuleName, function, seq, m.Kind.String(), m.OutputName, typeName, strings.Join(m.InputNames, ","))
	}
}

// RenderStage renders each successfully lowered function to its textual
// form, keyed by function name.
type RenderStage struct{}

func (s *RenderStage) Process(ctx *Context) *Context {
	ctx.Rendered = make(map[string]string, len(ctx.Buffers))
	for name, buf := range ctx.Buffers {
		ctx.Rendered[name] = backend.RenderFunction(name, buf)
	}
	return ctx
}
