package lowering

import (
	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
)

// fromEmitAst lowers `emit Event value?`. The emitted value's type must
// equal the event's declared type or be castable to it; void events may
// be emitted without a value.
func (g *Generator) fromEmitAst(n *ast.Emit, s *scope.Scope, buf *microstatement.Buffer) error {
	ev, ok := s.DeepGet(n.Event).Event, s.DeepGet(n.Event).Event != nil
	if !ok {
		return errors.NewLookup(n.Pos(), n.Event)
	}
	eventType := lookupType(ev.ValueType)

	if n.Value == nil {
		buf.Append(&microstatement.Microstatement{
			Kind: microstatement.EMIT,
			OutputName: n.Event,
		})
		return nil
	}
	seq, ok := n.Value.(*ast.Assignables)
	if !ok {
		return errors.NewSyntax(n.Pos(), "emit value must be an expression")
	}
	v, err := g.fromAssignablesAst(seq, s, buf)
	if err != nil {
		return err
	}
	if eventType != nil && v.OutputType != nil && eventType.Typename != v.OutputType.Typename {
		if !v.OutputType.Castable(eventType) {
			return errors.NewTypeMismatch(n.Pos(), eventType.Typename, v.OutputType.Typename)
		}
	}
	buf.Append(&microstatement.Microstatement{
		Kind: microstatement.EMIT,
		OutputName: n.Event,
		InputNames: []string{v.OutputName},
	})
	return nil
}

// fromExitAst lowers `return expr?`: either the RHS expression (its last
// microstatement becomes the return value), or a void placeholder
// CONSTDEC.
func (g *Generator) fromExitAst(n *ast.Exit, s *scope.Scope, buf *microstatement.Buffer) error {
	if n.Value == nil {
		voidName := microstatement.NewSynthName()
		buf.Append(&microstatement.Microstatement{
			Kind: microstatement.CONSTDEC,
			OutputName: voidName,
			InputNames: []string{"void"},
		})
		buf.Append(&microstatement.Microstatement{Kind: microstatement.EXIT, OutputName: voidName})
		return nil
	}
	seq, ok := n.Value.(*ast.Assignables)
	if !ok {
		return errors.NewSyntax(n.Pos(), "return value must be an expression")
	}
	v, err := g.fromAssignablesAst(seq, s, buf)
	if err != nil {
		return err
	}
	buf.Append(&microstatement.Microstatement{Kind: microstatement.EXIT, OutputName: v.OutputName})
	return nil
}
