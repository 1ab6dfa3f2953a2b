package lowering

import (
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
)

// fromVarName implements walk buf from the end; the first
// microstatement whose output-name or alias equals name wins. For an
// alias match, walk further back to the non-REREF origin so the returned
// microstatement's declared type stays faithful. If still unresolved,
// probe s for a module-level constant; if present, lower its RHS
// synchronously against buf, then append a REREF tagged with the
// constant's original name as alias.
func (g *Generator) fromVarName(name string, s *scope.Scope, buf *microstatement.Buffer) (*microstatement.Microstatement, bool) {
	m, idx := buf.FindByOutputNameFrom(buf.Len(), name)
	if m != nil {
		origin, _ := buf.OriginOf(m, idx)
		return origin, true
	}

	decl, ok := s.DeepGet(name).Constant, s.DeepGet(name).Constant != nil
	if !ok || decl == nil {
		return nil, false
	}

	if err := g.LowerStatement(decl.Node, decl.OriginScope, buf); err != nil {
		return nil, false
	}
	last := buf.Last()
	if last == nil {
		return nil, false
	}
	rerefName := microstatement.NewSynthName()
	reref := &microstatement.Microstatement{
		Kind: microstatement.REREF,
		OutputName: rerefName,
		OutputType: last.OutputType,
		InputNames: []string{last.OutputName},
		Alias: decl.Name,
	}
	buf.Append(reref)
	return last, true
}
