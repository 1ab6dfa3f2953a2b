package lowering

import (
	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

// fromLetdeclarationAst / fromConstdeclarationAst lower the RHS, then
// append a REREF that gives the result the user-visible alias; for let
// the underlying microstatement's kind is additionally mutated to LETDEC.
func (g *Generator) fromLetdeclarationAst(n *ast.LetDecl, s *scope.Scope, buf *microstatement.Buffer) error {
	rhs, ok := n.Value.(*ast.Assignables)
	if !ok {
		return errors.NewSyntax(n.Pos(), "let declaration RHS must be an expression")
	}
	v, err := g.fromAssignablesAst(rhs, s, buf)
	if err != nil {
		return err
	}
	v.Kind = microstatement.LETDEC
	buf.Append(&microstatement.Microstatement{
		Kind: microstatement.REREF,
		OutputName: microstatement.NewSynthName(),
		OutputType: v.OutputType,
		InputNames: []string{v.OutputName},
		Alias: n.Name,
	})
	s.PutAlias(n.Name, scope.MicrostatementAlias{OutputName: v.OutputName})
	return nil
}

func (g *Generator) fromConstdeclarationAst(n *ast.ConstDecl, s *scope.Scope, buf *microstatement.Buffer) error {
	rhs, ok := n.Value.(*ast.Assignables)
	if !ok {
		return errors.NewSyntax(n.Pos(), "const declaration RHS must be an expression")
	}
	v, err := g.fromAssignablesAst(rhs, s, buf)
	if err != nil {
		return err
	}
	buf.Append(&microstatement.Microstatement{
		Kind: microstatement.REREF,
		OutputName: microstatement.NewSynthName(),
		OutputType: v.OutputType,
		InputNames: []string{v.OutputName},
		Alias: n.Name,
	})
	s.PutAlias(n.Name, scope.MicrostatementAlias{OutputName: v.OutputName})
	return nil
}

// fromAssignmentsAst implements reassignment lowering.
// Segments of the LHS path are interpreted: the first segment must
// resolve (via alias chain) to a LETDEC, else it is rejected as a
// const-reassignment or unknown identifier.
func (g *Generator) fromAssignmentsAst(n *ast.Assignment, s *scope.Scope, buf *microstatement.Buffer) error {
	if len(n.Path) == 0 {
		return errors.NewSyntax(n.Pos(), "empty assignment path")
	}
	head := n.Path[0]
	target, idx := buf.FindByOutputNameFrom(buf.Len(), head)
	if target == nil {
		alias, ok := s.DeepGet(head).Alias, s.DeepGet(head).Alias != nil
		if !ok {
			return errors.NewLookup(n.Pos(), head)
		}
		target, idx = buf.FindByOutputNameFrom(buf.Len(), alias.OutputName)
		if target == nil {
			return errors.NewLookup(n.Pos(), head)
		}
	}
	origin, originIdx := buf.OriginOf(target, idx)
	if origin.Kind != microstatement.LETDEC {
		return errors.NewReassignment(n.Pos(), head, "target is not a let-declared binding")
	}

	rhs, ok := n.Value.(*ast.Assignables)
	if !ok {
		return errors.NewSyntax(n.Pos(), "assignment RHS must be an expression")
	}
	v, err := g.fromAssignablesAst(rhs, s, buf)
	if err != nil {
		return err
	}

	if len(n.Path) == 1 {
		last := buf.Last()
		if last.Kind == microstatement.LETDEC {
			refName := microstatement.NewSynthName()
			buf.Append(&microstatement.Microstatement{
				Kind: microstatement.CONSTDEC,
				OutputName: refName,
				OutputType: last.OutputType,
				InputNames: []string{last.OutputName},
			})
			last = buf.Last()
		}
		last.OutputName = origin.OutputName
		last.Kind = microstatement.ASSIGNMENT
		if origin.OutputType != nil && v.OutputType != nil && origin.OutputType.Typename != v.OutputType.Typename {
			last.OutputType = mergeTypes(origin.OutputType, v.OutputType, s)
		}
		return nil
	}

	// Multi-segment path: walk intermediate segments emitting register
	// indirections, then a final copytof/copytov.
	cur := origin
	for _, seg := range n.Path[1 : len(n.Path)-1] {
		_, propIdx, ok := cur.OutputType.Property(seg)
		if !ok {
			return errors.NewLookup(n.Pos(), seg)
		}
		cur = emitFieldAccess(buf, cur, propIdx, cur.OutputType)
	}
	lastSeg := n.Path[len(n.Path)-1]
	_, propIdx, ok := cur.OutputType.Property(lastSeg)
	if !ok {
		return errors.NewLookup(n.Pos(), lastSeg)
	}
	copyFn := "copytov"
	if v.OutputType != nil && (v.OutputType.BuiltIn && isFixedWidth(v.OutputType.Typename)) {
		copyFn = "copytof"
	}
	idxName := microstatement.NewSynthName()
	buf.Append(&microstatement.Microstatement{
		Kind: microstatement.CONSTDEC,
		OutputName: idxName,
		InputNames: []string{itoaDecimal(propIdx)},
	})
	appendPrimitiveCall(s, buf, microstatement.CALL, copyFn, microstatement.NewSynthName(), nil, []string{cur.OutputName, idxName, v.OutputName})
	_ = originIdx
	return nil
}

func isFixedWidth(name string) bool {
	switch name {
	case "int8", "int16", "int32", "int64", "float32", "float64", "bool":
		return true
	}
	return false
}

// mergeTypes performs a best-effort merge: interface sub-slots yield to
// the new type, structural sub-slots keep the original. Two instances of
// the same generic template are merged argument by argument.
func mergeTypes(original, updated *types.Type, s *scope.Scope) *types.Type {
	if original.IsInterface() {
		return updated
	}
	if original.OriginalType != nil && original.OriginalType == updated.OriginalType &&
		len(original.GenericArgs) > 0 && len(original.GenericArgs) == len(updated.GenericArgs) {
		args := make([]*types.Type, len(original.GenericArgs))
		for i := range args {
			args[i] = mergeTypes(original.GenericArgs[i], updated.GenericArgs[i], s)
		}
		return original.OriginalType.Solidify(args, s)
	}
	return original
}
