package userfunc

import (
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/token"
	"github.com/alantech/irgen/internal/types"
)

// MicrostatementInlining inlines uf's body at a call site, run once
// dispatchFn has already chosen uf as the callee. actualArgNames name
// microstatements already present in buf.
func (uf *UserFunction) MicrostatementInlining(actualArgNames []string, callScope *scope.Scope, buf *microstatement.Buffer, lowerer StatementLowerer, pos token.Position) error {
	if stack := recursionStack(buf, uf); stack != nil {
		return errors.NewRecursion(pos, append(stack, uf.FnName))
	}

	enterIdx := buf.Len()
	buf.Append(&microstatement.Microstatement{
		Kind: microstatement.ENTERFN,
		OutputName: microstatement.NewSynthName(),
		FnMarker: uf,
	})

	im := types.InterfaceMap{}
	actuals := make([]*microstatement.Microstatement, len(actualArgNames))
	for i, name := range actualArgNames {
		m, idx := buf.FindByOutputNameFrom(buf.Len(), name)
		if m == nil {
			return errors.NewLookup(pos, name)
		}
		origin, _ := buf.OriginOf(m, idx)
		actuals[i] = m
		if i < len(uf.Args) && uf.Args[i].Type != nil && origin.OutputType != nil {
			uf.Args[i].Type.TypeApplies(origin.OutputType, callScope, im)
		}
	}

	prelude := buf.Len()
	for i, formal := range uf.Args {
		var outputType *types.Type
		var outputName string
		if i < len(actuals) {
			outputType = actuals[i].OutputType
			outputName = actuals[i].OutputName
		}
		buf.Append(&microstatement.Microstatement{
			Kind: microstatement.REREF,
			OutputName: outputName,
			OutputType: outputType,
			Alias: formal.Name,
		})
	}

	specialized, err := uf.MaybeTransform(im, callScope)
	if err != nil {
		return err
	}

	fnScope := scope.New(specialized.Defscope, nil)
	for _, stmt := range specialized.Statements {
		if err := lowerer.LowerStatement(stmt, fnScope, buf); err != nil {
			return err
		}
	}

	pruneREREFs(buf, prelude, buf.Len()-1)

	last := buf.Last()
	declaredReturn := specialized.GetReturnType(lowerer)
	if last != nil && declaredReturn != nil {
		last.OutputType = rewriteReturnType(declaredReturn, im, actuals, last.OutputType)
	}

	removeENTERFN(buf, enterIdx, uf)
	return nil
}

// recursionStack scans buf for an ENTERFN marker belonging to uf; if
// found, returns the chain of UserFunction names between it and the end
// of buf.
func recursionStack(buf *microstatement.Buffer, uf *UserFunction) []string {
	var stack []string
	for i := 0; i < buf.Len(); i++ {
		m := buf.At(i)
		if m.Kind != microstatement.ENTERFN {
			continue
		}
		if marker, ok := m.FnMarker.(*UserFunction); ok && (marker == uf || stack != nil) {
			stack = append(stack, marker.FnName)
		}
	}
	return stack
}

// pruneREREFs removes every REREF in [from, to) -- the argument binding
// and intermediate-variable aliases introduced while lowering the callee
// body -- leaving the final REREF (the return value) alone.
func pruneREREFs(buf *microstatement.Buffer, from, to int) {
	kept := buf.All()[:from:from]
	for i := from; i < to && i < buf.Len(); i++ {
		m := buf.At(i)
		if m.Kind == microstatement.REREF {
			continue
		}
		kept = append(kept, m)
	}
	for i := to; i < buf.Len(); i++ {
		kept = append(kept, buf.At(i))
	}
	buf.Truncate(0)
	for _, m := range kept {
		buf.Append(m)
	}
}

// removeENTERFN strips the ENTERFN marker this call pushed, once the
// callee has finished lowering.
func removeENTERFN(buf *microstatement.Buffer, markerIdx int, uf *UserFunction) {
	kept := buf.All()[:markerIdx:markerIdx]
	for i := markerIdx; i < buf.Len(); i++ {
		m := buf.At(i)
		if m.Kind == microstatement.ENTERFN {
			if marker, ok := m.FnMarker.(*UserFunction); ok && marker == uf {
				continue
			}
		}
		kept = append(kept, m)
	}
	buf.Truncate(0)
	for _, m := range kept {
		buf.Append(m)
	}
}

// rewriteReturnType handles the case where the declared return type is
// (or contains) an interface: it rewrites the call's output type to the
// concrete type implied by the interface map and actual argument types,
// rather than the literal interface name.
func rewriteReturnType(declared *types.Type, im types.InterfaceMap, actuals []*microstatement.Microstatement, fallback *types.Type) *types.Type {
	if declared.IsInterface() {
		if concrete, ok := im[declared]; ok {
			return concrete
		}
		for _, a := range actuals {
			if a.OutputType != nil && declared.TypeApplies(a.OutputType, nil, nil) {
				return a.OutputType
			}
		}
		return declared
	}
	if len(declared.Generics) > 0 || len(declared.GenericArgs) > 0 {
		return declared.Realize(im, nil)
	}
	if fallback != nil {
		return fallback
	}
	return declared
}
