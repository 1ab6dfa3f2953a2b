package lowering

import (
	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/primitives"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
	"github.com/alantech/irgen/internal/userfunc"
)

// operatorPrecedence ranks the built-in operator symbols; higher binds
// tighter. Unlisted (user-defined) operators default to 0, the loosest
// binding, falling back to left-to-right evaluation for unrecognized
// tokens.
var operatorPrecedence = map[string]int{
	"!": 100, "not": 100,
	"*": 90, "/": 90, "%": 90,
	"+": 80, "-": 80,
	"<": 70, "<=": 70, ">": 70, ">=": 70,
	"==": 60, "!=": 60,
	"&&": 50, "and": 50,
	"||": 40, "or": 40,
}

// slot is one element of the alternating operator/value list
// fromAssignablesAst builds before reducing it.
type slot struct {
	isOperator bool
	op *ast.Operator
	value *microstatement.Microstatement
}

// fromAssignablesAst implements top-level expression entry:
// build an alternating operator/value list (values produced by
// fromBaseAssignableAst), then repeatedly reduce the highest-precedence
// operator, replacing the operator and its consumed neighbors with the
// call's resulting microstatement. The operator is chosen by precedence
// alone: whether its overloads accept the neighbors is not checked while
// choosing, so an operator that is missing or whose overloads do not
// match fails the whole expression with that operator's lookup or
// dispatch error instead of falling back to another operator.
func (g *Generator) fromAssignablesAst(n *ast.Assignables, s *scope.Scope, buf *microstatement.Buffer) (*microstatement.Microstatement, error) {
	slots := make([]slot, 0, len(n.Elements))
	for _, el := range n.Elements {
		switch e := el.(type) {
		case *ast.Operator:
			slots = append(slots, slot{isOperator: true, op: e})
		case *ast.BaseAssignableSeq:
			v, err := g.fromBaseAssignableAst(e, s, buf)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot{value: v})
		default:
			return nil, errors.NewSyntax(el.Pos(), "unsupported assignables element")
		}
	}
	if len(slots) == 0 {
		return nil, errors.NewSyntax(n.Pos(), "empty expression")
	}

	for len(slots) > 1 {
		opIdx, ok := pickHighestPrecedenceOperator(slots)
		if !ok {
			return nil, errors.NewSyntax(n.Pos(), "cannot resolve expression: no operator applicable")
		}
		reduced, consumed, err := g.reduceOperator(slots, opIdx, s, buf)
		if err != nil {
			return nil, err
		}
		slots = spliceSlots(slots, opIdx, consumed, reduced)
	}
	return slots[0].value, nil
}

// pickHighestPrecedenceOperator finds the operator slot with the highest
// precedence, skipping any slot whose immediate right neighbor is itself
// an operator (that neighbor must be a prefix use, per).
func pickHighestPrecedenceOperator(slots []slot) (int, bool) {
	best := -1
	bestPrec := -1
	for i, sl := range slots {
		if !sl.isOperator {
			continue
		}
		if i+1 < len(slots) && slots[i+1].isOperator {
			continue
		}
		prec := operatorPrecedence[sl.op.Symbol]
		if prec > bestPrec {
			bestPrec = prec
			best = i
		}
	}
	return best, best >= 0
}

// reduceOperator dispatches the operator at slots[opIdx] against its
// neighbor(s): prefix operators (no left value, or left neighbor is
// itself an operator) take only the right operand; infix operators take
// both. Returns the resulting microstatement and how many slots
// (including the operator itself) the reduction consumed.
func (g *Generator) reduceOperator(slots []slot, opIdx int, s *scope.Scope, buf *microstatement.Buffer) (*microstatement.Microstatement, []int, error) {
	op := slots[opIdx].op
	hasLeft := opIdx > 0 && !slots[opIdx-1].isOperator
	prefix := !op.Infix || !hasLeft

	var args []*microstatement.Microstatement
	var span []int
	if prefix {
		if opIdx+1 >= len(slots) {
			return nil, nil, errors.NewSyntax(op.Pos(), "prefix operator with no operand")
		}
		args = []*microstatement.Microstatement{slots[opIdx+1].value}
		span = []int{opIdx, opIdx + 1}
	} else {
		args = []*microstatement.Microstatement{slots[opIdx-1].value, slots[opIdx+1].value}
		span = []int{opIdx - 1, opIdx, opIdx + 1}
	}

	candidates := s.DeepGet(op.Symbol).Operators
	if len(candidates) == 0 {
		return nil, nil, errors.NewLookup(op.Pos(), op.Symbol)
	}
	actualTypes := make([]*types.Type, len(args))
	actualNames := make([]string, len(args))
	for i, a := range args {
		actualTypes[i] = a.OutputType
		actualNames[i] = a.OutputName
	}
	chosen, im, err := userfunc.DispatchFn(candidates, actualTypes, s, op.Pos())
	if err != nil {
		return nil, nil, err
	}

	outputName := microstatement.NewSynthName()
	var result *microstatement.Microstatement
	switch fn := chosen.(type) {
	case *userfunc.UserFunction:
		if err := fn.MicrostatementInlining(actualNames, s, buf, g, op.Pos()); err != nil {
			return nil, nil, err
		}
		result = buf.Last()
	case *primitives.Primitive:
		m, err := fn.Inline(buf, outputName, fn.RetType, args)
		if err != nil {
			return nil, nil, err
		}
		if fn.RetType != nil {
			m.OutputType = rewriteInterfaceMapType(fn.RetType, im)
		}
		result = m
	default:
		result = callPrimitive(outputName, args, buf)
	}
	return result, span, nil
}

// spliceSlots replaces slots[span[0]:span[len-1]+1] with a single value
// slot holding reduced.
func spliceSlots(slots []slot, opIdx int, span []int, reduced *microstatement.Microstatement) []slot {
	from, to := span[0], span[len(span)-1]
	out := make([]slot, 0, len(slots)-(to-from))
	out = append(out, slots[:from]...)
	out = append(out, slot{value: reduced})
	out = append(out, slots[to+1:]...)
	return out
}
