package lowering

import (
	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

// fromArrayLiteralAst implements array-literal lowering:
// lower each element; decide the element type from the declared generic
// if present, else from the first element; emit newarr(size), then a
// pusharr(arr, value, elementSize) per element, where elementSize is 8
// for fixed-width primitives and 0 otherwise; REREF the array.
func (g *Generator) fromArrayLiteralAst(n *ast.ArrayLiteral, s *scope.Scope, buf *microstatement.Buffer) (*microstatement.Microstatement, error) {
	elements := make([]*microstatement.Microstatement, 0, len(n.Elements))
	for _, elNode := range n.Elements {
		seq, ok := elNode.(*ast.Assignables)
		if !ok {
			return nil, errors.NewSyntax(elNode.Pos(), "array element must be an expression")
		}
		v, err := g.fromAssignablesAst(seq, s, buf)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}

	var elemType *types.Type
	if n.ElementType != nil {
		if ann, ok := n.ElementType.(*ast.TypeAnnotation); ok {
			elemType = resolveAnnotation(ann, s)
		}
	}
	if elemType == nil && len(elements) > 0 {
		elemType = elements[0].OutputType
	}
	elementSize := "0"
	if elemType != nil && elemType.BuiltIn && isFixedWidth(elemType.Typename) {
		elementSize = "8"
	}

	sizeName := microstatement.NewSynthName()
	buf.Append(&microstatement.Microstatement{
		Kind: microstatement.CONSTDEC,
		OutputName: sizeName,
		InputNames: []string{itoaDecimal(len(elements))},
	})
	arrName := microstatement.NewSynthName()
	arrType := arrayTypeOf(elemType, s)
	appendPrimitiveCall(s, buf, microstatement.CONSTDEC, "newarr", arrName, arrType, []string{sizeName})

	for _, el := range elements {
		sizeLit := microstatement.NewSynthName()
		buf.Append(&microstatement.Microstatement{
			Kind: microstatement.CONSTDEC,
			OutputName: sizeLit,
			InputNames: []string{elementSize},
		})
		appendPrimitiveCall(s, buf, microstatement.CALL, "pusharr", microstatement.NewSynthName(), nil, []string{arrName, el.OutputName, sizeLit})
	}

	rerefName := microstatement.NewSynthName()
	reref := &microstatement.Microstatement{
		Kind: microstatement.REREF,
		OutputName: rerefName,
		OutputType: arrType,
		InputNames: []string{arrName},
	}
	buf.Append(reref)
	return reref, nil
}

// fromObjectLiteralAst implements record-literal lowering:
// enforce that the provided field set exactly matches the declared
// type's field set, lower fields in declared order (not textual order),
// then follow the same newarr/pusharr protocol as array literals.
func (g *Generator) fromObjectLiteralAst(n *ast.ObjectLiteral, s *scope.Scope, buf *microstatement.Buffer) (*microstatement.Microstatement, error) {
	declared := lookupType(s.DeepGet(n.TypeName).Type)
	if declared == nil {
		return nil, errors.NewLookup(n.Pos(), n.TypeName)
	}

	provided := make(map[string]ast.Node, len(n.Fields))
	for _, f := range n.Fields {
		provided[f.Name] = f.Value
	}
	var missing, extra []string
	for _, name := range declared.FieldNames() {
		if _, ok := provided[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range provided {
		if _, _, ok := declared.Property(name); !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return nil, errors.NewLiteralShape(n.Pos(), n.TypeName, missing, extra)
	}

	sizeName := microstatement.NewSynthName()
	buf.Append(&microstatement.Microstatement{
		Kind: microstatement.CONSTDEC,
		OutputName: sizeName,
		InputNames: []string{itoaDecimal(len(declared.Properties))},
	})
	recName := microstatement.NewSynthName()
	appendPrimitiveCall(s, buf, microstatement.CONSTDEC, "newarr", recName, declared, []string{sizeName})

	for _, prop := range declared.Properties {
		valNode, ok := provided[prop.Name]
		if !ok {
			continue
		}
		seq, ok := valNode.(*ast.Assignables)
		if !ok {
			return nil, errors.NewSyntax(valNode.Pos(), "object field value must be an expression")
		}
		v, err := g.fromAssignablesAst(seq, s, buf)
		if err != nil {
			return nil, err
		}
		elementSize := "0"
		if prop.Type != nil && prop.Type.BuiltIn && isFixedWidth(prop.Type.Typename) {
			elementSize = "8"
		}
		sizeLit := microstatement.NewSynthName()
		buf.Append(&microstatement.Microstatement{
			Kind: microstatement.CONSTDEC,
			OutputName: sizeLit,
			InputNames: []string{elementSize},
		})
		appendPrimitiveCall(s, buf, microstatement.CALL, "pusharr", microstatement.NewSynthName(), nil, []string{recName, v.OutputName, sizeLit})
	}

	rerefName := microstatement.NewSynthName()
	reref := &microstatement.Microstatement{
		Kind: microstatement.REREF,
		OutputName: rerefName,
		OutputType: declared,
		InputNames: []string{recName},
	}
	buf.Append(reref)
	return reref, nil
}

func resolveAnnotation(ann *ast.TypeAnnotation, s *scope.Scope) *types.Type {
	return lookupType(s.DeepGet(ann.Name).Type)
}

// arrayLiteralTemplate is the Array<T> template every array-literal
// instantiation solidifies against, shared across calls so repeated
// literals of the same element type land on the same synthetic name.
var arrayLiteralTemplate = &types.Type{Typename: "Array", BuiltIn: true, Generics: map[string]int{"T": 0}}

func arrayTypeOf(elem *types.Type, s *scope.Scope) *types.Type {
	if elem == nil {
		elem = types.NewBuiltin("void")
	}
	return arrayLiteralTemplate.Solidify([]*types.Type{elem}, s)
}
