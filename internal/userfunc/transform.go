package userfunc

import (
	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

// MaybeTransform produces a specialized copy of uf when needed: any
// statement is conditional, any statement contains an object literal whose
// type must be realized through im, or any argument/return type is bound
// in im. This walks the typed AST directly, so there is no need to
// re-serialize and re-parse source when the tree is already structured.
func (uf *UserFunction) MaybeTransform(im types.InterfaceMap, callScope *scope.Scope) (*UserFunction, error) {
	if !uf.needsTransform(im) {
		return uf, nil
	}

	rewritten := make([]ast.Node, len(uf.Statements))
	anyReturned := false
	for i, stmt := range uf.Statements {
		rewritten[i] = realizeObjectLiteralTypes(stmt, im)
	}
	rewritten, anyReturned = rewriteConditionals(rewritten)
	rewritten = wrapAssignmentRHSInRef(rewritten)
	if anyReturned {
		rewritten = threadDidNotReturn(rewritten)
	}

	newArgs := make([]Argument, len(uf.Args))
	for i, a := range uf.Args {
		t := a.Type
		if t != nil {
			if concrete, ok := im[t]; ok {
				t = concrete
			}
		}
		newArgs[i] = Argument{Name: a.Name, Type: t}
	}

	specialized := New(uf.FnName, newArgs, uf.explicitReturnType, rewritten, scope.New(uf.Defscope, nil), uf.pure)
	return specialized, nil
}

// needsTransform reports whether any of the three trigger conditions for
// transformation hold.
func (uf *UserFunction) needsTransform(im types.InterfaceMap) bool {
	for _, stmt := range uf.Statements {
		if containsConditional(stmt) || containsObjectLiteral(stmt) {
			return true
		}
	}
	for _, a := range uf.Args {
		if a.Type != nil {
			if _, ok := im[a.Type]; ok {
				return true
			}
		}
	}
	if uf.explicitReturnType != nil {
		if _, ok := im[uf.explicitReturnType]; ok {
			return true
		}
	}
	return false
}

func containsConditional(n ast.Node) bool {
	if n == nil {
		return false
	}
	if _, ok := n.(*ast.Conditional); ok {
		return true
	}
	for _, c := range n.GetAll() {
		if containsConditional(c) {
			return true
		}
	}
	return false
}

func containsObjectLiteral(n ast.Node) bool {
	if n == nil {
		return false
	}
	if _, ok := n.(*ast.ObjectLiteral); ok {
		return true
	}
	if n.Has("value") && containsObjectLiteral(n.Get("value")) {
		return true
	}
	for _, c := range n.GetAll() {
		if containsObjectLiteral(c) {
			return true
		}
	}
	return false
}

// realizeObjectLiteralTypes rewrites `Base<G1,G2>{...}` object literals to
// the interface-realized type name, wherever one occurs: a bare
// top-level statement, or nested inside an Exit/LetDecl/Assignment's
// value expression (walking that expression's Assignables/
// BaseAssignableSeq element lists to reach it).
func realizeObjectLiteralTypes(n ast.Node, im types.InterfaceMap) ast.Node {
	switch v := n.(type) {
	case nil:
		return nil
	case *ast.ObjectLiteral:
		return realizeObjectLiteralNode(v, im)
	case *ast.Exit:
		if v.Value == nil {
			return v
		}
		return ast.NewExit(realizeObjectLiteralTypes(v.Value, im))
	case *ast.LetDecl:
		return ast.NewLetDecl(v.Name, v.TypeAnnotation, realizeObjectLiteralTypes(v.Value, im))
	case *ast.Assignment:
		return ast.NewAssignment(v.Path, realizeObjectLiteralTypes(v.Value, im))
	case *ast.Assignables:
		elements := make([]ast.Node, len(v.Elements))
		for i, el := range v.Elements {
			elements[i] = realizeObjectLiteralTypes(el, im)
		}
		return ast.NewAssignables(elements...)
	case *ast.BaseAssignableSeq:
		elements := make([]ast.Node, len(v.Elements))
		for i, el := range v.Elements {
			elements[i] = realizeObjectLiteralTypes(el, im)
		}
		return ast.NewBaseAssignableSeq(elements...)
	default:
		return n
	}
}

func realizeObjectLiteralNode(lit *ast.ObjectLiteral, im types.InterfaceMap) *ast.ObjectLiteral {
	newName := lit.TypeName
	for from, to := range im {
		if from.Typename == lit.TypeName {
			newName = to.Typename
			break
		}
	}
	if newName == lit.TypeName {
		return lit
	}
	return ast.NewObjectLiteral(newName, lit.TypeArgs, lit.Fields)
}

// rewriteConditionals rewrites each Conditional: it
// becomes a cond(bool, closure) call per if/elsif branch, and a trailing
// else branch (Condition == nil) becomes cond(not(bool), closure) against
// the negation of its immediately preceding branch's condition. Reports
// whether any branch terminates with a return, needed to decide whether
// step 4's did-not-return threading applies.
func rewriteConditionals(stmts []ast.Node) ([]ast.Node, bool) {
	out := make([]ast.Node, 0, len(stmts))
	anyReturned := false
	for _, stmt := range stmts {
		cond, ok := stmt.(*ast.Conditional)
		if !ok {
			out = append(out, stmt)
			continue
		}
		var lastCondition ast.Node
		for _, branch := range cond.Branches {
			body, returned := rewriteBranchBody(branch.Body)
			if returned {
				anyReturned = true
			}
			if branch.Condition == nil {
				out = append(out, condCall(negate(lastCondition), body))
				continue
			}
			out = append(out, condCall(branch.Condition, body))
			lastCondition = branch.Condition
		}
	}
	return out, anyReturned
}

// rewriteBranchBody applies the same pipeline MaybeTransform applies to a
// function's top-level statement list (nested-conditional rewriting, RHS
// ref-wrapping, then return-rewriting) to one conditional branch's body,
// before that body is embedded in its cond(...) closure. Without this, a
// return nested inside an if/elsif/else stayed an ast.Exit whose value the
// cond(...) closure — a side-effecting primitive call — simply discards,
// so the branch never actually returned anything.
func rewriteBranchBody(body []ast.Node) ([]ast.Node, bool) {
	rewritten, nestedReturned := rewriteConditionals(body)
	returned := nestedReturned || branchReturns(rewritten)
	rewritten = wrapAssignmentRHSInRef(rewritten)
	if returned {
		rewritten = rewriteReturnsInPlace(rewritten)
	}
	return rewritten, returned
}

func branchReturns(body []ast.Node) bool {
	for _, s := range body {
		if _, ok := s.(*ast.Exit); ok {
			return true
		}
	}
	return false
}

// condCall builds `cond(boolExpr, fn { body })`, the primitive call
// form every conditional branch is rewritten into.
func condCall(boolExpr ast.Node, body []ast.Node) ast.Node {
	closureDef := ast.NewFunctionDef("", nil, nil, body, nil)
	call := ast.NewFnCall(boolExpr, ast.NewFunctionLiteral(closureDef))
	return ast.NewBaseAssignableSeq(ast.NewVariable("cond"), call)
}

// negate wraps boolExpr in a `not(...)` call.
func negate(boolExpr ast.Node) ast.Node {
	call := ast.NewFnCall(boolExpr)
	return ast.NewBaseAssignableSeq(ast.NewVariable("not"), call)
}

// wrapAssignmentRHSInRef wraps every assignment and let-declaration RHS
// in ref(...) to give the value an explicit identity distinct from
// whatever it aliases.
func wrapAssignmentRHSInRef(stmts []ast.Node) []ast.Node {
	out := make([]ast.Node, len(stmts))
	for i, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.LetDecl:
			out[i] = ast.NewLetDecl(s.Name, s.TypeAnnotation, refWrap(s.Value))
		case *ast.Assignment:
			out[i] = ast.NewAssignment(s.Path, refWrap(s.Value))
		default:
			out[i] = stmt
		}
	}
	return out
}

func refWrap(rhs ast.Node) ast.Node {
	call := ast.NewFnCall(rhs)
	return ast.NewBaseAssignableSeq(ast.NewVariable("ref"), call)
}

// threadDidNotReturn introduces a did-not-return boolean and a typed
// return slot, rewriting every `return X` into `retVal = ref(X); retNotSet
// = clone(false)`, wrapping the statements that follow each rewritten
// conditional in `cond(retNotSet, …)`, and ending with a single
// `return retVal`.
func threadDidNotReturn(stmts []ast.Node) []ast.Node {
	out := []ast.Node{
		ast.NewLetDecl("retNotSet", nil, boolLiteral(true)),
		ast.NewLetDecl("retVal", nil, voidLiteral()),
	}
	tail := rewriteReturnsInPlace(stmts)
	var guarded []ast.Node
	for i := len(tail) - 1; i >= 0; i-- {
		seq, isSeq := tail[i].(*ast.BaseAssignableSeq)
		if isSeq && len(seq.Elements) > 0 && len(guarded) > 0 {
			if v, ok := seq.Elements[0].(*ast.Variable); ok && v.Name == "cond" {
				guarded = []ast.Node{tail[i], ast.NewBaseAssignableSeq(ast.NewVariable("cond"),
					ast.NewFnCall(ast.NewVariable("retNotSet"), ast.NewFunctionLiteral(
						ast.NewFunctionDef("", nil, nil, guarded, nil))))}
				continue
			}
		}
		guarded = append([]ast.Node{tail[i]}, guarded...)
	}
	out = append(out, guarded...)
	out = append(out, ast.NewExit(ast.NewVariable("retVal")))
	return out
}

func rewriteReturnsInPlace(stmts []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(stmts))
	for _, s := range stmts {
		exit, ok := s.(*ast.Exit)
		if !ok {
			out = append(out, s)
			continue
		}
		out = append(out,
			ast.NewAssignment([]string{"retVal"}, refWrap(exit.Value)),
			ast.NewAssignment([]string{"retNotSet"}, ast.NewBaseAssignableSeq(
				ast.NewVariable("clone"), ast.NewFnCall(boolLiteral(false)))),
		)
	}
	return out
}

func boolLiteral(b bool) ast.Node {
	lexeme := "false"
	if b {
		lexeme = "true"
	}
	return ast.NewConstant(lexeme)
}

func voidLiteral() ast.Node { return ast.NewConstant("void") }
