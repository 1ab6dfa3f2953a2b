package ast

// TypeAnnotation is a type reference as written in source: a bare name
// (`int64`), or a generic application (`Array<int64>`, `Base<G1, G2>`).
// UserFunction.maybeTransform retargets these via the realized interface
// map by walking the tree rather than rewriting source text.
type TypeAnnotation struct {
	base
	Name string
	Args []*TypeAnnotation
}

func NewTypeAnnotation(name string, args ...*TypeAnnotation) *TypeAnnotation {
	return &TypeAnnotation{Name: name, Args: args}
}

func (n *TypeAnnotation) Kind() Kind { return KTypeAnnotation }
func (n *TypeAnnotation) Has(name string) bool { return false }
func (n *TypeAnnotation) Get(name string) Node { return nil }
func (n *TypeAnnotation) GetAll() []Node {
	out := make([]Node, len(n.Args))
	for i, a := range n.Args {
		out[i] = a
	}
	return out
}

// IsGeneric reports whether this annotation applies type arguments.
func (n *TypeAnnotation) IsGeneric() bool { return len(n.Args) > 0 }
