// Package backend renders a lowered microstatement buffer to its textual
// form: one line per emitted microstatement, in buffer order, with
// REREF/ARG/CLOSUREDEF/ENTERFN/ENTERCONDFN kinds suppressed as internal
// metadata.
//
// This is a stand-in for a real downstream code generator — machine-code
// generation is out of scope here — so the core has a concrete handoff
// point: a backend consumes microstatements rather than an evaluated
// value tree.
package backend

import "github.com/alantech/irgen/internal/microstatement"

// Render renders every microstatement in buf to its textual form,
// skipping kinds that carry no user-visible output, and joins the result
// with newlines.
func Render(buf *microstatement.Buffer) string {
	out := make([]byte, 0, buf.Len()*32)
	first := true
	for _, m := range buf.All() {
		line := m.String()
		if line == "" {
			continue
		}
		if !first {
			out = append(out, '\n')
		}
		first = false
		out = append(out, line...)
	}
	return string(out)
}

// RenderFunction renders the body of a single function/handler: the
// label line followed by its statements, indented by one tab to nest
// the body under its enclosing declaration.
func RenderFunction(name string, buf *microstatement.Buffer) string {
	out := "fn " + name + " {\n"
	for _, m := range buf.All() {
		line := m.String()
		if line == "" {
			continue
		}
		out += "\t" + line + "\n"
	}
	return out + "}"
}
