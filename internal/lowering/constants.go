package lowering

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/alantech/irgen/internal/ast"
	"github.com/alantech/irgen/internal/microstatement"
	"github.com/alantech/irgen/internal/scope"
	"github.com/alantech/irgen/internal/types"
)

// fromConstantsAst emits a CONSTDEC with a fresh output name and the
// literal payload. The type is inferred from the
// lexeme's shape (bool/string/float64/int64); strings are re-serialized
// via a JSON round-trip, octal/decimal leading zeros are normalized, and
// escape-bearing strings fall back to a wrapped-string hack so the
// rendered literal survives the backend's textual output stage unchanged.
func (g *Generator) fromConstantsAst(c *ast.Constant, s *scope.Scope, buf *microstatement.Buffer) *microstatement.Microstatement {
	lexeme := c.Lexeme
	outputName := microstatement.NewSynthName()

	var outputType *types.Type
	var payload string

	switch {
	case lexeme == "true" || lexeme == "false":
		outputType = builtinRef(s, "bool")
		payload = lexeme
	case strings.HasPrefix(lexeme, `"`) || strings.HasPrefix(lexeme, "'"):
		outputType = builtinRef(s, "string")
		payload = normalizeStringLexeme(lexeme)
	case strings.ContainsAny(lexeme, ".eE") && looksNumeric(lexeme):
		outputType = builtinRef(s, "float64")
		if f, err := strconv.ParseFloat(lexeme, 64); err == nil {
			payload = strconv.FormatFloat(f, 'g', -1, 64)
		} else {
			payload = lexeme
		}
	case looksNumeric(lexeme):
		outputType = builtinRef(s, "int64")
		payload = normalizeIntLexeme(lexeme)
	default:
		// Not a recognized literal shape; treat as a void placeholder
		// rather than fail the whole buffer outright.
		outputType = builtinRef(s, "void")
		payload = lexeme
	}

	m := &microstatement.Microstatement{
		Kind: microstatement.CONSTDEC,
		OutputName: outputName,
		OutputType: outputType,
		InputNames: []string{payload},
	}
	buf.Append(m)
	return m
}

func looksNumeric(lexeme string) bool {
	if lexeme == "" {
		return false
	}
	for i, r := range lexeme {
		if r >= '0' && r <= '9' {
			continue
		}
		if (r == '-' || r == '+') && i == 0 {
			continue
		}
		if r == '.' || r == 'e' || r == 'E' {
			continue
		}
		return false
	}
	return true
}

// normalizeStringLexeme re-serializes an escape-free quoted lexeme through
// a JSON round trip so it renders double-quoted regardless of the source
// quoting style (single vs double). A lexeme containing a backslash keeps
// its escapes as written inside a double-quoted wrapper.
func normalizeStringLexeme(lexeme string) string {
	inner := lexeme
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	encoded, err := json.Marshal(inner)
	if err != nil || strings.Contains(inner, `\`) {
		// Escape-containing strings fall back to a wrapped literal: the
		// JSON round trip would escape their backslashes a second time.
		return `"` + strings.ReplaceAll(inner, `"`, `\"`) + `"`
	}
	return string(encoded)
}

// normalizeIntLexeme strips a leading-zero octal/decimal ambiguity
// (Go's strconv would otherwise reject "007" for ParseInt base 10, and
// base-0 parsing would treat it as octal).
func normalizeIntLexeme(lexeme string) string {
	neg := strings.HasPrefix(lexeme, "-")
	trimmed := strings.TrimPrefix(lexeme, "-")
	trimmed = strings.TrimLeft(trimmed, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	if neg {
		return "-" + trimmed
	}
	return trimmed
}

func builtinRef(s *scope.Scope, name string) *types.Type {
	if e := s.DeepGet(name); e.Type != nil {
		if t, ok := e.Type.(*types.Type); ok {
			return t
		}
	}
	return types.NewBuiltin(name)
}
