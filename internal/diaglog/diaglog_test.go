package diaglog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alantech/irgen/internal/errors"
	"github.com/alantech/irgen/internal/token"
)

func TestLineFormatsWithPosition(t *testing.T) {
	var buf bytes.Buffer
	err := errors.NewLookup(token.Position{Line: 3, Col: 5}, "foo")
	line := Line(&buf, "mod.fn", err)
	require.Equal(t, `mod.fn:3:5: LookupError: "foo" is not defined in any reachable scope`, line)
}

func TestLineFormatsWithoutPositionWhenZero(t *testing.T) {
	var buf bytes.Buffer
	err := errors.NewLookup(token.Position{}, "foo")
	line := Line(&buf, "mod.fn", err)
	require.Equal(t, `mod.fn: LookupError: "foo" is not defined in any reachable scope`, line)
}

func TestReportWritesOneLinePerError(t *testing.T) {
	var buf bytes.Buffer
	errs := []*errors.CompileError{
		errors.NewLookup(token.Position{Line: 1, Col: 1}, "a"),
		errors.NewLookup(token.Position{Line: 2, Col: 1}, "b"),
	}
	Report(&buf, "mod.fn", errs)
	require.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestWarnWritesNonFatalLine(t *testing.T) {
	var buf bytes.Buffer
	Warn(&buf, "mod.fn", "unused import")
	require.Equal(t, "mod.fn: warning: unused import\n", buf.String())
}

func TestColorEnabledFalseForNonFileWriter(t *testing.T) {
	var buf bytes.Buffer
	require.False(t, colorEnabled(&buf))
}
