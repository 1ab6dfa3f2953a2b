package factstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run", "facts.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesParentDirectoryAndMigrates(t *testing.T) {
	openTestStore(t)
}

func TestRecordMicrostatementInsertsRow(t *testing.T) {
	s := openTestStore(t)
	err := s.RecordMicrostatement("example", "main", 0, "CONSTDEC", "_c1", "int64", "1")
	require.NoError(t, err)
}

func TestRecordMicrostatementAcceptsRepeatedSequenceNumbers(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.RecordMicrostatement("example", "main", 0, "CONSTDEC", "_c1", "int64", "1"))
	require.NoError(t, s.RecordMicrostatement("example", "main", 0, "CALL", "_c2", "int64", "_c1"))
}
