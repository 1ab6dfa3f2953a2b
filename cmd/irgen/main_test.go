package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandMetadata(t *testing.T) {
	root := newRootCommand()
	require.Equal(t, "irgen", root.Use)
	require.Equal(t, "0.1.0", root.Version)

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"lower", "dump-primitives", "serve"}, names)
}

func TestLowerCommandRendersEachModule(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"lower", "alpha", "beta"})

	err := root.Execute()
	require.NoError(t, err)
	require.Contains(t, out.String(), "fn main {")
}

func TestLowerCommandRecordsToFactStoreWhenFlagIsSet(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	dbPath := filepath.Join(t.TempDir(), "run", "facts.db")
	root.SetArgs([]string{"lower", "alpha", "--fact-store", dbPath})

	err := root.Execute()
	require.NoError(t, err)
	require.FileExists(t, dbPath)
}

func TestLowerCommandRequiresAtLeastOneModule(t *testing.T) {
	root := newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"lower"})

	err := root.Execute()
	require.Error(t, err)
}

func TestDumpPrimitivesCommandListsSortedCatalog(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"dump-primitives"})

	err := root.Execute()
	require.NoError(t, err)
	require.Contains(t, out.String(), "addi64")
}

func TestServeCommandFlagDefaultsToPort9090(t *testing.T) {
	cmd := newServeCommand()
	flag := cmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	require.Equal(t, ":9090", flag.DefValue)
}
