package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesYamlAndDefaultsSynthPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "irgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("disabled_primitives: [\"newarr\"]\ndispatch_verbose: true\n"), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"newarr"}, opts.DisabledPrimitives)
	require.True(t, opts.DispatchVerbose)
	require.Equal(t, "_", opts.SynthPrefix)
}

func TestLoadRespectsExplicitSynthPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "irgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("synth_prefix: \"tmp\"\n"), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "tmp", opts.SynthPrefix)
}

func TestLoadMissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadDotEnvToleratesMissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
}

func TestLoadDotEnvReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("IRGEN_TRACE=1\n"), 0o644))
	require.NoError(t, os.Unsetenv("IRGEN_TRACE"))

	err := LoadDotEnv(path)
	require.NoError(t, err)
	require.Equal(t, "1", os.Getenv("IRGEN_TRACE"))
}
