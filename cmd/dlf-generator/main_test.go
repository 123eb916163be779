package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlf-generator/dlf"
	"dlf-generator/internal/config"
	"dlf-generator/internal/manifest"
)

const exampleManifest = "../../examples/basic/lib/filters.json"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.Code)
}

func TestValidate_Example(t *testing.T) {
	out, err := run(t, "--manifest", exampleManifest, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "manifest is valid")
}

func TestValidate_Failures(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(filepath.Join(lib, "hankel"), 0o755))

	missing := `{"hankel": [{"name": "kong_61_2007", "author": "Kong", "year": "2007", "appendix": "",
		"points": 61, "values": "j0,j1", "file": "lib/hankel/kong_61_2007_j0j1.txt"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(lib, "filters.json"), []byte(missing), 0o644))

	out, err := run(t, "--manifest", filepath.Join(lib, "filters.json"), "validate")
	requireExitCode(t, err, exitInvalid)
	assert.Contains(t, out, "file_not_found")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"hankel": [{"name": 3}]}`), 0o644))

	_, err = run(t, "--manifest", bad, "validate")
	requireExitCode(t, err, exitInvalid)
	require.ErrorIs(t, err, manifest.ErrManifestFormat)
}

func TestList(t *testing.T) {
	out, err := run(t, "--manifest", exampleManifest, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "name: demo_11_2024")
	assert.Less(t, strings.Index(out, "hankel:"), strings.Index(out, "fourier:"))

	out, err = run(t, "--manifest", exampleManifest, "list", "fourier")
	require.NoError(t, err)
	assert.NotContains(t, out, "hankel:")
	assert.Contains(t, out, "values: sin,cos")

	_, err = run(t, "--manifest", exampleManifest, "list", "laplace")
	require.ErrorContains(t, err, `unknown transform "laplace"`)

	_, err = run(t, "--manifest", exampleManifest, "list", "hankle")
	require.ErrorContains(t, err, "did you mean hankel?")
}

func TestInspect(t *testing.T) {
	out, err := run(t, "--manifest", exampleManifest, "inspect", "--raw", "hankel", "demo_11_2024")
	require.NoError(t, err)

	assert.Contains(t, out, "# Demo (2024): 11 pt Hankel J0-J1 filter")
	assert.Contains(t, out, "- `j1` (`[]float64`)")
	assert.Contains(t, out, "| points | 11 |")

	out, err = run(t, "--manifest", exampleManifest, "inspect", "fourier", "demo_9_2024")
	require.NoError(t, err)
	assert.Contains(t, out, "Fourier")

	_, err = run(t, "--manifest", exampleManifest, "inspect", "hankel", "demo_11")
	require.ErrorContains(t, err, "did you mean demo_11_2024")

	_, err = run(t, "--manifest", exampleManifest, "inspect", "hankle", "demo_11_2024")
	require.ErrorContains(t, err, `unknown transform "hankle"; did you mean hankel?`)
}

func TestGen(t *testing.T) {
	out := filepath.Join(t.TempDir(), "libdlf")

	stdout, err := run(t, "--manifest", exampleManifest, "gen", "--out", out, "--import-path", "example.com/libdlf")
	require.NoError(t, err)
	assert.Contains(t, stdout, "generated 3 filters")

	for _, name := range []string{
		"libdlf.go",
		"hankel/hankel.go",
		"fourier/fourier.go",
		"lib/lib.go",
		"lib/filters.json",
		"lib/hankel/demo_11_2024_j0j1.txt",
	} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(name)))
	}
}

func TestGen_Binary(t *testing.T) {
	out := filepath.Join(t.TempDir(), "libdlf")

	_, err := run(t, "--manifest", exampleManifest, "gen", "--out", out, "--import-path", "example.com/libdlf",
		"--policy", "binary", "--compression", "zstd", "--embed=false")
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(out, "lib", "hankel", "demo_11_2024_j0j1.txt"))

	fh, err := os.Open(filepath.Join(out, "lib", "hankel", "demo_11_2024_j0j1.dlfz"))
	require.NoError(t, err)

	defer fh.Close()

	cols, err := dlf.ReadBinary(fh)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Len(t, cols[0], 11)

	lib, err := os.ReadFile(filepath.Join(out, "lib", "lib.go"))
	require.NoError(t, err)
	assert.Contains(t, string(lib), "os.DirFS(Root)")
}

func TestGen_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(filepath.Join(lib, "hankel"), 0o755))

	doc := `{"hankel": [{"name": "kong_61_2007", "author": "Kong", "year": "2007", "appendix": "",
		"points": 61, "values": "j0,j1", "file": "lib/hankel/kong_61_2007_j0j1.txt"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(lib, "filters.json"), []byte(doc), 0o644))

	out := filepath.Join(dir, "generated")

	_, err := run(t, "--manifest", filepath.Join(lib, "filters.json"), "gen", "--out", out, "--import-path", "example.com/libdlf")
	requireExitCode(t, err, exitInvalid)
	require.ErrorContains(t, err, "manifest validation failed")
	require.ErrorContains(t, err, "hankel/kong_61_2007: [file_not_found]")
	assert.NoDirExists(t, out)
}

func TestGen_InvalidConfig(t *testing.T) {
	_, err := run(t, "--manifest", exampleManifest, "gen", "--out", t.TempDir(), "--policy", "npz")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestVerify_SyntheticExampleFails(t *testing.T) {
	out, err := run(t, "--manifest", exampleManifest, "verify", "hankel")
	requireExitCode(t, err, exitInvalid)

	assert.Contains(t, out, "hankel/demo_11_2024")
	assert.NotContains(t, out, "fourier/")
}

// writeExactLibrary writes one-point filters whose weights reproduce the
// Gaussian pairs at r = 1.
func writeExactLibrary(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(filepath.Join(lib, "hankel"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(lib, "fourier"), 0o755))

	e := math.Exp(-0.25)
	j0 := e / 2 / math.Exp(-1)
	j1 := e / 4 / math.Exp(-1)
	sin := math.Sqrt(math.Pi) * e / 4 / math.Exp(-1)
	cos := math.Sqrt(math.Pi) * e / 2 / math.Exp(-1)

	row := func(vals ...float64) string {
		parts := []string{"1"}
		for _, v := range vals {
			parts = append(parts, strconv.FormatFloat(v, 'e', -1, 64))
		}

		return "# Exact (2024): 1 pt filter\n# This file is part of libdlf.\n" + strings.Join(parts, " ") + "\n"
	}

	require.NoError(t, os.WriteFile(filepath.Join(lib, "hankel", "exact_1_2024_j0j1.txt"), []byte(row(j0, j1)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "fourier", "exact_1_2024_sincos.txt"), []byte(row(sin, cos)), 0o644))

	doc := `{
  "hankel": [{"name": "exact_1_2024", "author": "Exact", "year": "2024", "appendix": "", "points": 1,
    "values": "j0,j1", "file": "lib/hankel/exact_1_2024_j0j1.txt"}],
  "fourier": [{"name": "exact_1_2024", "author": "Exact", "year": "2024", "appendix": "", "points": 1,
    "values": "sin,cos", "file": "lib/fourier/exact_1_2024_sincos.txt"}]
}`
	path := filepath.Join(lib, "filters.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	return path
}

func TestVerify_Exact(t *testing.T) {
	out, err := run(t, "--manifest", writeExactLibrary(t), "verify")
	require.NoError(t, err)

	assert.Contains(t, out, "j0: pass")
	assert.Contains(t, out, "cos: pass")
	assert.Contains(t, out, "fourier/exact_1_2024")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	_, err := run(t, "config", "init", path)
	require.NoError(t, err)

	_, err = run(t, "config", "init", path)
	require.Error(t, err)

	out, err := run(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# loaded from "+path)
	assert.Contains(t, out, "package_name")
}
