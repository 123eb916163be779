package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlf-generator/dlf"
	"dlf-generator/internal/header"
	"dlf-generator/internal/manifest"
)

const exampleManifest = "../../examples/basic/lib/filters.json"

func loadExample(t *testing.T) (*manifest.Manifest, manifest.Layout) {
	t.Helper()

	m, err := manifest.Load(exampleManifest)
	require.NoError(t, err)

	return m, manifest.NewLayout(exampleManifest, "")
}

func testConfig(t *testing.T) GeneratorConfig {
	t.Helper()

	cfg := DefaultGeneratorConfig()
	cfg.ImportPath = "example.com/filters/libdlf"
	cfg.OutputDir = t.TempDir()
	cfg.Version = "1.2.3"

	return cfg
}

func byName(files []GeneratedFile) map[string]string {
	out := make(map[string]string, len(files))
	for _, f := range files {
		out[f.Filename] = string(f.Content)
	}

	return out
}

func TestGenerator_Generate_Example(t *testing.T) {
	m, layout := loadExample(t)

	files, err := NewGenerator(testConfig(t)).Generate(m, layout)
	require.NoError(t, err)

	got := byName(files)

	var names []string
	for _, f := range files {
		names = append(names, f.Filename)
	}

	assert.ElementsMatch(t, []string{
		"lib/filters.json",
		"lib/hankel/demo_11_2024_j0j1.txt",
		"lib/hankel/demo_7_2023a_j0.txt",
		"hankel/hankel.go",
		"lib/fourier/demo_9_2024_sincos.txt",
		"fourier/fourier.go",
		"lib/lib.go",
		"libdlf.go",
	}, names)

	hankel := got["hankel/hankel.go"]
	assert.Equal(t, 2, strings.Count(hankel, "lib.Library.Register("))
	assert.Contains(t, hankel, "package hankel")
	assert.Contains(t, hankel, `"example.com/filters/libdlf/lib"`)
	assert.Contains(t, hankel, "func Demo11_2024() (base, j0, j1 []float64, err error) {")
	assert.Contains(t, hankel, "func Demo7_2023a() (base, j0 []float64, err error) {")
	assert.Contains(t, hankel, "return t.Base, t.Values[0], t.Values[1], nil")
	assert.Contains(t, hankel, "return nil, nil, nil, err")
	assert.Contains(t, hankel, `File:      "hankel/demo_11_2024_j0j1.txt",`)
	assert.Contains(t, hankel, `Values:    []string{"j0", "j1"},`)
	assert.Contains(t, hankel, "Format:    dlf.FormatText,")
	assert.Contains(t, hankel, "// Demo (2024): 11 pt Hankel J0-J1 filter\n")
	assert.Contains(t, hankel, "//\t> Demo, A., 2024")
	assert.Contains(t, hankel, "// # Returns\n")
	assert.Contains(t, hankel, "//\tbase, j0, j1 []float64\n")
	assert.Less(t, strings.Index(hankel, "func Demo11_2024"), strings.Index(hankel, "func Demo7_2023a"))

	fourier := got["fourier/fourier.go"]
	assert.Equal(t, 1, strings.Count(fourier, "lib.Library.Register("))
	assert.Contains(t, fourier, "func Demo9_2024() (base, sin, cos []float64, err error) {")
	assert.Contains(t, fourier, "var Names = []string{\n\t\"demo_9_2024\",\n}")

	lib := got["lib/lib.go"]
	assert.Contains(t, lib, "//go:embed filters.json all:hankel all:fourier\n")
	assert.Contains(t, lib, `"dlf-generator/dlf"`)
	assert.NotContains(t, lib, LibPathEnv)

	index := got["libdlf.go"]
	assert.Contains(t, index, "package libdlf")
	assert.Contains(t, index, `const Version = "1.2.3"`)
	assert.Contains(t, index, "var Transforms = []string{\n\t\"hankel\",\n\t\"fourier\",\n}")
	assert.Contains(t, index, "return hankel.Filters()")

	src, err := os.ReadFile("../../examples/basic/lib/hankel/demo_7_2023a_j0.txt")
	require.NoError(t, err)
	assert.Equal(t, string(src), got["lib/hankel/demo_7_2023a_j0.txt"])

	shipped, err := manifest.Parse([]byte(got["lib/filters.json"]), "filters.json")
	require.NoError(t, err)
	assert.Equal(t, m, shipped)
}

func TestGenerator_Generate_Binary(t *testing.T) {
	m, layout := loadExample(t)

	cfg := testConfig(t)
	cfg.Materializer.Policy = dlf.FormatBinary
	cfg.Materializer.Compression = dlf.CompressionLZ4

	files, err := NewGenerator(cfg).Generate(m, layout)
	require.NoError(t, err)

	got := byName(files)

	assert.Contains(t, got, "lib/hankel/demo_11_2024_j0j1.dlfz")
	assert.NotContains(t, got, "lib/hankel/demo_11_2024_j0j1.txt")
	assert.Contains(t, got["hankel/hankel.go"], `File:      "hankel/demo_11_2024_j0j1.dlfz",`)
	assert.Contains(t, got["hankel/hankel.go"], "Format:    dlf.FormatBinary,")
}

func TestGenerator_Generate_DirFS(t *testing.T) {
	m, layout := loadExample(t)

	cfg := testConfig(t)
	cfg.Embed = false

	files, err := NewGenerator(cfg).Generate(m, layout)
	require.NoError(t, err)

	lib := byName(files)["lib/lib.go"]
	assert.NotContains(t, lib, "go:embed")
	assert.Contains(t, lib, `os.Getenv("DLF_LIBPATH")`)
	assert.Contains(t, lib, "os.DirFS(Root)")
	assert.Contains(t, lib, filepath.Join(cfg.OutputDir, "lib"))
}

func TestGenerator_Generate_DefaultVersion(t *testing.T) {
	m, layout := loadExample(t)

	cfg := testConfig(t)
	cfg.Version = ""

	g := NewGenerator(cfg)
	g.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }

	files, err := g.Generate(m, layout)
	require.NoError(t, err)
	assert.Contains(t, byName(files)["libdlf.go"], `const Version = "unknown-20240309"`)
}

func TestGenerator_Generate_EmptyTransform(t *testing.T) {
	m, layout := loadExample(t)
	m.Transforms = append(m.Transforms, manifest.Transform{Name: "laplace"})

	files, err := NewGenerator(testConfig(t)).Generate(m, layout)
	require.NoError(t, err)

	got := byName(files)
	assert.NotContains(t, got["laplace/laplace.go"], "lib.Library")
	assert.Contains(t, got["laplace/laplace.go"], "func Filters() []*dlf.Accessor")
	assert.Contains(t, got["lib/lib.go"], "//go:embed filters.json all:hankel all:fourier\n")
}

// writeLibrary creates a one-filter library whose table is given by src.
func writeLibrary(t *testing.T, src string) (*manifest.Manifest, manifest.Layout) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "hankel"), 0o755))

	f := manifest.Filter{
		Name:   "kong_3_2007",
		Author: "Kong",
		Year:   "2007",
		Points: 3,
		Values: "j0",
		File:   "lib/hankel/kong_3_2007_j0.txt",
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(f.File)), []byte(src), 0o644))

	m := &manifest.Manifest{Transforms: []manifest.Transform{{Name: "hankel", Filters: []manifest.Filter{f}}}}

	return m, manifest.NewLayout(filepath.Join(root, "lib", "filters.json"), "")
}

func TestGenerator_Generate_Errors(t *testing.T) {
	const good = "# Kong (2007): 3 pt filter\n# This file is part of libdlf.\n1 2\n3 4\n5 6\n"

	tests := []struct {
		name   string
		src    string
		mutate func(cfg *GeneratorConfig, m *manifest.Manifest)
		is     error
		msg    string
	}{
		{
			name: "missing sentinel",
			src:  "# Kong (2007): 3 pt filter\n#\n1 2\n3 4\n5 6\n",
			is:   header.ErrMalformedHeader,
		},
		{
			name: "short table",
			src:  "# Kong (2007): 3 pt filter\n# This file is part of libdlf.\n1 2\n3 4\n",
			is:   dlf.ErrShape,
		},
		{
			name:   "no import path",
			src:    good,
			mutate: func(cfg *GeneratorConfig, _ *manifest.Manifest) { cfg.ImportPath = "" },
			msg:    "import path",
		},
		{
			name: "transform shadows index",
			src:  good,
			mutate: func(cfg *GeneratorConfig, _ *manifest.Manifest) {
				cfg.PackageName = "hankel"
			},
			msg: "collides with the index package",
		},
		{
			name:   "transform named main",
			src:    good,
			mutate: func(_ *GeneratorConfig, m *manifest.Manifest) { m.Transforms[0].Name = "main" },
			msg:    `transform "main" cannot be imported`,
		},
		{
			name:   "index package named main",
			src:    good,
			mutate: func(cfg *GeneratorConfig, _ *manifest.Manifest) { cfg.PackageName = "main" },
			msg:    `package name "main" is reserved`,
		},
		{
			name: "accessor name collision",
			src:  good,
			mutate: func(_ *GeneratorConfig, m *manifest.Manifest) {
				dup := m.Transforms[0].Filters[0]
				dup.Name = "Kong_3_2007"
				m.Transforms[0].Filters = append(m.Transforms[0].Filters, dup)
			},
			msg: "both map to Kong3_2007",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, layout := writeLibrary(t, tt.src)

			cfg := testConfig(t)
			if tt.mutate != nil {
				tt.mutate(&cfg, m)
			}

			files, err := NewGenerator(cfg).Generate(m, layout)
			require.Error(t, err)
			assert.Nil(t, files)

			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
			}

			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestWriteFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "generated")

	files := []GeneratedFile{
		{Filename: "libdlf.go", Content: []byte("package libdlf\n")},
		{Filename: "lib/hankel/a.txt", Content: []byte("1 2\n")},
	}

	require.NoError(t, WriteFiles(files, out))

	for _, f := range files {
		got, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(f.Filename)))
		require.NoError(t, err)
		assert.Equal(t, f.Content, got)
	}
}

func TestWriteDebugUnformatted(t *testing.T) {
	out := t.TempDir()

	require.NoError(t, writeDebugUnformatted(out, "hankel/hankel.go", []byte("package hankel {")))

	got, err := os.ReadFile(filepath.Join(out, "hankel", "hankel.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package hankel {", string(got))

	require.NoError(t, writeDebugUnformatted("", "x.go", nil))
}

func TestResolveImportPath(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/filters\n\ngo 1.25\n"), 0o644))

	sub := filepath.Join(root, "gen", "libdlf")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	got, err := ResolveImportPath(sub)
	require.NoError(t, err)
	assert.Equal(t, "example.com/filters/gen/libdlf", got)

	got, err = ResolveImportPath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/filters", got)

	got, err = ResolveImportPath(filepath.Join(root, "not", "yet", "created"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/filters/not/yet/created", got)
}
