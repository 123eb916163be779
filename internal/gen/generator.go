package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/log"

	"dlf-generator/dlf"
	"dlf-generator/internal/header"
	"dlf-generator/internal/manifest"
	"dlf-generator/internal/materialize"
)

const (
	// DefaultRuntimeImport is the import path of the runtime package used
	// by generated code.
	DefaultRuntimeImport = "dlf-generator/dlf"
	// LibPathEnv overrides the table directory of a non-embedded library.
	LibPathEnv = "DLF_LIBPATH"

	libPackage = "lib"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the name of the generated index package.
	PackageName string
	// ImportPath is the import path of OutputDir.
	ImportPath string
	// RuntimeImport is the import path of the dlf runtime.
	RuntimeImport string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// Embed bundles the tables into the binary with //go:embed. Otherwise
	// the library reads them from OutputDir/lib at run time.
	Embed bool
	// Version is stamped into the index package. Empty means
	// "unknown-YYYYMMDD".
	Version string
	// Materializer decides the table format.
	Materializer materialize.Materializer
	// Header configures header extraction.
	Header header.Options
	// Logger receives progress output. Nil discards it.
	Logger *log.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName:   "libdlf",
		RuntimeImport: DefaultRuntimeImport,
		OutputDir:     "./generated",
		Embed:         true,
		Materializer: materialize.Materializer{
			Policy:      dlf.FormatText,
			Compression: dlf.CompressionZSTD,
		},
		Header: header.Options{
			Marker:   header.DefaultMarker,
			Sentinel: header.DefaultSentinel,
		},
	}
}

// Generator generates the accessor library of a manifest.
type Generator struct {
	config GeneratorConfig
	log    *log.Logger
	now    func() time.Time
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if config.Materializer.Logger == nil {
		config.Materializer.Logger = logger
	}

	return &Generator{config: config, log: logger, now: time.Now}
}

// GeneratedFile represents a generated file.
type GeneratedFile struct {
	// Filename is slash-separated and relative to the output directory
	// (e.g., "hankel/hankel.go" or "lib/hankel/kong_61_2007_j0j1.txt").
	Filename string
	// Content is the formatted Go source or the raw data file.
	Content []byte
}

// Generate builds every file of the library. A manifest or header error
// aborts generation and no files are returned.
func (g *Generator) Generate(m *manifest.Manifest, layout manifest.Layout) ([]GeneratedFile, error) {
	if g.config.ImportPath == "" {
		return nil, fmt.Errorf("import path of %s is not set", g.config.OutputDir)
	}

	if g.config.PackageName == libPackage || g.config.PackageName == "main" {
		return nil, fmt.Errorf("package name %q is reserved", g.config.PackageName)
	}

	jsonData, err := manifest.MarshalIndentJSON(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	files := []GeneratedFile{{Filename: path.Join(libPackage, manifest.DefaultFileName), Content: jsonData}}

	index := &indexData{
		Package:       g.config.PackageName,
		RuntimeImport: g.config.RuntimeImport,
		LibImport:     path.Join(g.config.ImportPath, libPackage),
		Version:       g.version(),
	}

	for _, t := range m.Transforms {
		if err := checkPackageName(t.Name); err != nil {
			return nil, err
		}

		if t.Name == g.config.PackageName {
			return nil, fmt.Errorf("transform %q collides with the index package", t.Name)
		}

		tf, err := g.generateTransform(t, layout)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", t.Name, err)
		}

		files = append(files, tf...)
		index.Transforms = append(index.Transforms, transformRef{
			Name:   t.Name,
			Import: path.Join(g.config.ImportPath, t.Name),
		})
	}

	lib, err := g.generateLib(m)
	if err != nil {
		return nil, err
	}

	idx, err := g.render(indexTemplate, g.config.PackageName+".go", index)
	if err != nil {
		return nil, err
	}

	files = append(files, *lib, *idx)

	g.log.Info("generated library", "transforms", len(m.Transforms), "filters", m.Len(), "files", len(files))

	return files, nil
}

// generateTransform materializes the tables of one transform and renders its
// accessor package.
func (g *Generator) generateTransform(t manifest.Transform, layout manifest.Layout) ([]GeneratedFile, error) {
	var (
		files   []GeneratedFile
		results = make([]*materialize.Result, 0, len(t.Filters))
	)

	for _, f := range t.Filters {
		res, err := g.config.Materializer.Materialize(f, layout)
		if err != nil {
			return nil, err
		}

		for _, out := range res.Files {
			files = append(files, GeneratedFile{
				Filename: path.Join(libPackage, out.Path),
				Content:  out.Content,
			})
		}

		results = append(results, res)
	}

	data, err := g.buildTransformData(t, results)
	if err != nil {
		return nil, err
	}

	src, err := g.render(transformTemplate, path.Join(t.Name, t.Name+".go"), data)
	if err != nil {
		return nil, err
	}

	g.log.Debug("generated transform", "transform", t.Name, "accessors", len(data.Accessors))

	return append(files, *src), nil
}

func (g *Generator) generateLib(m *manifest.Manifest) (*GeneratedFile, error) {
	data := &libData{
		RuntimeImport: g.config.RuntimeImport,
		Embed:         g.config.Embed,
		Patterns:      embedPatterns(m),
		EnvVar:        LibPathEnv,
	}

	if !data.Embed {
		root, err := filepath.Abs(filepath.Join(g.config.OutputDir, libPackage))
		if err != nil {
			return nil, fmt.Errorf("resolving library directory: %w", err)
		}

		data.Root = root
	}

	return g.render(libTemplate, path.Join(libPackage, "lib.go"), data)
}

// render executes a template and formats the result.
func (g *Generator) render(tmpl *template.Template, filename string, data any) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template for %s: %w", filename, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, filename, buf.Bytes())
		}

		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}

	return &GeneratedFile{Filename: filename, Content: formatted}, nil
}

func (g *Generator) version() string {
	if g.config.Version != "" {
		return g.config.Version
	}

	return "unknown-" + g.now().Format("20060102")
}

var funcs = template.FuncMap{
	"join": strings.Join,
}

var libTemplate = template.Must(template.New("lib").Funcs(funcs).Parse(`// Code generated by dlf-generator. DO NOT EDIT.

// Package lib holds the filter tables and the library they are registered in.
package lib

import (
{{if .Embed}}	"embed"
{{end}}	"io/fs"
{{if not .Embed}}	"os"
{{end}}
	"{{.RuntimeImport}}"
)
{{if .Embed}}
//go:embed {{join .Patterns " "}}
var files embed.FS

// FS holds filters.json and one directory of tables per transform.
var FS fs.FS = files
{{else}}
// Root is the directory holding filters.json and the tables. The
// {{.EnvVar}} environment variable overrides it.
var Root = func() string {
	if dir := os.Getenv({{printf "%q" .EnvVar}}); dir != "" {
		return dir
	}

	return {{printf "%q" .Root}}
}()

// FS holds filters.json and one directory of tables per transform.
var FS fs.FS = os.DirFS(Root)
{{end}}
// Library registers the accessor of every generated filter.
var Library = dlf.NewLibrary(FS)
`))

var transformTemplate = template.Must(template.New("transform").Funcs(funcs).Parse(`// Code generated by dlf-generator. DO NOT EDIT.

// Package {{.Package}} provides the {{.Package}} filters.
package {{.Package}}

import (
	"{{.RuntimeImport}}"
{{if .Accessors}}	"{{.LibImport}}"
{{end}})
{{if .Accessors}}
var (
{{- range .Accessors}}
	{{.Var}} = lib.Library.Register(dlf.Spec{
		Transform: {{printf "%q" .Spec.Transform}},
		Name:      {{printf "%q" .Spec.Name}},
		File:      {{printf "%q" .Spec.File}},
		Values:    []string{ {{- range $i, $v := .Spec.Values}}{{if $i}}, {{end}}{{printf "%q" $v}}{{end -}} },
		Points:    {{.Spec.Points}},
		Format:    {{.FormatConst}},
	})
{{- end}}
)
{{end}}
// Names lists the filters of this package in manifest order.
var Names = []string{
{{- range .Accessors}}
	{{printf "%q" .Spec.Name}},
{{- end}}
}

// Filters returns the accessors of this package in manifest order.
func Filters() []*dlf.Accessor {
	return []*dlf.Accessor{
{{- range .Accessors}}
		{{.Var}},
{{- end}}
	}
}
{{range .Accessors}}
{{range .Comment}}{{.}}
{{end -}}
func {{.Func}}() ({{join .Results ", "}} []float64, err error) {
	t, err := {{.Var}}.Load()
	if err != nil {
		return {{.Nils}}, err
	}

	return t.Base, {{.Columns}}, nil
}
{{end}}`))

var indexTemplate = template.Must(template.New("index").Parse(`// Code generated by dlf-generator. DO NOT EDIT.

// Package {{.Package}} is the index of the generated filter library.
package {{.Package}}

import (
	"{{.RuntimeImport}}"
	"{{.LibImport}}"
{{range .Transforms}}	"{{.Import}}"
{{end}})

// Version of the filter library.
const Version = {{printf "%q" .Version}}

// Transforms lists the transform packages in manifest order.
var Transforms = []string{
{{- range .Transforms}}
	{{printf "%q" .Name}},
{{- end}}
}

// Filters returns the accessors of a transform, or nil if it is unknown.
func Filters(transform string) []*dlf.Accessor {
	switch transform {
{{- range .Transforms}}
	case {{printf "%q" .Name}}:
		return {{.Name}}.Filters()
{{- end}}
	default:
		return nil
	}
}

// Library returns the library every accessor is registered in.
func Library() *dlf.Library {
	return lib.Library
}
`))
