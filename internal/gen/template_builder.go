package gen

import (
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"

	"dlf-generator/dlf"
	"dlf-generator/internal/header"
	"dlf-generator/internal/manifest"
	"dlf-generator/internal/materialize"
)

// libData feeds libTemplate.
type libData struct {
	RuntimeImport string
	Embed         bool
	// Patterns are the //go:embed patterns, manifest first.
	Patterns []string
	// Root is the absolute library directory used when not embedding.
	Root   string
	EnvVar string
}

// transformData feeds transformTemplate.
type transformData struct {
	Package       string
	RuntimeImport string
	LibImport     string
	Accessors     []accessorData
}

// accessorData describes one generated accessor function.
type accessorData struct {
	Func string
	Var  string
	// Comment holds the doc comment lines, "//" included.
	Comment []string
	Spec    dlf.Spec
	// FormatConst is the dlf constant for Spec.Format.
	FormatConst string
	Results     []string
}

// indexData feeds indexTemplate.
type indexData struct {
	Package       string
	RuntimeImport string
	LibImport     string
	Version       string
	Transforms    []transformRef
}

type transformRef struct {
	Name   string
	Import string
}

// buildTransformData assembles the accessors of one transform from the
// materialized tables and their headers.
func (g *Generator) buildTransformData(t manifest.Transform, results []*materialize.Result) (*transformData, error) {
	names := make([]string, 0, len(t.Filters))
	for _, f := range t.Filters {
		names = append(names, f.Name)
	}

	funcs, err := accessorNames(t.Name, names)
	if err != nil {
		return nil, err
	}

	data := &transformData{
		Package:       t.Name,
		RuntimeImport: g.config.RuntimeImport,
		LibImport:     path.Join(g.config.ImportPath, libPackage),
	}

	for i, f := range t.Filters {
		res := results[i]

		doc, err := header.Extract(bytes.NewReader(res.Source), f, g.config.Header)
		if err != nil {
			return nil, err
		}

		acc, err := buildAccessor(t.Name, f, funcs[i], doc, res)
		if err != nil {
			return nil, err
		}

		data.Accessors = append(data.Accessors, acc)
	}

	return data, nil
}

func buildAccessor(transform string, f manifest.Filter, fn string, doc *header.Doc, res *materialize.Result) (accessorData, error) {
	values := f.ValueNames()

	results := make([]string, 0, 1+len(values))
	results = append(results, "base")

	for _, v := range values {
		r := resultName(v)
		if slices.Contains(results, r) {
			return accessorData{}, fmt.Errorf("%s/%s: value %q repeats result %s", transform, f.Name, v, r)
		}

		results = append(results, r)
	}

	comment := []string{fmt.Sprintf("// %s loads the %s filter table.", fn, f.Name), "//"}
	for _, l := range doc.CommentLines() {
		comment = append(comment, commentLine(l))
	}

	return accessorData{
		Func:    fn,
		Var:     unexportedName(f.Name),
		Comment: comment,
		Spec: dlf.Spec{
			Transform: transform,
			Name:      f.Name,
			File:      res.RuntimeFile,
			Values:    values,
			Points:    f.Points,
			Format:    res.Format,
		},
		FormatConst: formatConst(res.Format),
		Results:     results,
	}, nil
}

func commentLine(l string) string {
	switch {
	case l == "":
		return "//"
	case strings.HasPrefix(l, "\t"):
		return "//" + l
	default:
		return "// " + l
	}
}

func formatConst(f dlf.Format) string {
	if f == dlf.FormatBinary {
		return "dlf.FormatBinary"
	}

	return "dlf.FormatText"
}

// embedPatterns lists the files bundled into lib: the manifest and one
// directory per transform.
func embedPatterns(m *manifest.Manifest) []string {
	patterns := []string{manifest.DefaultFileName}

	for _, t := range m.Transforms {
		if len(t.Filters) > 0 {
			patterns = append(patterns, "all:"+t.Name)
		}
	}

	return patterns
}

// Nils returns the zero results of an accessor, error excluded.
func (a accessorData) Nils() string {
	return strings.TrimSuffix(strings.Repeat("nil, ", len(a.Results)), ", ")
}

// Columns returns the expressions for the value results.
func (a accessorData) Columns() string {
	cols := make([]string, 0, len(a.Results)-1)
	for i := range a.Results[1:] {
		cols = append(cols, fmt.Sprintf("t.Values[%d]", i))
	}

	return strings.Join(cols, ", ")
}
