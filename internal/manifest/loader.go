package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

// DefaultFileName is the conventional manifest name inside the library root.
const DefaultFileName = "filters.json"

//go:embed schema.cue
var schema []byte

const schemaRoot = "#Manifest"

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse parses manifest JSON. filename is only used in error messages.
func Parse(data []byte, filename string) (*Manifest, error) {
	if filename == "" {
		filename = "<input>"
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if err := schemaValue.Err(); err != nil {
		return nil, fmt.Errorf("internal error: failed to compile manifest schema: %w", err)
	}

	def := schemaValue.LookupPath(cue.ParsePath(schemaRoot))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaRoot, err)
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return nil, formatError(err, filename)
	}

	doc := ctx.BuildExpr(expr, cue.Filename(filename))
	if err := doc.Err(); err != nil {
		return nil, formatError(err, filename)
	}

	if doc.IncompleteKind() != cue.StructKind {
		return nil, &ManifestFormatError{File: filename, cause: fmt.Errorf("top level must be an object, got %s", doc.IncompleteKind())}
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatError(err, filename)
	}

	iter, err := unified.Fields()
	if err != nil {
		return nil, formatError(err, filename)
	}

	m := &Manifest{}

	for iter.Next() {
		name := iter.Selector().Unquoted()

		var filters []Filter
		if err := iter.Value().Decode(&filters); err != nil {
			return nil, formatError(err, filename)
		}

		if err := checkDuplicates(name, filters, filename); err != nil {
			return nil, err
		}

		m.Transforms = append(m.Transforms, Transform{Name: name, Filters: filters})
	}

	if len(m.Transforms) == 0 {
		return nil, &ManifestFormatError{File: filename, cause: errors.New("no transforms defined")}
	}

	return m, nil
}

func checkDuplicates(transform string, filters []Filter, filename string) error {
	seen := make(map[string]int, len(filters))

	for i, f := range filters {
		if j, ok := seen[f.Name]; ok {
			return &ManifestFormatError{
				File:  filename,
				Path:  fmt.Sprintf("%s[%d].name", transform, i),
				cause: fmt.Errorf("duplicate filter name %q (first at index %d)", f.Name, j),
			}
		}

		seen[f.Name] = i
	}

	return nil
}
