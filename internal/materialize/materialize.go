package materialize

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"dlf-generator/dlf"
	"dlf-generator/internal/manifest"
)

// Materializer converts manifest tables into library files.
type Materializer struct {
	// Policy selects the runtime format of every table.
	Policy dlf.Format
	// Compression applies to binary containers only.
	Compression dlf.Compression
	// KeepText also ships the .txt table when Policy is binary.
	KeepText bool
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// File is one file of the generated library.
type File struct {
	// Path is slash-separated and relative to the library directory.
	Path    string
	Content []byte
}

// Result is the materialized form of one filter.
type Result struct {
	// Files to write under the library directory.
	Files []File
	// RuntimeFile is the library-relative path the accessor loads.
	RuntimeFile string
	// Format is the decoder the accessor uses for RuntimeFile.
	Format dlf.Format
	// Source is the original text table, for header extraction.
	Source []byte
}

// Materialize reads the table of f and produces its library files according
// to the policy. The table shape is checked here so that a bad table fails
// generation instead of the first accessor call.
func (m *Materializer) Materialize(f manifest.Filter, layout manifest.Layout) (*Result, error) {
	rel, err := layout.LibPath(f)
	if err != nil {
		return nil, err
	}

	src, err := os.ReadFile(layout.Path(f))
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", f.File, err)
	}

	cols, err := Parse(bytes.NewReader(src), f)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", f.File, err)
	}

	res := &Result{Source: src, Format: m.Policy}

	switch m.Policy {
	case dlf.FormatText:
		res.RuntimeFile = rel
		res.Files = append(res.Files, File{Path: rel, Content: src})
	case dlf.FormatBinary:
		var buf bytes.Buffer
		if err := dlf.WriteBinary(&buf, cols, m.Compression); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.File, err)
		}

		res.RuntimeFile = BinaryPath(rel)
		res.Files = append(res.Files, File{Path: res.RuntimeFile, Content: buf.Bytes()})

		if m.KeepText {
			res.Files = append(res.Files, File{Path: rel, Content: src})
		}

		m.logger().Debug("encoded table", "file", res.RuntimeFile,
			"compression", m.Compression, "text", len(src), "binary", buf.Len())
	default:
		return nil, fmt.Errorf("unsupported table format %s", m.Policy)
	}

	return res, nil
}

// Parse reads a text table and checks it against the descriptor: one row per
// output plus the base, each with Points entries.
func Parse(r io.Reader, f manifest.Filter) ([][]float64, error) {
	names := f.ValueNames()

	cols, err := dlf.ParseText(r, len(names))
	if err != nil {
		return nil, err
	}

	if _, err := dlf.NewTable(cols, names); err != nil {
		return nil, err
	}

	if got := len(cols[0]); got != f.Points {
		return nil, fmt.Errorf("%w: %d points, manifest says %d", dlf.ErrShape, got, f.Points)
	}

	return cols, nil
}

// BinaryPath replaces the .txt suffix of a table path with dlf.BinaryExt.
func BinaryPath(p string) string {
	return strings.TrimSuffix(p, ".txt") + dlf.BinaryExt
}

func (m *Materializer) logger() *log.Logger {
	if m.Logger == nil {
		return log.New(io.Discard)
	}

	return m.Logger
}
