package header

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"dlf-generator/internal/manifest"
)

// Defaults for Options.
const (
	DefaultMarker   = "#"
	DefaultSentinel = "file is part of libdlf"

	underline = "========"
)

// ErrMalformedHeader is matched by every *MalformedHeaderError via errors.Is.
var ErrMalformedHeader = errors.New("malformed table header")

// MalformedHeaderError reports a header that never reaches the sentinel line.
type MalformedHeaderError struct {
	File string
	// Line is the 1-based line where extraction stopped.
	Line   int
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

// Is reports whether target is ErrMalformedHeader.
func (e *MalformedHeaderError) Is(target error) bool {
	return target == ErrMalformedHeader
}

// Options configures header extraction.
type Options struct {
	// Marker starts every comment line.
	Marker string
	// Sentinel is the phrase on the last header line.
	Sentinel string
}

func (o Options) withDefaults() Options {
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}

	if o.Sentinel == "" {
		o.Sentinel = DefaultSentinel
	}

	return o
}

// Doc is the documentation extracted from one table header.
type Doc struct {
	// Title is the first header line.
	Title string
	// Body holds the remaining header lines with the marker stripped.
	// Underlines and empty comment lines are kept as blank lines.
	Body []string
	// Returns lists "base" followed by the filter's value names.
	Returns []string
}

// Extract reads the header of the table described by f from r.
func Extract(r io.Reader, f manifest.Filter, opts Options) (*Doc, error) {
	opts = opts.withDefaults()

	sc := bufio.NewScanner(r)
	lineNo := 0

	malformed := func(reason string) error {
		return &MalformedHeaderError{File: f.File, Line: lineNo, Reason: reason}
	}

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading header of %s: %w", f.File, err)
		}

		return nil, malformed("empty file")
	}

	lineNo++

	title := sc.Text()
	if !strings.HasPrefix(title, opts.Marker) {
		return nil, malformed("first line is not a comment")
	}

	doc := &Doc{
		Title:   strip(title, opts.Marker),
		Returns: append([]string{"base"}, f.ValueNames()...),
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")

		switch {
		case !strings.HasPrefix(line, opts.Marker):
			return nil, malformed(fmt.Sprintf("header ended before %q", opts.Sentinel))
		case strings.Contains(line, opts.Sentinel):
			return doc, nil
		case strings.Contains(line, underline), line == opts.Marker:
			doc.Body = append(doc.Body, "")
		default:
			doc.Body = append(doc.Body, strip(line, opts.Marker))
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", f.File, err)
	}

	return nil, malformed(fmt.Sprintf("missing %q line", opts.Sentinel))
}

// strip removes the marker and the single space after it.
func strip(line, marker string) string {
	line = strings.TrimPrefix(line, marker)
	line = strings.TrimPrefix(line, " ")

	return strings.TrimRight(line, " \t\r")
}

// Paragraphs returns Body with leading and trailing blank lines removed and
// runs of blank lines collapsed into one.
func (d *Doc) Paragraphs() []string {
	var out []string

	for _, line := range d.Body {
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}

		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out
}

// ReturnsLine renders the return list as "base, j0, j1 []float64".
func (d *Doc) ReturnsLine() string {
	return strings.Join(d.Returns, ", ") + " []float64"
}

// CommentLines renders the doc as Go comment text, without the leading "//".
// Quoted reference lines ("> ...") are indented so gofmt keeps them verbatim.
func (d *Doc) CommentLines() []string {
	lines := []string{d.Title}

	if body := d.Paragraphs(); len(body) > 0 {
		lines = append(lines, "")

		for _, l := range body {
			if strings.HasPrefix(l, ">") {
				l = "\t" + l
			}

			lines = append(lines, l)
		}
	}

	lines = append(lines,
		"",
		"# Returns",
		"",
		"\t"+d.ReturnsLine(),
		"\t    Filter base and its values.",
	)

	return lines
}

// Markdown renders the doc as a markdown document.
func (d *Doc) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# " + d.Title + "\n\n")

	for _, l := range d.Paragraphs() {
		sb.WriteString(l + "\n")
	}

	sb.WriteString("\n## Returns\n\n")

	for _, r := range d.Returns {
		sb.WriteString("- `" + r + "` (`[]float64`)\n")
	}

	return sb.String()
}
