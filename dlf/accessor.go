package dlf

import (
	"fmt"
	"io/fs"
	"slices"
	"sync"
)

// Format is the on-disk representation of a filter table.
type Format uint8

const (
	FormatText   Format = iota // text
	FormatBinary               // binary
)

// ParseFormat maps "text" or "binary" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case FormatText.String():
		return FormatText, nil
	case FormatBinary.String():
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("unknown table format %q", s)
	}
}

// Spec describes one filter as emitted by the generator.
type Spec struct {
	// Transform is the filter category, e.g. "hankel".
	Transform string
	// Name is the manifest identifier, e.g. "anderson_801".
	Name string
	// File is the table path inside the library FS.
	File string
	// Values are the output names in column order.
	Values []string
	// Points is the expected number of abscissae (0 skips the check).
	Points int
	// Format selects the decoder.
	Format Format
}

// Accessor lazily loads one filter table and memoizes the result.
type Accessor struct {
	spec Spec
	lib  *Library

	once  sync.Once
	table *Table
	err   error
}

// Name returns the manifest identifier of the filter.
func (a *Accessor) Name() string { return a.spec.Name }

// Transform returns the filter category.
func (a *Accessor) Transform() string { return a.spec.Transform }

// File returns the table path inside the library FS.
func (a *Accessor) File() string { return a.spec.File }

// Values returns the output names, in the order the accessor returns them
// after the base.
func (a *Accessor) Values() []string { return slices.Clone(a.spec.Values) }

// Spec returns a copy of the filter description.
func (a *Accessor) Spec() Spec {
	s := a.spec
	s.Values = slices.Clone(s.Values)

	return s
}

// Load returns the filter table, reading storage on the first call only.
// Concurrent first calls share a single read. A failed load is remembered
// and returned on every later call as a *TableLoadError.
func (a *Accessor) Load() (*Table, error) {
	a.once.Do(func() {
		a.table, a.err = a.load()
	})

	return a.table, a.err
}

func (a *Accessor) load() (*Table, error) {
	t, err := a.read(a.lib.fsys)
	if err != nil {
		return nil, &TableLoadError{
			Transform: a.spec.Transform,
			Name:      a.spec.Name,
			File:      a.spec.File,
			cause:     err,
		}
	}

	return t, nil
}

func (a *Accessor) read(fsys fs.FS) (*Table, error) {
	f, err := fsys.Open(a.spec.File)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cols [][]float64

	switch a.spec.Format {
	case FormatText:
		cols, err = ParseText(f, len(a.spec.Values))
	case FormatBinary:
		cols, err = ReadBinary(f)
	default:
		err = fmt.Errorf("unknown table format %d", a.spec.Format)
	}

	if err != nil {
		return nil, err
	}

	t, err := NewTable(cols, a.spec.Values)
	if err != nil {
		return nil, err
	}

	if a.spec.Points > 0 && t.Points() != a.spec.Points {
		return nil, fmt.Errorf("%w: %d points, want %d", ErrShape, t.Points(), a.spec.Points)
	}

	return t, nil
}
