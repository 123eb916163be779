package dlf

import (
	"fmt"
	"slices"
)

// Table is a loaded filter: the shared base vector plus one weight vector per
// output name. Tables returned by an Accessor are shared between callers and
// must not be modified.
type Table struct {
	// Base is the abscissa vector.
	Base []float64
	// Values holds one vector per entry of Names, in the same order.
	Values [][]float64
	// Names are the output names (e.g. "j0", "j1").
	Names []string
}

// NewTable builds a Table from unpacked columns: cols[0] is the base and
// cols[1:] are the value vectors in names order.
func NewTable(cols [][]float64, names []string) (*Table, error) {
	if len(cols) != 1+len(names) {
		return nil, fmt.Errorf("%w: %d rows for %d values, want %d",
			ErrShape, len(cols), len(names), 1+len(names))
	}

	n := len(cols[0])
	for i, c := range cols[1:] {
		if len(c) != n {
			return nil, fmt.Errorf("%w: %s has %d points, base has %d", ErrShape, names[i], len(c), n)
		}
	}

	return &Table{
		Base:   cols[0],
		Values: cols[1:],
		Names:  slices.Clone(names),
	}, nil
}

// Points returns the number of abscissae.
func (t *Table) Points() int {
	return len(t.Base)
}

// Column returns the value vector with the given name.
func (t *Table) Column(name string) ([]float64, bool) {
	i := slices.Index(t.Names, name)
	if i < 0 {
		return nil, false
	}

	return t.Values[i], true
}

// Columns returns the base followed by every value vector.
func (t *Table) Columns() [][]float64 {
	cols := make([][]float64, 0, 1+len(t.Values))
	cols = append(cols, t.Base)

	return append(cols, t.Values...)
}
