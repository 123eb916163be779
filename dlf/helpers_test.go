package dlf_test

import (
	"io/fs"
	"math"
	"strconv"
	"strings"
	"sync"
)

// syntheticColumns builds a deterministic filter-like table. The numbers are
// not a real filter; they only exercise parsing and storage.
func syntheticColumns(points, nValues int) [][]float64 {
	cols := make([][]float64, 1+nValues)
	for i := range points {
		x := float64(i) / float64(max(points-1, 1))
		cols[0] = append(cols[0], math.Pow(10, -3+6*x))

		for v := 1; v <= nValues; v++ {
			cols[v] = append(cols[v], math.Sin(float64(i*v)+0.1)*math.Exp(-x)/3)
		}
	}

	return cols
}

// tableText renders columns as a libdlf-style text table with a header.
func tableText(title string, cols [][]float64) string {
	var sb strings.Builder

	sb.WriteString("# " + title + "\n")
	sb.WriteString("# " + strings.Repeat("=", len(title)) + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# This file is part of libdlf.\n")

	for i := range cols[0] {
		for j, col := range cols {
			if j > 0 {
				sb.WriteString("  ")
			}

			sb.WriteString(strconv.FormatFloat(col[i], 'e', -1, 64))
		}

		sb.WriteString("\n")
	}

	return sb.String()
}

// countingFS records how often each file is opened.
type countingFS struct {
	fs.FS

	mu    sync.Mutex
	opens map[string]int
}

func newCountingFS(fsys fs.FS) *countingFS {
	return &countingFS{FS: fsys, opens: make(map[string]int)}
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.mu.Lock()
	c.opens[name]++
	c.mu.Unlock()

	return c.FS.Open(name)
}

func (c *countingFS) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.opens[name]
}
