package dlf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const commentPrefix = "#"

// ParseText reads a whitespace-delimited numeric table with one row per
// abscissa and 1+nValues columns. Lines starting with '#' and blank lines are
// skipped. The result is unpacked: one slice per column.
func ParseText(r io.Reader, nValues int) ([][]float64, error) {
	width := 1 + nValues
	cols := make([][]float64, width)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++

		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != width {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrShape, lineNo, len(fields), width)
		}

		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", lineNo, i+1, err)
			}

			cols[i] = append(cols[i], v)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}

	if len(cols[0]) == 0 {
		return nil, fmt.Errorf("%w: table has no data rows", ErrShape)
	}

	return cols, nil
}
