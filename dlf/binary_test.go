package dlf_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlf-generator/dlf"
)

func TestBinary_RoundTripMatchesText(t *testing.T) {
	src := tableText("Synthetic 201 pt filter", syntheticColumns(201, 2))

	fromText, err := dlf.ParseText(strings.NewReader(src), 2)
	require.NoError(t, err)

	for _, c := range []dlf.Compression{dlf.CompressionNone, dlf.CompressionLZ4, dlf.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, dlf.WriteBinary(&buf, fromText, c))

			fromBinary, err := dlf.ReadBinary(&buf)
			require.NoError(t, err)
			require.Len(t, fromBinary, len(fromText))

			for i := range fromText {
				require.Len(t, fromBinary[i], len(fromText[i]))

				for j := range fromText[i] {
					if math.Float64bits(fromText[i][j]) != math.Float64bits(fromBinary[i][j]) {
						t.Fatalf("row %d point %d differs: %s", i, j, spew.Sdump(fromText[i][j], fromBinary[i][j]))
					}
				}
			}
		})
	}
}

func TestBinary_CompressibleTable(t *testing.T) {
	cols := [][]float64{make([]float64, 512), make([]float64, 512)}
	for i := range cols[0] {
		cols[0][i] = float64(i % 4)
	}

	for _, c := range []dlf.Compression{dlf.CompressionLZ4, dlf.CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, dlf.WriteBinary(&buf, cols, c))
			assert.Less(t, buf.Len(), 2*512*8)

			got, err := dlf.ReadBinary(&buf)
			require.NoError(t, err)
			assert.Equal(t, cols, got)
		})
	}
}

func TestReadBinary_Corrupt(t *testing.T) {
	var good bytes.Buffer
	require.NoError(t, dlf.WriteBinary(&good, [][]float64{{1, 2}, {3, 4}}, dlf.CompressionNone))

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bad magic", data: append([]byte("NOPE"), good.Bytes()[4:]...)},
		{name: "truncated payload", data: good.Bytes()[:good.Len()-3]},
		{name: "trailing bytes", data: append(bytes.Clone(good.Bytes()), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dlf.ReadBinary(bytes.NewReader(tt.data))
			require.ErrorIs(t, err, dlf.ErrContainer)
		})
	}
}

func TestWriteBinary_Ragged(t *testing.T) {
	err := dlf.WriteBinary(&bytes.Buffer{}, [][]float64{{1, 2}, {3}}, dlf.CompressionZSTD)
	require.ErrorIs(t, err, dlf.ErrShape)
}

func TestParseCompressionAndFormat(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		c, err := dlf.ParseCompression(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.String())
	}

	_, err := dlf.ParseCompression("gzip")
	require.Error(t, err)

	f, err := dlf.ParseFormat("binary")
	require.NoError(t, err)
	assert.Equal(t, dlf.FormatBinary, f)

	_, err = dlf.ParseFormat("npz")
	require.Error(t, err)
}
