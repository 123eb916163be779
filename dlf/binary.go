package dlf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Binary container layout (little endian):
//
//	magic        [4]byte "DLFB"
//	version      uint8
//	compression  uint8
//	fieldLen     uint8
//	field        [fieldLen]byte   always ContainerField
//	rows         uint32           1 + number of values
//	cols         uint32           number of points
//	uncompressed uint32           rows*cols*8
//	compressed   uint32           0 means the payload is stored raw
//	payload      IEEE-754 float64 bits, row-major
const (
	containerMagic   = "DLFB"
	containerVersion = 1

	// ContainerField is the fixed name of the array stored in a container.
	ContainerField = "dlf"

	// BinaryExt is the file extension of binary containers.
	BinaryExt = ".dlfz"
)

// WriteBinary encodes unpacked columns into a binary container.
func WriteBinary(w io.Writer, cols [][]float64, c Compression) error {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return fmt.Errorf("%w: empty table", ErrShape)
	}

	n := len(cols[0])
	raw := make([]byte, 0, len(cols)*n*8)

	for i, col := range cols {
		if len(col) != n {
			return fmt.Errorf("%w: row %d has %d points, want %d", ErrShape, i, len(col), n)
		}

		for _, v := range col {
			raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(v))
		}
	}

	packed, err := compress(raw, c)
	if err != nil {
		return err
	}

	var hdr bytes.Buffer
	hdr.WriteString(containerMagic)
	hdr.WriteByte(containerVersion)
	hdr.WriteByte(byte(c))
	hdr.WriteByte(byte(len(ContainerField)))
	hdr.WriteString(ContainerField)

	sizes := []uint32{uint32(len(cols)), uint32(n), uint32(len(raw)), uint32(len(packed))}
	if err := binary.Write(&hdr, binary.LittleEndian, sizes); err != nil {
		return err
	}

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return fmt.Errorf("writing container header: %w", err)
	}

	payload := raw
	if packed != nil {
		payload = packed
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing container payload: %w", err)
	}

	return nil
}

// ReadBinary decodes a binary container into unpacked columns.
func ReadBinary(r io.Reader) ([][]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading container: %w", err)
	}

	rd := bytes.NewReader(data)

	magic := make([]byte, len(containerMagic))
	if _, err := io.ReadFull(rd, magic); err != nil || string(magic) != containerMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrContainer)
	}

	var head [3]byte
	if _, err := io.ReadFull(rd, head[:]); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrContainer)
	}

	if head[0] != containerVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrContainer, head[0])
	}

	codec := Compression(head[1])

	field := make([]byte, head[2])
	if _, err := io.ReadFull(rd, field); err != nil || string(field) != ContainerField {
		return nil, fmt.Errorf("%w: missing %q field", ErrContainer, ContainerField)
	}

	var sizes [4]uint32
	if err := binary.Read(rd, binary.LittleEndian, &sizes); err != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrContainer)
	}

	rows, n, rawSize, packedSize := sizes[0], sizes[1], sizes[2], sizes[3]
	if uint64(rows)*uint64(n)*8 != uint64(rawSize) {
		return nil, fmt.Errorf("%w: %dx%d table does not match payload size %d", ErrContainer, rows, n, rawSize)
	}

	body := data[len(data)-rd.Len():]

	var raw []byte

	if packedSize == 0 {
		if uint32(len(body)) != rawSize {
			return nil, fmt.Errorf("%w: payload is %d bytes, want %d", ErrContainer, len(body), rawSize)
		}

		raw = body
	} else {
		if uint32(len(body)) != packedSize {
			return nil, fmt.Errorf("%w: payload is %d bytes, want %d", ErrContainer, len(body), packedSize)
		}

		raw, err = decompress(body, rawSize, codec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContainer, err)
		}
	}

	cols := make([][]float64, rows)
	for i := range cols {
		col := make([]float64, n)
		for j := range col {
			off := (i*int(n) + j) * 8
			col[j] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off:]))
		}

		cols[i] = col
	}

	return cols, nil
}
