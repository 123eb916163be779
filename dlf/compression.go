package dlf

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

//go:generate go tool stringer -type=Compression,Format -linecomment -output=enum_string.go

// Compression selects the block codec of a binary container.
type Compression uint8

const (
	CompressionNone Compression = iota // none
	CompressionLZ4                     // lz4
	CompressionZSTD                    // zstd
)

// ParseCompression maps a codec name ("none", "lz4", "zstd") to a Compression.
func ParseCompression(s string) (Compression, error) {
	for c := CompressionNone; c <= CompressionZSTD; c++ {
		if c.String() == s {
			return c, nil
		}
	}

	return 0, fmt.Errorf("unknown compression %q", s)
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}

	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))

	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}

	dec, _ := zstd.NewReader(nil)

	return dec
}

// compress returns the encoded payload, or nil when the codec does not shrink
// the data by at least 10%. Callers store the raw bytes in that case.
func compress(data []byte, c Compression) ([]byte, error) {
	var out []byte

	switch c {
	case CompressionNone:
		return nil, nil
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))

		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}

		out = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		out = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}

	if len(out) == 0 || float64(len(out)) > float64(len(data))*0.9 {
		return nil, nil
	}

	return out, nil
}

func decompress(data []byte, size uint32, c Compression) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		out := make([]byte, size)

		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}

		if uint32(n) != size {
			return nil, errors.New("lz4: decompressed size mismatch")
		}

		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(data, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}

		if uint32(len(out)) != size {
			return nil, errors.New("zstd: decompressed size mismatch")
		}

		return out, nil
	default:
		return nil, fmt.Errorf("compressed block with codec %s", c)
	}
}
