package storage

import (
	"fmt"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec applied to binary snapshot payloads.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionSnappy
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

func (c Compression) valid() bool {
	return c <= CompressionSnappy
}

// ParseCompression maps a codec name from configuration to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	}
	return CompressionNone, fmt.Errorf("unknown compression %q (must be none, lz4 or snappy)", name)
}

// compress encodes data with codec. It reports the codec actually used, which
// falls back to none when lz4 finds the block incompressible.
func compress(codec Compression, data []byte) ([]byte, Compression, error) {
	switch codec {
	case CompressionLZ4:
		compressed := make([]byte, lz4.CompressBlockBound(len(data)))
		var hashTable [1 << 16]int
		n, err := lz4.CompressBlock(data, compressed, hashTable[:])
		if err != nil {
			return nil, codec, fmt.Errorf("failed to compress data: %w", err)
		}
		if n == 0 {
			return data, CompressionNone, nil
		}
		return compressed[:n], codec, nil
	case CompressionSnappy:
		return snappy.Encode(nil, data), codec, nil
	case CompressionNone:
		return data, codec, nil
	}
	return nil, codec, fmt.Errorf("unsupported compression codec: %d", codec)
}

// lz4MaxRatio bounds how far one lz4 block byte can expand.
const lz4MaxRatio = 255

// checkLength rejects a header length the body could not decompress to, before
// any buffer of that length is allocated.
func checkLength(codec Compression, body []byte, length uint32) error {
	switch codec {
	case CompressionNone:
		if uint64(len(body)) != uint64(length) {
			return fmt.Errorf("payload is %d bytes, header says %d", len(body), length)
		}
	case CompressionLZ4:
		if uint64(length) > uint64(len(body))*lz4MaxRatio {
			return fmt.Errorf("header length %d exceeds what %d lz4 bytes can hold", length, len(body))
		}
	case CompressionSnappy:
		n, err := snappy.DecodedLen(body)
		if err != nil {
			return fmt.Errorf("failed to read snappy length: %w", err)
		}
		if uint64(n) != uint64(length) {
			return fmt.Errorf("snappy payload decodes to %d bytes, header says %d", n, length)
		}
	}
	return nil
}

// decompress reverses compress. length is the uncompressed size from the header.
func decompress(codec Compression, data []byte, length int) ([]byte, error) {
	switch codec {
	case CompressionLZ4:
		out := make([]byte, length)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress data: %w", err)
		}
		return out[:n], nil
	case CompressionSnappy:
		out, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress data: %w", err)
		}
		return out, nil
	case CompressionNone:
		return data, nil
	}
	return nil, fmt.Errorf("unsupported compression codec: %d", codec)
}
