package storage

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic bytes to identify the binary snapshot format
	MagicBytes = "LIDX"
	// Current version
	FormatVersion = 1
	// File extension for the binary snapshot format
	FileExtension = ".lidx"
	// HeaderSize is the encoded size of FileHeader in bytes
	HeaderSize = 16
)

// FileHeader represents the header of a binary snapshot file
type FileHeader struct {
	Magic    [4]byte // "LIDX"
	Version  uint8   // Format version
	Flags    uint8   // Compression codec of the payload
	Reserved [2]byte // Reserved for future use
	Checksum uint32  // murmur3 of the uncompressed payload
	Length   uint32  // Uncompressed payload length
}

// Codec returns the compression codec recorded in the header flags.
func (h *FileHeader) Codec() Compression {
	return Compression(h.Flags)
}

// WriteHeader writes the file header to the given writer
func WriteHeader(w io.Writer, codec Compression, checksum, length uint32) error {
	header := FileHeader{
		Magic:    [4]byte{'L', 'I', 'D', 'X'},
		Version:  FormatVersion,
		Flags:    uint8(codec),
		Reserved: [2]byte{0, 0},
		Checksum: checksum,
		Length:   length,
	}

	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the file header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Validate magic bytes
	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}

	// Validate version
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	if !header.Codec().valid() {
		return nil, fmt.Errorf("unsupported compression codec: %d", header.Flags)
	}

	return &header, nil
}
