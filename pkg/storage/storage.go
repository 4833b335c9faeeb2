package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adfharrison1/go-logindex/pkg/domain"
)

// Format selects how a snapshot is laid out on disk.
type Format int

const (
	// FormatJSON is the canonical results document: {"IP": ..., "ENDPOINT": ...}
	FormatJSON Format = iota
	// FormatBinary is a header followed by a compressed msgpack payload
	FormatBinary
)

func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "json"
}

// Store persists collapsed snapshots to a single results file.
//
// A Store performs no locking. A build writing the file while another process
// reads it is not supported; writes go through a temporary file and a rename so
// a reader sees either the old or the new snapshot.
type Store struct {
	path        string
	format      Format
	compression Compression
}

// NewStore creates a store for path. Files ending in FileExtension use the
// binary format; everything else is JSON.
func NewStore(path string, options ...StorageOption) *Store {
	store := &Store{
		path:        path,
		format:      formatFor(path),
		compression: CompressionLZ4,
	}

	// Apply options
	for _, option := range options {
		option(store)
	}

	return store
}

func formatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), FileExtension) {
		return FormatBinary
	}
	return FormatJSON
}

// Path returns the results file path
func (s *Store) Path() string {
	return s.path
}

// Format returns the on-disk format used by the store
func (s *Store) Format() Format {
	return s.format
}

// Compression returns the codec applied to binary snapshots
func (s *Store) Compression() Compression {
	return s.compression
}

// Exists reports whether the results file is present
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Remove deletes the results file. A missing file is not an error.
func (s *Store) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove results file: %w", err)
	}
	return nil
}

// Save writes the snapshot to the results file.
func (s *Store) Save(snapshot *domain.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("cannot save a nil snapshot")
	}

	var (
		data []byte
		err  error
	)
	switch s.format {
	case FormatBinary:
		data, err = encodeBinary(snapshot, s.compression)
	default:
		data, err = encodeJSON(snapshot)
	}
	if err != nil {
		return err
	}

	if err := writeAtomic(s.path, data); err != nil {
		return err
	}

	log.Printf("INFO: Saved results to %s (%s, %d IPs, %d endpoints)",
		s.path, s.format, len(snapshot.IP), len(snapshot.Endpoint))
	return nil
}

// Load reads and validates the results file. A missing file yields
// domain.ErrResultsNotFound; content of the wrong shape yields domain.ErrCorrupt.
func (s *Store) Load() (*domain.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrResultsNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}

	var snapshot *domain.Snapshot
	switch s.format {
	case FormatBinary:
		snapshot, err = decodeBinary(data)
	default:
		snapshot, err = decodeJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	log.Printf("DEBUG: Loaded results from %s (%d IPs, %d endpoints)",
		s.path, len(snapshot.IP), len(snapshot.Endpoint))
	return snapshot, nil
}

// writeAtomic writes to a temporary file first, then renames it into place
func writeAtomic(path string, data []byte) error {
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrIO, path, err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile) // Clean up temp file
		return fmt.Errorf("%w: %s: %w", domain.ErrIO, path, err)
	}
	return nil
}
