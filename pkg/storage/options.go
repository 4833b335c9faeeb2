package storage

type StorageOption func(*Store)

// WithFormat overrides the format inferred from the file extension
func WithFormat(format Format) StorageOption {
	return func(store *Store) {
		store.format = format
	}
}

// WithCompression sets the payload codec for binary snapshots (default: lz4).
// It has no effect on JSON results files.
func WithCompression(codec Compression) StorageOption {
	return func(store *Store) {
		store.compression = codec
	}
}
