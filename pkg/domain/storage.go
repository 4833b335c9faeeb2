package domain

// SnapshotStore defines the persistence contract for collapsed index snapshots
type SnapshotStore interface {
	Save(snapshot *Snapshot) error
	Load() (*Snapshot, error)
	Exists() bool
	Remove() error
	Path() string
}

// Builder scans a log source and persists the resulting snapshot
type Builder interface {
	Build(logPath string) (*BuildStats, error)
}

// Searcher answers summary and drill-down queries over a persisted snapshot
type Searcher interface {
	Query(term string, limit int) (*Result, error)
	Rebuild() (*BuildStats, error)
}
