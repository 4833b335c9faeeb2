// Package pipeline performs the single full scan of an access log: it parses
// every line, feeds the events into a fresh dual index and persists the
// collapsed result.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bitfield/script"
	"github.com/google/uuid"

	"github.com/adfharrison1/go-logindex/pkg/domain"
	"github.com/adfharrison1/go-logindex/pkg/indexing"
	"github.com/adfharrison1/go-logindex/pkg/parser"
)

// Builder builds and persists the dual index for a log file.
type Builder struct {
	store   domain.SnapshotStore
	lenient bool
	parse   func(string) (domain.Event, error)
	now     func() time.Time
}

// Option configures a Builder
type Option func(*Builder)

// WithLenient makes malformed lines count as skipped instead of aborting the
// build. The default is strict: the first malformed line fails the build and
// nothing is persisted.
func WithLenient(lenient bool) Option {
	return func(b *Builder) {
		b.lenient = lenient
	}
}

// WithParser replaces the line parser
func WithParser(parse func(string) (domain.Event, error)) Option {
	return func(b *Builder) {
		b.parse = parse
	}
}

// NewBuilder creates a builder that persists to store.
func NewBuilder(store domain.SnapshotStore, options ...Option) *Builder {
	b := &Builder{
		store: store,
		parse: parser.Parse,
		now:   time.Now,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// Build scans logPath line by line in file order and saves the collapsed index.
// A missing log yields domain.ErrSourceNotFound. Any failure leaves the
// previously persisted results untouched.
func (b *Builder) Build(logPath string) (*domain.BuildStats, error) {
	start := b.now()

	if _, err := os.Stat(logPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, logPath)
		}
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	lines, err := script.File(logPath).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to read log file %s: %w", logPath, err)
	}

	stats := &domain.BuildStats{
		BuildID: uuid.NewString(),
		Source:  logPath,
	}
	log.Printf("INFO: Build %s started for %s (%d lines, lenient=%t)", stats.BuildID, logPath, len(lines), b.lenient)

	idx := indexing.NewDualIndex()
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		stats.Lines++

		ev, err := b.parse(line)
		if err != nil {
			var pe *domain.ParseError
			if errors.As(err, &pe) {
				pe.Line = i + 1
			}
			if !b.lenient {
				log.Printf("ERROR: Build %s aborted: %v", stats.BuildID, err)
				return nil, fmt.Errorf("failed to build index from %s: %w", logPath, err)
			}
			stats.Skipped++
			log.Printf("WARN: Skipping line %d: %v", i+1, err)
			continue
		}
		idx.Insert(ev)
	}
	stats.Events = idx.Len()

	snapshot := idx.Collapse()
	snapshot.Meta = stats.Metadata(b.now())
	if err := b.store.Save(snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist index: %w", err)
	}

	stats.Duration = b.now().Sub(start)
	if stats.Skipped > 0 {
		log.Printf("WARN: Build %s completed with skipped lines - events: %d, skipped: %d, time: %v",
			stats.BuildID, stats.Events, stats.Skipped, stats.Duration)
	} else {
		log.Printf("INFO: Build %s completed successfully - %d events in %v",
			stats.BuildID, stats.Events, stats.Duration)
	}
	return stats, nil
}
