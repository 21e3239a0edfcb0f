package reviewqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/vytor/lirajourney/internal/logger"
)

// Store reads and writes the queue file. Reads tolerate a missing or
// corrupt file; writes go through an exclusive lock file next to it and
// replace the file atomically.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore returns a store for the queue file at path.
func NewStore(path string) *Store {
	return &Store{path: path, lock: flock.New(path + ".lock")}
}

// Path is the queue file location.
func (s *Store) Path() string {
	return s.path
}

type queueFile struct {
	Queue []Entry `json:"queue"`
}

// Load returns the queued entries in file order. A missing, unreadable or
// malformed file yields an empty queue.
func (s *Store) Load(ctx context.Context) []Entry {
	log := logger.FromContext(ctx).WithPrefix("review_queue")

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("cannot read review queue %s: %v", s.path, err)
		}
		return []Entry{}
	}
	entries, err := decode(data)
	if err != nil {
		log.Warn("ignoring malformed review queue %s: %v", s.path, err)
		return []Entry{}
	}
	log.Debug("loaded %d queue entries", len(entries))
	return entries
}

// decode accepts a bare array or an object with a "queue" array.
func decode(data []byte) ([]Entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	var entries []Entry
	if data[0] == '[' {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	} else {
		var file queueFile
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, err
		}
		entries = file.Queue
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Save replaces the queue with entries, written as {"queue": [...]}.
func (s *Store) Save(ctx context.Context, entries []Entry) error {
	return s.withLock(func() error {
		return s.write(ctx, entries)
	})
}

// Add appends an entry for key unless one with the same key exists.
// It reports whether the queue changed.
func (s *Store) Add(ctx context.Context, key Key) (bool, error) {
	added := false
	err := s.withLock(func() error {
		entries := s.Load(ctx)
		for _, e := range entries {
			if e.Key == key {
				return nil
			}
		}
		added = true
		return s.write(ctx, append(entries, NewEntry(key)))
	})
	return added, err
}

// Remove drops every entry whose key equals key and returns how many were
// removed along with the remaining entries. The file is rewritten only when
// something was removed.
func (s *Store) Remove(ctx context.Context, key Key) (int, []Entry, error) {
	removed := 0
	var remaining []Entry
	err := s.withLock(func() error {
		entries := s.Load(ctx)
		remaining = make([]Entry, 0, len(entries))
		for _, e := range entries {
			if e.Key == key {
				removed++
				continue
			}
			remaining = append(remaining, e)
		}
		if removed == 0 {
			return nil
		}
		return s.write(ctx, remaining)
	})
	if err != nil {
		return 0, nil, err
	}
	return removed, remaining, nil
}

// Clear empties the queue and returns how many entries it dropped.
func (s *Store) Clear(ctx context.Context) (int, error) {
	cleared := 0
	err := s.withLock(func() error {
		cleared = len(s.Load(ctx))
		return s.write(ctx, []Entry{})
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}

// Count is the number of queued entries.
func (s *Store) Count(ctx context.Context) int {
	return len(s.Load(ctx))
}

func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create queue directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock review queue: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func (s *Store) write(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(queueFile{Queue: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode review queue: %w", err)
	}
	data = append(data, '\n')

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write review queue: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace review queue: %w", err)
	}
	logger.FromContext(ctx).WithPrefix("review_queue").Debug("saved %d queue entries to %s", len(entries), s.path)
	return nil
}
