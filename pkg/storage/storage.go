package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/dmidb/pkg/codec"
)

// Errors
var (
	ErrSnapshotNotFound = &StorageError{"snapshot not found"}
	ErrCorruption       = &StorageError{"snapshot corruption detected"}
	ErrClosed           = &StorageError{"snapshot store is closed"}
)

// StorageError represents a snapshot store error
type StorageError struct {
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// Options configures a SnapshotStore
type Options struct {
	// InMemory keeps the store in memory; used by tests and one-shot commands.
	InMemory bool

	// Sync forces every write to stable storage before returning.
	Sync bool
}

// Entry summarizes an archived snapshot without its table
type Entry struct {
	ID         ksuid.KSUID
	CapturedAt time.Time
	Source     string
	Size       int
}

// SnapshotStore archives codec-encoded snapshots in pebble, keyed by KSUID so
// that key order is capture order.
type SnapshotStore struct {
	mu     sync.RWMutex
	db     *pebble.DB
	codec  *codec.SnapshotCodec
	write  *pebble.WriteOptions
	closed bool
}

// Open opens or creates a snapshot store at path
func Open(path string, opts Options) (*SnapshotStore, error) {
	po := &pebble.Options{}
	if opts.InMemory {
		po.FS = vfs.NewMem()
	}
	db, err := pebble.Open(path, po)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	write := pebble.NoSync
	if opts.Sync {
		write = pebble.Sync
	}
	return &SnapshotStore{db: db, codec: codec.NewSnapshotCodec(), write: write}, nil
}

// Create archives snap under a new KSUID
func (s *SnapshotStore) Create(snap *codec.Snapshot) (ksuid.KSUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ksuid.Nil, ErrClosed
	}

	data, err := s.codec.Encode(snap)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	id, err := ksuid.NewRandomWithTime(snap.CapturedAt())
	if err != nil {
		return ksuid.Nil, fmt.Errorf("failed to generate snapshot id: %w", err)
	}
	if err := s.db.Set(id.Bytes(), data, s.write); err != nil {
		return ksuid.Nil, fmt.Errorf("failed to write snapshot: %w", err)
	}

	return id, nil
}

// Read returns the snapshot stored under id after validating its checksum
func (s *SnapshotStore) Read(id ksuid.KSUID) (*codec.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	value, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	// The value is only valid until closer.Close
	data := append([]byte(nil), value...)
	if err := closer.Close(); err != nil {
		return nil, fmt.Errorf("failed to release snapshot: %w", err)
	}

	return s.decode(data)
}

// Delete removes the snapshot stored under id
func (s *SnapshotStore) Delete(id ksuid.KSUID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	_, closer, err := s.db.Get(id.Bytes())
	if errors.Is(err, pebble.ErrNotFound) {
		return ErrSnapshotNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up snapshot: %w", err)
	}
	if err := closer.Close(); err != nil {
		return fmt.Errorf("failed to release snapshot: %w", err)
	}

	if err := s.db.Delete(id.Bytes(), s.write); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// List returns every archived snapshot, oldest first
func (s *SnapshotStore) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		entry, err := s.entry(iter.Key(), iter.Value())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return entries, nil
}

// Latest returns the most recently captured snapshot
func (s *SnapshotStore) Latest() (ksuid.KSUID, *codec.Snapshot, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ksuid.Nil, nil, ErrClosed
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		s.mu.RUnlock()
		return ksuid.Nil, nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	found := iter.Last()
	var key []byte
	if found {
		key = append(key, iter.Key()...)
	}
	closeErr := iter.Close()
	s.mu.RUnlock()
	if closeErr != nil {
		return ksuid.Nil, nil, fmt.Errorf("failed to iterate snapshots: %w", closeErr)
	}
	if !found {
		return ksuid.Nil, nil, ErrSnapshotNotFound
	}
	id, err := ksuid.FromBytes(key)
	if err != nil {
		return ksuid.Nil, nil, fmt.Errorf("%w: bad key: %v", ErrCorruption, err)
	}

	snap, err := s.Read(id)
	if err != nil {
		return ksuid.Nil, nil, err
	}
	return id, snap, nil
}

// Count returns the number of archived snapshots
func (s *SnapshotStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	defer iter.Close()

	count := 0
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count, iter.Error()
}

// Close flushes and closes the store
func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *SnapshotStore) decode(data []byte) (*codec.Snapshot, error) {
	snap, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruption, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruption, err)
	}
	return snap, nil
}

func (s *SnapshotStore) entry(key, value []byte) (Entry, error) {
	id, err := ksuid.FromBytes(key)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad key: %v", ErrCorruption, err)
	}
	snap, err := s.decode(value)
	if err != nil {
		return Entry{}, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return Entry{
		ID:         id,
		CapturedAt: snap.CapturedAt(),
		Source:     string(snap.Source),
		Size:       len(snap.Data),
	}, nil
}
