package vault

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"
)

const filePerm = 0o600

// Store loads and rewrites one vault file. Every operation goes back to the
// file; nothing is cached between calls.
//
// Append, DeleteByName and Save are serialized within a Store. Separate
// processes writing the same file can still lose each other's updates.
type Store struct {
	fs   FS
	path string
	log  *slog.Logger
	now  func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithClock sets the clock used to stamp new records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open returns a store for the file at path on the local filesystem.
// The parent directory is created on first write.
func Open(path string, opts ...Option) *Store {
	return New(osFS{}, path, opts...)
}

// New returns a store for the file name inside fsys.
func New(fsys FS, name string, opts ...Option) *Store {
	s := &Store{
		fs:   fsys,
		path: name,
		log:  slog.New(slog.DiscardHandler),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the location of the vault file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the whole vault. A missing or blank file is an empty vault;
// content that does not decode is ErrMalformedStore.
func (s *Store) Load() (Database, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("vault file absent", "path", s.path)
			return Database{Passwords: []Record{}}, nil
		}
		return Database{}, fmt.Errorf("load vault: read %s: %w: %w", s.path, ErrIO, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.log.Debug("vault file blank", "path", s.path)
		return Database{Passwords: []Record{}}, nil
	}

	db, err := Decode(data)
	if err != nil {
		return Database{}, fmt.Errorf("load vault: %s: %w", s.path, err)
	}

	s.log.Debug("vault loaded", "path", s.path, "records", db.Len())
	return db, nil
}

// Save replaces the vault file with d.
func (s *Store) Save(d Database) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(d)
}

func (s *Store) save(d Database) error {
	data, err := Encode(d)
	if err != nil {
		return fmt.Errorf("save vault: %w", err)
	}

	if err := s.fs.WriteFile(s.path, data, filePerm); err != nil {
		return fmt.Errorf("save vault: write %s: %w: %w", s.path, ErrIO, err)
	}

	s.log.Debug("vault saved", "path", s.path, "records", d.Len())
	return nil
}

// Append stamps e with the current time, adds it after the existing
// records and rewrites the file. It returns the database as written.
func (s *Store) Append(e Entry) (Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.Load()
	if err != nil {
		return Database{}, fmt.Errorf("append: %w", err)
	}

	db = db.append(NewRecord(e, s.now()))
	if err := s.save(db); err != nil {
		return Database{}, fmt.Errorf("append: %w", err)
	}

	return db, nil
}

// DeleteByName removes every record named name. It reports whether any
// record was removed; when none matched the file is not rewritten.
func (s *Store) DeleteByName(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.Load()
	if err != nil {
		return false, fmt.Errorf("delete %q: %w", name, err)
	}

	kept := db.withoutName(name)
	if kept.Len() == db.Len() {
		return false, nil
	}

	if err := s.save(kept); err != nil {
		return false, fmt.Errorf("delete %q: %w", name, err)
	}

	s.log.Debug("records deleted", "name", name, "removed", db.Len()-kept.Len())
	return true, nil
}

// List returns every record in insertion order.
func (s *Store) List() ([]Record, error) {
	db, err := s.Load()
	if err != nil {
		return nil, err
	}
	return db.Records(), nil
}
