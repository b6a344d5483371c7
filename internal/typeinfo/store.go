package typeinfo

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"jsxstream/internal/trace"
	"jsxstream/internal/types"
)

// Ext is the file extension of stored records.
const Ext = ".jti"

// DefaultDir returns $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// SourceError reports a source file the store could not read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string { return fmt.Sprintf("read %s: %v", e.Path, e.Err) }
func (e *SourceError) Unwrap() error { return e.Err }

// Result is what GetOrCompute found.
type Result struct {
	Exports types.Exports
	Hash    Hash
	Hit     bool // inference was skipped
}

// Stats are the store's lifetime counters.
type Stats struct {
	Hits, Misses, Corrupt, WriteErrors int64
}

// Store keeps one record per source file under a directory. Writes are
// serialized; concurrent requests for the same file and content share one
// computation. The last writer wins.
type Store struct {
	dir     string
	inferer Inferer

	mu    sync.Mutex // запись и переименование
	group singleflight.Group

	hits, misses, corrupt, writeErrs atomic.Int64
}

// Open creates dir when needed.
func Open(dir string, inferer Inferer) (*Store, error) {
	if inferer == nil {
		return nil, errors.New("typeinfo: nil inferer")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, inferer: inferer}, nil
}

func (s *Store) Dir() string { return s.dir }

// RecordPath returns where the record of a source file lives. Paths are
// made absolute so one file maps to one record.
func (s *Store) RecordPath(source string) string {
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	sum := sha256.Sum256([]byte(filepath.Clean(source)))
	return filepath.Join(s.dir, "files", hex.EncodeToString(sum[:16])+Ext)
}

// GetOrCompute returns the exports of the file at path, from its record
// when the record matches the file's current bytes, otherwise by running
// the inferer and storing a fresh record.
func (s *Store) GetOrCompute(ctx context.Context, path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, &SourceError{Path: path, Err: err}
	}
	return s.Resolve(ctx, path, content)
}

// Resolve is GetOrCompute for content the caller has already read.
func (s *Store) Resolve(ctx context.Context, path string, content []byte) (Result, error) {
	hash := HashBytes(content)
	key := s.RecordPath(path) + "\x00" + hash.String()
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.resolve(ctx, path, content, hash)
	})
	if err != nil {
		return Result{}, err
	}
	res := v.(Result)
	// результат общий для всех ожидающих; каждому своя копия
	res.Exports = res.Exports.Clone()
	return res, nil
}

func (s *Store) resolve(ctx context.Context, path string, content []byte, hash Hash) (Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "cache")
	defer span.End("")
	span.WithExtra("file", path)

	if rec, ok := s.lookup(ctx, path); ok && rec.Matches(hash) {
		s.hits.Add(1)
		span.WithExtra("result", "hit")
		return Result{Exports: rec.Exports, Hash: hash, Hit: true}, nil
	}
	s.misses.Add(1)
	span.WithExtra("result", "miss")

	exports, err := s.inferer.Infer(ctx, path, content)
	if err != nil {
		return Result{}, err
	}
	if exports == nil {
		exports = types.Exports{}
	}
	if err := s.Put(path, Record{Version: Version, Hash: hash, Exports: exports}); err != nil {
		s.writeErrs.Add(1)
		trace.Pointf(ctx, trace.ScopeFile, "cache-write", err.Error())
	}
	return Result{Exports: exports, Hash: hash}, nil
}

// lookup reads the stored record. Missing, stale-format and corrupt records
// are all misses.
func (s *Store) lookup(ctx context.Context, path string) (Record, bool) {
	rec, err := ReadFile(s.RecordPath(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return Record{}, false
	case err != nil:
		s.corrupt.Add(1)
		trace.Pointf(ctx, trace.ScopeFile, "cache-corrupt", err.Error())
		return Record{}, false
	case rec.Version != Version:
		trace.Pointf(ctx, trace.ScopeFile, "cache-stale", fmt.Sprintf("version %d", rec.Version))
		return Record{}, false
	}
	return rec, true
}

// Put stores rec as the record of source.
func (s *Store) Put(source string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteFile(s.RecordPath(source), rec)
}

// Drop removes every stored record.
func (s *Store) Drop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.RemoveAll(filepath.Join(s.dir, "files"))
}

func (s *Store) Stats() Stats {
	return Stats{
		Hits:        s.hits.Load(),
		Misses:      s.misses.Load(),
		Corrupt:     s.corrupt.Load(),
		WriteErrors: s.writeErrs.Load(),
	}
}

// WriteFile writes rec to path through a temporary file and a rename, so
// readers see either the old record or the new one.
func WriteFile(path string, rec Record) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*"+Ext)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	w := bufio.NewWriter(f)
	if err = Encode(w, rec); err != nil {
		_ = f.Close()
		return err
	}
	if err = w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadFile decodes the record at path.
func ReadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}
