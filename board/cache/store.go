package cache

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/boardforge/boardforge/board"
	"github.com/boardforge/boardforge/mesh"
)

const (
	plyExt  = ".ply"
	zstdExt = ".ply.zst"
)

// ErrCorruptEntry marks a persisted entry that exists but cannot be decoded.
var ErrCorruptEntry = errors.New("corrupt cache entry")

// Store persists one solid per cache key as a PLY file, optionally zstd framed.
// The directory is created on first use.
type Store struct {
	dir      string
	compress bool

	once   sync.Once
	dirErr error
}

// NewStore returns a store rooted at dir. Nothing is touched on disk until the
// first Load or Save.
func NewStore(dir string, compress bool) *Store {
	return &Store{dir: dir, compress: compress}
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// FileName returns the file name used for key.
func (s *Store) FileName(key string) (string, error) {
	stem := board.SanitizeKey(key)
	if stem == "" {
		return "", fmt.Errorf("cache key %q has no usable characters", key)
	}
	if s.compress {
		return stem + zstdExt, nil
	}
	return stem + plyExt, nil
}

func (s *Store) ensureDir() error {
	s.once.Do(func() {
		if s.dir == "" {
			s.dirErr = fmt.Errorf("empty cache directory")
			return
		}
		s.dirErr = os.MkdirAll(s.dir, 0o755)
	})
	return s.dirErr
}

// Load reads the entry for key. A missing file is reported as (nil, false, nil);
// a file that exists but does not decode is an error wrapping ErrCorruptEntry.
func (s *Store) Load(key string) (*mesh.Mesh, bool, error) {
	if err := s.ensureDir(); err != nil {
		return nil, false, err
	}
	name, err := s.FileName(key)
	if err != nil {
		return nil, false, err
	}
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	var r io.Reader = f
	if s.compress {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, path, err)
		}
		defer dec.Close()
		r = dec
	}
	m, err := mesh.ReadPLY(bufio.NewReaderSize(r, 256*1024))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %v", ErrCorruptEntry, path, err)
	}
	return m, true, nil
}

// Save writes m under key and returns the file name. The file is written to a
// temporary name and renamed into place, so readers never see a partial entry.
func (s *Store) Save(key string, m *mesh.Mesh) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}
	name, err := s.FileName(key)
	if err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := s.encode(tmp, m); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write cache entry %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Store) encode(w io.Writer, m *mesh.Mesh) error {
	if !s.compress {
		return mesh.WritePLY(w, m)
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := mesh.WritePLY(enc, m); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Files lists the cache entry files in the directory, sorted by name.
// A missing directory has no files.
func (s *Store) Files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n := e.Name(); strings.HasSuffix(n, plyExt) || strings.HasSuffix(n, zstdExt) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Clear removes every cache entry file and returns how many were removed.
func (s *Store) Clear() (int, error) {
	files, err := s.Files()
	if err != nil {
		return 0, err
	}
	for i, name := range files {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return i, err
		}
	}
	return len(files), nil
}
