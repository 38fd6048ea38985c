package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	dirMode  = 0o755
	fileMode = 0o644

	// tempPrefix marks in-flight uploads. Such files are never listed or addressable.
	tempPrefix = ".upload-"
)

// Config configures a LocalStorage.
type Config struct {
	// Root is the upload directory. It is created on first use.
	Root string
	// Fs is the filesystem the root lives on. Defaults to the OS filesystem.
	Fs afero.Fs
}

// LocalStorage implements Storage on a single local directory.
// It holds no locks: stored names are random, and files become visible
// only once fully written, through a rename from a temp file.
type LocalStorage struct {
	fs   afero.Fs
	root string
	log  *zap.Logger
}

var _ Storage = (*LocalStorage)(nil)

// NewLocalStorage returns a LocalStorage rooted at cfg.Root. The directory is
// not touched until the first operation that needs it.
func NewLocalStorage(cfg Config, log *zap.Logger) *LocalStorage {
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalStorage{
		fs:   fs,
		root: filepath.Clean(cfg.Root),
		log:  log,
	}
}

// Root returns the upload directory.
func (s *LocalStorage) Root() string {
	return s.root
}

// EnsureRoot creates the upload directory if needed. A directory that already
// exists, including one created concurrently by another caller, is success.
func (s *LocalStorage) EnsureRoot() error {
	if err := s.fs.MkdirAll(s.root, dirMode); err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrStorageUnavailable, s.root, err)
	}
	info, err := s.fs.Stat(s.root)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrStorageUnavailable, s.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrStorageUnavailable, s.root)
	}
	return nil
}

// Store writes content under a new stored name made of a random UUID and the
// extension of nameHint. Cancelling ctx aborts the copy and leaves no file behind.
func (s *LocalStorage) Store(ctx context.Context, nameHint string, content io.Reader) (*StoredFile, error) {
	if content == nil {
		return nil, ErrEmptyInput
	}
	br := bufio.NewReader(content)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("%w: read upload: %w", ErrIOFailure, err)
	}

	if err := s.EnsureRoot(); err != nil {
		return nil, err
	}

	token, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("%w: generate name: %w", ErrIOFailure, err)
	}
	name := token.String() + Extension(nameHint)
	dst, err := s.Resolve(name)
	if err != nil {
		return nil, err
	}

	n, err := s.writeAtomic(ctx, dst, br)
	if err != nil {
		return nil, fmt.Errorf("%w: write %s: %w", ErrIOFailure, name, err)
	}

	s.log.Debug("file stored",
		zap.String("name", name),
		zap.String("original", nameHint),
		zap.String("size", humanize.IBytes(n)),
	)
	return &StoredFile{
		Name:         name,
		OriginalName: nameHint,
		Size:         n,
		Path:         dst,
	}, nil
}

// writeAtomic copies r into a temp file next to dst, then renames it into place.
// On failure the temp file is removed.
func (s *LocalStorage) writeAtomic(ctx context.Context, dst string, r io.Reader) (n uint64, err error) {
	tmp, err := afero.TempFile(s.fs, s.root, tempPrefix+"*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			err = multierr.Append(err, s.fs.Remove(tmpName))
		}
	}()

	written, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: r})
	if err != nil {
		return 0, multierr.Append(err, tmp.Close())
	}
	if err = tmp.Sync(); err != nil {
		return 0, multierr.Append(err, tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return 0, err
	}
	if err = s.fs.Chmod(tmpName, fileMode); err != nil {
		return 0, err
	}
	if err = s.fs.Rename(tmpName, dst); err != nil {
		return 0, err
	}
	return uint64(written), nil
}

// StoreMany stores items one by one. A failing item never stops the others;
// results are in item order.
func (s *LocalStorage) StoreMany(ctx context.Context, items []Item) []UploadResult {
	results := make([]UploadResult, 0, len(items))
	for _, it := range items {
		res := UploadResult{OriginalName: it.NameHint}
		f, err := s.Store(ctx, it.NameHint, it.Content)
		if err != nil {
			s.log.Warn("batch item not stored",
				zap.String("original", it.NameHint),
				zap.Error(err),
			)
			res.Err = err
		} else {
			res.StoredName = f.Name
			res.Size = f.Size
		}
		results = append(results, res)
	}
	return results
}

// Resolve returns the location of name under the upload root. Names that
// contain separators or parent references are rejected.
func (s *LocalStorage) Resolve(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, name), nil
}

func (s *LocalStorage) Exists(name string) (bool, error) {
	p, err := s.Resolve(name)
	if err != nil {
		return false, err
	}
	info, err := s.fs.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %s: %w", ErrIOFailure, name, err)
	}
	return info.Mode().IsRegular(), nil
}

func (s *LocalStorage) Size(name string) (uint64, error) {
	p, err := s.Resolve(name)
	if err != nil {
		return 0, err
	}
	info, err := s.fs.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return 0, fmt.Errorf("%w: stat %s: %w", ErrIOFailure, name, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return uint64(info.Size()), nil
}

// List returns the stored names under the root, sorted by name.
func (s *LocalStorage) List() ([]string, error) {
	if err := s.EnsureRoot(); err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrIOFailure, s.root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Mode().IsRegular() || strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Delete removes name. It returns false, not an error, when there was nothing to remove.
func (s *LocalStorage) Delete(name string) (bool, error) {
	p, err := s.Resolve(name)
	if err != nil {
		return false, err
	}
	info, err := s.fs.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %s: %w", ErrIOFailure, name, err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	if err := s.fs.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: delete %s: %w", ErrIOFailure, name, err)
	}
	s.log.Debug("file deleted", zap.String("name", name))
	return true, nil
}

// Open opens name for reading along with its file info.
func (s *LocalStorage) Open(name string) (afero.File, os.FileInfo, error) {
	p, err := s.Resolve(name)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.fs.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, nil, fmt.Errorf("%w: open %s: %w", ErrIOFailure, name, err)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, nil, multierr.Append(fmt.Errorf("%w: stat %s: %w", ErrIOFailure, name, err), f.Close())
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return f, info, nil
}

// Extension returns the part of nameHint's base name starting at its last
// dot, or "" when there is no dot. Case is preserved.
func Extension(nameHint string) string {
	base := nameHint
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i >= 0 {
		return base[i:]
	}
	return ""
}

func validName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
	case strings.ContainsAny(name, "/\\\x00"):
	case strings.HasPrefix(name, tempPrefix):
	default:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidName, name)
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
