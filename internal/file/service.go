// Package file exposes the storage engine over HTTP: multipart uploads,
// downloads, inline views, metadata, listing, deletion and an HTML upload form.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/radif/filestore/internal/content"
	"github.com/radif/filestore/internal/storage"
)

// ErrTooLarge is returned when a single file exceeds the configured maximum size.
var ErrTooLarge = errors.New("file too large")

// Info is the metadata reported for a stored file.
type Info struct {
	Name        string `json:"name"`
	Size        uint64 `json:"size"`
	SizeHuman   string `json:"sizeHuman"`
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	Exists      bool   `json:"exists"`
}

// Download is an open stored file ready to be streamed to a client.
// Callers must close File.
type Download struct {
	Name        string
	ContentType string
	File        afero.File
	Stat        os.FileInfo
}

// Service contains the upload and retrieval logic on top of the storage engine.
type Service struct {
	store       storage.Storage
	maxFileSize int64
	log         *zap.Logger
}

// NewService creates a new file Service.
func NewService(store storage.Storage, maxFileSize int64, log *zap.Logger) *Service {
	return &Service{store: store, maxFileSize: maxFileSize, log: log}
}

// Upload stores a single multipart file.
func (s *Service) Upload(ctx context.Context, fh *multipart.FileHeader) (*storage.StoredFile, error) {
	if err := s.checkSize(fh); err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open upload %s: %w", storage.ErrIOFailure, fh.Filename, err)
	}
	defer f.Close()

	stored, err := s.store.Store(ctx, fh.Filename, f)
	if err != nil {
		return nil, err
	}
	s.log.Info("file uploaded",
		zap.String("name", stored.Name),
		zap.String("original", fh.Filename),
		zap.String("size", humanize.IBytes(stored.Size)),
	)
	return stored, nil
}

// UploadMany stores every file independently. Files that are too large or
// cannot be opened fail on their own; results follow the order of fhs.
func (s *Service) UploadMany(ctx context.Context, fhs []*multipart.FileHeader) []storage.UploadResult {
	results := make([]storage.UploadResult, len(fhs))
	items := make([]storage.Item, 0, len(fhs))
	positions := make([]int, 0, len(fhs))
	closers := make([]io.Closer, 0, len(fhs))
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	for i, fh := range fhs {
		results[i].OriginalName = fh.Filename
		if err := s.checkSize(fh); err != nil {
			results[i].Err = err
			continue
		}
		f, err := fh.Open()
		if err != nil {
			results[i].Err = fmt.Errorf("%w: open upload %s: %w", storage.ErrIOFailure, fh.Filename, err)
			continue
		}
		closers = append(closers, f)
		items = append(items, storage.Item{NameHint: fh.Filename, Content: f})
		positions = append(positions, i)
	}

	for j, res := range s.store.StoreMany(ctx, items) {
		results[positions[j]] = res
	}

	var ok int
	for _, res := range results {
		if res.OK() {
			ok++
		}
	}
	s.log.Info("batch uploaded",
		zap.Int("stored", ok),
		zap.Int("failed", len(results)-ok),
	)
	return results
}

// Info returns the metadata of a stored file.
func (s *Service) Info(name string) (*Info, error) {
	size, err := s.store.Size(name)
	if err != nil {
		return nil, err
	}
	path, err := s.store.Resolve(name)
	if err != nil {
		return nil, err
	}
	return &Info{
		Name:        name,
		Size:        size,
		SizeHuman:   humanize.IBytes(size),
		Path:        path,
		ContentType: content.TypeFor(name),
		Exists:      true,
	}, nil
}

// Open opens a stored file for delivery.
func (s *Service) Open(name string) (*Download, error) {
	f, stat, err := s.store.Open(name)
	if err != nil {
		return nil, err
	}
	return &Download{
		Name:        name,
		ContentType: content.TypeFor(name),
		File:        f,
		Stat:        stat,
	}, nil
}

// List returns every stored name.
func (s *Service) List() ([]string, error) {
	return s.store.List()
}

// Delete removes a stored file, reporting whether it existed.
func (s *Service) Delete(name string) (bool, error) {
	deleted, err := s.store.Delete(name)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("file deleted", zap.String("name", name))
	}
	return deleted, nil
}

func (s *Service) checkSize(fh *multipart.FileHeader) error {
	if s.maxFileSize > 0 && fh.Size > s.maxFileSize {
		return fmt.Errorf("%w: %s is %s, limit is %s", ErrTooLarge, fh.Filename,
			humanize.IBytes(uint64(fh.Size)), humanize.IBytes(uint64(s.maxFileSize)))
	}
	return nil
}
