// Package storage owns the upload directory and every file persisted in it.
// Handlers depend on the Storage interface; the concrete engine is injected at
// startup so tests can swap the filesystem underneath it.
package storage

import (
	"context"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Storage is the contract of the file storage engine.
type Storage interface {
	// EnsureRoot creates the upload root if it is missing.
	EnsureRoot() error
	// Store persists content under a freshly generated stored name.
	Store(ctx context.Context, nameHint string, content io.Reader) (*StoredFile, error)
	// StoreMany stores every item independently and reports one result per item.
	StoreMany(ctx context.Context, items []Item) []UploadResult
	// Resolve maps a stored name to its on-disk location without touching disk.
	Resolve(name string) (string, error)
	// Exists reports whether a stored file is present.
	Exists(name string) (bool, error)
	// Size returns the byte length of a stored file.
	Size(name string) (uint64, error)
	// List returns the stored names directly under the upload root.
	List() ([]string, error)
	// Delete removes a stored file, reporting whether anything was removed.
	Delete(name string) (bool, error)
	// Open opens a stored file for reading. Callers must close it.
	Open(name string) (afero.File, os.FileInfo, error)
}

// StoredFile describes a file after it has been fully written.
type StoredFile struct {
	Name         string `json:"name"`
	OriginalName string `json:"originalName"`
	Size         uint64 `json:"size"`
	Path         string `json:"path"`
}

// Item is one entry of a batch upload.
type Item struct {
	NameHint string
	Content  io.Reader
}

// UploadResult is the outcome of storing a single batch item.
type UploadResult struct {
	StoredName   string
	OriginalName string
	Size         uint64
	Err          error
}

// OK reports whether the item was stored.
func (r UploadResult) OK() bool {
	return r.Err == nil
}
