// Package storage persists standardized CV PDFs under their canonical names:
// standardized_cvs/standardized_cv_<consultant_id>_<yyyymmddHHMMSS>.pdf
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/richat-staffing/internal/types"
	"github.com/spf13/afero"
)

const (
	// Dir is the directory, relative to the store root, holding standardized CVs
	Dir = "standardized_cvs"

	filePrefix      = "standardized_cv_"
	fileExt         = ".pdf"
	timestampLayout = "20060102150405"
)

// FileStore writes standardized CVs below a root directory
type FileStore struct {
	fs   afero.Fs
	root string
}

// NewFileStore creates a FileStore on the local filesystem
func NewFileStore(root string) *FileStore {
	return NewFileStoreFs(afero.NewOsFs(), root)
}

// NewFileStoreFs creates a FileStore on an arbitrary filesystem
func NewFileStoreFs(fs afero.Fs, root string) *FileStore {
	return &FileStore{fs: fs, root: root}
}

// FileName returns the canonical file name of a standardized CV
func FileName(consultantID string, at time.Time) string {
	return filePrefix + consultantID + "_" + at.Format(timestampLayout) + fileExt
}

func validID(consultantID string) error {
	if strings.TrimSpace(consultantID) == "" {
		return fmt.Errorf("consultant id is empty")
	}
	if strings.ContainsAny(consultantID, `/\`) || strings.Contains(consultantID, "..") {
		return fmt.Errorf("consultant id %q is not a valid file name component", consultantID)
	}
	return nil
}

// Save writes pdf under its canonical name and returns the path. The file
// appears atomically: readers never observe a partial PDF.
func (s *FileStore) Save(consultantID string, pdf []byte, at time.Time) (string, error) {
	if err := validID(consultantID); err != nil {
		return "", types.NewError(types.CodeStorageWriteFailed, "invalid consultant id", err)
	}
	dir := filepath.Join(s.root, Dir)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return "", types.NewError(types.CodeStorageWriteFailed, "failed to create storage directory", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".tmp-"+filePrefix+"*")
	if err != nil {
		return "", types.NewError(types.CodeStorageWriteFailed, "failed to create temporary file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(pdf); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return "", types.NewError(types.CodeStorageWriteFailed, "failed to write PDF", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", types.NewError(types.CodeStorageWriteFailed, "failed to close PDF", err)
	}

	path := filepath.Join(dir, FileName(consultantID, at.UTC()))
	if err := s.fs.Rename(tmpName, path); err != nil {
		_ = s.fs.Remove(tmpName)
		return "", types.NewError(types.CodeStorageWriteFailed, "failed to move PDF into place", err)
	}
	return path, nil
}

// Latest returns the path of the most recent standardized CV of a consultant:
// the lexicographically greatest canonical file name for that ID
func (s *FileStore) Latest(consultantID string) (string, error) {
	if err := validID(consultantID); err != nil {
		return "", types.NewError(types.CodeNotFound, "invalid consultant id", err)
	}
	dir := filepath.Join(s.root, Dir)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to list %s: %w", dir, err)
	}

	prefix := filePrefix + consultantID + "_"
	latest := ""
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		// the remainder must be exactly a timestamp so that "c1" does not match "c1_2"
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), fileExt)
		if _, err := time.Parse(timestampLayout, stamp); err != nil {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return "", types.NewError(types.CodeNotFound, "no standardized CV for consultant "+consultantID, nil)
	}
	return filepath.Join(dir, latest), nil
}

// Open reads a stored file
func (s *FileStore) Open(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
