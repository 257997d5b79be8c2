package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("only image files are allowed")
)

// allowed lists accepted extensions with the mime subtypes they may carry
var allowed = map[string][]string{
	".jpg":  {"image/jpeg", "image/jpg"},
	".jpeg": {"image/jpeg", "image/jpg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
}

// Store places uploaded complaint images on the local filesystem
type Store struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// NewStore creates the upload directory if needed
func NewStore(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes, now: time.Now}, nil
}

// Dir returns the directory served as static files
func (s *Store) Dir() string {
	return s.dir
}

// MaxBytes returns the per-file size limit
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Validate checks size, extension and declared mime type
func (s *Store) Validate(fh *multipart.FileHeader) error {
	if fh.Size > s.maxBytes {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	mimes, ok := allowed[ext]
	if !ok {
		return ErrUnsupportedType
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(fh.Header.Get("Content-Type"), ";", 2)[0]))
	for _, m := range mimes {
		if contentType == m {
			return nil
		}
	}
	return ErrUnsupportedType
}

// NewFilename builds complaint-<unix millis>-<random>.<ext>, keeping the original extension
func (s *Store) NewFilename(original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("complaint-%d-%s%s", s.now().UnixMilli(), suffix, strings.ToLower(filepath.Ext(original)))
}

// DiskPath is where filename is written
func (s *Store) DiskPath(filename string) string {
	return filepath.Join(s.dir, filename)
}

// PublicPath is the value stored on the complaint and served under /uploads
func (s *Store) PublicPath(filename string) string {
	return path.Join("uploads", filename)
}

// Remove deletes a stored file, ignoring files that are already gone
func (s *Store) Remove(filename string) error {
	err := os.Remove(s.DiskPath(filename))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
