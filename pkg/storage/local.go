package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore saves uploaded receipts and portraits. Files land under the
// upload dir which the server exposes at /uploads.
type FileStore interface {
	Save(file *multipart.FileHeader, subdir string) (string, error)
	Remove(publicPath string) error
}

type localStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &localStore{baseDir: baseDir}, nil
}

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".pdf":  {},
}

// Save stores the upload under a random name and returns its public
// path (/uploads/<subdir>/<name>).
func (s *localStore) Save(file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", err
	}

	return "/uploads/" + subdir + "/" + name, nil
}

func (s *localStore) Remove(publicPath string) error {
	rel := strings.TrimPrefix(publicPath, "/uploads/")
	if rel == publicPath || strings.Contains(rel, "..") {
		return fmt.Errorf("invalid upload path: %s", publicPath)
	}
	return os.Remove(filepath.Join(s.baseDir, rel))
}
