package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"photo-seo/model"
)

// PhotoStorage is the upload sink: it persists finished photo bytes
// under their composed filename.
type PhotoStorage interface {
	SavePhoto(photo model.GeneratedPhoto) (string, error)
}

// LocalPhotoStorage mirrors generated photos into a local directory.
type LocalPhotoStorage struct {
	Directory string
}

func (s *LocalPhotoStorage) SavePhoto(photo model.GeneratedPhoto) (string, error) {
	if err := os.MkdirAll(s.Directory, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(s.Directory, photo.Name)
	if err := os.WriteFile(path, photo.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", photo.Name, err)
	}
	return path, nil
}
