package process

import (
	"archive/zip"
	"bytes"
	"fmt"

	"photo-seo/model"
)

// Package writes the generated set into a single ZIP archive for
// download.
func Package(photos []model.GeneratedPhoto) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, photo := range photos {
		entry, err := zw.Create(photo.Name)
		if err != nil {
			return nil, fmt.Errorf("zip entry %q: %w", photo.Name, err)
		}
		if _, err := entry.Write(photo.Data); err != nil {
			return nil, fmt.Errorf("zip entry %q: %w", photo.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}
