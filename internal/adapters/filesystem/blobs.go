package filesystem

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"studytrack/internal/domain"
	"studytrack/internal/logging"
)

// Blobs implements ports.BlobProvider. Files on disk are referenced in
// place; in-memory files are copied to a temporary file that lives until
// released.
type Blobs struct {
	dir string
}

// NewBlobs creates a provider writing temporaries under dir ("" = os.TempDir)
func NewBlobs(dir string) *Blobs {
	return &Blobs{dir: dir}
}

// Acquire returns a file:// reference for doc
func (b *Blobs) Acquire(doc domain.DocumentRecord) (string, func(), error) {
	if doc.Source.DiskPath != "" {
		return fileURL(doc.Source.DiskPath), func() {}, nil
	}

	rc, err := openSource(doc.Source)
	if err != nil {
		return "", nil, err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(b.dir, "studytrack-*"+filepath.Ext(doc.Name))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to copy %s: %w", doc.RelativePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}

	name := tmp.Name()
	release := func() {
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			logging.Warn("cannot remove temporary reference", zap.String("file", name), zap.Error(err))
		}
	}
	return fileURL(name), release, nil
}

func openSource(f domain.SourceFile) (io.ReadCloser, error) {
	if f.Open == nil {
		return nil, fmt.Errorf("%s: no content", f.Path)
	}
	return f.Open()
}

func fileURL(p string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
	return u.String()
}
