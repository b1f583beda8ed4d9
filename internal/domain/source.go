package domain

import (
	"fmt"
	"io"
	"path"
	"strings"
)

// ReservedSegment excludes any file below a folder with this name (case-insensitive)
const ReservedSegment = "system"

// DocumentExt is the extension of files shown in the viewer
const DocumentExt = ".pdf"

// PointerExts are files kept as link pointers; their bytes are scanned for a URL
var PointerExts = []string{".url", ".link", ".webloc", ".txt"}

// SourceFile is one file of the ingested collection
type SourceFile struct {
	Path     string // slash-delimited, relative to the selected folder
	DiskPath string // absolute path on disk, empty for in-memory files
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Name returns the last path segment
func (f SourceFile) Name() string {
	return path.Base(f.Path)
}

// ReadAll returns the file's bytes
func (f SourceFile) ReadAll() ([]byte, error) {
	if f.Open == nil {
		return nil, fmt.Errorf("%s: no content", f.Path)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Segments splits a relative path, dropping empty segments
func Segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}

// IsReserved reports whether any segment of p is the reserved segment
func IsReserved(p string) bool {
	for _, s := range Segments(p) {
		if strings.EqualFold(s, ReservedSegment) {
			return true
		}
	}
	return false
}

// IsDocumentName reports whether name carries the document extension
func IsDocumentName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), DocumentExt)
}

// IsPointerName reports whether name is a link-pointer file
func IsPointerName(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range PointerExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
