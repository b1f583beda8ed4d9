package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"studytrack/internal/config"
	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/metrics"
)

// Folder implements ports.FolderSource over a directory on disk
type Folder struct {
	root string
}

// NewFolder creates a folder source; ~ is expanded
func NewFolder(root string) *Folder {
	return &Folder{root: config.ExpandHome(root)}
}

// Name returns the folder path
func (f *Folder) Name() string { return f.root }

// Root returns the absolute folder path, persisted as the saved folder
func (f *Folder) Root() string {
	if abs, err := filepath.Abs(f.root); err == nil {
		return abs
	}
	return f.root
}

// CheckReadable reports whether the folder can still be listed. A saved
// folder is only reopened when this succeeds.
func (f *Folder) CheckReadable() error {
	info, err := os.Stat(f.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", f.root)
	}
	d, err := os.Open(f.root)
	if err != nil {
		return err
	}
	return d.Close()
}

// ReadFiles walks the folder. Entries that cannot be read are logged and
// skipped; only an unreadable root is an error.
func (f *Folder) ReadFiles(ctx context.Context) ([]domain.SourceFile, error) {
	start := time.Now()
	if err := f.CheckReadable(); err != nil {
		return nil, fmt.Errorf("failed to open folder: %w", err)
	}

	var files []domain.SourceFile
	err := filepath.WalkDir(f.root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == f.root {
				return err
			}
			logging.Warn("skipping unreadable entry", zap.String("path", p), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return nil
		}
		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		files = append(files, diskFile(filepath.ToSlash(rel), p, size))
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to walk folder: %w", err)
	}

	metrics.RecordFolderRead(len(files), time.Since(start))
	logging.Debug("folder read", zap.String("root", f.root), zap.Int("files", len(files)), zap.Duration("took", time.Since(start)))
	return files, nil
}

func diskFile(rel, abs string, size int64) domain.SourceFile {
	return domain.SourceFile{
		Path:     rel,
		DiskPath: abs,
		Size:     size,
		Open: func() (io.ReadCloser, error) {
			return os.Open(abs)
		},
	}
}

// FileList implements ports.FolderSource over an explicit selection of files,
// paths taken relative to base
type FileList struct {
	base  string
	paths []string
}

// NewFileList creates a flat selection source
func NewFileList(base string, paths ...string) *FileList {
	return &FileList{base: config.ExpandHome(base), paths: paths}
}

// Name identifies the source in messages
func (l *FileList) Name() string { return "selection" }

// ReadFiles stats each selected file; missing ones are logged and skipped
func (l *FileList) ReadFiles(ctx context.Context) ([]domain.SourceFile, error) {
	files := make([]domain.SourceFile, 0, len(l.paths))
	for _, p := range l.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(l.base, p)
		}
		info, err := os.Stat(abs)
		if err != nil {
			logging.Warn("skipping unreadable file", zap.String("path", abs), zap.Error(err))
			continue
		}
		if info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(l.base, abs)
		if err != nil {
			rel = filepath.Base(abs)
		}
		files = append(files, diskFile(filepath.ToSlash(rel), abs, info.Size()))
	}
	return files, nil
}
