package ports

import (
	"context"

	"studytrack/internal/domain"
)

// FolderSource enumerates the files of a user-selected collection
type FolderSource interface {
	// Name identifies the source for messages (folder path or "selection")
	Name() string

	// ReadFiles returns every file below the source, including reserved
	// ones; filtering is the snapshot builder's job
	ReadFiles(ctx context.Context) ([]domain.SourceFile, error)
}
