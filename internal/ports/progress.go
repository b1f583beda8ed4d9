package ports

import (
	"context"
	"time"

	"studytrack/internal/domain"
)

// ProgressStore is the remote relational store behind the HTTP surface
type ProgressStore interface {
	// Configured reports whether a database is behind this store
	Configured() bool

	ListProgress(ctx context.Context) ([]domain.ProgressRow, error)

	// ApplyDelta moves a counter, clamped to [0, total]. The subject is
	// matched exactly first, then accent/case-insensitively.
	ApplyDelta(ctx context.Context, req domain.DeltaRequest) (*domain.ProgressRow, error)

	// Init creates the schema and upserts the seed rows
	Init(ctx context.Context) ([]int, error)

	DailySeconds(ctx context.Context, day time.Time) (int, error)
	AddDailySeconds(ctx context.Context, day time.Time, seconds int) (int, error)

	Close() error
}

// ProgressClient is the core's view of the HTTP surface
type ProgressClient interface {
	Subjects(ctx context.Context) ([]domain.ProgressRow, error)
	ApplyDelta(ctx context.Context, req domain.DeltaRequest) (*domain.ProgressRow, error)
}
