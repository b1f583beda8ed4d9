package postgres

import (
	"context"
	"time"

	"studytrack/internal/application"
	"studytrack/internal/domain"
	"studytrack/internal/ports"
)

// Unconfigured stands in when no database URL is set; every operation
// reports application.ErrNotConfigured.
type Unconfigured struct{}

var _ ports.ProgressStore = Unconfigured{}

func (Unconfigured) Configured() bool { return false }
func (Unconfigured) Close() error { return nil }

func (Unconfigured) ListProgress(context.Context) ([]domain.ProgressRow, error) {
	return nil, application.ErrNotConfigured
}

func (Unconfigured) ApplyDelta(context.Context, domain.DeltaRequest) (*domain.ProgressRow, error) {
	return nil, application.ErrNotConfigured
}

func (Unconfigured) Init(context.Context) ([]int, error) {
	return nil, application.ErrNotConfigured
}

func (Unconfigured) DailySeconds(context.Context, time.Time) (int, error) {
	return 0, application.ErrNotConfigured
}

func (Unconfigured) AddDailySeconds(context.Context, time.Time, int) (int, error) {
	return 0, application.ErrNotConfigured
}

// Open returns a Store for url, or Unconfigured when url is empty
func Open(url string, configured bool) (ports.ProgressStore, error) {
	if !configured || url == "" {
		return Unconfigured{}, nil
	}
	return New(url)
}
