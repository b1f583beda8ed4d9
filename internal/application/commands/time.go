package commands

import (
	"context"
	"fmt"
	"time"

	"studytrack/internal/application"
)

// DailyTimer reads and accumulates study seconds per day
type DailyTimer interface {
	DailySeconds(ctx context.Context, day time.Time) (int, error)
	AddDailySeconds(ctx context.Context, day time.Time, seconds int) (int, error)
}

// DailyTimeCommand reports today's study time, adding Add seconds first when positive
type DailyTimeCommand struct {
	store DailyTimer
	Add   int
	Now   func() time.Time
}

// NewDailyTimeCommand creates a new DailyTimeCommand
func NewDailyTimeCommand(store DailyTimer, add int) *DailyTimeCommand {
	return &DailyTimeCommand{store: store, Add: add, Now: time.Now}
}

// Validate rejects negative amounts
func (c *DailyTimeCommand) Validate() error {
	if c.Add < 0 {
		return &application.ValidationError{
			Field:   "seconds",
			Message: fmt.Sprintf("seconds must not be negative, got: %d", c.Add),
		}
	}
	return nil
}

// Execute returns the day's total
func (c *DailyTimeCommand) Execute(ctx context.Context) (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	now := c.Now()
	if c.Add > 0 {
		total, err := c.store.AddDailySeconds(ctx, now, c.Add)
		if err != nil {
			return 0, fmt.Errorf("failed to add time: %w", err)
		}
		return total, nil
	}
	seconds, err := c.store.DailySeconds(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to read time: %w", err)
	}
	return seconds, nil
}
