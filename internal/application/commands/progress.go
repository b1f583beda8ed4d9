package commands

import (
	"context"
	"fmt"
	"strings"

	"studytrack/internal/application"
	"studytrack/internal/domain"
)

// DeltaApplier is satisfied by both the progress store and the HTTP client
type DeltaApplier interface {
	ApplyDelta(ctx context.Context, req domain.DeltaRequest) (*domain.ProgressRow, error)
}

// SubjectLister is satisfied by the HTTP client
type SubjectLister interface {
	Subjects(ctx context.Context) ([]domain.ProgressRow, error)
}

// ApplyDeltaCommand moves one remote progress counter
type ApplyDeltaCommand struct {
	target    DeltaApplier
	Subject   string
	TableType string
	Delta     int
}

// NewApplyDeltaCommand creates a new ApplyDeltaCommand
func NewApplyDeltaCommand(target DeltaApplier, subject, tableType string, delta int) *ApplyDeltaCommand {
	return &ApplyDeltaCommand{
		target:    target,
		Subject:   subject,
		TableType: tableType,
		Delta:     delta,
	}
}

// Validate checks the request fields
func (c *ApplyDeltaCommand) Validate() error {
	if err := application.ValidateRequired("subject", c.Subject); err != nil {
		return err
	}
	if err := application.ValidateRequired("tableType", c.TableType); err != nil {
		return err
	}
	if err := application.ValidateTableType("tableType", c.TableType); err != nil {
		return err
	}
	return application.ValidateDelta("delta", c.Delta)
}

// Execute runs the delta
func (c *ApplyDeltaCommand) Execute(ctx context.Context) (*domain.ProgressRow, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	tt, _ := domain.ParseTableType(c.TableType)
	row, err := c.target.ApplyDelta(ctx, domain.DeltaRequest{
		Subject:   strings.TrimSpace(c.Subject),
		TableType: string(tt),
		Delta:     c.Delta,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply delta: %w", err)
	}
	return row, nil
}

// ListSubjectsCommand returns every progress row
type ListSubjectsCommand struct {
	source SubjectLister
}

// NewListSubjectsCommand creates a new ListSubjectsCommand
func NewListSubjectsCommand(source SubjectLister) *ListSubjectsCommand {
	return &ListSubjectsCommand{source: source}
}

// Execute fetches the rows
func (c *ListSubjectsCommand) Execute(ctx context.Context) ([]domain.ProgressRow, error) {
	rows, err := c.source.Subjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return rows, nil
}

// Initializer creates the remote schema and seed rows
type Initializer interface {
	Init(ctx context.Context) ([]int, error)
}

// InitProgressCommand creates and seeds the progress table
type InitProgressCommand struct {
	store Initializer
}

// NewInitProgressCommand creates a new InitProgressCommand
func NewInitProgressCommand(store Initializer) *InitProgressCommand {
	return &InitProgressCommand{store: store}
}

// Execute runs the init and returns the seeded row ids
func (c *InitProgressCommand) Execute(ctx context.Context) ([]int, error) {
	ids, err := c.store.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise progress table: %w", err)
	}
	return ids, nil
}
