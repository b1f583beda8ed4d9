package commands

import (
	"context"
	"fmt"

	"studytrack/internal/application"
	"studytrack/internal/domain"
)

// ToggleResult reports a completion flip and its remote reconciliation
type ToggleResult struct {
	Document domain.DocumentRecord
	Done     bool
	Outcome  application.Outcome
	Message  string
}

// ToggleCommand flips completion of one record by path, or of the open
// document when Path is empty
type ToggleCommand struct {
	session *application.Session
	Path    string
}

// NewToggleCommand creates a new ToggleCommand
func NewToggleCommand(session *application.Session, path string) *ToggleCommand {
	return &ToggleCommand{session: session, Path: path}
}

// Execute flips, persists, re-derives the queue, then reconciles
func (c *ToggleCommand) Execute(ctx context.Context) (*ToggleResult, error) {
	var (
		doc  domain.DocumentRecord
		done bool
		err  error
	)
	if c.Path == "" {
		doc, done, err = c.session.ToggleCurrent()
	} else {
		doc, done, err = c.session.TogglePath(c.Path)
	}
	if err != nil {
		return nil, err
	}

	out := c.session.Reconcile(ctx, doc, done)
	state := "pendiente"
	if done {
		state = "completado"
	}
	return &ToggleResult{
		Document: doc,
		Done:     done,
		Outcome:  out,
		Message:  fmt.Sprintf("%s: %s", doc.RelativePath, state),
	}, nil
}
