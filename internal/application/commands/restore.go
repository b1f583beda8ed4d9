package commands

import (
	"fmt"
	"os"

	"studytrack/internal/application"
	"studytrack/internal/domain"
)

// RestoreResult reports a merged history snapshot
type RestoreResult struct {
	File    string
	Entries int
	Done    int
	Message string
}

// RestoreHistoryCommand merges a completion history file into the session
type RestoreHistoryCommand struct {
	session *application.Session
	File    string
}

// NewRestoreHistoryCommand creates a new RestoreHistoryCommand
func NewRestoreHistoryCommand(session *application.Session, file string) *RestoreHistoryCommand {
	return &RestoreHistoryCommand{session: session, File: file}
}

// Validate checks that a file was named
func (c *RestoreHistoryCommand) Validate() error {
	return application.ValidateRequired("file", c.File)
}

// Execute reads, parses and merges the file
func (c *RestoreHistoryCommand) Execute() (*RestoreResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	done, err := domain.ParseHistory(data)
	if err != nil {
		return nil, &application.ValidationError{Field: "file", Message: err.Error()}
	}

	c.session.Restore(done)
	return &RestoreResult{
		File:    c.File,
		Entries: len(done),
		Done:    done.CountDone(),
		Message: "Historial restaurado desde: " + c.File,
	}, nil
}
