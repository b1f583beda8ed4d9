package application

import (
	"fmt"

	"studytrack/internal/domain"
)

// Re-export domain types for use by adapters
type (
	Snapshot       = domain.Snapshot
	DirectoryEntry = domain.DirectoryEntry
	DocumentRecord = domain.DocumentRecord
	Queue          = domain.Queue
	CompletionMap  = domain.CompletionMap
	ProgressRow    = domain.ProgressRow
	TableType      = domain.TableType
)

const (
	TableTheory   = domain.TableTheory
	TablePractice = domain.TablePractice
)

// Toast is a transient, user-visible notification
type Toast struct {
	Text  string
	Error bool
}

// Outcome reports how a remote reconciliation went
type Outcome struct {
	Attempted bool // false when no client is configured
	OK        bool
	Status    int
	Subject   string // the spelling actually sent
	Row       *domain.ProgressRow
	Err       error
}

// Toast renders the outcome as a notification
func (o Outcome) Toast() Toast {
	switch {
	case !o.Attempted:
		return Toast{Text: "Guardado en local (sin servidor de progreso)"}
	case o.OK:
		return Toast{Text: "Progreso guardado"}
	case o.Status > 0:
		return Toast{Text: fmt.Sprintf("Error (%d) al guardar progreso", o.Status), Error: true}
	default:
		return Toast{Text: "Error de red al guardar el progreso", Error: true}
	}
}
