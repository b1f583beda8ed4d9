package ports

import "studytrack/internal/domain"

// StateStore is the local durable storage for application state.
// Load is called once at startup and Save once per mutation.
type StateStore interface {
	Load() (*domain.AppState, error)
	Save(state *domain.AppState) error
	Close() error
}
