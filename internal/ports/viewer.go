package ports

import "studytrack/internal/domain"

// BlobProvider hands out temporary local references to a document's bytes
type BlobProvider interface {
	// Acquire returns a reference usable by an external viewer and a
	// release func that invalidates it
	Acquire(doc domain.DocumentRecord) (ref string, release func(), err error)
}

// DocumentOpener hands a display reference to an external viewer
type DocumentOpener interface {
	Open(ref string) error
}
