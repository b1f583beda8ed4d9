package application

import (
	"go.uber.org/zap"

	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/ports"
)

// RefKind tells how a display reference was derived
type RefKind int

const (
	RefNone  RefKind = iota
	RefLocal         // temporary reference to the document's bytes
	RefLink          // direct or embedded link
)

func (k RefKind) String() string {
	switch k {
	case RefLocal:
		return "local"
	case RefLink:
		return "link"
	default:
		return "none"
	}
}

// DisplayRef is what the viewer hands to an external renderer
type DisplayRef struct {
	Kind RefKind
	URL  string
}

// Viewer tracks the open document and its display reference
type Viewer struct {
	blobs ports.BlobProvider

	current *domain.DocumentRecord
	index   int
	focused bool
	ref     DisplayRef
	release func()
	stale   bool
}

// NewViewer creates a viewer that takes local references from blobs
func NewViewer(blobs ports.BlobProvider) *Viewer {
	return &Viewer{blobs: blobs}
}

// Show makes doc current at queue index i; nil closes the viewer. Showing
// an identical record again only moves the index.
func (v *Viewer) Show(doc *domain.DocumentRecord, i int) DisplayRef {
	v.index = i
	if doc != nil && v.current != nil && !v.stale && sameRecord(*v.current, *doc) {
		return v.ref
	}
	v.stale = false

	v.releaseRef()
	if doc == nil {
		v.current = nil
		v.index = 0
		return v.ref
	}

	d := *doc
	v.current = &d
	v.ref = v.derive(d)
	if !d.IsDocument {
		v.focused = false
	}
	return v.ref
}

// Invalidate forces the next Show to rebuild the current record and its
// reference, even when the path is unchanged
func (v *Viewer) Invalidate() {
	v.stale = true
}

// sameRecord compares two records field by field; Source.Open is ignored
func sameRecord(a, b domain.DocumentRecord) bool {
	return a.RelativePath == b.RelativePath &&
		a.Name == b.Name &&
		a.Folder == b.Folder &&
		a.Subject == b.Subject &&
		a.TableType == b.TableType &&
		a.IsDocument == b.IsDocument &&
		a.Link == b.Link &&
		a.Source.Path == b.Source.Path &&
		a.Source.DiskPath == b.Source.DiskPath &&
		a.Source.Size == b.Source.Size
}

func (v *Viewer) derive(d domain.DocumentRecord) DisplayRef {
	if d.IsDocument {
		if v.blobs == nil {
			return DisplayRef{}
		}
		ref, release, err := v.blobs.Acquire(d)
		if err != nil {
			logging.Warn("cannot create local reference", zap.String("path", d.RelativePath), zap.Error(err))
			return DisplayRef{}
		}
		v.release = release
		return DisplayRef{Kind: RefLocal, URL: ref}
	}

	if d.Link != "" {
		return DisplayRef{Kind: RefLink, URL: domain.EmbedURL(d.Link)}
	}

	data, err := d.Source.ReadAll()
	if err != nil {
		logging.Warn("cannot read link pointer", zap.String("path", d.RelativePath), zap.Error(err))
		return DisplayRef{}
	}
	link, ok := domain.ExtractLink(data)
	if !ok {
		return DisplayRef{}
	}
	return DisplayRef{Kind: RefLink, URL: domain.EmbedURL(link)}
}

func (v *Viewer) releaseRef() {
	if v.release != nil {
		v.release()
		v.release = nil
	}
	v.ref = DisplayRef{}
}

// Current returns the open document
func (v *Viewer) Current() (domain.DocumentRecord, bool) {
	if v.current == nil {
		return domain.DocumentRecord{}, false
	}
	return *v.current, true
}

// Index returns the queue index of the open document
func (v *Viewer) Index() int { return v.index }

// Ref returns the current display reference
func (v *Viewer) Ref() DisplayRef { return v.ref }

// Focused reports whether the viewer is in full mode
func (v *Viewer) Focused() bool { return v.focused }

// SetFocused switches between inline list and full viewer. Link pointers
// never open in full mode.
func (v *Viewer) SetFocused(focused bool) {
	if focused && (v.current == nil || !v.current.IsDocument) {
		return
	}
	v.focused = focused
}

// Close releases the current reference
func (v *Viewer) Close() {
	v.releaseRef()
	v.current = nil
	v.focused = false
}
