package domain

import (
	"path"
	"slices"
	"strings"
)

// TableType classifies a document as theory or practice material
type TableType string

const (
	TableTheory   TableType = "theory"
	TablePractice TableType = "practice"
)

// ParseTableType accepts "theory" or "practice" (any case)
func ParseTableType(s string) (TableType, bool) {
	switch TableType(strings.ToLower(strings.TrimSpace(s))) {
	case TableTheory:
		return TableTheory, true
	case TablePractice:
		return TablePractice, true
	}
	return "", false
}

// DocumentRecord is one viewable unit: a PDF or a link pointer
type DocumentRecord struct {
	RelativePath string // unique key for completion tracking
	Name         string // display name (last segment)
	Folder       string // path of the containing DirectoryEntry
	Subject      string
	TableType    TableType
	IsDocument   bool
	Link         string // explicit link, empty unless known up front
	Source       SourceFile
}

// DirectoryEntry is one folder of the snapshot. The root has an empty path.
type DirectoryEntry struct {
	Path      string
	Name      string
	Parent    string // meaningless for the root, see IsRoot
	Subdirs   []string
	Documents []DocumentRecord
}

// IsRoot reports whether e is the root entry
func (e *DirectoryEntry) IsRoot() bool {
	return e.Path == ""
}

// Snapshot is the directory tree rebuilt from the selected folder
type Snapshot struct {
	entries map[string]*DirectoryEntry
}

// DeriveTree builds a snapshot from a flat file collection. Files below a
// reserved segment are dropped; every other file gets its ancestor chain,
// even when it contributes no record.
func DeriveTree(files []SourceFile) *Snapshot {
	s := &Snapshot{entries: make(map[string]*DirectoryEntry)}
	s.ensureDir("")

	for _, f := range files {
		parts := Segments(f.Path)
		if len(parts) == 0 || IsReserved(f.Path) {
			continue
		}
		name := parts[len(parts)-1]
		dir := strings.Join(parts[:len(parts)-1], "/")
		entry := s.ensureDir(dir)

		isDoc := IsDocumentName(name)
		if !isDoc && !IsPointerName(name) {
			continue
		}
		rel := strings.Join(parts, "/")
		entry.Documents = append(entry.Documents, DocumentRecord{
			RelativePath: rel,
			Name:         name,
			Folder:       dir,
			TableType:    TableTheory,
			IsDocument:   isDoc,
			Source:       f,
		})
	}

	sorter := newNaturalSorter()
	for _, e := range s.entries {
		slices.SortFunc(e.Subdirs, sorter.Compare)
		slices.SortFunc(e.Documents, func(a, b DocumentRecord) int {
			if c := sorter.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return strings.Compare(a.RelativePath, b.RelativePath)
		})
	}
	return s
}

// ensureDir returns the entry for p, creating it and its ancestors if missing
func (s *Snapshot) ensureDir(p string) *DirectoryEntry {
	if e, ok := s.entries[p]; ok {
		return e
	}
	segs := Segments(p)
	e := &DirectoryEntry{Path: p}
	if len(segs) > 0 {
		e.Name = segs[len(segs)-1]
		e.Parent = strings.Join(segs[:len(segs)-1], "/")
	}
	s.entries[p] = e
	if !e.IsRoot() {
		parent := s.ensureDir(e.Parent)
		if !slices.Contains(parent.Subdirs, p) {
			parent.Subdirs = append(parent.Subdirs, p)
		}
	}
	return e
}

// Root returns the root entry; never nil, even for an empty snapshot
func (s *Snapshot) Root() *DirectoryEntry {
	if s == nil || s.entries == nil {
		return &DirectoryEntry{}
	}
	return s.entries[""]
}

// Entry returns the entry at p
func (s *Snapshot) Entry(p string) (*DirectoryEntry, bool) {
	if s == nil {
		return nil, false
	}
	e, ok := s.entries[p]
	return e, ok
}

// Len returns the number of entries including the root
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Paths returns every entry path in natural order, root first
func (s *Snapshot) Paths() []string {
	if s == nil {
		return nil
	}
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	slices.SortFunc(paths, newNaturalSorter().Compare)
	return paths
}

// Documents returns every record in the tree, in tree order
func (s *Snapshot) Documents() []DocumentRecord {
	var out []DocumentRecord
	s.Walk(func(e *DirectoryEntry, _ int) {
		out = append(out, e.Documents...)
	})
	return out
}

// Find returns the record with the given relative path
func (s *Snapshot) Find(rel string) (DocumentRecord, bool) {
	if s == nil {
		return DocumentRecord{}, false
	}
	e, ok := s.entries[path.Dir(rel)]
	if !ok && !strings.Contains(rel, "/") {
		e, ok = s.entries[""]
	}
	if !ok {
		return DocumentRecord{}, false
	}
	for _, d := range e.Documents {
		if d.RelativePath == rel {
			return d, true
		}
	}
	return DocumentRecord{}, false
}

// Walk visits entries depth-first from the root in sorted order
func (s *Snapshot) Walk(fn func(e *DirectoryEntry, depth int)) {
	if s == nil || s.entries == nil {
		return
	}
	var visit func(p string, depth int)
	visit = func(p string, depth int) {
		e := s.entries[p]
		fn(e, depth)
		for _, sub := range e.Subdirs {
			visit(sub, depth+1)
		}
	}
	visit("", 0)
}

// Outline renders the tree as indented text, one line per folder or record
func (s *Snapshot) Outline() string {
	var b strings.Builder
	s.Walk(func(e *DirectoryEntry, depth int) {
		indent := strings.Repeat("  ", depth)
		if !e.IsRoot() {
			b.WriteString(indent[2:])
			b.WriteString(e.Name)
			b.WriteString("/\n")
		}
		for _, d := range e.Documents {
			b.WriteString(indent)
			b.WriteString(d.Name)
			b.WriteString("\n")
		}
	})
	return b.String()
}

// FolderLabel returns the last segment of a folder path, "Inicio" for the root
func FolderLabel(p string) string {
	segs := Segments(p)
	if len(segs) == 0 {
		if p == "" {
			return "Inicio"
		}
		return p
	}
	return segs[len(segs)-1]
}

// Breadcrumb joins the segments of a folder path, "Carpetas" for the root
func Breadcrumb(p string) string {
	segs := Segments(p)
	if len(segs) == 0 {
		return "Carpetas"
	}
	return strings.Join(segs, " / ")
}
