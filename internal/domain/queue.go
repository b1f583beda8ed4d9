package domain

import (
	"slices"
	"strings"
)

// Queue is the global, completion-filtered sequence used for prev/next navigation
type Queue []DocumentRecord

// DeriveQueue collects every record of the snapshot, drops completed ones and
// sorts the rest by display name. The comparison is plain byte order on
// purpose: the queue crosses folders, so it does not reuse the tree's
// natural order.
func DeriveQueue(s *Snapshot, done CompletionMap) Queue {
	var q Queue
	for _, d := range s.Documents() {
		if done.Done(d.RelativePath) {
			continue
		}
		q = append(q, d)
	}
	slices.SortFunc(q, func(a, b DocumentRecord) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.RelativePath, b.RelativePath)
	})
	return q
}

// Len returns the number of queued records
func (q Queue) Len() int {
	return len(q)
}

// IndexOf returns the index of rel, or -1
func (q Queue) IndexOf(rel string) int {
	return slices.IndexFunc(q, func(d DocumentRecord) bool {
		return d.RelativePath == rel
	})
}

// At returns the record at i
func (q Queue) At(i int) (DocumentRecord, bool) {
	if i < 0 || i >= len(q) {
		return DocumentRecord{}, false
	}
	return q[i], true
}

// Resolve finds where the viewer should land after a re-derivation: the
// index of rel when still queued, the first entry otherwise, and ok=false
// when the queue is empty.
func (q Queue) Resolve(rel string) (int, bool) {
	if len(q) == 0 {
		return 0, false
	}
	if i := q.IndexOf(rel); i >= 0 {
		return i, true
	}
	return 0, true
}

// Paths returns the relative paths in queue order
func (q Queue) Paths() []string {
	out := make([]string, len(q))
	for i, d := range q {
		out[i] = d.RelativePath
	}
	return out
}
