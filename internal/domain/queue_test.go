package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeriveQueue_SortsByNameAcrossFolders(t *testing.T) {
	s := DeriveTree(files(
		"Week10/c.pdf",
		"Week1/b.pdf",
		"Week1/a.pdf",
		"Week2/B.pdf",
	))

	q := DeriveQueue(s, CompletionMap{})

	// byte order: uppercase before lowercase, no numeric awareness
	want := []string{"Week2/B.pdf", "Week1/a.pdf", "Week1/b.pdf", "Week10/c.pdf"}
	if diff := cmp.Diff(want, q.Paths()); diff != "" {
		t.Errorf("queue mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveQueue_ExcludesCompleted(t *testing.T) {
	s := DeriveTree(files("Week1/a.pdf", "Week1/b.pdf", "Week10/c.pdf"))
	done := CompletionMap{}

	done.Toggle("Week1/b.pdf")
	q := DeriveQueue(s, done)
	if q.IndexOf("Week1/b.pdf") != -1 {
		t.Error("completed path should not be queued")
	}
	if q.Len() != 2 {
		t.Errorf("expected 2 queued records, got %d", q.Len())
	}

	done.Toggle("Week1/b.pdf")
	q = DeriveQueue(s, done)
	if got := q.IndexOf("Week1/b.pdf"); got != 1 {
		t.Errorf("expected b.pdf back at index 1, got %d", got)
	}
}

func TestDeriveQueue_FalseEntriesStayQueued(t *testing.T) {
	s := DeriveTree(files("a.pdf"))
	q := DeriveQueue(s, CompletionMap{"a.pdf": false})
	if q.Len() != 1 {
		t.Errorf("expected a.pdf queued, got %v", q.Paths())
	}
}

func TestQueue_Resolve(t *testing.T) {
	s := DeriveTree(files("Week1/a.pdf", "Week1/b.pdf", "Week10/c.pdf"))

	q := DeriveQueue(s, CompletionMap{})
	if i, ok := q.Resolve("Week1/b.pdf"); !ok || i != 1 {
		t.Errorf("Resolve(present) = %d,%v, want 1,true", i, ok)
	}

	q = DeriveQueue(s, CompletionMap{"Week1/a.pdf": true})
	if i, ok := q.Resolve("Week1/a.pdf"); !ok || i != 0 {
		t.Errorf("Resolve(vanished) = %d,%v, want 0,true", i, ok)
	}
	if d, _ := q.At(0); d.RelativePath != "Week1/b.pdf" {
		t.Errorf("expected fallback to b.pdf, got %s", d.RelativePath)
	}

	q = DeriveQueue(s, CompletionMap{"Week1/a.pdf": true, "Week1/b.pdf": true, "Week10/c.pdf": true})
	if _, ok := q.Resolve("Week1/a.pdf"); ok {
		t.Error("Resolve on empty queue should report no document")
	}
}

func TestCompletionMap_Merge(t *testing.T) {
	c := CompletionMap{"a": true, "b": false, "keep": true}
	c.Merge(CompletionMap{"a": false, "b": true, "new": true})

	want := CompletionMap{"a": false, "b": true, "keep": true, "new": true}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHistory(t *testing.T) {
	got, err := ParseHistory([]byte(`{"completed":{"Week1/a.pdf":true}}`))
	if err != nil {
		t.Fatalf("ParseHistory failed: %v", err)
	}
	if !got.Done("Week1/a.pdf") {
		t.Error("expected Week1/a.pdf completed")
	}

	if _, err := ParseHistory([]byte(`{}`)); err == nil {
		t.Error("expected error for history without completed map")
	}
	if _, err := ParseHistory([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed history")
	}
}
