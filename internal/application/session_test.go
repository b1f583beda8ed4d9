package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"studytrack/internal/domain"
)

func weekFiles() []domain.SourceFile {
	return []domain.SourceFile{
		memFile("Week10/c.pdf", "c"),
		memFile("Week1/b.pdf", "b"),
		memFile("Week1/a.pdf", "a"),
		memFile("system/ignore.pdf", ""),
	}
}

func newTestSession(t *testing.T, store *memStore, client *fakeClient) (*Session, *fakeBlobs) {
	t.Helper()
	blobs := &fakeBlobs{}
	var rec *Reconciler
	if client != nil {
		rec = NewReconciler(client)
	}
	s, err := NewSession(store, rec, NewViewer(blobs))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s, blobs
}

func currentPath(s *Session) string {
	d, ok := s.Current()
	if !ok {
		return ""
	}
	return d.RelativePath
}

func TestSession_IngestBuildsQueue(t *testing.T) {
	s, _ := newTestSession(t, newMemStore(), nil)

	res, err := s.Ingest(context.Background(), &memSource{root: "/data/gestor", files: weekFiles()})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if res.Files != 4 || res.Documents != 3 {
		t.Errorf("result = %+v", res)
	}
	if diff := cmp.Diff([]string{"Week1/a.pdf", "Week1/b.pdf", "Week10/c.pdf"}, s.Queue().Paths()); diff != "" {
		t.Errorf("queue mismatch (-want +got):\n%s", diff)
	}
	if got := currentPath(s); got != "Week1/a.pdf" {
		t.Errorf("current = %q, want first queued", got)
	}
	if s.SavedFolder() != "/data/gestor" {
		t.Errorf("saved folder = %q", s.SavedFolder())
	}
}

func TestSession_IngestFailureKeepsState(t *testing.T) {
	s, _ := newTestSession(t, newMemStore(), nil)
	ctx := context.Background()
	if _, err := s.Ingest(ctx, &memSource{files: weekFiles()}); err != nil {
		t.Fatal(err)
	}

	_, err := s.Ingest(ctx, &memSource{err: errors.New("permission denied")})
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Queue().Len() != 3 {
		t.Errorf("queue length = %d, want previous 3", s.Queue().Len())
	}
}

func TestSession_ToggleAdvancesAndPersists(t *testing.T) {
	store := newMemStore()
	s, _ := newTestSession(t, store, nil)
	if _, err := s.Ingest(context.Background(), &memSource{files: weekFiles()}); err != nil {
		t.Fatal(err)
	}

	doc, done, err := s.ToggleCurrent()
	if err != nil {
		t.Fatalf("ToggleCurrent failed: %v", err)
	}
	if doc.RelativePath != "Week1/a.pdf" || !done {
		t.Errorf("toggled %q done=%v", doc.RelativePath, done)
	}
	if !store.state.Completed.Done("Week1/a.pdf") {
		t.Error("completion not persisted")
	}
	if got := currentPath(s); got != "Week1/b.pdf" {
		t.Errorf("current = %q, want fallback to first queued", got)
	}
	if s.Queue().IndexOf("Week1/a.pdf") != -1 {
		t.Error("completed record still queued")
	}

	// un-toggling brings it back without moving the viewer
	if _, _, err := s.TogglePath("Week1/a.pdf"); err != nil {
		t.Fatal(err)
	}
	if s.Queue().Len() != 3 {
		t.Errorf("queue length = %d, want 3", s.Queue().Len())
	}
	if got := currentPath(s); got != "Week1/b.pdf" {
		t.Errorf("current = %q, want unchanged", got)
	}
}

func TestSession_ToggleLastClosesViewer(t *testing.T) {
	s, _ := newTestSession(t, newMemStore(), nil)
	if _, err := s.Ingest(context.Background(), &memSource{files: []domain.SourceFile{memFile("w/only.pdf", "")}}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.ToggleCurrent(); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Current(); ok {
		t.Error("viewer should be closed when the queue empties")
	}
	if _, _, err := s.ToggleCurrent(); !errors.Is(err, ErrNoDocument) {
		t.Errorf("err = %v, want ErrNoDocument", err)
	}
}

func TestSession_HistoryMergedOnIngest(t *testing.T) {
	files := append(weekFiles(),
		memFile("system/check-semanas/check-history-sem1.json", `{"completed":{"Week1/b.pdf":true}}`),
		memFile("system/check-semanas/check-history.json", `{"completed":{"Week1/a.pdf":true}}`),
	)
	s, _ := newTestSession(t, newMemStore(), nil)

	res, err := s.Ingest(context.Background(), &memSource{files: files})
	if err != nil {
		t.Fatal(err)
	}
	if res.HistoryFile != "system/check-semanas/check-history.json" {
		t.Errorf("history file = %q", res.HistoryFile)
	}
	if diff := cmp.Diff([]string{"Week1/b.pdf", "Week10/c.pdf"}, s.Queue().Paths()); diff != "" {
		t.Errorf("queue mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_HistoryFallbackFile(t *testing.T) {
	files := append(weekFiles(),
		memFile("system/check-semanas/check-history.json", `{"other":1}`),
		memFile("system/check-semanas/check-history-sem1.json", `{"completed":{"Week1/b.pdf":true}}`),
	)
	s, _ := newTestSession(t, newMemStore(), nil)

	res, err := s.Ingest(context.Background(), &memSource{files: files})
	if err != nil {
		t.Fatal(err)
	}
	if res.HistoryFile != "system/check-semanas/check-history-sem1.json" {
		t.Errorf("history file = %q", res.HistoryFile)
	}
	if s.Done("Week1/b.pdf") != true {
		t.Error("fallback history not merged")
	}
}

func TestSession_ConfigClassifies(t *testing.T) {
	files := []domain.SourceFile{
		memFile("config.json", `{"names":["Álgebra"],"theory":{"Álgebra":"Lunes"},"practice":{"Álgebra":"Jueves"}}`),
		memFile("Week1/Algebra/teoria.pdf", ""),
		memFile("Week1/Algebra/Practica/tp1.pdf", ""),
	}
	s, _ := newTestSession(t, newMemStore(), nil)

	res, err := s.Ingest(context.Background(), &memSource{files: files})
	if err != nil {
		t.Fatal(err)
	}
	if !res.ConfigFound || !s.SetupComplete() {
		t.Error("config not applied")
	}

	theory, _ := s.Tree().Find("Week1/Algebra/teoria.pdf")
	practice, _ := s.Tree().Find("Week1/Algebra/Practica/tp1.pdf")
	if theory.Subject != "Álgebra" || theory.TableType != domain.TableTheory {
		t.Errorf("theory = %q/%q", theory.Subject, theory.TableType)
	}
	if practice.TableType != domain.TablePractice {
		t.Errorf("practice table type = %q", practice.TableType)
	}

	// 2026-10-19 is a Monday: theory due in 7 days, practice on Thursday in 3
	monday := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	if got := s.DaysUntil(theory, monday); got != 7 {
		t.Errorf("theory DaysUntil = %d, want 7", got)
	}
	if got := s.DaysUntil(practice, monday); got != 3 {
		t.Errorf("practice DaysUntil = %d, want 3", got)
	}
}

func TestSession_RestoresLastPathOnce(t *testing.T) {
	store := newMemStore()
	store.state.LastPath = "Week10/c.pdf"
	s, _ := newTestSession(t, store, nil)

	if _, err := s.Ingest(context.Background(), &memSource{files: weekFiles()}); err != nil {
		t.Fatal(err)
	}
	if got := currentPath(s); got != "Week10/c.pdf" {
		t.Errorf("current = %q, want restored last path", got)
	}
	if s.Browsing().Path != "Week10" {
		t.Errorf("browsing = %q, want Week10", s.Browsing().Path)
	}

	s.Prev()
	if _, err := s.Ingest(context.Background(), &memSource{files: weekFiles()}); err != nil {
		t.Fatal(err)
	}
	if got := currentPath(s); got != "Week1/b.pdf" {
		t.Errorf("current = %q, want position kept on re-ingest", got)
	}
}

func TestSession_Navigation(t *testing.T) {
	s, _ := newTestSession(t, newMemStore(), nil)
	if _, err := s.Ingest(context.Background(), &memSource{files: weekFiles()}); err != nil {
		t.Fatal(err)
	}

	if s.Prev() {
		t.Error("Prev at start should fail")
	}
	if !s.Next() || currentPath(s) != "Week1/b.pdf" {
		t.Errorf("Next -> %q", currentPath(s))
	}
	if !s.Next() || currentPath(s) != "Week10/c.pdf" {
		t.Errorf("Next -> %q", currentPath(s))
	}
	if s.Next() {
		t.Error("Next at end should fail")
	}

	if err := s.Select("Week1/a.pdf"); err != nil {
		t.Fatal(err)
	}
	if s.Viewer().Index() != 0 {
		t.Errorf("index = %d, want 0", s.Viewer().Index())
	}
	if err := s.Select("nope.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSession_SelectCompletedKeepsIndex(t *testing.T) {
	s, _ := newTestSession(t, newMemStore(), nil)
	if _, err := s.Ingest(context.Background(), &memSource{files: weekFiles()}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.TogglePath("Week10/c.pdf"); err != nil {
		t.Fatal(err)
	}
	s.Next() // Week1/b.pdf at index 1

	if err := s.Select("Week10/c.pdf"); err != nil {
		t.Fatal(err)
	}
	if currentPath(s) != "Week10/c.pdf" {
		t.Errorf("current = %q", currentPath(s))
	}
	if s.Viewer().Index() != 1 {
		t.Errorf("index = %d, want 1", s.Viewer().Index())
	}
}

func TestSession_Browse(t *testing.T) {
	s, _ := newTestSession(t, newMemStore(), nil)
	if _, err := s.Ingest(context.Background(), &memSource{files: weekFiles()}); err != nil {
		t.Fatal(err)
	}

	if s.Up() {
		t.Error("Up at root should fail")
	}
	if !s.Browse("Week1") {
		t.Fatal("Browse(Week1) failed")
	}
	if s.Browse("system") {
		t.Error("reserved folder should not be browsable")
	}
	if s.Browsing().Path != "Week1" {
		t.Errorf("browsing = %q", s.Browsing().Path)
	}
	if !s.Up() || !s.Browsing().IsRoot() {
		t.Error("Up should return to root")
	}
}

func TestSession_ToggleReconciles(t *testing.T) {
	client := &fakeClient{rows: []domain.ProgressRow{{SubjectName: "Álgebra", TableType: domain.TableTheory}}}
	files := []domain.SourceFile{
		memFile("config.json", `{"names":["algebra"],"theory":{},"practice":{}}`),
		memFile("algebra/a.pdf", ""),
	}
	s, _ := newTestSession(t, newMemStore(), client)
	ctx := context.Background()
	if err := s.Reconciler().Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ingest(ctx, &memSource{files: files}); err != nil {
		t.Fatal(err)
	}

	done, out, err := s.Toggle(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !done || !out.OK {
		t.Errorf("done=%v outcome=%+v", done, out)
	}
	want := []domain.DeltaRequest{{Subject: "Álgebra", TableType: "theory", Delta: 1}}
	if diff := cmp.Diff(want, client.requests); diff != "" {
		t.Errorf("requests mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_DarkModeStart(t *testing.T) {
	s, _ := newTestSession(t, newMemStore(), nil)
	if err := s.SetDarkModeStart(24); err == nil {
		t.Error("expected validation error")
	}
	if err := s.SetDarkModeStart(21); err != nil {
		t.Fatal(err)
	}
	at := func(h int) time.Time { return time.Date(2026, 10, 18, h, 0, 0, 0, time.Local) }
	if s.Dark(at(20)) || !s.Dark(at(22)) || !s.Dark(at(5)) {
		t.Error("dark hours wrong")
	}
}

func TestSession_ReingestRefreshesCurrentRecord(t *testing.T) {
	client := &fakeClient{rows: []domain.ProgressRow{{SubjectName: "Álgebra", TableType: domain.TableTheory}}}
	s, _ := newTestSession(t, newMemStore(), client)
	ctx := context.Background()
	if err := s.Reconciler().Refresh(ctx); err != nil {
		t.Fatal(err)
	}

	files := []domain.SourceFile{memFile("Algebra/t1.pdf", "")}
	if _, err := s.Ingest(ctx, &memSource{files: files}); err != nil {
		t.Fatal(err)
	}
	if cur, _ := s.Current(); cur.Subject != "" {
		t.Fatalf("subject before config = %q", cur.Subject)
	}

	files = append(files, memFile("config.json", `{"names":["Álgebra"],"theory":{},"practice":{}}`))
	if _, err := s.Ingest(ctx, &memSource{files: files}); err != nil {
		t.Fatal(err)
	}
	if cur, _ := s.Current(); cur.Subject != "Álgebra" {
		t.Errorf("subject after config = %q, want Álgebra", cur.Subject)
	}

	_, out, err := s.Toggle(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Attempted {
		t.Errorf("toggle after reload stayed local: %+v", out)
	}
	if len(client.requests) != 1 {
		t.Errorf("requests = %+v, want one delta", client.requests)
	}
}
