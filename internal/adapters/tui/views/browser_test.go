package views

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"studytrack/internal/application"
	"studytrack/internal/domain"
)

type memStore struct {
	state *domain.AppState
}

func (m *memStore) Load() (*domain.AppState, error) {
	cp := *m.state
	cp.Completed = m.state.Completed.Clone()
	return &cp, nil
}

func (m *memStore) Save(s *domain.AppState) error {
	cp := *s
	cp.Completed = s.Completed.Clone()
	m.state = &cp
	return nil
}

func (m *memStore) Close() error { return nil }

type memSource struct {
	files []domain.SourceFile
}

func (s *memSource) Name() string { return "memory" }

func (s *memSource) ReadFiles(ctx context.Context) ([]domain.SourceFile, error) {
	return s.files, nil
}

func memFile(p, content string) domain.SourceFile {
	return domain.SourceFile{
		Path: p,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func newTestBrowser(t *testing.T, files ...domain.SourceFile) (*BrowserModel, *application.Session) {
	t.Helper()
	if files == nil {
		files = []domain.SourceFile{
			memFile("Semana1/a.pdf", ""),
			memFile("Semana1/b.pdf", ""),
			memFile("Semana2/c.pdf", ""),
			memFile("root.pdf", ""),
			memFile("Semana1/video.url", "[InternetShortcut]\nURL=https://youtu.be/abc123\n"),
		}
	}
	s, err := application.NewSession(&memStore{state: domain.NewAppState()}, application.NewReconciler(nil), nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := s.Ingest(context.Background(), &memSource{files: files}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return NewBrowserModel(s, nil), s
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestBrowser_EntriesFoldersFirst(t *testing.T) {
	m, _ := newTestBrowser(t)

	if len(m.entries) != 3 {
		t.Fatalf("expected 3 root entries, got %d", len(m.entries))
	}
	if m.entries[0].folder != "Semana1" || m.entries[1].folder != "Semana2" {
		t.Errorf("expected folders first, got %q, %q", m.entries[0].folder, m.entries[1].folder)
	}
	if m.entries[2].doc == nil || m.entries[2].doc.Name != "root.pdf" {
		t.Errorf("expected root.pdf last, got %+v", m.entries[2])
	}
}

func TestBrowser_EnterFolderAndBack(t *testing.T) {
	m, s := newTestBrowser(t)

	m.Update(press("j"))
	m.Update(press("enter"))
	if got := s.Browsing().Path; got != "Semana2" {
		t.Fatalf("expected to browse Semana2, got %q", got)
	}
	if len(m.entries) != 1 {
		t.Errorf("expected 1 entry in Semana2, got %d", len(m.entries))
	}

	m.Update(press("h"))
	if got := s.Browsing().Path; got != "" {
		t.Fatalf("expected root after going up, got %q", got)
	}
	if m.pager.Cursor() != 1 {
		t.Errorf("expected cursor back on Semana2 (1), got %d", m.pager.Cursor())
	}

	// Up at the root is a no-op
	m.Update(press("h"))
	if got := s.Browsing().Path; got != "" {
		t.Errorf("expected to stay at root, got %q", got)
	}
}

func TestBrowser_EnterDocumentSelectsIt(t *testing.T) {
	m, s := newTestBrowser(t)

	m.pager.SetCursor(2)
	m.Update(press("enter"))

	cur, ok := s.Current()
	if !ok || cur.RelativePath != "root.pdf" {
		t.Errorf("expected root.pdf to be open, got %+v (ok=%v)", cur.RelativePath, ok)
	}
}

func TestBrowser_ToggleAdvancesAndReportsOutcome(t *testing.T) {
	m, s := newTestBrowser(t)

	cur, _ := s.Current()
	if cur.RelativePath != "Semana1/a.pdf" {
		t.Fatalf("expected a.pdf open first, got %q", cur.RelativePath)
	}

	_, cmd := m.Update(press("x"))
	if cmd == nil {
		t.Fatal("expected a reconcile command")
	}
	if !s.Done("Semana1/a.pdf") {
		t.Error("expected a.pdf to be completed before reconciling")
	}
	if next, _ := s.Current(); next.RelativePath != "Semana1/b.pdf" {
		t.Errorf("expected b.pdf to be open after toggle, got %q", next.RelativePath)
	}

	msg := cmd()
	if _, ok := msg.(reconciledMsg); !ok {
		t.Fatalf("expected reconciledMsg, got %T", msg)
	}
	m.Update(msg)
	if m.Message != "Guardado en local (sin servidor de progreso)" || m.MessageErr {
		t.Errorf("unexpected toast %q (err=%v)", m.Message, m.MessageErr)
	}
}

func TestBrowser_NextAndPrev(t *testing.T) {
	m, s := newTestBrowser(t)

	m.Update(press("n"))
	if cur, _ := s.Current(); cur.RelativePath != "Semana1/b.pdf" {
		t.Errorf("expected b.pdf after next, got %q", cur.RelativePath)
	}
	m.Update(press("p"))
	if cur, _ := s.Current(); cur.RelativePath != "Semana1/a.pdf" {
		t.Errorf("expected a.pdf after prev, got %q", cur.RelativePath)
	}

	m.Update(press("p"))
	if !strings.Contains(m.Message, "primer documento") {
		t.Errorf("expected start-of-queue toast, got %q", m.Message)
	}
}

func TestBrowser_CopyLink(t *testing.T) {
	m, s := newTestBrowser(t)

	var copied string
	m.copy = func(text string) error {
		copied = text
		return nil
	}

	m.Update(press("y"))
	if !m.MessageErr {
		t.Error("expected an error toast when the open record is a PDF")
	}

	if err := s.Select("Semana1/video.url"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	m.Update(press("y"))
	if copied != "https://www.youtube.com/embed/abc123" {
		t.Errorf("expected embed link copied, got %q", copied)
	}
	if m.Message != "Enlace copiado" {
		t.Errorf("expected copy toast, got %q", m.Message)
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	m.Update(press("y"))
	if !m.MessageErr {
		t.Error("expected an error toast when the clipboard fails")
	}
}

type fakeOpener struct {
	refs []string
}

func (o *fakeOpener) Open(ref string) error {
	o.refs = append(o.refs, ref)
	return nil
}

func TestBrowser_OpenExternally(t *testing.T) {
	m, s := newTestBrowser(t)
	op := &fakeOpener{}
	m.opener = op

	// A PDF without a blob provider has nothing to hand over
	m.Update(press("o"))
	if !m.MessageErr {
		t.Error("expected an error toast without a display reference")
	}

	if err := s.Select("Semana1/video.url"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	_, cmd := m.Update(press("o"))
	if cmd == nil {
		t.Fatal("expected an open command")
	}
	m.Update(cmd())
	if len(op.refs) != 1 || op.refs[0] != "https://www.youtube.com/embed/abc123" {
		t.Errorf("unexpected opened refs %v", op.refs)
	}
}

func TestBrowser_ToastExpiry(t *testing.T) {
	m, _ := newTestBrowser(t)

	m.ShowToast(application.Toast{Text: "first"})
	stale := toastExpiredMsg{seq: m.toastSeq}
	m.ShowToast(application.Toast{Text: "second"})

	m.Update(stale)
	if m.Message != "second" {
		t.Errorf("a stale expiry must not clear a newer toast, got %q", m.Message)
	}

	m.Update(toastExpiredMsg{seq: m.toastSeq})
	if m.Message != "" {
		t.Errorf("expected toast cleared, got %q", m.Message)
	}
}

func TestBrowser_ViewShowsBreadcrumbAndViewer(t *testing.T) {
	m, _ := newTestBrowser(t)
	m.SetSize(120, 40)

	out := m.View()
	for _, want := range []string{"Carpetas", "Inicio", "Semana1/", "root.pdf", "Documento 1 de 5", "a.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestBrowser_EmptyQueue(t *testing.T) {
	m, s := newTestBrowser(t, memFile("solo.pdf", ""))

	m.Update(press("x"))
	if !s.Done("solo.pdf") {
		t.Fatal("expected solo.pdf completed")
	}
	if _, ok := s.Current(); ok {
		t.Error("expected the viewer to close when the queue empties")
	}
	if !strings.Contains(m.View(), "Sin documentos pendientes") {
		t.Error("expected empty viewer placeholder")
	}

	m.Update(press("n"))
	if !strings.Contains(m.Message, "No hay más documentos") {
		t.Errorf("expected end-of-queue toast, got %q", m.Message)
	}
}

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for i := 0; i < 4; i++ {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("expected cursor 4 on page 2, got %d on page %d", p.Cursor(), p.CurrentPage())
	}
	if start, end := p.VisibleRange(); start != 3 || end != 6 {
		t.Errorf("expected range 3-6, got %d-%d", start, end)
	}

	p.SetTotal(2)
	if p.Cursor() != 1 {
		t.Errorf("expected cursor clamped to 1, got %d", p.Cursor())
	}
	if p.TotalPages() != 1 {
		t.Errorf("expected 1 page, got %d", p.TotalPages())
	}

	p.SetTotal(0)
	if p.CursorUp() || p.CursorDown() {
		t.Error("an empty list must not move")
	}
}
