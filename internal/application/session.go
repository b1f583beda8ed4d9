package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/ports"
)

// Session is the single application state: the persisted AppState plus
// everything derived from the current folder. Derived state is recomputed
// only by explicit calls after a mutation.
type Session struct {
	store      ports.StateStore
	reconciler *Reconciler
	viewer     *Viewer

	state    *domain.AppState
	tree     *domain.Snapshot
	queue    domain.Queue
	browse   string
	lastPath string // as loaded, before any document is shown
	restored bool
}

// IngestResult summarises one folder read
type IngestResult struct {
	Source      string
	Files       int
	Documents   int
	HistoryFile string // history file merged, if any
	ConfigFound bool
}

// Toast returns the notification shown after ingestion
func (r IngestResult) Toast() Toast {
	if r.HistoryFile != "" {
		return Toast{Text: "Historial restaurado desde: " + r.HistoryFile}
	}
	return Toast{Text: fmt.Sprintf("%d documentos cargados", r.Documents)}
}

// rootedSource is implemented by sources that can be reopened in a later session
type rootedSource interface {
	Root() string
}

// NewSession loads the persisted state and returns a session with an empty tree
func NewSession(store ports.StateStore, reconciler *Reconciler, viewer *Viewer) (*Session, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if state.Completed == nil {
		state.Completed = domain.CompletionMap{}
	}
	if viewer == nil {
		viewer = NewViewer(nil)
	}
	s := &Session{
		store:      store,
		reconciler: reconciler,
		viewer:     viewer,
		state:      state,
		tree:       domain.DeriveTree(nil),
		lastPath:   state.LastPath,
	}
	return s, nil
}

// Ingest rebuilds the tree from src. On a read failure the previous tree
// and queue are kept and the error is returned for display.
func (s *Session) Ingest(ctx context.Context, src ports.FolderSource) (IngestResult, error) {
	res := IngestResult{Source: src.Name()}

	files, err := src.ReadFiles(ctx)
	if err != nil {
		logging.Warn("folder read failed, keeping previous snapshot",
			zap.String("source", src.Name()), zap.Error(err))
		return res, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	res.Files = len(files)

	if name, done := findHistory(files); done != nil {
		s.state.Completed.Merge(done)
		res.HistoryFile = name
	}

	if sched, ok := findSchedule(files); ok {
		s.state.Schedule = sched
		s.state.SetupComplete = true
		res.ConfigFound = true
	}

	if rs, ok := src.(rootedSource); ok && rs.Root() != "" {
		s.state.Folder = rs.Root()
	}

	s.tree = domain.DeriveTree(files)
	domain.Classify(s.tree, s.state.Schedule.Names)
	res.Documents = len(s.tree.Documents())

	if _, ok := s.tree.Entry(s.browse); !ok {
		s.browse = ""
	}

	s.viewer.Invalidate()
	s.rederive()
	s.restoreLast()
	s.save()

	logging.Info("folder ingested",
		zap.String("source", res.Source),
		zap.Int("files", res.Files),
		zap.Int("documents", res.Documents),
		zap.Int("queued", s.queue.Len()),
		zap.Bool("config", res.ConfigFound),
		zap.String("history", res.HistoryFile),
	)
	return res, nil
}

// findHistory returns the first history file present that parses
func findHistory(files []domain.SourceFile) (string, domain.CompletionMap) {
	for _, candidate := range domain.HistoryFiles {
		for _, f := range files {
			p := "/" + strings.ToLower(strings.Join(domain.Segments(f.Path), "/"))
			if !strings.HasSuffix(p, "/"+candidate) {
				continue
			}
			data, err := f.ReadAll()
			if err != nil {
				logging.Warn("cannot read history file", zap.String("path", f.Path), zap.Error(err))
				continue
			}
			done, err := domain.ParseHistory(data)
			if err != nil {
				logging.Warn("ignoring history file", zap.String("path", f.Path), zap.Error(err))
				continue
			}
			return candidate, done
		}
	}
	return "", nil
}

// findSchedule loads the first config.json outside reserved folders
func findSchedule(files []domain.SourceFile) (domain.Schedule, bool) {
	for _, f := range files {
		if f.Name() != domain.ConfigFileName || domain.IsReserved(f.Path) {
			continue
		}
		data, err := f.ReadAll()
		if err != nil {
			logging.Warn("cannot read config", zap.String("path", f.Path), zap.Error(err))
			return domain.Schedule{}, false
		}
		sched, err := domain.ParseSchedule(data)
		if err != nil {
			logging.Warn("ignoring config", zap.String("path", f.Path), zap.Error(err))
			return domain.Schedule{}, false
		}
		return sched, true
	}
	return domain.Schedule{}, false
}

// rederive recomputes the queue and repositions the viewer on it
func (s *Session) rederive() {
	s.queue = domain.DeriveQueue(s.tree, s.state.Completed)

	path := ""
	if cur, ok := s.viewer.Current(); ok {
		path = cur.RelativePath
	}
	i, ok := s.queue.Resolve(path)
	if !ok {
		s.viewer.Show(nil, 0)
		return
	}
	s.show(s.queue[i], i)
}

// restoreLast reopens the last document once, the first time the queue is non-empty
func (s *Session) restoreLast() {
	if s.restored || s.queue.Len() == 0 {
		return
	}
	s.restored = true
	if s.lastPath == "" {
		return
	}
	if i := s.queue.IndexOf(s.lastPath); i >= 0 {
		d := s.queue[i]
		s.show(d, i)
		s.browse = d.Folder
	}
}

func (s *Session) show(d domain.DocumentRecord, i int) {
	s.viewer.Show(&d, i)
	s.state.Remember(d)
}

func (s *Session) save() {
	if err := s.store.Save(s.state); err != nil {
		logging.Error("cannot save state", zap.Error(err))
	}
}

// ToggleCurrent flips completion of the open document and persists it.
// The queue is re-derived before returning; remote reconciliation is left
// to the caller so it can run without blocking navigation.
func (s *Session) ToggleCurrent() (domain.DocumentRecord, bool, error) {
	cur, ok := s.viewer.Current()
	if !ok {
		return domain.DocumentRecord{}, false, ErrNoDocument
	}
	return s.toggle(cur)
}

// TogglePath flips completion of any record in the tree
func (s *Session) TogglePath(rel string) (domain.DocumentRecord, bool, error) {
	d, ok := s.tree.Find(rel)
	if !ok {
		return domain.DocumentRecord{}, false, fmt.Errorf("%s: %w", rel, ErrNotFound)
	}
	return s.toggle(d)
}

func (s *Session) toggle(d domain.DocumentRecord) (domain.DocumentRecord, bool, error) {
	done := s.state.Completed.Toggle(d.RelativePath)
	s.save()
	s.rederive()
	s.save()
	return d, done, nil
}

// Toggle flips the open document and reconciles remotely before returning
func (s *Session) Toggle(ctx context.Context) (bool, Outcome, error) {
	d, done, err := s.ToggleCurrent()
	if err != nil {
		return false, Outcome{}, err
	}
	return done, s.reconciler.Reconcile(ctx, d, done), nil
}

// Reconcile forwards to the session's reconciler
func (s *Session) Reconcile(ctx context.Context, d domain.DocumentRecord, becameComplete bool) Outcome {
	return s.reconciler.Reconcile(ctx, d, becameComplete)
}

// Restore merges an external history snapshot and re-derives the queue
func (s *Session) Restore(done domain.CompletionMap) {
	s.state.Completed.Merge(done)
	s.rederive()
	s.save()
}

// Next moves to the following queued document
func (s *Session) Next() bool {
	i := s.viewer.Index() + 1
	if _, ok := s.viewer.Current(); !ok {
		i = 0
	}
	return s.moveTo(i)
}

// Prev moves to the preceding queued document
func (s *Session) Prev() bool {
	return s.moveTo(s.viewer.Index() - 1)
}

func (s *Session) moveTo(i int) bool {
	d, ok := s.queue.At(i)
	if !ok {
		return false
	}
	s.show(d, i)
	s.save()
	return true
}

// Select opens rel. A completed record is opened without moving the queue index.
func (s *Session) Select(rel string) error {
	if i := s.queue.IndexOf(rel); i >= 0 {
		s.moveTo(i)
		return nil
	}
	d, ok := s.tree.Find(rel)
	if !ok {
		return fmt.Errorf("%s: %w", rel, ErrNotFound)
	}
	s.show(d, s.viewer.Index())
	s.save()
	return nil
}

// Browse changes the folder shown in the browser
func (s *Session) Browse(p string) bool {
	if _, ok := s.tree.Entry(p); !ok {
		return false
	}
	s.browse = p
	return true
}

// Up browses the parent folder; false at the root
func (s *Session) Up() bool {
	e, ok := s.tree.Entry(s.browse)
	if !ok || e.IsRoot() {
		return false
	}
	s.browse = e.Parent
	return true
}

// Home browses the root folder
func (s *Session) Home() {
	s.browse = ""
}

// Browsing returns the folder shown in the browser
func (s *Session) Browsing() *domain.DirectoryEntry {
	if e, ok := s.tree.Entry(s.browse); ok {
		return e
	}
	return s.tree.Root()
}

// SetFocused switches the viewer between list and full mode
func (s *Session) SetFocused(focused bool) {
	s.viewer.SetFocused(focused)
}

// SetDarkModeStart stores the hour the dark palette begins
func (s *Session) SetDarkModeStart(hour int) error {
	if hour < 0 || hour > 23 {
		return &ValidationError{Field: "darkModeStart", Message: fmt.Sprintf("hour out of range: %d", hour)}
	}
	s.state.DarkModeStart = hour
	s.save()
	return nil
}

// Dark reports whether the dark palette applies at now
func (s *Session) Dark(now time.Time) bool {
	return domain.IsDarkHour(s.state.DarkModeStart, now.Hour())
}

// DaysUntil returns the days left until d's subject is due
func (s *Session) DaysUntil(d domain.DocumentRecord, now time.Time) int {
	return s.state.Schedule.DaysUntil(d, now)
}

// Close releases the viewer's temporary reference
func (s *Session) Close() {
	s.viewer.Close()
}

func (s *Session) Tree() *domain.Snapshot { return s.tree }
func (s *Session) Queue() domain.Queue { return s.queue }
func (s *Session) Viewer() *Viewer { return s.viewer }
func (s *Session) Reconciler() *Reconciler { return s.reconciler }
func (s *Session) Done(rel string) bool { return s.state.Completed.Done(rel) }
func (s *Session) Completed() domain.CompletionMap { return s.state.Completed.Clone() }
func (s *Session) Schedule() domain.Schedule { return s.state.Schedule }
func (s *Session) SavedFolder() string { return s.state.Folder }
func (s *Session) SetupComplete() bool { return s.state.SetupComplete }
func (s *Session) Current() (domain.DocumentRecord, bool) { return s.viewer.Current() }
