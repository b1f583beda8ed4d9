package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"studytrack/internal/adapters/tui/styles"
	"studytrack/internal/adapters/tui/views"
	"studytrack/internal/application"
	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	session *application.Session
	source  ports.FolderSource
	changes <-chan struct{}
	now     func() time.Time

	state   ViewState
	browser *views.BrowserModel
	help    *views.HelpModel
	loading bool
	pending bool // a reload was asked for while a read was in flight

	width  int
	height int
}

// NewApp creates a new TUI application. changes, when non-nil, triggers a
// reload every time the folder watcher reports a modification.
func NewApp(session *application.Session, source ports.FolderSource, opener ports.DocumentOpener, changes <-chan struct{}) *App {
	a := &App{
		session: session,
		source:  source,
		changes: changes,
		now:     time.Now,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(session, opener),
		help:    views.NewHelpModel(),
	}
	styles.UseDark(session.Dark(a.now()))
	return a
}

type folderReadMsg struct {
	files []domain.SourceFile
	err   error
}

type folderChangedMsg struct{}

type subjectsMsg struct {
	err error
}

// Init reads the folder and loads the canonical subject names
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.readFolder(), a.refreshSubjects(), a.waitForChange())
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case folderReadMsg:
		return a, a.ingest(msg)

	case folderChangedMsg:
		return a, tea.Batch(a.readFolder(), a.waitForChange())

	case subjectsMsg:
		if msg.err != nil {
			logging.Warn("cannot load canonical subjects", zap.Error(msg.err))
		}
		return a, nil

	case views.ReloadMsg:
		return a, a.readFolder()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// readFolder lists the files off the UI goroutine; the session is only
// touched once the result is back in Update
func (a *App) readFolder() tea.Cmd {
	if a.source == nil {
		return nil
	}
	if a.loading {
		a.pending = true
		return nil
	}
	a.loading = true
	src := a.source
	return func() tea.Msg {
		files, err := src.ReadFiles(context.Background())
		return folderReadMsg{files: files, err: err}
	}
}

func (a *App) ingest(msg folderReadMsg) tea.Cmd {
	a.loading = false
	var reread tea.Cmd
	if a.pending {
		a.pending = false
		reread = a.readFolder()
	}

	res, err := a.session.Ingest(context.Background(), &readResult{source: a.source, files: msg.files, err: msg.err})
	if err != nil {
		return tea.Batch(a.browser.ShowError("No se pudo leer la carpeta", msg.err), reread)
	}
	styles.UseDark(a.session.Dark(a.now()))
	a.browser.Refresh()
	return tea.Batch(a.browser.ShowToast(res.Toast()), reread)
}

func (a *App) refreshSubjects() tea.Cmd {
	r := a.session.Reconciler()
	if !r.Enabled() {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return subjectsMsg{err: r.Refresh(ctx)}
	}
}

func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	changes := a.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return folderChangedMsg{}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}

// readResult replays a finished folder read into Session.Ingest
type readResult struct {
	source ports.FolderSource
	files  []domain.SourceFile
	err    error
}

func (r *readResult) Name() string { return r.source.Name() }

func (r *readResult) Root() string {
	if rs, ok := r.source.(interface{ Root() string }); ok {
		return rs.Root()
	}
	return ""
}

func (r *readResult) ReadFiles(context.Context) ([]domain.SourceFile, error) {
	return r.files, r.err
}
