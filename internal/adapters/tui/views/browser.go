package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"studytrack/internal/adapters/tui/styles"
	"studytrack/internal/application"
	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/ports"
)

// reconcileTimeout bounds one remote progress update
const reconcileTimeout = 15 * time.Second

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Back   key.Binding
	Home   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Open   key.Binding
	Copy   key.Binding
	Focus  key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "arriba"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "abajo"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("enter", "abrir"),
	),
	Back: key.NewBinding(
		key.WithKeys("h", "left", "backspace"),
		key.WithHelp("h/←", "subir"),
	),
	Home: key.NewBinding(
		key.WithKeys("~", "g"),
		key.WithHelp("~", "inicio"),
	),
	Next: key.NewBinding(
		key.WithKeys("n", "tab"),
		key.WithHelp("n", "siguiente"),
	),
	Prev: key.NewBinding(
		key.WithKeys("p", "shift+tab"),
		key.WithHelp("p", "anterior"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "completar"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "abrir fuera"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copiar enlace"),
	),
	Focus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "pantalla completa"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "recargar"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "ayuda"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "salir"),
	),
}

// entry is one row of the browser: a subfolder or a record
type entry struct {
	folder string
	doc    *domain.DocumentRecord
}

// BrowserModel is the folder browser plus the viewer pane
type BrowserModel struct {
	ViewState
	session *application.Session
	opener  ports.DocumentOpener
	copy    func(string) error
	now     func() time.Time

	entries []entry
	pager   *Paginator
	shown   string // folder the entries were built from
}

// NewBrowserModel creates a browser over session. A nil opener disables
// opening documents externally.
func NewBrowserModel(session *application.Session, opener ports.DocumentOpener) *BrowserModel {
	m := &BrowserModel{
		session: session,
		opener:  opener,
		copy:    clipboard.WriteAll,
		now:     time.Now,
		pager:   NewPaginator(10),
	}
	m.Refresh()
	return m
}

type reconciledMsg struct {
	outcome application.Outcome
}

type externalDoneMsg struct {
	toast application.Toast
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Refresh rebuilds the rows from the folder the session is browsing
func (m *BrowserModel) Refresh() {
	e := m.session.Browsing()
	m.entries = m.entries[:0]
	for _, sub := range e.Subdirs {
		m.entries = append(m.entries, entry{folder: sub})
	}
	for i := range e.Documents {
		m.entries = append(m.entries, entry{doc: &e.Documents[i]})
	}
	if e.Path != m.shown {
		m.pager.SetCursor(0)
		m.shown = e.Path
	}
	m.pager.SetTotal(len(m.entries))
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case toastExpiredMsg:
		m.expire(msg)
		return m, nil

	case reconciledMsg:
		return m, m.ShowToast(msg.outcome.Toast())

	case externalDoneMsg:
		return m, m.ShowToast(msg.toast)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, BrowserKeys.Enter):
		return m.enter()

	case key.Matches(msg, BrowserKeys.Back):
		from := m.session.Browsing().Path
		if m.session.Up() {
			m.Refresh()
			m.selectFolder(from)
		}

	case key.Matches(msg, BrowserKeys.Home):
		m.session.Home()
		m.Refresh()

	case key.Matches(msg, BrowserKeys.Next):
		if !m.session.Next() {
			return m.ShowToast(application.Toast{Text: "No hay más documentos pendientes"})
		}
		m.followCurrent()

	case key.Matches(msg, BrowserKeys.Prev):
		if !m.session.Prev() {
			return m.ShowToast(application.Toast{Text: "Ya estás en el primer documento"})
		}
		m.followCurrent()

	case key.Matches(msg, BrowserKeys.Toggle):
		return m.toggle()

	case key.Matches(msg, BrowserKeys.Open):
		return m.openExternally()

	case key.Matches(msg, BrowserKeys.Copy):
		return m.copyLink()

	case key.Matches(msg, BrowserKeys.Focus):
		v := m.session.Viewer()
		m.session.SetFocused(!v.Focused())

	case key.Matches(msg, BrowserKeys.Reload):
		return func() tea.Msg { return ReloadMsg{} }

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}
	return nil
}

func (m *BrowserModel) enter() tea.Cmd {
	sel, ok := m.selected()
	if !ok {
		return nil
	}
	if sel.doc == nil {
		m.session.Browse(sel.folder)
		m.Refresh()
		return nil
	}
	if err := m.session.Select(sel.doc.RelativePath); err != nil {
		return m.ShowToast(application.Toast{Text: err.Error(), Error: true})
	}
	return nil
}

// toggle flips the open document locally, then reconciles in the background
func (m *BrowserModel) toggle() tea.Cmd {
	doc, done, err := m.session.ToggleCurrent()
	if err != nil {
		return m.ShowToast(application.Toast{Text: "No hay ningún documento abierto", Error: true})
	}
	m.Refresh()
	m.followCurrent()

	session := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		return reconciledMsg{outcome: session.Reconcile(ctx, doc, done)}
	}
}

func (m *BrowserModel) openExternally() tea.Cmd {
	ref := m.session.Viewer().Ref()
	if ref.Kind == application.RefNone {
		return m.ShowToast(application.Toast{Text: "Nada que abrir", Error: true})
	}
	if m.opener == nil {
		return m.ShowToast(application.Toast{Text: "No hay visor configurado", Error: true})
	}
	opener := m.opener
	return func() tea.Msg {
		if err := opener.Open(ref.URL); err != nil {
			logging.Warn("cannot open document", zap.String("ref", ref.URL), zap.Error(err))
			return externalDoneMsg{toast: application.Toast{Text: "No se pudo abrir: " + err.Error(), Error: true}}
		}
		return externalDoneMsg{toast: application.Toast{Text: "Abierto en el visor externo"}}
	}
}

func (m *BrowserModel) copyLink() tea.Cmd {
	ref := m.session.Viewer().Ref()
	if ref.Kind != application.RefLink {
		return m.ShowToast(application.Toast{Text: "El documento no tiene enlace", Error: true})
	}
	if err := m.copy(ref.URL); err != nil {
		logging.Warn("cannot copy to clipboard", zap.Error(err))
		return m.ShowToast(application.Toast{Text: "No se pudo copiar el enlace", Error: true})
	}
	return m.ShowToast(application.Toast{Text: "Enlace copiado"})
}

// followCurrent puts the cursor on the open document when it is listed
func (m *BrowserModel) followCurrent() {
	cur, ok := m.session.Current()
	if !ok {
		return
	}
	for i, e := range m.entries {
		if e.doc != nil && e.doc.RelativePath == cur.RelativePath {
			m.pager.SetCursor(i)
			return
		}
	}
}

func (m *BrowserModel) selectFolder(p string) {
	for i, e := range m.entries {
		if e.doc == nil && e.folder == p {
			m.pager.SetCursor(i)
			return
		}
	}
}

func (m *BrowserModel) selected() (entry, bool) {
	i := m.pager.Cursor()
	if i >= 0 && i < len(m.entries) {
		return m.entries[i], true
	}
	return entry{}, false
}

// View renders the browser
func (m *BrowserModel) View() string {
	vb := NewViewBuilder()
	vb.Title("studytrack")
	vb.Subtitle(m.header())

	if m.session.Viewer().Focused() {
		vb.Line(styles.PaneFocused.Width(m.paneWidth(true)).Render(m.renderViewer()))
	} else {
		list := styles.Pane.Width(m.paneWidth(false)).Render(m.renderList())
		viewer := styles.Pane.Width(m.paneWidth(false)).Render(m.renderViewer())
		vb.Line(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", viewer))
	}

	vb.Message(m.Message, m.MessageErr)
	vb.Help(
		BrowserKeys.Enter, BrowserKeys.Back, BrowserKeys.Next,
		BrowserKeys.Toggle, BrowserKeys.Open, BrowserKeys.Help, BrowserKeys.Quit,
	)
	return vb.String()
}

func (m *BrowserModel) header() string {
	e := m.session.Browsing()
	q := m.session.Queue()
	return fmt.Sprintf("%s · %d pendientes", domain.Breadcrumb(e.Path), q.Len())
}

func (m *BrowserModel) paneWidth(full bool) int {
	w := m.Width - 8
	if w <= 0 {
		w = 80
	}
	if full {
		return w
	}
	return w/2 - 2
}

func (m *BrowserModel) renderList() string {
	rows := m.Height - 10
	if rows < 5 {
		rows = 5
	}
	m.pager.SetPageSize(rows)

	var b strings.Builder
	b.WriteString(styles.Breadcrumb.Render(domain.FolderLabel(m.session.Browsing().Path)))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(styles.MutedText.Render("Carpeta vacía"))
		return b.String()
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderEntry(m.entries[i], i == m.pager.Cursor()))
		b.WriteString("\n")
	}
	if m.pager.TotalPages() > 1 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("página %d/%d", m.pager.CurrentPage(), m.pager.TotalPages())))
	}
	return b.String()
}

func (m *BrowserModel) renderEntry(e entry, selected bool) string {
	if e.doc == nil {
		text := domain.FolderLabel(e.folder) + "/"
		if selected {
			return styles.FolderMark + styles.NodeSelected.Render(text)
		}
		return styles.FolderMark + styles.NodeFolder.Render(text)
	}

	d := *e.doc
	done := m.session.Done(d.RelativePath)
	cur, open := m.session.Current()
	isCurrent := open && cur.RelativePath == d.RelativePath

	mark := styles.PendingMark
	style := styles.NodeDocument
	switch {
	case done:
		mark, style = styles.DoneMark, styles.NodeDone
	case isCurrent:
		mark, style = styles.CurrentMark, styles.NodeCurrent
	case !d.IsDocument:
		style = styles.NodeLink
	}
	if selected {
		style = styles.NodeSelected
	}

	line := mark + style.Render(d.Name)
	if !done {
		if days := m.session.DaysUntil(d, m.now()); days > 0 {
			line += " " + m.renderDays(days)
		}
	}
	return line
}

func (m *BrowserModel) renderDays(days int) string {
	text := fmt.Sprintf("(%d d)", days)
	if days <= 2 {
		return styles.DueSoon.Render(text)
	}
	return styles.MutedText.Render(text)
}

func (m *BrowserModel) renderViewer() string {
	v := m.session.Viewer()
	d, ok := v.Current()
	if !ok {
		return styles.MutedText.Render("Sin documentos pendientes")
	}

	q := m.session.Queue()
	vb := NewViewBuilder()
	if i := q.IndexOf(d.RelativePath); i >= 0 {
		vb.Muted(fmt.Sprintf("Documento %d de %d", i+1, q.Len()))
	} else {
		vb.Muted("Completado")
	}
	vb.Line(styles.NodeCurrent.Render(d.Name))
	vb.BlankLine()
	vb.Field("Carpeta", domain.Breadcrumb(d.Folder))
	vb.Field("Materia", d.Subject)
	vb.Field("Tipo", tableLabel(d.TableType))
	if days := m.session.DaysUntil(d, m.now()); days > 0 {
		vb.Field("Faltan", fmt.Sprintf("%d días", days))
	}

	ref := v.Ref()
	switch ref.Kind {
	case application.RefLocal:
		vb.Field("Archivo", ref.URL)
	case application.RefLink:
		vb.Field("Enlace", ref.URL)
	default:
		vb.Muted("Sin vista previa")
	}
	return vb.StringUnwrapped()
}

func tableLabel(t domain.TableType) string {
	switch t {
	case domain.TablePractice:
		return "práctica"
	case domain.TableTheory:
		return "teoría"
	}
	return ""
}

// ShowError displays err as an error toast
func (m *BrowserModel) ShowError(prefix string, err error) tea.Cmd {
	text := prefix
	if err != nil && !errors.Is(err, context.Canceled) {
		text += ": " + err.Error()
	}
	return m.ShowToast(application.Toast{Text: text, Error: true})
}
