package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"studytrack/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "cerrar"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Ayuda"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Material de estudio y progreso"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Carpetas"))
	b.WriteString("\n")
	b.WriteString(helpBinding(BrowserKeys.Up, BrowserKeys.Down))
	b.WriteString(helpBinding(BrowserKeys.Enter))
	b.WriteString(helpBinding(BrowserKeys.Back))
	b.WriteString(helpBinding(BrowserKeys.Home))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Documentos"))
	b.WriteString("\n")
	b.WriteString(helpBinding(BrowserKeys.Next, BrowserKeys.Prev))
	b.WriteString(helpBinding(BrowserKeys.Toggle))
	b.WriteString(helpBinding(BrowserKeys.Open))
	b.WriteString(helpBinding(BrowserKeys.Copy))
	b.WriteString(helpBinding(BrowserKeys.Focus))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpBinding(BrowserKeys.Reload))
	b.WriteString(helpBinding(BrowserKeys.Help))
	b.WriteString(helpBinding(BrowserKeys.Quit))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Marcas"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  " + styles.CurrentMark + "abierto   " + styles.PendingMark + "pendiente   " + styles.DoneMark + "completado"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  (N d) días hasta la clase de la materia"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Pulsa "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" o "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" para cerrar"))

	return styles.App.Render(b.String())
}

// helpBinding renders one help row; several bindings share the row
func helpBinding(bindings ...key.Binding) string {
	var keys, descs []string
	for _, kb := range bindings {
		keys = append(keys, kb.Help().Key)
		descs = append(descs, kb.Help().Desc)
	}
	return helpLine(strings.Join(keys, " / "), strings.Join(descs, " / "))
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
