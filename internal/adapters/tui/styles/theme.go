package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is built from
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Text       lipgloss.Color
	Contrast   lipgloss.Color
	Folder     lipgloss.Color
	StatusBack lipgloss.Color
}

var (
	// Dark is used from the dark-mode hour until 06:00
	Dark = Palette{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#10B981"), // Green
		Muted:      lipgloss.Color("#6B7280"),
		Warning:    lipgloss.Color("#F59E0B"),
		Error:      lipgloss.Color("#EF4444"),
		Text:       lipgloss.Color("#E5E7EB"),
		Contrast:   lipgloss.Color("#FFFFFF"),
		Folder:     lipgloss.Color("#60A5FA"),
		StatusBack: lipgloss.Color("#1F2937"),
	}

	Light = Palette{
		Primary:    lipgloss.Color("#5B21B6"),
		Secondary:  lipgloss.Color("#047857"),
		Muted:      lipgloss.Color("#4B5563"),
		Warning:    lipgloss.Color("#B45309"),
		Error:      lipgloss.Color("#B91C1C"),
		Text:       lipgloss.Color("#111827"),
		Contrast:   lipgloss.Color("#FFFFFF"),
		Folder:     lipgloss.Color("#1D4ED8"),
		StatusBack: lipgloss.Color("#E5E7EB"),
	}
)

var (
	App           lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Breadcrumb    lipgloss.Style
	NodeFolder    lipgloss.Style
	NodeDocument  lipgloss.Style
	NodeLink      lipgloss.Style
	NodeDone      lipgloss.Style
	NodeSelected  lipgloss.Style
	NodeCurrent   lipgloss.Style
	Pane          lipgloss.Style
	PaneFocused   lipgloss.Style
	StatusBar     lipgloss.Style
	InputLabel    lipgloss.Style
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
	Success       lipgloss.Style
	ErrorMsg      lipgloss.Style
	DueSoon       lipgloss.Style
	MutedText     lipgloss.Style

	// Tree indicators
	FolderMark   = "▶ "
	DoneMark     = "✓ "
	PendingMark  = "○ "
	CurrentMark  = "● "
	TreeLeafMark = "  "
)

var active = Dark

func init() {
	Apply(Dark)
}

// Apply rebuilds every style from p
func Apply(p Palette) {
	active = p

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	Subtitle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	Breadcrumb = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	NodeFolder = lipgloss.NewStyle().
		Foreground(p.Folder)

	NodeDocument = lipgloss.NewStyle().
		Foreground(p.Text)

	NodeLink = lipgloss.NewStyle().
		Foreground(p.Text).
		Italic(true)

	NodeDone = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true)

	NodeSelected = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.Contrast).
		Bold(true)

	NodeCurrent = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)

	PaneFocused = Pane.
		BorderForeground(p.Primary)

	StatusBar = lipgloss.NewStyle().
		Background(p.StatusBack).
		Foreground(p.Text).
		Padding(0, 1)

	InputLabel = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	HelpKey = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
		Foreground(p.Muted)

	HelpSeparator = lipgloss.NewStyle().
		Foreground(p.Muted).
		SetString(" • ")

	Success = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	DueSoon = lipgloss.NewStyle().
		Foreground(p.Warning)

	MutedText = lipgloss.NewStyle().
		Foreground(p.Muted)
}

// UseDark switches between the dark and light palettes
func UseDark(dark bool) {
	if dark {
		Apply(Dark)
		return
	}
	Apply(Light)
}

// Active returns the palette currently applied
func Active() Palette {
	return active
}
