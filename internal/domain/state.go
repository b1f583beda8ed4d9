package domain

// AppState is everything the application keeps across sessions. Each field
// is persisted under its own key; see the sqlite StateStore.
type AppState struct {
	Completed     CompletionMap
	Schedule      Schedule
	DarkModeStart int
	LastPath      string
	LastWeek      string
	LastSubject   string
	SetupComplete bool
	Folder        string // saved folder, re-checked for read permission on load
}

// NewAppState returns the state of a first run
func NewAppState() *AppState {
	return &AppState{
		Completed:     CompletionMap{},
		Schedule:      Schedule{Names: []string{}, Theory: map[string]string{}, Practice: map[string]string{}},
		DarkModeStart: DefaultDarkModeStart,
	}
}

// Remember records d as the last opened document
func (s *AppState) Remember(d DocumentRecord) {
	s.LastPath = d.RelativePath
	s.LastWeek = d.Folder
	s.LastSubject = d.Subject
}
