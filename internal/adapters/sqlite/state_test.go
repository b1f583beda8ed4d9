package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"studytrack/internal/domain"
)

func openTestStore(t *testing.T) *StateStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStateStore_FirstRunDefaults(t *testing.T) {
	s := openTestStore(t)

	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.DarkModeStart != domain.DefaultDarkModeStart {
		t.Errorf("DarkModeStart = %d, want %d", st.DarkModeStart, domain.DefaultDarkModeStart)
	}
	if st.Completed == nil || len(st.Completed) != 0 {
		t.Errorf("Completed = %v, want empty map", st.Completed)
	}
	if st.SetupComplete {
		t.Error("SetupComplete should be false on first run")
	}
}

func TestStateStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	want := &domain.AppState{
		Completed: domain.CompletionMap{"Week1/a.pdf": true, "Week1/b.pdf": false},
		Schedule: domain.Schedule{
			Names:    []string{"Álgebra", "Poo"},
			Theory:   map[string]string{"Álgebra": "Lunes"},
			Practice: map[string]string{"Poo": "Viernes"},
		},
		DarkModeStart: 20,
		LastPath:      "Week1/a.pdf",
		LastWeek:      "Week1",
		LastSubject:   "Álgebra",
		SetupComplete: true,
		Folder:        "/home/u/gestor",
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestStateStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	st := domain.NewAppState()
	st.Completed.Toggle("x.pdf")
	if err := s.Save(st); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Completed.Done("x.pdf") {
		t.Error("completion lost across reopen")
	}
}

func TestStateStore_MalformedValueKeepsDefault(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.db.Exec(`INSERT INTO state (key, value) VALUES ('darkModeStart', 'not json')`); err != nil {
		t.Fatal(err)
	}
	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.DarkModeStart != domain.DefaultDarkModeStart {
		t.Errorf("DarkModeStart = %d, want default", st.DarkModeStart)
	}
}
