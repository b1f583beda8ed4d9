package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"studytrack/internal/config"
)

func testConfig(t *testing.T, folder string) *config.Config {
	t.Helper()
	return &config.Config{
		Folder:    folder,
		StatePath: filepath.Join(t.TempDir(), "state.db"),
	}
}

func TestOpen_OfflineIngestsConfiguredFolder(t *testing.T) {
	folder := t.TempDir()
	if err := os.MkdirAll(filepath.Join(folder, "Semana1"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "Semana1", "a.pdf"), []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	rt, err := Open(testConfig(t, folder), Options{Offline: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rt.Close()

	if rt.Client != nil {
		t.Error("expected no client when offline")
	}
	if rt.Session.Reconciler().Enabled() {
		t.Error("expected a disabled reconciler when offline")
	}

	res, err := rt.Session.Ingest(context.Background(), rt.Folder)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if res.Documents != 1 {
		t.Errorf("expected 1 document, got %d", res.Documents)
	}
}

func TestOpen_OnlineHasClient(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.APIURL = "http://localhost:1"

	rt, err := Open(cfg, Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rt.Close()

	if rt.Client == nil || !rt.Session.Reconciler().Enabled() {
		t.Error("expected a progress client")
	}
}

func TestChooseFolder(t *testing.T) {
	readable := t.TempDir()
	missing := filepath.Join(t.TempDir(), "gone")

	tests := []struct {
		name                        string
		explicit, saved, configured string
		want                        string
	}{
		{"explicit wins", "/x", readable, "/cfg", "/x"},
		{"saved when readable", "", readable, "/cfg", readable},
		{"configured when saved is gone", "", missing, "/cfg", "/cfg"},
		{"configured when nothing saved", "", "", "/cfg", "/cfg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chooseFolder(tt.explicit, tt.saved, tt.configured); got != tt.want {
				t.Errorf("chooseFolder() = %q, want %q", got, tt.want)
			}
		})
	}
}
