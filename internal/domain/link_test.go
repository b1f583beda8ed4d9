package domain

import (
	"testing"
	"time"
)

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc123&t=10", "https://www.youtube.com/embed/abc123"},
		{"https://youtube.com/embed/xyz", "https://www.youtube.com/embed/xyz"},
		{"https://youtu.be/short1", "https://www.youtube.com/embed/short1"},
		{"https://youtu.be/", "https://youtu.be/"},
		{"https://example.com/slides.pdf", "https://example.com/slides.pdf"},
		{"not a url", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := EmbedURL(tt.in); got != tt.want {
				t.Errorf("EmbedURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractLink(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		want   string
		wantOK bool
	}{
		{"internet shortcut", []byte("[InternetShortcut]\r\nURL=https://youtu.be/q1\r\n"), "https://youtu.be/q1", true},
		{"nul padded utf16-ish", []byte("h\x00t\x00t\x00p\x00:\x00/\x00/\x00a\x00.\x00b\x00 "), "http://a.b", true},
		{"first wins", []byte("see http://one.example then https://two.example"), "http://one.example", true},
		{"nothing", []byte("no links here"), "", false},
		{"invalid utf8", []byte{0xff, 0xfe, 'h', 't', 't', 'p', 's', ':', '/', '/', 'x', '.', 'y'}, "https://x.y", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractLink(tt.data)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractLink() = %q,%v, want %q,%v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSchedule_DaysUntil(t *testing.T) {
	s := Schedule{
		Theory:   map[string]string{"Álgebra": "Miércoles"},
		Practice: map[string]string{"Álgebra": "Lunes"},
	}
	// 2026-10-19 is a Monday
	monday := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	theory := DocumentRecord{Subject: "Álgebra", TableType: TableTheory}
	practice := DocumentRecord{Subject: "Álgebra", TableType: TablePractice}
	unknown := DocumentRecord{Subject: "Física", TableType: TableTheory}

	if got := s.DaysUntil(theory, monday); got != 2 {
		t.Errorf("theory DaysUntil = %d, want 2", got)
	}
	if got := s.DaysUntil(practice, monday); got != 7 {
		t.Errorf("practice due today should be 7, got %d", got)
	}
	if got := s.DaysUntil(theory, monday.AddDate(0, 0, 3)); got != 6 {
		t.Errorf("theory from Thursday = %d, want 6", got)
	}
	if got := s.DaysUntil(unknown, monday); got != 0 {
		t.Errorf("unscheduled subject = %d, want 0", got)
	}
}

func TestIsDarkHour(t *testing.T) {
	for hour, want := range map[int]bool{5: true, 6: false, 18: false, 19: true, 23: true} {
		if got := IsDarkHour(DefaultDarkModeStart, hour); got != want {
			t.Errorf("IsDarkHour(19, %d) = %v, want %v", hour, got, want)
		}
	}
}
