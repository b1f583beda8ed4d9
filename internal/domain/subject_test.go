package domain

import "testing"

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Álgebra", "algebra"},
		{"algebra", "algebra"},
		{"CÁLCULO", "calculo"},
		{"  Poo ", "  poo "},
		{"Programación Orientada", "programacion orientada"},
		{"Ñandú", "nandu"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeSubject(tt.in); got != tt.want {
				t.Errorf("NormalizeSubject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveSubject(t *testing.T) {
	canonical := []string{"Álgebra", "Cálculo", "Poo"}

	tests := []struct {
		name    string
		subject string
		want    string
	}{
		{"accent stripped", "algebra", "Álgebra"},
		{"case folded", "CALCULO", "Cálculo"},
		{"exact", "Poo", "Poo"},
		{"no match keeps spelling", "Física", "Física"},
		{"empty", "", ""},
		{"surrounding space is significant", " algebra", " algebra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveSubject(tt.subject, canonical); got != tt.want {
				t.Errorf("ResolveSubject(%q) = %q, want %q", tt.subject, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	s := DeriveTree(files(
		"Algebra/Semana 1/teoria.pdf",
		"Algebra/Practica/tp1.pdf",
		"Misc/otro.pdf",
	))

	Classify(s, []string{"Álgebra", "Cálculo"})

	d, _ := s.Find("Algebra/Semana 1/teoria.pdf")
	if d.Subject != "Álgebra" || d.TableType != TableTheory {
		t.Errorf("unexpected classification for theory doc: %q %q", d.Subject, d.TableType)
	}
	d, _ = s.Find("Algebra/Practica/tp1.pdf")
	if d.Subject != "Álgebra" || d.TableType != TablePractice {
		t.Errorf("unexpected classification for practice doc: %q %q", d.Subject, d.TableType)
	}
	d, _ = s.Find("Misc/otro.pdf")
	if d.Subject != "" || d.TableType != TableTheory {
		t.Errorf("unclassified doc should default to theory with no subject: %q %q", d.Subject, d.TableType)
	}
}

func TestParseTableType(t *testing.T) {
	if tt, ok := ParseTableType(" Practice "); !ok || tt != TablePractice {
		t.Errorf("expected practice, got %q %v", tt, ok)
	}
	if _, ok := ParseTableType("lab"); ok {
		t.Error("expected lab to be rejected")
	}
}

func TestProgressRow_ApplyDelta(t *testing.T) {
	tests := []struct {
		name  string
		row   ProgressRow
		delta int
		want  int
	}{
		{"increment", ProgressRow{CurrentProgress: 1, TotalPDFs: 2}, 1, 2},
		{"increment at cap", ProgressRow{CurrentProgress: 2, TotalPDFs: 2}, 1, 2},
		{"decrement at zero", ProgressRow{CurrentProgress: 0, TotalPDFs: 2}, -1, 0},
		{"large negative", ProgressRow{CurrentProgress: 3, TotalPDFs: 6}, -10, 0},
		{"zero total", ProgressRow{CurrentProgress: 0, TotalPDFs: 0}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.ApplyDelta(tt.delta); got != tt.want {
				t.Errorf("ApplyDelta(%d) = %d, want %d", tt.delta, got, tt.want)
			}
		})
	}
}
