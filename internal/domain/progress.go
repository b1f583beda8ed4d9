package domain

import "time"

// ProgressRow is the remote counter for one (subject, table type) pair
type ProgressRow struct {
	ID              int       `json:"id,omitempty"`
	SubjectName     string    `json:"subject_name"`
	TableType       TableType `json:"table_type"`
	CurrentProgress int       `json:"current_progress"`
	TotalPDFs       int       `json:"total_pdfs"`
}

// ApplyDelta returns the counter after adding delta, clamped to [0, TotalPDFs]
func (r ProgressRow) ApplyDelta(delta int) int {
	return max(0, min(r.TotalPDFs, r.CurrentProgress+delta))
}

// DeltaRequest asks the remote store to move a counter by Delta
type DeltaRequest struct {
	Subject   string `json:"subject"`
	TableType string `json:"tableType"`
	Delta     int    `json:"delta"`
}

// SeedRows are written by the init operation
var SeedRows = []ProgressRow{
	{SubjectName: "Álgebra", TableType: TableTheory, CurrentProgress: 1, TotalPDFs: 6},
	{SubjectName: "Álgebra", TableType: TablePractice, CurrentProgress: 0, TotalPDFs: 6},
	{SubjectName: "Cálculo", TableType: TableTheory, CurrentProgress: 1, TotalPDFs: 2},
	{SubjectName: "Cálculo", TableType: TablePractice, CurrentProgress: 0, TotalPDFs: 2},
	{SubjectName: "Poo", TableType: TableTheory, CurrentProgress: 1, TotalPDFs: 2},
	{SubjectName: "Poo", TableType: TablePractice, CurrentProgress: 1, TotalPDFs: 15},
}

// CanonicalSubjects returns the distinct subject names of rows, in order
func CanonicalSubjects(rows []ProgressRow) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		if seen[r.SubjectName] {
			continue
		}
		seen[r.SubjectName] = true
		out = append(out, r.SubjectName)
	}
	return out
}

// DailyTime is the accumulated study time for one day
type DailyTime struct {
	Date         string `json:"date"` // YYYY-MM-DD
	DayOfWeek    string `json:"day_of_week"`
	SecondsTotal int    `json:"seconds_total"`
}

var spanishWeekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// SpanishWeekday names t's weekday the way the daily_time table stores it
func SpanishWeekday(t time.Time) string {
	return spanishWeekdays[t.Weekday()]
}

// DateKey formats t as the daily_time primary key
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
