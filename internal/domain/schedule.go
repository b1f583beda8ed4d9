package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ConfigFileName is the subject schedule file searched for in the folder
const ConfigFileName = "config.json"

// Weekdays are the day names a schedule may use, Monday first
var Weekdays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

// Schedule maps subjects to the weekday their theory and practice are due
type Schedule struct {
	Names    []string          `json:"names"`
	Theory   map[string]string `json:"theory"`
	Practice map[string]string `json:"practice"`
}

// ParseSchedule decodes a config.json file; missing sections come back empty
func ParseSchedule(data []byte) (Schedule, error) {
	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return Schedule{}, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	if s.Names == nil {
		s.Names = []string{}
	}
	if s.Theory == nil {
		s.Theory = map[string]string{}
	}
	if s.Practice == nil {
		s.Practice = map[string]string{}
	}
	return s, nil
}

// DaysUntil returns how many days remain until the record's subject is due.
// Due today counts as a full week; an unscheduled subject returns 0.
func (s Schedule) DaysUntil(d DocumentRecord, now time.Time) int {
	days := s.Theory
	if d.TableType == TablePractice {
		days = s.Practice
	}
	dayName, ok := days[d.Subject]
	if !ok {
		return 0
	}
	target := -1
	for i, w := range Weekdays {
		if w == dayName {
			target = i + 1
		}
	}
	if target < 0 {
		return 0
	}
	diff := target - int(now.Weekday())
	if diff < 0 {
		diff += 7
	}
	if diff == 0 {
		diff = 7
	}
	return diff
}

// DefaultDarkModeStart is the hour from which the dark palette is used
const DefaultDarkModeStart = 19

// IsDarkHour reports whether hour falls in the dark period that begins at
// start and ends at 06:00.
func IsDarkHour(start, hour int) bool {
	return hour >= start || hour < 6
}
