package domain

import (
	"encoding/json"
	"fmt"
	"maps"
)

// CompletionMap maps a record's relative path to its completed flag
type CompletionMap map[string]bool

// Done reports whether rel is marked completed
func (c CompletionMap) Done(rel string) bool {
	return c[rel]
}

// Toggle flips rel and returns the new value
func (c CompletionMap) Toggle(rel string) bool {
	c[rel] = !c[rel]
	return c[rel]
}

// Merge copies every key of snapshot into c; snapshot wins on conflicts and
// keys absent from snapshot are left alone.
func (c CompletionMap) Merge(snapshot CompletionMap) {
	maps.Copy(c, snapshot)
}

// Clone returns an independent copy
func (c CompletionMap) Clone() CompletionMap {
	out := make(CompletionMap, len(c))
	maps.Copy(out, c)
	return out
}

// CountDone returns how many paths are marked completed
func (c CompletionMap) CountDone() int {
	n := 0
	for _, v := range c {
		if v {
			n++
		}
	}
	return n
}

// History is the history snapshot file stored inside the folder
type History struct {
	Completed CompletionMap `json:"completed"`
}

// History file locations, relative to the folder, checked in order
var HistoryFiles = []string{
	"system/check-semanas/check-history.json",
	"system/check-semanas/check-history-sem1.json",
}

// ParseHistory decodes a history file. An object without "completed" is
// reported as an error so callers can try the next candidate.
func ParseHistory(data []byte) (CompletionMap, error) {
	var h History
	if len(data) == 0 {
		data = []byte("{}")
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	if h.Completed == nil {
		return nil, fmt.Errorf("parse history: no completed map")
	}
	return h.Completed, nil
}
