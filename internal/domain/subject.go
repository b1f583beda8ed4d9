package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSubject folds a subject name for comparison: canonical
// decomposition, combining marks removed, lowercased.
func NormalizeSubject(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// SameSubject reports whether a and b name the same subject
func SameSubject(a, b string) bool {
	return NormalizeSubject(a) == NormalizeSubject(b)
}

// ResolveSubject returns the canonical spelling of subject, or subject
// unchanged when nothing in canonical matches.
func ResolveSubject(subject string, canonical []string) string {
	for _, c := range canonical {
		if SameSubject(c, subject) {
			return c
		}
	}
	return subject
}

var practiceSegments = []string{"practica", "practicas", "practice", "practices", "practico", "tp"}

// Classify assigns subject and table type to every record of s. A record
// belongs to the first configured subject that equals one of its folder
// segments, and is practice material when a folder segment names practice.
func Classify(s *Snapshot, subjects []string) {
	if s == nil {
		return
	}
	for _, e := range s.entries {
		segs := Segments(e.Path)
		subject := ""
		table := TableTheory
		for _, seg := range segs {
			if subject == "" {
				for _, name := range subjects {
					if SameSubject(seg, name) {
						subject = name
						break
					}
				}
			}
			folded := NormalizeSubject(seg)
			for _, p := range practiceSegments {
				if folded == p {
					table = TablePractice
				}
			}
		}
		for i := range e.Documents {
			e.Documents[i].Subject = subject
			e.Documents[i].TableType = table
		}
	}
}
