package domain

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// naturalSorter orders names numerically and case/accent-insensitively,
// so "week2" sorts before "week10". A Collator keeps internal buffers and
// must not be shared between goroutines; create one per derivation.
type naturalSorter struct {
	c *collate.Collator
}

func newNaturalSorter() *naturalSorter {
	return &naturalSorter{c: collate.New(language.Und, collate.Numeric, collate.Loose)}
}

// Compare returns -1, 0 or 1. Names equal under collation fall back to
// byte order so the result is total and deterministic.
func (n *naturalSorter) Compare(a, b string) int {
	if c := n.c.CompareString(a, b); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// NaturalLess reports whether a sorts before b in natural order
func NaturalLess(a, b string) bool {
	return newNaturalSorter().Compare(a, b) < 0
}
