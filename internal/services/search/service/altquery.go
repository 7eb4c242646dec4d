package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// deaccent strips combining marks so "café" suggests "cafe"
func deaccent(s string) string {
	out, _, err := transform.String(deaccenter, s)
	if err != nil {
		return s
	}
	return out
}

// simplify keeps letters, digits and spaces, collapsing the rest away
func simplify(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

// AlternateQueries suggests looser spellings of a query that produced few
// hits: punctuation stripped, accents removed, and any-term matching.
// The original query itself never appears in the suggestions
func AlternateQueries(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var out []string
	seen := map[string]bool{raw: true}
	push := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			return
		}
		seen[q] = true
		out = append(out, q)
	}

	push(simplify(raw))
	push(deaccent(raw))
	push(simplify(deaccent(raw)))

	if fields := strings.Fields(simplify(raw)); len(fields) > 1 {
		push(strings.Join(fields, " OR "))
	}
	return out
}
