// Package search prepares free-text skill queries for semantic lookup.
package search

import (
	"strings"
	"unicode"
)

type QueryContext struct {
	Original   string
	Normalized string
	// Expanded is Normalized followed by canonical forms of any aliased tokens.
	Expanded string
}

// NormalizeQuery lowercases input, collapses whitespace and drops punctuation
// except the characters that carry meaning in skill names (c++, c#, .net, node.js).
func NormalizeQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == ',' || r == '/' || r == '-' || r == '_':
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		if w != ".net" {
			w = strings.Trim(w, ".")
		}
		words[i] = w
	}
	return strings.Join(strings.Fields(strings.Join(words, " ")), " ")
}

// ExpandQuery appends the canonical term of every aliased token that the query does not already mention.
func ExpandQuery(normalized string) string {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}

	out := append([]string(nil), words...)
	for _, w := range words {
		canon := Canonical(w)
		if canon == "" {
			continue
		}
		if _, ok := seen[canon]; ok || strings.Contains(" "+normalized+" ", " "+canon+" ") {
			continue
		}
		seen[canon] = struct{}{}
		out = append(out, canon)
	}
	return strings.Join(out, " ")
}

func ProcessQuery(input string) QueryContext {
	q := QueryContext{Original: input, Normalized: NormalizeQuery(input)}
	q.Expanded = ExpandQuery(q.Normalized)
	return q
}
