// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"log/slog"
	"strings"
	"unicode"
)

// QueryParts are the structured pieces of a Scholar query.
type QueryParts struct {
	// Terms are alternatives combined with OR.
	Terms []string
	// ExactPhrases are AND-ed with the terms; phrases containing whitespace are quoted.
	ExactPhrases []string
	// ExcludeTerms are appended as -term.
	ExcludeTerms []string
	// InTitle, when set, requires the text to appear in the result title.
	InTitle string
}

// BuildQuery renders q using Scholar's Boolean operators. The term group and
// exact phrases are combined first, then the intitle: filter, then the
// exclusions, in that fixed order.
func BuildQuery(q QueryParts) string {
	var parts []string

	switch len(q.Terms) {
	case 0:
	case 1:
		parts = append(parts, q.Terms[0])
	default:
		parts = append(parts, "("+strings.Join(q.Terms, " OR ")+")")
	}

	for _, phrase := range q.ExactPhrases {
		if strings.ContainsFunc(phrase, unicode.IsSpace) {
			parts = append(parts, `"`+phrase+`"`)
		} else {
			parts = append(parts, phrase)
		}
	}

	var b strings.Builder
	if len(parts) > 1 {
		b.WriteString(strings.Join(parts, " AND "))
	} else {
		b.WriteString(strings.Join(parts, ""))
	}

	if q.InTitle != "" {
		b.WriteString(` intitle:"` + q.InTitle + `"`)
	}
	for _, term := range q.ExcludeTerms {
		b.WriteString(" -" + term)
	}

	query := b.String()
	slog.Debug("built query", slog.String("query", query))
	return query
}

// SplitTerms splits a raw query on " OR " into trimmed alternatives. A query
// without " OR " is a single term.
func SplitTerms(raw string) []string {
	if !strings.Contains(raw, " OR ") {
		return []string{raw}
	}
	fields := strings.Split(raw, " OR ")
	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = strings.TrimSpace(f)
	}
	return terms
}
