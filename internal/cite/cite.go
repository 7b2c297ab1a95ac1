// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite formats bibliographic citations in APA, MLA, Chicago and
// Harvard styles.
package cite

import (
	"errors"
	"fmt"
	"strings"
)

// Style identifies a citation style.
type Style int

const (
	APA Style = iota
	MLA
	Chicago
	Harvard
)

var styleNames = [...]string{
	APA:     "apa",
	MLA:     "mla",
	Chicago: "chicago",
	Harvard: "harvard",
}

// ErrUnsupportedStyle is returned by ParseStyle for an unknown style name.
var ErrUnsupportedStyle = errors.New("unsupported style")

// String returns the lowercase style name used on the command line.
func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// StyleNames lists the valid style names in display order.
func StyleNames() []string {
	return styleNames[:]
}

// ParseStyle maps a case-insensitive style name to a Style.
func ParseStyle(name string) (Style, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range styleNames {
		if n == key {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s. Use: %s", ErrUnsupportedStyle, name, strings.Join(StyleNames(), ", "))
}

const (
	unknownAuthor    = "Unknown Author"
	unknownPublisher = "Publisher unknown"
	noDate           = "n.d."
)

// Work is the subset of bibliographic data a citation needs.
type Work struct {
	Authors   []string
	Year      string
	Title     string
	Publisher string
}

// Format renders w as a single citation in the given style.
func Format(style Style, w Work) string {
	publisher := w.Publisher
	if publisher == "" {
		publisher = unknownPublisher
	}
	year := w.Year
	if year == "" {
		year = noDate
	}

	switch style {
	case APA:
		return fmt.Sprintf("%s (%s). %s. %s.", apaAuthors(w.Authors), year, w.Title, publisher)
	case MLA, Chicago:
		authors := mlaAuthors(w.Authors)
		sep := ". "
		if strings.HasSuffix(authors, ".") {
			sep = " "
		}
		return fmt.Sprintf("%s%s%s. %s, %s.", authors, sep, w.Title, publisher, year)
	case Harvard:
		return fmt.Sprintf("%s (%s) %s. %s.", harvardAuthors(w.Authors), year, w.Title, publisher)
	default:
		return ""
	}
}

// splitName returns the surname and given-name tokens of a display name.
// Names with a single token report ok=false and are used verbatim.
func splitName(name string) (surname string, given []string, ok bool) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name, nil, false
	}
	return parts[len(parts)-1], parts[:len(parts)-1], true
}

// initials renders given-name tokens as "J." each, joined by sep.
func initials(given []string, sep string) string {
	out := make([]string, 0, len(given))
	for _, g := range given {
		r := []rune(g)
		out = append(out, string(r[0])+".")
	}
	return strings.Join(out, sep)
}

func initialed(authors []string, sep string) []string {
	out := make([]string, len(authors))
	for i, a := range authors {
		surname, given, ok := splitName(a)
		if !ok {
			out[i] = a
			continue
		}
		out[i] = surname + ", " + initials(given, sep)
	}
	return out
}

func apaAuthors(authors []string) string {
	f := initialed(authors, " ")
	switch len(f) {
	case 0:
		return unknownAuthor
	case 1:
		return f[0]
	case 2:
		return f[0] + " & " + f[1]
	default:
		return strings.Join(f[:len(f)-1], ", ") + ", & " + f[len(f)-1]
	}
}

func harvardAuthors(authors []string) string {
	f := initialed(authors, "")
	switch len(f) {
	case 0:
		return unknownAuthor
	case 1:
		return f[0]
	case 2:
		return f[0] + " and " + f[1]
	default:
		return strings.Join(f[:len(f)-1], ", ") + " and " + f[len(f)-1]
	}
}

// mlaAuthors inverts only the first author; the second of two is verbatim.
func mlaAuthors(authors []string) string {
	if len(authors) == 0 {
		return unknownAuthor
	}
	first := authors[0]
	if surname, given, ok := splitName(first); ok {
		first = surname + ", " + strings.Join(given, " ")
	}
	switch len(authors) {
	case 1:
		return first
	case 2:
		return first + ", and " + authors[1]
	default:
		return first + ", et al."
	}
}
