// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-tool/internal/books"
	"github.com/pdiddy/scholar-tool/internal/scholar"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form.
// Field names follow the CSL-YAML schema so the output can be fed to Pandoc
// and reference managers.
type CSLItem struct {
	ID            string    `yaml:"id"`
	Type          string    `yaml:"type"`
	Title         string    `yaml:"title"`
	Author        []CSLName `yaml:"author,omitempty"`
	Abstract      string    `yaml:"abstract,omitempty"`
	Issued        *CSLDate  `yaml:"issued,omitempty"`
	Publisher     string    `yaml:"publisher,omitempty"`
	ISBN          string    `yaml:"ISBN,omitempty"`
	NumberOfPages int       `yaml:"number-of-pages,omitempty"`
	URL           string    `yaml:"URL,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// CSL writes items as a CSL-YAML list.
func CSL(w io.Writer, items []CSLItem) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding csl: %w", err)
	}
	return enc.Close()
}

// PublicationItems converts publications to CSL items with ids pub1, pub2, ...
func PublicationItems(pubs []scholar.Publication) []CSLItem {
	items := make([]CSLItem, len(pubs))
	for i, p := range pubs {
		items[i] = CSLItem{
			ID:       "pub" + strconv.Itoa(i+1),
			Type:     "article-journal",
			Title:    p.Title,
			Author:   authorNames(p.Authors),
			Abstract: p.Abstract,
			Issued:   issued(p.Year),
			URL:      firstNonEmpty(p.PubURL, p.URL),
		}
	}
	return items
}

// BookItems converts books to CSL items. The id is the ISBN when known.
func BookItems(list []books.Book) []CSLItem {
	items := make([]CSLItem, len(list))
	for i, b := range list {
		items[i] = CSLItem{
			ID:            firstNonEmpty(b.ISBN(), "book"+strconv.Itoa(i+1)),
			Type:          "book",
			Title:         b.Title,
			Author:        authorNames(b.Authors),
			Abstract:      b.Description,
			Issued:        issued(b.PublishedDate),
			Publisher:     b.Publisher,
			ISBN:          b.ISBN(),
			NumberOfPages: b.PageCount,
			URL:           b.InfoLink,
		}
	}
	return items
}

func authorNames(authors []string) []CSLName {
	var names []CSLName
	for _, a := range authors {
		if n := parseAuthorName(a); n != (CSLName{}) {
			names = append(names, n)
		}
	}
	return names
}

// parseAuthorName splits a full name into CSL family/given parts on the last
// space. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

var datePartsRe = regexp.MustCompile(`^(\d{4})(?:-(\d{2}))?(?:-(\d{2}))?`)

// issued parses "2020", "2020-05" or "2020-05-01" into date-parts.
func issued(date string) *CSLDate {
	m := datePartsRe.FindStringSubmatch(strings.TrimSpace(date))
	if m == nil {
		return nil
	}
	var parts []int
	for _, s := range m[1:] {
		if s == "" {
			break
		}
		n, _ := strconv.Atoi(s)
		parts = append(parts, n)
	}
	return &CSLDate{DateParts: [][]int{parts}}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
