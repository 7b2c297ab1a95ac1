// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package books searches the Google Books volumes API and maps volumes to
// Book records.
package books

import (
	"encoding/json"

	"github.com/pdiddy/scholar-tool/internal/cite"
)

// Book is one Google Books volume. Empty strings mean the field was absent
// upstream.
type Book struct {
	Title         string   `json:"title" yaml:"title"`
	Authors       []string `json:"authors" yaml:"authors"`
	Publisher     string   `json:"publisher" yaml:"publisher,omitempty"`
	PublishedDate string   `json:"published_date" yaml:"published_date,omitempty"`
	Description   string   `json:"description" yaml:"description,omitempty"`
	PageCount     int      `json:"page_count" yaml:"page_count,omitempty"`
	Categories    []string `json:"categories" yaml:"categories"`
	PreviewLink   string   `json:"preview_link" yaml:"preview_link,omitempty"`
	InfoLink      string   `json:"info_link" yaml:"info_link,omitempty"`
	ISBN10        string   `json:"isbn_10" yaml:"isbn_10,omitempty"`
	ISBN13        string   `json:"isbn_13" yaml:"isbn_13,omitempty"`
}

// MarshalJSON writes every key in declaration order, with null for absent
// values.
func (b Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title         string   `json:"title"`
		Authors       []string `json:"authors"`
		Publisher     *string  `json:"publisher"`
		PublishedDate *string  `json:"published_date"`
		Description   *string  `json:"description"`
		PageCount     *int     `json:"page_count"`
		Categories    []string `json:"categories"`
		PreviewLink   *string  `json:"preview_link"`
		InfoLink      *string  `json:"info_link"`
		ISBN10        *string  `json:"isbn_10"`
		ISBN13        *string  `json:"isbn_13"`
	}{
		Title:         b.Title,
		Authors:       b.Authors,
		Publisher:     nullable(b.Publisher),
		PublishedDate: nullable(b.PublishedDate),
		Description:   nullable(b.Description),
		PageCount:     nullable(b.PageCount),
		Categories:    b.Categories,
		PreviewLink:   nullable(b.PreviewLink),
		InfoLink:      nullable(b.InfoLink),
		ISBN10:        nullable(b.ISBN10),
		ISBN13:        nullable(b.ISBN13),
	})
}

func nullable[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// Year returns the first four characters of the published date, or "n.d."
// when the date is absent.
func (b Book) Year() string {
	if b.PublishedDate == "" {
		return "n.d."
	}
	if len(b.PublishedDate) < 4 {
		return b.PublishedDate
	}
	return b.PublishedDate[:4]
}

// ISBN prefers ISBN-13 and falls back to ISBN-10.
func (b Book) ISBN() string {
	if b.ISBN13 != "" {
		return b.ISBN13
	}
	return b.ISBN10
}

// Work returns the citation view of the book.
func (b Book) Work() cite.Work {
	return cite.Work{
		Authors:   b.Authors,
		Year:      b.Year(),
		Title:     b.Title,
		Publisher: b.Publisher,
	}
}

// Cite renders the book in the given style.
func (b Book) Cite(style cite.Style) string {
	return cite.Format(style, b.Work())
}
