// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes publication, author and book records as numbered
// text blocks, JSON, citation lines or CSL-YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/pdiddy/scholar-tool/internal/books"
	"github.com/pdiddy/scholar-tool/internal/cite"
	"github.com/pdiddy/scholar-tool/internal/scholar"
)

// Text controls human-readable output.
type Text struct {
	// Links wraps titles and links in OSC 8 terminal hyperlinks. When false,
	// linked text is followed by the URL in parentheses.
	Links bool
}

// LinksSupported reports whether w is a terminal that should receive OSC 8
// escape sequences. NO_COLOR disables them.
func LinksSupported(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// hyperlink renders text pointing at url.
func (t Text) hyperlink(url, text string) string {
	if t.Links {
		return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
	}
	return text + " (" + url + ")"
}

func (t Text) title(title, url string) string {
	if url == "" {
		return title
	}
	return t.hyperlink(url, title)
}

// Publications writes one numbered block per publication.
func (t Text) Publications(w io.Writer, pubs []scholar.Publication) error {
	var b strings.Builder
	for i, p := range pubs {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, t.title(p.Title, p.PubURL))
		field(&b, "Authors", strings.Join(p.Authors, ", "))
		field(&b, "Year", p.Year)
		fmt.Fprintf(&b, "   Citations: %d\n", p.Citations)
		if p.URL != "" {
			field(&b, "PDF", t.hyperlink(p.URL, "[Download]"))
		}
		field(&b, "Abstract", p.Abstract)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Authors writes one numbered block per author. Citation metrics are always
// shown, even when zero.
func (t Text) Authors(w io.Writer, authors []scholar.Author) error {
	var b strings.Builder
	for i, a := range authors {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, a.Name)
		field(&b, "Affiliation", a.Affiliation)
		field(&b, "Email", a.EmailDomain)
		fmt.Fprintf(&b, "   Citations: %d\n", a.Citations)
		fmt.Fprintf(&b, "   h-index: %d\n", a.HIndex)
		fmt.Fprintf(&b, "   i10-index: %d\n", a.I10Index)
		field(&b, "Interests", strings.Join(a.Interests, ", "))
		field(&b, "Scholar ID", a.ScholarID)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Books writes one numbered block per book.
func (t Text) Books(w io.Writer, list []books.Book) error {
	var b strings.Builder
	for i, bk := range list {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, t.title(bk.Title, bk.InfoLink))
		field(&b, "Authors", strings.Join(bk.Authors, ", "))
		field(&b, "Publisher", bk.Publisher)
		field(&b, "Published", bk.PublishedDate)
		if bk.PageCount > 0 {
			fmt.Fprintf(&b, "   Pages: %d\n", bk.PageCount)
		}
		field(&b, "Categories", strings.Join(bk.Categories, ", "))
		field(&b, "ISBN", bk.ISBN())
		if bk.PreviewLink != "" {
			field(&b, "Preview", t.hyperlink(bk.PreviewLink, "[Search in book]"))
		}
		field(&b, "Description", bk.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// field writes "   Label: value" unless value is empty.
func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "   %s: %s\n", label, value)
}

// JSON writes v with two-space indentation. Non-ASCII and HTML characters
// are written as-is.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Citer is a record that can be cited.
type Citer interface {
	Work() cite.Work
}

// Citations writes one citation per line in the given style.
func Citations[T Citer](w io.Writer, style cite.Style, records []T) error {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(cite.Format(style, r.Work()))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
