// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-tool/internal/books"
	"github.com/pdiddy/scholar-tool/internal/scholar"
)

func TestBookItems(t *testing.T) {
	items := BookItems([]books.Book{
		{
			Title:         "The Go Programming Language",
			Authors:       []string{"Alan A. A. Donovan", "Kernighan"},
			Publisher:     "Addison-Wesley",
			PublishedDate: "2015-10-26",
			PageCount:     380,
			InfoLink:      "https://books.google.com/info",
			ISBN13:        "9780134190440",
		},
		{Title: "Anonymous", PublishedDate: "1890"},
	})
	require.Len(t, items, 2)

	b := items[0]
	assert.Equal(t, "9780134190440", b.ID)
	assert.Equal(t, "book", b.Type)
	assert.Equal(t, "9780134190440", b.ISBN)
	assert.Equal(t, "Addison-Wesley", b.Publisher)
	assert.Equal(t, 380, b.NumberOfPages)
	assert.Equal(t, "https://books.google.com/info", b.URL)
	assert.Equal(t, []CSLName{{Given: "Alan A. A.", Family: "Donovan"}, {Literal: "Kernighan"}}, b.Author)
	require.NotNil(t, b.Issued)
	assert.Equal(t, [][]int{{2015, 10, 26}}, b.Issued.DateParts)

	assert.Equal(t, "book2", items[1].ID)
	assert.Nil(t, items[1].Author)
	assert.Equal(t, [][]int{{1890}}, items[1].Issued.DateParts)
}

func TestPublicationItems(t *testing.T) {
	items := PublicationItems([]scholar.Publication{
		{Title: "Attention", Authors: []string{"A Vaswani"}, Year: "2017", URL: "https://arxiv.org/pdf/1", PubURL: "https://nips.cc/1"},
		{Title: "No year", URL: "https://example.org/pdf"},
	})
	require.Len(t, items, 2)

	assert.Equal(t, "pub1", items[0].ID)
	assert.Equal(t, "article-journal", items[0].Type)
	assert.Equal(t, "https://nips.cc/1", items[0].URL)
	assert.Equal(t, [][]int{{2017}}, items[0].Issued.DateParts)

	assert.Nil(t, items[1].Issued)
	assert.Equal(t, "https://example.org/pdf", items[1].URL)
}

func TestCSLWritesYAMLList(t *testing.T) {
	items := BookItems([]books.Book{{Title: "Republic", Authors: []string{"Plato"}, PublishedDate: "2004-03"}})

	var buf bytes.Buffer
	require.NoError(t, CSL(&buf, items))
	out := buf.String()
	assert.Contains(t, out, "- id: book1\n")
	assert.Contains(t, out, "type: book\n")
	assert.Contains(t, out, "literal: Plato")
	assert.NotContains(t, out, "ISBN")

	var back []CSLItem
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, items, back)
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"Jane Q. Public", CSLName{Given: "Jane Q.", Family: "Public"}},
		{"  Ada   Lovelace ", CSLName{Given: "Ada", Family: "Lovelace"}},
		{"Plato", CSLName{Literal: "Plato"}},
		{"", CSLName{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAuthorName(tt.in))
		})
	}
}

func TestIssued(t *testing.T) {
	assert.Equal(t, [][]int{{2020, 5, 1}}, issued("2020-05-01").DateParts)
	assert.Equal(t, [][]int{{2020, 5}}, issued("2020-05").DateParts)
	assert.Nil(t, issued(""))
	assert.Nil(t, issued("n.d."))
}
