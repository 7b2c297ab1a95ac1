// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-tool/internal/books"
	"github.com/pdiddy/scholar-tool/internal/scholar"
	"github.com/pdiddy/scholar-tool/internal/secrets"
	"github.com/pdiddy/scholar-tool/internal/stream"
	"github.com/pdiddy/scholar-tool/pkg/types"
)

// --- fakes ---

type fakeScholar struct {
	pubs    []scholar.Publication
	authors []scholar.Author
	byID    map[string]scholar.Author
	err     error

	calls    int
	gotQuery string
	gotOpts  scholar.SearchOptions
	gotLimit int
	gotID    string
}

func (f *fakeScholar) SearchPublications(_ context.Context, query string, opts scholar.SearchOptions) iter.Seq2[scholar.Publication, error] {
	f.calls++
	f.gotQuery, f.gotOpts = query, opts
	if f.err != nil {
		return errSeq[scholar.Publication](f.err)
	}
	return stream.Limit(seqOf(f.pubs), opts.Limit)
}

func (f *fakeScholar) SearchAuthors(_ context.Context, query string, limit int) iter.Seq2[scholar.Author, error] {
	f.calls++
	f.gotQuery, f.gotLimit = query, limit
	return stream.Limit(seqOf(f.authors), limit)
}

func (f *fakeScholar) AuthorByID(_ context.Context, id string) *scholar.Author {
	f.calls++
	f.gotID = id
	a, ok := f.byID[id]
	if !ok {
		return nil
	}
	return &a
}

type fakeBooks struct {
	books    []books.Book
	gotQuery string
	gotLimit int
}

func (f *fakeBooks) Search(_ context.Context, query string, limit int) iter.Seq2[books.Book, error] {
	f.gotQuery, f.gotLimit = query, limit
	return seqOf(f.books)
}

// seqOf yields items without error.
func seqOf[T any](items []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, v := range items {
			if !yield(v, nil) {
				return
			}
		}
	}
}

func errSeq[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

// harness runs the CLI in a scratch working directory with fake clients and
// records the configuration each client was built with.
type harness struct {
	scholar    *fakeScholar
	books      *fakeBooks
	scholarCfg types.ScholarConfig
	booksCfg   types.BooksConfig
	dir        string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{scholar: &fakeScholar{}, books: &fakeBooks{}, dir: t.TempDir()}
	t.Chdir(h.dir)
	t.Setenv("GOOGLE_BOOKS_API_KEY", "")
	t.Setenv("SCHOLAR_TOOL_BOOKS_API_KEY", "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() { slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil))) })
	return h
}

func (h *harness) clients() clientFactory {
	return clientFactory{
		scholar: func(cfg types.ScholarConfig) (scholarClient, error) {
			h.scholarCfg = cfg
			return h.scholar, nil
		},
		books: func(cfg types.BooksConfig) (booksClient, error) {
			h.booksCfg = cfg
			return h.books, nil
		},
	}
}

func (h *harness) run(stdin string, args ...string) (stdout, stderr string, code int) {
	var out, errb bytes.Buffer
	code = run(context.Background(), newCLI(h.clients()), args, strings.NewReader(stdin), &out, &errb)
	return out.String(), errb.String(), code
}

func samplePubs() []scholar.Publication {
	return []scholar.Publication{
		{Title: "Attention is all you need", Authors: []string{"A Vaswani", "N Shazeer"}, Year: "2017", Citations: 1234},
		{Title: "Deep learning", Authors: []string{"Yann LeCun", "Yoshua Bengio", "Geoffrey Hinton"}, Year: "2015", Citations: 98},
	}
}

// --- search ---

func TestSearchText(t *testing.T) {
	h := newHarness(t)
	h.scholar.pubs = samplePubs()

	out, _, code := h.run("", "search", "machine learning")
	require.Equal(t, 0, code)
	assert.Equal(t, "machine learning", h.scholar.gotQuery)
	assert.Equal(t, 10, h.scholar.gotOpts.Limit)
	assert.Equal(t, scholar.SortRelevance, h.scholar.gotOpts.Sort)
	assert.Contains(t, out, "\n1. Attention is all you need\n   Authors: A Vaswani, N Shazeer\n   Year: 2017\n   Citations: 1234\n")
	assert.Contains(t, out, "\n2. Deep learning\n")
}

func TestSearchMissingQuery(t *testing.T) {
	h := newHarness(t)

	out, errOut, code := h.run("", "search")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Equal(t, "Error: Missing query argument\nFix: Provide a search query, e.g.: scholar-tool search 'machine learning'\n", errOut)
	assert.Zero(t, h.scholar.calls)
}

func TestSearchStdin(t *testing.T) {
	h := newHarness(t)
	h.scholar.pubs = samplePubs()

	_, _, code := h.run("  deep learning \n", "search", "--stdin")
	require.Equal(t, 0, code)
	assert.Equal(t, "deep learning", h.scholar.gotQuery)
}

func TestSearchEmptyStdin(t *testing.T) {
	h := newHarness(t)

	_, errOut, code := h.run("", "search", "-s")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: Missing query argument")
}

func TestSearchBuildsQueryFromFlags(t *testing.T) {
	h := newHarness(t)

	_, _, code := h.run("", "search", "HRM OR human resource management",
		"-e", "job satisfaction", "-x", "survey", "-x", "review", "-t", "the Netherlands")
	require.Equal(t, 0, code)
	assert.Equal(t,
		`(HRM OR human resource management) AND "job satisfaction" intitle:"the Netherlands" -survey -review`,
		h.scholar.gotQuery)
}

func TestSearchRawQueryVerbatim(t *testing.T) {
	h := newHarness(t)

	raw := `"HRM" AND "job satisfaction" intitle:"Netherlands"`
	_, _, code := h.run("", "search", raw)
	require.Equal(t, 0, code)
	assert.Equal(t, raw, h.scholar.gotQuery)
}

func TestSearchOptions(t *testing.T) {
	h := newHarness(t)

	_, _, code := h.run("", "search", "transformers", "--year-start", "2020", "--year-end", "2024", "--sort", "DATE", "-l", "3")
	require.Equal(t, 0, code)
	assert.Equal(t, scholar.SearchOptions{Limit: 3, YearStart: 2020, YearEnd: 2024, Sort: scholar.SortDate}, h.scholar.gotOpts)
}

func TestSearchInvalidSort(t *testing.T) {
	h := newHarness(t)

	_, errOut, code := h.run("", "search", "x", "--sort", "citations")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `invalid --sort "citations"`)
	assert.Zero(t, h.scholar.calls)
}

func TestSearchNoResults(t *testing.T) {
	h := newHarness(t)

	out, _, code := h.run("", "search", "zzzz")
	assert.Equal(t, 0, code)
	assert.Equal(t, "No results found\n", out)

	out, _, code = h.run("", "-q", "search", "zzzz")
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestSearchJSON(t *testing.T) {
	h := newHarness(t)
	h.scholar.pubs = samplePubs()

	out, _, code := h.run("", "search", "x", "--json-output")
	require.Equal(t, 0, code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Attention is all you need", got[0]["title"])
	assert.EqualValues(t, 1234, got[0]["citations"])
	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"title\""))
}

func TestSearchCite(t *testing.T) {
	h := newHarness(t)
	h.scholar.pubs = samplePubs()

	out, _, code := h.run("", "search", "x", "--cite", "harvard")
	require.Equal(t, 0, code)
	assert.Equal(t,
		"Vaswani, A. and Shazeer, N. (2017) Attention is all you need. Publisher unknown.\n"+
			"LeCun, Y., Bengio, Y. and Hinton, G. (2015) Deep learning. Publisher unknown.\n",
		out)
}

func TestSearchUnsupportedStyle(t *testing.T) {
	h := newHarness(t)

	_, errOut, code := h.run("", "search", "x", "--cite", "ieee")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unsupported style: ieee. Use: apa, mla, chicago, harvard")
	assert.Zero(t, h.scholar.calls)
}

func TestSearchSave(t *testing.T) {
	h := newHarness(t)
	h.scholar.pubs = samplePubs()

	_, _, code := h.run("", "search", "attention", "-t", "transformer", "--save", "attention.yaml", "-l", "1")
	require.Equal(t, 0, code)

	qf, err := scholar.ReadQueryFile(filepath.Join(h.dir, "attention.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "attention", qf.Query.Raw)
	assert.Equal(t, `attention intitle:"transformer"`, qf.Query.Built)
	assert.Equal(t, 1, qf.Summary.Total)
	require.Len(t, qf.Results, 1)
	assert.Equal(t, "Attention is all you need", qf.Results[0].Title)
}

func TestSearchUpstreamError(t *testing.T) {
	h := newHarness(t)
	h.scholar.err = scholar.ErrBlocked

	_, errOut, code := h.run("", "search", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: google scholar blocked the request")
}

// --- author ---

func TestAuthorSearch(t *testing.T) {
	h := newHarness(t)
	h.scholar.authors = []scholar.Author{
		{Name: "Albert Einstein", Affiliation: "IAS", Citations: 10, Interests: []string{"Physics"}, ScholarID: "qc6CJjYAAAAJ"},
	}

	out, _, code := h.run("", "author", "Albert Einstein")
	require.Equal(t, 0, code)
	assert.Equal(t, 5, h.scholar.gotLimit)
	assert.Equal(t, "\n1. Albert Einstein\n   Affiliation: IAS\n   Citations: 10\n   h-index: 0\n   i10-index: 0\n   Interests: Physics\n   Scholar ID: qc6CJjYAAAAJ\n", out)
}

func TestAuthorByID(t *testing.T) {
	h := newHarness(t)
	h.scholar.byID = map[string]scholar.Author{"XrH4VJUAAAAJ": {Name: "Jane Doe", HIndex: 12, Interests: []string{}}}

	out, _, code := h.run("", "author", "--scholar-id", "XrH4VJUAAAAJ", "-j")
	require.Equal(t, 0, code)
	assert.Equal(t, "XrH4VJUAAAAJ", h.scholar.gotID)

	var got []scholar.Author
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Jane Doe", got[0].Name)
	assert.Equal(t, 12, got[0].HIndex)
}

func TestAuthorByIDNotFound(t *testing.T) {
	h := newHarness(t)

	out, errOut, code := h.run("", "author", "-i", "MISSING")
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Author not found\n")
}

func TestAuthorMissingInput(t *testing.T) {
	h := newHarness(t)

	_, errOut, code := h.run("", "author")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: Provide either a query or --scholar-id\nFix: author 'name' OR author --scholar-id 'ID'\n", errOut)
}

func TestAuthorNoResults(t *testing.T) {
	h := newHarness(t)

	out, _, code := h.run("", "author", "nobody")
	assert.Equal(t, 0, code)
	assert.Equal(t, "No authors found\n", out)
}

// --- books ---

func TestBooksMissingAPIKey(t *testing.T) {
	h := newHarness(t)
	c := newCLI(defaultClients())

	var out, errb bytes.Buffer
	code := run(context.Background(), c, []string{"books", "python"}, strings.NewReader(""), &out, &errb)
	assert.Equal(t, 1, code)
	assert.Contains(t, errb.String(), "GOOGLE_BOOKS_API_KEY environment variable not set")
	assert.Contains(t, errb.String(), "https://console.developers.google.com/")
	assert.Empty(t, h.booksCfg.APIKey)
}

func TestBooksAPIKeyResolution(t *testing.T) {
	t.Run("secrets file", func(t *testing.T) {
		h := newHarness(t)
		writeSecret(t, h.dir, "from-secrets")

		_, _, code := h.run("", "books", "python")
		require.Equal(t, 0, code)
		assert.Equal(t, "from-secrets", h.booksCfg.APIKey)
	})

	t.Run("environment wins over secrets", func(t *testing.T) {
		h := newHarness(t)
		writeSecret(t, h.dir, "from-secrets")
		t.Setenv("GOOGLE_BOOKS_API_KEY", "from-env")

		_, _, code := h.run("", "books", "python")
		require.Equal(t, 0, code)
		assert.Equal(t, "from-env", h.booksCfg.APIKey)
	})

	t.Run("prefixed environment", func(t *testing.T) {
		h := newHarness(t)
		t.Setenv("SCHOLAR_TOOL_BOOKS_API_KEY", "from-prefixed-env")

		_, _, code := h.run("", "books", "python")
		require.Equal(t, 0, code)
		assert.Equal(t, "from-prefixed-env", h.booksCfg.APIKey)
	})
}

func TestBooksCite(t *testing.T) {
	h := newHarness(t)
	h.books.books = []books.Book{
		{Title: "Title", Authors: []string{"Jane Q. Public"}, PublishedDate: "2020-05-01", Publisher: "ACME"},
	}

	for _, tt := range []struct {
		style string
		want  string
	}{
		{"apa", "Public, J. Q. (2020). Title. ACME.\n"},
		{"MLA", "Public, Jane Q. Title. ACME, 2020.\n"},
		{"chicago", "Public, Jane Q. Title. ACME, 2020.\n"},
		{"harvard", "Public, J.Q. (2020) Title. ACME.\n"},
	} {
		t.Run(tt.style, func(t *testing.T) {
			out, _, code := h.run("", "books", "title", "--cite", tt.style)
			require.Equal(t, 0, code)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestBooksLimitAndText(t *testing.T) {
	h := newHarness(t)
	h.books.books = []books.Book{
		{Title: "One", Authors: []string{}, Categories: []string{}},
		{Title: "Two", Authors: []string{}, Categories: []string{}},
		{Title: "Three", Authors: []string{}, Categories: []string{}},
	}

	out, _, code := h.run("", "books", "numbers", "-l", "2")
	require.Equal(t, 0, code)
	assert.Equal(t, 2, h.books.gotLimit)
	assert.Equal(t, "\n1. One\n\n2. Two\n", out)
}

func TestBooksCSL(t *testing.T) {
	h := newHarness(t)
	h.books.books = []books.Book{{Title: "Republic", Authors: []string{"Plato"}, ISBN13: "9780140455113"}}

	out, _, code := h.run("", "books", "republic", "--csl")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "- id: \"9780140455113\"\n")
	assert.Contains(t, out, "type: book")
	assert.Contains(t, out, "literal: Plato")
}

func TestBooksMissingQuery(t *testing.T) {
	h := newHarness(t)

	_, errOut, code := h.run("", "books")
	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: Missing query argument\nFix: Provide a search query, e.g.: scholar-tool books 'python'\n", errOut)
}

// --- root ---

func TestVersion(t *testing.T) {
	h := newHarness(t)

	out, _, code := h.run("", "version")
	require.Equal(t, 0, code)
	assert.Equal(t, "scholar-tool dev\n", out)

	out, _, code = h.run("", "--version")
	require.Equal(t, 0, code)
	assert.Equal(t, "scholar-tool dev\n", out)
}

func TestConfigFile(t *testing.T) {
	h := newHarness(t)
	cfg := filepath.Join(h.dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("http:\n  timeout: 5s\nscholar:\n  base_url: http://localhost:9999\n  delay: 250ms\n"), 0o644))

	_, _, code := h.run("", "--config", cfg, "search", "x")
	require.Equal(t, 0, code)
	assert.Equal(t, "http://localhost:9999", h.scholarCfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, h.scholarCfg.Delay)
	assert.Equal(t, 5*time.Second, h.scholarCfg.Timeout)
}

func TestConfigDefaults(t *testing.T) {
	h := newHarness(t)

	_, _, code := h.run("", "search", "x")
	require.Equal(t, 0, code)
	assert.Equal(t, scholar.DefaultBaseURL, h.scholarCfg.BaseURL)
	assert.Equal(t, defaultDelay, h.scholarCfg.Delay)
	assert.Equal(t, defaultTimeout, h.scholarCfg.Timeout)
	assert.Equal(t, defaultUserAgent, h.scholarCfg.UserAgent)
}

func TestMissingConfigFile(t *testing.T) {
	h := newHarness(t)

	_, errOut, code := h.run("", "--config", "nope.yaml", "search", "x")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "reading config")
}

func TestUnknownFlag(t *testing.T) {
	h := newHarness(t)

	_, errOut, code := h.run("", "search", "x", "--bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error: unknown flag: --bogus")
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		verbose int
		quiet   bool
		want    slog.Level
	}{
		{"default", 0, false, slog.LevelWarn},
		{"verbose", 1, false, slog.LevelInfo},
		{"very verbose", 2, false, slog.LevelDebug},
		{"quiet", 0, true, slog.LevelError},
		{"quiet wins", 2, true, slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := newLogger(&bytes.Buffer{}, tt.verbose, tt.quiet)
			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tt.want))
			assert.False(t, logger.Enabled(ctx, tt.want-1))
		})
	}
}

func TestUsageErrorIsPlainError(t *testing.T) {
	var err error = &usageError{msg: "m", fix: "f"}
	var ue *usageError
	assert.True(t, errors.As(err, &ue))
	assert.Equal(t, "m", err.Error())
}

func writeSecret(t *testing.T, dir, value string) {
	t.Helper()
	sdir := filepath.Join(dir, secrets.DefaultDir)
	require.NoError(t, os.MkdirAll(sdir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sdir, secrets.BooksAPIKey), []byte(value+"\n"), 0o600))
}
