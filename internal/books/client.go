// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package books

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/scholar-tool/internal/httputil"
	"github.com/pdiddy/scholar-tool/pkg/types"
)

// DefaultBaseURL is the Google Books volumes endpoint.
const DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

// maxPageSize is the largest maxResults the volumes API accepts.
const maxPageSize = 40

// ErrMissingAPIKey reports that no Google Books API key was configured.
var ErrMissingAPIKey = errors.New("GOOGLE_BOOKS_API_KEY environment variable not set. " +
	"Get an API key from https://console.developers.google.com/")

// Client queries the Google Books volumes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient builds a client from cfg. It fails with ErrMissingAPIKey when
// cfg carries no key.
func NewClient(cfg types.BooksConfig, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if httpClient == nil {
		httpClient = httputil.NewClient(cfg.HTTPConfig)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: cfg.MaxRetries,
	}, nil
}

// Search returns the volumes matching query. The request is sent when the
// sequence is first iterated; at most min(limit, 40) volumes are requested.
func (c *Client) Search(ctx context.Context, query string, limit int) iter.Seq2[Book, error] {
	return func(yield func(Book, error) bool) {
		books, err := c.fetch(ctx, query, limit)
		if err != nil {
			yield(Book{}, err)
			return
		}
		for _, b := range books {
			if !yield(b, nil) {
				return
			}
		}
	}
}

func (c *Client) fetch(ctx context.Context, query string, limit int) ([]Book, error) {
	pageSize := min(limit, maxPageSize)
	if pageSize <= 0 {
		pageSize = 10
	}

	params := url.Values{
		"q":          {query},
		"key":        {c.apiKey},
		"maxResults": {strconv.Itoa(pageSize)},
	}
	reqURL := c.baseURL + "?" + params.Encode()

	slog.Info("searching books", slog.String("query", query), slog.Int("limit", limit))
	slog.Debug("books request", slog.String("url", strings.ReplaceAll(reqURL, url.QueryEscape(c.apiKey), "***")))

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("Google Books API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Books API returned HTTP %d", resp.StatusCode)
	}

	var vr volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("parsing Google Books response: %w", err)
	}

	slog.Info("found books", slog.Int("count", len(vr.Items)))

	books := make([]Book, 0, len(vr.Items))
	for _, item := range vr.Items {
		b := toBook(item.VolumeInfo)
		slog.Debug("found book", slog.String("title", b.Title), slog.String("authors", strings.Join(b.Authors, ", ")))
		books = append(books, b)
	}
	return books, nil
}

// toBook applies the field fallbacks at the response boundary.
func toBook(v volumeInfo) Book {
	b := Book{
		Title:         v.Title,
		Authors:       v.Authors,
		Publisher:     v.Publisher,
		PublishedDate: v.PublishedDate,
		Description:   v.Description,
		PageCount:     v.PageCount,
		Categories:    v.Categories,
		PreviewLink:   v.PreviewLink,
		InfoLink:      v.InfoLink,
	}
	if b.Title == "" {
		b.Title = "Unknown"
	}
	if b.Authors == nil {
		b.Authors = []string{}
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	b.ISBN10, b.ISBN13 = extractISBNs(v.IndustryIdentifiers)
	return b
}

// extractISBNs picks the ISBN-10 and ISBN-13 identifiers by type tag. A later
// identifier of the same type replaces an earlier one.
func extractISBNs(ids []industryIdentifier) (isbn10, isbn13 string) {
	for _, id := range ids {
		switch id.Type {
		case "ISBN_10":
			isbn10 = id.Identifier
		case "ISBN_13":
			isbn13 = id.Identifier
		}
	}
	return isbn10, isbn13
}

// Google Books API JSON structures.
type volumesResponse struct {
	TotalItems int          `json:"totalItems"`
	Items      []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	PreviewLink         string               `json:"previewLink"`
	InfoLink            string               `json:"infoLink"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}
