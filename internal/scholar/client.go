// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar builds Google Scholar queries and scrapes publication and
// author results into typed records.
package scholar

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"

	"github.com/pdiddy/scholar-tool/internal/stream"
	"github.com/pdiddy/scholar-tool/pkg/types"
)

// DefaultBaseURL is the Google Scholar site root.
const DefaultBaseURL = "https://scholar.google.com"

// pageSize is the number of results Scholar serves per page.
const pageSize = 10

// ErrBlocked reports that Scholar refused the request (CAPTCHA page, HTTP 403
// or HTTP 429).
var ErrBlocked = errors.New("google scholar blocked the request")

// errAuthorNotFound is returned by the profile scrape when the page carries
// no author name.
var errAuthorNotFound = errors.New("author profile not found")

// Sort orders publication results.
type Sort string

const (
	SortRelevance Sort = "relevance"
	SortDate      Sort = "date"
)

// SearchOptions narrows a publication search.
type SearchOptions struct {
	// Limit caps the number of results; no page beyond it is requested.
	Limit int
	// YearStart and YearEnd bound the publication year (0 = unbounded).
	YearStart int
	YearEnd   int
	Sort      Sort
}

// Client scrapes Google Scholar with a colly collector. Pages are fetched
// synchronously, one at a time, as the caller consumes results.
type Client struct {
	collector *colly.Collector
	baseURL   string
}

// NewClient builds a scraper from cfg.
func NewClient(cfg types.ScholarConfig) (*Client, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	opts := []colly.CollectorOption{colly.AllowURLRevisit()}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}
	collector := colly.NewCollector(opts...)
	if cfg.Timeout > 0 {
		collector.SetRequestTimeout(cfg.Timeout)
	}
	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       cfg.Delay,
	}); err != nil {
		return nil, fmt.Errorf("configure rate limits: %w", err)
	}

	return &Client{collector: collector, baseURL: baseURL}, nil
}

// SearchPublications returns up to opts.Limit publications matching query.
// Result pages are requested lazily; once the limit is reached no further
// page is fetched.
func (c *Client) SearchPublications(ctx context.Context, query string, opts SearchOptions) iter.Seq2[Publication, error] {
	slog.Info("searching publications", slog.String("query", query), slog.Int("limit", opts.Limit))

	pages := func(start int) string {
		params := url.Values{
			"q":  {query},
			"hl": {"en"},
		}
		if start > 0 {
			params.Set("start", strconv.Itoa(start))
		}
		if opts.YearStart > 0 {
			params.Set("as_ylo", strconv.Itoa(opts.YearStart))
		}
		if opts.YearEnd > 0 {
			params.Set("as_yhi", strconv.Itoa(opts.YearEnd))
		}
		if opts.Sort == SortDate {
			params.Set("scisbd", "1")
		}
		return c.baseURL + "/scholar?" + params.Encode()
	}

	seq := paginate(ctx, c, pages, "div.gs_r.gs_or.gs_scl", parsePublication)
	return logCount(stream.Limit(seq, opts.Limit), "found publications")
}

// SearchAuthors returns up to limit author profiles matching query.
func (c *Client) SearchAuthors(ctx context.Context, query string, limit int) iter.Seq2[Author, error] {
	slog.Info("searching authors", slog.String("query", query), slog.Int("limit", limit))

	pages := func(start int) string {
		params := url.Values{
			"view_op":  {"search_authors"},
			"mauthors": {query},
			"hl":       {"en"},
		}
		if start > 0 {
			params.Set("astart", strconv.Itoa(start))
		}
		return c.baseURL + "/citations?" + params.Encode()
	}

	seq := paginate(ctx, c, pages, "div.gsc_1usr", parseAuthorHit)
	return logCount(stream.Limit(seq, limit), "found authors")
}

// AuthorByID fetches the full profile for a Scholar author identifier. Any
// failure (network error, block page, missing profile, malformed page) is
// logged and reported as nil.
func (c *Client) AuthorByID(ctx context.Context, scholarID string) (author *Author) {
	slog.Info("getting author details", slog.String("scholar_id", scholarID))

	defer func() {
		if r := recover(); r != nil {
			slog.Error("failed to get author details", slog.Any("error", r))
			author = nil
		}
	}()

	a, err := c.fetchProfile(ctx, scholarID)
	if err != nil {
		slog.Error("failed to get author details", slog.String("scholar_id", scholarID), slog.Any("error", err))
		return nil
	}
	return a
}

func (c *Client) fetchProfile(ctx context.Context, scholarID string) (*Author, error) {
	params := url.Values{
		"user": {scholarID},
		"hl":   {"en"},
	}
	u := c.baseURL + "/citations?" + params.Encode()

	var (
		a     Author
		found bool
	)
	err := c.visit(ctx, u, func(col *colly.Collector) {
		col.OnHTML("div#gsc_prf_i", func(e *colly.HTMLElement) {
			found = true
			parseProfileHeader(e, &a)
		})
		col.OnHTML("table#gsc_rsb_st", func(e *colly.HTMLElement) {
			parseProfileStats(e, &a)
		})
	})
	if err != nil {
		return nil, err
	}
	if !found || a.Name == "" {
		return nil, fmt.Errorf("%w: %s", errAuthorNotFound, scholarID)
	}
	a.ScholarID = scholarID
	if a.Interests == nil {
		a.Interests = []string{}
	}
	return &a, nil
}

// paginate yields records page by page. It stops when a page comes back
// short, when the consumer stops, or on the first error.
func paginate[T any](ctx context.Context, c *Client, pageURL func(start int) string, selector string, parse func(*colly.HTMLElement) T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for start := 0; ; start += pageSize {
			var page []T
			err := c.visit(ctx, pageURL(start), func(col *colly.Collector) {
				col.OnHTML(selector, func(e *colly.HTMLElement) {
					page = append(page, parse(e))
				})
			})
			if err != nil {
				yield(zero, err)
				return
			}

			for _, item := range page {
				if !yield(item, nil) {
					return
				}
			}
			if len(page) < pageSize {
				return
			}
		}
	}
}

// visit fetches one page with a clone of the base collector so that the
// callbacks registered by register apply to this page only.
func (c *Client) visit(ctx context.Context, u string, register func(*colly.Collector)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	col := c.collector.Clone()
	var (
		blocked bool
		status  int
	)
	col.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	col.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			status = r.StatusCode
		}
	})
	col.OnHTML("#gs_captcha_ccl, form#captcha-form, #recaptcha", func(_ *colly.HTMLElement) {
		blocked = true
	})
	register(col)

	slog.Debug("scholar request", slog.String("url", u))
	if err := col.Visit(u); err != nil {
		if status == http.StatusTooManyRequests || status == http.StatusForbidden {
			return fmt.Errorf("%w: HTTP %d", ErrBlocked, status)
		}
		return fmt.Errorf("google scholar request: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("%w: captcha page", ErrBlocked)
	}
	return nil
}

// logCount wraps seq so the number of yielded items is logged once the
// consumer is done.
func logCount[T any](seq iter.Seq2[T, error], msg string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		count := 0
		defer func() { slog.Info(msg, slog.Int("count", count)) }()
		for v, err := range seq {
			if err == nil {
				count++
			}
			if !yield(v, err) {
				return
			}
		}
	}
}
