// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"iter"

	"github.com/pdiddy/scholar-tool/internal/books"
	"github.com/pdiddy/scholar-tool/internal/scholar"
	"github.com/pdiddy/scholar-tool/pkg/types"
)

// scholarClient is the subset of *scholar.Client the commands use.
type scholarClient interface {
	SearchPublications(ctx context.Context, query string, opts scholar.SearchOptions) iter.Seq2[scholar.Publication, error]
	SearchAuthors(ctx context.Context, query string, limit int) iter.Seq2[scholar.Author, error]
	AuthorByID(ctx context.Context, scholarID string) *scholar.Author
}

// booksClient is the subset of *books.Client the commands use.
type booksClient interface {
	Search(ctx context.Context, query string, limit int) iter.Seq2[books.Book, error]
}

// clientFactory builds upstream clients from resolved configuration.
type clientFactory struct {
	scholar func(types.ScholarConfig) (scholarClient, error)
	books   func(types.BooksConfig) (booksClient, error)
}

func defaultClients() clientFactory {
	return clientFactory{
		scholar: func(cfg types.ScholarConfig) (scholarClient, error) {
			c, err := scholar.NewClient(cfg)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		books: func(cfg types.BooksConfig) (booksClient, error) {
			c, err := books.NewClient(cfg, nil)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}
