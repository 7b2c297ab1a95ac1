// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-tool/internal/render"
	"github.com/pdiddy/scholar-tool/internal/stream"
	"github.com/pdiddy/scholar-tool/pkg/types"
)

func newBooksCmd(c *cli) *cobra.Command {
	var (
		limit     int
		fromStdin bool
		out       outputFlags
	)

	cmd := &cobra.Command{
		Use:   "books [QUERY]",
		Short: "Search Google Books for volumes",
		Long: `Books searches the Google Books volumes API. An API key is required: set
GOOGLE_BOOKS_API_KEY, books.api_key in the config file, or
.secrets/google-books-api-key.

Content search within books is not available through the API; follow the
preview link to search a volume in Google Books.

Examples:
  scholar-tool books "machine learning"
  scholar-tool books "python programming" --json-output
  scholar-tool books "python programming" --cite apa
  scholar-tool books "machine learning" --cite mla --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := out.mode()
			if err != nil {
				return err
			}
			query, err := readQuery(cmd, args, fromStdin, "echo 'query' | scholar-tool books --stdin")
			if err != nil {
				return err
			}
			if query == "" {
				return &usageError{
					msg: "Missing query argument",
					fix: "Provide a search query, e.g.: scholar-tool books 'python'",
				}
			}

			client, err := c.clients.books(c.booksConfig())
			if err != nil {
				return err
			}
			slog.Info("executing books search", slog.String("query", query))
			results, err := stream.Collect(stream.Limit(client.Search(cmd.Context(), query, limit), limit))
			if err != nil {
				return err
			}

			if len(results) == 0 {
				c.noResults(cmd, "No results found")
				return nil
			}

			w := cmd.OutOrStdout()
			switch mode {
			case types.OutputJSON:
				return render.JSON(w, results)
			case types.OutputCSL:
				return render.CSL(w, render.BookItems(results))
			case types.OutputCite:
				return render.Citations(w, out.style, results)
			default:
				return textRenderer(cmd).Books(w, results)
			}
		},
	}

	f := cmd.Flags()
	f.IntVarP(&limit, "limit", "l", 10, "maximum results to return (the API serves at most 40)")
	f.BoolVarP(&fromStdin, "stdin", "s", false, "read the query from stdin")
	out.register(cmd, true)

	return cmd
}
