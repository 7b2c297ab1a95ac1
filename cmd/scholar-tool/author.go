// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-tool/internal/render"
	"github.com/pdiddy/scholar-tool/internal/scholar"
	"github.com/pdiddy/scholar-tool/internal/stream"
)

func newAuthorCmd(c *cli) *cobra.Command {
	var (
		limit     int
		scholarID string
		fromStdin bool
		out       outputFlags
	)

	cmd := &cobra.Command{
		Use:   "author [QUERY]",
		Short: "Search Google Scholar for authors",
		Long: `Author finds Google Scholar author profiles by name, or fetches one profile
by its Scholar ID. Author search may be rate-limited by Google.

Examples:
  scholar-tool author "Albert Einstein"
  scholar-tool author --scholar-id "XrH4VJUAAAAJ"
  scholar-tool author "John Doe" --json-output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := out.mode(); err != nil {
				return err
			}
			query, err := readQuery(cmd, args, fromStdin, "echo 'name' | scholar-tool author --stdin")
			if err != nil {
				return err
			}
			if query == "" && scholarID == "" {
				return &usageError{
					msg: "Provide either a query or --scholar-id",
					fix: "author 'name' OR author --scholar-id 'ID'",
				}
			}

			client, err := c.clients.scholar(c.scholarConfig())
			if err != nil {
				return err
			}

			var results []scholar.Author
			if scholarID != "" {
				a := client.AuthorByID(cmd.Context(), scholarID)
				if a == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "Author not found")
					return nil
				}
				results = []scholar.Author{*a}
			} else {
				slog.Info("searching for author", slog.String("query", query))
				results, err = stream.Collect(client.SearchAuthors(cmd.Context(), query, limit))
				if err != nil {
					return err
				}
			}

			if len(results) == 0 {
				c.noResults(cmd, "No authors found")
				return nil
			}
			if out.json {
				return render.JSON(cmd.OutOrStdout(), results)
			}
			return textRenderer(cmd).Authors(cmd.OutOrStdout(), results)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&limit, "limit", "l", 5, "maximum results to return")
	f.StringVarP(&scholarID, "scholar-id", "i", "", "get an author by Google Scholar ID")
	f.BoolVarP(&fromStdin, "stdin", "s", false, "read the query from stdin")
	out.register(cmd, false)

	return cmd
}
