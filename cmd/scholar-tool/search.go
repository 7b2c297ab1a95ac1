// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-tool/internal/render"
	"github.com/pdiddy/scholar-tool/internal/scholar"
	"github.com/pdiddy/scholar-tool/internal/stream"
	"github.com/pdiddy/scholar-tool/pkg/types"
)

func newSearchCmd(c *cli) *cobra.Command {
	var (
		parts     scholar.QueryParts
		opts      scholar.SearchOptions
		sort      string
		fromStdin bool
		save      string
		out       outputFlags
	)

	cmd := &cobra.Command{
		Use:   "search [QUERY]",
		Short: "Search Google Scholar for publications",
		Long: `Search queries Google Scholar for publications. The query is passed through
as raw Scholar syntax (AND, OR, "exact phrase", -term, intitle:"...") unless
--exact, --exclude or --intitle is given; then the query is split on " OR "
and combined with the flags into a Boolean query.

Examples:
  scholar-tool search "machine learning"
  scholar-tool search "HRM OR human resource management" --exact "job satisfaction" --intitle "the Netherlands"
  scholar-tool search "deep learning" --year-start 2020 --year-end 2024
  scholar-tool search "transformers" --sort date --limit 5
  scholar-tool search "AI" --json-output --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := out.mode()
			if err != nil {
				return err
			}
			switch scholar.Sort(strings.ToLower(sort)) {
			case scholar.SortRelevance:
				opts.Sort = scholar.SortRelevance
			case scholar.SortDate:
				opts.Sort = scholar.SortDate
			default:
				return fmt.Errorf("invalid --sort %q: use relevance or date", sort)
			}

			query, err := readQuery(cmd, args, fromStdin, "echo 'query' | scholar-tool search --stdin")
			if err != nil {
				return err
			}
			if query == "" {
				return &usageError{
					msg: "Missing query argument",
					fix: "Provide a search query, e.g.: scholar-tool search 'machine learning'",
				}
			}

			final := query
			if len(parts.ExactPhrases) > 0 || len(parts.ExcludeTerms) > 0 || parts.InTitle != "" {
				parts.Terms = scholar.SplitTerms(query)
				final = scholar.BuildQuery(parts)
			}
			slog.Info("executing search", slog.String("query", final))

			client, err := c.clients.scholar(c.scholarConfig())
			if err != nil {
				return err
			}
			results, err := stream.Collect(client.SearchPublications(cmd.Context(), final, opts))
			if err != nil {
				return err
			}

			if save != "" {
				if err := scholar.WriteQueryFile(save, scholar.NewQueryFile(query, parts, final, opts, results)); err != nil {
					return err
				}
				slog.Info("saved search", slog.String("path", save), slog.Int("results", len(results)))
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
				return render.CSL(w, render.PublicationItems(results))
			case types.OutputCite:
				return render.Citations(w, out.style, results)
			default:
				return textRenderer(cmd).Publications(w, results)
			}
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&parts.ExactPhrases, "exact", "e", nil, "exact phrase to include (repeatable)")
	f.StringArrayVarP(&parts.ExcludeTerms, "exclude", "x", nil, "term to exclude (repeatable)")
	f.StringVarP(&parts.InTitle, "intitle", "t", "", "text that must appear in the title")
	f.IntVarP(&opts.Limit, "limit", "l", 10, "maximum results to return")
	f.IntVar(&opts.YearStart, "year-start", 0, "only results published in or after this year")
	f.IntVar(&opts.YearEnd, "year-end", 0, "only results published in or before this year")
	f.StringVar(&sort, "sort", string(scholar.SortRelevance), "sort by relevance or date (newest first)")
	f.BoolVarP(&fromStdin, "stdin", "s", false, "read the query from stdin")
	f.StringVar(&save, "save", "", "write the query and results to a YAML file")
	out.register(cmd, true)

	return cmd
}
