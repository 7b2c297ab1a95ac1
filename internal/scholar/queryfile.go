// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk representation of a publication search and its
// results, so a search can be revisited without scraping Scholar again.
type QueryFile struct {
	Query   QueryParams   `yaml:"query"`
	Options QueryOptions  `yaml:"options"`
	Results []Publication `yaml:"results"`
	Summary QuerySummary  `yaml:"summary"`
}

// QueryParams stores the raw and built query strings.
type QueryParams struct {
	Raw          string   `yaml:"raw"`
	Built        string   `yaml:"built"`
	ExactPhrases []string `yaml:"exact_phrases,omitempty"`
	ExcludeTerms []string `yaml:"exclude_terms,omitempty"`
	InTitle      string   `yaml:"intitle,omitempty"`
}

// QueryOptions stores the search options that produced the results.
type QueryOptions struct {
	Limit     int    `yaml:"limit"`
	YearStart int    `yaml:"year_start,omitempty"`
	YearEnd   int    `yaml:"year_end,omitempty"`
	Sort      string `yaml:"sort"`
}

// QuerySummary stores the result count and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewQueryFile assembles a QueryFile for a finished search.
func NewQueryFile(raw string, parts QueryParts, built string, opts SearchOptions, results []Publication) QueryFile {
	return QueryFile{
		Query: QueryParams{
			Raw:          raw,
			Built:        built,
			ExactPhrases: parts.ExactPhrases,
			ExcludeTerms: parts.ExcludeTerms,
			InTitle:      parts.InTitle,
		},
		Options: QueryOptions{
			Limit:     opts.Limit,
			YearStart: opts.YearStart,
			YearEnd:   opts.YearEnd,
			Sort:      string(opts.Sort),
		},
		Results: results,
		Summary: QuerySummary{
			Total:     len(results),
			Timestamp: time.Now().UTC(),
		},
	}
}

// WriteQueryFile saves qf to path as YAML.
func WriteQueryFile(path string, qf QueryFile) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// SearchOptions converts stored options back into SearchOptions.
func (o QueryOptions) SearchOptions() SearchOptions {
	return SearchOptions{
		Limit:     o.Limit,
		YearStart: o.YearStart,
		YearEnd:   o.YearEnd,
		Sort:      Sort(o.Sort),
	}
}
