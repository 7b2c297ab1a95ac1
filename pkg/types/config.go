// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines configuration structures shared by the scholar-tool
// clients and the CLI.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by both upstream clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ScholarConfig holds settings for the Google Scholar scraper.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the Scholar site root (default https://scholar.google.com).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Delay is the pause colly inserts between consecutive page requests.
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay"`
}

// BooksConfig holds settings for the Google Books REST client.
type BooksConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the volumes endpoint (default https://www.googleapis.com/books/v1/volumes).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIKey authenticates requests. Required.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// RequestsPerSecond caps the outgoing request rate (default 5).
	RequestsPerSecond int `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// MaxRetries bounds the HTTP 429 retries (0 uses the httputil default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// OutputMode selects how results are rendered.
type OutputMode string

const (
	OutputText OutputMode = "text"
	OutputJSON OutputMode = "json"
	OutputCite OutputMode = "cite"
	OutputCSL  OutputMode = "csl"
)
