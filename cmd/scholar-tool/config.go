// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-tool/internal/books"
	"github.com/pdiddy/scholar-tool/internal/scholar"
	"github.com/pdiddy/scholar-tool/internal/secrets"
	"github.com/pdiddy/scholar-tool/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// initConfig reads the config file and environment into c.v. A missing
// config file is not an error unless one was named with --config.
func (c *cli) initConfig() error {
	v := c.v
	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.SetConfigName("scholar-tool")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "scholar-tool"))
		}
	}

	v.SetDefault("http.timeout", defaultTimeout)
	v.SetDefault("http.user_agent", defaultUserAgent)
	v.SetDefault("scholar.base_url", scholar.DefaultBaseURL)
	v.SetDefault("scholar.delay", defaultDelay)
	v.SetDefault("books.base_url", books.DefaultBaseURL)
	v.SetDefault("books.requests_per_second", 5)
	v.SetDefault("books.max_retries", 0)

	v.SetEnvPrefix("SCHOLAR_TOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("books.api_key", "GOOGLE_BOOKS_API_KEY", "SCHOLAR_TOOL_BOOKS_API_KEY"); err != nil {
		return fmt.Errorf("binding books.api_key: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	slog.Info("using config file", slog.String("path", v.ConfigFileUsed()))
	return nil
}

func (c *cli) httpConfig() types.HTTPConfig {
	return types.HTTPConfig{
		Timeout:   c.v.GetDuration("http.timeout"),
		UserAgent: c.v.GetString("http.user_agent"),
	}
}

func (c *cli) scholarConfig() types.ScholarConfig {
	return types.ScholarConfig{
		HTTPConfig: c.httpConfig(),
		BaseURL:    c.v.GetString("scholar.base_url"),
		Delay:      c.v.GetDuration("scholar.delay"),
	}
}

// booksConfig resolves the API key from the environment or config file,
// falling back to .secrets/google-books-api-key.
func (c *cli) booksConfig() types.BooksConfig {
	return types.BooksConfig{
		HTTPConfig:        c.httpConfig(),
		BaseURL:           c.v.GetString("books.base_url"),
		APIKey:            c.secrets.Or(secrets.BooksAPIKey, c.v.GetString("books.api_key")),
		RequestsPerSecond: c.v.GetInt("books.requests_per_second"),
		MaxRetries:        c.v.GetInt("books.max_retries"),
	}
}
