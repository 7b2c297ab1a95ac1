// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-tool CLI: Google Scholar
// publication and author search plus Google Books lookups with citation
// output.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-tool/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// usageError is missing or conflicting input. It is reported as an
// "Error:" line followed by a "Fix:" line.
type usageError struct {
	msg string
	fix string
}

func (e *usageError) Error() string { return e.msg }

// cli holds the state shared by all subcommands of one invocation.
type cli struct {
	v       *viper.Viper
	secrets secrets.Secrets
	clients clientFactory

	cfgFile string
	verbose int
	quiet   bool
}

func newCLI(clients clientFactory) *cli {
	return &cli{v: viper.New(), clients: clients}
}

// newRootCmd builds the command tree.
func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "scholar-tool",
		Short: "Query Google Scholar and Google Books from the command line",
		Long: `scholar-tool searches Google Scholar for publications and authors and
Google Books for volumes. Publication searches accept raw Scholar query syntax
(AND, OR, "exact phrases", -exclusions, intitle:) or build it from flags.

Examples:
  scholar-tool search "machine learning"
  scholar-tool search '"HRM" AND "job satisfaction" intitle:"Netherlands"'
  scholar-tool author "Albert Einstein"
  scholar-tool books "python programming" --cite apa`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), c.verbose, c.quiet))
			if err := c.initConfig(); err != nil {
				return err
			}
			s, err := secrets.Load(secrets.DefaultDir)
			if err != nil {
				return err
			}
			c.secrets = s
			if len(s) > 0 {
				slog.Info("loaded secrets", slog.Any("keys", s.Keys()))
			}
			return nil
		},
	}
	root.SetVersionTemplate("scholar-tool {{.Version}}\n")

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ./scholar-tool.yaml or ~/.config/scholar-tool/scholar-tool.yaml)")
	root.PersistentFlags().CountVarP(&c.verbose, "verbose", "v", "verbose logging (-v info, -vv debug)")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "suppress everything except results and errors")

	root.AddCommand(
		newSearchCmd(c),
		newAuthorCmd(c),
		newBooksCmd(c),
		newVersionCmd(),
	)
	return root
}

// newLogger returns a text logger on w: warn by default, info with -v,
// debug with -vv, error only with -q.
func newLogger(w io.Writer, verbose int, quiet bool) *slog.Logger {
	level := &slog.LevelVar{}
	switch {
	case quiet:
		level.Set(slog.LevelError)
	case verbose >= 2:
		level.Set(slog.LevelDebug)
	case verbose == 1:
		level.Set(slog.LevelInfo)
	default:
		level.Set(slog.LevelWarn)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, c *cli, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "Error: %s\nFix: %s\n", ue.msg, ue.fix)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func main() {
	// Variables already present in the environment win over both files.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, newCLI(defaultClients()), os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
