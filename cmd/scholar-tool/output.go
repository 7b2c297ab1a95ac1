// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-tool/internal/cite"
	"github.com/pdiddy/scholar-tool/internal/render"
	"github.com/pdiddy/scholar-tool/pkg/types"
)

// outputFlags are the rendering flags shared by the search commands.
type outputFlags struct {
	json  bool
	cite  string
	csl   bool
	style cite.Style
}

// register adds the output flags to cmd. Commands without citation support
// pass withCite=false.
func (o *outputFlags) register(cmd *cobra.Command, withCite bool) {
	cmd.Flags().BoolVarP(&o.json, "json-output", "j", false, "output results as JSON")
	if withCite {
		cmd.Flags().StringVarP(&o.cite, "cite", "c", "", "output citations in style: "+strings.Join(cite.StyleNames(), ", "))
		cmd.Flags().BoolVar(&o.csl, "csl", false, "output results as CSL-YAML")
	}
}

// mode picks the output mode; JSON wins over CSL, CSL over citations. An
// unknown citation style is an error even when another mode wins.
func (o *outputFlags) mode() (types.OutputMode, error) {
	if o.cite != "" {
		style, err := cite.ParseStyle(o.cite)
		if err != nil {
			return "", err
		}
		o.style = style
	}
	switch {
	case o.json:
		return types.OutputJSON, nil
	case o.csl:
		return types.OutputCSL, nil
	case o.cite != "":
		return types.OutputCite, nil
	default:
		return types.OutputText, nil
	}
}

// readQuery returns the positional query, or the trimmed contents of stdin
// when --stdin is set. An interactive terminal on stdin counts as no input.
func readQuery(cmd *cobra.Command, args []string, fromStdin bool, fix string) (string, error) {
	if !fromStdin {
		if len(args) > 0 {
			return strings.TrimSpace(args[0]), nil
		}
		return "", nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", &usageError{msg: "--stdin specified but no input provided", fix: fix}
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// textRenderer returns the text renderer for cmd's output stream.
func textRenderer(cmd *cobra.Command) render.Text {
	return render.Text{Links: render.LinksSupported(cmd.OutOrStdout())}
}

// noResults prints msg unless -q was given.
func (c *cli) noResults(cmd *cobra.Command, msg string) {
	if !c.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), msg)
	}
}
