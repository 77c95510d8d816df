package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mitranim/sqlfrag"
	"github.com/mitranim/sqlfrag/internal/logging"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Args  string // path to YAML arguments
	Start int    // first placeholder ordinal
}

// RenderResult is the flattened query.
type RenderResult struct {
	Text string `json:"text"`
	Args []any  `json:"args"`
	Next int    `json:"next"`

	start int
}

// String formats the query followed by one line per argument.
func (r RenderResult) String() string {
	var buf strings.Builder
	buf.WriteString(r.Text)
	buf.WriteString("\n")
	if len(r.Args) > 0 {
		buf.WriteString("\n")
	}
	for ind, arg := range r.Args {
		fmt.Fprintf(&buf, "$%d = %#v\n", r.start+ind, arg)
	}
	return buf.String()
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <template.sql>",
		Short: "Flatten a SQL template into text and arguments",
		Long: `Flatten a SQL template into text with ordinal placeholders and a list of arguments.

The template may use either ordinal parameters such as $1, or named parameters
such as :name. Arguments are read from a YAML file: a sequence for ordinal
parameters, a mapping for named ones. Argument values may be nested fragments:

  - sql: name = $1
    args: [one]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Args, "args", "a", "", "path to YAML file with template arguments")
	cmd.Flags().IntVar(&opts.Start, "start", 1, "ordinal of the first placeholder")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if opts.Start < 1 {
		return reportError(formatter, ExitCommandError, ErrCodeBadArgs,
			fmt.Errorf("--start must be at least 1, got %d", opts.Start))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return reportError(formatter, ExitCommandError, ErrCodeNotFound, err)
	}

	args, err := LoadArgs(opts.Args)
	if err != nil {
		code := ErrCodeNotFound
		var argsErr *ArgsError
		if errors.As(err, &argsErr) {
			code = ErrCodeBadArgs
		}
		return reportError(formatter, ExitCommandError, code, err)
	}

	logging.L.Debug("loaded template",
		zap.String("path", path),
		zap.Int("ordinal_args", len(args.List)),
		zap.Int("named_args", len(args.Dict)))

	frag, err := BuildFrag(string(src), args)
	if err != nil {
		var fragErr sqlfrag.Err
		if errors.As(err, &fragErr) {
			return reportError(formatter, ExitFailure, string(fragErr.Code), err)
		}
		return reportError(formatter, ExitFailure, ErrCodeGeneric, err)
	}

	query, next := sqlfrag.Flatten(frag, opts.Start)

	logging.L.Debug("rendered query",
		zap.Int("args", len(query.Args)),
		zap.Int("next", next))

	return formatter.Success(RenderResult{
		Text:  query.Text,
		Args:  query.Args,
		Next:  next,
		start: opts.Start,
	})
}

func reportError(formatter *OutputFormatter, exitCode int, code string, err error) error {
	if outErr := formatter.Error(code, err.Error()); outErr != nil {
		return outErr
	}
	return WrapExitError(exitCode, "render failed", err)
}
