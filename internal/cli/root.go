package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mitranim/sqlfrag/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose int
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sqlfrag CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "sqlfrag",
		Short:         "Render composable SQL fragments",
		Long:          "Render SQL templates with nested fragments and array arguments into text with ordinal placeholders.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			logging.SetLogger(logging.Initialize(opts.Verbose, cmd.ErrOrStderr()))
			return nil
		},
	}

	cmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v", "log verbosity, repeat for more")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
