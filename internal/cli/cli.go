package cli

import (
	"github.com/specialistvlad/staticpipe/internal/app"
	hclload "github.com/specialistvlad/staticpipe/internal/hcl"
	"github.com/specialistvlad/staticpipe/internal/render"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError marks err as a command-line usage problem (exit code 2).
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// usageArgs wraps a positional argument validator so its failures are usage
// errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// RootOptions holds the global flags shared by all commands.
type RootOptions struct {
	Format    string
	LogLevel  string
	LogFormat string
}

// NewRootCommand creates the root command of the staticpipe CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "staticpipe",
		Short: "Resolve typed pipeline descriptions into executable plans",
		Long: `staticpipe reads pipeline descriptions written in HCL, declares their
columns and producer steps, and resolves them into an ordered plan in which
every column has a concrete name.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Format, "format", "table", "output format (table|markdown|json|yaml)")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "logging level (debug|info|warn|error)")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "log output format (text|json)")

	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewKindsCommand(opts))
	return cmd
}

// newApp validates the flags and builds the application. Logs are written to
// the command's error stream.
func newApp(cmd *cobra.Command, opts *RootOptions, paths, reserved []string) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		Paths:     paths,
		LogFormat: opts.LogFormat,
		LogLevel:  opts.LogLevel,
		Format:    render.Format(opts.Format),
		Reserved:  reserved,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, hclload.NewLoader()), nil
}
