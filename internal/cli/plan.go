package cli

import "github.com/spf13/cobra"

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	var reserved []string

	cmd := &cobra.Command{
		Use:   "plan PATH...",
		Short: "Resolve pipeline descriptions and print the plan",
		Long: `Load every .hcl file found at the given paths, resolve the declared
outputs and print the steps in execution order, each with its bound input and
output column names.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts, args, reserved)
			if err != nil {
				return err
			}
			return a.Plan(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVar(&reserved, "reserve", nil, "column name that generated names must avoid (repeatable)")
	return cmd
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the step kinds descriptions can use",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, rootOpts, nil, nil)
			if err != nil {
				return err
			}
			return a.Kinds()
		},
	}
}
