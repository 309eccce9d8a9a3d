package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewDotCommand creates the dot command.
func NewDotCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dot <problem.yaml>",
		Short: "Export the contractor network as a Graphviz graph",
		Long: `Write the network of a problem file in DOT format: domains as boxes,
contractors as circles. Render it with: fdp -Tpdf -o net.pdf net.dot`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := engineConfig(cmd, rootOpts, nil)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			p, in, err := buildInstance(cfg, rootOpts, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return WrapExitError(ExitCommandError, "cannot create output", err)
				}
				defer f.Close()
				w = f
			}
			if err := in.Network.WriteDOT(w, p.Name); err != nil {
				return err
			}
			if output != "" {
				rootOpts.logger.Info().Str("file", output).Msg("graph written")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
