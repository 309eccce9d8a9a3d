package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/ctcnet/pkg/ctcnet"
)

// Set by the linker: -ldflags "-X github.com/gitrdm/ctcnet/internal/cli.GitCommit=..."
var (
	GitCommit string
	BuildDate string
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := ctcnet.GetVersionInfo()
			info.GitCommit = GitCommit
			info.BuildDate = BuildDate
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ctcnet %s (%s)\n", info.Version, info.GoVersion)
			return nil
		},
	}
}
