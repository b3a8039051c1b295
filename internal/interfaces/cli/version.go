package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// Skips configuration and infrastructure entirely.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate}
			format, _ := cmd.Flags().GetString("output")
			switch mtypes.OutputFormat(format) {
			case mtypes.OutputTable:
				fmt.Fprintf(cmd.OutOrStdout(), "mcsmap %s (commit: %s, built: %s)\n", info.Version, info.Commit, info.BuildDate)
				return nil
			case mtypes.OutputJSON:
				return PrintResult(cmd, &App{Output: mtypes.OutputJSON}, info, nil)
			default:
				return errors.Newf(errors.CodeInvalidParam, "unknown output format %q; expected json or table", format)
			}
		},
	}
}

//Personal.AI order the ending
