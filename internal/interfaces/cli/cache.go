package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
)

// PurgeResult reports how many cached results were removed.
type PurgeResult struct {
	Removed int64 `json:"removed"`
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the result cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Remove every cached match result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			if app.Cache == nil {
				return errors.InvalidParam("result cache is disabled; set redis.enabled to use it")
			}

			n, err := app.Cache.Purge(cmd.Context())
			if err != nil {
				return err
			}
			app.Logger.Info("result cache purged", logging.Int64("removed", n))

			res := PurgeResult{Removed: n}
			return PrintResult(cmd, app, res, func(w io.Writer) {
				fmt.Fprintf(w, "removed %d cached results\n", n)
			})
		},
	})
	return cmd
}

//Personal.AI order the ending
