package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/asad/ReactionDecoder-sub002/internal/domain/molecule"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

func newMatrixCmd() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "matrix QUERIES TARGETS",
		Short: "Match every graph of one document against every graph of another",
		Long: "matrix reads all graphs from each reference and runs one search per\n" +
			"(query, target) pair on the worker pool.  A failing pair is reported in\n" +
			"its cell and does not fail the run.",
		Args: exactRefs("QUERIES", "TARGETS"),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := GetApp(cmd)
			if err != nil {
				return err
			}
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}

			queries, err := app.Graphs.FindAllByRef(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, errors.CodeUnknown, "loading query graphs").WithDetail(args[0])
			}
			targets, err := app.Graphs.FindAllByRef(cmd.Context(), args[1])
			if err != nil {
				return errors.Wrap(err, errors.CodeUnknown, "loading target graphs").WithDetail(args[1])
			}

			resp, err := app.Mapping.MatchMatrix(cmd.Context(), &mtypes.MatrixRequest{
				Queries: toDTOs(queries),
				Targets: toDTOs(targets),
				Options: opts,
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, app, resp, func(w io.Writer) {
				renderMatrix(w, resp, labels(queries), labels(targets))
			})
		},
	}
	f.register(cmd)
	return cmd
}

func toDTOs(ms []*molecule.Molecule) []mtypes.MoleculeGraphDTO {
	out := make([]mtypes.MoleculeGraphDTO, len(ms))
	for i, m := range ms {
		out[i] = m.ToDTO()
	}
	return out
}

func labels(ms []*molecule.Molecule) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Label()
	}
	return out
}

func renderMatrix(w io.Writer, resp *mtypes.MatrixResponse, queries, targets []string) {
	fmt.Fprintf(w, "run=%s cells=%d failed=%d\n", resp.RunID, len(resp.Cells), resp.Failed)

	rows := make([][]string, 0, len(resp.Cells))
	for _, c := range resp.Cells {
		row := []string{labelAt(queries, c.QueryIndex), labelAt(targets, c.TargetIndex), "-", "-", "-", ""}
		switch {
		case c.Error != nil:
			row[5] = c.Error.Code + " " + c.Error.Message
		case c.Result != nil:
			row[2] = strconv.Itoa(c.Result.Size)
			row[3] = strconv.Itoa(len(c.Result.Mappings))
			row[4] = strconv.FormatBool(c.Result.Timeout)
		}
		rows = append(rows, row)
	}
	fmt.Fprint(w, FormatTable([]string{"QUERY", "TARGET", "SIZE", "MAPPINGS", "TIMEOUT", "ERROR"}, rows))
}

func labelAt(ls []string, i int) string {
	if i >= 0 && i < len(ls) {
		return ls[i]
	}
	return strconv.Itoa(i)
}

//Personal.AI order the ending
