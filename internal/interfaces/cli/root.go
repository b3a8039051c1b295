// Package cli implements the mcsmap command tree: one-shot match, matrix and
// uncommon-fragment runs over graph documents, the HTTP server, and cache
// maintenance.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/asad/ReactionDecoder-sub002/internal/infrastructure/monitoring/logging"
	"github.com/asad/ReactionDecoder-sub002/pkg/errors"
	"github.com/asad/ReactionDecoder-sub002/pkg/types/common"
	mtypes "github.com/asad/ReactionDecoder-sub002/pkg/types/molecule"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
	Timeout      time.Duration
}

// Option customises the command tree, mostly for tests.
type Option func(*session)

// WithLogger replaces the logger built from configuration.
func WithLogger(l logging.Logger) Option {
	return func(s *session) { s.logger = l }
}

// cliContextKey is the context key for the App.
type cliContextKey struct{}

// session owns whatever the pre-run hook builds so that Execute can release
// it however the command ends.
type session struct {
	opts   RootOptions
	logger logging.Logger
	app    *App
}

func (s *session) close() {
	if s.app != nil {
		s.app.Close()
		s.app = nil
	}
}

// NewRootCommand creates the root command with all global flags and
// subcommands.
func NewRootCommand(opts ...Option) *cobra.Command {
	cmd, _ := newRoot(opts...)
	return cmd
}

func newRoot(opts ...Option) (*cobra.Command, *session) {
	s := &session{}
	for _, opt := range opts {
		opt(s)
	}

	cmd := &cobra.Command{
		Use:   "mcsmap",
		Short: "Maximum common substructure mapping for molecule graphs",
		Long: "mcsmap finds the maximum common substructure between molecule graphs and\n" +
			"reports every optimal atom mapping, ranked by chemical tie-break filters.\n" +
			"Graphs are read from JSON documents on disk, stdin (-) or s3://bucket/key.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.persistentPreRun(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Wrap(err, errors.CodeInvalidParam, err.Error())
	})

	pf := cmd.PersistentFlags()
	pf.StringVarP(&s.opts.ConfigPath, "config", "c", "", "config file path (default: ./mcsmap.yaml, ~/.mcsmap/mcsmap.yaml, /etc/mcsmap/mcsmap.yaml)")
	pf.StringVar(&s.opts.LogLevel, "log-level", "", "log level (debug, info, warn, error); overrides log.level")
	pf.StringVarP(&s.opts.OutputFormat, "output", "o", string(mtypes.OutputJSON), "output format (json, table)")
	pf.BoolVarP(&s.opts.Verbose, "verbose", "v", false, "shorthand for --log-level debug")
	pf.DurationVar(&s.opts.Timeout, "timeout", 0, "wall-clock limit per search; overrides search.timeout")

	cmd.AddCommand(
		newMatchCmd(),
		newUncommonCmd(),
		newMatrixCmd(),
		newServeCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)
	return cmd, s
}

// persistentPreRun loads configuration, builds the App and stores it in the
// command context.
func (s *session) persistentPreRun(cmd *cobra.Command) error {
	if !mtypes.OutputFormat(s.opts.OutputFormat).IsValid() {
		return errors.Newf(errors.CodeInvalidParam, "unknown output format %q; expected json or table", s.opts.OutputFormat)
	}

	cfg, err := loadConfig(cmd, s.opts)
	if err != nil {
		return err
	}

	logger := s.logger
	if logger == nil {
		logger, err = logging.NewLogger(logging.LogConfig{
			Level:            cfg.Log.Level,
			Format:           cfg.Log.Format,
			OutputPaths:      cfg.Log.OutputPaths,
			ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
		})
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInvalidSearchConfig, "logger initialization failed")
		}
	}

	app, err := NewApp(cfg, logger, cmd.InOrStdin())
	if err != nil {
		return err
	}
	app.Output = mtypes.OutputFormat(s.opts.OutputFormat)
	s.app = app

	cmd.SetContext(context.WithValue(cmd.Context(), cliContextKey{}, app))
	return nil
}

// GetApp extracts the App from a command's context.
func GetApp(cmd *cobra.Command) (*App, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Internal("command context is nil")
	}
	app, ok := ctx.Value(cliContextKey{}).(*App)
	if !ok || app == nil {
		return nil, errors.Internal("application not initialised in command context")
	}
	return app, nil
}

// defaultSearchPaths lists the directories searched for mcsmap.yaml.
func defaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".mcsmap"))
	}
	return append(paths, "/etc/mcsmap")
}

// ─────────────────────────────────────────────────────────────────────────────
// Execution
// ─────────────────────────────────────────────────────────────────────────────

// Execute runs the command tree with args and returns the process exit code:
// 0 on success, 2 when the caller supplied bad input, 1 otherwise.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, opts ...Option) int {
	cmd, s := newRoot(opts...)
	defer s.close()

	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	PrintError(cmd, err)
	if s.opts.OutputFormat == string(mtypes.OutputJSON) {
		_ = printJSON(cmd.OutOrStdout(), common.NewErrorResponse("", err))
	}
	return errors.ExitCodeForCode(errors.GetCode(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// Output helpers
// ─────────────────────────────────────────────────────────────────────────────

// PrintResult writes data in the selected output format.  JSON output wraps
// data in the common response envelope; table output calls table, or falls
// back to JSON when the result has no tabular form.
func PrintResult(cmd *cobra.Command, app *App, data interface{}, table func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if app.Output == mtypes.OutputTable && table != nil {
		table(out)
		return nil
	}
	return printJSON(out, common.NewSuccessResponse("", data))
}

// printJSON outputs data as indented JSON.
func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, widths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// padRight pads s with spaces to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

//Personal.AI order the ending
