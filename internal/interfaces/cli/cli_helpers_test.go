package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asad/ReactionDecoder-sub002/internal/testutil"
	"github.com/asad/ReactionDecoder-sub002/pkg/types/common"
)

// runResult captures one CLI invocation.
type runResult struct {
	code   int
	stdout string
	stderr string
	log    *testutil.MockLogger
}

// writeFile stores content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// writeGraphs stores v as JSON under dir.
func writeGraphs(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return writeFile(t, dir, name, string(b))
}

// emptyConfig writes a config file that keeps every default, so tests never
// pick up a stray mcsmap.yaml.
func emptyConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "mcsmap.yaml", "log:\n  level: info\n")
}

func run(t *testing.T, stdin io.Reader, args ...string) runResult {
	t.Helper()
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	log := testutil.NewMockLogger()
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), args, stdin, &out, &errOut, WithLogger(log))
	return runResult{code: code, stdout: out.String(), stderr: errOut.String(), log: log}
}

func decode[T any](t *testing.T, s string) common.APIResponse[T] {
	t.Helper()
	var env common.APIResponse[T]
	require.NoError(t, json.Unmarshal([]byte(s), &env), s)
	return env
}

//Personal.AI order the ending
