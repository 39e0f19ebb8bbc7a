package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/copytree/cmd/copytree/opts"
)

// stageSource creates a small tree to stage.
func stageSource(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.Mkdir(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "payload.txt"), []byte("payload\n"), 0o644))
	return src
}

// runStaged executes the stage command and returns the root and staged dir
// the child observed.
func runStaged(t *testing.T, args []string) (root, dir string) {
	t.Helper()

	outFile := filepath.Join(t.TempDir(), "seen.txt")
	t.Setenv("STAGE_TEST_OUT", outFile)

	script := `printf '%s\n%s\n' "$COPYTREE_STAGE_ROOT" "$COPYTREE_STAGED_DIR" > "$STAGE_TEST_OUT"`

	var buf bytes.Buffer
	cmd := NewStageCmd(&opts.RootOpts{Out: &buf})
	cmd.SetArgs(append(args, "--", "sh", "-c", script))
	require.NoError(t, cmd.ExecuteContext(testContext(t)))

	seen, err := os.ReadFile(outFile)
	require.NoError(t, err, "the child should have run")
	lines := strings.Split(strings.TrimSpace(string(seen)), "\n")
	require.Len(t, lines, 2)
	return lines[0], lines[1]
}

func TestStageCmd_RunsCommandInStagedTree(t *testing.T) {
	// os.TempDir is the first staging base candidate, so pinning TMPDIR
	// keeps the staging root inside the test's own tree.
	base := t.TempDir()
	t.Setenv("TMPDIR", base)

	src := stageSource(t)
	outFile := filepath.Join(t.TempDir(), "seen.txt")
	t.Setenv("STAGE_TEST_OUT", outFile)

	// The child checks it starts inside the staged copy, then records where
	// the staging lived so the test can verify cleanup.
	script := `
test -f payload.txt || exit 3
test "$(pwd -P)" = "$(cd "$COPYTREE_STAGED_DIR" && pwd -P)" || exit 4
printf '%s\n%s\n' "$COPYTREE_STAGE_ROOT" "$COPYTREE_STAGED_DIR" > "$STAGE_TEST_OUT"
`

	var buf bytes.Buffer
	cmd := NewStageCmd(&opts.RootOpts{Out: &buf})
	cmd.SetArgs([]string{src, "ns", "unit", "--", "sh", "-c", script})
	require.NoError(t, cmd.ExecuteContext(testContext(t)))

	seen, err := os.ReadFile(outFile)
	require.NoError(t, err, "the child should have run")
	lines := strings.Split(strings.TrimSpace(string(seen)), "\n")
	require.Len(t, lines, 2)
	root, dir := lines[0], lines[1]

	assert.Equal(t, base, filepath.Dir(root), "staging root should live under the configured base")
	assert.True(t, strings.HasPrefix(filepath.Base(root), "copytree-"), "root should carry the tool prefix")
	assert.Equal(t, filepath.Join(root, "collections", "ns", "unit"), dir, "staged dir should follow the layout")
	assert.NoDirExists(t, root, "staging root should be removed afterwards")
}

func TestStageCmd_CustomContainer(t *testing.T) {
	base := t.TempDir()
	t.Setenv("TMPDIR", base)

	src := stageSource(t)
	root, dir := runStaged(t, []string{"--container", "ansible_collections", src, "ns", "unit"})

	assert.Equal(t, filepath.Join(root, "ansible_collections", "ns", "unit"), dir)
	assert.NoDirExists(t, root)
}

func TestStageCmd_ChildFailure(t *testing.T) {
	base := t.TempDir()
	t.Setenv("TMPDIR", base)

	src := stageSource(t)

	var buf bytes.Buffer
	cmd := NewStageCmd(&opts.RootOpts{Out: &buf})
	cmd.SetArgs([]string{src, "ns", "unit", "--", "sh", "-c", "exit 7"})
	err := cmd.ExecuteContext(testContext(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `running "sh"`)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries, "staging root should be removed even when the child fails")
}

func TestStageCmd_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no_dash_separator", args: []string{"src", "ns", "unit", "sh"}},
		{name: "too_few_names", args: []string{"src", "ns", "--", "sh"}},
		{name: "no_command", args: []string{"src", "ns", "unit", "--"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewStageCmd(&opts.RootOpts{Out: new(bytes.Buffer)})
			cmd.SetArgs(tt.args)
			err := cmd.ExecuteContext(testContext(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "usage: stage")
		})
	}
}
