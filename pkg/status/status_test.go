package status

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/copytree/pkg/copier"
)

// 🧪 TestFormatEvent tests event line formatting
func TestFormatEvent(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name        string
		ev          copier.Event
		want        string
		description string
	}{
		{
			name:        "directory_created",
			ev:          copier.Event{Action: copier.ActionDir, Path: "pkg"},
			want:        fmt.Sprintf("    • %-35s %-12s", "pkg", "dir"),
			description: "should show dir symbol and label",
		},
		{
			name:        "file_copied",
			ev:          copier.Event{Action: copier.ActionFile, Path: "pkg/a.go"},
			want:        fmt.Sprintf("    ✓ %-35s %-12s", "pkg/a.go", "file"),
			description: "should show file symbol and label",
		},
		{
			name:        "link_kept",
			ev:          copier.Event{Action: copier.ActionLink, Path: "link", Target: "pkg"},
			want:        fmt.Sprintf("    ↪ %-35s %-12s", "link -> pkg", "link"),
			description: "should show the link target for kept links",
		},
		{
			name:        "link_materialized_as_file",
			ev:          copier.Event{Action: copier.ActionMaterializedFile, Path: "ext"},
			want:        fmt.Sprintf("    ⟳ %-35s %-12s", "ext", "materialized"),
			description: "should show materialization symbol for resolved files",
		},
		{
			name:        "link_materialized_as_dir",
			ev:          copier.Event{Action: copier.ActionMaterializedDir, Path: "ext_dir"},
			want:        fmt.Sprintf("    ⟳ %-35s %-12s", "ext_dir", "materialized"),
			description: "should show materialization symbol for resolved dirs",
		},
		{
			name:        "entry_skipped",
			ev:          copier.Event{Action: copier.ActionSkipped, Path: "ignored.tmp"},
			want:        fmt.Sprintf("    - %-35s %-12s", "ignored.tmp", "skipped"),
			description: "should show skip symbol for excluded entries",
		},
		{
			name:        "long_path_not_truncated",
			ev:          copier.Event{Action: copier.ActionFile, Path: strings.Repeat("x", 50)},
			want:        fmt.Sprintf("    ✓ %-35s %-12s", strings.Repeat("x", 50), "file"),
			description: "should keep long paths intact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatEvent(tt.ev)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

// 🧪 TestConsole tests event printing, counting, and the summary line
func TestConsole(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	console := NewConsole(&buf)
	ctx := context.Background()

	console.OnEvent(ctx, copier.Event{Action: copier.ActionDir, Path: "pkg"})
	console.OnEvent(ctx, copier.Event{Action: copier.ActionFile, Path: "pkg/a.go"})
	console.OnEvent(ctx, copier.Event{Action: copier.ActionFile, Path: "pkg/b.go"})
	console.OnEvent(ctx, copier.Event{Action: copier.ActionLink, Path: "link", Target: "pkg"})
	console.OnEvent(ctx, copier.Event{Action: copier.ActionMaterializedFile, Path: "ext"})
	console.OnEvent(ctx, copier.Event{Action: copier.ActionSkipped, Path: "ignored.tmp"})

	assert.Equal(t, 1, console.Count(copier.ActionDir), "should count directories")
	assert.Equal(t, 2, console.Count(copier.ActionFile), "should count files")
	assert.Equal(t, 0, console.Count(copier.ActionMaterializedDir), "should report zero for unseen actions")

	assert.Equal(t,
		"1 dirs, 2 files, 1 links kept, 1 links materialized, 1 skipped",
		console.Summary(),
		"summary should aggregate both materialization kinds")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6, "should print one line per event")
	assert.Contains(t, lines[0], "pkg")
	assert.Contains(t, lines[3], "link -> pkg")
}

// 🧪 TestReporter tests job-level banners
func TestReporter(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	t.Run("start_and_done", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(ctx, &buf)

		reporter.StartJob("docs", "/src/docs", "/dst/docs")
		reporter.JobDone("docs", "1 dirs, 2 files, 0 links kept, 0 links materialized, 0 skipped")

		out := buf.String()
		assert.Contains(t, out, "docs: /src/docs -> /dst/docs", "banner should name the job and paths")
		assert.Contains(t, out, "1 dirs, 2 files", "done line should carry the summary")
	})

	t.Run("failed", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := NewReporter(ctx, &buf)

		reporter.JobFailed("docs", errors.New("creating destination: file exists"))

		out := buf.String()
		assert.Contains(t, out, "docs", "failure line should name the job")
		assert.Contains(t, out, "creating destination: file exists", "failure line should carry the error")
	})
}
