package copier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestIsInternal tests the lexical inside/outside classification
func TestIsInternal(t *testing.T) {
	tests := []struct {
		name    string
		baseDir string
		target  string
		want    bool
		reason  string
	}{
		{
			name:    "plain_name_at_root",
			baseDir: "",
			target:  "foo",
			want:    true,
			reason:  "sibling entries stay inside",
		},
		{
			name:    "nested_path_at_root",
			baseDir: "",
			target:  "foo/bar",
			want:    true,
			reason:  "descending never escapes",
		},
		{
			name:    "updown_within_root",
			baseDir: "",
			target:  "foo/../bar",
			want:    true,
			reason:  "dipping into .. and back is still inside",
		},
		{
			name:    "updown_past_root",
			baseDir: "",
			target:  "foo/../../bar",
			want:    false,
			reason:  "one level too far up escapes",
		},
		{
			name:    "bare_parent_at_root",
			baseDir: "",
			target:  "..",
			want:    false,
			reason:  "the root's parent is outside",
		},
		{
			name:    "parent_then_down_at_root",
			baseDir: "",
			target:  "../foo/bar",
			want:    false,
			reason:  "anything through the root's parent is outside",
		},
		{
			name:    "dot_in_subdir",
			baseDir: "foo",
			target:  ".",
			want:    true,
			reason:  "the containing directory itself is inside",
		},
		{
			name:    "sibling_in_subdir",
			baseDir: "foo",
			target:  "bar",
			want:    true,
			reason:  "entries next to the link are inside",
		},
		{
			name:    "one_up_from_subdir",
			baseDir: "foo",
			target:  "../bar",
			want:    true,
			reason:  "one level up from a subdir is still the root",
		},
		{
			name:    "two_up_from_subdir",
			baseDir: "foo",
			target:  "../../bar",
			want:    false,
			reason:  "two levels up from a first-level subdir escapes",
		},
		{
			name:    "bare_parent_from_subdir",
			baseDir: "foo",
			target:  "..",
			want:    true,
			reason:  "a subdir's parent is the root itself",
		},
		{
			name:    "absolute_target",
			baseDir: "",
			target:  string(filepath.Separator) + filepath.Join("etc", "passwd"),
			want:    false,
			reason:  "absolute targets are always outside",
		},
		{
			name:    "absolute_target_from_subdir",
			baseDir: "foo",
			target:  string(filepath.Separator) + "data",
			want:    false,
			reason:  "absolute targets are outside regardless of the base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isInternal(tt.baseDir, tt.target)
			assert.Equal(t, tt.want, got, tt.reason)
		})
	}
}

// 🧪 TestResolveLenient tests symlink resolution with nonexistent tails
func TestResolveLenient(t *testing.T) {
	base := t.TempDir()
	realBase, err := filepath.EvalSymlinks(base)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "f"), []byte("data"), 0o644))
	require.NoError(t, os.Symlink("a", filepath.Join(base, "ln")))
	require.NoError(t, os.Symlink(filepath.Join("a", "b"), filepath.Join(base, "lndeep")))

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "existing_directory",
			path: filepath.Join(base, "a"),
			want: filepath.Join(realBase, "a"),
		},
		{
			name: "missing_tail",
			path: filepath.Join(base, "missing"),
			want: filepath.Join(realBase, "missing"),
		},
		{
			name: "deep_missing_tail",
			path: filepath.Join(base, "m1", "m2"),
			want: filepath.Join(realBase, "m1", "m2"),
		},
		{
			name: "missing_behind_symlink",
			path: filepath.Join(base, "ln", "missing"),
			want: filepath.Join(realBase, "a", "missing"),
		},
		{
			name: "path_through_regular_file",
			path: filepath.Join(base, "f", "child"),
			want: filepath.Join(realBase, "f", "child"),
		},
		{
			name: "dotdot_into_missing",
			path: filepath.Join(base, "a", "..", "missing"),
			want: filepath.Join(realBase, "missing"),
		},
		{
			// lndeep points at a/b, so ".." must step up from b, not from
			// the link's own directory.
			name: "dotdot_after_symlink_keeps_link_depth",
			path: filepath.Join(base, "lndeep", "..", "ghost"),
			want: filepath.Join(realBase, "a", "ghost"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveLenient(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// 🧪 TestNormalizeTarget tests target rewriting through the real filesystem
func TestNormalizeTarget(t *testing.T) {
	base := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(base, "deep", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "deep", "x"), []byte("x"), 0o644))
	require.NoError(t, os.Symlink(filepath.Join("deep", "sub"), filepath.Join(base, "alias")))

	t.Run("sibling_stays_put", func(t *testing.T) {
		got, err := normalizeTarget(filepath.Join(base, "deep", "ln"), "x")
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	})

	t.Run("absolute_becomes_relative", func(t *testing.T) {
		got, err := normalizeTarget(filepath.Join(base, "deep", "ln"), filepath.Join(base, "deep", "x"))
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	})

	t.Run("dotdot_resolved_through_symlinked_dir", func(t *testing.T) {
		// The link lives behind "alias", which really is deep/sub. Its
		// target "../x" therefore means deep/x, not base/x.
		got, err := normalizeTarget(filepath.Join(base, "alias", "ln"), filepath.Join("..", "x"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("..", "x"), got)
	})

	t.Run("dangling_target_normalizes", func(t *testing.T) {
		got, err := normalizeTarget(filepath.Join(base, "deep", "ln"), "does-not-exist")
		require.NoError(t, err)
		assert.Equal(t, "does-not-exist", got)
	})
}

// 🧪 TestExcludedName tests top-level exclusion matching for listed paths
func TestExcludedName(t *testing.T) {
	tests := []struct {
		name    string
		rel     string
		exclude []string
		want    bool
	}{
		{name: "exact_file", rel: "file", exclude: []string{"file"}, want: true},
		{name: "under_excluded_dir", rel: "dir/binary_file", exclude: []string{"dir"}, want: true},
		{name: "deeply_under_excluded_dir", rel: "dir/a/b", exclude: []string{"dir"}, want: true},
		{name: "prefix_but_not_path_prefix", rel: "director/x", exclude: []string{"dir"}, want: false},
		{name: "unrelated", rel: "file", exclude: []string{"dir"}, want: false},
		{name: "no_exclusions", rel: "anything", exclude: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, excludedName(tt.rel, tt.exclude))
		})
	}
}

// 🧪 TestParentDir tests root-relative parent computation
func TestParentDir(t *testing.T) {
	assert.Equal(t, "", parentDir("file"))
	assert.Equal(t, "a", parentDir(filepath.Join("a", "b")))
	assert.Equal(t, filepath.Join("a", "b"), parentDir(filepath.Join("a", "b", "c")))
}
