// Package tempdir locates usable base directories for temporary trees and
// owns the lifecycle of directories created there.
package tempdir

import (
	"context"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// EnvOverride names the environment variable consulted as an extra candidate
// base directory.
const EnvOverride = "COPYTREE_TMPDIR"

// Candidates returns the ordered base directories considered by Find: the
// system default, the EnvOverride value, the XDG runtime directory, the
// conventional fallbacks, and the current working directory. Empty and
// duplicate entries are dropped.
func Candidates() []string {
	raw := []string{
		os.TempDir(),
		os.Getenv(EnvOverride),
		xdg.RuntimeDir,
		"/tmp",
		"/var/tmp",
		"/usr/tmp",
	}
	if cwd, err := os.Getwd(); err == nil {
		raw = append(raw, cwd)
	}
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, dir := range raw {
		if dir == "" {
			continue
		}
		dir = filepath.Clean(dir)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	return out
}

// Find returns the first candidate that exists, is a directory, and
// satisfies accept. A nil accept accepts everything. The scan runs fresh on
// every call; nothing is cached.
func Find(accept func(dir string) bool) (string, error) {
	candidates := Candidates()
	for _, dir := range candidates {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if accept != nil && !accept(dir) {
			continue
		}
		return dir, nil
	}
	return "", errors.Errorf("cannot find an acceptable temporary directory among %v", candidates)
}

// MkdirTemp creates a fresh directory under base using the given name
// pattern and returns a handle owning it.
func MkdirTemp(base, pattern string) (*Dir, error) {
	path, err := os.MkdirTemp(base, pattern)
	if err != nil {
		return nil, errors.Errorf("creating temporary directory in %q: %w", base, err)
	}
	return &Dir{path: path}, nil
}

// Dir owns one created temporary directory.
type Dir struct {
	path string
}

// Path returns the directory's path.
func (d *Dir) Path() string {
	return d.path
}

// Cleanup removes the directory and everything under it. An already-removed
// directory is fine; any other removal failure is logged at warn level and
// otherwise swallowed.
func (d *Dir) Cleanup(ctx context.Context) {
	if err := os.RemoveAll(d.path); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", d.path).Msg("failed to remove temporary directory")
	}
}
