package copier

import (
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"gitlab.com/tozd/go/errors"
)

// isInternal decides lexically whether a link target stays inside the copy
// root. baseDir is the link's containing directory relative to the root,
// "" for the root itself. The filesystem is never consulted: absolute
// targets and targets carrying a volume qualifier are external, and so is
// any join whose cleaned form escapes upward. Paths that dip into ".." and
// come back (foo/../bar) are internal.
func isInternal(baseDir, target string) bool {
	if filepath.IsAbs(target) {
		return false
	}
	if filepath.VolumeName(target) != "" {
		return false
	}
	joined := filepath.Join(baseDir, target)
	if joined == ".." {
		return false
	}
	return !strings.HasPrefix(joined, ".."+string(filepath.Separator))
}

// normalizeTarget re-expresses a link's target relative to the link's
// containing directory, resolving both sides through the real filesystem so
// the text stays valid after the tree is relocated. Dangling tails resolve
// leniently, so dead links still normalize instead of failing here.
func normalizeTarget(linkPath, target string) (string, error) {
	abs, err := filepath.Abs(linkPath)
	if err != nil {
		return "", errors.Errorf("resolving %q: %w", linkPath, err)
	}
	dir := filepath.Dir(abs)
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", errors.Errorf("resolving directory %q: %w", dir, err)
	}
	resolved, err := resolveLenient(joinTarget(dir, target))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(realDir, resolved)
	if err != nil {
		// Unreachable from realDir (different volume); keep the resolved
		// absolute form.
		return resolved, nil
	}
	return rel, nil
}

// joinTarget appends a link target to its containing directory without
// cleaning, so ".." components are still resolved against the real
// filesystem rather than lexically.
func joinTarget(dir, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return dir + string(filepath.Separator) + target
}

// resolveLenient resolves path like filepath.EvalSymlinks but tolerates a
// nonexistent tail: the longest resolvable prefix is resolved and the
// remainder is appended. The missing tail's ".." components still apply to
// the already-resolved prefix, never to unresolved link text.
func resolveLenient(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, syscall.ENOTDIR) {
		return "", errors.Errorf("resolving %q: %w", path, err)
	}
	i := strings.LastIndexByte(path, byte(filepath.Separator))
	if i < 0 {
		return filepath.Clean(path), nil
	}
	dir, base := path[:i], path[i+1:]
	if dir == "" {
		dir = string(filepath.Separator)
	}
	resolvedDir, err := resolveLenient(dir)
	if err != nil {
		return "", err
	}
	switch base {
	case "", ".":
		return resolvedDir, nil
	case "..":
		return filepath.Dir(resolvedDir), nil
	}
	return filepath.Join(resolvedDir, base), nil
}
