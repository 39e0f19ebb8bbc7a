// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package copier

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/copytree/pkg/fileio"
	"github.com/walteh/copytree/pkg/vcs"
	"gitlab.com/tozd/go/errors"
)

// 🔧 treeCopier owns the bookkeeping of one Copy invocation: the two roots
// and the set of destination directories already materialized.
type treeCopier struct {
	c    *Copier
	from string
	to   string

	// created is keyed by root-relative path and seeded with "" so the
	// destination root itself is never re-created or restatted.
	created map[string]struct{}
}

func newTreeCopier(c *Copier, from, to string) (*treeCopier, error) {
	if err := os.Mkdir(to, 0o700); err != nil {
		return nil, errors.Errorf("creating destination %q: %w", to, err)
	}
	return &treeCopier{
		c:       c,
		from:    from,
		to:      to,
		created: map[string]struct{}{"": {}},
	}, nil
}

// 📁 ensureDir materializes the destination directory for rel exactly once
// per invocation, parents included, and mirrors the source directory's
// permission bits and timestamps onto the leaf.
func (t *treeCopier) ensureDir(ctx context.Context, rel string) error {
	if _, ok := t.created[rel]; ok {
		return nil
	}
	dst := filepath.Join(t.to, rel)
	if err := os.MkdirAll(dst, 0o700); err != nil {
		return errors.Errorf("creating directory %q: %w", dst, err)
	}
	if err := copyStat(filepath.Join(t.from, rel), dst); err != nil {
		return err
	}
	t.created[rel] = struct{}{}
	t.c.notify(ctx, Event{Action: ActionDir, Path: rel})
	return nil
}

// 📝 copyEntry replicates one non-directory entry. With skipMissing set, a
// source path that vanished since enumeration is silently left out.
func (t *treeCopier) copyEntry(ctx context.Context, rel string, skipMissing bool) error {
	src := filepath.Join(t.from, rel)
	info, err := os.Lstat(src)
	if err != nil {
		if skipMissing && errors.Is(err, fs.ErrNotExist) {
			zerolog.Ctx(ctx).Debug().Str("path", rel).Msg("source entry vanished, skipping")
			t.c.notify(ctx, Event{Action: ActionSkipped, Path: rel})
			return nil
		}
		return errors.Errorf("inspecting %q: %w", src, err)
	}
	if err := t.ensureDir(ctx, parentDir(rel)); err != nil {
		return err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return t.copyLink(ctx, rel)
	}
	return t.copyFileContents(ctx, rel)
}

func (t *treeCopier) copyFileContents(ctx context.Context, rel string) error {
	src := filepath.Join(t.from, rel)
	dst := filepath.Join(t.to, rel)
	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("copying file")
	if _, err := fileio.CopyFile(ctx, src, dst, fileio.CopyOptions{ChunkSize: fileio.DefaultChunkSize}); err != nil {
		return err
	}
	if err := copyStat(src, dst); err != nil {
		return err
	}
	t.c.notify(ctx, Event{Action: ActionFile, Path: rel})
	return nil
}

// 🔗 copyLink applies the link policy to the symlink at rel: normalize its
// target text, classify it against the copy root, then either recreate it
// as a link or materialize the content it resolves to.
func (t *treeCopier) copyLink(ctx context.Context, rel string) error {
	src := filepath.Join(t.from, rel)
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Errorf("reading link %q: %w", src, err)
	}

	if t.c.policy.NormalizeLinks {
		rewritten, err := normalizeTarget(src, target)
		if err != nil {
			return err
		}
		target = rewritten
	}

	keep := false
	if t.c.policy.KeepInsideSymlinks || t.c.policy.KeepOutsideSymlinks {
		if isInternal(parentDir(rel), target) {
			keep = t.c.policy.KeepInsideSymlinks
		} else {
			keep = t.c.policy.KeepOutsideSymlinks
		}
	}
	if !keep {
		return t.materializeLink(ctx, rel)
	}

	dst := filepath.Join(t.to, rel)
	zerolog.Ctx(ctx).Debug().Str("dst", dst).Str("target", target).Msg("copying symlink")
	if err := os.Symlink(target, dst); err != nil {
		return errors.Errorf("creating link %q: %w", dst, err)
	}
	if err := copyStat(src, dst); err != nil {
		return err
	}
	t.c.notify(ctx, Event{Action: ActionLink, Path: rel, Target: target})
	return nil
}

// 🪄 materializeLink replaces the symlink at rel with a copy of whatever it
// resolves to. A dangling link fails the whole operation here; only links
// preserved as links may dangle safely.
func (t *treeCopier) materializeLink(ctx context.Context, rel string) error {
	src := filepath.Join(t.from, rel)
	real, err := filepath.EvalSymlinks(src)
	if err != nil {
		return errors.Errorf("resolving link %q: %w", src, err)
	}
	info, err := os.Stat(real)
	if err != nil {
		return errors.Errorf("inspecting %q: %w", real, err)
	}
	dst := filepath.Join(t.to, rel)
	if info.IsDir() {
		zerolog.Ctx(ctx).Debug().Str("src", real).Str("dst", dst).Msg("materializing directory link")
		if err := copyTreeDeref(ctx, real, dst); err != nil {
			return err
		}
		t.c.notify(ctx, Event{Action: ActionMaterializedDir, Path: rel})
		return nil
	}
	zerolog.Ctx(ctx).Debug().Str("src", real).Str("dst", dst).Msg("materializing file link")
	if _, err := fileio.CopyFile(ctx, real, dst, fileio.CopyOptions{ChunkSize: fileio.DefaultChunkSize}); err != nil {
		return err
	}
	if err := copyStat(real, dst); err != nil {
		return err
	}
	t.c.notify(ctx, Event{Action: ActionMaterializedFile, Path: rel})
	return nil
}

// 🚶 walk copies the whole tree top-down. Exclusion applies to the first
// level only; nested entries never match excludeRoot even when same-named.
func (t *treeCopier) walk(ctx context.Context, excludeRoot []string) error {
	exclude := make(map[string]struct{}, len(excludeRoot))
	for _, name := range excludeRoot {
		exclude[name] = struct{}{}
	}
	err := filepath.WalkDir(t.from, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(t.from, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if !strings.ContainsRune(rel, filepath.Separator) {
			if _, ok := exclude[rel]; ok {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
		}
		if t.c.ignored(rel) {
			t.c.notify(ctx, Event{Action: ActionSkipped, Path: rel})
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return t.ensureDir(ctx, rel)
		}
		return t.copyEntry(ctx, rel, false)
	})
	if err != nil {
		return errors.Errorf("walking %q: %w", t.from, err)
	}
	return nil
}

// 🗃️ copyGitFiles copies only the paths git reports for the source root.
// Listing happens before any file is written, so a listing failure leaves
// the destination root empty.
func (t *treeCopier) copyGitFiles(ctx context.Context, excludeRoot []string) error {
	logger := zerolog.Ctx(ctx)
	raw, err := vcs.ListGitFiles(ctx, t.from, t.c.gitPath)
	if err != nil {
		return errors.Errorf("listing files not ignored by git in %q: %w", t.from, err)
	}
	files := make([]string, 0, len(raw))
	for _, b := range raw {
		if !utf8.Valid(b) {
			return errors.Errorf("git reported a path in %q that is not valid UTF-8: %q", t.from, string(b))
		}
		files = append(files, string(b))
	}
	logger.Debug().Int("count", len(files)).Str("dir", t.from).Msg("copying git files")

	for _, rel := range files {
		if excludedName(rel, excludeRoot) {
			continue
		}
		if t.c.ignored(rel) {
			t.c.notify(ctx, Event{Action: ActionSkipped, Path: rel})
			continue
		}
		if err := t.copyEntry(ctx, filepath.FromSlash(rel), true); err != nil {
			return err
		}
	}
	return nil
}

// excludedName reports whether rel names an excluded top-level entry or
// lives under one. rel is in slash form as reported by git.
func excludedName(rel string, exclude []string) bool {
	for _, name := range exclude {
		if rel == name || strings.HasPrefix(rel, name+"/") {
			return true
		}
	}
	return false
}

// parentDir returns rel's containing directory in root-relative form, ""
// for entries at the root.
func parentDir(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir
}

// copyStat mirrors permission bits and timestamps from src onto dst without
// following a symlink at src. For links only timestamps are portable, and
// the link's own times are set without dereferencing.
func copyStat(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errors.Errorf("inspecting %q: %w", src, err)
	}
	return applyStat(info, dst)
}

// copyStatDeref is copyStat following symlinks on the source side.
func copyStatDeref(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("inspecting %q: %w", src, err)
	}
	return applyStat(info, dst)
}

func applyStat(info fs.FileInfo, dst string) error {
	atime, mtime := statTimes(info)
	if info.Mode()&fs.ModeSymlink != 0 {
		return lchtimes(dst, atime, mtime)
	}
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting permissions on %q: %w", dst, err)
	}
	if err := os.Chtimes(dst, atime, mtime); err != nil {
		return errors.Errorf("setting times on %q: %w", dst, err)
	}
	return nil
}

// copyTreeDeref copies the tree rooted at src into dst, dereferencing every
// symlink it meets; a dangling link inside fails the copy. Directory
// metadata is applied after the children so child writes do not disturb it.
func copyTreeDeref(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(dst, 0o700); err != nil {
		return errors.Errorf("creating directory %q: %w", dst, err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Errorf("reading directory %q: %w", src, err)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		info, err := os.Stat(srcPath)
		if err != nil {
			return errors.Errorf("inspecting %q: %w", srcPath, err)
		}
		if info.IsDir() {
			if err := copyTreeDeref(ctx, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if _, err := fileio.CopyFile(ctx, srcPath, dstPath, fileio.CopyOptions{ChunkSize: fileio.DefaultChunkSize}); err != nil {
			return err
		}
		if err := copyStatDeref(srcPath, dstPath); err != nil {
			return err
		}
	}
	return copyStatDeref(src, dst)
}
