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

// Package copier duplicates directory trees into freshly created destination
// roots, with auditable decisions about every symbolic link it meets: keep
// it as a link, rewrite its target text, or materialize the content it
// points to.
package copier

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// 🎯 Policy controls how symbolic links found in the source tree are
// reproduced in the destination. The zero value materializes every link;
// DefaultPolicy restores the conventional behavior.
type Policy struct {
	// NormalizeLinks rewrites each link target so it stays valid relative
	// to the link's containing directory after the tree has been relocated.
	// The literal target text is preserved when disabled.
	NormalizeLinks bool

	// KeepInsideSymlinks preserves links whose resolved target stays inside
	// the copy root. When false such links are materialized as content.
	KeepInsideSymlinks bool

	// KeepOutsideSymlinks preserves links whose target escapes the copy
	// root. When false such links are materialized as content.
	KeepOutsideSymlinks bool
}

// 🔧 DefaultPolicy mirrors the defaults used for repository copies:
// normalize link text, keep links that stay inside the tree, materialize
// everything that points outside.
func DefaultPolicy() Policy {
	return Policy{
		NormalizeLinks:      true,
		KeepInsideSymlinks:  true,
		KeepOutsideSymlinks: false,
	}
}

// 🔧 Options configures a Copier.
type Options struct {
	// Policy selects link handling. See Policy for the zero value's
	// meaning.
	Policy Policy

	// Observer receives one event per destination entry. Nil is a no-op.
	Observer Observer

	// Ignore lists doublestar patterns matched against slash-separated
	// relative paths; matching entries are skipped in both enumeration
	// modes.
	Ignore []string

	// GitPath is the git binary used by git-selective copiers. Empty means
	// "git".
	GitPath string
}

// 📦 Copier duplicates a source directory tree into a destination root that
// must not exist beforehand. A single Copier may run any number of Copy
// operations; each operation owns private bookkeeping.
type Copier struct {
	policy    Policy
	observer  Observer
	ignore    []string
	gitPath   string
	selectGit bool
}

// 🏭 New returns a Copier that copies every entry under the source root.
func New(opts Options) *Copier {
	return &Copier{
		policy:   opts.Policy,
		observer: opts.Observer,
		ignore:   opts.Ignore,
	}
}

// 🏭 NewGit returns a Copier restricted to files git reports as tracked or
// untracked-but-not-ignored, tolerating listed paths that vanish before
// they are copied.
func NewGit(opts Options) *Copier {
	gitPath := opts.GitPath
	if gitPath == "" {
		gitPath = "git"
	}
	return &Copier{
		policy:    opts.Policy,
		observer:  opts.Observer,
		ignore:    opts.Ignore,
		gitPath:   gitPath,
		selectGit: true,
	}
}

// 📝 Copy duplicates from into to. The destination is created by the copy
// with owner-only permissions; an existing destination or a missing parent
// fails the operation before anything is written. excludeRoot names
// top-level entries to leave out entirely.
func (c *Copier) Copy(ctx context.Context, from, to string, excludeRoot ...string) error {
	zerolog.Ctx(ctx).Debug().Str("from", from).Str("to", to).Msg("copying directory tree")

	t, err := newTreeCopier(c, from, to)
	if err != nil {
		return err
	}
	if c.selectGit {
		return t.copyGitFiles(ctx, excludeRoot)
	}
	return t.walk(ctx, excludeRoot)
}

// ignored reports whether rel matches one of the configured ignore globs.
// Malformed patterns never match.
func (c *Copier) ignored(rel string) bool {
	slashed := filepath.ToSlash(rel)
	for _, pattern := range c.ignore {
		matched, err := doublestar.Match(pattern, slashed)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

func (c *Copier) notify(ctx context.Context, ev Event) {
	if c.observer == nil {
		return
	}
	c.observer.OnEvent(ctx, ev)
}
