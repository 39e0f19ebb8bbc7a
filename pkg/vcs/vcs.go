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

// Package vcs probes directories for version control and lists the files a
// repository considers relevant, by shelling out to the user's git binary.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Kind identifies the version control system managing a directory.
type Kind string

const (
	KindGit  Kind = "git"
	KindNone Kind = "none"
)

// Detect reports which supported VCS manages dir, probing with the given
// git binary. Every failure mode (missing binary, non-zero exit, unexpected
// output) degrades to KindNone; Detect never fails.
func Detect(ctx context.Context, dir, gitPath string) Kind {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("dir", dir).Msg("checking whether directory is a git working tree")

	cmd := exec.CommandContext(ctx, gitPath, "-C", dir, "rev-parse", "--is-inside-work-tree")
	out, err := cmd.Output()
	if err != nil {
		logger.Debug().Err(err).Str("dir", dir).Msg("git probe failed")
		return KindNone
	}
	answer := strings.TrimSpace(string(out))
	logger.Debug().Str("output", answer).Msg("git probe output")
	if answer != "true" {
		return KindNone
	}
	logger.Debug().Str("dir", dir).Msg("identified directory as a git working tree")
	return KindGit
}

// ListGitFiles returns the paths of all files under dir that are tracked or
// untracked-but-not-ignored, relative to dir, as raw bytes (git does not
// guarantee valid UTF-8). The list is deduplicated in first-seen order. The
// listed state may already be stale by the time the caller acts on it.
func ListGitFiles(ctx context.Context, dir, gitPath string) ([][]byte, error) {
	zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("listing files not ignored by git")

	cmd := exec.CommandContext(ctx, gitPath,
		"ls-files", "-z", "--cached", "--others", "--exclude-standard", "--deduplicate")
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Errorf("running git ls-files in %q: %w: %s", dir, err, msg)
		}
		return nil, errors.Errorf("running git ls-files in %q: %w", dir, err)
	}

	seen := make(map[string]struct{})
	var files [][]byte
	for _, raw := range bytes.Split(stdout.Bytes(), []byte{0}) {
		if len(raw) == 0 {
			continue
		}
		if _, ok := seen[string(raw)]; ok {
			continue
		}
		seen[string(raw)] = struct{}{}
		files = append(files, raw)
	}
	return files, nil
}
