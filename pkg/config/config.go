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

package config

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/copytree/pkg/copier"
	"gitlab.com/tozd/go/errors"
)

// 🔀 VCSMode selects how a job decides which files to copy.
type VCSMode string

const (
	// VCSAuto probes the source directory and picks VCSGit or VCSNone.
	VCSAuto VCSMode = "auto"

	// VCSGit copies only files git reports as tracked or
	// untracked-but-not-ignored.
	VCSGit VCSMode = "git"

	// VCSNone copies the whole tree.
	VCSNone VCSMode = "none"
)

// 🔗 PolicySpec is the symlink policy section of a job. Unset fields fall
// back to copier.DefaultPolicy.
type PolicySpec struct {
	NormalizeLinks      *bool `yaml:"normalize_links,omitempty" json:"normalize_links,omitempty"`
	KeepInsideSymlinks  *bool `yaml:"keep_inside_symlinks,omitempty" json:"keep_inside_symlinks,omitempty"`
	KeepOutsideSymlinks *bool `yaml:"keep_outside_symlinks,omitempty" json:"keep_outside_symlinks,omitempty"`
}

// 📝 Policy resolves the spec against the defaults.
func (p PolicySpec) Policy() copier.Policy {
	policy := copier.DefaultPolicy()
	if p.NormalizeLinks != nil {
		policy.NormalizeLinks = *p.NormalizeLinks
	}
	if p.KeepInsideSymlinks != nil {
		policy.KeepInsideSymlinks = *p.KeepInsideSymlinks
	}
	if p.KeepOutsideSymlinks != nil {
		policy.KeepOutsideSymlinks = *p.KeepOutsideSymlinks
	}
	return policy
}

// 📦 Job is one copy operation: a source tree, a fresh destination, and the
// knobs for file selection and link handling.
type Job struct {
	Name        string     `yaml:"name,omitempty" json:"name,omitempty"`
	Source      string     `yaml:"source" json:"source"`
	Destination string     `yaml:"destination" json:"destination"`
	VCS         VCSMode    `yaml:"vcs,omitempty" json:"vcs,omitempty"`
	GitPath     string     `yaml:"git_path,omitempty" json:"git_path,omitempty"`
	ExcludeRoot []string   `yaml:"exclude_root,omitempty" json:"exclude_root,omitempty"`
	Ignore      []string   `yaml:"ignore,omitempty" json:"ignore,omitempty"`
	Policy      PolicySpec `yaml:"policy,omitempty" json:"policy,omitempty"`
}

// 📝 String returns a short human form of the job.
func (j *Job) String() string {
	return fmt.Sprintf("%s: %s -> %s [%s]", j.Name, j.Source, j.Destination, j.VCS)
}

// 📚 Config is the complete job file.
type Config struct {
	Parallel bool  `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	Jobs     []Job `yaml:"jobs" json:"jobs"`
}

// 🔧 ApplyDefaults fills unset job fields in place.
func (cfg *Config) ApplyDefaults() {
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.VCS == "" {
			job.VCS = VCSAuto
		}
		if job.GitPath == "" {
			job.GitPath = "git"
		}
		if job.Name == "" {
			job.Name = filepath.Base(job.Destination)
		}
	}
}

// 🔍 Validate checks the config for problems that would otherwise surface
// midway through a run. Destinations must be distinct because every job
// assumes exclusive ownership of its destination root.
func (cfg *Config) Validate() error {
	if len(cfg.Jobs) == 0 {
		return errors.New("no jobs defined")
	}
	seen := make(map[string]int, len(cfg.Jobs))
	for i, job := range cfg.Jobs {
		if job.Source == "" {
			return errors.Errorf("job %d: source is required", i+1)
		}
		if job.Destination == "" {
			return errors.Errorf("job %d: destination is required", i+1)
		}
		switch job.VCS {
		case VCSAuto, VCSGit, VCSNone:
		default:
			return errors.Errorf("job %d: unknown vcs mode %q", i+1, job.VCS)
		}
		dest := filepath.Clean(job.Destination)
		if prev, ok := seen[dest]; ok {
			return errors.Errorf("job %d: destination %q already used by job %d", i+1, job.Destination, prev+1)
		}
		seen[dest] = i
		for _, pattern := range job.Ignore {
			if !doublestar.ValidatePattern(pattern) {
				return errors.Errorf("job %d: invalid ignore pattern %q", i+1, pattern)
			}
		}
	}
	return nil
}
