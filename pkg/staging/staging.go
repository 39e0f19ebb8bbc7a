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

// Package staging places one named directory tree inside a conventional
// nested temporary layout, hands the location to a scoped callback, and
// guarantees the whole temporary root disappears afterwards.
package staging

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/copytree/pkg/tempdir"
	"gitlab.com/tozd/go/errors"
)

// DefaultContainer is the conventional path segment between the staging
// root and the namespace directory.
const DefaultContainer = "collections"

// 🔌 Copier is the copy strategy a Stager drives. *copier.Copier satisfies
// it.
type Copier interface {
	Copy(ctx context.Context, from, to string, excludeRoot ...string) error
}

// CopierFunc adapts a function to the Copier interface.
type CopierFunc func(ctx context.Context, from, to string, excludeRoot ...string) error

func (f CopierFunc) Copy(ctx context.Context, from, to string, excludeRoot ...string) error {
	return f(ctx, from, to, excludeRoot...)
}

// 🔧 Options configures a Stager.
type Options struct {
	// Copier populates the staged directory. Required.
	Copier Copier

	// Container is the layout path between the staging root and the
	// namespace directory. Empty means DefaultContainer. Slash-separated;
	// it may span several segments.
	Container string

	// TempDirAccept filters candidate temporary base directories. Nil
	// installs the default filter, which refuses candidates already inside
	// a container layout so staged trees never nest.
	TempDirAccept func(dir string) bool
}

// 📦 Stager stages one named unit under a fresh temporary root per Run.
type Stager struct {
	copier    Copier
	container string
	accept    func(string) bool
}

// 🏭 New validates opts and returns a Stager.
func New(opts Options) (*Stager, error) {
	if opts.Copier == nil {
		return nil, errors.New("staging: copier is required")
	}
	container := opts.Container
	if container == "" {
		container = DefaultContainer
	}
	accept := opts.TempDirAccept
	if accept == nil {
		head := containerHead(container)
		accept = func(dir string) bool {
			return !insideContainer(dir, head)
		}
	}
	return &Stager{
		copier:    opts.Copier,
		container: container,
		accept:    accept,
	}, nil
}

// 📝 Run stages source as <root>/<container>/<namespace>/<name> and calls
// fn with the temporary root and the staged directory. The root is removed
// on every return path, with removal problems logged and swallowed. Copy
// and fn errors propagate unchanged.
func (s *Stager) Run(ctx context.Context, source, namespace, name string, fn func(ctx context.Context, root, dir string) error) error {
	if namespace == "" || name == "" || strings.ContainsAny(namespace+name, `/\`) {
		return errors.Errorf("invalid staging identifier %q/%q", namespace, name)
	}

	base, err := tempdir.Find(s.accept)
	if err != nil {
		return err
	}
	root, err := tempdir.MkdirTemp(base, "copytree-")
	if err != nil {
		return err
	}
	defer root.Cleanup(ctx)

	dir := filepath.Join(root.Path(), filepath.FromSlash(s.container), namespace, name)
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return errors.Errorf("creating staging layout in %q: %w", root.Path(), err)
	}

	zerolog.Ctx(ctx).Debug().Str("source", source).Str("dir", dir).Msg("staging directory tree")
	if err := s.copier.Copy(ctx, source, dir); err != nil {
		return err
	}
	return fn(ctx, root.Path(), dir)
}

// containerHead returns the first path element of container.
func containerHead(container string) string {
	head := filepath.ToSlash(container)
	if i := strings.Index(head, "/"); i >= 0 {
		head = head[:i]
	}
	return head
}

// insideContainer reports whether dir has a path element equal to head,
// meaning the directory already lives inside a staging layout.
func insideContainer(dir, head string) bool {
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == head {
			return true
		}
	}
	return false
}
