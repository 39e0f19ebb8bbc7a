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

import "context"

// 🔖 Action classifies what the copier did with one destination entry.
type Action string

const (
	// ActionDir means a directory was materialized in the destination.
	ActionDir Action = "dir_created"

	// ActionFile means a regular file's content and metadata were copied.
	ActionFile Action = "file_copied"

	// ActionLink means a symlink was preserved as a link, possibly with
	// rewritten target text.
	ActionLink Action = "link_kept"

	// ActionMaterializedFile means a symlink was replaced by a copy of the
	// file it resolves to.
	ActionMaterializedFile Action = "link_materialized_file"

	// ActionMaterializedDir means a symlink was replaced by a recursive
	// copy of the directory it resolves to.
	ActionMaterializedDir Action = "link_materialized_dir"

	// ActionSkipped means an entry was deliberately left out (ignore
	// pattern, or a listed source path that vanished before the copy).
	ActionSkipped Action = "skipped"
)

// 📦 Event describes one copier decision.
type Event struct {
	// Action says what happened.
	Action Action

	// Path is the entry's path relative to the copy root.
	Path string

	// Target carries the stored link target text for ActionLink events.
	Target string
}

// 🔌 Observer receives copier events as they happen. The copier calls it
// synchronously, so implementations should be fast.
type Observer interface {
	OnEvent(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) OnEvent(ctx context.Context, ev Event) {
	f(ctx, ev)
}
