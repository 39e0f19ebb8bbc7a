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

package status

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/walteh/copytree/pkg/copier"
)

// 🎯 Console prints one line per copied entry and keeps running totals.
// It implements copier.Observer.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	counts map[copier.Action]int
}

// 🏭 NewConsole creates a console observer writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		counts: make(map[copier.Action]int),
	}
}

// 📝 OnEvent formats and prints a single copy event
func (c *Console) OnEvent(ctx context.Context, ev copier.Event) {
	line := FormatEvent(ev)

	c.mu.Lock()
	c.counts[ev.Action]++
	fmt.Fprintln(c.out, line)
	c.mu.Unlock()

	// Mirror to zerolog for debugging
	zerolog.Ctx(ctx).Debug().
		Str("action", string(ev.Action)).
		Str("path", ev.Path).
		Str("target", ev.Target).
		Msg("copy event")
}

// 🔢 Count returns how many events of the given action were seen
func (c *Console) Count(action copier.Action) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[action]
}

// 📊 Summary returns a one-line summary of everything processed so far
func (c *Console) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	materialized := c.counts[copier.ActionMaterializedFile] + c.counts[copier.ActionMaterializedDir]
	return fmt.Sprintf("%d dirs, %d files, %d links kept, %d links materialized, %d skipped",
		c.counts[copier.ActionDir],
		c.counts[copier.ActionFile],
		c.counts[copier.ActionLink],
		materialized,
		c.counts[copier.ActionSkipped],
	)
}
