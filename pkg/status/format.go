package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/walteh/copytree/pkg/copier"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for the entry path
	actionWidth = 12 // Width for the action label
)

// 🎯 FormatEvent formats a copy event for display
func FormatEvent(ev copier.Event) string {
	// Determine prefix symbol and action label
	var prefix, label string
	switch ev.Action {
	case copier.ActionDir:
		prefix = color.HiBlackString("•")
		label = "dir"
	case copier.ActionFile:
		prefix = color.GreenString("✓")
		label = "file"
	case copier.ActionLink:
		prefix = color.CyanString("↪")
		label = "link"
	case copier.ActionMaterializedFile, copier.ActionMaterializedDir:
		prefix = color.YellowString("⟳")
		label = "materialized"
	case copier.ActionSkipped:
		prefix = color.HiBlackString("-")
		label = "skipped"
	default:
		prefix = color.HiBlackString("?")
		label = string(ev.Action)
	}

	// Kept links show where they point
	name := ev.Path
	if ev.Target != "" {
		name = ev.Path + " -> " + ev.Target
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, name)
	actionPart := fmt.Sprintf("%-*s", actionWidth, label)

	// Build final string with indentation
	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		actionPart,
	)
}
