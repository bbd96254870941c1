package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/catalog/catalog"
)

// maxPreview caps the width of a rendered value when the terminal width is
// unknown.
const maxPreview = 120

// renderDetail renders the fields of a resolved section, one per line, with
// names aligned. At most height lines are produced when height is positive.
func renderDetail(name string, sec catalog.Section, pinned bool, width, height int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(name))

	if pinned {
		b.WriteString(hintStyle.Render(" (pinned)"))
	}

	b.WriteString("\n")

	fields := sec.Names()
	if len(fields) == 0 {
		b.WriteString(hintStyle.Render("  (no fields)"))
		b.WriteString("\n")

		return b.String()
	}

	pad := 0
	for _, field := range fields {
		pad = max(pad, lipgloss.Width(field))
	}

	limit := len(fields)
	if height > 1 && limit > height-1 {
		limit = height - 1
	}

	for _, field := range fields[:limit] {
		b.WriteString(renderField(field, sec[field], pad, width))
		b.WriteString("\n")
	}

	if rest := len(fields) - limit; rest > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf("  ... %d more", rest)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderField renders one "name = value" line. Non-scalar values carry their
// type as a hint.
func renderField(field string, v catalog.Value, pad, width int) string {
	lead := "  " + keyStyle.Render(field+strings.Repeat(" ", pad-lipgloss.Width(field))) + " = "

	var hint string
	if !v.Kind.IsScalar() {
		hint = "  (" + v.TypeName() + ")"
	}

	room := maxPreview
	if width > 0 {
		room = width - lipgloss.Width(lead) - lipgloss.Width(hint)
	}

	return lead + valueStyle.Render(truncate(v.String(), room)) + hintStyle.Render(hint)
}

// truncate shortens s to at most width cells, marking the cut with "...".
// Newlines are shown escaped so each field stays on one line.
func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", `\n`)

	if lipgloss.Width(s) <= width {
		return s
	}

	const ellipsis = "..."

	if width <= len(ellipsis) {
		return ellipsis[:max(width, 0)]
	}

	var b strings.Builder

	used := 0

	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-len(ellipsis) {
			break
		}

		b.WriteRune(r)

		used += w
	}

	return b.String() + ellipsis
}
