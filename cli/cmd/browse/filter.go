package browse

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// computeMatches returns the section names matching pattern, best first.
// An empty pattern matches every name in its given order, with nothing
// highlighted.
func computeMatches(pattern string, names []string) fuzzy.Matches {
	if strings.TrimSpace(pattern) == "" {
		matches := make(fuzzy.Matches, len(names))
		for i, name := range names {
			matches[i] = fuzzy.Match{Str: name, Index: i}
		}

		return matches
	}

	return fuzzy.Find(pattern, names)
}

// renderCandidateBar builds the single-line candidate bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate uses the selected style and
// is always visible: candidates before it are elided when the bar would
// overflow.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	first := firstVisible(matches, selected, width-ellipsisWidth-sepWidth, sepWidth)

	var b strings.Builder

	used := 0

	if first > 0 {
		b.WriteString(ellipsis)
		b.WriteString(sep)

		used += ellipsisWidth + sepWidth
	}

	for i := first; i < len(matches); i++ {
		rendered := renderCandidate(matches[i], i == selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > first {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if i > first && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > first {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// firstVisible returns the index of the first candidate to render so that
// the selected candidate fits within width.
func firstVisible(matches fuzzy.Matches, selected, width, sepWidth int) int {
	if selected <= 0 || selected >= len(matches) {
		return 0
	}

	used := 0
	first := selected

	for i := selected; i >= 0; i-- {
		w := lipgloss.Width(matches[i].Str)
		if i < selected {
			w += sepWidth
		}

		if used+w > width && i < selected {
			break
		}

		used += w
		first = i
	}

	return first
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := matchStyle

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedMatchStyle
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}
