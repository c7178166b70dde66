package notes

import "strings"

// EnsureSections guarantees the four canonical sections exist, inserting any
// missing one as header + divider + blank line in canonical order: Issues
// Found, Found/Invalid, Reports Written, Bugs. Each missing section lands
// immediately after the section that canonically precedes it; Issues Found
// goes after the header block when one is present, else at end of document.
// Idempotent, and returns the input string unchanged when nothing is missing
// so callers can detect the no-op cheaply.
func (e *Engine) EnsureSections(text string) string {
	lines := splitLines(text)
	changed := false

	if _, ok := sectionBounds(lines, issuesSection); !ok {
		insertAt := len(lines)
		if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
			idx := 1
			if idx < len(lines) && strings.TrimSpace(lines[idx]) == "---" {
				idx++
			}
			for idx < len(lines) && strings.TrimSpace(lines[idx]) != "" {
				idx++
			}
			if idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
				idx++
			}
			insertAt = idx
		}
		lines = insertLines(lines, insertAt, issuesSection.title, "---", "")
		changed = true
	}

	ensureAfter := func(spec, after sectionSpec) {
		if _, ok := sectionBounds(lines, spec); ok {
			return
		}
		insertAt := len(lines)
		if b, ok := sectionBounds(lines, after); ok {
			insertAt = b.end
		}
		lines = insertLines(lines, insertAt, spec.title, "---", "")
		changed = true
	}
	ensureAfter(foundSection, issuesSection)
	ensureAfter(reportsSection, foundSection)
	ensureAfter(bugsSection, reportsSection)

	if !changed {
		return text
	}
	return joinLines(lines)
}
