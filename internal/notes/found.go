package notes

import (
	"fmt"
	"regexp"
	"strings"
)

// FoundEntry is a triaged issue inside the Found/Invalid section, optionally
// tagged with an external bug number.
type FoundEntry struct {
	BugNum string
	Issue
}

// Line renders the entry, with the bug-number tag prefixed when non-empty.
func (f FoundEntry) Line() string {
	if f.BugNum != "" {
		return fmt.Sprintf("- [%s] [%s][%s] %s", f.BugNum, f.Time, f.Platform, f.Desc)
	}
	return f.Issue.Line()
}

var foundLineRe = regexp.MustCompile(`(?i)^- (?:\[([^\]]+)\]\s+)?\[(\d{1,2}:\d{2}(?:\s?[AaPp][Mm])?)\]\[([a-z0-9]+)\]\s+(.*)$`)

// FoundEntries lists the Found/Invalid section's entries in file order.
func (e *Engine) FoundEntries(text string) []FoundEntry {
	lines := splitLines(text)
	b, ok := sectionBounds(lines, foundSection)
	if !ok {
		return nil
	}
	var out []FoundEntry
	for _, line := range lines[b.start:b.end] {
		if m := foundLineRe.FindStringSubmatch(line); m != nil {
			out = append(out, FoundEntry{
				BugNum: strings.TrimSpace(m[1]),
				Issue: Issue{
					Time:     strings.TrimSpace(m[2]),
					Platform: strings.ToLower(m[3]),
					Desc:     strings.TrimSpace(m[4]),
				},
			})
		}
	}
	return out
}

// MoveToFound removes the issue from Issues Found (same matching rule as
// RemoveIssue) and appends it to the end of Found/Invalid, tagged with
// bugNum when non-empty.
func (e *Engine) MoveToFound(text string, is Issue, bugNum string) string {
	text = e.EnsureSections(text)
	lines := splitLines(text)

	if ib, ok := sectionBounds(lines, issuesSection); ok {
		lines, _ = removeIssueAt(lines, ib, is)
	}

	fb, ok := sectionBounds(lines, foundSection)
	if !ok {
		return joinLines(lines)
	}
	entry := FoundEntry{BugNum: strings.TrimSpace(bugNum), Issue: is}
	lines = insertLines(lines, fb.end, entry.Line())
	return joinLines(lines)
}

// RetagFound rewrites an existing Found/Invalid entry's bug-number tag in
// place. The entry is matched by time+platform+description with any current
// tag ignored, and keeps its original position; an empty bugNum drops the
// tag. Unlike MoveToFound this never appends.
func (e *Engine) RetagFound(text string, entry FoundEntry, bugNum string) string {
	lines := splitLines(text)
	b, ok := sectionBounds(lines, foundSection)
	if !ok {
		return text
	}
	target := regexp.MustCompile(`(?i)^- (?:\[[^\]]+\]\s+)?\[` +
		regexp.QuoteMeta(entry.Time) + `\]\[` +
		regexp.QuoteMeta(entry.Platform) + `\]\s+` +
		regexp.QuoteMeta(entry.Desc) + `\s*$`)
	for i := b.start; i < b.end && i < len(lines); i++ {
		if target.MatchString(strings.TrimSpace(lines[i])) {
			retagged := FoundEntry{BugNum: strings.TrimSpace(bugNum), Issue: entry.Issue}
			lines[i] = retagged.Line()
			break
		}
	}
	return joinLines(lines)
}
