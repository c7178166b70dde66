package notes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Issue is one timestamped observation inside the Issues Found section.
type Issue struct {
	Time     string
	Platform string
	Desc     string
}

// Line renders the issue in its canonical on-document form.
func (is Issue) Line() string {
	return fmt.Sprintf("- [%s][%s] %s", is.Time, is.Platform, is.Desc)
}

var (
	issueLineRe = regexp.MustCompile(`^- \[(\d{1,2}:\d{2}(?:\s?[AaPp][Mm])?)\]\[([a-z0-9]+)\]\s+(.*)$`)
	clockRe     = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm])?\s*$`)
)

// NormalizeTime coerces free-form time input to the 12-hour form used on
// issue lines. Blank or unparseable input falls back to the current wall
// clock, silently; a bare H:MM without a meridiem passes through zero-padded.
func (e *Engine) NormalizeTime(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return e.now().Format("03:04 PM")
	}
	m := clockRe.FindStringSubmatch(t)
	if m == nil {
		return e.now().Format("03:04 PM")
	}
	hour, _ := strconv.Atoi(m[1])
	if m[3] != "" {
		return fmt.Sprintf("%02d:%s %s", hour, m[2], strings.ToUpper(m[3]))
	}
	return fmt.Sprintf("%02d:%s", hour, m[2])
}

// AddIssue appends a new issue line at the end of the Issues Found section,
// scaffolding first if needed. Append order is arrival order; existing lines
// are never reordered.
func (e *Engine) AddIssue(text, timeStr, platform, desc string) string {
	text = e.EnsureSections(text)
	lines := splitLines(text)
	b, ok := sectionBounds(lines, issuesSection)
	if !ok {
		return text
	}
	entry := Issue{
		Time:     e.NormalizeTime(timeStr),
		Platform: strings.ToLower(platform),
		Desc:     strings.TrimSpace(desc),
	}
	lines = insertLines(lines, b.end, entry.Line())
	return joinLines(lines)
}

// Issues lists the issue lines in the Issues Found section, in file order.
func (e *Engine) Issues(text string) []Issue {
	lines := splitLines(text)
	b, ok := sectionBounds(lines, issuesSection)
	if !ok {
		return nil
	}
	var out []Issue
	for _, line := range lines[b.start:b.end] {
		if m := issueLineRe.FindStringSubmatch(line); m != nil {
			out = append(out, Issue{
				Time:     strings.TrimSpace(m[1]),
				Platform: strings.ToLower(m[2]),
				Desc:     strings.TrimSpace(m[3]),
			})
		}
	}
	return out
}

// RemoveIssue deletes the issue's line from Issues Found. Exact text match
// is tried first; failing that, the first line with the same time+platform
// prefix is removed, tolerating description drift from concurrent hand
// edits. No match at all is a no-op.
func (e *Engine) RemoveIssue(text string, is Issue) string {
	lines := splitLines(text)
	b, ok := sectionBounds(lines, issuesSection)
	if !ok {
		return text
	}
	lines, _ = removeIssueAt(lines, b, is)
	return joinLines(lines)
}

// removeIssueAt removes the issue's line within bounds b, exact match first
// and then the time+platform prefix fallback. Reports whether a line went.
func removeIssueAt(lines []string, b span, is Issue) ([]string, bool) {
	target := is.Line()
	for i := b.start; i < b.end && i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == target {
			return removeLineAt(lines, i), true
		}
	}
	prefix := regexp.MustCompile(`^- \[` + regexp.QuoteMeta(is.Time) + `\]\[` + regexp.QuoteMeta(is.Platform) + `\]\s+`)
	for i := b.start; i < b.end && i < len(lines); i++ {
		if prefix.MatchString(lines[i]) {
			return removeLineAt(lines, i), true
		}
	}
	return lines, false
}
