package notes

import (
	"regexp"
	"strings"
)

// sectionSpec names one canonical section: the header line written when the
// section is created, plus the header patterns accepted when locating it
// (tolerating spelling and decoration drift in hand-edited files).
type sectionSpec struct {
	title    string
	patterns []*regexp.Regexp
}

func compilePatterns(pats ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(pats))
	for i, pat := range pats {
		out[i] = regexp.MustCompile(`(?i)^` + pat)
	}
	return out
}

var (
	issuesSection = sectionSpec{
		title:    "# issues found 🕵️‍♂️",
		patterns: compilePatterns(`#\s*issues\s+found\s*🕵️‍♂️\s*$`, `#\s*issues\s+found\s*$`),
	}
	foundSection = sectionSpec{
		title: "# Found / Invalid 🗂️",
		patterns: compilePatterns(
			`#\s*found\s*/\s*invalid\s*🗂️\s*$`,
			`#\s*found\s*/\s*invalid\s*$`,
			`#\s*found\s*🗂️\s*$`,
			`#\s*found\s*$`,
		),
	}
	reportsSection = sectionSpec{
		title:    "# reports written 📝",
		patterns: compilePatterns(`#\s*reports\s+written\s*📝\s*$`, `#\s*reports\s+written\s*$`),
	}
	bugsSection = sectionSpec{
		title:    "# bugs 🐛",
		patterns: compilePatterns(`#\s*bugs\s*$`, `#\s*bugs\s*🐛\s*$`),
	}
)

// anyHeaderRe matches any markdown section header and terminates the
// preceding section's content region.
var anyHeaderRe = regexp.MustCompile(`^#\s+`)

// span is a half-open [start, end) line range.
type span struct {
	start, end int
}

// findHeader returns the line index of the first header matching spec.
func findHeader(lines []string, spec sectionSpec) (int, bool) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, pat := range spec.patterns {
			if pat.MatchString(trimmed) {
				return i, true
			}
		}
	}
	return 0, false
}

// sectionBounds computes the content region of a section: the lines after
// its header (and after a "---" divider when present) up to the next header
// or end of document. Absence is an ordinary result, not an error.
func sectionBounds(lines []string, spec sectionSpec) (span, bool) {
	idx, ok := findHeader(lines, spec)
	if !ok {
		return span{}, false
	}
	start := idx + 1
	if start < len(lines) && strings.TrimSpace(lines[start]) == "---" {
		start++
	}
	end := len(lines)
	for j := start; j < len(lines); j++ {
		if anyHeaderRe.MatchString(lines[j]) {
			end = j
			break
		}
	}
	return span{start: start, end: end}, true
}
