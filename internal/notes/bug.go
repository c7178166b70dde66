package notes

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// StepsMode selects how a bug's reproduction steps are numbered.
type StepsMode string

const (
	// StepsDefault prepends the two generation-specific base steps and
	// numbers caller lines from 3.
	StepsDefault StepsMode = "default"
	// StepsCustom numbers only the caller's lines, from 1.
	StepsCustom StepsMode = "custom"
)

// Bug is a parsed record from the Bugs section. The metadata comment
// preceding each block carries the stable content-derived ID that is the
// sole key for locating a record; BugNum and position are both mutable and
// never used for lookup. Steps retains its "Steps to Reproduce:" label line.
type Bug struct {
	ID       string
	Time     string
	Platform string
	Template Generation
	BugNum   string
	Summary  string
	Username string
	Steps    string
	Observed string
	Expected string
	Build    string
	Raw      string
}

// DisplayUsername is the name shown for a record: the block's own username,
// or the header assignment for its platform when the block carries none.
func DisplayUsername(h Header, b Bug) string {
	if b.Username != "" {
		return b.Username
	}
	return h.Usernames[b.Platform]
}

// EventID derives the stable identifier for an issue: a truncated SHA-1 of
// its time, platform and description. Identical input always yields the same
// ID, which is what makes promotion idempotent.
func EventID(is Issue) string {
	sum := sha1.Sum([]byte(is.Time + "|" + is.Platform + "|" + is.Desc))
	return hex.EncodeToString(sum[:])[:12]
}

var (
	bugMetaRe   = regexp.MustCompile(`<!--\s*bug-id:([a-f0-9]{6,})\s+time=([^\s]+(?:\s[AP]M)?)\s+platform=([a-z0-9]+)\s+template=(gen4|gen5)(?:\s+bugnum=([^\s]+))?\s*-->`)
	bugHeaderRe = regexp.MustCompile(`(?m)^\s*##\s*\[([^\]]*)\]\s*$`)
	buildValRe  = regexp.MustCompile(`(?mi)^\s*Build:\s*(.+?)\s*$`)
)

const stepsLabel = "Steps to Reproduce:"

// DefaultStepLines returns the two base reproduction steps for a platform,
// with the second line chosen by hardware generation. Unclassified platforms
// get the gen5 wording.
func (e *Engine) DefaultStepLines(platform string) []string {
	gen := e.platforms.Classify(platform)
	if gen == GenUnknown {
		gen = Gen5
	}
	second := "Enter the City."
	if gen == Gen4 {
		second = "Enter the Neighborhood."
	}
	return []string{"Launch the title > create or select build / save.", second}
}

// renderStepsBlock builds the numbered Steps to Reproduce block. Default
// mode emits the two fixed base steps then numbers extra lines from 3;
// custom mode numbers only the extra lines from 1. With no extra lines a
// single placeholder numbered line keeps the block non-empty.
func renderStepsBlock(template Generation, mode StepsMode, extra []string) string {
	var lines []string
	n := 1
	if mode == StepsDefault {
		second := "Enter the City."
		if template == Gen4 {
			second = "Enter the Neighborhood."
		}
		lines = []string{stepsLabel, "1. Launch the title > create or select build / save.", "2. " + second}
		n = 3
	} else {
		lines = []string{stepsLabel}
	}
	first := n
	for _, ln := range extra {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			lines = append(lines, fmt.Sprintf("%d. %s", n, ln))
			n++
		}
	}
	if n == first {
		lines = append(lines, fmt.Sprintf("%d. ", first))
	}
	return strings.Join(lines, "\n")
}

// renderBugBlock composes a full bug block. The bug-number header starts as
// the literal "null" placeholder; SetBugNumber fills it in later.
func renderBugBlock(summary, platform, username, stepsBlock, observed, expected, build string) string {
	buildLine := ""
	if build != "" {
		buildLine = "Build: " + build
	}
	return fmt.Sprintf(`## [null]
---
**summary:** %s

**Platform:** %s
**Username:** %s

%s

Observed Results:
%s

Expected Results:
%s
%s
`, summary, platform, username, stepsBlock, observed, expected, buildLine)
}

// grabLine extracts a single-line bold-labeled field from a bug block.
func grabLine(block, label string) string {
	re := regexp.MustCompile(`(?mi)^\*\*` + regexp.QuoteMeta(label) + `:\*\*\s*(.*)$`)
	if m := re.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// grabBetween extracts a multi-line field: the span from the start label
// (label line included, so Steps round trips with its header) up to the next
// recognized label, or the rest of the block when the end label is absent.
func grabBetween(block, startLabel, endLabel string) string {
	startRe := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(startLabel) + `:\s*\n`)
	loc := startRe.FindStringIndex(block)
	if loc == nil {
		return ""
	}
	sub := block[loc[0]:]
	endRe := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(endLabel) + `:\s*`)
	if end := endRe.FindStringIndex(sub); end != nil {
		return strings.TrimRight(sub[:end[0]], " \t\r\n")
	}
	return strings.TrimRight(sub, " \t\r\n")
}

// grabField extracts the text between a label line and the next recognized
// label, label excluded, so parsed fields round trip with rendered ones.
func grabField(block, startLabel, endLabel string) string {
	startRe := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(startLabel) + `:\s*\n`)
	loc := startRe.FindStringIndex(block)
	if loc == nil {
		return ""
	}
	sub := block[loc[1]:]
	endRe := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(endLabel) + `:\s*`)
	if end := endRe.FindStringIndex(sub); end != nil {
		return strings.TrimSpace(sub[:end[0]])
	}
	return strings.TrimSpace(sub)
}

// grabAfter extracts everything after a label line, trimmed.
func grabAfter(block, startLabel string) string {
	startRe := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(startLabel) + `:\s*\n`)
	loc := startRe.FindStringIndex(block)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(block[loc[1]:])
}

func grabBuild(block string) string {
	if m := buildValRe.FindStringSubmatch(block); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Bugs parses the Bugs section into records, splitting at metadata-comment
// boundaries. The bug number prefers the metadata attribute, then the ##
// header, then empty.
func (e *Engine) Bugs(text string) []Bug {
	lines := splitLines(text)
	b, ok := sectionBounds(lines, bugsSection)
	if !ok {
		return nil
	}
	section := strings.Join(lines[b.start:b.end], "\n")

	metas := bugMetaRe.FindAllStringSubmatchIndex(section, -1)
	out := make([]Bug, 0, len(metas))
	for i, m := range metas {
		blockStart := m[1]
		blockEnd := len(section)
		if i+1 < len(metas) {
			blockEnd = metas[i+1][0]
		}
		block := section[blockStart:blockEnd]

		headerBug := ""
		if hm := bugHeaderRe.FindStringSubmatch(block); hm != nil {
			headerBug = strings.TrimSpace(hm[1])
		}
		metaBug := ""
		if m[10] >= 0 {
			metaBug = section[m[10]:m[11]]
		}
		bugNum := strings.TrimSpace(metaBug)
		if bugNum == "" {
			bugNum = headerBug
		}

		expected := grabAfter(block, "Expected Results")
		if strings.Contains(block, "Build:") {
			expected = firstLine(expected)
		}

		out = append(out, Bug{
			ID:       section[m[2]:m[3]],
			Time:     section[m[4]:m[5]],
			Platform: strings.ToLower(section[m[6]:m[7]]),
			Template: Generation(section[m[8]:m[9]]),
			BugNum:   bugNum,
			Summary:  grabLine(block, "summary"),
			Username: grabLine(block, "Username"),
			Steps:    grabBetween(block, stepsLabel[:len(stepsLabel)-1], "Observed Results"),
			Observed: grabField(block, "Observed Results", "Expected Results"),
			Expected: expected,
			Build:    grabBuild(block),
			Raw:      strings.TrimSpace(block),
		})
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// BugEdit is a full content replacement for one bug record. Platform is
// always preserved from the existing block. A nil Username keeps the
// previous value; an empty Build drops the build line.
type BugEdit struct {
	Summary  string
	Steps    string
	Observed string
	Expected string
	Build    string
	Username *string
}

// EditBug replaces the rendered content of the record whose metadata ID
// matches, preserving its ## header bug number and its position. The steps
// text gets a reconstructed label and numbering when the caller supplies
// plain lines. Unknown IDs return the input unchanged.
func (e *Engine) EditBug(text, id string, edit BugEdit) string {
	lines := splitLines(text)
	b, ok := sectionBounds(lines, bugsSection)
	if !ok {
		return text
	}
	section := strings.Join(lines[b.start:b.end], "\n")
	sectionStart := 0
	if b.start > 0 {
		sectionStart = len(strings.Join(lines[:b.start], "\n")) + 1
	}

	metas := bugMetaRe.FindAllStringSubmatchIndex(section, -1)
	for i, m := range metas {
		if section[m[2]:m[3]] != id {
			continue
		}
		blockStart := m[1]
		blockEnd := len(section)
		if i+1 < len(metas) {
			blockEnd = metas[i+1][0]
		}
		block := section[blockStart:blockEnd]

		headerBugNum := "null"
		if hm := bugHeaderRe.FindStringSubmatch(block); hm != nil {
			headerBugNum = strings.TrimSpace(hm[1])
		}
		platform := grabLine(block, "Platform")

		username := grabLine(block, "Username")
		if edit.Username != nil {
			username = *edit.Username
		}

		buildLine := ""
		if strings.TrimSpace(edit.Build) != "" {
			buildLine = "Build: " + strings.TrimSpace(edit.Build)
		}

		newBlock := fmt.Sprintf(`## [%s]
---
**summary:** %s

**Platform:** %s
**Username:** %s

%s

Observed Results:
%s

Expected Results:
%s
%s
`, headerBugNum, edit.Summary, platform, username, RebuildStepsBlock(edit.Steps), edit.Observed, edit.Expected, buildLine)

		return text[:sectionStart+blockStart] + newBlock + text[sectionStart+blockEnd:]
	}
	return text
}

// RebuildStepsBlock ensures steps text carries the "Steps to Reproduce:"
// label: text already labeled passes through, otherwise each non-blank line
// is numbered from 1 under a fresh label (placeholder line when empty).
func RebuildStepsBlock(steps string) string {
	labeled := regexp.MustCompile(`(?mi)^` + regexp.QuoteMeta(stepsLabel) + `\s*`)
	if labeled.MatchString(steps) {
		return steps
	}
	out := []string{stepsLabel}
	n := 1
	for _, ln := range strings.Split(steps, "\n") {
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, fmt.Sprintf("%d. %s", n, ln))
			n++
		}
	}
	if len(out) == 1 {
		out = append(out, "1. ")
	}
	return strings.Join(out, "\n")
}

// SetBugNumber rewrites the bug number for the record with the matching ID,
// updating the metadata comment's bugnum attribute and the ## header in one
// pass so the two copies never diverge. An empty value removes the attribute
// and resets the header to the "null" placeholder.
func (e *Engine) SetBugNumber(text, id, bugNum string) string {
	bugNum = strings.TrimSpace(bugNum)

	updated := bugMetaRe.ReplaceAllStringFunc(text, func(match string) string {
		m := bugMetaRe.FindStringSubmatch(match)
		if m == nil || m[1] != id {
			return match
		}
		if bugNum != "" {
			return fmt.Sprintf("<!-- bug-id:%s time=%s platform=%s template=%s bugnum=%s -->", m[1], m[2], m[3], m[4], bugNum)
		}
		return fmt.Sprintf("<!-- bug-id:%s time=%s platform=%s template=%s -->", m[1], m[2], m[3], m[4])
	})

	headerVal := bugNum
	if headerVal == "" {
		headerVal = "null"
	}
	afterMeta := regexp.MustCompile(`(?ms)(<!--\s*bug-id:` + regexp.QuoteMeta(id) + `\b.*?-->)(\s*)(^##\s*\[)([^\]]*)(\]\s*$)`)
	return afterMeta.ReplaceAllStringFunc(updated, func(match string) string {
		m := afterMeta.FindStringSubmatch(match)
		if m == nil {
			return match
		}
		return m[1] + m[2] + m[3] + headerVal + m[5]
	})
}
