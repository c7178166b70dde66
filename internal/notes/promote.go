package notes

import (
	"fmt"
	"strings"
)

// PromoteRequest carries the caller-supplied pieces of a bug report built
// from an issue. An empty Mode means StepsDefault.
type PromoteRequest struct {
	SummaryPrefix string
	Mode          StepsMode
	ExtraSteps    []string
	Observed      string
	Expected      string
}

// Promote turns an issue into a bug record: it renders the metadata comment
// and bug block, appends both to the end of the Bugs section, removes the
// issue's line from Issues Found and appends the original line text to
// Reports Written. The whole transition is computed against one in-memory
// line sequence and returned as a single new document, so partial
// application is never observable.
//
// Promotion is at-most-once: when the document already contains the issue's
// event identifier the input is returned unchanged.
func (e *Engine) Promote(text string, is Issue, req PromoteRequest) string {
	text = e.EnsureSections(text)

	id := EventID(is)
	if strings.Contains(text, "<!-- bug-id:"+id) {
		return text
	}

	template := e.platforms.Classify(is.Platform)
	if template == GenUnknown {
		template = Gen5
	}
	username := e.parseUsernames(text)[is.Platform]
	g4, g5 := parseBuilds(text)
	build := g5
	if template == Gen4 {
		build = g4
	}

	summary := is.Desc
	if req.SummaryPrefix != "" {
		summary = req.SummaryPrefix + ": " + is.Desc
	}

	mode := req.Mode
	if mode != StepsCustom {
		mode = StepsDefault
	}
	extra := req.ExtraSteps
	if mode == StepsDefault {
		// The base steps are rendered by the template; lines repeating them
		// (e.g. pre-filled step text echoed back by a front end) are dropped.
		base := e.DefaultStepLines(is.Platform)
		extra = nil
		for _, ln := range req.ExtraSteps {
			if ln != base[0] && ln != base[1] {
				extra = append(extra, ln)
			}
		}
	}
	stepsBlock := renderStepsBlock(template, mode, extra)

	block := renderBugBlock(summary, is.Platform, username, stepsBlock, req.Observed, req.Expected, build)
	meta := fmt.Sprintf("<!-- bug-id:%s time=%s platform=%s template=%s -->", id, is.Time, is.Platform, template)

	lines := splitLines(text)
	bb, ok := sectionBounds(lines, bugsSection)
	if !ok {
		return text
	}
	insert := append([]string{"", meta}, splitLines(strings.TrimSpace(block))...)
	insert = append(insert, "")
	lines = insertLines(lines, bb.end, insert...)

	// Bounds are recomputed after each splice so a document with sections in
	// non-canonical order cannot be corrupted by stale indexes.
	if ib, ok := sectionBounds(lines, issuesSection); ok {
		lines, _ = removeIssueAt(lines, ib, is)
	}
	if rb, ok := sectionBounds(lines, reportsSection); ok {
		lines = insertLines(lines, rb.end, is.Line())
	}
	return joinLines(lines)
}
