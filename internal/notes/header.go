package notes

import (
	"fmt"
	"regexp"
	"strings"
)

// DateLayout is the wall-clock layout used for the document date line.
const DateLayout = "01-02-2006"

// Header carries the parsed header block: the date from line 0, per-platform
// username bindings and the per-generation build numbers.
type Header struct {
	Date      string
	Usernames map[string]string
	Gen4Build string
	Gen5Build string
}

var (
	usernameLineRe = regexp.MustCompile(`(?im)^- \[([a-z0-9]+)\]\[([^\]]+)\]\s*$`)
	buildLineRe    = regexp.MustCompile(`(?im)^- \[(gen4|gen5)\]\[(\d+)\]\s*-->\s*build number\s*$`)
	allDigitsRe    = regexp.MustCompile(`^\d+$`)
)

// ParseHeader extracts the full header block from document text.
func (e *Engine) ParseHeader(text string) Header {
	date, _ := parseDateAndHeaderEnd(text)
	g4, g5 := parseBuilds(text)
	return Header{
		Date:      date,
		Usernames: e.parseUsernames(text),
		Gen4Build: g4,
		Gen5Build: g5,
	}
}

// parseUsernames collects `- [platform][username]` bindings. A pure-digit
// value under a gen4/gen5 key is a build-number line, not a username.
func (e *Engine) parseUsernames(text string) map[string]string {
	usernames := make(map[string]string)
	for _, m := range usernameLineRe.FindAllStringSubmatch(text, -1) {
		key := strings.ToLower(m[1])
		val := strings.TrimSpace(m[2])
		if (key == "gen4" || key == "gen5") && allDigitsRe.MatchString(val) {
			continue
		}
		if e.platforms.Contains(key) {
			usernames[key] = val
		}
	}
	return usernames
}

func parseBuilds(text string) (gen4, gen5 string) {
	for _, m := range buildLineRe.FindAllStringSubmatch(text, -1) {
		if strings.ToLower(m[1]) == "gen4" {
			gen4 = m[2]
		} else {
			gen5 = m[2]
		}
	}
	return gen4, gen5
}

// parseDateAndHeaderEnd returns the date token from line 0 and the line
// index just past the header block (its terminating blank line included).
func parseDateAndHeaderEnd(text string) (string, int) {
	lines := splitLines(text)
	date := ""
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		date = strings.ReplaceAll(strings.TrimSpace(lines[0][2:]), " notes", "")
	}
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
	return date, idx
}

// headerLines serializes a header block as lines: date line, divider, one
// username line per bound platform in fixed platform order, then up to two
// build lines (emitted only for all-digit values), then a blank terminator.
func (e *Engine) headerLines(h Header) []string {
	lines := []string{fmt.Sprintf("# %s notes", h.Date), "---"}
	for _, p := range e.platforms.All() {
		if name := h.Usernames[p]; name != "" {
			lines = append(lines, fmt.Sprintf("- [%s][%s]", p, name))
		}
	}
	if v := strings.TrimSpace(h.Gen4Build); allDigitsRe.MatchString(v) {
		lines = append(lines, fmt.Sprintf("- [gen4][%s] --> build number", v))
	}
	if v := strings.TrimSpace(h.Gen5Build); allDigitsRe.MatchString(v) {
		lines = append(lines, fmt.Sprintf("- [gen5][%s] --> build number", v))
	}
	return append(lines, "")
}

// RenderHeader serializes a header block to text.
func (e *Engine) RenderHeader(h Header) string {
	return joinLines(e.headerLines(h))
}

// ReplaceHeader swaps the document's header block for a freshly serialized
// one and rescaffolds. This is a full replace, not a merge: platforms absent
// from usernames are dropped, so callers supply the complete desired set.
func (e *Engine) ReplaceHeader(text string, usernames map[string]string, gen4Build, gen5Build string) string {
	date, headerEnd := parseDateAndHeaderEnd(text)
	if date == "" {
		date = e.now().Format(DateLayout)
	}
	header := e.headerLines(Header{
		Date:      date,
		Usernames: usernames,
		Gen4Build: gen4Build,
		Gen5Build: gen5Build,
	})
	lines := splitLines(text)
	if headerEnd > len(lines) {
		headerEnd = len(lines)
	}
	// Splice at the line level so the header keeps its blank-line terminator
	// in front of whatever followed it.
	out := joinLines(append(header, lines[headerEnd:]...))
	return e.EnsureSections(out)
}

// NewDocument renders a complete fresh document: header block followed by
// the four empty canonical sections.
func (e *Engine) NewDocument(h Header) string {
	if h.Date == "" {
		h.Date = e.now().Format(DateLayout)
	}
	return e.EnsureSections(e.RenderHeader(h))
}
