package notes

import (
	"regexp"
	"strings"
)

var (
	observedLabelRe = regexp.MustCompile(`(?mi)^Observed Results:\s*`)
	expectedLabelRe = regexp.MustCompile(`(?mi)^Expected Results:\s*`)
)

// SplitReport breaks free-form report text back into steps, observed and
// expected parts at the two result labels. When either label is missing the
// split cannot be trusted and the whole text is treated as observed.
func SplitReport(text string) (steps, observed, expected string) {
	text = strings.TrimSpace(text)
	obs := observedLabelRe.FindStringIndex(text)
	exp := expectedLabelRe.FindStringIndex(text)
	if obs == nil || exp == nil || exp[0] < obs[1] {
		return "", text, ""
	}
	steps = strings.TrimRight(text[:obs[0]], " \t\r\n")
	observed = strings.TrimSpace(text[obs[1]:exp[0]])
	expected = strings.TrimSpace(text[exp[1]:])
	return steps, observed, expected
}

// ComposeReport renders the shareable report text for a bug: the steps
// block followed by the observed and expected blocks, with result labels
// reconstructed when the stored text lacks them.
func ComposeReport(b Bug) string {
	ensureLabel := func(text, label string) string {
		t := strings.TrimLeft(text, " \t\r\n")
		if t == "" {
			return label + ":\n"
		}
		if regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(label) + `\s*:`).MatchString(t) {
			return t
		}
		return label + ":\n" + t
	}
	var parts []string
	if b.Steps != "" {
		parts = append(parts, b.Steps)
	}
	parts = append(parts, ensureLabel(b.Observed, "Observed Results"))
	parts = append(parts, ensureLabel(b.Expected, "Expected Results"))
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
