package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTime(t *testing.T) {
	e := testEngine()
	cases := []struct {
		in, want string
	}{
		{"", "10:31 AM"},           // blank falls back to the clock
		{"9:05 pm", "09:05 PM"},    // zero-padded hour, upper-cased meridiem
		{"09:05PM", "09:05 PM"},    // meridiem without a space
		{"12:00", "12:00"},         // 24-hour-style passthrough
		{"7:45", "07:45"},          //
		{"  8:30 am ", "08:30 AM"}, // surrounding whitespace
		{"not a time", "10:31 AM"}, // unparseable falls back silently
		{"25:99:00", "10:31 AM"},   //
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.NormalizeTime(tc.in), "input %q", tc.in)
	}
}

func TestAddIssue(t *testing.T) {
	e := testEngine()
	out := e.AddIssue("", "", "PS5", "  Crash on load  ")

	issues := e.Issues(out)
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{Time: "10:31 AM", Platform: "ps5", Desc: "Crash on load"}, issues[0])
	assert.Contains(t, out, "- [10:31 AM][ps5] Crash on load")
}

func TestAddIssue_AppendsInArrivalOrder(t *testing.T) {
	e := testEngine()
	doc := e.EnsureSections("")
	doc = e.AddIssue(doc, "11:00 PM", "ps5", "third by clock, first typed")
	doc = e.AddIssue(doc, "1:00 AM", "pc", "second")
	doc = e.AddIssue(doc, "2:00 PM", "xb1", "last typed")

	issues := e.Issues(doc)
	require.Len(t, issues, 3)
	assert.Equal(t, "third by clock, first typed", issues[0].Desc)
	assert.Equal(t, "second", issues[1].Desc)
	assert.Equal(t, "last typed", issues[2].Desc)
}

func TestIssues_IgnoresNonIssueLines(t *testing.T) {
	e := testEngine()
	doc := "# issues found\n---\nsome stray prose\n- not an issue line\n- [10:31 AM][ps5] real issue\n"
	issues := e.Issues(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "real issue", issues[0].Desc)
}

func TestIssues_MissingSection(t *testing.T) {
	e := testEngine()
	assert.Nil(t, e.Issues("no sections here\n"))
}

func TestRemoveIssue_ExactMatch(t *testing.T) {
	e := testEngine()
	doc := e.AddIssue("", "10:00", "ps5", "first")
	doc = e.AddIssue(doc, "10:00", "ps5", "second")

	out := e.RemoveIssue(doc, Issue{Time: "10:00", Platform: "ps5", Desc: "second"})
	issues := e.Issues(out)
	require.Len(t, issues, 1)
	assert.Equal(t, "first", issues[0].Desc)
}

func TestRemoveIssue_PrefixFallback(t *testing.T) {
	e := testEngine()
	doc := e.AddIssue("", "10:00", "ps5", "original description, since hand-edited")

	// Caller still holds the pre-edit description; exact match fails but the
	// time+platform prefix removes the drifted line.
	out := e.RemoveIssue(doc, Issue{Time: "10:00", Platform: "ps5", Desc: "original description"})
	assert.Empty(t, e.Issues(out))
}

func TestRemoveIssue_NoMatchIsNoOp(t *testing.T) {
	e := testEngine()
	doc := e.AddIssue("", "10:00", "ps5", "something")
	out := e.RemoveIssue(doc, Issue{Time: "11:11", Platform: "pc", Desc: "other"})
	assert.Equal(t, doc, out)
}

func TestAddIssue_DoesNotTouchOtherSections(t *testing.T) {
	e := testEngine()
	doc := e.NewDocument(Header{Date: "08-30-2026", Usernames: map[string]string{"ps5": "alice"}})
	doc = e.MoveToFound(e.AddIssue(doc, "9:00", "pc", "triaged thing"), Issue{Time: "09:00", Platform: "pc", Desc: "triaged thing"}, "BUG-1")

	before := doc
	after := e.AddIssue(doc, "10:00", "ps5", "new issue")

	for _, spec := range []sectionSpec{foundSection, reportsSection, bugsSection} {
		assert.Equal(t, sectionText(t, before, spec), sectionText(t, after, spec))
	}
}

// sectionText extracts a section's content region for byte comparison.
func sectionText(t *testing.T, doc string, spec sectionSpec) string {
	t.Helper()
	lines := splitLines(doc)
	b, ok := sectionBounds(lines, spec)
	require.True(t, ok)
	return strings.Join(lines[b.start:b.end], "\n")
}
