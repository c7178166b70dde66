package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bugnotes/internal/config"
	"bugnotes/internal/notes"
	"bugnotes/internal/notesfile"
)

// setupCLI wires the package globals the way PersistentPreRunE would and
// points the file flag at a temp notes file.
func setupCLI(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.NotesDir = t.TempDir()
	cfg.BackupOnWrite = false
	engine = notes.NewEngine(cfg.Platforms())

	filePath = filepath.Join(cfg.NotesDir, "08-30-2026-notes.md")
	t.Cleanup(func() { filePath = "" })
	return filePath
}

func readNotes(t *testing.T, path string) string {
	t.Helper()
	text, err := notesfile.Load(path)
	if err != nil {
		t.Fatalf("load notes: %v", err)
	}
	return text
}

func TestInitCmd(t *testing.T) {
	path := setupCLI(t)
	cmd := &cobra.Command{}

	initUsers = []string{"ps5=alice"}
	initGen5Build = "202"
	initDate = "08-30-2026"
	defer func() { initUsers = nil; initGen5Build = ""; initDate = ""; initForce = false }()

	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	doc := readNotes(t, path)
	for _, want := range []string{
		"# 08-30-2026 notes",
		"- [ps5][alice]",
		"- [gen5][202] --> build number",
		"# issues found",
		"# bugs",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("notes file missing %q", want)
		}
	}

	// Second run refuses to clobber without --force
	if err := runInit(cmd, nil); err == nil {
		t.Error("expected error on re-init without --force")
	}
	initForce = true
	if err := runInit(cmd, nil); err != nil {
		t.Errorf("re-init with --force failed: %v", err)
	}
}

func TestInitCmd_RejectsUnknownPlatform(t *testing.T) {
	setupCLI(t)

	initUsers = []string{"dreamcast=alice"}
	defer func() { initUsers = nil }()

	if err := runInit(&cobra.Command{}, nil); err == nil {
		t.Error("expected error for unknown platform")
	}
}

func TestIssueAddRemoveFlow(t *testing.T) {
	path := setupCLI(t)
	cmd := &cobra.Command{}

	issueTime = "9:05 pm"
	issuePlatform = "pc"
	defer func() { issueTime = ""; issuePlatform = "" }()

	if err := issueAdd(cmd, []string{"Crash", "on", "load"}); err != nil {
		t.Fatalf("issueAdd failed: %v", err)
	}

	doc := readNotes(t, path)
	if !strings.Contains(doc, "- [09:05 PM][pc] Crash on load") {
		t.Errorf("issue line not written:\n%s", doc)
	}

	if err := issueRemove(cmd, []string{"1"}); err != nil {
		t.Fatalf("issueRemove failed: %v", err)
	}
	if got := engine.Issues(readNotes(t, path)); len(got) != 0 {
		t.Errorf("expected no issues after remove, got %v", got)
	}

	// Out-of-range numbers are rejected
	if err := issueRemove(cmd, []string{"1"}); err == nil {
		t.Error("expected error removing from empty list")
	}
}

func TestPromoteEditSetNumFlow(t *testing.T) {
	path := setupCLI(t)
	cmd := &cobra.Command{}

	issueTime = "10:00"
	issuePlatform = "ps5"
	defer func() { issueTime = ""; issuePlatform = "" }()
	if err := issueAdd(cmd, []string{"Falls through floor"}); err != nil {
		t.Fatalf("issueAdd failed: %v", err)
	}

	promoteObserved = "Falls forever."
	promoteExpected = "Stays put."
	defer func() { promoteObserved = ""; promoteExpected = "" }()
	if err := bugPromote(cmd, []string{"1"}); err != nil {
		t.Fatalf("bugPromote failed: %v", err)
	}

	doc := readNotes(t, path)
	bugs := engine.Bugs(doc)
	if len(bugs) != 1 {
		t.Fatalf("expected 1 bug, got %d", len(bugs))
	}
	if bugs[0].Summary != "Falls through floor" {
		t.Errorf("unexpected summary %q", bugs[0].Summary)
	}
	if len(engine.Issues(doc)) != 0 {
		t.Error("promoted issue should leave the issues section")
	}

	// Promoting again is a no-op
	before := readNotes(t, path)
	promoteObserved = "different"
	if err := bugPromote(cmd, []string{"1"}); err == nil {
		// No issues left, so the index lookup itself must fail
		t.Error("expected error promoting with empty issue list")
	}
	if after := readNotes(t, path); after != before {
		t.Error("failed promote attempt must not change the file")
	}

	if err := bugSetNum(cmd, []string{"1", "BUG-9"}); err != nil {
		t.Fatalf("bugSetNum failed: %v", err)
	}
	doc = readNotes(t, path)
	if !strings.Contains(doc, "## [BUG-9]") || !strings.Contains(doc, "bugnum=BUG-9") {
		t.Error("bug number not recorded in both places")
	}
}

func TestBugEditReportFlag(t *testing.T) {
	path := setupCLI(t)
	cmd := &cobra.Command{}

	issueTime = "10:00"
	issuePlatform = "ps5"
	defer func() { issueTime = ""; issuePlatform = "" }()
	if err := issueAdd(cmd, []string{"Vault door clips"}); err != nil {
		t.Fatalf("issueAdd failed: %v", err)
	}
	promoteObserved = "Door clips."
	promoteExpected = "Door seals."
	defer func() { promoteObserved = ""; promoteExpected = "" }()
	if err := bugPromote(cmd, []string{"1"}); err != nil {
		t.Fatalf("bugPromote failed: %v", err)
	}

	// The real command carries the flag state, so Changed("report") works.
	report := "Steps to Reproduce:\n1. Open the vault.\n2. Close it.\n\n" +
		"Observed Results:\nDoor geometry clips through the frame.\n\n" +
		"Expected Results:\nDoor seals flush."
	if err := bugEditCmd.Flags().Set("report", report); err != nil {
		t.Fatal(err)
	}
	defer func() {
		editReport = ""
		bugEditCmd.Flags().Lookup("report").Changed = false
	}()
	if err := bugEdit(bugEditCmd, []string{"1"}); err != nil {
		t.Fatalf("bugEdit failed: %v", err)
	}

	b := engine.Bugs(readNotes(t, path))[0]
	if b.Summary != "Vault door clips" {
		t.Errorf("summary should survive a report edit, got %q", b.Summary)
	}
	if b.Observed != "Door geometry clips through the frame." {
		t.Errorf("unexpected observed %q", b.Observed)
	}
	if b.Expected != "Door seals flush." {
		t.Errorf("unexpected expected %q", b.Expected)
	}
	if !strings.Contains(b.Steps, "2. Close it.") {
		t.Errorf("steps not taken from the report text, got %q", b.Steps)
	}

	// Text without the result labels all becomes observed
	if err := bugEditCmd.Flags().Set("report", "just some notes"); err != nil {
		t.Fatal(err)
	}
	if err := bugEdit(bugEditCmd, []string{"1"}); err != nil {
		t.Fatalf("bugEdit failed: %v", err)
	}
	b = engine.Bugs(readNotes(t, path))[0]
	if b.Observed != "just some notes" {
		t.Errorf("label-free text should land in observed, got %q", b.Observed)
	}
	if b.Summary != "Vault door clips" {
		t.Errorf("summary should survive the fallback edit too, got %q", b.Summary)
	}
}

func TestBugListFallsBackToHeaderUsername(t *testing.T) {
	path := setupCLI(t)
	cmd := &cobra.Command{}

	initUsers = []string{"ps5=alice"}
	initDate = "08-30-2026"
	defer func() { initUsers = nil; initDate = "" }()
	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	issueTime = "10:00"
	issuePlatform = "ps5"
	defer func() { issueTime = ""; issuePlatform = "" }()
	if err := issueAdd(cmd, []string{"Crash on load"}); err != nil {
		t.Fatalf("issueAdd failed: %v", err)
	}
	if err := bugPromote(cmd, []string{"1"}); err != nil {
		t.Fatalf("bugPromote failed: %v", err)
	}

	// Blank out the record's own username; the header still knows it.
	empty := ""
	doc := readNotes(t, path)
	b := engine.Bugs(doc)[0]
	edited := engine.EditBug(doc, b.ID, notes.BugEdit{
		Summary:  b.Summary,
		Steps:    b.Steps,
		Observed: b.Observed,
		Expected: b.Expected,
		Build:    b.Build,
		Username: &empty,
	})
	if err := notesfile.Save(path, edited); err != nil {
		t.Fatal(err)
	}

	got := engine.Bugs(readNotes(t, path))[0]
	if got.Username != "" {
		t.Fatalf("expected blank record username, got %q", got.Username)
	}
	h := engine.ParseHeader(readNotes(t, path))
	if name := notes.DisplayUsername(h, got); name != "alice" {
		t.Errorf("expected header fallback username, got %q", name)
	}
}

func TestIssueCopyUsesClipboard(t *testing.T) {
	setupCLI(t)
	cmd := &cobra.Command{}

	oldClipboard := clipboardWriteAll
	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = oldClipboard }()

	issueTime = "10:00"
	issuePlatform = "ps5"
	defer func() { issueTime = ""; issuePlatform = "" }()
	if err := issueAdd(cmd, []string{"Weird shadows"}); err != nil {
		t.Fatalf("issueAdd failed: %v", err)
	}

	if err := issueCopy(cmd, []string{"1"}); err != nil {
		t.Fatalf("issueCopy failed: %v", err)
	}
	if copied != "[ps5] Weird shadows" {
		t.Errorf("unexpected clipboard text %q", copied)
	}
}

func TestFoundFlow(t *testing.T) {
	path := setupCLI(t)
	cmd := &cobra.Command{}

	issueTime = "10:00"
	issuePlatform = "xb1"
	defer func() { issueTime = ""; issuePlatform = "" }()
	if err := issueAdd(cmd, []string{"Known duplicate"}); err != nil {
		t.Fatalf("issueAdd failed: %v", err)
	}

	issueFoundBugNum = "BUG-1"
	defer func() { issueFoundBugNum = "" }()
	if err := issueFound(cmd, []string{"1"}); err != nil {
		t.Fatalf("issueFound failed: %v", err)
	}

	doc := readNotes(t, path)
	entries := engine.FoundEntries(doc)
	if len(entries) != 1 || entries[0].BugNum != "BUG-1" {
		t.Fatalf("unexpected found entries %v", entries)
	}

	if err := foundRetag(cmd, []string{"1", "BUG-2"}); err != nil {
		t.Fatalf("foundRetag failed: %v", err)
	}
	entries = engine.FoundEntries(readNotes(t, path))
	if entries[0].BugNum != "BUG-2" {
		t.Errorf("retag did not stick, got %q", entries[0].BugNum)
	}
}

func TestEnsureCmd(t *testing.T) {
	path := setupCLI(t)

	if err := os.WriteFile(path, []byte("# 08-30-2026 notes\n---\n\nfreeform text\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ensureCmd.RunE(&cobra.Command{}, nil); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	doc := readNotes(t, path)
	for _, want := range []string{"# issues found", "# Found / Invalid", "# reports written", "# bugs"} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing section %q after ensure", want)
		}
	}
	if !strings.Contains(doc, "freeform text") {
		t.Error("ensure must not drop existing content")
	}
}
