package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bugnotes/internal/notes"
)

func sampleBugs() []notes.Bug {
	return []notes.Bug{
		{
			ID:       "aaaaaaaaaaaa",
			Time:     "10:31 AM",
			Platform: "ps5",
			Template: notes.Gen5,
			BugNum:   "BUG-42",
			Summary:  "Crash on load",
			Username: "alice",
			Steps:    "Steps to Reproduce:\n1. Load the save",
			Observed: "Hard crash.",
			Expected: "No crash.",
			Build:    "202",
		},
		{
			ID:       "bbbbbbbbbbbb",
			Time:     "11:00 AM",
			Platform: "xb1",
			Template: notes.Gen4,
			BugNum:   "null",
			Summary:  "Audio drop in the arena",
			Steps:    "Steps to Reproduce:\n1. Enter the arena",
			Observed: "Silence.",
			Expected: "Audio.",
		},
	}
}

func TestBrowseFilterBySummaryAndBugNum(t *testing.T) {
	model := NewBrowseModel(sampleBugs(), notes.Header{})

	items := model.list.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	bi, ok := items[0].(bugItem)
	if !ok {
		t.Fatal("expected bugItem")
	}
	fv := bi.FilterValue()
	if !strings.Contains(fv, "Crash on load") || !strings.Contains(fv, "BUG-42") {
		t.Errorf("FilterValue should cover summary and bug number, got %q", fv)
	}
}

func TestBrowseClipboardKeys(t *testing.T) {
	oldClipboard := clipboardWriteAll
	var copied []string
	clipboardWriteAll = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	defer func() { clipboardWriteAll = oldClipboard }()

	model := NewBrowseModel(sampleBugs(), notes.Header{})

	// Trigger selection update
	next, _ := model.Update(nil)
	model = next.(BrowseModel)
	if model.selected == nil {
		t.Fatal("expected a selected bug after Update(nil)")
	}

	// 'c' copies the full report
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}
	next, cmd := model.Update(msg)
	model = next.(BrowseModel)
	if cmd == nil {
		t.Error("expected a tea.Cmd after pressing 'c'")
	}
	if len(copied) != 1 || !strings.Contains(copied[0], "Observed Results:") {
		t.Errorf("expected full report on clipboard, got %v", copied)
	}

	// 'y' copies the short reference
	msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}
	_, cmd = model.Update(msg)
	if cmd == nil {
		t.Error("expected a tea.Cmd after pressing 'y'")
	}
	if len(copied) != 2 || copied[1] != "[BUG-42] Crash on load" {
		t.Errorf("expected short reference on clipboard, got %v", copied)
	}
}

func TestBrowseUsernameFallsBackToHeader(t *testing.T) {
	// The second sample bug has no username of its own; the header
	// assignment for its platform fills in.
	h := notes.Header{Usernames: map[string]string{"xb1": "bob"}}
	model := NewBrowseModel(sampleBugs(), h)

	detail := model.renderBug(model.bugs[1])
	if !strings.Contains(detail, "Username: bob") {
		t.Errorf("expected header username in detail pane, got:\n%s", detail)
	}

	// A record with its own username keeps it.
	detail = model.renderBug(model.bugs[0])
	if !strings.Contains(detail, "Username: alice") {
		t.Errorf("expected record username in detail pane, got:\n%s", detail)
	}
}

func TestBrowseQuitKey(t *testing.T) {
	model := NewBrowseModel(sampleBugs(), notes.Header{})
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestBrowseEmptyState(t *testing.T) {
	model := NewBrowseModel(nil, notes.Header{})
	if !strings.Contains(model.View(), "No bug reports") {
		t.Error("empty browser should say so")
	}
}
