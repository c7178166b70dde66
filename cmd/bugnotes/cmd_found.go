package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bugnotes/internal/notes"
)

// foundCmd groups operations on the found/invalid section
var foundCmd = &cobra.Command{
	Use:   "found",
	Short: "Manage triaged entries in the found/invalid section",
}

var foundListCmd = &cobra.Command{
	Use:   "list",
	Short: "List found/invalid entries in file order",
	RunE:  foundList,
}

var foundRetagCmd = &cobra.Command{
	Use:   "retag [number] [bugnum]",
	Short: "Rewrite an entry's bug-number tag in place",
	Long: `Rewrites the bug-number tag of a found/invalid entry without moving
it. Pass an empty string to drop the tag:

  bugnotes found retag 2 BUG-1234
  bugnotes found retag 2 ""`,
	Args: cobra.ExactArgs(2),
	RunE: foundRetag,
}

var foundCopyCmd = &cobra.Command{
	Use:   "copy [number]",
	Short: "Copy an entry to the clipboard as \"[bugnum] ~~description~~\"",
	Args:  cobra.ExactArgs(1),
	RunE:  foundCopy,
}

func init() {
	foundCmd.AddCommand(foundListCmd)
	foundCmd.AddCommand(foundRetagCmd)
	foundCmd.AddCommand(foundCopyCmd)
}

func selectFound(doc, arg string) (notes.FoundEntry, error) {
	entries := engine.FoundEntries(doc)
	i, err := pickIndex(arg, len(entries), "found entry")
	if err != nil {
		return notes.FoundEntry{}, err
	}
	return entries[i], nil
}

func foundList(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	entries := engine.FoundEntries(doc)
	if len(entries) == 0 {
		fmt.Println("No found/invalid entries.")
		return nil
	}
	for i, f := range entries {
		tag := f.BugNum
		if tag == "" {
			tag = "-"
		}
		fmt.Printf("%3d. %-10s [%s][%s] %s\n", i+1, tag, f.Time, f.Platform, f.Desc)
	}
	return nil
}

func foundRetag(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	entry, err := selectFound(doc, args[0])
	if err != nil {
		return err
	}
	if err := writeDoc(doc, engine.RetagFound(doc, entry, args[1])); err != nil {
		return err
	}
	if args[1] == "" {
		fmt.Printf("Dropped tag from: %s\n", entry.Issue.Line())
	} else {
		fmt.Printf("Retagged as %s: %s\n", args[1], entry.Issue.Line())
	}
	return nil
}

// The strikethrough marks the issue as dealt with when pasted into chat.
func foundCopy(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	entry, err := selectFound(doc, args[0])
	if err != nil {
		return err
	}
	text := fmt.Sprintf("[%s] ~~%s~~", entry.BugNum, entry.Desc)
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	fmt.Printf("Copied: %s\n", text)
	return nil
}
