package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bugnotes/internal/notes"
)

var (
	issueTime     string
	issuePlatform string
)

// issueCmd groups operations on the issues-found section
var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Record and manage one-line issue observations",
}

var issueAddCmd = &cobra.Command{
	Use:   "add [description]",
	Short: "Append an issue line to the issues found section",
	Long: `Appends a timestamped issue line. The time is normalized to 12-hour
form; omitted or unparseable times use the current clock.

Example:
  bugnotes issue add --platform ps5 "Crash when loading the arena"`,
	Args: cobra.MinimumNArgs(1),
	RunE: issueAdd,
}

var issueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues in file order",
	RunE:  issueList,
}

var issueRemoveCmd = &cobra.Command{
	Use:   "remove [number]",
	Short: "Remove an issue by its list number",
	Args:  cobra.ExactArgs(1),
	RunE:  issueRemove,
}

var issueCopyCmd = &cobra.Command{
	Use:   "copy [number]",
	Short: "Copy an issue to the clipboard as \"[platform] description\"",
	Args:  cobra.ExactArgs(1),
	RunE:  issueCopy,
}

var issueFoundCmd = &cobra.Command{
	Use:   "found [number]",
	Short: "Move an issue to the found/invalid section",
	Long: `Moves an issue line to found/invalid, optionally tagging it with an
external bug number. Use this for issues that turn out to be known,
invalid or not worth a full report.`,
	Args: cobra.ExactArgs(1),
	RunE: issueFound,
}

var issueFoundBugNum string

func init() {
	issueAddCmd.Flags().StringVarP(&issueTime, "time", "t", "", "time of the observation (default: now)")
	issueAddCmd.Flags().StringVarP(&issuePlatform, "platform", "p", "", "platform the issue was seen on (default: config default_platform)")
	issueFoundCmd.Flags().StringVar(&issueFoundBugNum, "bugnum", "", "external bug number tag")

	issueCmd.AddCommand(issueAddCmd)
	issueCmd.AddCommand(issueListCmd)
	issueCmd.AddCommand(issueRemoveCmd)
	issueCmd.AddCommand(issueCopyCmd)
	issueCmd.AddCommand(issueFoundCmd)
}

func resolvePlatform() string {
	if issuePlatform != "" {
		return strings.ToLower(issuePlatform)
	}
	return cfg.DefaultPlatform
}

func issueAdd(cmd *cobra.Command, args []string) error {
	desc := strings.TrimSpace(strings.Join(args, " "))
	if desc == "" {
		return fmt.Errorf("empty description")
	}

	doc, err := loadDoc(false)
	if err != nil {
		return err
	}
	out := engine.AddIssue(doc, issueTime, resolvePlatform(), desc)
	if err := writeDoc(doc, out); err != nil {
		return err
	}

	added := engine.Issues(out)
	last := added[len(added)-1]
	logger.Info("added issue", zap.String("platform", last.Platform), zap.String("time", last.Time))
	fmt.Println(last.Line())
	return nil
}

func issueList(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	issues := engine.Issues(doc)
	if len(issues) == 0 {
		fmt.Println("No open issues.")
		return nil
	}
	for i, is := range issues {
		fmt.Printf("%3d. [%s][%s] %s\n", i+1, is.Time, is.Platform, is.Desc)
	}
	return nil
}

// selectIssue resolves a 1-based list number to the issue it refers to.
func selectIssue(doc, arg string) (notes.Issue, error) {
	issues := engine.Issues(doc)
	i, err := pickIndex(arg, len(issues), "issue")
	if err != nil {
		return notes.Issue{}, err
	}
	return issues[i], nil
}

func issueRemove(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	is, err := selectIssue(doc, args[0])
	if err != nil {
		return err
	}
	if err := writeDoc(doc, engine.RemoveIssue(doc, is)); err != nil {
		return err
	}
	fmt.Printf("Removed: %s\n", is.Line())
	return nil
}

func issueCopy(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	is, err := selectIssue(doc, args[0])
	if err != nil {
		return err
	}
	text := fmt.Sprintf("[%s] %s", is.Platform, is.Desc)
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	fmt.Printf("Copied: %s\n", text)
	return nil
}

func issueFound(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	is, err := selectIssue(doc, args[0])
	if err != nil {
		return err
	}
	out := engine.MoveToFound(doc, is, issueFoundBugNum)
	if err := writeDoc(doc, out); err != nil {
		return err
	}
	fmt.Printf("Moved to found/invalid: %s\n", is.Line())
	return nil
}
