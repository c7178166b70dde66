package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bugnotes/internal/notes"
)

// bugCmd groups operations on the bugs section
var bugCmd = &cobra.Command{
	Use:   "bug",
	Short: "Promote issues to bug reports and manage them",
}

var (
	promotePrefix   string
	promoteCustom   bool
	promoteSteps    []string
	promoteObserved string
	promoteExpected string
)

var bugPromoteCmd = &cobra.Command{
	Use:   "promote [issue-number]",
	Short: "Turn an issue into a full bug report block",
	Long: `Renders a bug report from an issue: summary, platform, username and
build from the header, a numbered steps block, and observed/expected
results. The issue line moves to reports written.

The report carries a stable id derived from the issue's time, platform
and description, so promoting the same issue twice changes nothing.

Example:
  bugnotes bug promote 1 --observed "Hard crash" --expected "No crash" \
      --step "Open the map." --step "Fast travel."`,
	Args: cobra.ExactArgs(1),
	RunE: bugPromote,
}

var bugListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bug reports in file order",
	RunE:  bugList,
}

var (
	editSummary  string
	editSteps    string
	editObserved string
	editExpected string
	editBuild    string
	editUsername string
	editReport   string
)

var bugEditCmd = &cobra.Command{
	Use:   "edit [number]",
	Short: "Rewrite a bug report's content in place",
	Long: `Replaces a report's summary, steps, observed/expected results and
build. The report keeps its id, position, platform and assigned bug
number. Flags left unset clear the field; --username left unset keeps
the current value.

With --report the given text is split at the "Observed Results:" and
"Expected Results:" labels into steps, observed and expected; when
either label is missing the whole text becomes observed results. The
other flags override the split parts, and summary and build carry over
from the record unless set.`,
	Args: cobra.ExactArgs(1),
	RunE: bugEdit,
}

var bugSetNumCmd = &cobra.Command{
	Use:   "set-num [number] [bugnum]",
	Short: "Assign the tracker's bug number to a report",
	Long: `Records the external bug number on a report, in both the report
header and its metadata. Pass an empty string to clear it.`,
	Args: cobra.ExactArgs(2),
	RunE: bugSetNum,
}

var bugCopyFull bool

var bugCopyCmd = &cobra.Command{
	Use:   "copy [number]",
	Short: "Copy a report reference to the clipboard",
	Long: `Copies "[bugnum] summary" for pasting into chat, or the full
steps/observed/expected report text with --full.`,
	Args: cobra.ExactArgs(1),
	RunE: bugCopy,
}

func init() {
	bugPromoteCmd.Flags().StringVar(&promotePrefix, "prefix", "", "summary prefix, rendered as \"prefix: description\"")
	bugPromoteCmd.Flags().BoolVar(&promoteCustom, "custom", false, "number only the given steps, skipping the base template steps")
	bugPromoteCmd.Flags().StringArrayVar(&promoteSteps, "step", nil, "reproduction step (repeatable)")
	bugPromoteCmd.Flags().StringVar(&promoteObserved, "observed", "", "observed results")
	bugPromoteCmd.Flags().StringVar(&promoteExpected, "expected", "", "expected results")

	bugEditCmd.Flags().StringVar(&editSummary, "summary", "", "new summary")
	bugEditCmd.Flags().StringVar(&editSteps, "steps", "", "new steps, one per line (numbered automatically)")
	bugEditCmd.Flags().StringVar(&editObserved, "observed", "", "new observed results")
	bugEditCmd.Flags().StringVar(&editExpected, "expected", "", "new expected results")
	bugEditCmd.Flags().StringVar(&editBuild, "build", "", "new build number (empty drops the line)")
	bugEditCmd.Flags().StringVar(&editUsername, "username", "", "new username (unset keeps the current one)")
	bugEditCmd.Flags().StringVar(&editReport, "report", "", "full report text, split at the result labels")

	bugCopyCmd.Flags().BoolVar(&bugCopyFull, "full", false, "copy the full report text")

	bugCmd.AddCommand(bugPromoteCmd)
	bugCmd.AddCommand(bugListCmd)
	bugCmd.AddCommand(bugEditCmd)
	bugCmd.AddCommand(bugSetNumCmd)
	bugCmd.AddCommand(bugCopyCmd)
}

func selectBug(doc, arg string) (notes.Bug, error) {
	bugs := engine.Bugs(doc)
	i, err := pickIndex(arg, len(bugs), "bug")
	if err != nil {
		return notes.Bug{}, err
	}
	return bugs[i], nil
}

func bugPromote(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	is, err := selectIssue(doc, args[0])
	if err != nil {
		return err
	}

	mode := notes.StepsDefault
	if promoteCustom {
		mode = notes.StepsCustom
	}
	out := engine.Promote(doc, is, notes.PromoteRequest{
		SummaryPrefix: promotePrefix,
		Mode:          mode,
		ExtraSteps:    promoteSteps,
		Observed:      promoteObserved,
		Expected:      promoteExpected,
	})
	if out == doc {
		fmt.Println("Already promoted, nothing to do.")
		return nil
	}
	if err := writeDoc(doc, out); err != nil {
		return err
	}
	logger.Info("promoted issue", zap.String("id", notes.EventID(is)), zap.String("platform", is.Platform))
	fmt.Printf("Promoted [%s]: %s\n", notes.EventID(is), is.Desc)
	return nil
}

func bugList(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	bugs := engine.Bugs(doc)
	if len(bugs) == 0 {
		fmt.Println("No bug reports.")
		return nil
	}
	h := engine.ParseHeader(doc)
	for i, b := range bugs {
		fmt.Printf("%3d. [%s] %-10s %-9s %-12s %s\n", i+1, b.ID, b.BugNum, b.Platform, notes.DisplayUsername(h, b), b.Summary)
	}
	return nil
}

func bugEdit(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	b, err := selectBug(doc, args[0])
	if err != nil {
		return err
	}

	edit := notes.BugEdit{
		Summary:  editSummary,
		Steps:    editSteps,
		Observed: editObserved,
		Expected: editExpected,
		Build:    editBuild,
	}
	if cmd.Flags().Changed("report") {
		steps, observed, expected := notes.SplitReport(editReport)
		if !cmd.Flags().Changed("steps") {
			edit.Steps = steps
		}
		if !cmd.Flags().Changed("observed") {
			edit.Observed = observed
		}
		if !cmd.Flags().Changed("expected") {
			edit.Expected = expected
		}
		// Report text carries neither summary nor build; keep the
		// record's own unless the flags say otherwise.
		if !cmd.Flags().Changed("summary") {
			edit.Summary = b.Summary
		}
		if !cmd.Flags().Changed("build") {
			edit.Build = b.Build
		}
	}
	if cmd.Flags().Changed("username") {
		edit.Username = &editUsername
	}
	if err := writeDoc(doc, engine.EditBug(doc, b.ID, edit)); err != nil {
		return err
	}
	fmt.Printf("Edited [%s]\n", b.ID)
	return nil
}

func bugSetNum(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	b, err := selectBug(doc, args[0])
	if err != nil {
		return err
	}
	if err := writeDoc(doc, engine.SetBugNumber(doc, b.ID, args[1])); err != nil {
		return err
	}
	if args[1] == "" {
		fmt.Printf("Cleared bug number on [%s]\n", b.ID)
	} else {
		fmt.Printf("Set %s on [%s]\n", args[1], b.ID)
	}
	return nil
}

func bugCopy(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	b, err := selectBug(doc, args[0])
	if err != nil {
		return err
	}

	var text string
	switch {
	case bugCopyFull:
		text = notes.ComposeReport(b)
	case b.BugNum == "" || b.BugNum == "null":
		text = b.Summary
	default:
		text = fmt.Sprintf("[%s] %s", b.BugNum, b.Summary)
	}
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("clipboard write failed: %w", err)
	}
	fmt.Printf("Copied: %s\n", strings.SplitN(text, "\n", 2)[0])
	return nil
}
