package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"bugnotes/cmd/bugnotes/ui"
)

// browseCmd opens the interactive bug browser
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the day's bug reports interactively",
	Long: `Opens a terminal browser over the bugs section: a filterable list on
the left, the selected report on the right. From there reports can be
copied whole or as short references.`,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	bugs := engine.Bugs(doc)
	if len(bugs) == 0 {
		fmt.Println("No bug reports to browse.")
		return nil
	}

	p := tea.NewProgram(ui.NewBrowseModel(bugs, engine.ParseHeader(doc)), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
