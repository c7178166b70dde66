package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// headerCmd groups operations on the document header block
var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Show or rewrite the header block",
}

var headerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the parsed header",
	RunE:  headerShow,
}

var (
	setUsers     []string
	setGen4Build string
	setGen5Build string
)

var headerSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the header's usernames and build numbers",
	Long: `Rewrites the header block. This is a full replacement: platforms not
named in --user flags are dropped, so state the complete set.

Example:
  bugnotes header set --user ps5=alice --user pc=carol --gen5-build 203`,
	RunE: headerSet,
}

func init() {
	headerSetCmd.Flags().StringArrayVar(&setUsers, "user", nil, "platform=username binding (repeatable)")
	headerSetCmd.Flags().StringVar(&setGen4Build, "gen4-build", "", "gen4 build number")
	headerSetCmd.Flags().StringVar(&setGen5Build, "gen5-build", "", "gen5 build number")

	headerCmd.AddCommand(headerShowCmd)
	headerCmd.AddCommand(headerSetCmd)
}

func headerShow(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(true)
	if err != nil {
		return err
	}
	h := engine.ParseHeader(doc)

	fmt.Printf("Date: %s\n", h.Date)
	if len(h.Usernames) == 0 {
		fmt.Println("Usernames: (none)")
	} else {
		fmt.Println("Usernames:")
		for _, p := range engine.Platforms().All() {
			if name := h.Usernames[p]; name != "" {
				fmt.Printf("  %-10s %s\n", p, name)
			}
		}
	}
	fmt.Printf("Gen4 build: %s\n", orDash(h.Gen4Build))
	fmt.Printf("Gen5 build: %s\n", orDash(h.Gen5Build))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func headerSet(cmd *cobra.Command, args []string) error {
	doc, err := loadDoc(false)
	if err != nil {
		return err
	}
	usernames, err := parseUserFlags(setUsers)
	if err != nil {
		return err
	}
	out := engine.ReplaceHeader(doc, usernames, setGen4Build, setGen5Build)
	if err := writeDoc(doc, out); err != nil {
		return err
	}
	fmt.Println("Header updated.")
	return nil
}
