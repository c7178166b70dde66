package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bugnotes/internal/notes"
)

var (
	initUsers     []string
	initGen4Build string
	initGen5Build string
	initDate      string
	initForce     bool
)

// initCmd creates a fresh notes file for the day
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create today's notes file with header and empty sections",
	Long: `Creates a notes file with the date header, username and build-number
lines, and the four canonical sections.

Example:
  bugnotes init --user ps5=alice --user xb1=bob --gen5-build 202`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringArrayVar(&initUsers, "user", nil, "platform=username binding (repeatable)")
	initCmd.Flags().StringVar(&initGen4Build, "gen4-build", "", "gen4 build number")
	initCmd.Flags().StringVar(&initGen5Build, "gen5-build", "", "gen5 build number")
	initCmd.Flags().StringVar(&initDate, "date", "", "date for the header, mm-dd-yyyy (default: today)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := notesPath()
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	usernames, err := parseUserFlags(initUsers)
	if err != nil {
		return err
	}

	date := initDate
	if date == "" {
		date = time.Now().Format(notes.DateLayout)
	}

	doc := engine.NewDocument(notes.Header{
		Date:      date,
		Usernames: usernames,
		Gen4Build: initGen4Build,
		Gen5Build: initGen5Build,
	})
	if err := writeDoc("", doc); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

// parseUserFlags turns repeated platform=username flags into a map,
// rejecting unrecognized platforms up front.
func parseUserFlags(flags []string) (map[string]string, error) {
	usernames := make(map[string]string, len(flags))
	for _, f := range flags {
		platform, name, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --user %q (want platform=username)", f)
		}
		platform = strings.ToLower(strings.TrimSpace(platform))
		if !engine.Platforms().Contains(platform) {
			return nil, fmt.Errorf("unknown platform %q (known: %s)", platform, strings.Join(engine.Platforms().All(), ", "))
		}
		usernames[platform] = strings.TrimSpace(name)
	}
	return usernames, nil
}

// ensureCmd rescaffolds an existing file
var ensureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Add any missing canonical sections to the notes file",
	Long: `Scans the notes file for the four canonical sections and appends any
that are missing. Existing content, including hand-written section
spellings, is left exactly as it is. Safe to run any number of times.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDoc(false)
		if err != nil {
			return err
		}
		ensured := engine.EnsureSections(doc)
		if err := writeDoc(doc, ensured); err != nil {
			return err
		}
		if ensured == doc {
			fmt.Println("All sections present.")
		} else {
			fmt.Println("Added missing sections.")
		}
		return nil
	},
}
