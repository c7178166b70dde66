package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bugnotes/internal/config"
	"bugnotes/internal/notes"
	"bugnotes/internal/notesfile"
)

var (
	// Global flags
	cfgPath  string
	filePath string
	verbose  bool

	cfg    *config.Config
	engine *notes.Engine
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bugnotes",
	Short: "bugnotes - daily QA notes as structured markdown",
	Long: `bugnotes keeps a day of QA testing in one markdown file with four
canonical sections: issues found, found/invalid, reports written and bugs.

Issues are one-line observations. Promoting an issue renders a full bug
report block, moves the issue line to reports written and tags the block
with a stable content-derived id so repeating the promotion is harmless.

The file stays hand-editable throughout; every command rereads it from
disk and rewrites it whole.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(resolveConfigPath())
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		engine = notes.NewEngine(cfg.Platforms())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func resolveConfigPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultPath()
}

// notesPath resolves the file every command operates on: the --file flag
// when given, otherwise today's file in the configured notes directory.
func notesPath() string {
	if filePath != "" {
		return filePath
	}
	name := notesfile.DefaultName(time.Now().Format(notes.DateLayout))
	return filepath.Join(cfg.NotesDir, name)
}

// loadDoc reads the notes file. requireFile distinguishes read commands,
// which need an existing document, from mutating ones that are happy to
// start from nothing.
func loadDoc(requireFile bool) (string, error) {
	path := notesPath()
	text, err := notesfile.Load(path)
	if err != nil {
		if os.IsNotExist(err) && !requireFile {
			return "", nil
		}
		return "", fmt.Errorf("no notes file at %s: %w", path, err)
	}
	return text, nil
}

// writeDoc persists a changed document, backing up the previous version
// first when configured. Unchanged text is not rewritten.
func writeDoc(oldText, newText string) error {
	if newText == oldText {
		logger.Debug("document unchanged, skipping write")
		return nil
	}
	path := notesPath()
	if cfg.BackupOnWrite {
		backupPath, err := notesfile.Backup(path, time.Now())
		if err != nil {
			return err
		}
		if backupPath != "" {
			logger.Debug("wrote backup", zap.String("path", backupPath))
		}
	}
	if err := notesfile.Save(path, newText); err != nil {
		return err
	}
	logger.Info("wrote notes file", zap.String("path", path))
	return nil
}

// pickIndex parses a 1-based list position as printed by the list commands.
func pickIndex(arg string, n int, what string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("no %s #%s (have %d)", what, arg, n)
	}
	return i - 1, nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "notes file to operate on (default: today's file in notes_dir)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: .bugnotes.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(ensureCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(foundCmd)
	rootCmd.AddCommand(bugCmd)
	rootCmd.AddCommand(headerCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(browseCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
