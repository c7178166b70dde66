package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bugnotes/internal/notesfile"
)

// watchCmd keeps the notes file scaffolded while it is hand-edited
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the notes file and re-add missing sections after edits",
	Long: `Watches the notes file for outside edits. When an edit settles, the
file is reread and any canonical section that went missing is appended
again. Edits that leave all sections intact are untouched, so the
watcher never rewrites a file it does not need to.

Runs until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := notesPath()
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no notes file at %s (run 'bugnotes init' first)", path)
	}

	onChange := func(p string) {
		text, err := notesfile.Load(p)
		if err != nil {
			logger.Error("reload after edit failed", zap.Error(err))
			return
		}
		ensured := engine.EnsureSections(text)
		if ensured == text {
			logger.Debug("edit kept all sections, nothing to do")
			return
		}
		// Writing triggers one more event; the next pass sees an
		// unchanged document and stops the cycle.
		if err := notesfile.Save(p, ensured); err != nil {
			logger.Error("rescaffold write failed", zap.Error(err))
			return
		}
		logger.Info("re-added missing sections", zap.String("path", p))
		fmt.Println("Re-added missing sections.")
	}

	w, err := notesfile.NewWatcher(path, cfg.GetWatchDebounce(), logger, onChange)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Printf("Watching %s (ctrl-c to stop)\n", path)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	return nil
}
