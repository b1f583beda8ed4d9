package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"studytrack/internal/adapters/filesystem"
	"studytrack/internal/adapters/opener"
	"studytrack/internal/adapters/tui"
	"studytrack/internal/bootstrap"
	"studytrack/internal/config"
	"studytrack/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	folderFlag := flag.String("folder", "", "study folder (default: saved folder, then "+cfg.Folder+")")
	offline := flag.Bool("offline", false, "keep progress local, never call the progress API")
	watch := flag.Bool("watch", false, "reload when files in the folder change")
	flag.Parse()

	// The alternate screen owns the terminal, so logs go to a file
	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogPath,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	rt, err := bootstrap.Open(cfg, bootstrap.Options{Folder: *folderFlag, Offline: *offline})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	var changes <-chan struct{}
	if *watch {
		w, err := filesystem.NewWatcher(rt.Folder.Root())
		if err != nil {
			logging.Warn("folder watching disabled", zap.Error(err))
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := w.Start(ctx); err != nil {
				logging.Warn("folder watching disabled", zap.Error(err))
			} else {
				defer w.Stop()
				changes = w.Changes()
			}
		}
	}

	logging.Info("studytrack starting",
		zap.String("folder", rt.Folder.Root()),
		zap.Bool("offline", rt.Client == nil),
		zap.Bool("watch", changes != nil))

	app := tui.NewApp(rt.Session, rt.Folder, opener.NewOpener(), changes)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
