package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// logger discards everything unless TASKDECK_DEBUG is set; the
// alternate screen owns stdout, so diagnostics go to a file.
var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

func initLogger() {
	if os.Getenv("TASKDECK_DEBUG") == "" {
		return
	}
	path, err := logFilePath()
	if err != nil {
		fmt.Println("warning: failed to resolve log path:", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Println("warning: failed to create log directory:", err)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Println("warning: failed to open log file:", err)
		return
	}
	logger = slog.New(slog.NewJSONHandler(f, nil))
	logger.Info("logger initialized")
}

func main() {
	initLogger()

	cfg, cfgPath, err := loadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	initRenderer(cfg.Theme)

	dataFile, err := dataFilePath(cfg)
	if err != nil {
		fmt.Printf("Error resolving data file: %v\n", err)
		os.Exit(1)
	}

	store := NewStore(dataFile)

	// Provision and validate the store before entering the alternate
	// screen; a corrupt document should fail loudly, not mid-session.
	tasks, err := store.Load()
	if err != nil {
		fmt.Printf("Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	source, err := NewEventSource(dataFile, cfg.tickInterval())
	if err != nil {
		fmt.Printf("Error starting event source: %v\n", err)
		os.Exit(1)
	}
	defer source.Close()
	source.Start()

	logger.Info("session starting", "data_file", dataFile, "tasks", len(tasks))

	p := tea.NewProgram(newModel(store, source, cfgPath, tasks), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		fmt.Printf("Error running taskdeck: %v\n", err)
		os.Exit(1)
	}

	if m, ok := final.(model); ok && m.err != nil {
		fmt.Printf("Error: %v\n", m.err)
		os.Exit(1)
	}
}
