// Package app assembles the tracker front-end: tool discovery, the feature
// client, the background watcher, and the Bubble Tea program.
package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"featboard/internal/backend"
	"featboard/internal/feature"
	"featboard/internal/invoker"
	"featboard/internal/setup"
	"featboard/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// toolBinary is the tracker executable searched for when no explicit path is
// configured.
const toolBinary = "featboard-tool"

// refreshInterval paces the background feature-list watcher.
const refreshInterval = 5 * time.Second

// Config is the runtime configuration the app needs to start.
type Config struct {
	// ToolPath is either the tracker binary itself or a directory holding
	// it. Empty falls back to a PATH lookup.
	ToolPath string
	// Editor is the external editor program; empty selects the inline
	// editor.
	Editor string
	// Width and Height pin the viewport; zero follows the terminal.
	Width  int
	Height int
}

// Run starts the interactive session and blocks until it exits.
func Run(cfg Config) error {
	program, err := resolveTool(cfg.ToolPath)
	if err != nil {
		return err
	}

	client := feature.NewClient(invoker.NewExec(program))
	watcher := backend.NewWatcher(client, refreshInterval)
	defer func() {
		watcher.Stop()
		watcher.Wait()
	}()

	setupStore := setup.Store{Path: setup.DefaultPath()}
	model := ui.NewModel(client, setupStore, cfg.Editor, cfg.Width, cfg.Height, watcher)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// resolveTool turns the configured path into an executable: a file is used
// as-is, a directory is searched for the tracker binary, and an empty path
// falls back to PATH.
func resolveTool(path string) (string, error) {
	if path == "" {
		found, err := exec.LookPath(toolBinary)
		if err != nil {
			return "", fmt.Errorf("tracker tool %q not found in PATH; set FEATBOARD_TOOL_PATH or --tool-path", toolBinary)
		}
		return found, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("tracker tool path %q: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	candidate := filepath.Join(path, toolBinary)
	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("tracker tool %q not found under %q", toolBinary, path)
	}
	return candidate, nil
}
