package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// CommandRunner starts a detached process
type CommandRunner interface {
	Start(name string, args ...string) error
}

// CommandRunnerFunc adapts a function to CommandRunner
type CommandRunnerFunc func(name string, args ...string) error

// Start calls f(name, args...)
func (f CommandRunnerFunc) Start(name string, args ...string) error { return f(name, args...) }

// execRunner starts the process and reaps it in the background
type execRunner struct {
	logger *zap.Logger
}

func (r execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			r.logger.Debug("launched process exited", zap.String("command", name), zap.Error(err))
		}
	}()
	return nil
}

// LauncherConfig names the external commands
type LauncherConfig struct {
	Editor   string
	Notebook []string
	Folder   string
}

// DefaultLauncherConfig returns commands for the host platform
func DefaultLauncherConfig() LauncherConfig {
	return LauncherConfig{
		Editor:   "code",
		Notebook: []string{"jupyter", "notebook"},
		Folder:   folderOpener(runtime.GOOS),
	}
}

func folderOpener(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// Launcher opens paths in external tools without waiting for them.
type Launcher struct {
	cfg        LauncherConfig
	runner     CommandRunner
	normalizer *Normalizer
	logger     *zap.Logger
}

// NewLauncher creates a launcher. A nil runner starts real processes.
func NewLauncher(cfg LauncherConfig, runner CommandRunner, normalizer *Normalizer, logger *zap.Logger) *Launcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if runner == nil {
		runner = execRunner{logger: logger}
	}
	if normalizer == nil {
		normalizer = NewNormalizer(HostStyle(), logger, 0)
	}
	defaults := DefaultLauncherConfig()
	if cfg.Editor == "" {
		cfg.Editor = defaults.Editor
	}
	if len(cfg.Notebook) == 0 {
		cfg.Notebook = defaults.Notebook
	}
	if cfg.Folder == "" {
		cfg.Folder = defaults.Folder
	}
	return &Launcher{cfg: cfg, runner: runner, normalizer: normalizer, logger: logger}
}

// OpenInEditor opens a file or folder in the configured editor
func (l *Launcher) OpenInEditor(raw string) error {
	p, err := l.existing(raw, false)
	if err != nil {
		return err
	}
	return l.start(l.cfg.Editor, p)
}

// OpenFolder reveals a directory in the platform file manager
func (l *Launcher) OpenFolder(raw string) error {
	p, err := l.existing(raw, true)
	if err != nil {
		return err
	}
	return l.start(l.cfg.Folder, p)
}

// OpenNotebook opens a notebook file with jupyter
func (l *Launcher) OpenNotebook(raw string) error {
	p, err := l.existing(raw, false)
	if err != nil {
		return err
	}
	return l.start(l.cfg.Notebook[0], append(l.cfg.Notebook[1:len(l.cfg.Notebook):len(l.cfg.Notebook)], p)...)
}

func (l *Launcher) existing(raw string, wantDir bool) (string, error) {
	p := l.normalizer.Normalize(raw)
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return "", fmt.Errorf("stat %s: %w", p, err)
	}
	if wantDir && !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidPath, p)
	}
	return p, nil
}

func (l *Launcher) start(name string, args ...string) error {
	if err := l.runner.Start(name, args...); err != nil {
		l.logger.Warn("launch failed", zap.String("command", name), zap.Strings("args", args), zap.Error(err))
		return fmt.Errorf("launch %s: %w", name, err)
	}
	l.logger.Info("launched", zap.String("command", name), zap.Strings("args", args))
	return nil
}
