package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"

	"github.com/olivier-w/climp3d/internal/config"
	"github.com/olivier-w/climp3d/internal/media"
	"github.com/olivier-w/climp3d/internal/ui"
	"github.com/olivier-w/climp3d/internal/viewport"
)

// resolveInitialPath validates an optional command-line file. An empty arg
// means the program starts on the prompt.
func resolveInitialPath(arg string) (string, error) {
	if arg == "" {
		return "", nil
	}
	info, err := os.Stat(arg)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", arg)
	}
	ext := strings.ToLower(filepath.Ext(arg))
	if !media.IsSupportedExt(ext) {
		return "", fmt.Errorf("unsupported format %s (supported: %s)", ext, media.SupportedExtsList())
	}
	return arg, nil
}

// buildModel wires configuration and the terminal into the root model.
func buildModel(cfg config.Config, args []string) (ui.Model, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	path, err := resolveInitialPath(arg)
	if err != nil {
		return ui.Model{}, err
	}
	if path != "" && cfg.StartDir == "." {
		cfg.StartDir = filepath.Dir(path)
	}

	cols, rows := viewport.TerminalSize(int(os.Stdout.Fd()))
	return ui.New(ui.Options{
		Config:      cfg,
		Profile:     termenv.EnvColorProfile(),
		InitialPath: path,
		Width:       cols,
		Height:      rows,
	}), nil
}
