// Package datadir resolves the per-user directory that holds application data.
//
// The rules follow the XDG base directory layout on every Unix-like system,
// including macOS, and LOCALAPPDATA on Windows, so an existing storage file
// written by the desktop application is found in the same place.
package datadir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the user data directory.
const AppName = "norka"

// ErrNoHome is returned when no base directory can be determined.
var ErrNoHome = errors.New("cannot determine user data directory")

// Resolve returns the data directory for app, e.g. ~/.local/share/norka.
// The directory is not created.
func Resolve(app string) (string, error) {
	return resolve(app, runtime.GOOS, os.Getenv, os.UserHomeDir)
}

func resolve(app, goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	base, err := userDataDir(goos, getenv, home)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, app), nil
}

func userDataDir(goos string, getenv func(string) string, home func() (string, error)) (string, error) {
	if goos == "windows" {
		if dir := getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		return "", fmt.Errorf("%w: LOCALAPPDATA is not set", ErrNoHome)
	}

	// XDG treats relative values as invalid; ignore them.
	if dir := getenv("XDG_DATA_HOME"); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}

	h, err := home()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoHome, err)
	}
	if h == "" {
		return "", ErrNoHome
	}
	return filepath.Join(h, ".local", "share"), nil
}
