package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const prefsThemeKey = "LAZYRATING_THEME"

// prefsPath returns $XDG_CONFIG_HOME/lazyrating/prefs.env, or the platform
// equivalent.
func prefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "lazyrating", "prefs.env"), nil
}

// readPrefs loads stored preferences. A missing file yields no preferences.
func readPrefs(path string) (map[string]string, error) {
	prefs, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	return prefs, nil
}

// saveThemePref stores the theme name, keeping other preferences.
func saveThemePref(path, name string) error {
	prefs, err := readPrefs(path)
	if err != nil {
		return err
	}
	prefs[prefsThemeKey] = name

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := godotenv.Write(prefs, path); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
