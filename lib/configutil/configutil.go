package configutil

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
)

// LocalPath is the override file that sits next to path, config.json5 is
// overridden by config.local.json5.
func LocalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// decodeFile reports false when path does not exist or is blank.
func decodeFile[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(contents)) == 0 {
		return false, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// Read layers path and then LocalPath(path) on top of defaults. Fields left
// empty in a file keep the value of the layer below, missing files are skipped.
func Read[T any](path string, defaults T) (T, error) {
	out := defaults

	for _, layer := range []string{path, LocalPath(path)} {
		var values T
		found, err := decodeFile(layer, &values)
		if err != nil {
			return defaults, err
		}
		if !found {
			continue
		}
		err = mergo.Merge(&out, values, mergo.WithOverride)
		if err != nil {
			return defaults, fmt.Errorf("merge %s: %w", layer, err)
		}
		slog.Debug("loaded config", "file", layer)
	}

	return out, nil
}

// LoadDotenv loads the given .env files into the process environment, files
// that do not exist are skipped. Variables already set are never overwritten.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		_, err := os.Stat(f)
		if os.IsNotExist(err) {
			continue
		}
		err = godotenv.Load(f)
		if err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
		slog.Debug("loaded environment file", "file", f)
	}
	return nil
}
