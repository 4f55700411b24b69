package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// LoadDotEnv applies the given .env files in order. Missing files are
// skipped. Variables already set in the process environment, or by an
// earlier file, win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
