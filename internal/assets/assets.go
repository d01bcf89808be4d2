package assets

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
)

// DefaultConfigName is the file written into an empty config directory.
const DefaultConfigName = "config.yaml"

//go:embed default-config.yaml
var defaultConfig []byte

// DefaultConfig returns the embedded default configuration.
func DefaultConfig() []byte { return append([]byte(nil), defaultConfig...) }

// WriteDefaultConfigIfMissing writes the default config to p if it does not
// exist, creating parent directories.
func WriteDefaultConfigIfMissing(p string) error {
	if p == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.WriteFile(p, defaultConfig, 0o644)
}
