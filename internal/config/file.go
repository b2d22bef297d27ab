package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigFile names the environment variable that points at the defaults file.
const EnvConfigFile = "ORGANIZE_FILES_CONFIG"

// FileConfig is the TOML defaults file. Every key is optional.
//
//	source    = "/data/incoming"
//	dest      = "sftp://joe@nas//srv/sorted"
//	pattern   = "*.pdf"
//	delimiter = "-"
//	conflict  = "rename"
//	log_dir   = "/var/log/organize-files"
type FileConfig struct {
	Source    string          `toml:"source"`
	Dest      string          `toml:"dest"`
	Pattern   string          `toml:"pattern"`
	Delimiter string          `toml:"delimiter"`
	Conflict  *ConflictPolicy `toml:"conflict"`
	LogDir    string          `toml:"log_dir"`
}

// DefaultsFilePath picks the defaults file: the --config flag, then the
// environment variable, then organize-files/config.toml in the user config
// directory. explicit reports whether the user named the file, in which
// case it must exist.
func DefaultsFilePath(flagValue, envValue string) (path string, explicit bool) {
	if flagValue != "" {
		return flagValue, true
	}

	if envValue != "" {
		return envValue, true
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}

	return filepath.Join(dir, "organize-files", "config.toml"), false
}

// LoadFile reads and decodes a defaults file. Unknown keys are rejected.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var file FileConfig

	err = decoder.Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &file, nil
}
