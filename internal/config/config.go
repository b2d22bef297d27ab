// Package config handles application configuration: command-line flags,
// the optional TOML defaults file, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/organize-files/pkg/filesystem"
)

// ConflictPolicy decides what happens when a destination file already exists.
type ConflictPolicy int

const (
	// Ask defers each conflict to the user
	Ask ConflictPolicy = iota
	// Skip leaves the existing file alone
	Skip
	// Rename copies to the first free name_N.ext next to the existing file
	Rename
	// Overwrite replaces the existing file
	Overwrite
)

// Default values applied when neither a flag nor the defaults file sets them.
const (
	DefaultPattern   = "*.*"
	DefaultDelimiter = "_"
	DefaultPolicy    = Ask
	DefaultLogDir    = "logs"
)

// Exported variables.
var (
	ErrInvalidDelimiter = errors.New("delimiter must not be empty")
	ErrInvalidPattern   = errors.New("invalid file pattern")
	ErrInvalidPolicy    = errors.New("invalid conflict policy")
	ErrMissingDest      = errors.New("destination path is required")
	ErrMissingSource    = errors.New("source path is required")
	ErrNotADirectory    = errors.New("not a directory")
)

// String returns the string representation of ConflictPolicy
func (p ConflictPolicy) String() string {
	switch p {
	case Ask:
		return "ask"
	case Skip:
		return "skip"
	case Rename:
		return "rename"
	case Overwrite:
		return "overwrite"
	default:
		return "unknown"
	}
}

// ParseConflictPolicy parses a string into a ConflictPolicy
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ask":
		return Ask, nil
	case "skip":
		return Skip, nil
	case "rename":
		return Rename, nil
	case "overwrite":
		return Overwrite, nil
	default:
		return Ask, fmt.Errorf("%w: %q (valid: ask, skip, rename, overwrite)", ErrInvalidPolicy, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (p ConflictPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for the defaults file
func (p *ConflictPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseConflictPolicy(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// Config holds the application configuration.
// Flags carry no go-arg defaults so an unset flag can fall back to the
// defaults file; built-in defaults are applied afterwards.
type Config struct {
	SourcePath      string `arg:"-s,--source" help:"Source directory (local path or sftp://user@host[:port]/path)"`
	DestPath        string `arg:"-d,--dest" help:"Destination directory, created if missing (local path or sftp://...)"`
	Pattern         string `arg:"-p,--pattern" help:"File name glob applied recursively under the source [default: *.*]"`
	Delimiter       string `arg:"--delimiter" help:"Splits file names into destination folder levels [default: _]"`
	Conflict        string `arg:"-c,--conflict" help:"When a destination file exists: ask|skip|rename|overwrite [default: ask]"`
	InteractiveMode bool   `arg:"-i,--interactive" help:"Run in interactive mode"`
	LogDir          string `arg:"--log-dir" help:"Directory for run logs [default: logs]"`
	AcceptTerms     bool   `arg:"-y,--accept-terms" help:"Accept the terms of use without showing them"`
	ConfigFile      string `arg:"--config" help:"TOML defaults file [env: ORGANIZE_FILES_CONFIG]"`

	// Policy is Conflict parsed; set by PostProcessConfig.
	Policy ConflictPolicy `arg:"-"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Copies files into folders derived from their names, e.g. alpha_beta_report.txt -> alpha/beta/"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "organize-files 1.0.0"
}

// ParseFlags parses command-line flags, layers the defaults file under them
// and returns the validated configuration.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig fills unset fields from the defaults file and the
// built-in defaults, then validates. Precedence is flags, file, defaults.
func PostProcessConfig(cfg *Config) (*Config, error) {
	path, explicit := DefaultsFilePath(cfg.ConfigFile, os.Getenv(EnvConfigFile))
	if path != "" {
		file, err := LoadFile(path)

		switch {
		case err == nil:
			cfg.merge(file)
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// an absent file in the default location is fine
		default:
			return nil, err
		}
	}

	cfg.applyDefaults()

	policy, err := ParseConflictPolicy(cfg.Conflict)
	if err != nil {
		return nil, err
	}

	cfg.Policy = policy

	// If no paths provided, default to interactive mode
	if cfg.SourcePath == "" && cfg.DestPath == "" {
		cfg.InteractiveMode = true
	}

	if err := cfg.ValidateOptions(); err != nil {
		return nil, err
	}

	if !cfg.InteractiveMode {
		if err := cfg.ValidatePaths(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ValidateOptions checks the delimiter and the pattern.
func (cfg *Config) ValidateOptions() error {
	if cfg.Delimiter == "" {
		return ErrInvalidDelimiter
	}

	if !doublestar.ValidatePattern(cfg.Pattern) {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, cfg.Pattern)
	}

	return nil
}

// ValidatePaths validates that source and destination paths are usable.
// The source must be an existing directory. The destination may be missing
// but must be a directory if it exists. SFTP URLs are only checked for
// syntax; the connection is made when the run starts.
func (cfg *Config) ValidatePaths() error {
	if cfg.SourcePath == "" {
		return ErrMissingSource
	}

	if cfg.DestPath == "" {
		return ErrMissingDest
	}

	if err := validateLocation("source", cfg.SourcePath, true); err != nil {
		return err
	}

	return validateLocation("destination", cfg.DestPath, false)
}

func (cfg *Config) applyDefaults() {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}

	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}

	if cfg.Conflict == "" {
		cfg.Conflict = DefaultPolicy.String()
	}

	if cfg.LogDir == "" {
		cfg.LogDir = DefaultLogDir
	}
}

func (cfg *Config) merge(file *FileConfig) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fill(&cfg.SourcePath, file.Source)
	fill(&cfg.DestPath, file.Dest)
	fill(&cfg.Pattern, file.Pattern)
	fill(&cfg.Delimiter, file.Delimiter)
	fill(&cfg.LogDir, file.LogDir)

	if cfg.Conflict == "" && file.Conflict != nil {
		cfg.Conflict = file.Conflict.String()
	}
}

func validateLocation(label, raw string, mustExist bool) error {
	loc, err := filesystem.ParseLocation(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", label, err)
	}

	if loc.Remote {
		return nil
	}

	info, err := os.Stat(loc.Path)
	if os.IsNotExist(err) {
		if mustExist {
			return fmt.Errorf("%s path does not exist: %s: %w", label, raw, err)
		}

		return nil
	}

	if err != nil {
		return fmt.Errorf("cannot access %s path: %w", label, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s path %s: %w", label, raw, ErrNotADirectory)
	}

	return nil
}
