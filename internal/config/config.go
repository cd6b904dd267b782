// Package config loads the tool settings from defaults, an optional YAML file
// and CURSOR_ID_RESET_* environment variables using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/cursor-id-reset/cursor-id-reset/internal/identity"
	"github.com/cursor-id-reset/cursor-id-reset/internal/platform"
	"github.com/cursor-id-reset/cursor-id-reset/internal/process"
)

const (
	EnvPrefix      = "CURSOR_ID_RESET"
	DirName        = "cursor-id-reset"
	ConfigFileName = "config.yaml"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// ProcessNames are the executables stopped before anything is touched.
	ProcessNames []string `mapstructure:"process_names"`
	// StoragePath is the host application's storage.json.
	StoragePath string `mapstructure:"storage_path"`
	// BackupDir receives file copies and registry exports.
	BackupDir string `mapstructure:"backup_dir"`
	// QuiesceAttempts is how many times the process table is polled after
	// asking the processes to exit.
	QuiesceAttempts int `mapstructure:"quiesce_attempts"`
	// QuiesceInterval is the pause between polls.
	QuiesceInterval time.Duration `mapstructure:"quiesce_interval"`
	RequireAdmin    bool          `mapstructure:"require_admin"`
	SkipRegistry    bool          `mapstructure:"skip_registry"`
	// TelemetryPrefix is hex encoded at the start of telemetry.machineId.
	TelemetryPrefix string `mapstructure:"telemetry_prefix"`
}

type Options struct {
	Fs afero.Fs
	// File is an explicit config file; it must exist.
	File string
	// DefaultFile is read only when present.
	DefaultFile string
	Paths       platform.Paths
}

// DefaultFile is <user config dir>/cursor-id-reset/config.yaml.
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, DirName, ConfigFileName)
}

// Load builds the Config. Environment variables override the file, which
// overrides the defaults.
func Load(opts Options) (*Config, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	v := viper.New()
	v.SetFs(opts.Fs)
	v.SetConfigType("yaml")

	v.SetDefault("process_names", []string{platform.AppName})
	v.SetDefault("storage_path", opts.Paths.StorageFile)
	v.SetDefault("backup_dir", opts.Paths.BackupDir)
	v.SetDefault("quiesce_attempts", process.DefaultMaxAttempts)
	v.SetDefault("quiesce_interval", process.DefaultInterval)
	v.SetDefault("require_admin", true)
	v.SetDefault("skip_registry", false)
	v.SetDefault("telemetry_prefix", identity.DefaultTelemetryPrefix)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	switch {
	case opts.File != "":
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", opts.File, err)
		}
	case opts.DefaultFile != "":
		exists, err := afero.Exists(opts.Fs, opts.DefaultFile)
		if err != nil {
			return nil, fmt.Errorf("failed to check config file '%s': %w", opts.DefaultFile, err)
		}
		if exists {
			v.SetConfigFile(opts.DefaultFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file '%s': %w", opts.DefaultFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ProcessNames = uniqueNames(cfg.ProcessNames)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.ProcessNames) == 0 {
		return fmt.Errorf("%w: process_names must not be empty", ErrInvalid)
	}
	if c.StoragePath == "" {
		return fmt.Errorf("%w: storage_path must be set", ErrInvalid)
	}
	if c.BackupDir == "" {
		return fmt.Errorf("%w: backup_dir must be set", ErrInvalid)
	}
	if c.QuiesceAttempts < 1 {
		return fmt.Errorf("%w: quiesce_attempts must be at least 1", ErrInvalid)
	}
	if c.QuiesceInterval <= 0 {
		return fmt.Errorf("%w: quiesce_interval must be positive", ErrInvalid)
	}
	if c.TelemetryPrefix == "" {
		return fmt.Errorf("%w: telemetry_prefix must not be empty", ErrInvalid)
	}
	return nil
}

// uniqueNames trims names and drops case-insensitive duplicates, since
// process matching ignores case.
func uniqueNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
