// Package config loads the installer's tunables.
//
// Configuration is layered: built-in defaults, then an optional
// .dotdeploy.toml in the source root, then DOTDEPLOY_* environment
// variables. An optional .dotdeploy.env file in the source root is
// loaded first so environment overrides can live next to the dotfiles.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
)

// Reserved file names in the source root. These are control files of the
// installer itself and are never deployed.
const (
	// ConfigFileName is the optional TOML config file in the source root
	ConfigFileName = ".dotdeploy.toml"

	// EnvFileName is the optional dotenv file in the source root
	EnvFileName = ".dotdeploy.env"

	// EnvPrefix namespaces environment variable overrides
	EnvPrefix = "DOTDEPLOY_"
)

// Config holds the installer's tunables. Defaults reproduce the
// historical shell installer behavior exactly.
type Config struct {
	// SkipFile is the name of the newline-delimited skip-list file
	// in the source root
	SkipFile string `koanf:"skip_file" toml:"skip_file"`

	// LinkEachMarker is the marker file that makes a directory's
	// children link individually
	LinkEachMarker string `koanf:"link_each_marker" toml:"link_each_marker"`

	// BackupPrefix is inserted before the basename of a pre-existing
	// non-link destination before it is replaced
	BackupPrefix string `koanf:"backup_prefix" toml:"backup_prefix"`

	// SeedDir is the source subdirectory holding one-time default files
	SeedDir string `koanf:"seed_dir" toml:"seed_dir"`

	// SocketDir is the destination-relative directory always created
	// at the end of a run
	SocketDir string `koanf:"socket_dir" toml:"socket_dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		SkipFile:       ".symlinkignore",
		LinkEachMarker: ".symlink_each",
		BackupPrefix:   "renamed-old-",
		SeedDir:        "seed",
		SocketDir:      filepath.Join(".ssh", "sockets"),
	}
}

// Load resolves the configuration for a given source root
func Load(sourceRoot string) (*Config, error) {
	// Load .dotdeploy.env into the process environment first so the
	// env layer below can see it. Missing file is fine.
	envFile := filepath.Join(sourceRoot, EnvFileName)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad,
				"failed to load env file %s", envFile)
		}
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default config")
	}

	configPath := filepath.Join(sourceRoot, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse config file %s", configPath)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaultMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"skip_file":        d.SkipFile,
		"link_each_marker": d.LinkEachMarker,
		"backup_prefix":    d.BackupPrefix,
		"seed_dir":         d.SeedDir,
		"socket_dir":       d.SocketDir,
	}
}

func (c *Config) validate() error {
	if c.SkipFile == "" {
		return errors.New(errors.ErrConfigParse, "skip_file must not be empty")
	}
	if c.LinkEachMarker == "" {
		return errors.New(errors.ErrConfigParse, "link_each_marker must not be empty")
	}
	if c.BackupPrefix == "" {
		return errors.New(errors.ErrConfigParse, "backup_prefix must not be empty")
	}
	if c.SeedDir == "" || strings.ContainsRune(c.SeedDir, filepath.Separator) {
		return errors.New(errors.ErrConfigParse, "seed_dir must be a bare directory name")
	}
	if c.SocketDir == "" || filepath.IsAbs(c.SocketDir) {
		return errors.New(errors.ErrConfigParse, "socket_dir must be a destination-relative path")
	}
	return nil
}
