package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables overriding the config file.
// TYPOCHECK_FILES__IGNORE_HIDDEN maps to files.ignore-hidden.
const EnvPrefix = "TYPOCHECK_"

const (
	pyprojectFileName = "pyproject.toml"
	pyprojectSection  = "tool.typos"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 32

// FileNames lists the config file names looked up in every directory, by priority.
var FileNames = []string{"typos.toml", "_typos.toml", ".typos.toml", pyprojectFileName}

// Options controls Load.
type Options struct {
	// File is an explicit config file. Discovery is skipped when set.
	File string
	// Dir is where discovery starts. Defaults to the working directory.
	Dir string
	// Flags are the command line flags. Only changed flags are applied.
	Flags *pflag.FlagSet
	// Logger reports which file was used.
	Logger *slog.Logger
}

// Loaded is a configuration together with the file it was read from.
type Loaded struct {
	*Config
	// Path is the config file used, or empty when none was found.
	Path string
}

// Load builds the effective configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(opts Options) (*Loaded, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"files.ignore-hidden":      true,
		"files.extend-exclude":     []string{},
		"default.extend-ignore-re": []string{},
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path := opts.File
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		found, err := Find(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug("loaded config", "path", path)
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, flagKey), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Type == nil {
		cfg.Type = map[string]EngineConfig{}
	}
	if err := cfg.Compile(); err != nil {
		return nil, err
	}

	return &Loaded{Config: cfg, Path: path}, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if filepath.Base(path) != pyprojectFileName {
		if err := k.Load(file.Provider(path), TOML()); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return nil
	}

	py := koanf.New(".")
	if err := py.Load(file.Provider(path), TOML()); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := k.Merge(py.Cut(pyprojectSection)); err != nil {
		return fmt.Errorf("error merging %s from %s: %w", pyprojectSection, path, err)
	}
	return nil
}

// envKey turns TYPOCHECK_TYPE__RUST__CHECK_FILE into type.rust.check-file.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.Split(s, "__")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", "-")
	}
	return strings.Join(parts, ".")
}

// flagKey maps the walk flags onto config keys. Other flags are not config keys.
func flagKey(f *pflag.Flag) (string, interface{}) {
	if !f.Changed {
		return "", nil
	}
	switch f.Name {
	case "hidden":
		return "files.ignore-hidden", f.Value.String() != "true"
	case "no-hidden":
		return "files.ignore-hidden", f.Value.String() == "true"
	default:
		return "", nil
	}
}

// Find searches dir and its parents for a config file.
// A pyproject.toml only counts when it has a [tool.typos] table.
// It returns an empty path when no file is found.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for i := 0; i < maxUpwardSearchLevels; i++ {
		for _, name := range FileNames {
			candidate := filepath.Join(abs, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if name == pyprojectFileName {
				ok, err := hasTyposSection(candidate)
				if err != nil {
					return "", err
				}
				if !ok {
					continue
				}
			}
			return candidate, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			break
		}
		abs = parent
	}
	return "", nil
}

func hasTyposSection(path string) (bool, error) {
	var doc struct {
		Tool struct {
			Typos map[string]interface{} `toml:"typos"`
		} `toml:"tool"`
	}
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return false, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return md.IsDefined("tool", "typos"), nil
}

// Dump writes c as a TOML document.
func (c *Config) Dump(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
