// Package config loads the checker configuration.
//
// The file format is a subset of the configuration of the typos spell checker,
// so a project can share one file between both tools:
//
//	[files]
//	extend-exclude = ["vendor/**"]
//	ignore-hidden = true
//
//	[default]
//	extend-ignore-re = ["https?://\\S+"]
//
//	[type.cpp]
//	check-file = false
package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/specvital/typocheck/pkg/domain"
)

var (
	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("config: file not found")
	// ErrInvalidPattern is returned when an extend-ignore-re entry is not a valid regular expression.
	ErrInvalidPattern = errors.New("config: invalid ignore pattern")
)

// Config is the effective configuration of a run.
type Config struct {
	Files   Files                   `koanf:"files" toml:"files"`
	Default EngineConfig            `koanf:"default" toml:"default"`
	Type    map[string]EngineConfig `koanf:"type" toml:"type"`

	compiled map[string]*regexp.Regexp
}

// Files controls which files are walked.
type Files struct {
	// ExtendExclude holds glob patterns of paths that are never checked.
	ExtendExclude []string `koanf:"extend-exclude" toml:"extend-exclude"`
	// IgnoreHidden skips hidden files and directories.
	IgnoreHidden bool `koanf:"ignore-hidden" toml:"ignore-hidden"`
}

// EngineConfig holds the settings that can be set by default or per file type.
type EngineConfig struct {
	// CheckFile enables checking. Unset means inherit.
	CheckFile *bool `koanf:"check-file" toml:"check-file,omitempty"`
	// ExtendIgnoreRe holds regular expressions whose matches are never reported.
	ExtendIgnoreRe []string `koanf:"extend-ignore-re" toml:"extend-ignore-re"`
}

// Engine is the resolved configuration for one file type.
type Engine struct {
	CheckFile bool
	IgnoreRe  []*regexp.Regexp
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Files: Files{IgnoreHidden: true},
		Type:  map[string]EngineConfig{},
	}
}

// Compile validates and compiles every ignore pattern.
func (c *Config) Compile() error {
	c.compiled = make(map[string]*regexp.Regexp)

	patterns := slices.Clone(c.Default.ExtendIgnoreRe)
	for _, engine := range c.Type {
		patterns = append(patterns, engine.ExtendIgnoreRe...)
	}

	for _, p := range patterns {
		if _, ok := c.compiled[p]; ok {
			continue
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidPattern, p, err)
		}
		c.compiled[p] = re
	}
	return nil
}

// EngineFor merges the default settings with the settings of the given file type.
// A type's check-file overrides the default one and its ignore patterns are appended.
func (c *Config) EngineFor(lang domain.Language) Engine {
	engine := Engine{CheckFile: true}

	merged := c.Default.ExtendIgnoreRe
	if c.Default.CheckFile != nil {
		engine.CheckFile = *c.Default.CheckFile
	}
	if typed, ok := c.Type[lang.String()]; ok {
		if typed.CheckFile != nil {
			engine.CheckFile = *typed.CheckFile
		}
		merged = append(slices.Clone(merged), typed.ExtendIgnoreRe...)
	}

	for _, p := range merged {
		re, ok := c.compiled[p]
		if !ok {
			// Compile was not called or the pattern was added afterwards.
			var err error
			if re, err = regexp.Compile(p); err != nil {
				continue
			}
		}
		engine.IgnoreRe = append(engine.IgnoreRe, re)
	}
	return engine
}
