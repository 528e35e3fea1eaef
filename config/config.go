// Package config loads jsyn settings from jsyn.yaml and command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/jsyn/java/parser"
)

// DefaultFile is read when no --config flag is given. It may be absent.
const DefaultFile = "jsyn.yaml"

type Config struct {
	Level     int        `yaml:"level"`
	Features  FeatureSet `yaml:"features"`
	Locale    string     `yaml:"locale"`
	Verbosity int        `yaml:"verbosity"`
	Include   []string   `yaml:"include"`
	Exclude   []string   `yaml:"exclude"`
}

// FeatureSet lists language features switched on or off regardless of the
// level.
type FeatureSet struct {
	Enable  []string `yaml:"enable"`
	Disable []string `yaml:"disable"`
}

func Default() *Config {
	return &Config{
		Level:   int(parser.LatestLevel),
		Locale:  "en",
		Include: []string{"**/*.java"},
	}
}

// Load reads the configuration at path. An empty path means DefaultFile,
// which yields the defaults when it does not exist.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the level, feature names and locale.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Level < int(parser.MinLevel) || c.Level > int(parser.LatestLevel) {
		result = multierror.Append(result, fmt.Errorf("language level %d is outside %d..%d", c.Level, parser.MinLevel, parser.LatestLevel))
	}
	for _, name := range append(append([]string{}, c.Features.Enable...), c.Features.Disable...) {
		if _, err := parser.ParseFeature(name); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if _, err := language.Parse(c.Locale); err != nil {
		result = multierror.Append(result, fmt.Errorf("locale %q: %w", c.Locale, err))
	}
	return result.ErrorOrNil()
}

// LanguageFeatures returns the capability oracle for the configured level
// and overrides. Unknown feature names are ignored; Validate reports them.
func (c *Config) LanguageFeatures() *parser.LevelFeatures {
	f := parser.NewLevelFeatures(parser.LanguageLevel(c.Level))
	for _, name := range c.Features.Enable {
		if feature, err := parser.ParseFeature(name); err == nil {
			f.Set(feature, true)
		}
	}
	for _, name := range c.Features.Disable {
		if feature, err := parser.ParseFeature(name); err == nil {
			f.Set(feature, false)
		}
	}
	return f
}

// Language returns the message locale, English when it does not parse.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// ParserOptions returns the options every parse in the program uses.
func (c *Config) ParserOptions() []parser.Option {
	return []parser.Option{
		parser.WithFeatures(c.LanguageFeatures()),
		parser.WithMessages(parser.NewMessages(c.Language())),
	}
}
