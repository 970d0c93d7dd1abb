// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/walteh/translate/pkg/backup"
	"github.com/walteh/translate/pkg/text"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds the tool settings. Unset fields keep their defaults.
type Config struct {
	BackupSuffix string   `yaml:"backup_suffix,omitempty"` // Appended to a file name to form its backup path
	MaxRewrites  *int     `yaml:"max_rewrites,omitempty"`  // Rewrite cap per line, 0 disables
	Parallel     bool     `yaml:"parallel,omitempty"`      // Process files concurrently
	Ignore       []string `yaml:"ignore,omitempty"`        // Glob patterns for target files to leave alone
}

// Default returns the configuration used when no file is given
func Default() *Config {
	n := text.DefaultMaxRewrites
	return &Config{
		BackupSuffix: backup.DefaultSuffix,
		MaxRewrites:  &n,
	}
}

// Rewrites returns the effective rewrite cap
func (cfg *Config) Rewrites() int {
	if cfg.MaxRewrites == nil {
		return text.DefaultMaxRewrites
	}
	return *cfg.MaxRewrites
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, fs billy.Filesystem, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills defaults
func (cfg *Config) Validate() error {
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = backup.DefaultSuffix
	}
	if strings.ContainsAny(cfg.BackupSuffix, "/\\") {
		return errors.Errorf("backup_suffix %q must not contain a path separator", cfg.BackupSuffix)
	}

	if cfg.MaxRewrites == nil {
		n := text.DefaultMaxRewrites
		cfg.MaxRewrites = &n
	}
	if *cfg.MaxRewrites < 0 {
		return errors.Errorf("max_rewrites must not be negative, got %d", *cfg.MaxRewrites)
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore[%d]: invalid glob pattern %q", i, pattern)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("suffix=%s max_rewrites=%d parallel=%t ignore=%v",
		cfg.BackupSuffix, cfg.Rewrites(), cfg.Parallel, cfg.Ignore)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
