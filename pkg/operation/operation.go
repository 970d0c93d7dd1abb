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

package operation

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"github.com/walteh/translate/pkg/backup"
	"github.com/walteh/translate/pkg/rules"
	"github.com/walteh/translate/pkg/status"
	"github.com/walteh/translate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📢 Reporter receives the result of every processed file
type Reporter interface {
	Report(ctx context.Context, r status.FileResult)
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, status.FileResult) {}

// 🔧 Options contains configuration for the engine
type Options struct {
	// FS is the filesystem target files live on
	FS billy.Filesystem
	// BackupSuffix is appended to a file name to form its backup path
	BackupSuffix string
	// MaxRewrites caps the rewrites per line, 0 disables the cap
	MaxRewrites int
	// Ignore lists glob patterns of target files to leave alone
	Ignore []string
	// Parallel processes target files concurrently
	Parallel bool
	// Limit bounds concurrent files in parallel mode, 0 means no limit
	Limit int
	// Reporter receives per-file results
	Reporter Reporter
}

// 🎮 Engine translates, restores and checks target files
type Engine struct {
	fs          billy.Filesystem
	backups     *backup.Store
	maxRewrites int
	ignore      []string
	runner      *Runner
	reporter    Reporter
}

// 🏭 New creates a new engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.FS == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.MaxRewrites < 0 {
		return nil, errors.Errorf("max rewrites must not be negative")
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Engine{
		fs:          opts.FS,
		backups:     backup.New(opts.FS, opts.BackupSuffix),
		maxRewrites: opts.MaxRewrites,
		ignore:      opts.Ignore,
		runner:      NewRunner(opts.Parallel, opts.Limit),
		reporter:    reporter,
	}, nil
}

// translator builds the line translator for one rule set
func (e *Engine) translator(rs *rules.RuleSet) *text.Translator {
	return text.NewTranslator(rs, text.WithMaxRewrites(e.maxRewrites))
}

// 🔍 shouldIgnore checks if a file should be ignored
func (e *Engine) shouldIgnore(ctx context.Context, path string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range e.ignore {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(path))
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// 🏃 process runs fn over every file of the spec and reports each result
func (e *Engine) process(ctx context.Context, spec *rules.RuleSpec, mode string, fn fileFunc) (*status.Summary, error) {
	logger := zerolog.Ctx(ctx).With().Str("mode", mode).Logger()
	ctx = logger.WithContext(ctx)

	summary := status.NewSummary()
	// results keep spec order even when files finish out of order
	for _, name := range spec.Files() {
		summary.Add(status.FileResult{Path: name})
	}

	err := e.runner.Run(ctx, spec, func(ctx context.Context, name string, rs *rules.RuleSet) error {
		var res status.FileResult
		if e.shouldIgnore(ctx, name) {
			res = status.FileResult{Path: name, Status: status.StatusSkipped}
		} else {
			var err error
			res, err = fn(ctx, name, rs)
			if err != nil {
				res.Path = name
				res.Error = err
				summary.Add(res)
				e.reporter.Report(ctx, res)
				return errors.Errorf("%s %s: %w", mode, name, err)
			}
		}

		summary.Add(res)
		e.reporter.Report(ctx, res)
		return nil
	})
	if err != nil {
		return summary, err
	}

	logger.Debug().Int("files", spec.Len()).Int("replacements", summary.Replacements()).Msg("run complete")
	return summary, nil
}
