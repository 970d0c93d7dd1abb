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

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/translate/pkg/config"
	"github.com/walteh/translate/pkg/log"
	"github.com/walteh/translate/pkg/operation"
	"github.com/walteh/translate/pkg/rules"
	"github.com/walteh/translate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const usageLine = "Usage: translate FILE"

// handler holds the flags and the environment of one invocation
type handler struct {
	fs     billy.Filesystem
	stdout io.Writer
	stderr io.Writer

	configFile   string
	debug        bool
	restore      bool
	status       bool
	parallel     bool
	version      bool
	maxRewrites  int
	backupSuffix string
}

// 🏭 newRootCmd creates the translate command
func newRootCmd(fs billy.Filesystem, stdout, stderr io.Writer) *cobra.Command {
	h := &handler{
		fs:     fs,
		stdout: stdout,
		stderr: stderr,
	}

	cmd := &cobra.Command{
		Use:   "translate [flags] FILE",
		Short: "Apply literal string substitutions to the files named in a spec file",
		Long: `translate reads a tab-separated spec file naming target files and their
pattern/replacement pairs. Each target is backed up once to FILE.orig, then
regenerated from that backup line by line with the rules applied.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          h.run,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addRootFlags(cmd, h)
	return cmd
}

// addRootFlags adds the command flags
func addRootFlags(cmd *cobra.Command, h *handler) {
	flags := cmd.Flags()
	flags.StringVarP(&h.configFile, "config", "c", "", "config file path (.yaml, .yml or .hcl)")
	flags.BoolVarP(&h.debug, "debug", "d", false, "enable debug logging")
	flags.BoolVar(&h.restore, "restore", false, "restore every target file from its backup")
	flags.BoolVar(&h.status, "status", false, "report which target files differ from their translation")
	flags.BoolVar(&h.parallel, "parallel", false, "process target files concurrently")
	flags.IntVar(&h.maxRewrites, "max-rewrites", 0, "rewrite cap per line, 0 disables it")
	flags.StringVar(&h.backupSuffix, "backup-suffix", "", "suffix appended to a file name to form its backup path")
	flags.BoolVar(&h.version, "version", false, "print version information")

	cmd.MarkFlagsMutuallyExclusive("restore", "status")
}

func (h *handler) run(cmd *cobra.Command, args []string) error {
	if h.version {
		fmt.Fprint(h.stdout, FormatVersion())
		return nil
	}

	// wrong arity is not an error
	if len(args) != 1 {
		fmt.Fprintln(h.stdout, usageLine)
		fmt.Fprint(h.stdout, cmd.UsageString())
		return nil
	}

	level := zerolog.InfoLevel
	if h.debug {
		level = zerolog.DebugLevel
	}
	logger := log.New(h.stdout, h.stderr, level)
	ctx := logger.WithContext(cmd.Context())

	if err := h.execute(ctx, cmd, args[0]); err != nil {
		logger.Error(err.Error())
		return err
	}
	return nil
}

// loadConfig reads the config file if one was given and applies flag overrides
func (h *handler) loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if h.configFile != "" {
		loaded, err := config.Load(ctx, h.fs, h.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("backup-suffix") {
		cfg.BackupSuffix = h.backupSuffix
	}
	if flags.Changed("max-rewrites") {
		n := h.maxRewrites
		cfg.MaxRewrites = &n
	}
	if flags.Changed("parallel") {
		cfg.Parallel = h.parallel
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// execute runs one mode over the spec file
func (h *handler) execute(ctx context.Context, cmd *cobra.Command, specFile string) error {
	logger := log.FromContext(ctx)

	cfg, err := h.loadConfig(ctx, cmd)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("configuration loaded")

	spec, err := rules.Load(ctx, h.fs, specFile)
	if err != nil {
		return errors.Errorf("loading spec file: %w", err)
	}

	eng, err := operation.New(operation.Options{
		FS:           h.fs,
		BackupSuffix: cfg.BackupSuffix,
		MaxRewrites:  cfg.Rewrites(),
		Ignore:       cfg.Ignore,
		Parallel:     cfg.Parallel,
		Reporter:     logger,
	})
	if err != nil {
		return errors.Errorf("creating engine: %w", err)
	}

	mode, apply := "translate", eng.Translate
	switch {
	case h.restore:
		mode, apply = "restore", eng.Restore
	case h.status:
		mode, apply = "status", eng.Status
	}

	logger.StartRun(ctx, log.RunOperation{
		SpecFile: specFile,
		Mode:     mode,
		Files:    spec.Len(),
		Parallel: cfg.Parallel,
	})
	defer logger.EndRun(ctx)

	summary, err := apply(ctx, spec)
	if err != nil {
		return err
	}

	logger.Success(status.FormatSummary(summary))
	if missing := summary.Count(status.StatusMissing); missing > 0 {
		logger.Warningf("%d of %d files have no backup yet, run translate first", missing, spec.Len())
	}

	if h.status {
		table, err := status.RenderTable(summary)
		if err != nil {
			return err
		}
		logger.Raw(table)
	}
	return nil
}
