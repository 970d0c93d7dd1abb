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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/translate/pkg/rules"
)

const scenarioSpec = "foo.file\tfoo\tBOO\n" +
	"\tfoobar\tBOOBAZ\n" +
	"bar.file\t;-)\t(-;\n" +
	"\t:-)\t(-:\n"

func scenarioFS(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for name, content := range map[string]string{
		"rules.tsv": scenarioSpec,
		"foo.file":  "xfoobar\n",
		"bar.file":  "hi ;-) :-)\n",
	} {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func execute(t *testing.T, fs billy.Filesystem, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := newRootCmd(fs, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readFile(t *testing.T, fs billy.Filesystem, name string) string {
	t.Helper()
	content, err := util.ReadFile(fs, name)
	require.NoError(t, err)
	return string(content)
}

func TestUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no_arguments", args: []string{}},
		{name: "two_arguments", args: []string{"rules.tsv", "extra.tsv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := scenarioFS(t)

			stdout, _, err := execute(t, fs, tt.args...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(stdout, usageLine+"\n"), "stdout: %q", stdout)
			assert.Contains(t, stdout, "--restore")

			// nothing is touched
			assert.Equal(t, "xfoobar\n", readFile(t, fs, "foo.file"))
			_, err = fs.Stat("foo.file.orig")
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, memfs.New(), "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "🚀 translate")
	assert.Contains(t, stdout, "Platform:")
}

func TestTranslateCommand(t *testing.T) {
	fs := scenarioFS(t)

	stdout, _, err := execute(t, fs, "rules.tsv")
	require.NoError(t, err)

	assert.Equal(t, "xBOOBAZ\n", readFile(t, fs, "foo.file"))
	assert.Equal(t, "hi (-; (-:\n", readFile(t, fs, "bar.file"))
	assert.Equal(t, "xfoobar\n", readFile(t, fs, "foo.file.orig"))
	assert.Equal(t, "hi ;-) :-)\n", readFile(t, fs, "bar.file.orig"))
	assert.Contains(t, stdout, "2 files: 2 new, 0 modified, 0 unchanged, 3 replacements")

	// second run starts from the backups again
	stdout, _, err = execute(t, fs, "rules.tsv")
	require.NoError(t, err)
	assert.Equal(t, "xBOOBAZ\n", readFile(t, fs, "foo.file"))
	assert.Equal(t, "hi (-; (-:\n", readFile(t, fs, "bar.file"))
	assert.Contains(t, stdout, "2 files: 0 new, 0 modified, 2 unchanged, 3 replacements")
}

func TestStatusCommandWithoutBackups(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	fs := scenarioFS(t)

	stdout, _, err := execute(t, fs, "--status", "rules.tsv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "⚠️  2 of 2 files have no backup yet")
	_, err = fs.Stat("foo.file.orig")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTranslateCommandOnDisk(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	abs := filepath.Join(dir, "nested", "abs.file")
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))

	for name, content := range map[string]string{
		"rules.tsv": scenarioSpec + abs + "\tcat\tdog\n",
		"foo.file":  "xfoobar\n",
		"bar.file":  "hi ;-) :-)\n",
		abs:         "xcat cat\n",
	} {
		require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	}

	readDisk := func(name string) string {
		t.Helper()
		content, err := os.ReadFile(name)
		require.NoError(t, err)
		return string(content)
	}

	for run := 0; run < 2; run++ {
		_, _, err := execute(t, osfs.New(""), "rules.tsv")
		require.NoError(t, err, "run %d", run)

		assert.Equal(t, "xBOOBAZ\n", readDisk("foo.file"), "run %d", run)
		assert.Equal(t, "hi (-; (-:\n", readDisk("bar.file"), "run %d", run)
		assert.Equal(t, "xdog dog\n", readDisk(abs), "run %d", run)
		assert.Equal(t, "xfoobar\n", readDisk("foo.file.orig"), "run %d", run)
		assert.Equal(t, "hi ;-) :-)\n", readDisk("bar.file.orig"), "run %d", run)
		assert.Equal(t, "xcat cat\n", readDisk(abs+".orig"), "run %d", run)
	}
}

func TestStatusCommand(t *testing.T) {
	fs := scenarioFS(t)

	_, _, err := execute(t, fs, "rules.tsv")
	require.NoError(t, err)
	require.NoError(t, util.WriteFile(fs, "bar.file", []byte("edited\n"), 0o644))

	stdout, _, err := execute(t, fs, "--status", "rules.tsv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 modified, 1 unchanged")
	assert.Contains(t, stdout, "Replacements")
	assert.Equal(t, "edited\n", readFile(t, fs, "bar.file"))
}

func TestRestoreCommand(t *testing.T) {
	fs := scenarioFS(t)

	_, _, err := execute(t, fs, "rules.tsv")
	require.NoError(t, err)

	_, _, err = execute(t, fs, "--restore", "rules.tsv")
	require.NoError(t, err)
	assert.Equal(t, "xfoobar\n", readFile(t, fs, "foo.file"))
	assert.Equal(t, "hi ;-) :-)\n", readFile(t, fs, "bar.file"))
}

func TestConfigAndFlags(t *testing.T) {
	tests := []struct {
		name         string
		config       map[string]string
		args         []string
		expectBackup string
	}{
		{
			name:         "yaml_suffix",
			config:       map[string]string{".translate.yaml": "backup_suffix: .bak\n"},
			args:         []string{"-c", ".translate.yaml", "rules.tsv"},
			expectBackup: "foo.file.bak",
		},
		{
			name:         "hcl_suffix",
			config:       map[string]string{".translate.hcl": "backup_suffix = \".pristine\"\n"},
			args:         []string{"--config", ".translate.hcl", "rules.tsv"},
			expectBackup: "foo.file.pristine",
		},
		{
			name:         "flag_overrides_config",
			config:       map[string]string{".translate.yaml": "backup_suffix: .bak\n"},
			args:         []string{"-c", ".translate.yaml", "--backup-suffix", ".flag", "rules.tsv"},
			expectBackup: "foo.file.flag",
		},
		{
			name:         "parallel_flag",
			args:         []string{"--parallel", "rules.tsv"},
			expectBackup: "foo.file.orig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := scenarioFS(t)
			for name, content := range tt.config {
				require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
			}

			_, _, err := execute(t, fs, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "xfoobar\n", readFile(t, fs, tt.expectBackup))
			assert.Equal(t, "xBOOBAZ\n", readFile(t, fs, "foo.file"))
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, fs billy.Filesystem)
		args      []string
		expectErr error
		errText   string
	}{
		{
			name:    "missing_spec_file",
			args:    []string{"nope.tsv"},
			errText: "loading spec file",
		},
		{
			name: "malformed_spec_file",
			setup: func(t *testing.T, fs billy.Filesystem) {
				require.NoError(t, util.WriteFile(fs, "bad.tsv", []byte("a\tb\tc\td\n"), 0o644))
			},
			args:      []string{"bad.tsv"},
			expectErr: rules.ErrMalformedRow,
		},
		{
			name: "missing_target",
			setup: func(t *testing.T, fs billy.Filesystem) {
				require.NoError(t, util.WriteFile(fs, "ghost.tsv", []byte("ghost.file\ta\tb\n"), 0o644))
			},
			args:    []string{"ghost.tsv"},
			errText: "ghost.file",
		},
		{
			name:    "negative_max_rewrites",
			args:    []string{"--max-rewrites", "-1", "rules.tsv"},
			errText: "max_rewrites",
		},
		{
			name:    "restore_and_status",
			args:    []string{"--restore", "--status", "rules.tsv"},
			errText: "none of the others can be",
		},
		{
			name:    "restore_without_backup",
			args:    []string{"--restore", "rules.tsv"},
			errText: "backup does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := scenarioFS(t)
			if tt.setup != nil {
				tt.setup(t, fs)
			}

			_, _, err := execute(t, fs, tt.args...)
			require.Error(t, err)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			}
			if tt.errText != "" {
				assert.Contains(t, err.Error(), tt.errText)
			}
		})
	}
}
